package config

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// NewAWSConfig loads the default AWS credential chain, pinned to region when given.
func NewAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}

func NewSSMClient(ctx context.Context, region string) (*ssm.Client, error) {
	cfg, err := NewAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return ssm.NewFromConfig(cfg), nil
}

// LoadSSMParameters reads every parameter under parameterPath, decrypting SecureStrings.
// Keys are the last path element, so /agency/prod/SESSION_SECRET becomes SESSION_SECRET.
func LoadSSMParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, parameterPath string) (map[string]string, error) {
	params := map[string]string{}
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("read SSM parameters under %s: %w", parameterPath, err)
		}
		for _, p := range page.Parameters {
			if p.Name == nil || p.Value == nil {
				continue
			}
			params[path.Base(*p.Name)] = *p.Value
		}
	}
	return params, nil
}
