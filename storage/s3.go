package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3API is the part of the S3 client S3Store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes uploads to a bucket. URLs are built from publicBaseURL, which is expected to
// front the bucket (a CDN or the bucket's website endpoint).
type S3Store struct {
	client        S3API
	bucket        string
	prefix        string
	publicBaseURL string
	now           func() time.Time
}

func NewS3Store(client S3API, bucket, prefix, publicBaseURL string) *S3Store {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Store{
		client:        client,
		bucket:        bucket,
		prefix:        prefix,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// Save uploads with If-None-Match so an existing key is never replaced.
func (s *S3Store) Save(ctx context.Context, upload Upload) (Object, error) {
	at := s.now()
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := FileName(upload.Filename, at.Add(time.Duration(attempt)*time.Millisecond))
		key := s.prefix + name

		input := &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        upload.Body,
			IfNoneMatch: aws.String("*"),
		}
		if upload.ContentType != "" {
			input.ContentType = aws.String(upload.ContentType)
		}
		if upload.Size > 0 {
			input.ContentLength = aws.Int64(upload.Size)
		}

		_, err := s.client.PutObject(ctx, input)
		if err == nil {
			return Object{Name: name, URL: s.publicBaseURL + "/" + key}, nil
		}

		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			if err := rewind(upload.Body); err != nil {
				return Object{}, fmt.Errorf("rewind upload: %w", err)
			}
			continue
		}
		return Object{}, fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return Object{}, fmt.Errorf("no free key for %q after %d attempts", upload.Filename, maxNameAttempts)
}
