package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
)

// DefaultSessionSecret is only acceptable outside production.
const DefaultSessionSecret = "dev-session-secret-change-me"

// DefaultUploadMaxBytes is the largest accepted upload, 500 MiB.
const DefaultUploadMaxBytes = 500 << 20

type Config struct {
	Port        string   `env:"PORT, default=5000"`
	Env         string   `env:"ENV, default=development"`
	LogLevel    string   `env:"LOG_LEVEL, default=info"`
	DBFile      string   `env:"DB_FILE, default=klystra.db"`
	CORSOrigins []string `env:"CORS_ORIGIN, default=http://localhost:3000"`

	// SSMParameterPath, when set, names an SSM Parameter Store path whose parameters fill in
	// any variable missing from the environment.
	SSMParameterPath string `env:"SSM_PARAMETER_PATH"`
	AWSRegion        string `env:"AWS_REGION"`

	Session SessionConfig
	Admin   AdminConfig
	Upload  UploadConfig
	Redis   RedisConfig
	Resend  ResendConfig
	Twilio  TwilioConfig
	Server  ServerConfig
	Modes   MaintenanceModes
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET, default=dev-session-secret-change-me"`
	TTL        time.Duration `env:"SESSION_TTL, default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Password string `env:"ADMIN_PASSWORD, default=admin123"`
}

type UploadConfig struct {
	Dir          string `env:"UPLOAD_DIR, default=uploads"`
	MaxBytes     int64  `env:"UPLOAD_MAX_BYTES, default=524288000"`
	S3Bucket     string `env:"S3_BUCKET"`
	S3Prefix     string `env:"S3_PREFIX"`
	S3PublicBase string `env:"S3_PUBLIC_BASE_URL"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type ResendConfig struct {
	APIKey    string   `env:"RESEND_API_KEY"`
	FromEmail string   `env:"RESEND_FROM_EMAIL"`
	APIURL    string   `env:"RESEND_API_URL, default=https://api.resend.com"`
	NotifyTo  []string `env:"NOTIFY_EMAIL_TO"`
}

type TwilioConfig struct {
	AccountSID string   `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string   `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string   `env:"TWILIO_FROM_NUMBER"`
	NotifyTo   []string `env:"NOTIFY_SMS_TO"`
}

type ServerConfig struct {
	ReadTimeoutSeconds  int `env:"READ_TIMEOUT_SECONDS, default=180"`
	WriteTimeoutSeconds int `env:"WRITE_TIMEOUT_SECONDS, default=180"`
	IdleTimeoutSeconds  int `env:"IDLE_TIMEOUT_SECONDS, default=180"`
}

// MaintenanceModes run a one-off task instead of serving.
type MaintenanceModes struct {
	CreateAdmin          bool `env:"CREATE_ADMIN, default=false"`
	SeedProjects         bool `env:"SEED_PROJECTS, default=false"`
	GenerateColumnReport bool `env:"GENERATE_COLUMN_REPORT, default=false"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *Config) UsesS3() bool {
	return c.Upload.S3Bucket != ""
}

func (c *Config) UsesRedis() bool {
	return c.Redis.Addr != ""
}

func (c *Config) EmailEnabled() bool {
	return c.Resend.APIKey != "" && c.Resend.FromEmail != "" && len(c.Resend.NotifyTo) > 0
}

func (c *Config) SMSEnabled() bool {
	return c.Twilio.AccountSID != "" && c.Twilio.AuthToken != "" && c.Twilio.FromNumber != "" && len(c.Twilio.NotifyTo) > 0
}

// Validate rejects settings that must not reach a production deployment.
func (c *Config) Validate() error {
	var problems []error
	if c.IsProduction() && c.Session.Secret == DefaultSessionSecret {
		problems = append(problems, errors.New("SESSION_SECRET must be set in production"))
	}
	if c.Upload.MaxBytes <= 0 {
		problems = append(problems, fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes))
	}
	if c.UsesS3() && c.Upload.S3PublicBase == "" {
		problems = append(problems, errors.New("S3_PUBLIC_BASE_URL is required when S3_BUCKET is set"))
	}
	return errors.Join(problems...)
}

// Load reads .env (if present), the process environment and, when configured, SSM parameters.
// Variables already in the environment win over SSM.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using existing environment variables")
	}

	env := New()
	cfg, err := loadFrom(ctx, env)
	if err != nil {
		return nil, err
	}

	if cfg.SSMParameterPath != "" {
		client, err := NewSSMClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		params, err := LoadSSMParameters(ctx, client, cfg.SSMParameterPath)
		if err != nil {
			return nil, err
		}
		log.Info().Int("count", len(params)).Str("path", cfg.SSMParameterPath).Msg("Loaded parameters from SSM")
		if cfg, err = loadFrom(ctx, Overlay(env, params)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFrom(ctx context.Context, env map[string]string) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	}); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.CORSOrigins = cleanList(cfg.CORSOrigins)
	cfg.Resend.NotifyTo = cleanList(cfg.Resend.NotifyTo)
	cfg.Twilio.NotifyTo = cleanList(cfg.Twilio.NotifyTo)
	return &cfg, nil
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// New snapshots the process environment as a map.
func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// Overlay returns env with extra added for keys env lacks or leaves empty.
func Overlay(env, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(env)+len(extra))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range env {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}
