package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"github.com/rpupo63/agency-site-backend/auth"
	"github.com/rpupo63/agency-site-backend/config"
	"github.com/rpupo63/agency-site-backend/database"
	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rpupo63/agency-site-backend/services"
	"github.com/rpupo63/agency-site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogger writes human-readable logs in development and JSON everywhere else.
func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Caller().Logger()
}

// newSessionStore keeps sessions in Redis when REDIS_ADDR is set and in SQLite otherwise.
func newSessionStore(ctx context.Context, cfg *config.Config, db database.Database) (auth.SessionStore, func(), error) {
	if !cfg.UsesRedis() {
		return db.SessionRepo(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis at %s: %w", cfg.Redis.Addr, err)
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("Sessions stored in Redis")

	return auth.NewRedisSessionStore(client), func() { _ = client.Close() }, nil
}

// newUploadStore returns the S3 store when a bucket is configured, otherwise the local
// directory together with its path so the API can serve it.
func newUploadStore(ctx context.Context, cfg *config.Config) (storage.Store, string, error) {
	if cfg.UsesS3() {
		awsCfg, err := config.NewAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, "", err
		}
		log.Info().Str("bucket", cfg.Upload.S3Bucket).Msg("Uploads stored in S3")
		return storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Upload.S3Bucket, cfg.Upload.S3Prefix, cfg.Upload.S3PublicBase), "", nil
	}

	store, err := storage.NewLocalStore(cfg.Upload.Dir, "/uploads")
	if err != nil {
		return nil, "", err
	}
	return store, store.Dir(), nil
}

// newNotifier fans contact messages out to every configured channel.
func newNotifier(cfg *config.Config) services.Notifier {
	var channels []services.Notifier
	if cfg.EmailEnabled() {
		client := services.NewResendClient(cfg.Resend.APIKey, cfg.Resend.FromEmail, cfg.Resend.APIURL)
		channels = append(channels, services.NewEmailNotifier(client, cfg.Resend.NotifyTo))
	}
	if cfg.SMSEnabled() {
		sender := services.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
		channels = append(channels, services.NewSMSNotifier(sender, cfg.Twilio.FromNumber, cfg.Twilio.NotifyTo))
	}

	notifier := services.NewNotifyEverywhere(channels...)
	if !notifier.Enabled() {
		log.Info().Msg("No notification channels configured, contact messages are only stored")
	}
	return notifier
}

func runMaintenance(ctx context.Context, cfg *config.Config, db database.Database, authService *auth.Service) error {
	if cfg.Modes.CreateAdmin {
		created, err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("Admin user created")
		} else {
			log.Info().Str("username", cfg.Admin.Username).Msg("Admin user already exists")
		}
	}

	if cfg.Modes.SeedProjects {
		n, err := database.SeedProjects(ctx, db)
		if err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
		log.Info().Int("inserted", n).Msg("Project catalog seeded")
	}

	if cfg.Modes.GenerateColumnReport {
		log.Info().Msg("Generating column mismatch report...")
		mismatches, err := models.WriteColumnMismatchReport(os.Stdout, db.GetDB())
		if err != nil {
			return fmt.Errorf("column report: %w", err)
		}
		log.Info().Int("tables", mismatches).Msg("Column report written")
	}
	return nil
}
