package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/rpupo63/agency-site-backend/api"
	"github.com/rpupo63/agency-site-backend/auth"
	"github.com/rpupo63/agency-site-backend/config"
	"github.com/rpupo63/agency-site-backend/database"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading configuration")
	}
	setupLogger(cfg)
	log.Info().Str("env", cfg.Env).Msg("Initializing app...")

	if cfg.Session.Secret == config.DefaultSessionSecret {
		log.Warn().Msg("SESSION_SECRET is not set, using the development default")
	}

	db, err := database.Open(cfg.DBFile, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.DBFile).Msg("Error connecting to database")
	}
	currentDB := database.New(db)
	defer currentDB.Close()

	if err := currentDB.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	sessions, closeSessions, err := newSessionStore(ctx, cfg, currentDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing session store")
	}
	defer closeSessions()

	authService, err := auth.NewService(currentDB.UserRepo(), sessions, auth.Config{
		Secret:     cfg.Session.Secret,
		SessionTTL: cfg.Session.TTL,
		BcryptCost: cfg.Session.BcryptCost,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing auth service")
	}

	// Maintenance modes run once and exit
	if cfg.Modes.CreateAdmin || cfg.Modes.SeedProjects || cfg.Modes.GenerateColumnReport {
		if err := runMaintenance(ctx, cfg, currentDB, authService); err != nil {
			log.Fatal().Err(err).Msg("Maintenance task failed")
		}
		return
	}

	store, uploadDir, err := newUploadStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing upload storage")
	}

	server, err := api.NewServer(cfg, api.Dependencies{
		Database:  currentDB,
		Auth:      authService,
		Store:     store,
		Notifier:  newNotifier(cfg),
		UploadDir: uploadDir,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	if err := runServer(server, signals, 30*time.Second); !errors.Is(err, errInterrupted) {
		log.Error().Err(err).Msg("Server stopped unexpectedly")
	}
}

// runServer serves until the server fails or a signal arrives, then shuts down gracefully and
// waits for the listener to report that it stopped.
func runServer(server api.Server, signals <-chan os.Signal, timeout time.Duration) error {
	// Room for both senders so neither blocks once shutdown starts.
	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel, signals)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(timeout)

	if !errors.Is(fatalErr, errInterrupted) {
		return fatalErr
	}
	select {
	case err := <-errChannel:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server stopped with an error")
		}
	case <-time.After(timeout):
		log.Warn().Msg("Server did not report shutdown in time")
	}
	return fatalErr
}

var errInterrupted = errors.New("interrupted")

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error, signals <-chan os.Signal) {
	errChannel <- fmt.Errorf("%w: %s", errInterrupted, <-signals)
}
