package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-site-backend/auth"
	"github.com/rpupo63/agency-site-backend/config"
	"github.com/rpupo63/agency-site-backend/database"
	"github.com/rpupo63/agency-site-backend/services"
	"github.com/rpupo63/agency-site-backend/storage"
	"github.com/rs/zerolog/log"
)

// Dependencies are the collaborators the HTTP layer is built from. UploadDir is served under
// /uploads when uploads are stored locally.
type Dependencies struct {
	Database  database.Database
	Auth      *auth.Service
	Store     storage.Store
	Notifier  services.Notifier
	UploadDir string
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg *config.Config, deps Dependencies) (Server, error) {
	if deps.Auth == nil || deps.Store == nil {
		return Server{}, fmt.Errorf("api: auth service and upload store are required")
	}

	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(deps, withConfig(cfg), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      *config.Config
	startupTime time.Time
}

func withConfig(c *config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}
	cfg := router.config
	if cfg == nil {
		cfg = &config.Config{}
		cfg.Upload.MaxBytes = config.DefaultUploadMaxBytes
	}

	if deps.Notifier == nil {
		deps.Notifier = services.NewNotifyEverywhere()
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(MetricsMiddleware)

	// Initialize all handlers
	handlers := initializeHandlers(deps, cfg.Upload.MaxBytes, cfg.IsProduction(), router.startupTime)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(deps.Auth)

	// Apply CORS middleware
	chiRouter.Use(CORSCheckMiddleware(cfg.CORSOrigins))
	chiRouter.Use(corsMiddleware(cfg.CORSOrigins))

	// Setup all route types
	setupPublicRoutes(chiRouter, handlers, authMiddleware)
	setupAdminRoutes(chiRouter, handlers, authMiddleware)
	setupStaticRoutes(chiRouter, deps.UploadDir)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
