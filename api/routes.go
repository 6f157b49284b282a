package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/agency-site-backend/metrics"
	"github.com/rpupo63/agency-site-backend/storage"
)

// setupPublicRoutes mounts everything a visitor can reach without a session.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware)
		r.Use(authMiddleware.identify)

		r.Get("/api/health", handlers.healthHandler.health())

		// Auth endpoints
		r.Post("/api/auth/login", handlers.authHandler.login())
		r.Post("/api/auth/logout", handlers.authHandler.logout())
		r.Get("/api/auth/me", handlers.authHandler.me())

		r.Post("/api/contact", handlers.contactHandler.submitMessage())

		// Project catalog
		r.Get("/api/projects", handlers.projectHandler.getCatalog())
		r.Get("/api/projects/{kind}", handlers.projectHandler.listProjects())
		r.Get("/api/projects/{kind}/{id}", handlers.projectHandler.getProject())
	})
}

// setupAdminRoutes mounts the content management endpoints.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware)
		r.Use(authMiddleware.identify)
		r.Use(authMiddleware.requireAdmin)

		r.Get("/api/contact", handlers.contactHandler.listMessages())

		r.Post("/api/projects/{kind}", handlers.projectHandler.createProject())
		r.Put("/api/projects/{kind}/{id}", handlers.projectHandler.updateProject())
		r.Delete("/api/projects/{kind}/{id}", handlers.projectHandler.deleteProject())

		r.Post("/api/upload/image", handlers.uploadHandler.uploadMedia(storage.MediaImage))
		r.Post("/api/upload/video", handlers.uploadHandler.uploadMedia(storage.MediaVideo))
	})
}

// setupStaticRoutes mounts metrics and, for the local store, the uploads directory.
func setupStaticRoutes(r chi.Router, uploadDir string) {
	r.Handle("/metrics", metrics.Handler())
	if uploadDir != "" {
		r.Handle("/uploads/*", uploadsFileServer(uploadDir))
	}
}
