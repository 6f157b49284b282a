package api

import "time"

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, maxUploadBytes int64, secureCookies bool, startupTime time.Time) *routeHandlers {
	db := deps.Database
	return &routeHandlers{
		projectHandler: newProjectHandler(db.WebsiteProjectRepo(), db.VideoProjectRepo(), db.SocialProjectRepo()),
		contactHandler: newContactHandler(db.ContactMessageRepo(), deps.Notifier),
		authHandler:    newAuthHandler(deps.Auth, secureCookies),
		uploadHandler:  newUploadHandler(deps.Store, maxUploadBytes),
		healthHandler:  newHealthHandler(db, startupTime),
	}
}
