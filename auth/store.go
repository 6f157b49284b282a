package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-site-backend/models"
)

// SessionStore persists login sessions. Get returns nil for unknown ids. Replace stores a
// session and revokes the user's earlier sessions as one step.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, session models.Session) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// UserStore is the slice of the user repository the service needs. Finders return nil for
// unknown users; Create reports a taken username as a conflict.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}
