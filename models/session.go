package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login record. Deleting it revokes every token that names it.
type Session struct {
	ID        string    `json:"id" gorm:"type:text;primaryKey;not null"`
	UserID    uuid.UUID `json:"userId" gorm:"type:text;not null;index:idx_sessions_user_id"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index:idx_sessions_expires_at"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
