package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account allowed to sign in to the admin backend.
// Password holds the bcrypt hash and is never serialised.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey;not null"`
	Username  string    `json:"username" gorm:"type:text;not null;uniqueIndex:idx_users_username"`
	Password  string    `json:"-" gorm:"column:password;type:text;not null"`
	IsAdmin   bool      `json:"isAdmin" gorm:"column:is_admin;not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

// Principal is the identity attached to an authenticated request.
type Principal struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"isAdmin"`
}

func (u User) Principal() Principal {
	return Principal{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
