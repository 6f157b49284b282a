package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey;not null"`
	FirstName string    `json:"firstName" gorm:"column:first_name;type:text;not null"`
	LastName  string    `json:"lastName" gorm:"column:last_name;type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	Subject   string    `json:"subject" gorm:"type:text;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

// ContactMessageInput is what the contact form submits.
type ContactMessageInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Subject   string `json:"subject" validate:"required"`
	Message   string `json:"message" validate:"required,min=10"`
}

func (in *ContactMessageInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
}

func (in ContactMessageInput) ToModel() ContactMessage {
	return ContactMessage{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
	}
}
