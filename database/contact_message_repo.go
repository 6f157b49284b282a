package database

import (
	"github.com/rpupo63/agency-site-backend/models"
	"gorm.io/gorm"
)

// ContactMessageRepo stores contact form submissions.
type ContactMessageRepo = TableRepo[models.ContactMessage]

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return NewTableRepo[models.ContactMessage](db, "contact message")
}
