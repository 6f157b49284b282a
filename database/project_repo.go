package database

import (
	"github.com/rpupo63/agency-site-backend/models"
	"gorm.io/gorm"
)

type WebsiteProjectRepo = TableRepo[models.WebsiteProject]

type VideoProjectRepo = TableRepo[models.VideoProject]

type SocialProjectRepo = TableRepo[models.SocialProject]

func NewWebsiteProjectRepo(db *gorm.DB) *WebsiteProjectRepo {
	return NewTableRepo[models.WebsiteProject](db, "website project")
}

func NewVideoProjectRepo(db *gorm.DB) *VideoProjectRepo {
	return NewTableRepo[models.VideoProject](db, "video project")
}

func NewSocialProjectRepo(db *gorm.DB) *SocialProjectRepo {
	return NewTableRepo[models.SocialProject](db, "social project")
}
