package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type WebsiteProject struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:text;primaryKey;not null"`
	Title       string                      `json:"title" gorm:"type:text;not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Image       string                      `json:"image" gorm:"type:text;not null"`
	DemoURL     string                      `json:"demoUrl" gorm:"column:demo_url;type:text;not null"`
	GithubURL   string                      `json:"githubUrl" gorm:"column:github_url;type:text;not null"`
	Tags        datatypes.JSONSlice[string] `json:"tags" gorm:"type:text;not null"`
	Order       string                      `json:"order" gorm:"column:order;type:text;not null"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

func (p *WebsiteProject) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	p.Order = defaultOrder(p.Order)
	return nil
}

type WebsiteProjectInput struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Image       string            `json:"image" validate:"required"`
	DemoURL     string            `json:"demoUrl" validate:"required"`
	GithubURL   string            `json:"githubUrl" validate:"required"`
	Tags        Encoded[[]string] `json:"tags"`
	Order       string            `json:"order"`
}

func (in WebsiteProjectInput) ToModel() WebsiteProject {
	return WebsiteProject{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		DemoURL:     in.DemoURL,
		GithubURL:   in.GithubURL,
		Tags:        stringSlice(in.Tags.Value),
		Order:       defaultOrder(in.Order),
	}
}

// WebsiteProjectPatch is a partial update; nil fields are left as stored.
type WebsiteProjectPatch struct {
	Title       *string           `json:"title" validate:"omitnil,min=1"`
	Description *string           `json:"description" validate:"omitnil,min=1"`
	Image       *string           `json:"image" validate:"omitnil,min=1"`
	DemoURL     *string           `json:"demoUrl" validate:"omitnil,min=1"`
	GithubURL   *string           `json:"githubUrl" validate:"omitnil,min=1"`
	Tags        Encoded[[]string] `json:"tags"`
	Order       *string           `json:"order"`
}

func (p WebsiteProjectPatch) Columns() map[string]any {
	cols := map[string]any{}
	putString(cols, "title", p.Title)
	putString(cols, "description", p.Description)
	putString(cols, "image", p.Image)
	putString(cols, "demo_url", p.DemoURL)
	putString(cols, "github_url", p.GithubURL)
	putString(cols, "order", p.Order)
	if p.Tags.Set() {
		cols["tags"] = stringSlice(p.Tags.Value)
	}
	return cols
}

func putString(cols map[string]any, column string, v *string) {
	if v != nil {
		cols[column] = *v
	}
}

func stringSlice(v []string) datatypes.JSONSlice[string] {
	if v == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](v)
}
