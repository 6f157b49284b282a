package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoProject struct {
	ID          uuid.UUID   `json:"id" gorm:"type:text;primaryKey;not null"`
	Title       string      `json:"title" gorm:"type:text;not null"`
	Description string      `json:"description" gorm:"type:text;not null"`
	Duration    string      `json:"duration" gorm:"type:text;not null"`
	Quality     string      `json:"quality" gorm:"type:text;not null"`
	Thumbnail   string      `json:"thumbnail" gorm:"type:text;not null"`
	VideoURL    string      `json:"videoUrl" gorm:"column:video_url;type:text;not null"`
	Category    string      `json:"category" gorm:"type:text;not null"`
	Order       string      `json:"order" gorm:"column:order;type:text;not null"`
	CreatedAt   time.Time   `json:"createdAt"`
	Source      VideoSource `json:"source" gorm:"-"`
}

func (p *VideoProject) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	p.Order = defaultOrder(p.Order)
	return nil
}

func (p *VideoProject) AfterCreate(tx *gorm.DB) error {
	p.Source = ClassifyVideoURL(p.VideoURL)
	return nil
}

func (p *VideoProject) AfterFind(tx *gorm.DB) error {
	p.Source = ClassifyVideoURL(p.VideoURL)
	return nil
}

type VideoProjectInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Duration    string `json:"duration" validate:"required"`
	Quality     string `json:"quality" validate:"required"`
	Thumbnail   string `json:"thumbnail" validate:"required"`
	VideoURL    string `json:"videoUrl" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Order       string `json:"order"`
}

func (in VideoProjectInput) ToModel() VideoProject {
	return VideoProject{
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		Quality:     in.Quality,
		Thumbnail:   in.Thumbnail,
		VideoURL:    in.VideoURL,
		Category:    in.Category,
		Order:       defaultOrder(in.Order),
	}
}

type VideoProjectPatch struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Duration    *string `json:"duration" validate:"omitnil,min=1"`
	Quality     *string `json:"quality" validate:"omitnil,min=1"`
	Thumbnail   *string `json:"thumbnail" validate:"omitnil,min=1"`
	VideoURL    *string `json:"videoUrl" validate:"omitnil,min=1"`
	Category    *string `json:"category" validate:"omitnil,min=1"`
	Order       *string `json:"order"`
}

func (p VideoProjectPatch) Columns() map[string]any {
	cols := map[string]any{}
	putString(cols, "title", p.Title)
	putString(cols, "description", p.Description)
	putString(cols, "duration", p.Duration)
	putString(cols, "quality", p.Quality)
	putString(cols, "thumbnail", p.Thumbnail)
	putString(cols, "video_url", p.VideoURL)
	putString(cols, "category", p.Category)
	putString(cols, "order", p.Order)
	return cols
}
