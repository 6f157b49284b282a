package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SocialVideo is one highlighted clip of a social campaign.
type SocialVideo struct {
	Name  string `json:"name"`
	Views string `json:"views"`
}

type SocialProject struct {
	ID          uuid.UUID                             `json:"id" gorm:"type:text;primaryKey;not null"`
	Platform    string                                `json:"platform" gorm:"type:text;not null"`
	Title       string                                `json:"title" gorm:"type:text;not null"`
	Description string                                `json:"description" gorm:"type:text;not null"`
	Icon        string                                `json:"icon" gorm:"type:text;not null"`
	Image       string                                `json:"image" gorm:"type:text;not null"`
	Images      datatypes.JSONSlice[string]           `json:"images" gorm:"type:text;not null"`
	LeadCount   *string                               `json:"leadCount" gorm:"column:lead_count;type:text"`
	Videos      *datatypes.JSONSlice[SocialVideo]     `json:"videos" gorm:"type:text"`
	Metrics     datatypes.JSONType[map[string]string] `json:"metrics" gorm:"type:text;not null"`
	Reach       string                                `json:"reach" gorm:"type:text;not null"`
	Engagement  string                                `json:"engagement" gorm:"type:text;not null"`
	CampaignURL *string                               `json:"campaignUrl" gorm:"column:campaign_url;type:text"`
	Order       string                                `json:"order" gorm:"column:order;type:text;not null"`
	CreatedAt   time.Time                             `json:"createdAt"`
	IconKnown   bool                                  `json:"iconKnown" gorm:"-"`
}

func (p *SocialProject) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
	p.Order = defaultOrder(p.Order)
	return nil
}

func (p *SocialProject) AfterCreate(tx *gorm.DB) error {
	_, p.IconKnown = SocialIcon(p.Icon)
	return nil
}

func (p *SocialProject) AfterFind(tx *gorm.DB) error {
	_, p.IconKnown = SocialIcon(p.Icon)
	return nil
}

type SocialProjectInput struct {
	Platform    string                     `json:"platform" validate:"required"`
	Title       string                     `json:"title" validate:"required"`
	Description string                     `json:"description" validate:"required"`
	Icon        string                     `json:"icon" validate:"required"`
	Image       string                     `json:"image" validate:"required"`
	Images      Encoded[[]string]          `json:"images"`
	LeadCount   *string                    `json:"leadCount"`
	Videos      Encoded[[]SocialVideo]     `json:"videos"`
	Metrics     Encoded[map[string]string] `json:"metrics" encoded:"required"`
	Reach       string                     `json:"reach" validate:"required"`
	Engagement  string                     `json:"engagement" validate:"required"`
	CampaignURL *string                    `json:"campaignUrl"`
	Order       string                     `json:"order"`
}

func (in SocialProjectInput) ToModel() SocialProject {
	p := SocialProject{
		Platform:    in.Platform,
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		Image:       in.Image,
		Images:      stringSlice(in.Images.Value),
		LeadCount:   in.LeadCount,
		Metrics:     metricsMap(in.Metrics.Value),
		Reach:       in.Reach,
		Engagement:  in.Engagement,
		CampaignURL: in.CampaignURL,
		Order:       defaultOrder(in.Order),
	}
	if in.Videos.Set() {
		p.Videos = videoSlice(in.Videos.Value)
	}
	return p
}

type SocialProjectPatch struct {
	Platform    *string                    `json:"platform" validate:"omitnil,min=1"`
	Title       *string                    `json:"title" validate:"omitnil,min=1"`
	Description *string                    `json:"description" validate:"omitnil,min=1"`
	Icon        *string                    `json:"icon" validate:"omitnil,min=1"`
	Image       *string                    `json:"image" validate:"omitnil,min=1"`
	Images      Encoded[[]string]          `json:"images"`
	LeadCount   *string                    `json:"leadCount"`
	Videos      Encoded[[]SocialVideo]     `json:"videos"`
	Metrics     Encoded[map[string]string] `json:"metrics"`
	Reach       *string                    `json:"reach" validate:"omitnil,min=1"`
	Engagement  *string                    `json:"engagement" validate:"omitnil,min=1"`
	CampaignURL *string                    `json:"campaignUrl"`
	Order       *string                    `json:"order"`
}

func (p SocialProjectPatch) Columns() map[string]any {
	cols := map[string]any{}
	putString(cols, "platform", p.Platform)
	putString(cols, "title", p.Title)
	putString(cols, "description", p.Description)
	putString(cols, "icon", p.Icon)
	putString(cols, "image", p.Image)
	putString(cols, "lead_count", p.LeadCount)
	putString(cols, "reach", p.Reach)
	putString(cols, "engagement", p.Engagement)
	putString(cols, "campaign_url", p.CampaignURL)
	putString(cols, "order", p.Order)
	if p.Images.Set() {
		cols["images"] = stringSlice(p.Images.Value)
	}
	if p.Videos.Set() {
		cols["videos"] = videoSlice(p.Videos.Value)
	}
	if p.Metrics.Set() {
		cols["metrics"] = metricsMap(p.Metrics.Value)
	}
	return cols
}

func videoSlice(v []SocialVideo) *datatypes.JSONSlice[SocialVideo] {
	s := datatypes.JSONSlice[SocialVideo](v)
	if s == nil {
		s = datatypes.JSONSlice[SocialVideo]{}
	}
	return &s
}

func metricsMap(m map[string]string) datatypes.JSONType[map[string]string] {
	if m == nil {
		m = map[string]string{}
	}
	return datatypes.NewJSONType(m)
}
