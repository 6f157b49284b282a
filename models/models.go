// Package models defines the stored entities, the payloads clients may send to create or
// patch them, and the validation rules for those payloads.
package models

import (
	"github.com/google/uuid"
)

// All returns every table struct, in migration order.
func All() []any {
	return []any{
		&User{},
		&Session{},
		&ContactMessage{},
		&WebsiteProject{},
		&VideoProject{},
		&SocialProject{},
	}
}

// TableNames maps table names to their structs for reporting.
func TableNames() map[string]any {
	return map[string]any{
		"users":            User{},
		"sessions":         Session{},
		"contact_messages": ContactMessage{},
		"website_projects": WebsiteProject{},
		"video_projects":   VideoProject{},
		"social_projects":  SocialProject{},
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func defaultOrder(order string) string {
	if order == "" {
		return "0"
	}
	return order
}
