package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Notification struct {
	ID     uint64 `json:"id" db:"id"`
	UserID uint64 `json:"user_id" db:"user_id"`

	// REQUEST_CREATED, REQUEST_STATUS_CHANGED, REQUEST_ASSIGNED.
	Type    string `json:"type" db:"type"`
	Title   string `json:"title" db:"title"`
	Message string `json:"message" db:"message"`

	EntityType null.String `json:"entity_type" db:"entity_type"`
	EntityID   null.String `json:"entity_id" db:"entity_id"`

	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
