package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type User struct {
	ID     uint64 `json:"id" db:"id"`
	AuthID string `json:"-" db:"auth_id"`
	Name   string `json:"name" db:"name"`
	Email  string `json:"email" db:"email"`

	// One of: user, technician, manager.
	Role string `json:"role" db:"role"`

	TeamID null.Uint64 `json:"team_id" db:"team_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
