package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type MaintenanceRequest struct {
	ID      uint64 `json:"id" db:"id"`
	Subject string `json:"subject" db:"subject"`

	// corrective or preventive.
	Type string `json:"type" db:"type"`

	// low, medium, high, critical. Defaults to medium.
	Priority string `json:"priority" db:"priority"`

	EquipmentID uint64 `json:"equipment_id" db:"equipment_id"`

	// Derived from equipment.maintenance_team_id at creation, recomputed when a
	// manager moves the request onto different equipment.
	TeamID uint64 `json:"team_id" db:"team_id"`

	// new, in_progress, repaired, scrap.
	Status string `json:"status" db:"status"`

	AssignedTo    null.Uint64 `json:"assigned_to" db:"assigned_to"`
	ScheduledDate null.Time   `json:"scheduled_date" db:"scheduled_date"`

	CreatedBy uint64    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Enrichment, populated by joins; not columns of the requests table.
	Equipment          *EquipmentRef `json:"equipment,omitempty" db:"-"`
	Team               *TeamRef      `json:"team,omitempty" db:"-"`
	AssignedTechnician *UserRef      `json:"assigned_technician,omitempty" db:"-"`
	Creator            *UserRef      `json:"creator,omitempty" db:"-"`
}

// Short references attached to a request when listing.
type EquipmentRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type TeamRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
