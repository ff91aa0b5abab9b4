package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Equipment struct {
	ID         uint64 `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	CategoryID uint64 `json:"category_id" db:"category_id"`

	Company    string `json:"company" db:"company"`
	Department string `json:"department" db:"department"`

	SerialNumber   null.String `json:"serial_number" db:"serial_number"`
	UsedByEmployee null.String `json:"used_by_employee" db:"used_by_employee"`
	UsedInLocation null.String `json:"used_in_location" db:"used_in_location"`
	Description    null.String `json:"description" db:"description"`

	// Default technician for the unit, informational only.
	TechnicianID null.Uint64 `json:"technician_id" db:"technician_id"`

	// MaintenanceTeamID decides which team owns requests raised against this
	// unit. Required.
	MaintenanceTeamID uint64 `json:"maintenance_team_id" db:"maintenance_team_id"`

	AssignedDate null.Time `json:"assigned_date" db:"assigned_date"`

	// One-way flag: set true directly by a manager or by scrapping a request;
	// never reset.
	IsScrapped bool `json:"is_scrapped" db:"is_scrapped"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
