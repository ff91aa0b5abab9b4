package dto

import "time"

type CreateEquipmentDTO struct {
	Name              string     `json:"name" validate:"required,min=1,max=200"`
	CategoryID        uint64     `json:"category_id" validate:"required"`
	Company           string     `json:"company" validate:"required,min=1,max=200"`
	Department        string     `json:"department" validate:"required,min=1,max=200"`
	SerialNumber      *string    `json:"serial_number"`
	UsedByEmployee    *string    `json:"used_by_employee"`
	UsedInLocation    *string    `json:"used_in_location"`
	Description       *string    `json:"description"`
	TechnicianID      *uint64    `json:"technician_id"`
	MaintenanceTeamID uint64     `json:"maintenance_team_id" validate:"required"`
	AssignedDate      *time.Time `json:"assigned_date"`
}

type UpdateEquipmentDTO struct {
	Name              *string    `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID        *uint64    `json:"category_id"`
	Company           *string    `json:"company" validate:"omitempty,min=1,max=200"`
	Department        *string    `json:"department" validate:"omitempty,min=1,max=200"`
	SerialNumber      *string    `json:"serial_number"`
	UsedByEmployee    *string    `json:"used_by_employee"`
	UsedInLocation    *string    `json:"used_in_location"`
	Description       *string    `json:"description"`
	TechnicianID      *uint64    `json:"technician_id"`
	MaintenanceTeamID *uint64    `json:"maintenance_team_id"`
	AssignedDate      *time.Time `json:"assigned_date"`

	// May only go false -> true; scrapping is one-way.
	IsScrapped *bool `json:"is_scrapped"`
}
