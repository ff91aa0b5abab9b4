package dto

import "time"

type CreateRequestDTO struct {
	Subject       string     `json:"subject" validate:"required,min=1,max=500"`
	EquipmentID   uint64     `json:"equipment_id" validate:"required"`
	Type          string     `json:"type" validate:"required,oneof=corrective preventive"`
	Priority      *string    `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

type UpdateRequestStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=new in_progress repaired scrap"`
}

type AssignTechnicianDTO struct {
	TechnicianID uint64 `json:"technician_id" validate:"required"`
}

type UpdateRequestDTO struct {
	Subject       *string    `json:"subject" validate:"omitempty,min=1,max=500"`
	EquipmentID   *uint64    `json:"equipment_id"`
	Priority      *string    `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}
