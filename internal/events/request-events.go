package events

import (
	"gearguard/internal/entities"
)

const (
	RequestCreatedName       = "request.created"
	RequestStatusChangedName = "request.status_changed"
	RequestAssignedName      = "request.assigned"
)

// RequestCreatedEvent fires after a maintenance request is persisted. Every
// manager gets notified.
type RequestCreatedEvent struct {
	Request *entities.MaintenanceRequest
	ActorID uint64
}

func (e RequestCreatedEvent) Name() string { return RequestCreatedName }

// RequestStatusChangedEvent fires after a status transition. The creator of
// the request gets notified.
type RequestStatusChangedEvent struct {
	Request   *entities.MaintenanceRequest
	OldStatus string
	NewStatus string
	ActorID   uint64
}

func (e RequestStatusChangedEvent) Name() string { return RequestStatusChangedName }

// RequestAssignedEvent fires after a technician is put on a request. The
// assignee gets notified.
type RequestAssignedEvent struct {
	Request    *entities.MaintenanceRequest
	AssigneeID uint64
	ActorID    uint64
}

func (e RequestAssignedEvent) Name() string { return RequestAssignedName }
