package constants

// Roles.
const (
	RoleUser       = "user"
	RoleTechnician = "technician"
	RoleManager    = "manager"
)

// Request statuses.
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusRepaired   = "repaired"
	StatusScrap      = "scrap"
)

// Request types.
const (
	TypeCorrective = "corrective"
	TypePreventive = "preventive"
)

// Priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Notification types.
const (
	NotificationRequestCreated       = "REQUEST_CREATED"
	NotificationRequestStatusChanged = "REQUEST_STATUS_CHANGED"
	NotificationRequestAssigned      = "REQUEST_ASSIGNED"
)

// Open statuses count toward the "open" bucket in reports; everything else is
// closed.
var OpenStatuses = []string{StatusNew, StatusInProgress}

func IsOpenStatus(status string) bool {
	for _, s := range OpenStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusInProgress, StatusRepaired, StatusScrap:
		return true
	}
	return false
}

func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleTechnician, RoleManager:
		return true
	}
	return false
}
