package authz

// Capabilities. The set is closed: every mutation and gated query in the
// system checks exactly one of these.
const (
	ManageEquipment  = "manage_equipment"
	ManageTeams      = "manage_teams"
	ManageCategories = "manage_categories"
	AssignRequest    = "assign_request"
	UpdateStatus     = "update_status"
	EditRequest      = "edit_request"
	ViewAllRequests  = "view_all_requests"
	ViewCalendar     = "view_calendar"
	ViewReports      = "view_reports"
	CreatePreventive = "create_preventive"
)

// rolePermissions maps each role to its capability set. Managers hold every
// capability; technicians hold the request-handling subset; plain users hold
// none (they can still create corrective requests and read their own data,
// which is not capability-gated).
var rolePermissions = map[string]map[string]bool{
	"manager": {
		ManageEquipment:  true,
		ManageTeams:      true,
		ManageCategories: true,
		AssignRequest:    true,
		UpdateStatus:     true,
		EditRequest:      true,
		ViewAllRequests:  true,
		ViewCalendar:     true,
		ViewReports:      true,
		CreatePreventive: true,
	},
	"technician": {
		AssignRequest:    true,
		UpdateStatus:     true,
		ViewAllRequests:  true,
		ViewCalendar:     true,
		CreatePreventive: true,
	},
	"user": {},
}

// Can reports whether the role holds the capability. Unknown roles hold
// nothing.
func Can(role, capability string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[capability]
}
