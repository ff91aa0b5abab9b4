package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerHoldsEveryCapability(t *testing.T) {
	for _, capability := range []string{
		ManageEquipment, ManageTeams, ManageCategories,
		AssignRequest, UpdateStatus, EditRequest,
		ViewAllRequests, ViewCalendar, ViewReports, CreatePreventive,
	} {
		assert.True(t, Can("manager", capability), capability)
	}
}

func TestTechnicianCapabilities(t *testing.T) {
	allowed := []string{AssignRequest, UpdateStatus, ViewAllRequests, ViewCalendar, CreatePreventive}
	denied := []string{ManageEquipment, ManageTeams, ManageCategories, EditRequest, ViewReports}

	for _, capability := range allowed {
		assert.True(t, Can("technician", capability), capability)
	}
	for _, capability := range denied {
		assert.False(t, Can("technician", capability), capability)
	}
}

func TestPlainUserHoldsNothing(t *testing.T) {
	for _, capability := range []string{
		ManageEquipment, ManageTeams, ManageCategories,
		AssignRequest, UpdateStatus, EditRequest,
		ViewAllRequests, ViewCalendar, ViewReports, CreatePreventive,
	} {
		assert.False(t, Can("user", capability), capability)
	}
}

func TestUnknownRoleHoldsNothing(t *testing.T) {
	assert.False(t, Can("root", ManageTeams))
	assert.False(t, Can("", ViewReports))
}
