package services

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

func TestAssignRole_ManagerOnly(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo()
	svc := NewUserService(userRepo, teamRepo, zap.NewNop())

	manager := userRepo.add(entities.User{Name: "M", Email: "m@x.com", Role: constants.RoleManager})
	tech := userRepo.add(entities.User{Name: "T", Email: "t@x.com", Role: constants.RoleTechnician})
	target := userRepo.add(entities.User{Name: "U", Email: "u@x.com", Role: constants.RoleUser})

	err := svc.AssignRole(asUser(tech.ID), target.ID, dto.AssignRoleDTO{Role: constants.RoleTechnician})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.AssignRole(asUser(manager.ID), target.ID, dto.AssignRoleDTO{Role: constants.RoleTechnician})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleTechnician, userRepo.users[target.ID].Role)
}

func TestAssignTeam_RequiresExistingTeam(t *testing.T) {
	userRepo := newFakeUserRepo()
	teamRepo := newFakeTeamRepo()
	svc := NewUserService(userRepo, teamRepo, zap.NewNop())

	manager := userRepo.add(entities.User{Name: "M", Email: "m@x.com", Role: constants.RoleManager})
	target := userRepo.add(entities.User{Name: "T", Email: "t@x.com", Role: constants.RoleTechnician})

	err := svc.AssignTeam(asUser(manager.ID), target.ID, dto.AssignTeamDTO{TeamID: 99})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	team := teamRepo.add("Mechanical")
	err = svc.AssignTeam(asUser(manager.ID), target.ID, dto.AssignTeamDTO{TeamID: team.ID})
	require.NoError(t, err)
	assert.Equal(t, team.ID, userRepo.users[target.ID].TeamID.Uint64)
}

func TestListPromotable(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, newFakeTeamRepo(), zap.NewNop())

	manager := userRepo.add(entities.User{Name: "M", Email: "m@x.com", Role: constants.RoleManager})
	userRepo.add(entities.User{Name: "Plain", Email: "p@x.com", Role: constants.RoleUser})
	userRepo.add(entities.User{Name: "Free Tech", Email: "ft@x.com", Role: constants.RoleTechnician})
	userRepo.add(entities.User{
		Name: "Teamed Tech", Email: "tt@x.com", Role: constants.RoleTechnician, TeamID: null.Uint64From(1),
	})

	promotable, err := svc.ListPromotable(asUser(manager.ID))
	require.NoError(t, err)

	names := make([]string, 0, len(promotable))
	for _, u := range promotable {
		names = append(names, u.Name)
	}
	assert.ElementsMatch(t, []string{"Plain", "Free Tech"}, names)
}

func TestListAssignable_TechnicianAllowedUserNot(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, newFakeTeamRepo(), zap.NewNop())

	tech := userRepo.add(entities.User{Name: "T", Email: "t@x.com", Role: constants.RoleTechnician})
	plain := userRepo.add(entities.User{Name: "U", Email: "u@x.com", Role: constants.RoleUser})

	_, err := svc.ListAssignable(asUser(tech.ID))
	assert.NoError(t, err)

	_, err = svc.ListAssignable(asUser(plain.ID))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
