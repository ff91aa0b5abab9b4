package services

import (
	"context"

	"github.com/aarondl/null/v8"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
)

type TeamServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	List(ctx context.Context) ([]entities.Team, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error)
	Delete(ctx context.Context, id uint64) error
}

type TeamService struct {
	teamRepo repositories.TeamRepositoryInterface
	userRepo repositories.UserRepositoryInterface
}

func NewTeamService(
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
) TeamServiceInterface {
	return &TeamService{teamRepo: teamRepo, userRepo: userRepo}
}

func (s *TeamService) Create(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ManageTeams); err != nil {
		return nil, err
	}
	return s.teamRepo.Create(ctx, payload.Name, null.StringFromPtr(payload.Description))
}

// List is open to every authenticated user; team names appear on requests and
// the calendar.
func (s *TeamService) List(ctx context.Context) ([]entities.Team, error) {
	if _, err := loadActor(ctx, s.userRepo); err != nil {
		return nil, err
	}
	return s.teamRepo.ListAll(ctx)
}

func (s *TeamService) Update(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ManageTeams); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := team.Name
	if payload.Name != nil {
		name = *payload.Name
	}
	description := team.Description
	if payload.Description != nil {
		description = null.StringFrom(*payload.Description)
	}
	return s.teamRepo.Update(ctx, id, name, description)
}

func (s *TeamService) Delete(ctx context.Context, id uint64) error {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return err
	}
	if err := requireCapability(actor, authz.ManageTeams); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, id)
}
