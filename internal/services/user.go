package services

import (
	"context"

	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
)

type UserServiceInterface interface {
	Me(ctx context.Context) (*entities.User, error)
	ListAll(ctx context.Context) ([]entities.User, error)
	ListAssignable(ctx context.Context) ([]entities.User, error)
	ListPromotable(ctx context.Context) ([]entities.User, error)
	AssignRole(ctx context.Context, userID uint64, payload dto.AssignRoleDTO) error
	AssignTeam(ctx context.Context, userID uint64, payload dto.AssignTeamDTO) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	teamRepo repositories.TeamRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{userRepo: userRepo, teamRepo: teamRepo, logger: logger}
}

func (s *UserService) Me(ctx context.Context) (*entities.User, error) {
	return loadActor(ctx, s.userRepo)
}

func (s *UserService) ListAll(ctx context.Context) ([]entities.User, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ManageTeams); err != nil {
		return nil, err
	}
	return s.userRepo.ListAll(ctx)
}

// ListAssignable serves the technician picker on a request; anyone who may
// assign requests can see it.
func (s *UserService) ListAssignable(ctx context.Context) ([]entities.User, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.AssignRequest); err != nil {
		return nil, err
	}
	return s.userRepo.ListAssignable(ctx)
}

func (s *UserService) ListPromotable(ctx context.Context) ([]entities.User, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ManageTeams); err != nil {
		return nil, err
	}
	return s.userRepo.ListPromotable(ctx)
}

func (s *UserService) AssignRole(ctx context.Context, userID uint64, payload dto.AssignRoleDTO) error {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return err
	}
	if err := requireCapability(actor, authz.ManageTeams); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.UpdateRole(ctx, userID, payload.Role); err != nil {
		return err
	}

	s.logger.Info("role assigned",
		zap.Uint64("userID", userID),
		zap.String("role", payload.Role),
		zap.Uint64("actorID", actor.ID))
	return nil
}

func (s *UserService) AssignTeam(ctx context.Context, userID uint64, payload dto.AssignTeamDTO) error {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return err
	}
	if err := requireCapability(actor, authz.ManageTeams); err != nil {
		return err
	}

	if _, err := s.teamRepo.FindByID(ctx, payload.TeamID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.UpdateTeam(ctx, userID, payload.TeamID)
}
