package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

type EquipmentServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	List(ctx context.Context, filter repositories.EquipmentFilter) ([]entities.Equipment, error)
	Get(ctx context.Context, id uint64) (*entities.Equipment, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	Delete(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	categoryRepo  repositories.CategoryRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		categoryRepo:  categoryRepo,
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ManageEquipment); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(ctx, payload.CategoryID); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.FindByID(ctx, payload.MaintenanceTeamID); err != nil {
		return nil, err
	}
	if payload.TechnicianID != nil {
		if _, err := s.userRepo.FindByID(ctx, *payload.TechnicianID); err != nil {
			return nil, err
		}
	}

	return s.equipmentRepo.Create(ctx, &entities.Equipment{
		Name:              payload.Name,
		CategoryID:        payload.CategoryID,
		Company:           payload.Company,
		Department:        payload.Department,
		SerialNumber:      null.StringFromPtr(payload.SerialNumber),
		UsedByEmployee:    null.StringFromPtr(payload.UsedByEmployee),
		UsedInLocation:    null.StringFromPtr(payload.UsedInLocation),
		Description:       null.StringFromPtr(payload.Description),
		TechnicianID:      null.Uint64FromPtr(payload.TechnicianID),
		MaintenanceTeamID: payload.MaintenanceTeamID,
		AssignedDate:      null.TimeFromPtr(payload.AssignedDate),
	})
}

func (s *EquipmentService) List(ctx context.Context, filter repositories.EquipmentFilter) ([]entities.Equipment, error) {
	if _, err := loadActor(ctx, s.userRepo); err != nil {
		return nil, err
	}
	return s.equipmentRepo.ListAll(ctx, filter)
}

func (s *EquipmentService) Get(ctx context.Context, id uint64) (*entities.Equipment, error) {
	if _, err := loadActor(ctx, s.userRepo); err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindByID(ctx, id)
}

func (s *EquipmentService) Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ManageEquipment); err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		eq.Name = *payload.Name
	}
	if payload.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *payload.CategoryID); err != nil {
			return nil, err
		}
		eq.CategoryID = *payload.CategoryID
	}
	if payload.Company != nil {
		eq.Company = *payload.Company
	}
	if payload.Department != nil {
		eq.Department = *payload.Department
	}
	if payload.SerialNumber != nil {
		eq.SerialNumber = null.StringFrom(*payload.SerialNumber)
	}
	if payload.UsedByEmployee != nil {
		eq.UsedByEmployee = null.StringFrom(*payload.UsedByEmployee)
	}
	if payload.UsedInLocation != nil {
		eq.UsedInLocation = null.StringFrom(*payload.UsedInLocation)
	}
	if payload.Description != nil {
		eq.Description = null.StringFrom(*payload.Description)
	}
	if payload.TechnicianID != nil {
		if _, err := s.userRepo.FindByID(ctx, *payload.TechnicianID); err != nil {
			return nil, err
		}
		eq.TechnicianID = null.Uint64From(*payload.TechnicianID)
	}
	if payload.MaintenanceTeamID != nil {
		if _, err := s.teamRepo.FindByID(ctx, *payload.MaintenanceTeamID); err != nil {
			return nil, err
		}
		eq.MaintenanceTeamID = *payload.MaintenanceTeamID
	}
	if payload.AssignedDate != nil {
		eq.AssignedDate = null.TimeFrom(*payload.AssignedDate)
	}
	if payload.IsScrapped != nil {
		// Scrapping is one-way; a scrapped unit stays scrapped.
		if !*payload.IsScrapped && eq.IsScrapped {
			return nil, apperrors.ErrInvalidState
		}
		eq.IsScrapped = *payload.IsScrapped
	}

	return s.equipmentRepo.Update(ctx, eq)
}

func (s *EquipmentService) Delete(ctx context.Context, id uint64) error {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return err
	}
	if err := requireCapability(actor, authz.ManageEquipment); err != nil {
		return err
	}
	return s.equipmentRepo.Delete(ctx, id)
}
