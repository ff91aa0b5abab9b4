package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"
)

type RequestServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error)
	ListMy(ctx context.Context) ([]entities.MaintenanceRequest, error)
	ListAll(ctx context.Context, filter repositories.RequestFilter) ([]entities.MaintenanceRequest, error)
	Get(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) (*entities.MaintenanceRequest, error)
	Assign(ctx context.Context, id uint64, payload dto.AssignTechnicianDTO) (*entities.MaintenanceRequest, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) (*entities.MaintenanceRequest, error)
	Scrap(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	Calendar(ctx context.Context, from, to time.Time) ([]entities.MaintenanceRequest, error)
}

type RequestService struct {
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	eventBus      *eventbus.Bus
	logger        *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	eventBus *eventbus.Bus,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		eventBus:      eventBus,
		logger:        logger,
	}
}

func (s *RequestService) Create(ctx context.Context, payload dto.CreateRequestDTO) (*entities.MaintenanceRequest, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindByID(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}
	if equipment.IsScrapped {
		return nil, apperrors.ErrInvalidState
	}

	// Plain users only raise breakdown reports; a preventive request from
	// them is silently recorded as corrective.
	requestType := payload.Type
	if requestType == constants.TypePreventive && !authz.Can(actor.Role, authz.CreatePreventive) {
		requestType = constants.TypeCorrective
	}

	priority := constants.PriorityMedium
	if payload.Priority != nil {
		priority = *payload.Priority
	}

	created, err := s.requestRepo.Create(ctx, &entities.MaintenanceRequest{
		Subject:       payload.Subject,
		Type:          requestType,
		Priority:      priority,
		EquipmentID:   equipment.ID,
		TeamID:        equipment.MaintenanceTeamID,
		Status:        constants.StatusNew,
		ScheduledDate: null.TimeFromPtr(payload.ScheduledDate),
		CreatedBy:     actor.ID,
	})
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, events.RequestCreatedEvent{Request: created, ActorID: actor.ID})
	s.logger.Info("maintenance request created",
		zap.Uint64("requestID", created.ID),
		zap.Uint64("teamID", created.TeamID),
		zap.String("type", created.Type))
	return created, nil
}

func (s *RequestService) ListMy(ctx context.Context) ([]entities.MaintenanceRequest, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	return s.requestRepo.ListByCreator(ctx, actor.ID)
}

func (s *RequestService) ListAll(ctx context.Context, filter repositories.RequestFilter) ([]entities.MaintenanceRequest, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ViewAllRequests); err != nil {
		return nil, err
	}
	return s.requestRepo.ListAll(ctx, filter)
}

// Get returns one request. Creators always see their own; everyone else needs
// the all-requests view.
func (s *RequestService) Get(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.CreatedBy != actor.ID {
		if err := requireCapability(actor, authz.ViewAllRequests); err != nil {
			return nil, err
		}
	}
	return request, nil
}

func (s *RequestService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) (*entities.MaintenanceRequest, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.UpdateStatus); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Same-value transitions still write and notify; deduplication is left
	// to the caller.
	oldStatus := request.Status
	if payload.Status == constants.StatusScrap {
		err = s.requestRepo.Scrap(ctx, request.ID, request.EquipmentID)
	} else {
		err = s.requestRepo.UpdateStatus(ctx, request.ID, payload.Status)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, events.RequestStatusChangedEvent{
		Request:   updated,
		OldStatus: oldStatus,
		NewStatus: updated.Status,
		ActorID:   actor.ID,
	})
	return updated, nil
}

func (s *RequestService) Assign(ctx context.Context, id uint64, payload dto.AssignTechnicianDTO) (*entities.MaintenanceRequest, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.AssignRequest); err != nil {
		return nil, err
	}

	assignee, err := s.userRepo.FindByID(ctx, payload.TechnicianID)
	if err != nil {
		return nil, err
	}
	if assignee.Role == constants.RoleUser {
		return nil, apperrors.ErrBadRequest
	}

	if _, err := s.requestRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Assign(ctx, id, assignee.ID); err != nil {
		return nil, err
	}

	updated, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, events.RequestAssignedEvent{
		Request:    updated,
		AssigneeID: assignee.ID,
		ActorID:    actor.ID,
	})
	return updated, nil
}

func (s *RequestService) Update(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) (*entities.MaintenanceRequest, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.EditRequest); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Subject != nil {
		request.Subject = *payload.Subject
	}
	if payload.Priority != nil {
		request.Priority = *payload.Priority
	}
	if payload.ScheduledDate != nil {
		request.ScheduledDate = null.TimeFrom(*payload.ScheduledDate)
	}
	if payload.EquipmentID != nil && *payload.EquipmentID != request.EquipmentID {
		equipment, err := s.equipmentRepo.FindByID(ctx, *payload.EquipmentID)
		if err != nil {
			return nil, err
		}
		if equipment.IsScrapped {
			return nil, apperrors.ErrInvalidState
		}
		// Moving to other equipment re-routes the request to that
		// equipment's team.
		request.EquipmentID = equipment.ID
		request.TeamID = equipment.MaintenanceTeamID
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	return s.requestRepo.FindByID(ctx, id)
}

// Scrap closes the request and retires its equipment in one step.
func (s *RequestService) Scrap(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	return s.UpdateStatus(ctx, id, dto.UpdateRequestStatusDTO{Status: constants.StatusScrap})
}

// Calendar returns preventive requests scheduled inside [from, to].
// Technicians only see their own team's schedule; managers see everything.
func (s *RequestService) Calendar(ctx context.Context, from, to time.Time) ([]entities.MaintenanceRequest, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ViewCalendar); err != nil {
		return nil, err
	}

	var teamID *uint64
	if actor.Role == constants.RoleTechnician {
		if !actor.TeamID.Valid {
			return []entities.MaintenanceRequest{}, nil
		}
		teamID = &actor.TeamID.Uint64
	}
	return s.requestRepo.ListScheduled(ctx, from, to, teamID)
}
