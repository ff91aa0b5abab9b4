package listeners

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	"gearguard/pkg/eventbus"
)

// NotificationListener turns request lifecycle events into notification rows.
// It runs off the request path: a failed insert is logged, never surfaced to
// the caller who triggered the event.
type NotificationListener struct {
	notificationRepo repositories.NotificationRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	cacheRepo        repositories.CacheRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationListener(
	notificationRepo repositories.NotificationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		cacheRepo:        cacheRepo,
		logger:           logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestCreatedName, l.handleRequestCreated)
	bus.Subscribe(events.RequestStatusChangedName, l.handleStatusChanged)
	bus.Subscribe(events.RequestAssignedName, l.handleAssigned)
}

// handleRequestCreated notifies every manager about the new request.
func (l *NotificationListener) handleRequestCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestCreatedEvent)
	if !ok || e.Request == nil {
		return nil
	}

	managers, err := l.userRepo.ListByRole(ctx, constants.RoleManager)
	if err != nil {
		return fmt.Errorf("list managers: %w", err)
	}

	for _, manager := range managers {
		l.deliver(ctx, manager.ID, constants.NotificationRequestCreated,
			"New maintenance request",
			fmt.Sprintf("%s was created", e.Request.Subject),
			e.Request.ID)
	}
	return nil
}

// handleStatusChanged notifies the request's creator.
func (l *NotificationListener) handleStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestStatusChangedEvent)
	if !ok || e.Request == nil {
		return nil
	}

	l.deliver(ctx, e.Request.CreatedBy, constants.NotificationRequestStatusChanged,
		"Request status changed",
		fmt.Sprintf("Your request status changed to %s", e.NewStatus),
		e.Request.ID)
	return nil
}

// handleAssigned notifies the assignee.
func (l *NotificationListener) handleAssigned(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestAssignedEvent)
	if !ok || e.Request == nil {
		return nil
	}

	l.deliver(ctx, e.AssigneeID, constants.NotificationRequestAssigned,
		"Request assigned",
		fmt.Sprintf("You were assigned to %q", e.Request.Subject),
		e.Request.ID)
	return nil
}

func (l *NotificationListener) deliver(ctx context.Context, userID uint64, kind, title, message string, requestID uint64) {
	_, err := l.notificationRepo.Create(ctx, &entities.Notification{
		UserID:     userID,
		Type:       kind,
		Title:      title,
		Message:    message,
		EntityType: null.StringFrom("request"),
		EntityID:   null.StringFrom(strconv.FormatUint(requestID, 10)),
	})
	if err != nil {
		l.logger.Error("failed to store notification",
			zap.Uint64("userID", userID),
			zap.String("type", kind),
			zap.Error(err))
		return
	}

	// The unread counter is cached; drop it so the next read recounts.
	if err := l.cacheRepo.Delete(ctx, repositories.UnreadCountKey(userID)); err != nil {
		l.logger.Warn("failed to invalidate unread counter",
			zap.Uint64("userID", userID),
			zap.Error(err))
	}
}
