package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
)

// unreadCountTTL bounds staleness of the cached unread counter; writes
// invalidate it eagerly, the TTL is a backstop.
const unreadCountTTL = 5 * time.Minute

type NotificationServiceInterface interface {
	ListMy(ctx context.Context) ([]entities.Notification, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id uint64) error
	MarkAllAsRead(ctx context.Context) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	cacheRepo        repositories.CacheRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		cacheRepo:        cacheRepo,
		logger:           logger,
	}
}

func (s *NotificationService) ListMy(ctx context.Context) ([]entities.Notification, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	return s.notificationRepo.ListByUser(ctx, actor.ID)
}

// UnreadCount serves the badge counter. It is read on every page, so the value
// is cached; a cache miss or a broken cache falls through to a real count.
func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return 0, err
	}

	key := repositories.UnreadCountKey(actor.ID)
	if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("failed to read unread counter cache", zap.Error(err))
	}

	count, err := s.notificationRepo.CountUnread(ctx, actor.ID)
	if err != nil {
		return 0, err
	}

	if err := s.cacheRepo.Set(ctx, key, strconv.FormatInt(count, 10), unreadCountTTL); err != nil {
		s.logger.Warn("failed to cache unread counter", zap.Error(err))
	}
	return count, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uint64) error {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.MarkRead(ctx, id, actor.ID); err != nil {
		return err
	}
	s.invalidateCounter(ctx, actor.ID)
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.MarkAllRead(ctx, actor.ID); err != nil {
		return err
	}
	s.invalidateCounter(ctx, actor.ID)
	return nil
}

func (s *NotificationService) invalidateCounter(ctx context.Context, userID uint64) {
	if err := s.cacheRepo.Delete(ctx, repositories.UnreadCountKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate unread counter",
			zap.Uint64("userID", userID),
			zap.Error(err))
	}
}
