package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

func TestUnreadCount_CachesResult(t *testing.T) {
	userRepo := newFakeUserRepo()
	notifRepo := newFakeNotificationRepo()
	cache := newFakeCacheRepo()
	svc := NewNotificationService(notifRepo, userRepo, cache, zap.NewNop())

	user := userRepo.add(entities.User{Name: "U", Email: "u@x.com", Role: constants.RoleUser})
	for i := 0; i < 3; i++ {
		_, err := notifRepo.Create(nil, &entities.Notification{UserID: user.ID, Type: constants.NotificationRequestCreated})
		require.NoError(t, err)
	}

	count, err := svc.UnreadCount(asUser(user.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Cached: a new row without invalidation is not seen yet.
	_, err = notifRepo.Create(nil, &entities.Notification{UserID: user.ID, Type: constants.NotificationRequestCreated})
	require.NoError(t, err)

	count, err = svc.UnreadCount(asUser(user.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMarkAsRead_InvalidatesCounter(t *testing.T) {
	userRepo := newFakeUserRepo()
	notifRepo := newFakeNotificationRepo()
	cache := newFakeCacheRepo()
	svc := NewNotificationService(notifRepo, userRepo, cache, zap.NewNop())

	user := userRepo.add(entities.User{Name: "U", Email: "u@x.com", Role: constants.RoleUser})
	n, err := notifRepo.Create(nil, &entities.Notification{UserID: user.ID, Type: constants.NotificationRequestAssigned})
	require.NoError(t, err)

	count, err := svc.UnreadCount(asUser(user.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.MarkAsRead(asUser(user.ID), n.ID))

	count, err = svc.UnreadCount(asUser(user.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Re-reading an already read notification still succeeds.
	assert.NoError(t, svc.MarkAsRead(asUser(user.ID), n.ID))
}

func TestMarkAsRead_OtherUsersNotificationNotFound(t *testing.T) {
	userRepo := newFakeUserRepo()
	notifRepo := newFakeNotificationRepo()
	svc := NewNotificationService(notifRepo, userRepo, newFakeCacheRepo(), zap.NewNop())

	owner := userRepo.add(entities.User{Name: "Owner", Email: "o@x.com", Role: constants.RoleUser})
	intruder := userRepo.add(entities.User{Name: "Intruder", Email: "i@x.com", Role: constants.RoleUser})

	n, err := notifRepo.Create(nil, &entities.Notification{UserID: owner.ID, Type: constants.NotificationRequestCreated})
	require.NoError(t, err)

	err = svc.MarkAsRead(asUser(intruder.ID), n.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMarkAllAsRead(t *testing.T) {
	userRepo := newFakeUserRepo()
	notifRepo := newFakeNotificationRepo()
	svc := NewNotificationService(notifRepo, userRepo, newFakeCacheRepo(), zap.NewNop())

	user := userRepo.add(entities.User{Name: "U", Email: "u@x.com", Role: constants.RoleUser})
	for i := 0; i < 5; i++ {
		_, err := notifRepo.Create(nil, &entities.Notification{UserID: user.ID, Type: constants.NotificationRequestCreated})
		require.NoError(t, err)
	}

	require.NoError(t, svc.MarkAllAsRead(asUser(user.ID)))

	count, err := svc.UnreadCount(asUser(user.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

var _ repositories.NotificationRepositoryInterface = (*fakeNotificationRepo)(nil)
