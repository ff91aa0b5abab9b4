package listeners

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
)

// Stubs embed the repository interfaces and override only what the listener
// touches.

type stubNotificationRepo struct {
	repositories.NotificationRepositoryInterface
	created []entities.Notification
}

func (s *stubNotificationRepo) Create(_ context.Context, n *entities.Notification) (*entities.Notification, error) {
	s.created = append(s.created, *n)
	return n, nil
}

type stubUserRepo struct {
	repositories.UserRepositoryInterface
	managers []entities.User
}

func (s *stubUserRepo) ListByRole(_ context.Context, role string) ([]entities.User, error) {
	if role == constants.RoleManager {
		return s.managers, nil
	}
	return nil, nil
}

type stubCacheRepo struct {
	repositories.CacheRepositoryInterface
	deleted []string
}

func (s *stubCacheRepo) Delete(_ context.Context, keys ...string) error {
	s.deleted = append(s.deleted, keys...)
	return nil
}

func newListenerForTest() (*NotificationListener, *stubNotificationRepo, *stubUserRepo, *stubCacheRepo) {
	notifRepo := &stubNotificationRepo{}
	userRepo := &stubUserRepo{managers: []entities.User{
		{ID: 1, Name: "Grace", Role: constants.RoleManager},
		{ID: 2, Name: "Omar", Role: constants.RoleManager},
	}}
	cacheRepo := &stubCacheRepo{}
	return NewNotificationListener(notifRepo, userRepo, cacheRepo, zap.NewNop()), notifRepo, userRepo, cacheRepo
}

func sampleRequest() *entities.MaintenanceRequest {
	return &entities.MaintenanceRequest{
		ID:        7,
		Subject:   "Press is leaking oil",
		Status:    constants.StatusNew,
		CreatedBy: 5,
		CreatedAt: time.Now(),
	}
}

func TestRequestCreated_NotifiesEveryManager(t *testing.T) {
	listener, notifRepo, _, cacheRepo := newListenerForTest()

	err := listener.handleRequestCreated(context.Background(),
		events.RequestCreatedEvent{Request: sampleRequest(), ActorID: 5})
	require.NoError(t, err)

	require.Len(t, notifRepo.created, 2)
	for _, n := range notifRepo.created {
		assert.Equal(t, constants.NotificationRequestCreated, n.Type)
		assert.Equal(t, "Press is leaking oil was created", n.Message)
		assert.Equal(t, "request", n.EntityType.String)
		assert.Equal(t, "7", n.EntityID.String)
	}
	assert.ElementsMatch(t,
		[]string{repositories.UnreadCountKey(1), repositories.UnreadCountKey(2)},
		cacheRepo.deleted)
}

func TestStatusChanged_NotifiesCreator(t *testing.T) {
	listener, notifRepo, _, _ := newListenerForTest()

	err := listener.handleStatusChanged(context.Background(), events.RequestStatusChangedEvent{
		Request:   sampleRequest(),
		OldStatus: constants.StatusNew,
		NewStatus: constants.StatusInProgress,
		ActorID:   2,
	})
	require.NoError(t, err)

	require.Len(t, notifRepo.created, 1)
	n := notifRepo.created[0]
	assert.Equal(t, uint64(5), n.UserID)
	assert.Equal(t, constants.NotificationRequestStatusChanged, n.Type)
	assert.Equal(t, "Your request status changed to in_progress", n.Message)
}

func TestAssigned_NotifiesAssignee(t *testing.T) {
	listener, notifRepo, _, _ := newListenerForTest()

	err := listener.handleAssigned(context.Background(), events.RequestAssignedEvent{
		Request:    sampleRequest(),
		AssigneeID: 9,
		ActorID:    1,
	})
	require.NoError(t, err)

	require.Len(t, notifRepo.created, 1)
	n := notifRepo.created[0]
	assert.Equal(t, uint64(9), n.UserID)
	assert.Equal(t, constants.NotificationRequestAssigned, n.Type)
	assert.Equal(t, `You were assigned to "Press is leaking oil"`, n.Message)
}

func TestMismatchedEventIsIgnored(t *testing.T) {
	listener, notifRepo, _, _ := newListenerForTest()

	err := listener.handleRequestCreated(context.Background(),
		events.RequestStatusChangedEvent{Request: sampleRequest()})
	require.NoError(t, err)
	assert.Empty(t, notifRepo.created)
}
