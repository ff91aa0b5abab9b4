package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

// notificationListLimit caps the feed to the most recent entries.
const notificationListLimit = 50

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *entities.Notification) (*entities.Notification, error)
	ListByUser(ctx context.Context, userID uint64) ([]entities.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, id, userID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

const notificationColumns = "id, user_id, type, title, message, entity_type, entity_id, read, created_at"

func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) (*entities.Notification, error) {
	row := r.storage.QueryRow(ctx, `
		INSERT INTO notifications (user_id, type, title, message, entity_type, entity_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+notificationColumns,
		n.UserID, n.Type, n.Title, n.Message, n.EntityType, n.EntityID)

	var out entities.Notification
	err := row.Scan(&out.ID, &out.UserID, &out.Type, &out.Title, &out.Message,
		&out.EntityType, &out.EntityID, &out.Read, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint64) ([]entities.Notification, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2",
		userID, notificationListLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []entities.Notification
	for rows.Next() {
		var n entities.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.EntityType, &n.EntityID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE",
		userID).Scan(&count)
	return count, err
}

// MarkRead flips one notification to read. The user id is part of the WHERE so
// a recipient cannot touch someone else's entry; marking an already read
// notification succeeds.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uint64) error {
	result, err := r.storage.Exec(ctx,
		"UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2",
		id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// Distinguishing "not yours" from "missing" would leak existence.
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx,
		"UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE", userID)
	return err
}
