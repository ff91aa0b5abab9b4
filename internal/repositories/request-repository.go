package repositories

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

// RequestFilter narrows ListAll. Nil fields mean no constraint.
type RequestFilter struct {
	Status      *string
	Type        *string
	TeamID      *uint64
	AssignedTo  *uint64
	EquipmentID *uint64
}

type RequestRepositoryInterface interface {
	Create(ctx context.Context, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error)
	FindByID(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	ListByCreator(ctx context.Context, userID uint64) ([]entities.MaintenanceRequest, error)
	ListAll(ctx context.Context, filter RequestFilter) ([]entities.MaintenanceRequest, error)
	ListScheduled(ctx context.Context, from, to time.Time, teamID *uint64) ([]entities.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Assign(ctx context.Context, id uint64, technicianID uint64) error
	Update(ctx context.Context, req *entities.MaintenanceRequest) error
	Scrap(ctx context.Context, id, equipmentID uint64) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
	builder sq.StatementBuilderType
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{
		storage: storage,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger,
	}
}

const requestColumns = "id, subject, type, priority, equipment_id, team_id, status, " +
	"assigned_to, scheduled_date, created_by, created_at, updated_at"

// enrichedColumns prefixes the request columns with r. and appends the joined
// reference columns the listings attach.
const enrichedColumns = `
	r.id, r.subject, r.type, r.priority, r.equipment_id, r.team_id, r.status,
	r.assigned_to, r.scheduled_date, r.created_by, r.created_at, r.updated_at,
	e.name, t.name, a.id, a.name, a.email, c.id, c.name, c.email`

const enrichedJoins = `
	LEFT JOIN equipment e ON e.id = r.equipment_id
	LEFT JOIN maintenance_teams t ON t.id = r.team_id
	LEFT JOIN users a ON a.id = r.assigned_to
	LEFT JOIN users c ON c.id = r.created_by`

func scanRequest(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var req entities.MaintenanceRequest
	err := row.Scan(&req.ID, &req.Subject, &req.Type, &req.Priority, &req.EquipmentID,
		&req.TeamID, &req.Status, &req.AssignedTo, &req.ScheduledDate,
		&req.CreatedBy, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func scanEnriched(row pgx.Row) (*entities.MaintenanceRequest, error) {
	var (
		req           entities.MaintenanceRequest
		equipmentName null.String
		teamName      null.String
		assigneeID    null.Uint64
		assigneeName  null.String
		assigneeEmail null.String
		creatorID     null.Uint64
		creatorName   null.String
		creatorEmail  null.String
	)
	err := row.Scan(&req.ID, &req.Subject, &req.Type, &req.Priority, &req.EquipmentID,
		&req.TeamID, &req.Status, &req.AssignedTo, &req.ScheduledDate,
		&req.CreatedBy, &req.CreatedAt, &req.UpdatedAt,
		&equipmentName, &teamName,
		&assigneeID, &assigneeName, &assigneeEmail,
		&creatorID, &creatorName, &creatorEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if equipmentName.Valid {
		req.Equipment = &entities.EquipmentRef{ID: req.EquipmentID, Name: equipmentName.String}
	}
	if teamName.Valid {
		req.Team = &entities.TeamRef{ID: req.TeamID, Name: teamName.String}
	}
	if assigneeID.Valid {
		req.AssignedTechnician = &entities.UserRef{
			ID:    assigneeID.Uint64,
			Name:  assigneeName.String,
			Email: assigneeEmail.String,
		}
	}
	if creatorID.Valid {
		req.Creator = &entities.UserRef{
			ID:    creatorID.Uint64,
			Name:  creatorName.String,
			Email: creatorEmail.String,
		}
	}
	return &req, nil
}

func (r *RequestRepository) collectEnriched(ctx context.Context, query string, args ...interface{}) ([]entities.MaintenanceRequest, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []entities.MaintenanceRequest
	for rows.Next() {
		req, err := scanEnriched(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *RequestRepository) Create(ctx context.Context, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	row := r.storage.QueryRow(ctx, `
		INSERT INTO maintenance_requests
			(subject, type, priority, equipment_id, team_id, status, scheduled_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+requestColumns,
		req.Subject, req.Type, req.Priority, req.EquipmentID, req.TeamID,
		req.Status, req.ScheduledDate, req.CreatedBy)
	return scanRequest(row)
}

func (r *RequestRepository) FindByID(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	query := "SELECT" + enrichedColumns + " FROM maintenance_requests r" + enrichedJoins + " WHERE r.id = $1"
	return scanEnriched(r.storage.QueryRow(ctx, query, id))
}

func (r *RequestRepository) ListByCreator(ctx context.Context, userID uint64) ([]entities.MaintenanceRequest, error) {
	query := "SELECT" + enrichedColumns + " FROM maintenance_requests r" + enrichedJoins +
		" WHERE r.created_by = $1 ORDER BY r.created_at DESC"
	return r.collectEnriched(ctx, query, userID)
}

func (r *RequestRepository) ListAll(ctx context.Context, filter RequestFilter) ([]entities.MaintenanceRequest, error) {
	qb := r.builder.Select(enrichedColumns).
		From("maintenance_requests r").
		JoinClause(enrichedJoins).
		OrderBy("r.created_at DESC")

	if filter.Status != nil {
		qb = qb.Where(sq.Eq{"r.status": *filter.Status})
	}
	if filter.Type != nil {
		qb = qb.Where(sq.Eq{"r.type": *filter.Type})
	}
	if filter.TeamID != nil {
		qb = qb.Where(sq.Eq{"r.team_id": *filter.TeamID})
	}
	if filter.AssignedTo != nil {
		qb = qb.Where(sq.Eq{"r.assigned_to": *filter.AssignedTo})
	}
	if filter.EquipmentID != nil {
		qb = qb.Where(sq.Eq{"r.equipment_id": *filter.EquipmentID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}
	return r.collectEnriched(ctx, query, args...)
}

// ListScheduled returns preventive requests whose scheduled date falls inside
// [from, to]. A non-nil teamID restricts the result to that team.
func (r *RequestRepository) ListScheduled(ctx context.Context, from, to time.Time, teamID *uint64) ([]entities.MaintenanceRequest, error) {
	qb := r.builder.Select(enrichedColumns).
		From("maintenance_requests r").
		JoinClause(enrichedJoins).
		Where(sq.Eq{"r.type": constants.TypePreventive}).
		Where(sq.GtOrEq{"r.scheduled_date": from}).
		Where(sq.LtOrEq{"r.scheduled_date": to}).
		OrderBy("r.scheduled_date")

	if teamID != nil {
		qb = qb.Where(sq.Eq{"r.team_id": *teamID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}
	return r.collectEnriched(ctx, query, args...)
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	result, err := r.storage.Exec(ctx,
		"UPDATE maintenance_requests SET status = $1, updated_at = now() WHERE id = $2",
		status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) Assign(ctx context.Context, id uint64, technicianID uint64) error {
	result, err := r.storage.Exec(ctx,
		"UPDATE maintenance_requests SET assigned_to = $1, updated_at = now() WHERE id = $2",
		technicianID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) Update(ctx context.Context, req *entities.MaintenanceRequest) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE maintenance_requests SET
			subject = $1, priority = $2, equipment_id = $3, team_id = $4,
			scheduled_date = $5, updated_at = now()
		WHERE id = $6`,
		req.Subject, req.Priority, req.EquipmentID, req.TeamID, req.ScheduledDate, req.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Scrap closes the request as scrap and flags its equipment in one
// transaction, so the two writes cannot drift apart.
func (r *RequestRepository) Scrap(ctx context.Context, id, equipmentID uint64) error {
	return WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			"UPDATE maintenance_requests SET status = $1, updated_at = now() WHERE id = $2",
			constants.StatusScrap, id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		_, err = tx.Exec(ctx, "UPDATE equipment SET is_scrapped = TRUE WHERE id = $1", equipmentID)
		return err
	})
}
