package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

// EquipmentFilter narrows ListAll. Nil fields mean no constraint; Search
// matches name and serial number case-insensitively.
type EquipmentFilter struct {
	CategoryID *uint64
	TeamID     *uint64
	IsScrapped *bool
	Search     string
}

type EquipmentRepositoryInterface interface {
	Create(ctx context.Context, eq *entities.Equipment) (*entities.Equipment, error)
	FindByID(ctx context.Context, id uint64) (*entities.Equipment, error)
	ListAll(ctx context.Context, filter EquipmentFilter) ([]entities.Equipment, error)
	Update(ctx context.Context, eq *entities.Equipment) (*entities.Equipment, error)
	Delete(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	builder sq.StatementBuilderType
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage: storage,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const equipmentColumns = "id, name, category_id, company, department, serial_number, " +
	"used_by_employee, used_in_location, description, technician_id, " +
	"maintenance_team_id, assigned_date, is_scrapped, created_at"

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.CategoryID, &e.Company, &e.Department,
		&e.SerialNumber, &e.UsedByEmployee, &e.UsedInLocation, &e.Description,
		&e.TechnicianID, &e.MaintenanceTeamID, &e.AssignedDate, &e.IsScrapped, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *entities.Equipment) (*entities.Equipment, error) {
	row := r.storage.QueryRow(ctx, `
		INSERT INTO equipment
			(name, category_id, company, department, serial_number, used_by_employee,
			 used_in_location, description, technician_id, maintenance_team_id, assigned_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+equipmentColumns,
		eq.Name, eq.CategoryID, eq.Company, eq.Department, eq.SerialNumber,
		eq.UsedByEmployee, eq.UsedInLocation, eq.Description, eq.TechnicianID,
		eq.MaintenanceTeamID, eq.AssignedDate)
	return scanEquipment(row)
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return scanEquipment(r.storage.QueryRow(ctx,
		"SELECT "+equipmentColumns+" FROM equipment WHERE id = $1", id))
}

func (r *EquipmentRepository) ListAll(ctx context.Context, filter EquipmentFilter) ([]entities.Equipment, error) {
	qb := r.builder.Select(equipmentColumns).From("equipment").OrderBy("name")

	if filter.CategoryID != nil {
		qb = qb.Where(sq.Eq{"category_id": *filter.CategoryID})
	}
	if filter.TeamID != nil {
		qb = qb.Where(sq.Eq{"maintenance_team_id": *filter.TeamID})
	}
	if filter.IsScrapped != nil {
		qb = qb.Where(sq.Eq{"is_scrapped": *filter.IsScrapped})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"serial_number": pattern},
		})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.Equipment
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.CategoryID, &e.Company, &e.Department,
			&e.SerialNumber, &e.UsedByEmployee, &e.UsedInLocation, &e.Description,
			&e.TechnicianID, &e.MaintenanceTeamID, &e.AssignedDate, &e.IsScrapped, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *entities.Equipment) (*entities.Equipment, error) {
	row := r.storage.QueryRow(ctx, `
		UPDATE equipment SET
			name = $1, category_id = $2, company = $3, department = $4,
			serial_number = $5, used_by_employee = $6, used_in_location = $7,
			description = $8, technician_id = $9, maintenance_team_id = $10,
			assigned_date = $11, is_scrapped = $12
		WHERE id = $13
		RETURNING `+equipmentColumns,
		eq.Name, eq.CategoryID, eq.Company, eq.Department, eq.SerialNumber,
		eq.UsedByEmployee, eq.UsedInLocation, eq.Description, eq.TechnicianID,
		eq.MaintenanceTeamID, eq.AssignedDate, eq.IsScrapped, eq.ID)
	return scanEquipment(row)
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipment WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
