package repositories

import (
	"context"
	"errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

type CategoryRepositoryInterface interface {
	Create(ctx context.Context, name, company string, responsibleUserID null.Uint64) (*entities.EquipmentCategory, error)
	FindByID(ctx context.Context, id uint64) (*entities.EquipmentCategory, error)
	ListAll(ctx context.Context) ([]entities.EquipmentCategory, error)
	Update(ctx context.Context, id uint64, name, company string, responsibleUserID null.Uint64) (*entities.EquipmentCategory, error)
	Delete(ctx context.Context, id uint64) error
}

type CategoryRepository struct {
	storage *pgxpool.Pool
}

func NewCategoryRepository(storage *pgxpool.Pool) CategoryRepositoryInterface {
	return &CategoryRepository{storage: storage}
}

const categoryColumns = "id, name, company, responsible_user_id, created_at"

func scanCategory(row pgx.Row) (*entities.EquipmentCategory, error) {
	var c entities.EquipmentCategory
	err := row.Scan(&c.ID, &c.Name, &c.Company, &c.ResponsibleUserID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name, company string, responsibleUserID null.Uint64) (*entities.EquipmentCategory, error) {
	row := r.storage.QueryRow(ctx,
		"INSERT INTO equipment_categories (name, company, responsible_user_id) VALUES ($1, $2, $3) RETURNING "+categoryColumns,
		name, company, responsibleUserID)
	return scanCategory(row)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (*entities.EquipmentCategory, error) {
	return scanCategory(r.storage.QueryRow(ctx,
		"SELECT "+categoryColumns+" FROM equipment_categories WHERE id = $1", id))
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]entities.EquipmentCategory, error) {
	rows, err := r.storage.Query(ctx, "SELECT "+categoryColumns+" FROM equipment_categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []entities.EquipmentCategory
	for rows.Next() {
		var c entities.EquipmentCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.ResponsibleUserID, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, id uint64, name, company string, responsibleUserID null.Uint64) (*entities.EquipmentCategory, error) {
	row := r.storage.QueryRow(ctx,
		"UPDATE equipment_categories SET name = $1, company = $2, responsible_user_id = $3 WHERE id = $4 RETURNING "+categoryColumns,
		name, company, responsibleUserID, id)
	return scanCategory(row)
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipment_categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
