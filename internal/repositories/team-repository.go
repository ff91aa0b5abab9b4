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

type TeamRepositoryInterface interface {
	Create(ctx context.Context, name string, description null.String) (*entities.Team, error)
	FindByID(ctx context.Context, id uint64) (*entities.Team, error)
	ListAll(ctx context.Context) ([]entities.Team, error)
	Update(ctx context.Context, id uint64, name string, description null.String) (*entities.Team, error)
	Delete(ctx context.Context, id uint64) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
}

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &TeamRepository{storage: storage}
}

const teamColumns = "id, name, description, created_at"

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepository) Create(ctx context.Context, name string, description null.String) (*entities.Team, error) {
	row := r.storage.QueryRow(ctx,
		"INSERT INTO maintenance_teams (name, description) VALUES ($1, $2) RETURNING "+teamColumns,
		name, description)
	return scanTeam(row)
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint64) (*entities.Team, error) {
	return scanTeam(r.storage.QueryRow(ctx,
		"SELECT "+teamColumns+" FROM maintenance_teams WHERE id = $1", id))
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]entities.Team, error) {
	rows, err := r.storage.Query(ctx, "SELECT "+teamColumns+" FROM maintenance_teams ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []entities.Team
	for rows.Next() {
		var t entities.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) Update(ctx context.Context, id uint64, name string, description null.String) (*entities.Team, error) {
	row := r.storage.QueryRow(ctx,
		"UPDATE maintenance_teams SET name = $1, description = $2 WHERE id = $3 RETURNING "+teamColumns,
		name, description, id)
	return scanTeam(row)
}

func (r *TeamRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM maintenance_teams WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
