package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

const userColumns = "id, auth_id, name, email, role, team_id, created_at"

// bootstrapLockID keys the advisory lock taken while provisioning a user, so
// two first-time sign-ins cannot both observe an empty users table.
const bootstrapLockID = 0x67656172 // "gear"

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByAuthID(ctx context.Context, authID string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	ListAll(ctx context.Context) ([]entities.User, error)
	ListByRole(ctx context.Context, role string) ([]entities.User, error)
	ListAssignable(ctx context.Context) ([]entities.User, error)
	ListPromotable(ctx context.Context) ([]entities.User, error)
	UpdateRole(ctx context.Context, id uint64, role string) error
	UpdateTeam(ctx context.Context, id uint64, teamID uint64) error

	AcquireBootstrapLockTx(ctx context.Context, q pgx.Tx) error
	CountUsersTx(ctx context.Context, q pgx.Tx) (uint64, error)
	InsertUserTx(ctx context.Context, q pgx.Tx, authID, email, name, role string) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.AuthID, &u.Name, &u.Email, &u.Role, &u.TeamID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// getQuerier routes a statement through the transaction when one is open,
// otherwise through the pool.
func (r *UserRepository) getQuerier(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *UserRepository) findOne(ctx context.Context, q querier, where string, arg interface{}) (*entities.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE " + where
	return scanUser(q.QueryRow(ctx, query, arg))
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findOne(ctx, r.storage, "id = $1", id)
}

func (r *UserRepository) FindByAuthID(ctx context.Context, authID string) (*entities.User, error) {
	return r.findOne(ctx, r.storage, "auth_id = $1", authID)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, r.storage, "email = $1", email)
}

func (r *UserRepository) list(ctx context.Context, query string, args ...interface{}) ([]entities.User, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.AuthID, &u.Name, &u.Email, &u.Role, &u.TeamID, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) ListAll(ctx context.Context) ([]entities.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]entities.User, error) {
	return r.list(ctx, "SELECT "+userColumns+" FROM users WHERE role = $1 ORDER BY id", role)
}

// ListAssignable returns users a request may be assigned to: technicians and
// managers.
func (r *UserRepository) ListAssignable(ctx context.Context) ([]entities.User, error) {
	return r.list(ctx,
		"SELECT "+userColumns+" FROM users WHERE role = $1 OR role = $2 ORDER BY name",
		constants.RoleTechnician, constants.RoleManager)
}

// ListPromotable returns candidates for team membership: plain users, plus
// technicians who are not on a team yet.
func (r *UserRepository) ListPromotable(ctx context.Context) ([]entities.User, error) {
	return r.list(ctx,
		"SELECT "+userColumns+" FROM users WHERE role = $1 OR (role = $2 AND team_id IS NULL) ORDER BY name",
		constants.RoleUser, constants.RoleTechnician)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint64, role string) error {
	result, err := r.storage.Exec(ctx, "UPDATE users SET role = $1 WHERE id = $2", role, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateTeam(ctx context.Context, id uint64, teamID uint64) error {
	result, err := r.storage.Exec(ctx, "UPDATE users SET team_id = $1 WHERE id = $2", teamID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AcquireBootstrapLockTx(ctx context.Context, tx pgx.Tx) error {
	_, err := r.getQuerier(tx).Exec(ctx, "SELECT pg_advisory_xact_lock($1)", bootstrapLockID)
	return err
}

func (r *UserRepository) CountUsersTx(ctx context.Context, tx pgx.Tx) (uint64, error) {
	var count uint64
	err := r.getQuerier(tx).QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *UserRepository) InsertUserTx(ctx context.Context, tx pgx.Tx, authID, email, name, role string) (*entities.User, error) {
	row := r.getQuerier(tx).QueryRow(ctx,
		"INSERT INTO users (auth_id, email, name, role) VALUES ($1, $2, $3, $4) RETURNING "+userColumns,
		authID, email, name, role)
	return scanUser(row)
}
