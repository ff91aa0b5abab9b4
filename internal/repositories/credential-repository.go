package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "gearguard/pkg/errors"
)

// Credential is an email/password pair for the mobile and web sign-in bridge.
// The original system delegated this to its auth platform; here it is a table
// of bcrypt hashes keyed by the same opaque auth id that users carry.
type Credential struct {
	AuthID       string
	Email        string
	PasswordHash string
}

type CredentialRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*Credential, error)
	InsertTx(ctx context.Context, q pgx.Tx, cred Credential) error
}

type CredentialRepository struct {
	storage *pgxpool.Pool
}

func NewCredentialRepository(storage *pgxpool.Pool) CredentialRepositoryInterface {
	return &CredentialRepository{storage: storage}
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*Credential, error) {
	var cred Credential
	err := r.storage.QueryRow(ctx,
		"SELECT auth_id, email, password_hash FROM auth_credentials WHERE email = $1",
		email).Scan(&cred.AuthID, &cred.Email, &cred.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}

func (r *CredentialRepository) InsertTx(ctx context.Context, q pgx.Tx, cred Credential) error {
	_, err := q.Exec(ctx,
		"INSERT INTO auth_credentials (auth_id, email, password_hash) VALUES ($1, $2, $3)",
		cred.AuthID, cred.Email, cred.PasswordHash)
	return err
}
