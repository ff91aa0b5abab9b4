package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
)

type AuthServiceInterface interface {
	Signup(ctx context.Context, payload dto.SignupDTO) (*dto.AuthResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Verify(ctx context.Context, token string) (*dto.VerifyResponseDTO, error)
}

type AuthService struct {
	userRepo       repositories.UserRepositoryInterface
	credentialRepo repositories.CredentialRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	txManager      repositories.TxManagerInterface
	jwtService     service.JWTService
	authCfg        config.AuthConfig
	logger         *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	credentialRepo repositories.CredentialRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	jwtService service.JWTService,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:       userRepo,
		credentialRepo: credentialRepo,
		cacheRepo:      cacheRepo,
		txManager:      txManager,
		jwtService:     jwtService,
		authCfg:        authCfg,
		logger:         logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, payload dto.SignupDTO) (*dto.AuthResponseDTO, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))

	if _, err := s.credentialRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	authID := uuid.NewString()
	var user *entities.User
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.credentialRepo.InsertTx(ctx, tx, repositories.Credential{
			AuthID:       authID,
			Email:        email,
			PasswordHash: string(hash),
		}); err != nil {
			return err
		}
		user, err = s.provisionUserTx(ctx, tx, authID, email, payload.Name)
		return err
	})
	if err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up",
		zap.Uint64("userID", user.ID),
		zap.String("role", user.Role))
	return &dto.AuthResponseDTO{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	attemptsKey := repositories.LoginAttemptsKey(email)

	if err := s.checkLockout(ctx, attemptsKey); err != nil {
		return nil, err
	}

	cred, err := s.credentialRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.recordFailedAttempt(ctx, attemptsKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(payload.Password)); err != nil {
		s.recordFailedAttempt(ctx, attemptsKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Delete(ctx, attemptsKey); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	user, err := s.userRepo.FindByAuthID(ctx, cred.AuthID)
	if errors.Is(err, apperrors.ErrNotFound) {
		// A credential without a profile can happen if provisioning was
		// interrupted; repair it on the next successful sign-in.
		err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			user, err = s.provisionUserTx(ctx, tx, cred.AuthID, cred.Email, cred.Email)
			return err
		})
	}
	if err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponseDTO{Token: token, User: user}, nil
}

// Verify checks a session token and returns the current profile behind it.
// An invalid or expired token is a negative answer, not an error.
func (s *AuthService) Verify(ctx context.Context, token string) (*dto.VerifyResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return &dto.VerifyResponseDTO{Valid: false}, nil
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.VerifyResponseDTO{Valid: false}, nil
		}
		return nil, err
	}
	return &dto.VerifyResponseDTO{Valid: true, User: user}, nil
}

// provisionUserTx creates the profile row. The advisory lock serializes
// concurrent first sign-ins so exactly one of them sees the empty table and
// becomes the manager.
func (s *AuthService) provisionUserTx(ctx context.Context, tx pgx.Tx, authID, email, name string) (*entities.User, error) {
	if err := s.userRepo.AcquireBootstrapLockTx(ctx, tx); err != nil {
		return nil, err
	}

	count, err := s.userRepo.CountUsersTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	role := constants.RoleUser
	if count == 0 {
		role = constants.RoleManager
	}
	return s.userRepo.InsertUserTx(ctx, tx, authID, email, name, role)
}

func (s *AuthService) checkLockout(ctx context.Context, key string) error {
	value, err := s.cacheRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		// Redis being down must not lock everyone out.
		s.logger.Warn("failed to read login attempts", zap.Error(err))
		return nil
	}

	attempts, _ := strconv.Atoi(value)
	if attempts >= s.authCfg.MaxLoginAttempts {
		return apperrors.ErrTooManyAttempts
	}
	return nil
}

func (s *AuthService) recordFailedAttempt(ctx context.Context, key string) {
	attempts, err := s.cacheRepo.Increment(ctx, key)
	if err != nil {
		s.logger.Warn("failed to record login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		if err := s.cacheRepo.Expire(ctx, key, s.authCfg.LockoutDuration); err != nil {
			s.logger.Warn("failed to set lockout window", zap.Error(err))
		}
	}
}
