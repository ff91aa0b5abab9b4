package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
)

func newAuthServiceForTest(userRepo *fakeUserRepo, credRepo *fakeCredentialRepo, cache *fakeCacheRepo) AuthServiceInterface {
	return NewAuthService(
		userRepo,
		credRepo,
		cache,
		fakeTxManager{},
		service.NewJWTService("test-secret", time.Hour),
		config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute},
		zap.NewNop(),
	)
}

func TestSignup_FirstUserBecomesManager(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthServiceForTest(userRepo, newFakeCredentialRepo(), newFakeCacheRepo())

	res, err := svc.Signup(context.Background(), dto.SignupDTO{
		Email:    "First@Example.com",
		Password: "secret123",
		Name:     "First User",
	})
	require.NoError(t, err)
	require.NotNil(t, res.User)

	assert.Equal(t, constants.RoleManager, res.User.Role)
	assert.Equal(t, "first@example.com", res.User.Email)
	assert.NotEmpty(t, res.Token)
}

func TestSignup_SubsequentUsersAreRegularUsers(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthServiceForTest(userRepo, newFakeCredentialRepo(), newFakeCacheRepo())

	_, err := svc.Signup(context.Background(), dto.SignupDTO{Email: "boss@example.com", Password: "secret123", Name: "Boss"})
	require.NoError(t, err)

	res, err := svc.Signup(context.Background(), dto.SignupDTO{Email: "second@example.com", Password: "secret123", Name: "Second"})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleUser, res.User.Role)
}

func TestSignup_DuplicateEmailRejected(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeCredentialRepo(), newFakeCacheRepo())

	_, err := svc.Signup(context.Background(), dto.SignupDTO{Email: "dup@example.com", Password: "secret123", Name: "One"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), dto.SignupDTO{Email: "dup@example.com", Password: "other456", Name: "Two"})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestLogin_Roundtrip(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeCredentialRepo(), newFakeCacheRepo())

	_, err := svc.Signup(context.Background(), dto.SignupDTO{Email: "login@example.com", Password: "secret123", Name: "Login"})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), dto.LoginDTO{Email: "login@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "login@example.com", res.User.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeCredentialRepo(), newFakeCacheRepo())

	_, err := svc.Signup(context.Background(), dto.SignupDTO{Email: "login@example.com", Password: "secret123", Name: "Login"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginDTO{Email: "login@example.com", Password: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeCredentialRepo(), newFakeCacheRepo())

	_, err := svc.Signup(context.Background(), dto.SignupDTO{Email: "victim@example.com", Password: "secret123", Name: "Victim"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Login(context.Background(), dto.LoginDTO{Email: "victim@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// Fourth attempt is rejected before the password is even checked, and the
	// correct password no longer helps.
	_, err = svc.Login(context.Background(), dto.LoginDTO{Email: "victim@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)
}

func TestLogin_UnknownEmailCountsTowardLockout(t *testing.T) {
	cache := newFakeCacheRepo()
	svc := newAuthServiceForTest(newFakeUserRepo(), newFakeCredentialRepo(), cache)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.NotEmpty(t, cache.values)
}

func TestVerify(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthServiceForTest(userRepo, newFakeCredentialRepo(), newFakeCacheRepo())

	res, err := svc.Signup(context.Background(), dto.SignupDTO{Email: "v@example.com", Password: "secret123", Name: "V"})
	require.NoError(t, err)

	verified, err := svc.Verify(context.Background(), res.Token)
	require.NoError(t, err)
	assert.True(t, verified.Valid)
	require.NotNil(t, verified.User)
	assert.Equal(t, res.User.ID, verified.User.ID)

	invalid, err := svc.Verify(context.Background(), "not-a-token")
	require.NoError(t, err)
	assert.False(t, invalid.Valid)
	assert.Nil(t, invalid.User)
}
