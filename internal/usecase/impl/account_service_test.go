package impl

import (
	"context"
	"testing"
	"time"

	"recycle/config"
	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	accountRepo *memAccountRepo
	clock       *fakeClock
}

func createTestAccountService(t *testing.T, mutateConfig ...func(*config.Config)) accountServiceFixtures {
	t.Helper()

	cfg := newTestConfig()
	for _, mutate := range mutateConfig {
		mutate(cfg)
	}

	accountRepo := newMemAccountRepo()
	clock := newFakeClock()

	service := NewAccountService(AccountServiceParams{
		TxManager:     &fakeTxManager{factory: &fakeRepositoryFactory{accountRepo: accountRepo}},
		AccountRepo:   accountRepo,
		Hasher:        fakeHasher{},
		ConfirmTokens: fakeConfirmationTokens{},
		SessionTokens: fakeSessionTokens{},
		Clock:         clock,
		Config:        cfg,
		Logger:        newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:     service,
		accountRepo: accountRepo,
		clock:       clock,
	}
}

func registerAndConfirm(t *testing.T, fx accountServiceFixtures, email, password string) {
	t.Helper()

	ctx := context.Background()

	output, err := fx.service.Register(ctx, &usecase.RegisterAccountInput{
		Username: "tester",
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.ValidateToken(ctx, &usecase.ValidateTokenInput{
		Email: email,
		Token: output.ConfirmationToken,
	}))
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)

	output, err := fx.service.Register(context.Background(), &usecase.RegisterAccountInput{
		Username: "tester",
		Email:    "Tester@Example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.ConfirmationToken)

	account, err := fx.accountRepo.FindByNormalizedEmail(context.Background(), "TESTER@EXAMPLE.COM", false)
	require.NoError(t, err)
	assert.Equal(t, "Tester@Example.com", account.Email)
	assert.False(t, account.EmailConfirmed)
	assert.Equal(t, "system", account.CreatedBy)
	assert.False(t, account.CreatedAt.IsZero())
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	fx := createTestAccountService(t)

	output, err := fx.service.Register(context.Background(), &usecase.RegisterAccountInput{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "short",
	})

	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Fields(), "password")
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterAccountInput{
		Username: "first",
		Email:    "tester@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	// Same address in a different case still collides on the normalized form.
	output, err := fx.service.Register(ctx, &usecase.RegisterAccountInput{
		Username: "second",
		Email:    "TESTER@example.com",
		Password: "Password123!",
	})

	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Fields(), "email")
}

func TestAccountService_ValidateToken_ConfirmsAccount(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	output, err := fx.service.Register(ctx, &usecase.RegisterAccountInput{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	err = fx.service.ValidateToken(ctx, &usecase.ValidateTokenInput{
		Email: "tester@example.com",
		Token: output.ConfirmationToken,
	})
	require.NoError(t, err)

	account, err := fx.accountRepo.FindByNormalizedEmail(ctx, "TESTER@EXAMPLE.COM", true)
	require.NoError(t, err)
	assert.True(t, account.EmailConfirmed)
}

func TestAccountService_ValidateToken_ReplayFails(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	output, err := fx.service.Register(ctx, &usecase.RegisterAccountInput{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	input := &usecase.ValidateTokenInput{
		Email: "tester@example.com",
		Token: output.ConfirmationToken,
	}
	require.NoError(t, fx.service.ValidateToken(ctx, input))

	// The account is confirmed now, so the unconfirmed-only lookup misses and
	// the otherwise-valid token is rejected.
	err = fx.service.ValidateToken(ctx, input)
	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAccountService_ValidateToken_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)

	err := fx.service.ValidateToken(context.Background(), &usecase.ValidateTokenInput{
		Email: "nobody@example.com",
		Token: "whatever",
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAccountService_ValidateToken_WrongToken(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterAccountInput{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	err = fx.service.ValidateToken(ctx, &usecase.ValidateTokenInput{
		Email: "tester@example.com",
		Token: "forged",
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	// A failed validation must not confirm the account.
	_, err = fx.accountRepo.FindByNormalizedEmail(ctx, "TESTER@EXAMPLE.COM", true)
	require.Error(t, err)
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)
	registerAndConfirm(t, fx, "tester@example.com", "Password123!")

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "Tester@Example.COM",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.Credential)
	assert.Equal(t, "tester", output.Principal.Username)
	assert.True(t, output.Principal.EmailConfirmed)
}

func TestAccountService_Login_UnconfirmedAccount(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, &usecase.RegisterAccountInput{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	// Correct password, but the confirmed-only lookup misses unconfirmed
	// accounts; indistinguishable from an unknown address.
	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "tester@example.com",
		Password: "Password123!",
	})

	require.ErrorIs(t, err, domainerrors.ErrLoginFailed)
	assert.Nil(t, output)
}

func TestAccountService_Login_UnknownAccount(t *testing.T) {
	fx := createTestAccountService(t)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Password123!",
	})

	require.ErrorIs(t, err, domainerrors.ErrLoginFailed)
	assert.Nil(t, output)
}

func TestAccountService_Login_WrongPasswordIncrementsCounter(t *testing.T) {
	fx := createTestAccountService(t)
	registerAndConfirm(t, fx, "tester@example.com", "Password123!")
	ctx := context.Background()

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "tester@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, domainerrors.ErrLoginFailed)

	account, err := fx.accountRepo.FindByNormalizedEmail(ctx, "TESTER@EXAMPLE.COM", true)
	require.NoError(t, err)
	assert.Equal(t, 1, account.FailedLoginCount)
	assert.Nil(t, account.LockoutEndsAt)
}

func TestAccountService_Login_LockoutAfterThreshold(t *testing.T) {
	fx := createTestAccountService(t)
	registerAndConfirm(t, fx, "tester@example.com", "Password123!")
	ctx := context.Background()

	for range 5 {
		_, err := fx.service.Login(ctx, &usecase.LoginInput{
			Email:    "tester@example.com",
			Password: "wrong-password",
		})
		require.ErrorIs(t, err, domainerrors.ErrLoginFailed)
	}

	account, err := fx.accountRepo.FindByNormalizedEmail(ctx, "TESTER@EXAMPLE.COM", true)
	require.NoError(t, err)
	require.NotNil(t, account.LockoutEndsAt)
	assert.Equal(t, fx.clock.Now().Add(15*time.Minute), *account.LockoutEndsAt)

	// Even the correct password fails while the window is open, with the same
	// generic error as a wrong password.
	_, err = fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "tester@example.com",
		Password: "Password123!",
	})
	require.ErrorIs(t, err, domainerrors.ErrLoginFailed)
}

func TestAccountService_Login_LockoutExpiryRestartsCount(t *testing.T) {
	fx := createTestAccountService(t)
	registerAndConfirm(t, fx, "tester@example.com", "Password123!")
	ctx := context.Background()

	for range 5 {
		_, err := fx.service.Login(ctx, &usecase.LoginInput{
			Email:    "tester@example.com",
			Password: "wrong-password",
		})
		require.ErrorIs(t, err, domainerrors.ErrLoginFailed)
	}

	fx.clock.Advance(16 * time.Minute)

	// One more failure after expiry starts a fresh count instead of locking
	// immediately.
	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "tester@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, domainerrors.ErrLoginFailed)

	account, err := fx.accountRepo.FindByNormalizedEmail(ctx, "TESTER@EXAMPLE.COM", true)
	require.NoError(t, err)
	assert.Equal(t, 1, account.FailedLoginCount)
	assert.Nil(t, account.LockoutEndsAt)

	// And the correct password works again.
	_, err = fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "tester@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)
}

func TestAccountService_Login_SuccessResetsCounter(t *testing.T) {
	fx := createTestAccountService(t)
	registerAndConfirm(t, fx, "tester@example.com", "Password123!")
	ctx := context.Background()

	for range 3 {
		_, err := fx.service.Login(ctx, &usecase.LoginInput{
			Email:    "tester@example.com",
			Password: "wrong-password",
		})
		require.ErrorIs(t, err, domainerrors.ErrLoginFailed)
	}

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "tester@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	account, err := fx.accountRepo.FindByNormalizedEmail(ctx, "TESTER@EXAMPLE.COM", true)
	require.NoError(t, err)
	assert.Equal(t, 0, account.FailedLoginCount)
	assert.Nil(t, account.LockoutEndsAt)
}

func TestAccountService_Login_ExposedLockout(t *testing.T) {
	fx := createTestAccountService(t, func(cfg *config.Config) {
		cfg.Auth.ExposeLockout = true
	})
	registerAndConfirm(t, fx, "tester@example.com", "Password123!")
	ctx := context.Background()

	for range 5 {
		_, err := fx.service.Login(ctx, &usecase.LoginInput{
			Email:    "tester@example.com",
			Password: "wrong-password",
		})
		require.ErrorIs(t, err, domainerrors.ErrLoginFailed)
	}

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "tester@example.com",
		Password: "Password123!",
	})
	require.ErrorIs(t, err, domainerrors.ErrAccountLocked)
}
