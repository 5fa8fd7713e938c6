// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"recycle/config"
	deliverycontext "recycle/internal/delivery/context"
	"recycle/internal/domain/entity"
	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/domain/repository"
	"recycle/internal/domain/service"
	"recycle/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager     repository.TransactionManager
	accountRepo   repository.AccountRepository
	hasher        service.PasswordHasher
	confirmTokens service.ConfirmationTokenService
	sessionTokens service.SessionTokenService
	authn         *authenticator
	clock         service.Clock
	exposeLockout bool
	logger        *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	AccountRepo   repository.AccountRepository
	Hasher        service.PasswordHasher
	ConfirmTokens service.ConfirmationTokenService
	SessionTokens service.SessionTokenService
	Clock         service.Clock
	Config        *config.Config
	Logger        *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:     params.TxManager,
		accountRepo:   params.AccountRepo,
		hasher:        params.Hasher,
		confirmTokens: params.ConfirmTokens,
		sessionTokens: params.SessionTokens,
		authn:         newAuthenticator(params.Config.Auth, params.Hasher, params.Clock),
		clock:         params.Clock,
		exposeLockout: params.Config.Auth.ExposeLockout,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unconfirmed account and returns the confirmation token
// the caller must later present to activate it.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterAccountInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting account registration", slog.String("username", input.Username))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("username", input.Username))

		return nil, domainerrors.ErrValidationFailed.WithFields(map[string]string{
			"password": err.Error(),
		})
	}

	// bcrypt is CPU-bound, keep it outside the transaction.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newAccount := &entity.Account{
		Username:        input.Username,
		Email:           input.Email,
		NormalizedEmail: entity.NormalizeEmail(input.Email),
		PasswordHash:    hashedPassword,
		EmailConfirmed:  false,
	}
	if err := newAccount.StampCreate(entity.SystemActor, srv.clock.Now()); err != nil {
		return nil, errors.Wrap(err, "failed to stamp new account")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AccountRepo().Create(ctx, newAccount)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration rejected, email already in use", slog.String("username", input.Username))

			return nil, domainerrors.ErrValidationFailed.WithFields(map[string]string{
				"email": "email address is already registered",
			})
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account registration transaction")
	}

	token, err := srv.confirmTokens.Issue(newAccount.ID, service.TokenPurposeEmailConfirm)
	if err != nil {
		srv.log(ctx).Error("Failed to issue confirmation token", slog.Any("accountID", newAccount.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue confirmation token")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", newAccount.ID))

	return &usecase.RegisterOutput{ConfirmationToken: token}, nil
}

// ValidateToken confirms an account's email address. The lookup only sees
// unconfirmed accounts, so a confirmed account makes its own token unusable;
// every failure collapses into the same generic token error.
func (srv *accountService) ValidateToken(ctx context.Context, input *usecase.ValidateTokenInput) error {
	srv.log(ctx).Info("Starting token validation")

	normalizedEmail := entity.NormalizeEmail(input.Email)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByNormalizedEmail(ctx, normalizedEmail, false)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrInvalidToken
			}

			return errors.Wrap(err, "failed to find account for token validation")
		}

		if err := srv.confirmTokens.Validate(account.ID, service.TokenPurposeEmailConfirm, input.Token); err != nil {
			srv.log(ctx).Warn("Confirmation token rejected", slog.Any("accountID", account.ID))

			return domainerrors.ErrInvalidToken
		}

		account.EmailConfirmed = true
		account.StampModify(entity.SystemActor, srv.clock.Now())

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist email confirmation")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidToken) {
			return domainerrors.ErrInvalidToken
		}
		srv.log(ctx).Error("Failed to execute token validation transaction", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute token validation transaction")
	}

	srv.log(ctx).Debug("Token validation completed")

	return nil
}

// Login authenticates an account and establishes a session. The account row is
// loaded under a row lock so concurrent attempts serialize their lockout
// bookkeeping, and failed-attempt counters are committed even though the
// request itself fails.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login")

	normalizedEmail := entity.NormalizeEmail(input.Email)

	var (
		account *entity.Account
		authErr error
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		found, err := accountRepo.FindByNormalizedEmailForUpdate(ctx, normalizedEmail, true)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				// Unknown and unconfirmed addresses fail identically to a wrong
				// password; nothing to persist.
				authErr = domainerrors.ErrLoginFailed

				return nil
			}

			return errors.Wrap(err, "failed to find account for login")
		}

		// The counter update must commit even when authentication fails, so an
		// authentication error is captured instead of returned.
		authErr = srv.authn.Authenticate(found, input.Password)

		found.StampModify(entity.SystemActor, srv.clock.Now())
		if err := accountRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to persist login attempt state")
		}

		account = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute login transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	if authErr != nil {
		srv.log(ctx).Warn("Login failed", slog.Any("error", authErr))

		if errors.Is(authErr, domainerrors.ErrAccountLocked) && !srv.exposeLockout {
			return nil, domainerrors.ErrLoginFailed
		}

		return nil, authErr
	}

	principal, credential, err := srv.sessionTokens.Establish(account)
	if err != nil {
		srv.log(ctx).Error("Failed to establish session", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to establish session")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		Principal:  principal,
		Credential: credential,
	}, nil
}

// Logout ends a session. The credential is stateless, so invalidation happens
// at the transport boundary by discarding the cookie; this exists to record
// the event.
func (srv *accountService) Logout(ctx context.Context, principal service.Principal) error {
	srv.log(ctx).Info("Account logged out", slog.Any("accountID", principal.AccountID))

	return nil
}
