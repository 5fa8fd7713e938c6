package impl

import (
	"time"

	"recycle/config"
	"recycle/internal/domain/entity"
	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/domain/service"
)

// authenticator applies the credential check and lockout policy to an account
// loaded under a row lock. It mutates the account's lockout bookkeeping in
// memory; the caller persists the account and commits, including on failure,
// so failed attempts survive the rolled-up login error.
type authenticator struct {
	hasher            service.PasswordHasher
	clock             service.Clock
	maxFailedAttempts int
	lockoutDuration   time.Duration
}

func newAuthenticator(cfg *config.AuthConfig, hasher service.PasswordHasher, clock service.Clock) *authenticator {
	return &authenticator{
		hasher:            hasher,
		clock:             clock,
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
	}
}

// Authenticate verifies the password against the account and updates its
// lockout state. It returns domainerrors.ErrAccountLocked while the lockout
// window is open and domainerrors.ErrLoginFailed on a wrong password; the
// caller decides whether the lockout distinction is surfaced to the client.
func (a *authenticator) Authenticate(account *entity.Account, password string) error {
	now := a.clock.Now()

	if account.IsLockedOut(now) {
		return domainerrors.ErrAccountLocked
	}

	// An expired lockout window starts the count over; stale counters from a
	// previous window must not shorten the next one.
	if account.LockoutEndsAt != nil {
		account.LockoutEndsAt = nil
		account.FailedLoginCount = 0
	}

	if !a.hasher.Check(password, account.PasswordHash) {
		account.FailedLoginCount++
		if account.FailedLoginCount >= a.maxFailedAttempts {
			lockoutEnd := now.Add(a.lockoutDuration)
			account.LockoutEndsAt = &lockoutEnd
		}

		return domainerrors.ErrLoginFailed
	}

	// Success clears all lockout bookkeeping.
	account.FailedLoginCount = 0
	account.LockoutEndsAt = nil

	return nil
}
