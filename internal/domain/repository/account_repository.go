// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"recycle/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
var (
	// ErrAccountNotFound is returned when no matching, non-deleted account exists.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateEmail is returned when the normalized email already identifies
	// a non-deleted account. It is backed by the store's unique constraint, not
	// just a pre-existence check, so concurrent registrations cannot both win.
	ErrDuplicateEmail = errors.New("normalized email already registered")
)

// AccountRepository defines the standard operations for account persistence.
// Every default lookup excludes logically deleted rows; a deleted account is
// unreachable from both the login and the token-validation path.
type AccountRepository interface {
	// Create persists a new account. The caller must have stamped the record
	// via StampCreate first. Unique-constraint violations on the normalized
	// email map to ErrDuplicateEmail.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a non-deleted account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByNormalizedEmail retrieves a non-deleted account whose confirmation
	// state matches. Login passes confirmed=true; token validation passes
	// confirmed=false, which is what makes a confirmation single-use: once the
	// account is confirmed the validation path can no longer see it.
	FindByNormalizedEmail(ctx context.Context, normalizedEmail string, confirmed bool) (*entity.Account, error)

	// FindByNormalizedEmailForUpdate behaves like FindByNormalizedEmail but
	// takes a row-level lock. Must be called inside a transaction; used by the
	// authenticator so concurrent failed-login counter updates are not lost.
	FindByNormalizedEmailForUpdate(ctx context.Context, normalizedEmail string, confirmed bool) (*entity.Account, error)

	// Update persists the mutable credential state (password hash, confirmation
	// flag, lockout counters) together with the refreshed audit columns.
	Update(ctx context.Context, account *entity.Account) error
}
