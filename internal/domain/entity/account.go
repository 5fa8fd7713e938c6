package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SystemActor is the provenance principal used for writes performed by the
// service itself rather than an authenticated user, e.g. self-registration.
const SystemActor = "system"

// Account represents a user identity and its credential state. It is the only
// entity whose lockout and confirmation fields carry multi-step state; catalog
// entities only share the embedded Trackable contract.
type Account struct {
	ID              uuid.UUID // Immutable once created.
	Username        string
	Email           string // Email exactly as the user entered it.
	NormalizedEmail string // Case-folded form used for uniqueness and lookups.
	PasswordHash    string // bcrypt hash; plaintext is never stored or logged.
	EmailConfirmed  bool   // Starts false, flips to true exactly once.

	// Lockout bookkeeping, mutated only by the authenticator.
	FailedLoginCount int
	LockoutEndsAt    *time.Time

	Trackable
}

// NormalizeEmail folds an email address into its canonical lookup form.
// Upper-case folding matches the normalization the confirmation and login
// paths both rely on, so the two lookups can never disagree.
func NormalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}

// IsLockedOut reports whether the account is still inside its lockout window.
func (a *Account) IsLockedOut(now time.Time) bool {
	return a.LockoutEndsAt != nil && now.Before(*a.LockoutEndsAt)
}
