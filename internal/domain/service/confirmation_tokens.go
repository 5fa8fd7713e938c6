package service

import (
	"github.com/google/uuid"
)

// TokenPurpose scopes a confirmation token to a single use case. A token
// issued for one purpose never validates for another.
type TokenPurpose string

// TokenPurposeEmailConfirm proves control of the registered email address.
const TokenPurposeEmailConfirm TokenPurpose = "email_confirm"

// ConfirmationTokenService issues and verifies single-use, time-scoped tokens
// bound to an (account, purpose) pair. Tokens are derived values, not stored:
// consuming one flips account state, after which the unconfirmed-only lookup
// no longer finds the account and replay fails regardless of the token string.
type ConfirmationTokenService interface {
	// Issue produces an opaque token for out-of-band delivery.
	Issue(accountID uuid.UUID, purpose TokenPurpose) (string, error)

	// Validate verifies that token was issued for this account and purpose and
	// has not expired. It performs no state change; callers consume the token
	// by flipping the account's confirmation flag.
	Validate(accountID uuid.UUID, purpose TokenPurpose, token string) error
}
