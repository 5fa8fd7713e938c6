package service

import (
	"recycle/internal/domain/entity"

	"github.com/google/uuid"
)

// Principal is the authenticated identity artifact handed to the transport
// boundary after a successful login. It is derived from a verified account and
// carries the claims downstream authorization needs; no server-side session
// row backs it.
type Principal struct {
	AccountID      uuid.UUID
	Username       string
	EmailConfirmed bool
}

// SessionTokenService converts a verified account into a session credential
// and back. The transport boundary decides how the credential is materialized
// (cookie, bearer header) and destroyed.
type SessionTokenService interface {
	// Establish derives a principal from a verified account and serializes it
	// into a signed session credential.
	Establish(account *entity.Account) (Principal, string, error)

	// Parse verifies a session credential and recovers the principal.
	Parse(credential string) (Principal, error)
}
