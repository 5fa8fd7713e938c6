// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"recycle/internal/domain/service"
)

// --- Input DTOs ---

// RegisterAccountInput defines the data required to register a new account.
type RegisterAccountInput struct {
	Username string
	Email    string
	Password string
}

// ValidateTokenInput defines the data required to confirm an account's email.
type ValidateTokenInput struct {
	Email string
	Token string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the confirmation token the caller must present to
// activate the account. Mail delivery is out of process, so the token travels
// back in the registration response.
type RegisterOutput struct {
	ConfirmationToken string
}

// LoginOutput returns the established session after a successful login.
type LoginOutput struct {
	Principal  service.Principal
	Credential string
}

// AccountUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterAccountInput) (*RegisterOutput, error)
	ValidateToken(ctx context.Context, input *ValidateTokenInput) error
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, principal service.Principal) error
}
