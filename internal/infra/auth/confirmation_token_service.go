// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"recycle/config"
	"recycle/internal/domain/service"
)

// confirmationTokenService issues and verifies email-ownership tokens as
// HS256 JWTs bound to an account and purpose. The token is a derived value;
// nothing is stored, and single-use semantics come from the account's
// confirmation state, not from the token itself.
type confirmationTokenService struct {
	secret []byte
	ttl    time.Duration
	clock  service.Clock
}

// NewConfirmationTokenService is the constructor for confirmationTokenService.
func NewConfirmationTokenService(cfg *config.Config, clock service.Clock) (service.ConfirmationTokenService, error) {
	if cfg.SecretKey.Confirmation == "" {
		return nil, errors.New("confirmation token secret must be provided")
	}

	return &confirmationTokenService{
		secret: []byte(cfg.SecretKey.Confirmation),
		ttl:    cfg.Auth.ConfirmationTokenTTL,
		clock:  clock,
	}, nil
}

// Issue produces an opaque token proving control of the account's email.
func (s *confirmationTokenService) Issue(accountID uuid.UUID, purpose service.TokenPurpose) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":     accountID.String(),
		"purpose": string(purpose),
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign confirmation token")
	}

	return token, nil
}

// Validate verifies the token's signature, expiry and (account, purpose) binding.
func (s *confirmationTokenService) Validate(accountID uuid.UUID, purpose service.TokenPurpose, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return errors.New("confirmation token is invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("confirmation token carries no claims")
	}

	if sub, _ := claims["sub"].(string); sub != accountID.String() {
		return errors.New("confirmation token is bound to a different account")
	}
	if p, _ := claims["purpose"].(string); p != string(purpose) {
		return errors.New("confirmation token is bound to a different purpose")
	}

	return nil
}
