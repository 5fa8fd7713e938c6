// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"recycle/config"
	"recycle/internal/domain/entity"
	"recycle/internal/domain/service"
)

// sessionTokenService materializes session principals as HS256 JWTs. The
// transport boundary carries the credential (cookie or bearer header); no
// server-side session table exists, so revocation is the boundary's concern.
type sessionTokenService struct {
	secret []byte
	ttl    time.Duration
	clock  service.Clock
}

// NewSessionTokenService is the constructor for sessionTokenService.
func NewSessionTokenService(cfg *config.Config, clock service.Clock) (service.SessionTokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &sessionTokenService{
		secret: []byte(cfg.SecretKey.Session),
		ttl:    cfg.Auth.SessionTTL,
		clock:  clock,
	}, nil
}

// Establish derives a principal from a verified account and signs it.
func (s *sessionTokenService) Establish(account *entity.Account) (service.Principal, string, error) {
	principal := service.Principal{
		AccountID:      account.ID,
		Username:       account.Username,
		EmailConfirmed: account.EmailConfirmed,
	}

	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":             principal.AccountID.String(),
		"username":        principal.Username,
		"email_confirmed": principal.EmailConfirmed,
		"iat":             now.Unix(),
		"exp":             now.Add(s.ttl).Unix(),
	}

	credential, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return service.Principal{}, "", errors.Wrap(err, "failed to sign session credential")
	}

	return principal, credential, nil
}

// Parse verifies a session credential and recovers the principal.
func (s *sessionTokenService) Parse(credential string) (service.Principal, error) {
	token, err := jwt.Parse(credential, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return service.Principal{}, errors.New("session credential is invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return service.Principal{}, errors.New("session credential carries no claims")
	}

	sub, _ := claims["sub"].(string)
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return service.Principal{}, errors.Wrap(err, "session credential has a malformed subject")
	}

	username, _ := claims["username"].(string)
	confirmed, _ := claims["email_confirmed"].(bool)

	return service.Principal{
		AccountID:      accountID,
		Username:       username,
		EmailConfirmed: confirmed,
	}, nil
}
