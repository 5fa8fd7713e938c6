// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"recycle/config"
	"recycle/internal/domain/service"

	"github.com/pkg/errors"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost     int
	strength *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{
		cost:     cost,
		strength: cfg.PasswordStrength,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash failed")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks the candidate against the configured rules.
// The returned error message enumerates every violated rule so the caller can
// surface a complete, field-scoped validation response in one round trip.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	rules := h.strength
	if rules == nil {
		return nil
	}

	var violations []string

	if rules.MinLength > 0 && len(password) < rules.MinLength {
		violations = append(violations, errors.Errorf("must be at least %d characters", rules.MinLength).Error())
	}
	if rules.MaxLength > 0 && len(password) > rules.MaxLength {
		violations = append(violations, errors.Errorf("must be at most %d characters", rules.MaxLength).Error())
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if rules.RequireUppercase && !hasUpper {
		violations = append(violations, "must contain an upper-case letter")
	}
	if rules.RequireLowercase && !hasLower {
		violations = append(violations, "must contain a lower-case letter")
	}
	if rules.RequireNumbers && !hasDigit {
		violations = append(violations, "must contain a digit")
	}
	if rules.RequireSpecial && !hasSpecial {
		violations = append(violations, "must contain a symbol")
	}

	if len(violations) > 0 {
		return errors.New("password " + strings.Join(violations, "; "))
	}

	return nil
}
