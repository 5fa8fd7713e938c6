package middleware

import (
	"strings"

	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName carries the session credential between requests.
	SessionCookieName = "recycle_session"

	// principalKey is the echo context key the principal is stored under.
	principalKey = "principal"
)

// AuthMiddleware authenticates requests by verifying the session credential,
// read from the session cookie or an Authorization bearer header.
type AuthMiddleware struct {
	sessionTokens service.SessionTokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessionTokens service.SessionTokenService) *AuthMiddleware {
	return &AuthMiddleware{sessionTokens: sessionTokens}
}

// Authenticate validates the session credential and stores the recovered
// principal on the request context. Missing, malformed and expired credentials
// all produce the same 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		credential := m.extractCredential(c)
		if credential == "" {
			return domainerrors.ErrUnauthenticated
		}

		principal, err := m.sessionTokens.Parse(credential)
		if err != nil {
			return domainerrors.ErrUnauthenticated
		}

		c.Set(principalKey, principal)

		return next(c)
	}
}

// extractCredential prefers the cookie; the bearer header exists for
// non-browser clients.
func (m *AuthMiddleware) extractCredential(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}

	return ""
}

// GetPrincipal retrieves the authenticated principal set by Authenticate.
func GetPrincipal(c echo.Context) (service.Principal, bool) {
	principal, ok := c.Get(principalKey).(service.Principal)

	return principal, ok
}

// SetPrincipal stores a principal on the echo context; used by tests and by
// Authenticate itself.
func SetPrincipal(c echo.Context, principal service.Principal) {
	c.Set(principalKey, principal)
}
