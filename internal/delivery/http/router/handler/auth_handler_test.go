package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recycle/config"
	"recycle/internal/delivery/http/middleware"
	"recycle/internal/delivery/http/validator"
	domainerrors "recycle/internal/domain/errors"
	"recycle/internal/domain/service"
	"recycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccountUsecase returns canned results; handler tests only exercise the
// HTTP contract, not the business rules.
type fakeAccountUsecase struct {
	registerOutput *usecase.RegisterOutput
	registerErr    error
	validateErr    error
	loginOutput    *usecase.LoginOutput
	loginErr       error
	logoutErr      error

	loggedOut []service.Principal
}

func (f *fakeAccountUsecase) Register(_ context.Context, _ *usecase.RegisterAccountInput) (*usecase.RegisterOutput, error) {
	return f.registerOutput, f.registerErr
}

func (f *fakeAccountUsecase) ValidateToken(_ context.Context, _ *usecase.ValidateTokenInput) error {
	return f.validateErr
}

func (f *fakeAccountUsecase) Login(_ context.Context, _ *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return f.loginOutput, f.loginErr
}

func (f *fakeAccountUsecase) Logout(_ context.Context, principal service.Principal) error {
	f.loggedOut = append(f.loggedOut, principal)

	return f.logoutErr
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	return e
}

func newAuthHandler(uc usecase.AccountUsecase) *AuthHandler {
	cfg := &config.Config{
		Auth: &config.AuthConfig{SessionTTL: 24 * time.Hour},
	}

	return NewAuthHandler(uc, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthHandler_Register_ReturnsToken(t *testing.T) {
	uc := &fakeAccountUsecase{
		registerOutput: &usecase.RegisterOutput{ConfirmationToken: "the-token"},
	}
	e := newTestEcho(t)
	e.POST("/auth/register", newAuthHandler(uc).Register)

	rec := postJSON(e, "/auth/register", `{"username":"tester","email":"tester@example.com","password":"Password123!"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "the-token", body.Data.Token)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	e := newTestEcho(t)
	e.POST("/auth/register", newAuthHandler(&fakeAccountUsecase{}).Register)

	rec := postJSON(e, "/auth/register", `{"username":"tester"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Fields, "email")
	assert.Contains(t, body.Error.Fields, "password")
}

func TestAuthHandler_ValidateToken_NoContent(t *testing.T) {
	e := newTestEcho(t)
	e.POST("/auth/validate-token", newAuthHandler(&fakeAccountUsecase{}).ValidateToken)

	rec := postJSON(e, "/auth/validate-token", `{"email":"tester@example.com","token":"the-token"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestAuthHandler_ValidateToken_InvalidToken(t *testing.T) {
	uc := &fakeAccountUsecase{validateErr: domainerrors.ErrInvalidToken}
	e := newTestEcho(t)
	e.POST("/auth/validate-token", newAuthHandler(uc).ValidateToken)

	rec := postJSON(e, "/auth/validate-token", `{"email":"tester@example.com","token":"forged"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_TOKEN", body.Error.Code)
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	uc := &fakeAccountUsecase{
		loginOutput: &usecase.LoginOutput{
			Principal:  service.Principal{AccountID: uuid.New(), Username: "tester"},
			Credential: "signed-credential",
		},
	}
	e := newTestEcho(t)
	e.POST("/auth/login", newAuthHandler(uc).Login)

	rec := postJSON(e, "/auth/login", `{"email":"tester@example.com","password":"Password123!"}`)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, middleware.SessionCookieName, cookie.Name)
	assert.Equal(t, "signed-credential", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
}

func TestAuthHandler_Login_Failure(t *testing.T) {
	uc := &fakeAccountUsecase{loginErr: domainerrors.ErrLoginFailed}
	e := newTestEcho(t)
	e.POST("/auth/login", newAuthHandler(uc).Login)

	rec := postJSON(e, "/auth/login", `{"email":"tester@example.com","password":"wrong"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "LOGIN_FAILED", body.Error.Code)
	assert.Empty(t, rec.Result().Cookies(), "no session cookie on a failed login")
}

func TestAuthHandler_Logout_ExpiresCookie(t *testing.T) {
	uc := &fakeAccountUsecase{}
	e := newTestEcho(t)
	h := newAuthHandler(uc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	principal := service.Principal{AccountID: uuid.New(), Username: "tester"}
	middleware.SetPrincipal(c, principal)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].Expires.Before(time.Now()))

	require.Len(t, uc.loggedOut, 1)
	assert.Equal(t, principal, uc.loggedOut[0])
}

func TestAuthHandler_Logout_WithoutPrincipal(t *testing.T) {
	e := newTestEcho(t)
	h := newAuthHandler(&fakeAccountUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Logout(c)

	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}
