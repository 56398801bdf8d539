// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/survey-auth/internal/logger"
	"github.com/MKhiriev/survey-auth/internal/service"
	"github.com/MKhiriev/survey-auth/internal/store"
	"github.com/MKhiriev/survey-auth/internal/validators"
	"github.com/MKhiriev/survey-auth/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn           func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	loginFn              func(ctx context.Context, username, password string) (models.TokenPair, error)
	createTokenPairFn    func(ctx context.Context, user models.User) (models.TokenPair, error)
	refreshTokensFn      func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	parseTokenFn         func(ctx context.Context, tokenString string) (models.Token, error)
	changePasswordFn     func(ctx context.Context, username, oldPassword, newPassword string) error
	adminResetPasswordFn func(ctx context.Context, username, newPassword string) error
}

func (m *mockAuthService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, request)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (models.TokenPair, error) {
	return m.loginFn(ctx, username, password)
}

func (m *mockAuthService) CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	return m.createTokenPairFn(ctx, user)
}

func (m *mockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return m.refreshTokensFn(ctx, refreshToken)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return m.changePasswordFn(ctx, username, oldPassword, newPassword)
}

func (m *mockAuthService) AdminResetPassword(ctx context.Context, username, newPassword string) error {
	return m.adminResetPasswordFn(ctx, username, newPassword)
}

// ─────────────────────────────────────────────
// Mock PasswordResetService
// ─────────────────────────────────────────────

type mockResetService struct {
	initiateFn func(ctx context.Context, email string) error
	completeFn func(ctx context.Context, token, newPassword string) error
}

func (m *mockResetService) InitiateReset(ctx context.Context, email string) error {
	return m.initiateFn(ctx, email)
}

func (m *mockResetService) CompleteReset(ctx context.Context, token, newPassword string) error {
	return m.completeFn(ctx, token, newPassword)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler over the given service mocks.
func newTestHandler(t *testing.T, auth service.AuthService, reset service.PasswordResetService) *Handler {
	t.Helper()
	svcs := &service.Services{
		AuthService:          auth,
		PasswordResetService: reset,
	}
	return NewHandler(svcs, logger.Nop())
}

// serve runs a request through the full router, middleware included.
func serve(h *Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// accessToken builds a parsed token fixture for the auth middleware mock.
func accessToken(username string, roles ...string) models.Token {
	return models.Token{
		Claims: models.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: username},
			Roles:            roles,
		},
	}
}

func stubPair() models.TokenPair {
	return models.NewTokenPair("signed-access", "signed-refresh")
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLoginHandler_Success(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, username, password string) (models.TokenPair, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "Correct1!Password", password)
			return stubPair(), nil
		},
	}
	h := newTestHandler(t, auth, nil)

	rec := serve(h, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"Correct1!Password"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	assert.Equal(t, "signed-access", pair.AccessToken)
	assert.Equal(t, "signed-refresh", pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(context.Context, string, string) (models.TokenPair, error) {
			return models.TokenPair{}, service.ErrInvalidCredentials
		},
	}
	h := newTestHandler(t, auth, nil)

	rec := serve(h, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"wrong"}`, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid username or password.", resp.Message,
		"response must not reveal whether the username or the password was wrong")
}

func TestLoginHandler_ExpiredPasswordIsDistinct(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(context.Context, string, string) (models.TokenPair, error) {
			return models.TokenPair{}, service.ErrPasswordExpired
		},
	}
	h := newTestHandler(t, auth, nil)

	rec := serve(h, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"Correct1!Password"}`, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Password is expired and must be changed.", resp.Message)
}

func TestLoginHandler_MalformedJSON(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)

	rec := serve(h, http.MethodPost, "/api/auth/login", `{not json`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestRegisterHandler_Success(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, request models.RegisterRequest) (models.User, error) {
			return models.User{
				UserID:      7,
				Username:    request.Username,
				Email:       request.Email,
				Authorities: []models.Authority{models.RoleUser},
				Active:      true,
			}, nil
		},
	}
	h := newTestHandler(t, auth, nil)

	rec := serve(h, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"Correct1!Password"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "bob", user.Username)
	assert.NotContains(t, rec.Body.String(), "password",
		"credential material must never appear in responses")
}

func TestRegisterHandler_PolicyViolationsListed(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(context.Context, models.RegisterRequest) (models.User, error) {
			return models.User{}, &validators.PolicyViolationError{
				Violations: []string{validators.ViolationLength, validators.ViolationDigit},
			}
		},
	}
	h := newTestHandler(t, auth, nil)

	rec := serve(h, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"weak"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{validators.ViolationLength, validators.ViolationDigit}, resp.Violations)
}

func TestRegisterHandler_DuplicateUser(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(context.Context, models.RegisterRequest) (models.User, error) {
			return models.User{}, store.ErrUserAlreadyExists
		},
	}
	h := newTestHandler(t, auth, nil)

	rec := serve(h, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"Correct1!Password"}`, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// ─────────────────────────────────────────────
// Refresh
// ─────────────────────────────────────────────

func TestRefreshHandler_Success(t *testing.T) {
	auth := &mockAuthService{
		refreshTokensFn: func(_ context.Context, refreshToken string) (models.TokenPair, error) {
			assert.Equal(t, "old-refresh", refreshToken)
			return stubPair(), nil
		},
	}
	h := newTestHandler(t, auth, nil)

	rec := serve(h, http.MethodPost, "/api/auth/refresh",
		`{"refreshToken":"old-refresh"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	assert.Equal(t, "signed-access", pair.AccessToken)
}

func TestRefreshHandler_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		refreshTokensFn: func(context.Context, string) (models.TokenPair, error) {
			return models.TokenPair{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newTestHandler(t, auth, nil)

	rec := serve(h, http.MethodPost, "/api/auth/refresh",
		`{"refreshToken":"garbage"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
