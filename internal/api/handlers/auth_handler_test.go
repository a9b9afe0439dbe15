package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chandrabs25/Andaman-travel-website/internal/api/handlers"
	"github.com/chandrabs25/Andaman-travel-website/internal/application/services"
	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

var testTokens = auth.NewTokenManager("handler-test-secret")

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*MockAuthService)
		wantStatus int
		wantMsg    string
	}{
		{
			name: "created",
			body: `{"name":"Asha Rao","email":"asha@example.com","password":"coral-reef-42"}`,
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, services.RegisterInput{Name: "Asha Rao", Email: "asha@example.com", Password: "coral-reef-42"}).
					Return(int64(3), nil)
			},
			wantStatus: http.StatusCreated,
			wantMsg:    "User registered successfully",
		},
		{
			name:       "missing password",
			body:       `{"name":"Asha Rao","email":"asha@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Name, email, and password are required",
		},
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Name, email, and password are required",
		},
		{
			name:       "malformed email",
			body:       `{"name":"Asha","email":"not-an-email","password":"pw"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "email must be a valid email address",
		},
		{
			name: "duplicate",
			body: `{"name":"John Doe","email":"user@example.com","password":"pw"}`,
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(int64(0), apperrors.NewConflictError(services.MsgUserExists))
			},
			wantStatus: http.StatusConflict,
			wantMsg:    services.MsgUserExists,
		},
		{
			name: "store failure is not echoed",
			body: `{"name":"John Doe","email":"john@example.com","password":"pw"}`,
			setup: func(m *MockAuthService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return(int64(0), apperrors.NewInternalError("query failed", errors.New("disk I/O error")))
			},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    handlers.MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			if tt.setup != nil {
				tt.setup(svc)
			}
			rec := httptest.NewRecorder()
			handlers.NewAuthHandler(svc, testTokens).Register(rec, newRequest(http.MethodPost, "/api/auth/register", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantStatus < 400, env.Success)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.NotContains(t, rec.Body.String(), "disk I/O")
			if tt.setup == nil {
				svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAuthHandler_LoginOmitsPasswordHash(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "asha@example.com", "coral-reef-42").Return(&entities.User{
		ID:           3,
		Email:        "asha@example.com",
		PasswordHash: "$2a$10$secret",
		FirstName:    "Asha",
		LastName:     "Rao",
		RoleID:       entities.RoleVendor,
	}, nil)

	rec := httptest.NewRecorder()
	handlers.NewAuthHandler(svc, testTokens).Login(rec, newRequest(http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"coral-reef-42"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.NotContains(t, rec.Body.String(), "password_hash")
	assert.NotContains(t, rec.Body.String(), "$2a$10$secret")

	var user map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, float64(3), user["id"])
	assert.Equal(t, "Asha", user["first_name"])
	assert.Equal(t, "vendor", user["role"])

	token, ok := user["token"].(string)
	require.True(t, ok)
	id, err := testTokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{ID: 3, Name: "Asha Rao", Email: "asha@example.com", Role: "vendor"}, id)
}

func TestAuthHandler_LoginWithoutSigningKeyIsInternalError(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "asha@example.com", "coral-reef-42").
		Return(&entities.User{ID: 3, Email: "asha@example.com", RoleID: entities.RoleUser}, nil)

	rec := httptest.NewRecorder()
	handlers.NewAuthHandler(svc, auth.NewTokenVerifier(testTokens.PublicKey())).Login(rec,
		newRequest(http.MethodPost, "/api/auth/login", `{"email":"asha@example.com","password":"coral-reef-42"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, handlers.MsgInternalError, decodeEnvelope(t, rec).Message)
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "user@example.com", "whatever").
		Return(nil, apperrors.NewUnauthorizedError(services.MsgInvalidCredentials))
	h := handlers.NewAuthHandler(svc, testTokens)

	rec := httptest.NewRecorder()
	h.Login(rec, newRequest(http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"whatever"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeEnvelope(t, rec).Message)

	rec = httptest.NewRecorder()
	h.Login(rec, newRequest(http.MethodPost, "/api/auth/login", `{"email":"user@example.com"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", decodeEnvelope(t, rec).Message)

	rec = httptest.NewRecorder()
	h.Login(rec, newRequest(http.MethodPost, "/api/auth/login", `{"email":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request payload", decodeEnvelope(t, rec).Message)
}
