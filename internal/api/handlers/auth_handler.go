package handlers

import (
	"context"
	"net/http"

	"github.com/chandrabs25/Andaman-travel-website/internal/application/services"
	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

// AuthService defines the account operations used by AuthHandler.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (int64, error)
	Login(ctx context.Context, email, password string) (*entities.User, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// AuthHandler handles registration and login
type AuthHandler struct {
	service AuthService
	tokens  TokenIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens}
}

// loginUser is the stored user as returned to the client, hash excluded,
// with the session token the server signed for it.
type loginUser struct {
	*entities.User
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(w, r, &req, "Name, email, and password are required"); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	id, err := h.service.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "User registered successfully",
		Data:    map[string]int64{"id": id},
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(w, r, &req, "Email and password are required"); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(auth.IdentityFor(user))
	if err != nil {
		respondWithAppError(w, r, apperrors.NewInternalError("issuing session token", err))
		return
	}

	respondWithJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Login successful",
		Data:    loginUser{User: user, Role: entities.RoleName(user.RoleID), Token: token},
	})
}
