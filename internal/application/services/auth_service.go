package services

import (
	"context"
	"strings"

	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

// Messages returned to API callers.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserExists         = "User with this email already exists"
)

// RegisterInput is a registration request after boundary validation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthService handles registration and credential checks
type AuthService struct {
	users   repositories.UserRepository
	metrics *observability.Metrics
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, metrics *observability.Metrics) *AuthService {
	return &AuthService{users: users, metrics: metrics}
}

// Register creates a user account with the default role and returns its id.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	return s.createUser(ctx, in, entities.RoleUser)
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput, roleID int64) (int64, error) {
	email := strings.TrimSpace(in.Email)

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, apperrors.NewConflictError(MsgUserExists)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to hash password", err)
	}

	first, last := auth.SplitName(in.Name)
	res, err := s.users.CreateUser(ctx, entities.CreateUserInput{
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Phone:        strings.TrimSpace(in.Phone),
		RoleID:       roleID,
	})
	if err != nil {
		// lost a race with a concurrent registration
		if apperrors.Is(err, apperrors.ErrorTypeConflict) {
			return 0, apperrors.NewConflictError(MsgUserExists)
		}
		return 0, err
	}
	if !res.Success {
		return 0, apperrors.NewInternalError("failed to create user", nil)
	}

	observability.LoggerFromContext(ctx).Info().Int64("user_id", res.ID).Str("role", entities.RoleName(roleID)).Msg("user registered")
	return res.ID, nil
}

// Login checks credentials and returns the stored user. Unknown email, a
// user without a stored credential and a wrong password all fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		observability.RecordLogin(ctx, s.metrics, "error")
		return nil, err
	}
	if user == nil {
		observability.RecordLogin(ctx, s.metrics, "rejected")
		return nil, apperrors.NewUnauthorizedError(MsgInvalidCredentials)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		observability.RecordLogin(ctx, s.metrics, "rejected")
		return nil, apperrors.NewUnauthorizedError(MsgInvalidCredentials)
	}

	observability.RecordLogin(ctx, s.metrics, "success")
	return user, nil
}

// EnsureAdmin creates an admin account when email is set and no user holds
// it yet. An existing account is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}
	if password == "" {
		return apperrors.NewValidationError("admin password is required when admin email is set")
	}

	_, err := s.createUser(ctx, RegisterInput{Name: "Admin", Email: email, Password: password}, entities.RoleAdmin)
	if apperrors.Is(err, apperrors.ErrorTypeConflict) {
		observability.LoggerFromContext(ctx).Debug().Str("email", email).Msg("admin account already present")
		return nil
	}
	return err
}
