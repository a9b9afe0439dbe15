package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
)

var userColumns = []interface{}{
	"id", "email", "password_hash", "first_name", "last_name", "phone", "role_id", "created_at",
}

// GetUserByEmail looks a user up by exact email.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := s.dialect.From("users").Prepared(true).
		Select(userColumns...).
		Where(goqu.C("email").Eq(email))

	var user entities.User
	found, err := s.get(ctx, query, &user, "user")
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// GetUserByID looks a user up by id.
func (s *Service) GetUserByID(ctx context.Context, id int64) (*entities.User, error) {
	query := s.dialect.From("users").Prepared(true).
		Select(userColumns...).
		Where(goqu.C("id").Eq(id))

	var user entities.User
	found, err := s.get(ctx, query, &user, "user")
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a user. A duplicate email is reported as a conflict.
func (s *Service) CreateUser(ctx context.Context, input entities.CreateUserInput) (repositories.WriteResult, error) {
	var phone interface{}
	if input.Phone != "" {
		phone = input.Phone
	}
	roleID := input.RoleID
	if roleID == 0 {
		roleID = entities.RoleUser
	}

	query := s.dialect.Insert("users").Prepared(true).Rows(goqu.Record{
		"email":         input.Email,
		"password_hash": input.PasswordHash,
		"first_name":    input.FirstName,
		"last_name":     input.LastName,
		"phone":         phone,
		"role_id":       roleID,
		"created_at":    s.createdAt(input.CreatedAt),
	})
	return s.exec(ctx, query, "user")
}
