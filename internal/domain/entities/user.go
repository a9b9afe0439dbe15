package entities

import (
	"strings"
	"time"
)

// Role ids as seeded by the schema migration.
const (
	RoleAdmin  int64 = 1
	RoleUser   int64 = 2
	RoleVendor int64 = 3
)

// RoleName returns the claim value used for a role id.
func RoleName(roleID int64) string {
	switch roleID {
	case RoleAdmin:
		return "admin"
	case RoleVendor:
		return "vendor"
	default:
		return "user"
	}
}

// User represents a registered account
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	RoleID       int64     `json:"role_id" db:"role_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DisplayName joins first and last name.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CreateUserInput carries the fields required to insert a user.
// PasswordHash must already be derived; plaintext never reaches the store.
type CreateUserInput struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	RoleID       int64
	CreatedAt    time.Time
}
