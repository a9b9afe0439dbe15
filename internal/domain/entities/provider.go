package entities

import "time"

// ServiceProvider is a vendor profile. Each user owns at most one.
type ServiceProvider struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	BusinessName string    `json:"business_name" db:"business_name"`
	Description  string    `json:"description" db:"description"`
	Address      string    `json:"address" db:"address"`
	Verified     bool      `json:"verified" db:"verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateProviderInput carries the fields required to insert a provider.
// New providers always start unverified.
type CreateProviderInput struct {
	UserID       int64
	BusinessName string
	Description  string
	Address      string
	CreatedAt    time.Time
}

// VendorDashboard is a provider profile with the services it offers.
type VendorDashboard struct {
	Provider *ServiceProvider `json:"provider"`
	Services []*Service       `json:"services"`
}
