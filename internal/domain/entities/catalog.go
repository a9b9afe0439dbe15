package entities

// Island is a destination. Reference data with no mutation path.
type Island struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	ImageURL    string `json:"image_url" db:"image_url"`
	Location    string `json:"location" db:"location"`
}

// Service is a bookable activity offered on an island by a provider.
// Price is in whole rupees.
type Service struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	ImageURL    string `json:"image_url" db:"image_url"`
	Price       int64  `json:"price" db:"price"`
	Duration    string `json:"duration" db:"duration"`
	IslandID    int64  `json:"island_id" db:"island_id"`
	ProviderID  *int64 `json:"provider_id,omitempty" db:"provider_id"`
}

// Package is a multi-day tour. Only active packages are listed.
type Package struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	ImageURL    string `json:"image_url" db:"image_url"`
	Price       int64  `json:"price" db:"price"`
	Duration    string `json:"duration" db:"duration"`
	IsActive    bool   `json:"is_active" db:"is_active"`
}

// IslandDetail is an island with the services offered on it.
type IslandDetail struct {
	Island
	Services []*Service `json:"services"`
}

// Activities is the combined listing served to the activities page.
type Activities struct {
	Destinations []*Island  `json:"destinations"`
	Packages     []*Package `json:"packages"`
	Activities   []*Service `json:"activities"`
}
