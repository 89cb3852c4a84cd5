package proto

import (
	"time"

	"github.com/grantflow/grantflow/pkg/access"
)

// Team is a tenant of the contact database.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Group is a team scoped set of users.
type Group struct {
	ID                   string             `json:"id"`
	TeamID               string             `json:"teamId"`
	Name                 string             `json:"name"`
	CanAccessAllContacts bool               `json:"canAccessAllContacts"`
	Modules              []access.Submodule `json:"modules"`
	IsDefault            bool               `json:"isDefault"`
	Members              []string           `json:"members,omitempty"`
}

// GroupOptions are options for creating a group.
type GroupOptions struct {
	Name                 string             `json:"name"`
	CanAccessAllContacts bool               `json:"canAccessAllContacts"`
	Modules              []access.Submodule `json:"modules"`
}

// Event is a team event.
type Event struct {
	ID       string     `json:"id"`
	TeamID   string     `json:"teamId"`
	Name     string     `json:"name"`
	StartsAt *time.Time `json:"startsAt,omitempty"`
}

// EventRole is a role contacts hold at an event.
type EventRole struct {
	ID      string `json:"id"`
	EventID string `json:"eventId"`
	Name    string `json:"name"`
}

// Centroid is the reference coordinate of a postal code area.
type Centroid struct {
	CountryCode string  `json:"countryCode"`
	PostalCode  string  `json:"postalCode"`
	PlaceName   string  `json:"placeName,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
