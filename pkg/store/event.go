package store

import (
	"context"
	"database/sql"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
)

// EventStore is a store for events, event roles and their contacts.
type EventStore interface {
	CreateEvent(ctx context.Context, h db.Handler, teamID, name string, startsAt sql.NullTime) (models.Event, error)
	GetEventByID(ctx context.Context, h db.Handler, teamID, id string) (models.Event, error)
	CreateEventRole(ctx context.Context, h db.Handler, eventID, name string) (models.EventRole, error)
	GetEventRoleByID(ctx context.Context, h db.Handler, teamID, id string) (models.EventRole, error)
	AssignEventRole(ctx context.Context, h db.Handler, contactID, roleID string) error
	RegisterForEvent(ctx context.Context, h db.Handler, eventID, contactID string) error
	ListContactEvents(ctx context.Context, h db.Handler, contactIDs []string) ([]models.ContactEvent, error)
}

// PostalCodeStore is a store for postal code centroids.
type PostalCodeStore interface {
	UpsertCentroid(ctx context.Context, h db.Handler, c models.PostalCodeCentroid) error
	GetCentroid(ctx context.Context, h db.Handler, countryCode, postalCode string) (models.PostalCodeCentroid, error)
}
