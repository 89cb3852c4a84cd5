package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/geo"
)

// ContactStore is a store for contacts.
type ContactStore interface {
	CreateContact(ctx context.Context, h db.Handler, c models.Contact) (models.Contact, error)
	GetContactByID(ctx context.Context, h db.Handler, teamID, id string) (models.Contact, error)
	// ListContacts returns the contacts matching where, newest first.
	ListContacts(ctx context.Context, h db.Handler, where sq.Sqlizer) ([]models.Contact, error)
	// ContactEmailExists reports whether a contact of the team other than
	// excludeID uses email.
	ContactEmailExists(ctx context.Context, h db.Handler, teamID, email, excludeID string) (bool, error)
	// UpdateContact sets the given columns of a contact.
	UpdateContact(ctx context.Context, h db.Handler, teamID, id string, columns map[string]interface{}) error
	DeleteContacts(ctx context.Context, h db.Handler, teamID string, ids []string) (int64, error)
	// ListContactLocations returns the coordinates of the team's contacts
	// inside box.
	ListContactLocations(ctx context.Context, h db.Handler, teamID string, box geo.Box) ([]models.ContactLocation, error)
}
