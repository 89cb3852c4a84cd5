package backend

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/proto"
)

// CreateEvent creates an event of a team. A zero startsAt leaves the start
// unset.
func (d *Backend) CreateEvent(ctx context.Context, teamID, name string, startsAt time.Time) (proto.Event, error) {
	name = strings.TrimSpace(name)
	if teamID == "" {
		return proto.Event{}, proto.ErrTeamRequired
	}
	if name == "" {
		return proto.Event{}, proto.ErrNameRequired
	}

	starts := sql.NullTime{Time: startsAt, Valid: !startsAt.IsZero()}
	e, err := d.store.CreateEvent(ctx, d.db, teamID, name, starts)
	if err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			return proto.Event{}, proto.ErrTeamNotFound
		}
		return proto.Event{}, err
	}

	return eventFromModel(e), nil
}

// CreateEventRole adds a role to an event of a team.
func (d *Backend) CreateEventRole(ctx context.Context, teamID, eventID, name string) (proto.EventRole, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return proto.EventRole{}, proto.ErrNameRequired
	}

	var r models.EventRole
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := d.checkEvent(ctx, tx, teamID, eventID); err != nil {
			return err
		}
		var err error
		r, err = d.store.CreateEventRole(ctx, tx, eventID, name)
		return err
	})
	if err != nil {
		return proto.EventRole{}, err
	}

	return proto.EventRole{ID: r.ID, EventID: r.EventID, Name: r.Name}, nil
}

// AssignEventRole gives a contact a role at an event. Assigning a role twice
// is a no-op.
func (d *Backend) AssignEventRole(ctx context.Context, teamID, contactID, roleID string) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.contact(ctx, tx, teamID, contactID); err != nil {
			return err
		}
		if _, err := d.store.GetEventRoleByID(ctx, tx, teamID, roleID); err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrEventNotFound
			}
			return err
		}
		return d.store.AssignEventRole(ctx, tx, contactID, roleID)
	})
}

// RegisterForEvent records a contact's registration for an event.
func (d *Backend) RegisterForEvent(ctx context.Context, teamID, eventID, contactID string) error {
	return d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.contact(ctx, tx, teamID, contactID); err != nil {
			return err
		}
		if err := d.checkEvent(ctx, tx, teamID, eventID); err != nil {
			return err
		}
		return d.store.RegisterForEvent(ctx, tx, eventID, contactID)
	})
}

func (d *Backend) checkEvent(ctx context.Context, h db.Handler, teamID, eventID string) error {
	if _, err := d.store.GetEventByID(ctx, h, teamID, eventID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrEventNotFound
		}
		return err
	}
	return nil
}

func eventFromModel(e models.Event) proto.Event {
	return proto.Event{
		ID:       e.ID,
		TeamID:   e.TeamID,
		Name:     e.Name,
		StartsAt: timePtr(e.StartsAt),
	}
}
