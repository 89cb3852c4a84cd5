package database

import (
	"context"
	"database/sql"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/store"
	"github.com/jmoiron/sqlx"
)

var _ store.EventStore = (*eventStore)(nil)

type eventStore struct{}

// CreateEvent implements store.EventStore.
func (*eventStore) CreateEvent(ctx context.Context, h db.Handler, teamID, name string, startsAt sql.NullTime) (models.Event, error) {
	e := models.Event{
		ID:        newID(),
		TeamID:    teamID,
		Name:      name,
		StartsAt:  startsAt,
		CreatedAt: now(),
	}
	if e.StartsAt.Valid {
		e.StartsAt.Time = e.StartsAt.Time.UTC()
	}
	query := h.Rebind(`
		INSERT INTO
		  events (id, team_id, name, starts_at, created_at)
		VALUES
		  (?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, e.ID, e.TeamID, e.Name, e.StartsAt, e.CreatedAt)
	return e, db.WrapError(err)
}

// GetEventByID implements store.EventStore.
func (*eventStore) GetEventByID(ctx context.Context, h db.Handler, teamID, id string) (models.Event, error) {
	var e models.Event
	query := h.Rebind("SELECT * FROM events WHERE team_id = ? AND id = ?;")
	err := h.GetContext(ctx, &e, query, teamID, id)
	return e, db.WrapError(err)
}

// CreateEventRole implements store.EventStore.
func (*eventStore) CreateEventRole(ctx context.Context, h db.Handler, eventID, name string) (models.EventRole, error) {
	r := models.EventRole{
		ID:      newID(),
		EventID: eventID,
		Name:    name,
	}
	query := h.Rebind("INSERT INTO event_roles (id, event_id, name) VALUES (?, ?, ?);")
	_, err := h.ExecContext(ctx, query, r.ID, r.EventID, r.Name)
	return r, db.WrapError(err)
}

// GetEventRoleByID implements store.EventStore.
func (*eventStore) GetEventRoleByID(ctx context.Context, h db.Handler, teamID, id string) (models.EventRole, error) {
	var r models.EventRole
	query := h.Rebind(`
		SELECT
		  r.*
		FROM
		  event_roles r
		  JOIN events e ON e.id = r.event_id
		WHERE
		  e.team_id = ?
		  AND r.id = ?
	`)
	err := h.GetContext(ctx, &r, query, teamID, id)
	return r, db.WrapError(err)
}

// AssignEventRole implements store.EventStore.
func (*eventStore) AssignEventRole(ctx context.Context, h db.Handler, contactID, roleID string) error {
	query := h.Rebind(`
		INSERT INTO
		  contact_event_roles (contact_id, event_role_id)
		VALUES
		  (?, ?)
		ON CONFLICT (contact_id, event_role_id) DO NOTHING
	`)
	_, err := h.ExecContext(ctx, query, contactID, roleID)
	return db.WrapError(err)
}

// RegisterForEvent implements store.EventStore.
func (*eventStore) RegisterForEvent(ctx context.Context, h db.Handler, eventID, contactID string) error {
	query := h.Rebind(`
		INSERT INTO
		  event_registrations (id, event_id, contact_id, created_at)
		VALUES
		  (?, ?, ?, ?)
		ON CONFLICT (event_id, contact_id) DO NOTHING
	`)
	_, err := h.ExecContext(ctx, query, newID(), eventID, contactID, now())
	return db.WrapError(err)
}

// ListContactEvents implements store.EventStore. Role assignments come
// first, followed by registrations.
func (*eventStore) ListContactEvents(ctx context.Context, h db.Handler, contactIDs []string) ([]models.ContactEvent, error) {
	if len(contactIDs) == 0 {
		return nil, nil
	}

	var events []models.ContactEvent
	query, args, err := sqlx.In(`
		SELECT
		  cer.contact_id,
		  e.id AS event_id,
		  e.name AS event_name,
		  e.starts_at,
		  r.id AS role_id,
		  r.name AS role_name
		FROM
		  contact_event_roles cer
		  JOIN event_roles r ON r.id = cer.event_role_id
		  JOIN events e ON e.id = r.event_id
		WHERE
		  cer.contact_id IN (?)
		ORDER BY
		  e.starts_at,
		  e.id,
		  r.name
	`, contactIDs)
	if err != nil {
		return nil, err
	}
	if err := h.SelectContext(ctx, &events, h.Rebind(query), args...); err != nil {
		return nil, db.WrapError(err)
	}

	var registrations []models.ContactEvent
	query, args, err = sqlx.In(`
		SELECT
		  er.contact_id,
		  e.id AS event_id,
		  e.name AS event_name,
		  e.starts_at
		FROM
		  event_registrations er
		  JOIN events e ON e.id = er.event_id
		WHERE
		  er.contact_id IN (?)
		ORDER BY
		  e.starts_at,
		  e.id
	`, contactIDs)
	if err != nil {
		return nil, err
	}
	if err := h.SelectContext(ctx, &registrations, h.Rebind(query), args...); err != nil {
		return nil, db.WrapError(err)
	}

	return append(events, registrations...), nil
}
