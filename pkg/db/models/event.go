package models

import (
	"database/sql"
	"time"
)

// Event is a team event contacts take part in.
type Event struct {
	ID        string       `db:"id"`
	TeamID    string       `db:"team_id"`
	Name      string       `db:"name"`
	StartsAt  sql.NullTime `db:"starts_at"`
	CreatedAt time.Time    `db:"created_at"`
}

// EventRole is a role contacts can hold at an event.
type EventRole struct {
	ID      string `db:"id"`
	EventID string `db:"event_id"`
	Name    string `db:"name"`
}

// EventRegistration is a public sign up of a contact for an event.
type EventRegistration struct {
	ID        string    `db:"id"`
	EventID   string    `db:"event_id"`
	ContactID string    `db:"contact_id"`
	CreatedAt time.Time `db:"created_at"`
}

// ContactEvent is an event a contact is linked to, either through a role or
// a registration. RoleID and RoleName are empty for registrations.
type ContactEvent struct {
	ContactID string         `db:"contact_id"`
	EventID   string         `db:"event_id"`
	EventName string         `db:"event_name"`
	StartsAt  sql.NullTime   `db:"starts_at"`
	RoleID    sql.NullString `db:"role_id"`
	RoleName  sql.NullString `db:"role_name"`
}
