package models

import (
	"time"
)

// Team is a tenant of the contact database.
type Team struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Group is a team scoped set of users.
type Group struct {
	ID                   string    `db:"id"`
	TeamID               string    `db:"team_id"`
	Name                 string    `db:"name"`
	CanAccessAllContacts bool      `db:"can_access_all_contacts"`
	Modules              string    `db:"modules"`
	IsDefault            bool      `db:"is_default"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

// GroupMember links a user to a group.
type GroupMember struct {
	GroupID   string    `db:"group_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// FieldAccessRule allows a group to access a restricted field.
type FieldAccessRule struct {
	ID        string    `db:"id"`
	TeamID    string    `db:"team_id"`
	FieldKey  string    `db:"field_key"`
	GroupID   string    `db:"group_id"`
	CreatedAt time.Time `db:"created_at"`
}
