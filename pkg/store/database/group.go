package database

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/store"
)

// DefaultGroupName is the name of the group every team starts with.
const DefaultGroupName = "Default"

var _ store.GroupStore = (*groupStore)(nil)

type groupStore struct{}

// CreateGroup implements store.GroupStore.
func (*groupStore) CreateGroup(ctx context.Context, h db.Handler, teamID, name string, canAccessAllContacts bool, modules string) (models.Group, error) {
	t := now()
	g := models.Group{
		ID:                   newID(),
		TeamID:               teamID,
		Name:                 name,
		CanAccessAllContacts: canAccessAllContacts,
		Modules:              modules,
		CreatedAt:            t,
		UpdatedAt:            t,
	}
	query := h.Rebind(`
		INSERT INTO
		  team_groups (id, team_id, name, can_access_all_contacts, modules, is_default, created_at, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, g.ID, g.TeamID, g.Name, g.CanAccessAllContacts, g.Modules, g.IsDefault, g.CreatedAt, g.UpdatedAt)
	return g, db.WrapError(err)
}

// EnsureDefaultGroup implements store.GroupStore.
func (*groupStore) EnsureDefaultGroup(ctx context.Context, h db.Handler, teamID string) error {
	t := now()
	query := h.Rebind(`
		INSERT INTO
		  team_groups (id, team_id, name, can_access_all_contacts, modules, is_default, created_at, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (team_id, name) DO NOTHING
	`)
	_, err := h.ExecContext(ctx, query, newID(), teamID, DefaultGroupName, false, "", true, t, t)
	return db.WrapError(err)
}

// GetGroupByID implements store.GroupStore.
func (*groupStore) GetGroupByID(ctx context.Context, h db.Handler, teamID, id string) (models.Group, error) {
	var g models.Group
	query := h.Rebind("SELECT * FROM team_groups WHERE team_id = ? AND id = ?;")
	err := h.GetContext(ctx, &g, query, teamID, id)
	return g, db.WrapError(err)
}

// ListGroups implements store.GroupStore.
func (*groupStore) ListGroups(ctx context.Context, h db.Handler, teamID string) ([]models.Group, error) {
	var groups []models.Group
	query := h.Rebind("SELECT * FROM team_groups WHERE team_id = ? ORDER BY is_default DESC, name;")
	err := h.SelectContext(ctx, &groups, query, teamID)
	return groups, db.WrapError(err)
}

// ListUserGroups implements store.GroupStore.
func (*groupStore) ListUserGroups(ctx context.Context, h db.Handler, teamID, userID string) ([]models.Group, error) {
	var groups []models.Group
	query := h.Rebind(`
		SELECT
		  g.*
		FROM
		  team_groups g
		  JOIN team_group_members m ON m.group_id = g.id
		WHERE
		  g.team_id = ?
		  AND m.user_id = ?
		ORDER BY
		  g.name
	`)
	err := h.SelectContext(ctx, &groups, query, teamID, userID)
	return groups, db.WrapError(err)
}

// ListGroupMembers implements store.GroupStore.
func (*groupStore) ListGroupMembers(ctx context.Context, h db.Handler, groupID string) ([]string, error) {
	var users []string
	query := h.Rebind("SELECT user_id FROM team_group_members WHERE group_id = ? ORDER BY user_id;")
	err := h.SelectContext(ctx, &users, query, groupID)
	return users, db.WrapError(err)
}

// AddUserToGroup implements store.GroupStore.
func (*groupStore) AddUserToGroup(ctx context.Context, h db.Handler, groupID, userID string) error {
	query := h.Rebind(`
		INSERT INTO
		  team_group_members (group_id, user_id, created_at)
		VALUES
		  (?, ?, ?)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`)
	_, err := h.ExecContext(ctx, query, groupID, userID, now())
	return db.WrapError(err)
}

// RemoveUserFromGroup implements store.GroupStore.
func (*groupStore) RemoveUserFromGroup(ctx context.Context, h db.Handler, groupID, userID string) error {
	query := h.Rebind("DELETE FROM team_group_members WHERE group_id = ? AND user_id = ?;")
	_, err := h.ExecContext(ctx, query, groupID, userID)
	return db.WrapError(err)
}
