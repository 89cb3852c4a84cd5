package store

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
)

// GroupStore is a store for team groups and their members.
type GroupStore interface {
	CreateGroup(ctx context.Context, h db.Handler, teamID, name string, canAccessAllContacts bool, modules string) (models.Group, error)
	// EnsureDefaultGroup creates the default group of a team unless it
	// already exists.
	EnsureDefaultGroup(ctx context.Context, h db.Handler, teamID string) error
	GetGroupByID(ctx context.Context, h db.Handler, teamID, id string) (models.Group, error)
	ListGroups(ctx context.Context, h db.Handler, teamID string) ([]models.Group, error)
	ListUserGroups(ctx context.Context, h db.Handler, teamID, userID string) ([]models.Group, error)
	ListGroupMembers(ctx context.Context, h db.Handler, groupID string) ([]string, error)
	AddUserToGroup(ctx context.Context, h db.Handler, groupID, userID string) error
	RemoveUserFromGroup(ctx context.Context, h db.Handler, groupID, userID string) error
}
