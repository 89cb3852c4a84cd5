package store

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
)

// FieldAccessStore is a store for field access rules.
type FieldAccessStore interface {
	ListFieldAccessRules(ctx context.Context, h db.Handler, teamID string) ([]models.FieldAccessRule, error)
	// SetFieldAccessGroups replaces the groups allowed to access field.
	SetFieldAccessGroups(ctx context.Context, h db.Handler, teamID, field string, groupIDs []string) error
}
