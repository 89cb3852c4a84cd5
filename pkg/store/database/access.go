package database

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/store"
)

var _ store.FieldAccessStore = (*accessStore)(nil)

type accessStore struct{}

// ListFieldAccessRules implements store.FieldAccessStore.
func (*accessStore) ListFieldAccessRules(ctx context.Context, h db.Handler, teamID string) ([]models.FieldAccessRule, error) {
	var rules []models.FieldAccessRule
	query := h.Rebind("SELECT * FROM field_access_rules WHERE team_id = ? ORDER BY field_key, group_id;")
	err := h.SelectContext(ctx, &rules, query, teamID)
	return rules, db.WrapError(err)
}

// SetFieldAccessGroups implements store.FieldAccessStore. It should run
// inside a transaction.
func (*accessStore) SetFieldAccessGroups(ctx context.Context, h db.Handler, teamID, field string, groupIDs []string) error {
	query := h.Rebind("DELETE FROM field_access_rules WHERE team_id = ? AND field_key = ?;")
	if _, err := h.ExecContext(ctx, query, teamID, field); err != nil {
		return db.WrapError(err)
	}

	query = h.Rebind(`
		INSERT INTO
		  field_access_rules (id, team_id, field_key, group_id, created_at)
		VALUES
		  (?, ?, ?, ?, ?)
		ON CONFLICT (team_id, field_key, group_id) DO NOTHING
	`)
	t := now()
	for _, gid := range groupIDs {
		if _, err := h.ExecContext(ctx, query, newID(), teamID, field, gid, t); err != nil {
			return db.WrapError(err)
		}
	}

	return nil
}
