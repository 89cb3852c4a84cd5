package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/store"
)

var _ store.ChangeLogStore = (*changeLogStore)(nil)

type changeLogStore struct{}

// CreateChangeLogs implements store.ChangeLogStore.
func (*changeLogStore) CreateChangeLogs(ctx context.Context, h db.Handler, entries []models.ContactChangeLog) error {
	if len(entries) == 0 {
		return nil
	}

	t := now()
	insert := sq.Insert("contact_change_logs").
		Columns("id", "team_id", "contact_id", "field_key", "old_value", "new_value",
			"user_id", "user_name", "metadata", "created_at")
	for _, e := range entries {
		if e.ID == "" {
			e.ID = newID()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = t
		}
		insert = insert.Values(e.ID, e.TeamID, e.ContactID, e.FieldKey, e.OldValue, e.NewValue,
			e.UserID, e.UserName, e.Metadata, e.CreatedAt)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return err
	}

	_, err = h.ExecContext(ctx, h.Rebind(query), args...)
	return db.WrapError(err)
}

// ListChangeLogs implements store.ChangeLogStore.
func (*changeLogStore) ListChangeLogs(ctx context.Context, h db.Handler, teamID, contactID string) ([]models.ContactChangeLog, error) {
	var entries []models.ContactChangeLog
	query := h.Rebind(`
		SELECT
		  *
		FROM
		  contact_change_logs
		WHERE
		  team_id = ?
		  AND contact_id = ?
		ORDER BY
		  created_at DESC,
		  id DESC
	`)
	err := h.SelectContext(ctx, &entries, query, teamID, contactID)
	return entries, db.WrapError(err)
}
