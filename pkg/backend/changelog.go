package backend

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/proto"
)

// ContactChangeLog returns the audit trail of a contact, newest first.
// Entries of fields the caller may not see are left out. The trail of a
// deleted contact is only readable by callers with access to all
// contacts.
func (d *Backend) ContactChangeLog(ctx context.Context, teamID, contactID string, id access.Identity) ([]proto.ChangeLogEntry, error) {
	v, err := d.viewer(ctx, teamID, id)
	if err != nil {
		return nil, err
	}

	row, err := d.store.GetContactByID(ctx, d.db, teamID, contactID)
	switch {
	case errors.Is(err, db.ErrRecordNotFound):
		if !v.allContacts {
			return nil, proto.ErrContactNotFound
		}
	case err != nil:
		return nil, err
	case !v.canSeeContact(row.GroupID.String):
		return nil, proto.ErrContactNotFound
	}

	rows, err := d.store.ListChangeLogs(ctx, d.db, teamID, contactID)
	if err != nil {
		return nil, err
	}

	entries := make([]proto.ChangeLogEntry, 0, len(rows))
	for _, r := range rows {
		if r.FieldKey != createdFieldKey && !v.canSee(r.FieldKey) {
			continue
		}

		e := proto.ChangeLogEntry{
			ID:        r.ID,
			ContactID: r.ContactID,
			FieldKey:  r.FieldKey,
			OldValue:  strPtr(r.OldValue),
			NewValue:  strPtr(r.NewValue),
			UserID:    strPtr(r.UserID),
			UserName:  strPtr(r.UserName),
			CreatedAt: r.CreatedAt,
		}
		if r.Metadata.Valid {
			if err := json.Unmarshal([]byte(r.Metadata.String), &e.Metadata); err != nil {
				d.logger.Warn("malformed change log metadata", "id", r.ID, "err", err)
			}
		}
		if r.FieldKey == createdFieldKey {
			v.redactCreation(&e)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// redactCreation removes the name and email captured by a creation entry
// when the caller may not see them.
func (v viewer) redactCreation(e *proto.ChangeLogEntry) {
	if !v.canSee(access.FieldName) {
		e.OldValue = nil
		e.NewValue = nil
	}
	if !v.canSee(access.FieldEmail) {
		delete(e.Metadata, "email")
	}
}
