package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/proto"
	"github.com/grantflow/grantflow/pkg/store"
)

// Change kinds counted by the changes metric.
const (
	changeField      = "field"
	changeAttribute  = "attribute"
	changeSocialLink = "social_link"
	changeCreated    = "created"
)

// createdFieldKey is the change log field of a contact creation entry.
const createdFieldKey = "contact"

// unitOfWork collects the row mutations of one contact and the audit
// entries describing them so both are written in the same transaction.
type unitOfWork struct {
	teamID    string
	contactID string
	actor     access.Identity

	columns map[string]interface{}
	// touch bumps updated_at of the contact even without column changes.
	touch bool

	attrCreates []models.ProfileAttribute
	attrUpdates []models.ProfileAttribute
	attrDeletes []string

	linkCreates []models.SocialLink
	linkUpdates []models.SocialLink
	linkDeletes []string

	changes []models.ContactChangeLog
	kinds   map[string]int
}

func newUnitOfWork(teamID, contactID string, actor access.Identity) *unitOfWork {
	return &unitOfWork{
		teamID:    teamID,
		contactID: contactID,
		actor:     actor,
		columns:   make(map[string]interface{}),
		kinds:     make(map[string]int),
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (u *unitOfWork) entry(field string, oldValue, newValue *string, metadata map[string]any) models.ContactChangeLog {
	e := models.ContactChangeLog{
		TeamID:    u.teamID,
		ContactID: u.contactID,
		FieldKey:  field,
		OldValue:  nullString(oldValue),
		NewValue:  nullString(newValue),
		UserID:    sql.NullString{String: u.actor.UserID, Valid: u.actor.UserID != ""},
		UserName:  sql.NullString{String: u.actor.UserName, Valid: u.actor.UserName != ""},
	}
	if len(metadata) > 0 {
		if bts, err := json.Marshal(metadata); err == nil {
			e.Metadata = sql.NullString{String: string(bts), Valid: true}
		}
	}
	return e
}

// logFieldUpdate records a before and after pair of a field.
func (u *unitOfWork) logFieldUpdate(kind, field string, oldValue, newValue *string) {
	u.changes = append(u.changes, u.entry(field, oldValue, newValue, nil))
	u.kinds[kind]++
}

// logContactCreation records the creation of the contact.
func (u *unitOfWork) logContactCreation(name string, metadata map[string]any) {
	u.changes = append(u.changes, u.entry(createdFieldKey, nil, &name, metadata))
	u.kinds[changeCreated]++
}

// set stages a column update of the contact row.
func (u *unitOfWork) set(column string, value interface{}) {
	u.columns[column] = value
}

func (u *unitOfWork) empty() bool {
	return len(u.columns) == 0 && len(u.changes) == 0 &&
		len(u.attrCreates) == 0 && len(u.attrUpdates) == 0 && len(u.attrDeletes) == 0 &&
		len(u.linkCreates) == 0 && len(u.linkUpdates) == 0 && len(u.linkDeletes) == 0
}

// commit writes every staged mutation and audit entry using h, which
// should be a transaction.
func (u *unitOfWork) commit(ctx context.Context, st store.Store, h db.Handler) error {
	for _, id := range u.attrDeletes {
		if err := st.DeleteAttribute(ctx, h, id); err != nil {
			return err
		}
	}
	for _, id := range u.linkDeletes {
		if err := st.DeleteSocialLink(ctx, h, id); err != nil {
			return err
		}
	}

	if len(u.columns) > 0 || (u.touch && !u.empty()) {
		if err := st.UpdateContact(ctx, h, u.teamID, u.contactID, u.columns); err != nil {
			switch {
			case errors.Is(err, db.ErrDuplicateKey):
				return proto.ErrDuplicateEmail
			case errors.Is(err, db.ErrRecordNotFound):
				return proto.ErrContactNotFound
			}
			return err
		}
	}

	for _, a := range u.attrCreates {
		a.ContactID = u.contactID
		if err := st.CreateAttribute(ctx, h, a); err != nil {
			return err
		}
	}
	for _, a := range u.attrUpdates {
		if err := st.UpdateAttribute(ctx, h, a); err != nil {
			return err
		}
	}

	for i := range u.linkCreates {
		u.linkCreates[i].ContactID = u.contactID
	}
	if err := st.CreateSocialLinks(ctx, h, u.linkCreates); err != nil {
		return err
	}
	for _, l := range u.linkUpdates {
		if err := st.UpdateSocialLink(ctx, h, l.ID, l.Handle); err != nil {
			return err
		}
	}

	return st.CreateChangeLogs(ctx, h, u.changes)
}

// observe counts the committed changes.
func (u *unitOfWork) observe() {
	for kind, n := range u.kinds {
		contactChangesCounter.WithLabelValues(kind).Add(float64(n))
	}
}
