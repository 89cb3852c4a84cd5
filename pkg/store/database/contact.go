package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/geo"
	"github.com/grantflow/grantflow/pkg/store"
	"github.com/jmoiron/sqlx"
)

var _ store.ContactStore = (*contactStore)(nil)

type contactStore struct{}

func contactColumns(c models.Contact) map[string]interface{} {
	return map[string]interface{}{
		"id":                        c.ID,
		"team_id":                   c.TeamID,
		"group_id":                  c.GroupID,
		"name":                      c.Name,
		"pronouns":                  c.Pronouns,
		"email":                     c.Email,
		"phone":                     c.Phone,
		"signal":                    c.Signal,
		"website":                   c.Website,
		"gender":                    c.Gender,
		"gender_request_preference": c.GenderRequestPreference,
		"is_bipoc":                  c.IsBipoc,
		"racism_request_preference": c.RacismRequestPreference,
		"other_margins":             c.OtherMargins,
		"onboarding_date":           c.OnboardingDate,
		"break_until":               c.BreakUntil,
		"address":                   c.Address,
		"postal_code":               c.PostalCode,
		"state":                     c.State,
		"city":                      c.City,
		"country":                   c.Country,
		"country_code":              c.CountryCode,
		"latitude":                  c.Latitude,
		"longitude":                 c.Longitude,
		"created_at":                c.CreatedAt,
		"updated_at":                c.UpdatedAt,
	}
}

// CreateContact implements store.ContactStore.
func (*contactStore) CreateContact(ctx context.Context, h db.Handler, c models.Contact) (models.Contact, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	t := now()
	c.CreatedAt, c.UpdatedAt = t, t

	query, args, err := sq.Insert("contacts").SetMap(contactColumns(c)).ToSql()
	if err != nil {
		return models.Contact{}, err
	}

	_, err = h.ExecContext(ctx, h.Rebind(query), args...)
	return c, db.WrapError(err)
}

// GetContactByID implements store.ContactStore.
func (*contactStore) GetContactByID(ctx context.Context, h db.Handler, teamID, id string) (models.Contact, error) {
	var c models.Contact
	query := h.Rebind("SELECT * FROM contacts WHERE team_id = ? AND id = ?;")
	err := h.GetContext(ctx, &c, query, teamID, id)
	return c, db.WrapError(err)
}

// ListContacts implements store.ContactStore.
func (*contactStore) ListContacts(ctx context.Context, h db.Handler, where sq.Sqlizer) ([]models.Contact, error) {
	query, args, err := sq.Select("contacts.*").
		From("contacts").
		Where(where).
		OrderBy("contacts.created_at DESC", "contacts.id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var contacts []models.Contact
	err = h.SelectContext(ctx, &contacts, h.Rebind(query), args...)
	return contacts, db.WrapError(err)
}

// ContactEmailExists implements store.ContactStore.
func (*contactStore) ContactEmailExists(ctx context.Context, h db.Handler, teamID, email, excludeID string) (bool, error) {
	var count int
	query := h.Rebind("SELECT COUNT(*) FROM contacts WHERE team_id = ? AND LOWER(email) = LOWER(?) AND id <> ?;")
	err := h.GetContext(ctx, &count, query, teamID, email, excludeID)
	return count > 0, db.WrapError(err)
}

// UpdateContact implements store.ContactStore.
func (*contactStore) UpdateContact(ctx context.Context, h db.Handler, teamID, id string, columns map[string]interface{}) error {
	query, args, err := sq.Update("contacts").
		SetMap(columns).
		Set("updated_at", now()).
		Where(sq.Eq{"team_id": teamID, "id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := h.ExecContext(ctx, h.Rebind(query), args...)
	if err != nil {
		return db.WrapError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return db.ErrRecordNotFound
	}
	return nil
}

// DeleteContacts implements store.ContactStore.
func (*contactStore) DeleteContacts(ctx context.Context, h db.Handler, teamID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In("DELETE FROM contacts WHERE team_id = ? AND id IN (?);", teamID, ids)
	if err != nil {
		return 0, err
	}

	res, err := h.ExecContext(ctx, h.Rebind(query), args...)
	if err != nil {
		return 0, db.WrapError(err)
	}
	return res.RowsAffected()
}

// ListContactLocations implements store.ContactStore.
func (*contactStore) ListContactLocations(ctx context.Context, h db.Handler, teamID string, box geo.Box) ([]models.ContactLocation, error) {
	var locs []models.ContactLocation
	query := h.Rebind(`
		SELECT
		  id, latitude, longitude
		FROM
		  contacts
		WHERE
		  team_id = ?
		  AND latitude IS NOT NULL
		  AND longitude IS NOT NULL
		  AND latitude BETWEEN ? AND ?
		  AND longitude BETWEEN ? AND ?
	`)
	err := h.SelectContext(ctx, &locs, query, teamID,
		box.MinLatitude, box.MaxLatitude, box.MinLongitude, box.MaxLongitude)
	return locs, db.WrapError(err)
}
