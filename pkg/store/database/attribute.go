package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/store"
	"github.com/jmoiron/sqlx"
)

var (
	_ store.AttributeStore  = (*attributeStore)(nil)
	_ store.SocialLinkStore = (*socialLinkStore)(nil)
)

type attributeStore struct{}

// ListAttributes implements store.AttributeStore.
func (*attributeStore) ListAttributes(ctx context.Context, h db.Handler, contactIDs []string) ([]models.ProfileAttribute, error) {
	if len(contactIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT * FROM profile_attributes WHERE contact_id IN (?) ORDER BY contact_id, key;", contactIDs)
	if err != nil {
		return nil, err
	}

	var attrs []models.ProfileAttribute
	err = h.SelectContext(ctx, &attrs, h.Rebind(query), args...)
	return attrs, db.WrapError(err)
}

// CreateAttribute implements store.AttributeStore.
func (*attributeStore) CreateAttribute(ctx context.Context, h db.Handler, attr models.ProfileAttribute) error {
	if attr.ID == "" {
		attr.ID = newID()
	}
	t := now()
	query := h.Rebind(`
		INSERT INTO
		  profile_attributes (id, contact_id, key, type, string_value, number_value, date_value,
		    location_label, latitude, longitude, created_at, updated_at)
		VALUES
		  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, attr.ID, attr.ContactID, attr.Key, attr.Type,
		attr.StringValue, attr.NumberValue, attr.DateValue,
		attr.LocationLabel, attr.Latitude, attr.Longitude, t, t)
	return db.WrapError(err)
}

// UpdateAttribute implements store.AttributeStore.
func (*attributeStore) UpdateAttribute(ctx context.Context, h db.Handler, attr models.ProfileAttribute) error {
	query := h.Rebind(`
		UPDATE profile_attributes
		SET
		  type = ?,
		  string_value = ?,
		  number_value = ?,
		  date_value = ?,
		  location_label = ?,
		  latitude = ?,
		  longitude = ?,
		  updated_at = ?
		WHERE
		  id = ?
	`)
	_, err := h.ExecContext(ctx, query, attr.Type,
		attr.StringValue, attr.NumberValue, attr.DateValue,
		attr.LocationLabel, attr.Latitude, attr.Longitude, now(), attr.ID)
	return db.WrapError(err)
}

// DeleteAttribute implements store.AttributeStore.
func (*attributeStore) DeleteAttribute(ctx context.Context, h db.Handler, id string) error {
	query := h.Rebind("DELETE FROM profile_attributes WHERE id = ?;")
	_, err := h.ExecContext(ctx, query, id)
	return db.WrapError(err)
}

type socialLinkStore struct{}

// ListSocialLinks implements store.SocialLinkStore.
func (*socialLinkStore) ListSocialLinks(ctx context.Context, h db.Handler, contactIDs []string) ([]models.SocialLink, error) {
	if len(contactIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT * FROM social_links WHERE contact_id IN (?) ORDER BY contact_id, platform;", contactIDs)
	if err != nil {
		return nil, err
	}

	var links []models.SocialLink
	err = h.SelectContext(ctx, &links, h.Rebind(query), args...)
	return links, db.WrapError(err)
}

// CreateSocialLinks implements store.SocialLinkStore.
func (*socialLinkStore) CreateSocialLinks(ctx context.Context, h db.Handler, links []models.SocialLink) error {
	if len(links) == 0 {
		return nil
	}

	t := now()
	insert := sq.Insert("social_links").
		Columns("id", "contact_id", "platform", "handle", "created_at", "updated_at")
	for _, l := range links {
		if l.ID == "" {
			l.ID = newID()
		}
		insert = insert.Values(l.ID, l.ContactID, l.Platform, l.Handle, t, t)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return err
	}

	_, err = h.ExecContext(ctx, h.Rebind(query), args...)
	return db.WrapError(err)
}

// UpdateSocialLink implements store.SocialLinkStore.
func (*socialLinkStore) UpdateSocialLink(ctx context.Context, h db.Handler, id, handle string) error {
	query := h.Rebind("UPDATE social_links SET handle = ?, updated_at = ? WHERE id = ?;")
	_, err := h.ExecContext(ctx, query, handle, now(), id)
	return db.WrapError(err)
}

// DeleteSocialLink implements store.SocialLinkStore.
func (*socialLinkStore) DeleteSocialLink(ctx context.Context, h db.Handler, id string) error {
	query := h.Rebind("DELETE FROM social_links WHERE id = ?;")
	_, err := h.ExecContext(ctx, query, id)
	return db.WrapError(err)
}
