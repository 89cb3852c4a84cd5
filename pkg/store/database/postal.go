package database

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/store"
)

var _ store.PostalCodeStore = (*postalCodeStore)(nil)

type postalCodeStore struct{}

// UpsertCentroid implements store.PostalCodeStore.
func (*postalCodeStore) UpsertCentroid(ctx context.Context, h db.Handler, c models.PostalCodeCentroid) error {
	query := h.Rebind(`
		INSERT INTO
		  postal_code_centroids (country_code, postal_code, place_name, latitude, longitude)
		VALUES
		  (?, ?, ?, ?, ?)
		ON CONFLICT (country_code, postal_code) DO UPDATE SET
		  place_name = excluded.place_name,
		  latitude = excluded.latitude,
		  longitude = excluded.longitude
	`)
	_, err := h.ExecContext(ctx, query, c.CountryCode, c.PostalCode, c.PlaceName, c.Latitude, c.Longitude)
	return db.WrapError(err)
}

// GetCentroid implements store.PostalCodeStore.
func (*postalCodeStore) GetCentroid(ctx context.Context, h db.Handler, countryCode, postalCode string) (models.PostalCodeCentroid, error) {
	var c models.PostalCodeCentroid
	query := h.Rebind("SELECT * FROM postal_code_centroids WHERE country_code = ? AND postal_code = ?;")
	err := h.GetContext(ctx, &c, query, countryCode, postalCode)
	return c, db.WrapError(err)
}
