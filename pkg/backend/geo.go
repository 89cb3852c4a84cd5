package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/filter"
	"github.com/grantflow/grantflow/pkg/geo"
	"github.com/grantflow/grantflow/pkg/proto"
)

// geoLookup runs centroid and radius lookups on h for the filter builder.
type geoLookup struct {
	d *Backend
	h db.Handler
}

var _ filter.GeoResolver = geoLookup{}

// ResolveCentroid implements filter.GeoResolver.
func (g geoLookup) ResolveCentroid(ctx context.Context, countryCode, postalCode string) (geo.Point, bool, error) {
	c, err := g.d.store.GetCentroid(ctx, g.h, countryCode, postalCode)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return geo.Point{}, false, nil
		}
		return geo.Point{}, false, err
	}

	p := geo.Point{Latitude: c.Latitude, Longitude: c.Longitude}
	return p, p.Valid(), nil
}

// ContactIDsWithin implements filter.GeoResolver. Candidates are
// prefiltered by bounding box and then checked by great circle distance.
func (g geoLookup) ContactIDsWithin(ctx context.Context, teamID string, center geo.Point, meters float64) ([]string, error) {
	locs, err := g.d.store.ListContactLocations(ctx, g.h, teamID, geo.BoundingBox(center, meters))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(locs))
	for _, l := range locs {
		if geo.Distance(center, geo.Point{Latitude: l.Latitude, Longitude: l.Longitude}) <= meters {
			ids = append(ids, l.ID)
		}
	}
	return ids, nil
}

// ResolveCentroid returns the centroid of a postal code. Both codes are
// normalized first.
func (d *Backend) ResolveCentroid(ctx context.Context, countryCode, postalCode string) (proto.Centroid, error) {
	country, ok := geo.NormalizeCountryCode(countryCode)
	if !ok {
		return proto.Centroid{}, proto.ErrCentroidNotFound
	}
	postal, ok := geo.NormalizePostalCode(postalCode)
	if !ok {
		return proto.Centroid{}, proto.ErrCentroidNotFound
	}

	c, err := d.store.GetCentroid(ctx, d.db, country, postal)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Centroid{}, proto.ErrCentroidNotFound
		}
		return proto.Centroid{}, err
	}

	return proto.Centroid{
		CountryCode: c.CountryCode,
		PostalCode:  c.PostalCode,
		PlaceName:   c.PlaceName.String,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
	}, nil
}

// resolveCoordinates looks up the centroid used to place a contact.
// Unresolvable input yields invalid coordinates rather than an error.
func (d *Backend) resolveCoordinates(ctx context.Context, h db.Handler, country, postalCode string) (sql.NullFloat64, sql.NullFloat64, error) {
	var lat, lon sql.NullFloat64
	postal, ok := geo.NormalizePostalCode(postalCode)
	if !ok {
		return lat, lon, nil
	}
	cc, ok := geo.NormalizeCountryCode(country)
	if !ok {
		if cc, ok = geo.NormalizeCountryCode(d.cfg.Geo.DefaultCountry); !ok {
			return lat, lon, nil
		}
	}

	p, found, err := geoLookup{d, h}.ResolveCentroid(ctx, cc, postal)
	if err != nil || !found {
		return lat, lon, err
	}

	lat = sql.NullFloat64{Float64: p.Latitude, Valid: true}
	lon = sql.NullFloat64{Float64: p.Longitude, Valid: true}
	return lat, lon, nil
}

// ImportCentroids loads postal code centroids from r, replacing existing
// entries with the same country and postal code. It returns the number of
// imported and skipped rows.
func (d *Backend) ImportCentroids(ctx context.Context, r io.Reader) (imported int, skipped int, err error) {
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		imported = 0
		skipped, err = geo.ReadCentroids(r, func(c geo.Centroid) error {
			row := models.PostalCodeCentroid{
				CountryCode: c.CountryCode,
				PostalCode:  c.PostalCode,
				PlaceName:   sql.NullString{String: c.PlaceName, Valid: c.PlaceName != ""},
				Latitude:    c.Latitude,
				Longitude:   c.Longitude,
			}
			if err := d.store.UpsertCentroid(ctx, tx, row); err != nil {
				return err
			}
			imported++
			return nil
		})
		return err
	})
	if err != nil {
		return 0, skipped, err
	}

	d.logger.Info("imported postal code centroids", "imported", imported, "skipped", skipped)
	return imported, skipped, nil
}

// ImportCentroidsFile loads centroids from a file.
func (d *Backend) ImportCentroidsFile(ctx context.Context, path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open centroids: %w", err)
	}
	defer f.Close() //nolint:errcheck

	return d.ImportCentroids(ctx, f)
}
