package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Centroid is the reference coordinate of a postal code area.
type Centroid struct {
	CountryCode string
	PostalCode  string
	PlaceName   string
	Point
}

// ReadCentroids streams centroids from r to fn. Two layouts are accepted:
// GeoNames postal code dumps (tab separated, coordinates in columns 10 and
// 11) and a comma separated "country,postal,latitude,longitude" list with an
// optional header. Rows that do not normalize are skipped and counted.
func ReadCentroids(r io.Reader, fn func(Centroid) error) (skipped int, err error) {
	br := newPeekReader(r)
	tabbed, err := br.firstLineHas('\t')
	if err != nil {
		return 0, err
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	if tabbed {
		cr.Comma = '\t'
		cr.LazyQuotes = true
	}

	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return skipped, nil
		}
		if err != nil {
			return skipped, fmt.Errorf("line %d: %w", line, err)
		}

		c, ok := parseCentroid(rec, tabbed)
		if !ok {
			skipped++
			continue
		}

		if err := fn(c); err != nil {
			return skipped, err
		}
	}
}

func parseCentroid(rec []string, tabbed bool) (Centroid, bool) {
	var country, postal, place, lat, lon string
	switch {
	case tabbed && len(rec) >= 11:
		country, postal, place, lat, lon = rec[0], rec[1], rec[2], rec[9], rec[10]
	case !tabbed && len(rec) >= 4:
		country, postal, lat, lon = rec[0], rec[1], rec[2], rec[3]
		if len(rec) >= 5 {
			place = rec[4]
		}
	default:
		return Centroid{}, false
	}

	var c Centroid
	var ok bool
	if c.CountryCode, ok = NormalizeCountryCode(country); !ok {
		return c, false
	}
	if c.PostalCode, ok = NormalizePostalCode(postal); !ok {
		return c, false
	}

	var err error
	if c.Latitude, err = strconv.ParseFloat(strings.TrimSpace(lat), 64); err != nil {
		return c, false
	}
	if c.Longitude, err = strconv.ParseFloat(strings.TrimSpace(lon), 64); err != nil {
		return c, false
	}
	if !c.Point.Valid() {
		return c, false
	}

	c.PlaceName = strings.TrimSpace(place)
	return c, true
}
