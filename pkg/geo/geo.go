// Package geo normalizes postal and country codes and computes great circle
// distances for radius search.
package geo

import (
	"math"
	"strings"
)

// EarthRadius is the mean earth radius in meters.
const EarthRadius = 6371008.8

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether p is a finite coordinate within WGS84 bounds.
func (p Point) Valid() bool {
	return isFinite(p.Latitude) && isFinite(p.Longitude) &&
		p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the great circle distance between a and b in meters.
func Distance(a, b Point) float64 {
	lat1, lat2 := radians(a.Latitude), radians(b.Latitude)
	dLat := lat2 - lat1
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Box is a latitude/longitude rectangle.
type Box struct {
	MinLatitude, MaxLatitude   float64
	MinLongitude, MaxLongitude float64
}

// BoundingBox returns a rectangle containing every point within meters of
// center. It is used to prefilter candidates before the exact distance
// check. Boxes crossing a pole or the antimeridian widen to the full
// longitude range.
func BoundingBox(center Point, meters float64) Box {
	dLat := degrees(meters / EarthRadius)
	box := Box{
		MinLatitude:  center.Latitude - dLat,
		MaxLatitude:  center.Latitude + dLat,
		MinLongitude: -180,
		MaxLongitude: 180,
	}

	if box.MinLatitude <= -90 || box.MaxLatitude >= 90 {
		box.MinLatitude = math.Max(box.MinLatitude, -90)
		box.MaxLatitude = math.Min(box.MaxLatitude, 90)
		return box
	}

	dLon := degrees(math.Asin(math.Min(1, math.Sin(meters/EarthRadius)/math.Cos(radians(center.Latitude)))))
	if center.Longitude-dLon < -180 || center.Longitude+dLon > 180 {
		return box
	}

	box.MinLongitude = center.Longitude - dLon
	box.MaxLongitude = center.Longitude + dLon
	return box
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Point) bool {
	return p.Latitude >= b.MinLatitude && p.Latitude <= b.MaxLatitude &&
		p.Longitude >= b.MinLongitude && p.Longitude <= b.MaxLongitude
}

// KilometersToMeters converts a radius given in kilometers. It returns
// false for non-finite or negative radii.
func KilometersToMeters(km float64) (float64, bool) {
	if !isFinite(km) || km < 0 {
		return 0, false
	}
	return km * 1000, true
}

const maxPostalCodeLen = 10

// NormalizePostalCode upper-cases a postal code and collapses inner
// whitespace. It returns false when the input is empty or contains anything
// other than letters, digits, spaces and dashes.
func NormalizePostalCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.Join(strings.Fields(raw), " "))
	if code == "" || len(code) > maxPostalCodeLen {
		return "", false
	}

	for _, r := range code {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ', r == '-':
		default:
			return "", false
		}
	}

	return code, true
}

// NormalizeCountryCode maps ISO 3166 alpha-2 and alpha-3 codes and common
// country names to an upper case alpha-2 code.
func NormalizeCountryCode(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	upper := strings.ToUpper(s)
	if len(upper) == 2 && isAlpha(upper) {
		return upper, true
	}

	if code, ok := alpha3[upper]; ok {
		return code, true
	}

	if code, ok := countryNames[strings.ToLower(strings.Join(strings.Fields(s), " "))]; ok {
		return code, true
	}

	return "", false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
