package attribute

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func toString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case String:
		return string(v), true
	case json.Number:
		return v.String(), true
	case float64:
		if !isFinite(v) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch v := v.(type) {
	case decimal.Decimal:
		return v, true
	case Number:
		return v.Decimal, true
	case float64:
		if !isFinite(v) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		if !isFinite(float64(v)) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		return ParseNumber(v.String())
	case string:
		return ParseNumber(v)
	default:
		return decimal.Decimal{}, false
	}
}

// ParseNumber parses a decimal number. NaN and infinities are rejected.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// dateLayouts are tried in order when parsing date strings.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate parses an ISO date or timestamp. Strings that are not a valid
// calendar date, such as 2024-02-30, are rejected.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func toTime(v any) (time.Time, bool) {
	switch v := v.(type) {
	case time.Time:
		return v, !v.IsZero()
	case Date:
		return v.Time, !v.IsZero()
	case string:
		return ParseDate(v)
	default:
		return time.Time{}, false
	}
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, isFinite(v)
	case *float64:
		if v == nil {
			return 0, false
		}
		return *v, isFinite(*v)
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil && isFinite(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil && isFinite(f)
	default:
		return 0, false
	}
}

func toLocation(v any) (Value, bool) {
	var label, lat, lon any
	switch v := v.(type) {
	case Location:
		if v.Label != nil {
			label = *v.Label
		}
		lat, lon = v.Latitude, v.Longitude
	case *Location:
		if v == nil {
			return nil, false
		}
		return toLocation(*v)
	case map[string]any:
		label, lat, lon = v["label"], v["latitude"], v["longitude"]
	default:
		return nil, false
	}

	var loc Location
	if s, ok := label.(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			loc.Label = &s
		}
	}
	if f, ok := toFloat(lat); ok {
		loc.Latitude = &f
	}
	if f, ok := toFloat(lon); ok {
		loc.Longitude = &f
	}

	if loc.Label == nil && loc.Latitude == nil && loc.Longitude == nil {
		return nil, false
	}
	return loc, true
}
