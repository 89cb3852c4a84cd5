// Package attribute implements typed contact profile attributes: lenient
// normalization of raw input, storage encoding and the inverse projection.
package attribute

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the kind of value an attribute holds.
type Type string

// Attribute types.
const (
	TypeString   Type = "STRING"
	TypeNumber   Type = "NUMBER"
	TypeDate     Type = "DATE"
	TypeLocation Type = "LOCATION"
)

// ParseType parses a type name case-insensitively.
func ParseType(s string) (Type, bool) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeString, TypeNumber, TypeDate, TypeLocation:
		return t, true
	default:
		return "", false
	}
}

// Value is the closed set of attribute values: String, Number, Date and
// Location.
type Value interface {
	Type() Type
	sealed()
}

// String is a non-empty, trimmed text value.
type String string

// Number is an arbitrary precision number.
type Number struct {
	decimal.Decimal
}

// Date is a calendar date or timestamp, always kept in UTC.
type Date struct {
	time.Time
}

// Location is a labelled and/or positioned place. At least one field is
// set.
type Location struct {
	Label     *string  `json:"label,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (String) Type() Type   { return TypeString }
func (Number) Type() Type   { return TypeNumber }
func (Date) Type() Type     { return TypeDate }
func (Location) Type() Type { return TypeLocation }

func (String) sealed()   {}
func (Number) sealed()   {}
func (Date) sealed()     {}
func (Location) sealed() {}

// ISO returns the RFC 3339 form of the date.
func (d Date) ISO() string {
	return d.Time.UTC().Format(time.RFC3339Nano)
}

// Attribute is a normalized profile attribute.
type Attribute struct {
	Key   string
	Value Value
}

// Raw is an attribute as received from a caller. Value holds whatever the
// JSON decoder or the caller produced.
type Raw struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Normalize validates and converts raw attributes. Keys are trimmed and
// deduplicated with the first occurrence winning. Entries with an unknown
// type or without a meaningful value are dropped.
func Normalize(raws []Raw) []Attribute {
	seen := make(map[string]struct{}, len(raws))
	attrs := make([]Attribute, 0, len(raws))
	for _, r := range raws {
		key := strings.TrimSpace(r.Key)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		v, ok := normalizeValue(r.Type, r.Value)
		if !ok {
			continue
		}
		attrs = append(attrs, Attribute{Key: key, Value: v})
	}
	return attrs
}

func normalizeValue(typ string, v any) (Value, bool) {
	t, ok := ParseType(typ)
	if !ok {
		return nil, false
	}

	switch t {
	case TypeString:
		s, ok := toString(v)
		if !ok {
			return nil, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false
		}
		return String(s), true
	case TypeNumber:
		d, ok := toDecimal(v)
		if !ok {
			return nil, false
		}
		return Number{d}, true
	case TypeDate:
		tm, ok := toTime(v)
		if !ok {
			return nil, false
		}
		return Date{tm.UTC()}, true
	case TypeLocation:
		return toLocation(v)
	}

	return nil, false
}

// Raw returns the inverse projection of the attribute: numbers as float64,
// dates as RFC 3339 strings and locations with only their set fields.
func (a Attribute) Raw() Raw {
	r := Raw{Key: a.Key}
	if a.Value == nil {
		return r
	}
	r.Type = string(a.Value.Type())
	switch v := a.Value.(type) {
	case String:
		r.Value = string(v)
	case Number:
		r.Value = v.InexactFloat64()
	case Date:
		r.Value = v.ISO()
	case Location:
		r.Value = v
	}
	return r
}

// Display returns the human readable value used in change logs.
func (a Attribute) Display() string {
	switch v := a.Value.(type) {
	case String:
		return string(v)
	case Number:
		return v.String()
	case Date:
		return v.ISO()
	case Location:
		bts, _ := json.Marshal(v)
		return string(bts)
	default:
		return ""
	}
}

// Equal reports whether a and b hold the same key and typed value. Every
// typed sub-field takes part in the comparison.
func (a Attribute) Equal(b Attribute) bool {
	return a.Key == b.Key && fingerprint(Encode(a)) == fingerprint(Encode(b))
}
