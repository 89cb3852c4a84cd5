// Package filter turns free text search and typed contact filters into a
// composable SQL predicate over the contacts table.
package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/grantflow/grantflow/pkg/attribute"
)

// Kind is the discriminator of a filter.
type Kind string

// Filter kinds.
const (
	KindContactField Kind = "contactField"
	KindAttribute    Kind = "attribute"
	KindGroup        Kind = "group"
	KindEventRole    Kind = "eventRole"
	KindCreatedAt    Kind = "createdAt"
	KindDistance     Kind = "distance"
)

// Operator is a comparison applied by field and attribute filters.
type Operator string

// Operators.
const (
	OpContains Operator = "contains"
	OpEquals   Operator = "equals"
	OpHas      Operator = "has"
	OpMissing  Operator = "missing"
)

// Filter is one of ContactField, Attribute, Group, EventRole, CreatedAt or
// Distance.
type Filter interface {
	Kind() Kind
	sealed()
}

// ContactField matches a static contact column. Supported operators are
// contains, has and missing.
type ContactField struct {
	Field    string
	Operator Operator
	Value    string
}

// Attribute matches a profile attribute by key. Supported operators are
// contains and equals.
type Attribute struct {
	Key      string
	Operator Operator
	Value    string
}

// Group keeps contacts in any of the listed groups.
type Group struct {
	GroupIDs []string
}

// EventRole keeps contacts holding any of the listed event roles.
type EventRole struct {
	EventRoleIDs []string
}

// CreatedAt keeps contacts created within an inclusive range. Either bound
// may be nil.
type CreatedAt struct {
	From *time.Time
	To   *time.Time
}

// Distance keeps contacts within RadiusKm of a postal code centroid.
type Distance struct {
	PostalCode  string
	CountryCode string
	RadiusKm    float64
}

func (ContactField) Kind() Kind { return KindContactField }
func (Attribute) Kind() Kind    { return KindAttribute }
func (Group) Kind() Kind        { return KindGroup }
func (EventRole) Kind() Kind    { return KindEventRole }
func (CreatedAt) Kind() Kind    { return KindCreatedAt }
func (Distance) Kind() Kind     { return KindDistance }

func (ContactField) sealed() {}
func (Attribute) sealed()    {}
func (Group) sealed()        {}
func (EventRole) sealed()    {}
func (CreatedAt) sealed()    {}
func (Distance) sealed()     {}

// wire is the JSON shape of every filter kind.
type wire struct {
	Type         Kind            `json:"type"`
	Field        string          `json:"field"`
	Key          string          `json:"key"`
	Operator     Operator        `json:"operator"`
	Value        json.RawMessage `json:"value"`
	GroupID      string          `json:"groupId"`
	GroupIDs     []string        `json:"groupIds"`
	EventRoleID  string          `json:"eventRoleId"`
	EventRoleIDs []string        `json:"eventRoleIds"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	PostalCode   string          `json:"postalCode"`
	CountryCode  string          `json:"countryCode"`
	RadiusKm     json.RawMessage `json:"radiusKm"`
}

// Parse decodes a JSON array of filters. Filters of unknown kind are
// skipped. An empty input yields no filters.
func Parse(data []byte) ([]Filter, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var ws []wire
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode filters: %w", err)
	}

	filters := make([]Filter, 0, len(ws))
	for _, w := range ws {
		if f, ok := w.filter(); ok {
			filters = append(filters, f)
		}
	}
	return filters, nil
}

func (w wire) filter() (Filter, bool) {
	switch w.Type {
	case KindContactField:
		return ContactField{Field: w.Field, Operator: w.Operator, Value: rawString(w.Value)}, true
	case KindAttribute:
		return Attribute{Key: w.Key, Operator: w.Operator, Value: rawString(w.Value)}, true
	case KindGroup:
		return Group{GroupIDs: withSingle(w.GroupIDs, w.GroupID)}, true
	case KindEventRole:
		return EventRole{EventRoleIDs: withSingle(w.EventRoleIDs, w.EventRoleID)}, true
	case KindCreatedAt:
		var f CreatedAt
		if t, ok := attribute.ParseDate(w.From); ok {
			f.From = &t
		}
		if t, ok := attribute.ParseDate(w.To); ok {
			f.To = &t
		}
		return f, true
	case KindDistance:
		return Distance{
			PostalCode:  w.PostalCode,
			CountryCode: w.CountryCode,
			RadiusKm:    rawFloat(w.RadiusKm),
		}, true
	default:
		return nil, false
	}
}

// rawString accepts JSON strings, numbers and booleans as filter values.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return ""
	}
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// rawFloat returns NaN for anything that is not a number or a numeric
// string, so an unusable radius fails closed.
func rawFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return math.NaN()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

func withSingle(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	for _, v := range append(ids, id) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
