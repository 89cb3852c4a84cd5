package filter

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/grantflow/grantflow/pkg/geo"
	"github.com/matryer/is"
)

type fakeGeo struct {
	centroids map[string]geo.Point
	ids       []string
	err       error
	lookups   int
}

func (f *fakeGeo) ResolveCentroid(_ context.Context, country, postal string) (geo.Point, bool, error) {
	if f.err != nil {
		return geo.Point{}, false, f.err
	}
	p, ok := f.centroids[country+":"+postal]
	return p, ok, nil
}

func (f *fakeGeo) ContactIDsWithin(context.Context, string, geo.Point, float64) ([]string, error) {
	f.lookups++
	return f.ids, nil
}

func build(t *testing.T, r GeoResolver, q Query) (string, []interface{}) {
	t.Helper()
	sql, args, err := NewBuilder(context.TODO(), r).Where(context.TODO(), q).ToSql()
	if err != nil {
		t.Fatal(err)
	}
	return sql, args
}

func TestWhereTeamOnly(t *testing.T) {
	is := is.New(t)
	sql, args := build(t, nil, Query{TeamID: "t1"})
	is.Equal(sql, "(contacts.team_id = ?)")
	is.Equal(args, []interface{}{"t1"})
}

func TestWhereGroupVisibility(t *testing.T) {
	is := is.New(t)
	sql, args := build(t, nil, Query{TeamID: "t1", RestrictToGroups: true, GroupIDs: []string{"g1", "g2"}})
	is.True(strings.Contains(sql, "contacts.group_id IS NULL"))
	is.True(strings.Contains(sql, "contacts.group_id IN (?,?)"))
	is.Equal(args, []interface{}{"t1", "g1", "g2"})

	sql, _ = build(t, nil, Query{TeamID: "t1", RestrictToGroups: true})
	is.True(strings.Contains(sql, "contacts.group_id IS NULL"))
	is.True(!strings.Contains(sql, "IN ("))
}

func TestWhereTextSearch(t *testing.T) {
	is := is.New(t)
	sql, args := build(t, nil, Query{TeamID: "t1", Text: " 50%_Off "})
	for _, c := range searchColumns {
		is.True(strings.Contains(sql, "LOWER(contacts."+c+") LIKE ?"))
	}
	is.True(strings.Contains(sql, "EXISTS (SELECT 1 FROM profile_attributes pa WHERE pa.contact_id = contacts.id"))
	is.Equal(args[1], `%50\%\_off%`)
}

func TestWhereContactField(t *testing.T) {
	is := is.New(t)
	sql, args := build(t, nil, Query{TeamID: "t1", Filters: []Filter{
		ContactField{Field: "city", Operator: OpContains, Value: "Ber"},
		ContactField{Field: "phone", Operator: OpHas},
		ContactField{Field: "website", Operator: OpMissing},
		ContactField{Field: "isBipoc", Operator: OpHas},
		ContactField{Field: "onboardingDate", Operator: OpMissing},
	}})
	is.True(strings.Contains(sql, "LOWER(contacts.city) LIKE ?"))
	is.True(strings.Contains(sql, "contacts.phone IS NOT NULL AND contacts.phone <> ?"))
	is.True(strings.Contains(sql, "contacts.website IS NULL OR contacts.website = ?"))
	is.True(strings.Contains(sql, "contacts.is_bipoc IS NOT NULL"))
	is.True(strings.Contains(sql, "contacts.onboarding_date IS NULL"))
	is.Equal(args, []interface{}{"t1", "%ber%", "", ""})
}

func TestWhereSkipsUnusableFilters(t *testing.T) {
	is := is.New(t)
	sql, _ := build(t, nil, Query{TeamID: "t1", Filters: []Filter{
		ContactField{Field: "city", Operator: OpContains, Value: "  "},
		ContactField{Field: "isBipoc", Operator: OpContains, Value: "true"},
		ContactField{Field: "shoeSize", Operator: OpHas},
		ContactField{Field: "city", Operator: "startsWith", Value: "B"},
		Attribute{Key: "role", Operator: OpContains},
		Group{},
		EventRole{},
		CreatedAt{},
	}})
	is.Equal(sql, "(contacts.team_id = ?)")
}

func TestWhereAttribute(t *testing.T) {
	is := is.New(t)
	sql, args := build(t, nil, Query{TeamID: "t1", Filters: []Filter{
		Attribute{Key: "role", Operator: OpContains, Value: "Ment"},
	}})
	is.True(strings.Contains(sql, "pa.key = ?"))
	is.True(strings.Contains(sql, "LOWER(pa.string_value) LIKE ?"))
	is.True(strings.Contains(sql, "LOWER(pa.location_label) LIKE ?"))
	is.Equal(args, []interface{}{"t1", "role", "%ment%", "%ment%"})

	sql, args = build(t, nil, Query{TeamID: "t1", Filters: []Filter{
		Attribute{Key: "since", Operator: OpEquals, Value: "2024-05-01"},
	}})
	is.True(strings.Contains(sql, "pa.date_value = ?"))
	is.True(!strings.Contains(sql, "pa.number_value"))
	is.Equal(args[4], time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	sql, args = build(t, nil, Query{TeamID: "t1", Filters: []Filter{
		Attribute{Key: "age", Operator: OpEquals, Value: "42.0"},
	}})
	is.True(strings.Contains(sql, "pa.number_value = ?"))
	is.True(!strings.Contains(sql, "pa.date_value"))
	is.Equal(args, []interface{}{"t1", "age", "42.0", "42.0", "42"})
}

func TestWhereGroupEventRoleCreatedAt(t *testing.T) {
	is := is.New(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sql, args := build(t, nil, Query{TeamID: "t1", Filters: []Filter{
		Group{GroupIDs: []string{"g1"}},
		EventRole{EventRoleIDs: []string{"r1", "r2"}},
		CreatedAt{From: &from},
	}})
	is.True(strings.Contains(sql, "contacts.group_id IN (?)"))
	is.True(strings.Contains(sql, "EXISTS (SELECT 1 FROM contact_event_roles cer WHERE cer.contact_id = contacts.id AND cer.event_role_id IN (?,?))"))
	is.True(strings.Contains(sql, "contacts.created_at >= ?"))
	is.True(!strings.Contains(sql, "contacts.created_at <= ?"))
	is.Equal(args, []interface{}{"t1", "g1", "r1", "r2", from})
}

func TestWhereDistanceFailsClosed(t *testing.T) {
	r := &fakeGeo{
		centroids: map[string]geo.Point{"DE:10115": {Latitude: 52.53, Longitude: 13.38}},
		ids:       []string{"c1"},
	}
	for name, f := range map[string]Distance{
		"bad postal":   {PostalCode: "!!", CountryCode: "DE", RadiusKm: 10},
		"bad country":  {PostalCode: "10115", CountryCode: "Atlantis", RadiusKm: 10},
		"nan radius":   {PostalCode: "10115", CountryCode: "DE", RadiusKm: math.NaN()},
		"no centroid":  {PostalCode: "99999", CountryCode: "DE", RadiusKm: 10},
		"neg radius":   {PostalCode: "10115", CountryCode: "DE", RadiusKm: -1},
		"inf radius":   {PostalCode: "10115", CountryCode: "DE", RadiusKm: math.Inf(1)},
		"empty postal": {CountryCode: "DE", RadiusKm: 10},
	} {
		sql, _ := build(t, r, Query{TeamID: "t1", Filters: []Filter{f}})
		if !strings.Contains(sql, "1 = 0") {
			t.Errorf("%s: Where() => %q, want a predicate matching nothing", name, sql)
		}
	}
	if r.lookups != 0 {
		t.Errorf("radius lookups => %d, want 0", r.lookups)
	}
}

func TestWhereDistance(t *testing.T) {
	is := is.New(t)
	r := &fakeGeo{
		centroids: map[string]geo.Point{"DE:10115": {Latitude: 52.53, Longitude: 13.38}},
		ids:       []string{"c1", "c2"},
	}
	sql, args := build(t, r, Query{TeamID: "t1", Filters: []Filter{
		Distance{PostalCode: " 10115 ", CountryCode: "de", RadiusKm: 10},
		Distance{PostalCode: "10115", CountryCode: "Germany", RadiusKm: 5},
	}})
	is.Equal(strings.Count(sql, "contacts.id IN (?,?)"), 2)
	is.Equal(args, []interface{}{"t1", "c1", "c2", "c1", "c2"})
	is.Equal(r.lookups, 2)

	r.ids = nil
	sql, _ = build(t, r, Query{TeamID: "t1", Filters: []Filter{Distance{PostalCode: "10115", CountryCode: "DE", RadiusKm: 10}}})
	is.True(strings.Contains(sql, "1 = 0"))
}

func TestWhereDistanceLookupError(t *testing.T) {
	is := is.New(t)
	r := &fakeGeo{err: errors.New("db down")}
	sql, _ := build(t, r, Query{TeamID: "t1", Filters: []Filter{Distance{PostalCode: "10115", CountryCode: "DE", RadiusKm: 10}}})
	is.True(strings.Contains(sql, "1 = 0"))
}

func TestLikeEscapes(t *testing.T) {
	is := is.New(t)
	sql, args, err := like("contacts.name", `A\B`).ToSql()
	is.NoErr(err)
	is.Equal(sql, `LOWER(contacts.name) LIKE ? ESCAPE '\'`)
	is.Equal(args, []interface{}{`%a\\b%`})
}
