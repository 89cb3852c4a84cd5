package filter

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestParse(t *testing.T) {
	is := is.New(t)
	filters, err := Parse([]byte(`[
		{"type":"contactField","field":"city","operator":"contains","value":"ber"},
		{"type":"attribute","key":"age","operator":"equals","value":42},
		{"type":"group","groupId":"g1","groupIds":["g2"," "]},
		{"type":"eventRole","eventRoleIds":["r1"]},
		{"type":"createdAt","from":"2024-01-01","to":"not a date"},
		{"type":"distance","postalCode":"10115","countryCode":"DE","radiusKm":"25"},
		{"type":"distance","postalCode":"10115","countryCode":"DE"},
		{"type":"teleport","value":"x"}
	]`))
	is.NoErr(err)
	is.Equal(len(filters), 7)
	is.Equal(filters[0], ContactField{Field: "city", Operator: OpContains, Value: "ber"})
	is.Equal(filters[1], Attribute{Key: "age", Operator: OpEquals, Value: "42"})
	is.Equal(filters[2], Group{GroupIDs: []string{"g2", "g1"}})
	is.Equal(filters[3], EventRole{EventRoleIDs: []string{"r1"}})

	created := filters[4].(CreatedAt)
	is.Equal(created.From.Format("2006-01-02"), "2024-01-01")
	is.True(created.To == nil)

	is.Equal(filters[5].(Distance).RadiusKm, 25.0)
	is.True(math.IsNaN(filters[6].(Distance).RadiusKm))
}

func TestParseEmptyAndInvalid(t *testing.T) {
	is := is.New(t)
	filters, err := Parse(nil)
	is.NoErr(err)
	is.Equal(len(filters), 0)

	_, err = Parse([]byte(`{"type":"group"}`))
	is.True(err != nil)
}

func TestColumn(t *testing.T) {
	is := is.New(t)
	c, ok := Column("genderRequestPreference")
	is.True(ok)
	is.Equal(c, "gender_request_preference")
	_, ok = Column("favouriteColour")
	is.True(!ok)
}
