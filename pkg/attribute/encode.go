package attribute

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/shopspring/decimal"
)

// Encode maps a to its storage columns. NUMBER and DATE values also keep
// their string form in StringValue so text search matches them.
func Encode(a Attribute) models.ProfileAttribute {
	row := models.ProfileAttribute{Key: a.Key}
	if a.Value == nil {
		return row
	}
	row.Type = string(a.Value.Type())

	switch v := a.Value.(type) {
	case String:
		row.StringValue = sql.NullString{String: string(v), Valid: true}
	case Number:
		row.NumberValue = decimal.NullDecimal{Decimal: v.Decimal, Valid: true}
		row.StringValue = sql.NullString{String: v.String(), Valid: true}
	case Date:
		row.DateValue = sql.NullTime{Time: v.Time.UTC(), Valid: true}
		row.StringValue = sql.NullString{String: v.ISO(), Valid: true}
	case Location:
		if v.Label != nil {
			row.LocationLabel = sql.NullString{String: *v.Label, Valid: true}
		}
		if v.Latitude != nil {
			row.Latitude = sql.NullFloat64{Float64: *v.Latitude, Valid: true}
		}
		if v.Longitude != nil {
			row.Longitude = sql.NullFloat64{Float64: *v.Longitude, Valid: true}
		}
	}

	return row
}

// Decode maps a stored row back to an attribute. Rows that no longer hold a
// meaningful value for their type are reported as invalid.
func Decode(row models.ProfileAttribute) (Attribute, bool) {
	t, ok := ParseType(row.Type)
	if !ok {
		return Attribute{}, false
	}

	a := Attribute{Key: row.Key}
	switch t {
	case TypeString:
		if !row.StringValue.Valid || row.StringValue.String == "" {
			return a, false
		}
		a.Value = String(row.StringValue.String)
	case TypeNumber:
		if row.NumberValue.Valid {
			a.Value = Number{row.NumberValue.Decimal}
		} else if d, ok := ParseNumber(row.StringValue.String); ok {
			a.Value = Number{d}
		} else {
			return a, false
		}
	case TypeDate:
		if row.DateValue.Valid {
			a.Value = Date{row.DateValue.Time.UTC()}
		} else if tm, ok := ParseDate(row.StringValue.String); ok {
			a.Value = Date{tm}
		} else {
			return a, false
		}
	case TypeLocation:
		var loc Location
		if row.LocationLabel.Valid && row.LocationLabel.String != "" {
			s := row.LocationLabel.String
			loc.Label = &s
		}
		if row.Latitude.Valid {
			f := row.Latitude.Float64
			loc.Latitude = &f
		}
		if row.Longitude.Valid {
			f := row.Longitude.Float64
			loc.Longitude = &f
		}
		if loc.Label == nil && loc.Latitude == nil && loc.Longitude == nil {
			return a, false
		}
		a.Value = loc
	}

	return a, true
}

// fingerprint flattens every typed sub-field of a row into comparable
// strings.
func fingerprint(row models.ProfileAttribute) [7]string {
	var fp [7]string
	fp[0] = row.Type
	if row.StringValue.Valid {
		fp[1] = "s:" + row.StringValue.String
	}
	if row.NumberValue.Valid {
		fp[2] = "n:" + row.NumberValue.Decimal.String()
	}
	if row.DateValue.Valid {
		fp[3] = "d:" + row.DateValue.Time.UTC().Format(time.RFC3339Nano)
	}
	if row.LocationLabel.Valid {
		fp[4] = "l:" + row.LocationLabel.String
	}
	if row.Latitude.Valid {
		fp[5] = "lat:" + strconv.FormatFloat(row.Latitude.Float64, 'f', -1, 64)
	}
	if row.Longitude.Valid {
		fp[6] = "lon:" + strconv.FormatFloat(row.Longitude.Float64, 'f', -1, 64)
	}
	return fp
}
