package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Contact is a person tracked by a team.
type Contact struct {
	ID                      string          `db:"id"`
	TeamID                  string          `db:"team_id"`
	GroupID                 sql.NullString  `db:"group_id"`
	Name                    string          `db:"name"`
	Pronouns                sql.NullString  `db:"pronouns"`
	Email                   string          `db:"email"`
	Phone                   sql.NullString  `db:"phone"`
	Signal                  sql.NullString  `db:"signal"`
	Website                 sql.NullString  `db:"website"`
	Gender                  sql.NullString  `db:"gender"`
	GenderRequestPreference sql.NullString  `db:"gender_request_preference"`
	IsBipoc                 sql.NullBool    `db:"is_bipoc"`
	RacismRequestPreference sql.NullString  `db:"racism_request_preference"`
	OtherMargins            sql.NullString  `db:"other_margins"`
	OnboardingDate          sql.NullTime    `db:"onboarding_date"`
	BreakUntil              sql.NullTime    `db:"break_until"`
	Address                 sql.NullString  `db:"address"`
	PostalCode              sql.NullString  `db:"postal_code"`
	State                   sql.NullString  `db:"state"`
	City                    sql.NullString  `db:"city"`
	Country                 sql.NullString  `db:"country"`
	CountryCode             sql.NullString  `db:"country_code"`
	Latitude                sql.NullFloat64 `db:"latitude"`
	Longitude               sql.NullFloat64 `db:"longitude"`
	CreatedAt               time.Time       `db:"created_at"`
	UpdatedAt               time.Time       `db:"updated_at"`
}

// ProfileAttribute is a typed key/value pair owned by a contact. Which value
// columns are set depends on Type.
type ProfileAttribute struct {
	ID            string              `db:"id"`
	ContactID     string              `db:"contact_id"`
	Key           string              `db:"key"`
	Type          string              `db:"type"`
	StringValue   sql.NullString      `db:"string_value"`
	NumberValue   decimal.NullDecimal `db:"number_value"`
	DateValue     sql.NullTime        `db:"date_value"`
	LocationLabel sql.NullString      `db:"location_label"`
	Latitude      sql.NullFloat64     `db:"latitude"`
	Longitude     sql.NullFloat64     `db:"longitude"`
	CreatedAt     time.Time           `db:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at"`
}

// SocialLink is a platform handle owned by a contact.
type SocialLink struct {
	ID        string    `db:"id"`
	ContactID string    `db:"contact_id"`
	Platform  string    `db:"platform"`
	Handle    string    `db:"handle"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ContactChangeLog is an audit record of a single field change.
type ContactChangeLog struct {
	ID        string         `db:"id"`
	TeamID    string         `db:"team_id"`
	ContactID string         `db:"contact_id"`
	FieldKey  string         `db:"field_key"`
	OldValue  sql.NullString `db:"old_value"`
	NewValue  sql.NullString `db:"new_value"`
	UserID    sql.NullString `db:"user_id"`
	UserName  sql.NullString `db:"user_name"`
	Metadata  sql.NullString `db:"metadata"`
	CreatedAt time.Time      `db:"created_at"`
}

// PostalCodeCentroid is the reference coordinate of a postal code area.
type PostalCodeCentroid struct {
	CountryCode string         `db:"country_code"`
	PostalCode  string         `db:"postal_code"`
	PlaceName   sql.NullString `db:"place_name"`
	Latitude    float64        `db:"latitude"`
	Longitude   float64        `db:"longitude"`
}

// ContactLocation is the stored coordinate of a contact.
type ContactLocation struct {
	ID        string  `db:"id"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
}
