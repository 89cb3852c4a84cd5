package proto

import (
	"time"

	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/attribute"
)

// Contact is a person tracked by a team. Nil fields are either empty or
// hidden from the caller by field access rules.
type Contact struct {
	ID      string    `json:"id"`
	TeamID  string    `json:"teamId"`
	GroupID *string   `json:"groupId,omitempty"`
	Group   *GroupRef `json:"group,omitempty"`

	Name     string  `json:"name,omitempty"`
	Pronouns *string `json:"pronouns,omitempty"`
	Email    string  `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Signal   *string `json:"signal,omitempty"`
	Website  *string `json:"website,omitempty"`

	Gender                  *string    `json:"gender,omitempty"`
	GenderRequestPreference *string    `json:"genderRequestPreference,omitempty"`
	IsBipoc                 *bool      `json:"isBipoc,omitempty"`
	RacismRequestPreference *string    `json:"racismRequestPreference,omitempty"`
	OtherMargins            *string    `json:"otherMargins,omitempty"`
	OnboardingDate          *time.Time `json:"onboardingDate,omitempty"`
	BreakUntil              *time.Time `json:"breakUntil,omitempty"`

	Address     *string  `json:"address,omitempty"`
	PostalCode  *string  `json:"postalCode,omitempty"`
	State       *string  `json:"state,omitempty"`
	City        *string  `json:"city,omitempty"`
	Country     *string  `json:"country,omitempty"`
	CountryCode *string  `json:"countryCode,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`

	ProfileAttributes []attribute.Raw `json:"profileAttributes"`
	SocialLinks       []SocialLink    `json:"socialLinks"`
	Events            []ContactEvent  `json:"events"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GroupRef names the group a contact belongs to.
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SocialLink is a handle of a contact on some platform.
type SocialLink struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
}

// ContactEvent is an event a contact is linked to through event roles or a
// registration.
type ContactEvent struct {
	EventID    string     `json:"eventId"`
	Name       string     `json:"name"`
	StartsAt   *time.Time `json:"startsAt,omitempty"`
	Roles      []string   `json:"roles,omitempty"`
	Registered bool       `json:"registered"`
}

var redactors = map[string]func(*Contact){
	access.FieldName:                    func(c *Contact) { c.Name = "" },
	access.FieldPronouns:                func(c *Contact) { c.Pronouns = nil },
	access.FieldEmail:                   func(c *Contact) { c.Email = "" },
	access.FieldPhone:                   func(c *Contact) { c.Phone = nil },
	access.FieldSignal:                  func(c *Contact) { c.Signal = nil },
	access.FieldWebsite:                 func(c *Contact) { c.Website = nil },
	access.FieldGender:                  func(c *Contact) { c.Gender = nil },
	access.FieldGenderRequestPreference: func(c *Contact) { c.GenderRequestPreference = nil },
	access.FieldIsBipoc:                 func(c *Contact) { c.IsBipoc = nil },
	access.FieldRacismRequestPreference: func(c *Contact) { c.RacismRequestPreference = nil },
	access.FieldOtherMargins:            func(c *Contact) { c.OtherMargins = nil },
	access.FieldOnboardingDate:          func(c *Contact) { c.OnboardingDate = nil },
	access.FieldBreakUntil:              func(c *Contact) { c.BreakUntil = nil },
	access.FieldAddress:                 func(c *Contact) { c.Address = nil },
	access.FieldPostalCode:              func(c *Contact) { c.PostalCode = nil },
	access.FieldState:                   func(c *Contact) { c.State = nil },
	access.FieldCity:                    func(c *Contact) { c.City = nil },
	access.FieldCountry:                 func(c *Contact) { c.Country = nil },
	access.FieldCountryCode:             func(c *Contact) { c.CountryCode = nil },
	access.FieldLatitude:                func(c *Contact) { c.Latitude = nil },
	access.FieldLongitude:               func(c *Contact) { c.Longitude = nil },
	access.FieldGroupID:                 func(c *Contact) { c.GroupID, c.Group = nil, nil },
}

// Redact clears every field, profile attribute and social link that is not
// visible to a user belonging to userGroupIDs.
func (c *Contact) Redact(m access.Map, userGroupIDs []string) {
	for field := range m {
		if access.IsFieldVisible(field, m, userGroupIDs) {
			continue
		}
		if redact, ok := redactors[field]; ok {
			redact(c)
		}
	}

	attrs := c.ProfileAttributes[:0]
	for _, a := range c.ProfileAttributes {
		if access.IsFieldVisible(access.AttributeField(a.Key), m, userGroupIDs) {
			attrs = append(attrs, a)
		}
	}
	c.ProfileAttributes = attrs

	links := c.SocialLinks[:0]
	for _, l := range c.SocialLinks {
		if access.IsFieldVisible(access.SocialLinkField(l.Platform), m, userGroupIDs) {
			links = append(links, l)
		}
	}
	c.SocialLinks = links
}

// ContactInput holds the fields of a new contact. Empty strings are treated
// as absent.
type ContactInput struct {
	TeamID  string `json:"teamId"`
	GroupID string `json:"groupId"`

	Name     string `json:"name"`
	Pronouns string `json:"pronouns"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Signal   string `json:"signal"`
	Website  string `json:"website"`

	Gender                  string `json:"gender"`
	GenderRequestPreference string `json:"genderRequestPreference"`
	IsBipoc                 *bool  `json:"isBipoc"`
	RacismRequestPreference string `json:"racismRequestPreference"`
	OtherMargins            string `json:"otherMargins"`
	OnboardingDate          string `json:"onboardingDate"`
	BreakUntil              string `json:"breakUntil"`

	Address     string `json:"address"`
	PostalCode  string `json:"postalCode"`
	State       string `json:"state"`
	City        string `json:"city"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`

	ProfileAttributes []attribute.Raw `json:"profileAttributes"`
	SocialLinks       []SocialLink    `json:"socialLinks"`
}

// ContactUpdate is a partial update of a contact. Fields that are not set
// are left untouched; fields set to an empty string or null are cleared.
type ContactUpdate struct {
	ContactID string `json:"contactId"`
	TeamID    string `json:"teamId"`

	GroupID Optional[string] `json:"groupId"`

	Name     Optional[string] `json:"name"`
	Pronouns Optional[string] `json:"pronouns"`
	Email    Optional[string] `json:"email"`
	Phone    Optional[string] `json:"phone"`
	Signal   Optional[string] `json:"signal"`
	Website  Optional[string] `json:"website"`

	Gender                  Optional[string] `json:"gender"`
	GenderRequestPreference Optional[string] `json:"genderRequestPreference"`
	IsBipoc                 Optional[bool]   `json:"isBipoc"`
	RacismRequestPreference Optional[string] `json:"racismRequestPreference"`
	OtherMargins            Optional[string] `json:"otherMargins"`
	OnboardingDate          Optional[string] `json:"onboardingDate"`
	BreakUntil              Optional[string] `json:"breakUntil"`

	Address     Optional[string] `json:"address"`
	PostalCode  Optional[string] `json:"postalCode"`
	State       Optional[string] `json:"state"`
	City        Optional[string] `json:"city"`
	Country     Optional[string] `json:"country"`
	CountryCode Optional[string] `json:"countryCode"`

	ProfileAttributes Optional[[]attribute.Raw] `json:"profileAttributes"`
	SocialLinks       Optional[[]SocialLink]    `json:"socialLinks"`
}

// ChangeLogEntry is an audit record of a single field change.
type ChangeLogEntry struct {
	ID        string         `json:"id"`
	ContactID string         `json:"contactId"`
	FieldKey  string         `json:"fieldKey"`
	OldValue  *string        `json:"oldValue"`
	NewValue  *string        `json:"newValue"`
	UserID    *string        `json:"userId,omitempty"`
	UserName  *string        `json:"userName,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
