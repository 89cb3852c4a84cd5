package filter

import "github.com/grantflow/grantflow/pkg/access"

type column struct {
	name string
	text bool
}

// columns maps contact field keys to their contacts table column.
var columns = map[string]column{
	access.FieldName:                    {"name", true},
	access.FieldPronouns:                {"pronouns", true},
	access.FieldEmail:                   {"email", true},
	access.FieldPhone:                   {"phone", true},
	access.FieldSignal:                  {"signal", true},
	access.FieldWebsite:                 {"website", true},
	access.FieldGender:                  {"gender", true},
	access.FieldGenderRequestPreference: {"gender_request_preference", true},
	access.FieldIsBipoc:                 {"is_bipoc", false},
	access.FieldRacismRequestPreference: {"racism_request_preference", true},
	access.FieldOtherMargins:            {"other_margins", true},
	access.FieldOnboardingDate:          {"onboarding_date", false},
	access.FieldBreakUntil:              {"break_until", false},
	access.FieldAddress:                 {"address", true},
	access.FieldPostalCode:              {"postal_code", true},
	access.FieldState:                   {"state", true},
	access.FieldCity:                    {"city", true},
	access.FieldCountry:                 {"country", true},
	access.FieldCountryCode:             {"country_code", true},
	access.FieldLatitude:                {"latitude", false},
	access.FieldLongitude:               {"longitude", false},
	access.FieldGroupID:                 {"group_id", true},
}

// searchColumns are matched by free text search.
var searchColumns = []string{
	"name",
	"pronouns",
	"other_margins",
	"address",
	"postal_code",
	"state",
	"city",
	"country",
	"email",
	"phone",
	"signal",
	"website",
}

// Column returns the contacts column of a field key.
func Column(field string) (string, bool) {
	c, ok := columns[field]
	return c.name, ok
}
