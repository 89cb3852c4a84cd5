// Package access decides which contact fields a user may see or write based
// on team scoped group membership.
package access

import (
	"sort"
	"strings"
)

// Contact field keys. Access rules and change log entries refer to fields by
// these keys.
const (
	FieldName                    = "name"
	FieldPronouns                = "pronouns"
	FieldEmail                   = "email"
	FieldPhone                   = "phone"
	FieldSignal                  = "signal"
	FieldWebsite                 = "website"
	FieldGender                  = "gender"
	FieldGenderRequestPreference = "genderRequestPreference"
	FieldIsBipoc                 = "isBipoc"
	FieldRacismRequestPreference = "racismRequestPreference"
	FieldOtherMargins            = "otherMargins"
	FieldOnboardingDate          = "onboardingDate"
	FieldBreakUntil              = "breakUntil"
	FieldAddress                 = "address"
	FieldPostalCode              = "postalCode"
	FieldState                   = "state"
	FieldCity                    = "city"
	FieldCountry                 = "country"
	FieldCountryCode             = "countryCode"
	FieldLatitude                = "latitude"
	FieldLongitude               = "longitude"
	FieldGroupID                 = "groupId"
)

// RestrictedFields are the sensitive contact fields that teams usually
// guard with access rules.
var RestrictedFields = []string{
	FieldGender,
	FieldGenderRequestPreference,
	FieldIsBipoc,
	FieldRacismRequestPreference,
	FieldOtherMargins,
	FieldOnboardingDate,
	FieldBreakUntil,
}

const (
	attributePrefix  = "profileAttribute."
	socialLinkPrefix = "socialLink."
)

// AttributeField returns the field key of a profile attribute.
func AttributeField(key string) string {
	return attributePrefix + key
}

// SocialLinkField returns the field key of a social link platform.
func SocialLinkField(platform string) string {
	return socialLinkPrefix + platform
}

// IsAttributeField reports whether field refers to a profile attribute.
func IsAttributeField(field string) bool {
	return strings.HasPrefix(field, attributePrefix)
}

// Map maps a field key to the set of group ids allowed to access it.
type Map map[string]map[string]struct{}

// Allow adds groupID to the groups allowed to access field.
func (m Map) Allow(field, groupID string) {
	groups, ok := m[field]
	if !ok {
		groups = make(map[string]struct{})
		m[field] = groups
	}
	groups[groupID] = struct{}{}
}

// Groups returns the sorted group ids allowed to access field. A nil result
// means the field is unrestricted.
func (m Map) Groups(field string) []string {
	groups, ok := m[field]
	if !ok || len(groups) == 0 {
		return nil
	}
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsFieldVisible reports whether a user belonging to userGroupIDs may see
// and write field. Fields without rules are visible to everyone. A user
// without groups never sees a restricted field.
func IsFieldVisible(field string, m Map, userGroupIDs []string) bool {
	groups, ok := m[field]
	if !ok || len(groups) == 0 {
		return true
	}

	for _, id := range userGroupIDs {
		if _, ok := groups[id]; ok {
			return true
		}
	}

	return false
}
