package proto

import (
	"errors"
)

var (
	// ErrUnauthorized is returned when the user is not authorized to perform action.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNameRequired is returned when a contact has no name.
	ErrNameRequired = errors.New("Name is required") //nolint:revive,stylecheck
	// ErrEmailRequired is returned when a contact has no email.
	ErrEmailRequired = errors.New("Email is required") //nolint:revive,stylecheck
	// ErrDuplicateEmail is returned when another contact of the team uses the email.
	ErrDuplicateEmail = errors.New("A contact with this email already exists for this team") //nolint:revive,stylecheck
	// ErrContactNotFound is returned when a contact does not exist in the team.
	ErrContactNotFound = errors.New("Contact not found") //nolint:revive,stylecheck
	// ErrInvalidOnboardingDate is returned when the onboarding date does not parse.
	ErrInvalidOnboardingDate = errors.New("Invalid onboarding date") //nolint:revive,stylecheck
	// ErrInvalidBreakUntil is returned when the break until date does not parse.
	ErrInvalidBreakUntil = errors.New("Invalid break until date") //nolint:revive,stylecheck
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamRequired is returned when an operation is missing its team.
	ErrTeamRequired = errors.New("team is required")
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrGroupExist is returned when a group name is taken within a team.
	ErrGroupExist = errors.New("group already exists")
	// ErrEventNotFound is returned when an event or event role is not found.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidFilter is returned when a filter list cannot be decoded.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrGroupNameRequired is returned when a group has no name.
	ErrGroupNameRequired = errors.New("group name is required")
	// ErrUserRequired is returned when an operation is missing its user.
	ErrUserRequired = errors.New("user is required")
	// ErrInvalidField is returned when an access rule names no field.
	ErrInvalidField = errors.New("invalid field")
	// ErrInvalidRequest is returned when a request body cannot be decoded.
	ErrInvalidRequest = errors.New("invalid request body")
	// ErrCentroidNotFound is returned when a postal code has no centroid.
	ErrCentroidNotFound = errors.New("postal code not found")
)

var validationErrors = []error{
	ErrNameRequired,
	ErrEmailRequired,
	ErrDuplicateEmail,
	ErrInvalidOnboardingDate,
	ErrInvalidBreakUntil,
	ErrTeamRequired,
	ErrGroupExist,
	ErrInvalidFilter,
	ErrInvalidField,
	ErrGroupNameRequired,
	ErrUserRequired,
	ErrInvalidRequest,
}

// IsValidation reports whether err is a user correctable validation error
// whose message can be shown verbatim.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrContactNotFound) ||
		errors.Is(err, ErrTeamNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrCentroidNotFound)
}
