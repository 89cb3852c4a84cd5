package access

import (
	"encoding"
	"errors"
)

// Submodule is a named bundle of restricted contact fields.
type Submodule int

const (
	// Demographics covers the identity related sensitive fields.
	Demographics Submodule = iota

	// Supervision covers onboarding and availability.
	Supervision
)

// AllSubmodules lists every submodule in display order.
var AllSubmodules = []Submodule{Demographics, Supervision}

// String returns the string representation of the submodule.
func (s Submodule) String() string {
	switch s {
	case Demographics:
		return "demographics"
	case Supervision:
		return "supervision"
	default:
		return "unknown"
	}
}

// Fields returns the field keys bundled by the submodule.
func (s Submodule) Fields() []string {
	switch s {
	case Demographics:
		return []string{
			FieldGender,
			FieldGenderRequestPreference,
			FieldIsBipoc,
			FieldRacismRequestPreference,
			FieldOtherMargins,
		}
	case Supervision:
		return []string{FieldOnboardingDate, FieldBreakUntil}
	default:
		return nil
	}
}

// ParseSubmodule parses a submodule string.
func ParseSubmodule(s string) Submodule {
	switch s {
	case "demographics":
		return Demographics
	case "supervision":
		return Supervision
	default:
		return Submodule(-1)
	}
}

var (
	_ encoding.TextMarshaler   = Submodule(0)
	_ encoding.TextUnmarshaler = (*Submodule)(nil)
)

// ErrInvalidSubmodule is returned when an invalid submodule is provided.
var ErrInvalidSubmodule = errors.New("invalid submodule")

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Submodule) UnmarshalText(text []byte) error {
	sm := ParseSubmodule(string(text))
	if sm < 0 {
		return ErrInvalidSubmodule
	}

	*s = sm

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Submodule) MarshalText() (text []byte, err error) {
	return []byte(s.String()), nil
}

// AllowedSubmodules returns the submodules with at least one field visible
// to a user belonging to userGroupIDs.
func AllowedSubmodules(m Map, userGroupIDs []string) []Submodule {
	allowed := make([]Submodule, 0, len(AllSubmodules))
	for _, sm := range AllSubmodules {
		for _, f := range sm.Fields() {
			if IsFieldVisible(f, m, userGroupIDs) {
				allowed = append(allowed, sm)
				break
			}
		}
	}
	return allowed
}
