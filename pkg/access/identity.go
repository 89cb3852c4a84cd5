package access

import "strings"

// Role is a team wide role of a user.
type Role string

// Admin bypasses contact level group restrictions. Field level rules still
// apply.
const Admin Role = "admin"

// ParseRoles parses a comma separated role list.
func ParseRoles(s string) []Role {
	var roles []Role
	for _, r := range strings.Split(s, ",") {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			roles = append(roles, Role(r))
		}
	}
	return roles
}

// Identity is the caller acting on a team's contacts. A zero Identity is an
// anonymous caller and sees no restricted data.
type Identity struct {
	UserID   string
	UserName string
	Roles    []Role
}

// IsAnonymous reports whether the identity carries no user id.
func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}

// IsAdmin reports whether the identity has the Admin role.
func (i Identity) IsAdmin() bool {
	for _, r := range i.Roles {
		if r == Admin {
			return true
		}
	}
	return false
}
