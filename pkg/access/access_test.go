package access

import (
	"testing"

	"github.com/matryer/is"
)

func TestIsFieldVisible(t *testing.T) {
	m := Map{}
	m.Allow(FieldGender, "g1")
	m.Allow(FieldGender, "g2")
	m[FieldCity] = map[string]struct{}{}

	cases := []struct {
		field  string
		groups []string
		want   bool
	}{
		{FieldName, nil, true},
		{FieldCity, nil, true},
		{FieldGender, nil, false},
		{FieldGender, []string{}, false},
		{FieldGender, []string{"g3"}, false},
		{FieldGender, []string{"g3", "g2"}, true},
		{AttributeField("role"), nil, true},
	}

	for _, c := range cases {
		if got := IsFieldVisible(c.field, m, c.groups); got != c.want {
			t.Errorf("IsFieldVisible(%q, %v) => %t, want %t", c.field, c.groups, got, c.want)
		}
	}
}

func TestMapGroups(t *testing.T) {
	is := is.New(t)
	m := Map{}
	is.Equal(m.Groups(FieldGender), nil)
	m.Allow(FieldGender, "b")
	m.Allow(FieldGender, "a")
	m.Allow(FieldGender, "a")
	is.Equal(m.Groups(FieldGender), []string{"a", "b"})
}

func TestAttributeField(t *testing.T) {
	is := is.New(t)
	is.Equal(AttributeField("role"), "profileAttribute.role")
	is.True(IsAttributeField(AttributeField("role")))
	is.True(!IsAttributeField(FieldGender))
	is.Equal(SocialLinkField("mastodon"), "socialLink.mastodon")
}

func TestParseSubmodule(t *testing.T) {
	cases := []struct {
		in  string
		out Submodule
	}{
		{"", -1},
		{"foo", -1},
		{Demographics.String(), Demographics},
		{Supervision.String(), Supervision},
	}

	for _, c := range cases {
		out := ParseSubmodule(c.in)
		if out != c.out {
			t.Errorf("ParseSubmodule(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}

func TestSubmoduleText(t *testing.T) {
	is := is.New(t)
	var s Submodule
	is.NoErr(s.UnmarshalText([]byte("supervision")))
	is.Equal(s, Supervision)
	is.Equal(s.UnmarshalText([]byte("nope")), ErrInvalidSubmodule)
	bts, err := Demographics.MarshalText()
	is.NoErr(err)
	is.Equal(string(bts), "demographics")
}

func TestAllowedSubmodules(t *testing.T) {
	is := is.New(t)

	// No rules at all: everything is visible.
	is.Equal(AllowedSubmodules(Map{}, nil), []Submodule{Demographics, Supervision})

	m := Map{}
	for _, f := range Supervision.Fields() {
		m.Allow(f, "supervisors")
	}
	for _, f := range Demographics.Fields() {
		m.Allow(f, "care")
	}
	is.Equal(AllowedSubmodules(m, nil), []Submodule{})
	is.Equal(AllowedSubmodules(m, []string{"supervisors"}), []Submodule{Supervision})

	// One visible field is enough.
	delete(m, FieldOtherMargins)
	is.Equal(AllowedSubmodules(m, []string{"supervisors"}), []Submodule{Demographics, Supervision})
}

func TestParseRoles(t *testing.T) {
	is := is.New(t)
	is.Equal(ParseRoles(""), nil)
	is.Equal(ParseRoles(" Admin, member ,,"), []Role{Admin, "member"})
	is.True(Identity{UserID: "u", Roles: ParseRoles("admin")}.IsAdmin())
	is.True(!Identity{UserID: "u"}.IsAdmin())
}
