package backend

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/grantflow/grantflow/pkg/attribute"
	"github.com/grantflow/grantflow/pkg/geo"
	"github.com/grantflow/grantflow/pkg/proto"
)

// normalizer maps a trimmed, non empty input to its stored form.
type normalizer func(string) string

func asIs(s string) string { return s }

func normalizeEmail(s string) string { return strings.ToLower(s) }

// normalizePostalCode keeps input that does not look like a postal code as
// entered so nothing the user typed is lost.
func normalizePostalCode(s string) string {
	if code, ok := geo.NormalizePostalCode(s); ok {
		return code
	}
	return s
}

func normalizeCountryCode(s string) string {
	if code, ok := geo.NormalizeCountryCode(s); ok {
		return code
	}
	return strings.ToUpper(s)
}

// text trims s and normalizes it. Empty input is absent.
func text(s string, fn normalizer) sql.NullString {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: fn(s), Valid: true}
}

// date parses s. Empty input is absent, unparsable input reports false.
func date(s string) (sql.NullTime, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return sql.NullTime{}, true
	}
	t, ok := attribute.ParseDate(s)
	if !ok {
		return sql.NullTime{}, false
	}
	return sql.NullTime{Time: t, Valid: true}, true
}

// socialLinks lower-cases platforms, trims handles and drops incomplete or
// repeated platforms keeping the first.
func socialLinks(links []proto.SocialLink) []proto.SocialLink {
	seen := make(map[string]struct{}, len(links))
	out := make([]proto.SocialLink, 0, len(links))
	for _, l := range links {
		platform := strings.ToLower(strings.TrimSpace(l.Platform))
		handle := strings.TrimSpace(l.Handle)
		if platform == "" || handle == "" {
			continue
		}
		if _, ok := seen[platform]; ok {
			continue
		}
		seen[platform] = struct{}{}
		out = append(out, proto.SocialLink{Platform: platform, Handle: handle})
	}
	return out
}

// Change log renderings of stored values.

func showString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func showBool(b sql.NullBool) *string {
	if !b.Valid {
		return nil
	}
	s := strconv.FormatBool(b.Bool)
	return &s
}

func showTime(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := t.Time.UTC().Format(time.RFC3339Nano)
	return &s
}

func showFloat(f sql.NullFloat64) *string {
	if !f.Valid {
		return nil
	}
	s := strconv.FormatFloat(f.Float64, 'f', -1, 64)
	return &s
}

func sameValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
