package filter

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/charmbracelet/log"
	"github.com/grantflow/grantflow/pkg/attribute"
	"github.com/grantflow/grantflow/pkg/geo"
)

// Table is the contacts table the predicates refer to.
const Table = "contacts"

// GeoResolver resolves postal code centroids and runs the radius lookup
// for distance filters.
type GeoResolver interface {
	ResolveCentroid(ctx context.Context, countryCode, postalCode string) (geo.Point, bool, error)
	ContactIDsWithin(ctx context.Context, teamID string, center geo.Point, meters float64) ([]string, error)
}

// Query describes a contact listing.
type Query struct {
	TeamID  string
	Text    string
	Filters []Filter

	// RestrictToGroups limits results to contacts without a group or in
	// one of GroupIDs.
	RestrictToGroups bool
	GroupIDs         []string
}

// Builder composes contact predicates.
type Builder struct {
	geo    GeoResolver
	logger *log.Logger
}

// NewBuilder returns a Builder using r for distance filters.
func NewBuilder(ctx context.Context, r GeoResolver) *Builder {
	return &Builder{
		geo:    r,
		logger: log.FromContext(ctx).WithPrefix("filter"),
	}
}

// none matches no row.
var none = sq.Expr("1 = 0")

func col(name string) string {
	return Table + "." + name
}

// Where returns the predicate selecting the contacts of q. Geo lookup
// failures do not surface as errors; the affected distance filter matches
// nothing instead.
func (b *Builder) Where(ctx context.Context, q Query) sq.And {
	where := sq.And{sq.Eq{col("team_id"): q.TeamID}}

	if q.RestrictToGroups {
		visible := sq.Or{sq.Eq{col("group_id"): nil}}
		if len(q.GroupIDs) > 0 {
			visible = append(visible, sq.Eq{col("group_id"): q.GroupIDs})
		}
		where = append(where, visible)
	}

	if text := strings.TrimSpace(q.Text); text != "" {
		where = append(where, textSearch(text))
	}

	for _, f := range q.Filters {
		if pred := b.predicate(ctx, q.TeamID, f); pred != nil {
			where = append(where, pred)
		}
	}

	return where
}

func (b *Builder) predicate(ctx context.Context, teamID string, f Filter) sq.Sqlizer {
	switch f := f.(type) {
	case ContactField:
		return contactField(f)
	case Attribute:
		return attributeFilter(f)
	case Group:
		if len(f.GroupIDs) == 0 {
			return nil
		}
		return sq.Eq{col("group_id"): f.GroupIDs}
	case EventRole:
		if len(f.EventRoleIDs) == 0 {
			return nil
		}
		return exists{sq.Select("1").
			From("contact_event_roles cer").
			Where("cer.contact_id = " + col("id")).
			Where(sq.Eq{"cer.event_role_id": f.EventRoleIDs})}
	case CreatedAt:
		var and sq.And
		if f.From != nil {
			and = append(and, sq.GtOrEq{col("created_at"): f.From.UTC()})
		}
		if f.To != nil {
			and = append(and, sq.LtOrEq{col("created_at"): f.To.UTC()})
		}
		if len(and) == 0 {
			return nil
		}
		return and
	case Distance:
		return b.distance(ctx, teamID, f)
	}
	return nil
}

func contactField(f ContactField) sq.Sqlizer {
	c, ok := columns[f.Field]
	if !ok {
		return nil
	}
	name := col(c.name)

	switch f.Operator {
	case OpContains:
		if !c.text || strings.TrimSpace(f.Value) == "" {
			return nil
		}
		return like(name, f.Value)
	case OpHas:
		if !c.text {
			return sq.NotEq{name: nil}
		}
		return sq.And{sq.NotEq{name: nil}, sq.NotEq{name: ""}}
	case OpMissing:
		if !c.text {
			return sq.Eq{name: nil}
		}
		return sq.Or{sq.Eq{name: nil}, sq.Eq{name: ""}}
	}
	return nil
}

func attributeFilter(f Attribute) sq.Sqlizer {
	key := strings.TrimSpace(f.Key)
	value := strings.TrimSpace(f.Value)
	if key == "" || value == "" {
		return nil
	}

	sub := sq.Select("1").
		From("profile_attributes pa").
		Where("pa.contact_id = " + col("id")).
		Where(sq.Eq{"pa.key": key})

	switch f.Operator {
	case OpContains:
		return exists{sub.Where(sq.Or{like("pa.string_value", value), like("pa.location_label", value)})}
	case OpEquals:
		lower := strings.ToLower(value)
		match := sq.Or{
			sq.Expr("LOWER(pa.string_value) = ?", lower),
			sq.Expr("LOWER(pa.location_label) = ?", lower),
		}
		if n, ok := attribute.ParseNumber(value); ok {
			match = append(match, sq.Eq{"pa.number_value": n.String()})
		}
		if d, ok := attribute.ParseDate(value); ok {
			match = append(match, sq.Eq{"pa.date_value": d})
		}
		return exists{sub.Where(match)}
	}
	return nil
}

func textSearch(text string) sq.Sqlizer {
	or := make(sq.Or, 0, len(searchColumns)+1)
	for _, c := range searchColumns {
		or = append(or, like(col(c), text))
	}
	or = append(or, exists{sq.Select("1").
		From("profile_attributes pa").
		Where("pa.contact_id = " + col("id")).
		Where(sq.Or{
			like("pa.key", text),
			like("pa.string_value", text),
			like("pa.location_label", text),
		})})
	return or
}

func (b *Builder) distance(ctx context.Context, teamID string, f Distance) sq.Sqlizer {
	postal, ok := geo.NormalizePostalCode(f.PostalCode)
	if !ok {
		return none
	}
	country, ok := geo.NormalizeCountryCode(f.CountryCode)
	if !ok {
		return none
	}
	meters, ok := geo.KilometersToMeters(f.RadiusKm)
	if !ok || b.geo == nil {
		return none
	}

	center, found, err := b.geo.ResolveCentroid(ctx, country, postal)
	if err != nil {
		b.logger.Error("resolve centroid", "country", country, "postal", postal, "err", err)
		return none
	}
	if !found {
		return none
	}

	ids, err := b.geo.ContactIDsWithin(ctx, teamID, center, meters)
	if err != nil {
		b.logger.Error("radius lookup", "team", teamID, "err", err)
		return none
	}
	if len(ids) == 0 {
		return none
	}

	return sq.Eq{col("id"): ids}
}
