package filter

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// exists wraps a sub select in EXISTS (...).
type exists struct {
	sub sq.SelectBuilder
}

func (e exists) ToSql() (string, []interface{}, error) { //nolint:revive,stylecheck
	sql, args, err := e.sub.ToSql()
	if err != nil {
		return "", nil, err
	}
	return "EXISTS (" + sql + ")", args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// like matches column case-insensitively against a substring. LIKE wildcards
// in value match literally.
func like(column, value string) sq.Sqlizer {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
	return sq.Expr("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
}
