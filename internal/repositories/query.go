package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// psql renders lib/pq's $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ilikeAny matches term as a case-insensitive substring of any of cols.
func ilikeAny(term string, cols ...string) sq.Or {
	pattern := "%" + escapeLike(term) + "%"

	or := make(sq.Or, len(cols))
	for i, c := range cols {
		or[i] = sq.ILike{c: pattern}
	}

	return or
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// sortColumns whitelists the ORDER BY columns of a resource.
type sortColumns struct {
	columns    map[string]string
	defaultCol string
	defaultAsc bool
}

// orderBy resolves a requested sort. Unknown fields fall back to the default
// order; a known field sorts ascending unless asc is explicitly false.
func (s sortColumns) orderBy(field string, asc *bool) string {
	col, ok := s.columns[field]
	if !ok {
		return s.defaultCol + direction(s.defaultAsc)
	}

	return col + direction(asc == nil || *asc)
}

func direction(asc bool) string {
	if asc {
		return " ASC"
	}

	return " DESC"
}
