package sqlgenerator

import "github.com/Masterminds/squirrel"

// PGsql is a shortcut to a dollar-based statement builder
var PGsql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Page restricts a selection to pageSize rows ordered by key,
// starting strictly after the last key seen by the caller (keyset pagination)
func Page(sel squirrel.SelectBuilder, key string, pageSize uint64, last *string) squirrel.SelectBuilder {
	sel = sel.OrderBy(key).Limit(pageSize)
	if last != nil {
		sel = sel.Where(squirrel.Gt{key: *last})
	}
	return sel
}
