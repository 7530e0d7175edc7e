package platform

import (
	"testing"

	"github.com/maxatome/go-testdeep/td"
)

func TestListQuery(t *testing.T) {
	query, params, err := listQuery(50, nil).ToSql()
	td.CmpNoError(t, err)
	td.Cmp(t, query, `SELECT "platform".id, "platform".name, "platform".description FROM "platform" ORDER BY "platform".id LIMIT 50`)
	td.CmpEmpty(t, params)

	last := "6362927a289959266849759a"
	query, params, err = listQuery(10, &last).ToSql()
	td.CmpNoError(t, err)
	td.Cmp(t, query, `SELECT "platform".id, "platform".name, "platform".description FROM "platform" WHERE "platform".id > $1 ORDER BY "platform".id LIMIT 10`)
	td.Cmp(t, params, []interface{}{last})
}

func TestCountQuery(t *testing.T) {
	query, _, err := countQuery.ToSql()
	td.CmpNoError(t, err)
	td.Cmp(t, query, `SELECT count(*) FROM "platform"`)
}
