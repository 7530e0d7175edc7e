package db

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/loopfz/gadgeto/zesty"

	"github.com/gamegeeks/gamegeeks"
	"github.com/gamegeeks/gamegeeks/db/sqlgenerator"
)

const (
	expectedVersion = "v1.0.0-migration001"
)

var (
	baseQuery = sqlgenerator.PGsql.Select(
		`"gamegeeks_sql_migrations".current_migration_applied`,
	).From(
		`"gamegeeks_sql_migrations"`,
	)
)

// migrationChecker makes sure that the latest SQL migration (see sql/) was applied,
// otherwise the service refuses to start on an incompatible schema.
func migrationChecker() error {
	dbp, err := zesty.NewDBProvider(gamegeeks.DBName)
	if err != nil {
		return err
	}

	query, params, err := baseQuery.Where(
		squirrel.Eq{`"gamegeeks_sql_migrations".current_migration_applied`: expectedVersion},
	).Limit(1).ToSql()
	if err != nil {
		return err
	}

	var version string
	err = dbp.DB().QueryRow(query, params...).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		last, _ := lastKnownVersion(dbp)
		if last == "" {
			return fmt.Errorf("unable to start: migration table is empty, can't determine which SQL migration were already applied")
		}
		return fmt.Errorf("unable to start: SQL database doesn't contain the latest SQL migration (%s), last applied: %s", expectedVersion, last)
	case err != nil:
		return fmt.Errorf("unable to start: can't fetch latest SQL migration: %s", err)
	}
	return nil
}

func lastKnownVersion(dbp zesty.DBProvider) (string, error) {
	query, params, err := baseQuery.OrderBy("current_migration_applied DESC").Limit(1).ToSql()
	if err != nil {
		return "", err
	}

	var version string
	if err := dbp.DB().QueryRow(query, params...).Scan(&version); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return version, nil
}
