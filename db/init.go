package db

import (
	"database/sql"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/go-gorp/gorp"
	"github.com/juju/errors"
	_ "github.com/lib/pq" // postgresql driver
	"github.com/loopfz/gadgeto/zesty"
	"github.com/ovh/configstore"
	"github.com/sirupsen/logrus"

	"github.com/gamegeeks/gamegeeks"
	"github.com/gamegeeks/gamegeeks/models/platform"
)

const (
	databaseCfgKey = "database"

	defaultMaxOpenConns    = 50
	defaultMaxIdleConns    = 30
	defaultConnMaxLifetime = 60 // In seconds

	connectMaxElapsedTime = 30 * time.Second
)

// ErrNotConfigured is returned by Init when the configstore
// holds no database connection string
var ErrNotConfigured = errors.New("no database configured")

type tableModel struct {
	Model   interface{}
	Name    string
	Keys    []string
	Autoinc bool
}

var schema = []tableModel{
	{platform.Platform{}, platform.TableName, []string{"id"}, false},
}

// Init reads a connection string from configstore and registers a new
// postgres DB connection in zesty, under gamegeeks.DBName
func Init(store *configstore.Store) error {
	dbConn, err := configstore.Filter().Slice(databaseCfgKey).Squash().Store(store).MustGetFirstItem().Value()
	if err != nil {
		return ErrNotConfigured
	}
	config, err := gamegeeks.Config(store)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", dbConn)
	if err != nil {
		return err
	}

	cfg := normalizeConfig(config.DatabaseConfig)
	logrus.Infof("[DatabaseConfig] Using %d max open connections, %d max idle connections, %d seconds timeout", cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := ping(db); err != nil {
		return errors.Annotate(err, "unable to reach database")
	}

	if err := zesty.RegisterDB(
		zesty.NewDB(getDbMap(db, schema)),
		gamegeeks.DBName,
	); err != nil {
		return err
	}
	return migrationChecker()
}

// ping waits for the database to accept connections, with an exponential backoff
func ping(db *sql.DB) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = connectMaxElapsedTime

	return backoff.Retry(func() error {
		err := db.Ping()
		if err != nil {
			logrus.WithError(err).Warn("database not ready")
		}
		return err
	}, b)
}

func getDbMap(db *sql.DB, schema []tableModel) *gorp.DbMap {
	dbmap := &gorp.DbMap{
		Db:      db,
		Dialect: gorp.PostgresDialect{},
	}

	for _, m := range schema {
		dbmap.AddTableWithName(m.Model, m.Name).SetKeys(m.Autoinc, m.Keys...)
	}
	return dbmap
}

func normalizeConfig(cfg *gamegeeks.DatabaseConfig) *gamegeeks.DatabaseConfig {
	if cfg == nil {
		return &gamegeeks.DatabaseConfig{
			MaxOpenConns:    defaultMaxOpenConns,
			MaxIdleConns:    defaultMaxIdleConns,
			ConnMaxLifetime: defaultConnMaxLifetime,
		}
	}
	return &gamegeeks.DatabaseConfig{
		MaxOpenConns:    normalize(cfg.MaxOpenConns, defaultMaxOpenConns),
		MaxIdleConns:    normalize(cfg.MaxIdleConns, defaultMaxIdleConns),
		ConnMaxLifetime: normalize(cfg.ConnMaxLifetime, defaultConnMaxLifetime),
	}
}

func normalize(current, fallback int) int {
	if current <= 0 {
		return fallback
	}
	return current
}
