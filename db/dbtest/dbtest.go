// Package dbtest gives tests access to the postgres platform store, when the
// environment configures a database the same way the service reads it
// (configstore, CONFIGURATION_FROM).
package dbtest

import (
	"sync"
	"testing"

	"github.com/loopfz/gadgeto/zesty"
	"github.com/ovh/configstore"
	"github.com/stretchr/testify/require"

	"github.com/gamegeeks/gamegeeks"
	"github.com/gamegeeks/gamegeeks/db"
	"github.com/gamegeeks/gamegeeks/models/platform"
)

var (
	initOnce sync.Once
	dbp      zesty.DBProvider
	initErr  error
)

func initDB() {
	store := configstore.NewStore()
	store.InitFromEnvironment()

	if initErr = db.Init(store); initErr != nil {
		return
	}
	dbp, initErr = zesty.NewDBProvider(gamegeeks.DBName)
}

// PlatformStore returns an empty postgres platform store.
// The test is skipped when no database is configured.
func PlatformStore(t *testing.T) *platform.SQLStore {
	t.Helper()

	initOnce.Do(initDB)
	if initErr == db.ErrNotConfigured {
		t.Skip("no database configured")
	}
	require.NoError(t, initErr)

	_, err := dbp.DB().Exec(`DELETE FROM "platform"`)
	require.NoError(t, err)
	return platform.NewSQLStore(dbp)
}
