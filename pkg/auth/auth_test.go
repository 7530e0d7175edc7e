package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juju/errors"
	"github.com/ovh/configstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamegeeks/gamegeeks/pkg/auth"
)

func storeWith(items ...configstore.Item) *configstore.Store {
	store := configstore.NewStore()
	store.RegisterProvider("test", func() (configstore.ItemList, error) {
		return configstore.ItemList{Items: items}, nil
	})
	return store
}

func TestIdentity(t *testing.T) {
	ctx := auth.WithIdentity(context.Background(), "mario")
	assert.Equal(t, "mario", auth.GetIdentity(ctx))
	assert.Equal(t, "", auth.GetIdentity(context.Background()))
}

func TestBasicAuthProvider(t *testing.T) {
	provider, err := auth.BasicAuthProvider(storeWith(
		configstore.NewItem(auth.BasicAuthKey, `{"mario":"itsame"}`, 1),
	))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/platforms", nil)
	req.SetBasicAuth("mario", "itsame")
	user, err := provider(req)
	require.NoError(t, err)
	assert.Equal(t, "mario", user)

	req.SetBasicAuth("mario", "luigi")
	_, err = provider(req)
	assert.True(t, errors.IsUnauthorized(err))

	// the remote user header is ignored once basic auth is configured
	req = httptest.NewRequest(http.MethodGet, "/v1/platforms", nil)
	req.Header.Set(auth.RemoteUserHeader, "mario")
	_, err = provider(req)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestBasicAuthProviderInvalidConfig(t *testing.T) {
	_, err := auth.BasicAuthProvider(storeWith(
		configstore.NewItem(auth.BasicAuthKey, `["mario"]`, 1),
	))
	assert.Error(t, err)
}

func TestRemoteUserFallback(t *testing.T) {
	provider, err := auth.BasicAuthProvider(storeWith())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/platforms", nil)
	_, err = provider(req)
	assert.True(t, errors.IsUnauthorized(err))

	req.Header.Set(auth.RemoteUserHeader, "luigi")
	user, err := provider(req)
	require.NoError(t, err)
	assert.Equal(t, "luigi", user)
}
