package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/juju/errors"
	"github.com/ovh/configstore"
)

const (
	// IdentityProviderCtxKey is the key used to store/retrieve identity data from Context
	IdentityProviderCtxKey = "__identity_provider_key"

	// BasicAuthKey is the configstore item holding a JSON map of user passwords
	BasicAuthKey = "basic-auth"

	// RemoteUserHeader carries the caller identity when no basic auth is configured
	RemoteUserHeader = "x-remote-user"
)

// Provider extracts a caller's identity from a request,
// and has discretion to deny it by returning an error
type Provider func(*http.Request) (string, error)

// WithIdentity adds identity data to a context
func WithIdentity(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, IdentityProviderCtxKey, id)
}

// GetIdentity returns identity data stored in context
func GetIdentity(ctx context.Context) string {
	id := ctx.Value(IdentityProviderCtxKey)
	if id != nil {
		return id.(string)
	}
	return ""
}

// BasicAuthProvider returns the default identity provider.
//
// If a map of user passwords is found in configstore, use them as basic auth
// check on incoming requests. Otherwise the identity is read from the
// x-remote-user header, set by an authenticating proxy.
func BasicAuthProvider(store *configstore.Store) (Provider, error) {
	authMap := map[string]string{}
	basicAuthStr, err := configstore.Filter().Slice(BasicAuthKey).Squash().Store(store).MustGetFirstItem().Value()
	if err == nil {
		userPasswords := map[string]string{}
		if err := json.Unmarshal([]byte(basicAuthStr), &userPasswords); err != nil {
			return nil, errors.Annotate(err, "failed to unmarshal basic auth configuration")
		}
		for user, pass := range userPasswords {
			authMap[basicAuthHeader(user, pass)] = user
		}
	}
	if len(authMap) > 0 {
		return func(r *http.Request) (string, error) {
			user, found := authMap[r.Header.Get("Authorization")]
			if !found {
				return "", errors.Unauthorizedf("User not found")
			}
			return user, nil
		}, nil
	}
	return RemoteUserProvider, nil
}

// RemoteUserProvider trusts the x-remote-user header
func RemoteUserProvider(r *http.Request) (string, error) {
	user := r.Header.Get(RemoteUserHeader)
	if user == "" {
		return "", errors.Unauthorizedf("Missing %s header", RemoteUserHeader)
	}
	return user, nil
}

func basicAuthHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}
