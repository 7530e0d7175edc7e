package gamegeeks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("{}")
	require.NoError(t, err)

	assert.Equal(t, DefaultApplicationName, cfg.ApplicationName)
	assert.Equal(t, "Game Geeks API", cfg.Docs.Title)
	assert.Equal(t, "v1", cfg.Docs.Version)
	assert.Equal(t, DocsDescription, cfg.Docs.Description)
	assert.Equal(t, "REST API do Game Geeks", cfg.Docs.Description)
	assert.Nil(t, cfg.DatabaseConfig)
}

func TestParseConfigOverrides(t *testing.T) {
	cfg, err := ParseConfig(`{
		"application_name": "gg",
		"oauth": {"authorization_url": "https://auth.example.org/authorize", "token_url": "https://auth.example.org/token"},
		"database_config": {"max_open_conns": 5, "conn_max_lifetime": 30}
	}`)
	require.NoError(t, err)

	assert.Equal(t, "gg", cfg.ApplicationName)
	assert.Equal(t, "https://auth.example.org/authorize", cfg.OAuth.AuthorizationURL)
	assert.Equal(t, "https://auth.example.org/token", cfg.OAuth.TokenURL)
	require.NotNil(t, cfg.DatabaseConfig)
	assert.Equal(t, 5, cfg.DatabaseConfig.MaxOpenConns)
	assert.Equal(t, float64(30), cfg.DatabaseConfig.ConnMaxLifetimeDuration().Seconds())
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig("not json")
	assert.Error(t, err)

	_, err = ParseConfig(`{"server_options": {"max_body_bytes": -1}}`)
	assert.Error(t, err)
}
