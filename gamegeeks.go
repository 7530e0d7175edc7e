package gamegeeks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ovh/configstore"
)

var (
	// Version holds the tag of current Game Geeks API release
	Version string
	// Commit is the current git commit hash
	Commit string
	// App name (from configuration)
	App string

	// FPort is the port on which the http server listens
	FPort uint
	// FDebug is a flag to toggle debug log
	FDebug bool
	// FLogsFormat represents the format used by the Logrus formatter.
	FLogsFormat string
)

// AppName returns the name of the application (from config)
func AppName() string { return App }

const (
	// DBName is the name of the platform DB, as registered on zesty
	DBName = "gamegeeks"

	// MaxPageSize is the upper limit for the number of elements returned in a single page
	MaxPageSize = 500
	// DefaultPageSize is the default number of elements returned in a single page
	DefaultPageSize = 50
	// MinPageSize is the lower limit for the number of elements returned in a single page
	MinPageSize = 10

	// CfgSecretAlias is the key for the config item containing global configuration data
	CfgSecretAlias = "gamegeeks-cfg"

	// DefaultApplicationName is used when the configuration does not name the service
	DefaultApplicationName = "gamegeeks-api"

	// DocsTitle is the title of the generated API document
	DocsTitle = "Game Geeks API"
	// DocsVersion is the version advertised in the generated API document
	DocsVersion = "v1"
	// DocsDescription is the description of the generated API document
	DocsDescription = "REST API do Game Geeks"
)

// Cfg holds global configuration data
type Cfg struct {
	ApplicationName string          `json:"application_name"`
	Docs            DocsConfig      `json:"docs"`
	OAuth           OAuthConfig     `json:"oauth"`
	DatabaseConfig  *DatabaseConfig `json:"database_config"`
	ServerOptions   ServerOpt       `json:"server_options"`
}

// DocsConfig overrides the metadata of the generated API document
type DocsConfig struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// OAuthConfig holds the endpoints advertised by the documented
// client-credentials security scheme
type OAuthConfig struct {
	AuthorizationURL string            `json:"authorization_url"`
	TokenURL         string            `json:"token_url"`
	Scopes           map[string]string `json:"scopes"`
}

// ServerOpt holds the configuration for the http server
type ServerOpt struct {
	MaxBodyBytes int64 `json:"max_body_bytes"`
}

// DatabaseConfig holds configuration to fine-tune DB connection
type DatabaseConfig struct {
	MaxOpenConns    int `json:"max_open_conns"`
	MaxIdleConns    int `json:"max_idle_conns"`
	ConnMaxLifetime int `json:"conn_max_lifetime"`
}

// ConnMaxLifetimeDuration returns the configured connection lifetime as a duration
func (c *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(c.ConnMaxLifetime) * time.Second
}

var global *Cfg

// Config returns the global configuration data of this instance
// once lazy-loaded from configstore
func Config(store *configstore.Store) (*Cfg, error) {
	if global == nil {
		cfgStr, err := configstore.Filter().Slice(CfgSecretAlias).Squash().Store(store).MustGetFirstItem().Value()
		if err != nil {
			// the configuration item is optional, every field has a default
			cfgStr = "{}"
		}
		cfg, err := ParseConfig(cfgStr)
		if err != nil {
			return nil, err
		}
		global = cfg
		App = global.ApplicationName
	}
	return global, nil
}

// ParseConfig unmarshals a JSON configuration and fills in the defaults
func ParseConfig(s string) (*Cfg, error) {
	cfg := &Cfg{}
	if err := json.Unmarshal([]byte(s), cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gamegeeks configuration: %s", err)
	}
	if cfg.ApplicationName == "" {
		cfg.ApplicationName = DefaultApplicationName
	}
	if cfg.Docs.Title == "" {
		cfg.Docs.Title = DocsTitle
	}
	if cfg.Docs.Version == "" {
		cfg.Docs.Version = DocsVersion
	}
	if cfg.Docs.Description == "" {
		cfg.Docs.Description = DocsDescription
	}
	if cfg.ServerOptions.MaxBodyBytes < 0 {
		return nil, fmt.Errorf("invalid \"server_options.max_body_bytes\": %d", cfg.ServerOptions.MaxBodyBytes)
	}
	return cfg, nil
}
