// Package config holds everything the operations read from the environment.
// It is built once at startup and passed down explicitly.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rlsinstaller/rls-installer/internals/ownhttp"
	"github.com/spf13/viper"
)

const (
	// ManifestFileName is the name of the manifest file, both in the data dir and next to the executable
	ManifestFileName = "mod_manifest.json"
	// AppDirName is the per-user data directory below LOCALAPPDATA
	AppDirName = "RLS Installer"
	// DefaultLoginAddr is the loopback address the OAuth redirect is received on
	DefaultLoginAddr = "127.0.0.1:31415"
	// DefaultRedirectURL has to match the redirect registered with Patreon
	DefaultRedirectURL = "http://localhost:31415"
	// DefaultLoginTimeout is how long login waits for the browser redirect
	DefaultLoginTimeout = 5 * time.Minute
	// DownloadTimeout is the request timeout for mod downloads
	DownloadTimeout = 60 * time.Second
	// FetchTimeout is the request timeout for page fetches
	FetchTimeout = 10 * time.Second
)

// ModsSubpath is the game's mod folder relative to LOCALAPPDATA
var ModsSubpath = []string{"BeamNG", "BeamNG.drive", "current", "mods"}

// viper keys
const (
	KeyLocalAppData        = "localappdata"
	KeyPatreonClientID     = "patreon.client_id"
	KeyPatreonClientSecret = "patreon.client_secret"
	KeyRemoteModsJSONURL   = "remote_mods_json_url"
	KeyLoginTimeout        = "login.timeout"
	KeyLoginAddr           = "login.addr"
	KeyFetchRateLimit      = "fetch.rate_limit"
	KeyVerbose             = "verbose"
)

// Config is the resolved configuration
type Config struct {
	// LocalAppData is the per-user application data root (LOCALAPPDATA)
	LocalAppData string
	// ExecutableDir is the directory of the running binary. Older versions kept the manifest there.
	ExecutableDir string

	PatreonClientID     string
	PatreonClientSecret string
	LoginAddr           string
	RedirectURL         string
	LoginTimeout        time.Duration

	// RemoteModsJSONURL is the runtime override (REMOTE_MODS_JSON_URL)
	RemoteModsJSONURL string
	// BuildRemoteModsJSONURL is baked in at build time
	BuildRemoteModsJSONURL string

	UserAgent string
	// FetchRateLimit limits page fetches to n requests per second. 0 means unlimited.
	FetchRateLimit float64

	Verbose bool
}

// BackendConfig is what the front end gets to see
type BackendConfig struct {
	RemoteModsJSONURL string `json:"remote_mods_json_url" yaml:"remote_mods_json_url"`
}

// Backend resolves the remote mods.json url: runtime override first, then the
// build time value. An empty string tells the front end to use its bundled copy.
func (c *Config) Backend() BackendConfig {
	url := c.RemoteModsJSONURL
	if url == "" {
		url = c.BuildRemoteModsJSONURL
	}
	return BackendConfig{RemoteModsJSONURL: url}
}

// SetDefaults registers defaults and environment bindings on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLoginTimeout, DefaultLoginTimeout)
	v.SetDefault(KeyLoginAddr, DefaultLoginAddr)
	v.SetDefault(KeyFetchRateLimit, 0)

	// these do not follow the key naming, so AutomaticEnv will not find them
	v.BindEnv(KeyLocalAppData, "LOCALAPPDATA")
	v.BindEnv(KeyPatreonClientID, "PATREON_CLIENT_ID")
	v.BindEnv(KeyPatreonClientSecret, "PATREON_CLIENT_SECRET")
	v.BindEnv(KeyRemoteModsJSONURL, "REMOTE_MODS_JSON_URL")
}

// FromViper builds the Config. buildRemoteURL is the value set at build time (may be empty).
func FromViper(v *viper.Viper, buildRemoteURL string) *Config {
	cfg := &Config{
		LocalAppData:           v.GetString(KeyLocalAppData),
		PatreonClientID:        v.GetString(KeyPatreonClientID),
		PatreonClientSecret:    v.GetString(KeyPatreonClientSecret),
		LoginAddr:              v.GetString(KeyLoginAddr),
		RedirectURL:            DefaultRedirectURL,
		LoginTimeout:           v.GetDuration(KeyLoginTimeout),
		RemoteModsJSONURL:      v.GetString(KeyRemoteModsJSONURL),
		BuildRemoteModsJSONURL: buildRemoteURL,
		UserAgent:              ownhttp.DefaultUserAgent,
		FetchRateLimit:         v.GetFloat64(KeyFetchRateLimit),
		Verbose:                v.GetBool(KeyVerbose),
	}

	// a custom listen address means the default redirect does not point to us anymore
	if cfg.LoginAddr != DefaultLoginAddr {
		cfg.RedirectURL = ""
	}
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = DefaultLoginTimeout
	}

	if exe, err := os.Executable(); err == nil {
		cfg.ExecutableDir = filepath.Dir(exe)
	}

	return cfg
}
