package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestFromViperReadsEnvironment(t *testing.T) {
	t.Setenv("LOCALAPPDATA", "/tmp/appdata")
	t.Setenv("PATREON_CLIENT_ID", "id")
	t.Setenv("PATREON_CLIENT_SECRET", "secret")
	t.Setenv("REMOTE_MODS_JSON_URL", "")

	cfg := FromViper(newViper(t), "")

	if cfg.LocalAppData != "/tmp/appdata" {
		t.Errorf("LocalAppData = %q", cfg.LocalAppData)
	}
	if cfg.PatreonClientID != "id" || cfg.PatreonClientSecret != "secret" {
		t.Errorf("patreon credentials not read: %q / %q", cfg.PatreonClientID, cfg.PatreonClientSecret)
	}
	if cfg.LoginAddr != DefaultLoginAddr || cfg.RedirectURL != DefaultRedirectURL {
		t.Errorf("unexpected login defaults: %q %q", cfg.LoginAddr, cfg.RedirectURL)
	}
	if cfg.LoginTimeout != DefaultLoginTimeout {
		t.Errorf("LoginTimeout = %s", cfg.LoginTimeout)
	}
	if cfg.UserAgent == "" {
		t.Error("UserAgent should default to the browser user agent")
	}
}

func TestCustomLoginAddrDropsRedirect(t *testing.T) {
	v := newViper(t)
	v.Set(KeyLoginAddr, "127.0.0.1:0")
	v.Set(KeyLoginTimeout, 2*time.Second)

	cfg := FromViper(v, "")
	if cfg.RedirectURL != "" {
		t.Errorf("RedirectURL = %q, want it derived from the listener", cfg.RedirectURL)
	}
	if cfg.LoginTimeout != 2*time.Second {
		t.Errorf("LoginTimeout = %s", cfg.LoginTimeout)
	}
}

func TestBackendPriority(t *testing.T) {
	tests := []struct {
		name    string
		runtime string
		build   string
		want    string
	}{
		{"runtime wins", "https://runtime/mods.json", "https://build/mods.json", "https://runtime/mods.json"},
		{"build fallback", "", "https://build/mods.json", "https://build/mods.json"},
		{"bundled default", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REMOTE_MODS_JSON_URL", tt.runtime)
			cfg := FromViper(newViper(t), tt.build)
			if got := cfg.Backend().RemoteModsJSONURL; got != tt.want {
				t.Errorf("Backend() = %q, want %q", got, tt.want)
			}
		})
	}
}
