package config

import (
	appconfig "github.com/rlsinstaller/rls-installer/internals/config"
	"github.com/spf13/cobra"
)

const (
	configKindString = iota
	configKindBool
	configKindFloat
	configKindDuration
)

type configEntry struct {
	kind   int
	help   string
	secret bool
}

var config = map[string]configEntry{
	appconfig.KeyLoginTimeout:        {configKindDuration, "how long login waits for the browser", false},
	appconfig.KeyLoginAddr:           {configKindString, "local address the login redirect is received on", false},
	appconfig.KeyFetchRateLimit:      {configKindFloat, "page fetches per second (0 is unlimited)", false},
	appconfig.KeyRemoteModsJSONURL:   {configKindString, "url of the mods.json the installer shows", false},
	appconfig.KeyPatreonClientID:     {configKindString, "Patreon OAuth client id", false},
	appconfig.KeyPatreonClientSecret: {configKindString, "Patreon OAuth client secret", true},
	appconfig.KeyVerbose:             {configKindBool, "print debug output", false},
}

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}
