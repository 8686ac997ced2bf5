package config

import (
	"fmt"
	"strings"

	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get <key>",
		Short: "Gets a global config value",
		Args:  cobra.ExactArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])

	entry, ok := config[key]
	if !ok {
		return unknownKey(key)
	}

	fmt.Println("Printing config entry:")
	fmt.Printf("  %s: %v\n", key, displayValue(entry, viper.Get(key)))

	return nil
}

func unknownKey(key string) error {
	return &commands.CliError{
		Text:        fmt.Sprintf("config key \"%s\" does not exist", key),
		Suggestions: sortedKeys(),
	}
}

func displayValue(entry configEntry, value interface{}) interface{} {
	if value == nil || value == "" {
		return "(unset)"
	}
	if entry.secret {
		return "(hidden)"
	}
	return value
}
