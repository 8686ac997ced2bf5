package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jwalton/gchalk"
	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Sets a global config value",
		Args:  cobra.ExactArgs(2),
	}, &setRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type setRunner struct{}

func (i *setRunner) RunE(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])

	entry, ok := config[key]
	if !ok {
		return unknownKey(key)
	}
	newValue, err := parseValue(entry.kind, args[1])
	if err != nil {
		return err
	}

	previousValue := displayValue(entry, viper.Get(key))
	viper.Set(key, newValue)

	fmt.Printf(
		"Changing config entry:\n  %s: %s → %v\n",
		key,
		gchalk.Strikethrough(fmt.Sprintf("%v", previousValue)),
		gchalk.Bold(fmt.Sprintf("%v", displayValue(entry, newValue))),
	)

	target := viper.ConfigFileUsed()
	if target == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		target = filepath.Join(home, ".rls-installer.toml")
	}
	return viper.WriteConfigAs(target)
}

func parseValue(kind int, value string) (interface{}, error) {
	switch kind {
	case configKindBool:
		return parseBool(value)
	case configKindFloat:
		return strconv.ParseFloat(value, 64)
	case configKindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid duration. Use something like \"5m\" or \"90s\"")
		}
		return d.String(), nil
	default:
		return value, nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value. Use \"true\" or \"false\"")
	}
}
