package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/jwalton/gchalk"
	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func init() {
	runner := &showRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "show",
		Aliases: []string{"list", "ls"},
		Short:   "Shows all global config values",
		Args:    cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVar(&runner.yaml, "yaml", false, "print as yaml")

	SubCmd.AddCommand(cmd.Command)
}

type showRunner struct {
	yaml bool
}

func (s *showRunner) RunE(cmd *cobra.Command, args []string) error {
	values := make(map[string]interface{}, len(config))
	for _, key := range sortedKeys() {
		values[key] = displayValue(config[key], viper.Get(key))
	}

	if s.yaml {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(values)
	}

	if file := viper.ConfigFileUsed(); file != "" {
		fmt.Println("Config file: " + file)
	}
	for _, key := range sortedKeys() {
		fmt.Printf("  %s: %v\n", gchalk.Bold(key), values[key])
		if help := config[key].help; help != "" {
			fmt.Println("    " + gchalk.Gray(help))
		}
	}
	return nil
}

func sortedKeys() []string {
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
