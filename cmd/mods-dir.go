package cmd

import (
	"fmt"

	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	runner := &modsDirRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "mods-dir",
		Aliases: []string{"path"},
		Short:   "Prints the BeamNG.drive mods folder",
		Args:    cobra.NoArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type modsDirRunner struct{}

func (m *modsDirRunner) RunE(cmd *cobra.Command, args []string) error {
	dir, err := root.Ops.DetectModsPath()
	if err != nil {
		return err
	}
	fmt.Println(dir)
	return nil
}
