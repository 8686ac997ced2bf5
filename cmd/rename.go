package cmd

import (
	"path/filepath"

	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "rename <old> <new>",
		Aliases: []string{"mv"},
		Short:   "Renames a mod file",
		Args:    cobra.ExactArgs(2),

		ValidArgsFunction: modCompleter.ValidArgs(1),
	}, &renameRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type renameRunner struct{}

func (r *renameRunner) RunE(cmd *cobra.Command, args []string) error {
	oldPath := root.resolveModFile(args[0])
	newPath := args[1]
	// a bare new name stays in the same folder
	if filepath.Base(newPath) == newPath {
		newPath = filepath.Join(filepath.Dir(oldPath), newPath)
	}
	if err := root.Ops.RenameFile(oldPath, newPath); err != nil {
		return err
	}
	root.Console.Success("Renamed " + oldPath + " to " + newPath)
	return nil
}
