package cmd

import (
	"github.com/rlsinstaller/rls-installer/gui"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Opens the installer window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root.Logger.Debug("starting gui")
		return gui.Start(root.Config, root.Logger)
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
