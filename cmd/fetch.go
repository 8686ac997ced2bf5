package cmd

import (
	"fmt"

	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	fetchCmd := commands.New(&cobra.Command{
		Use:   "fetch <url>",
		Short: "Prints the content of a web page",
		Args:  cobra.ExactArgs(1),
	}, &fetchRunner{})

	openCmd := commands.New(&cobra.Command{
		Use:   "open <url>",
		Short: "Opens a url in the default browser",
		Args:  cobra.ExactArgs(1),
	}, &openRunner{})

	rootCmd.AddCommand(fetchCmd.Command, openCmd.Command)
}

type fetchRunner struct{}

func (f *fetchRunner) RunE(cmd *cobra.Command, args []string) error {
	body, err := root.Ops.FetchPageContent(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Print(body)
	return nil
}

type openRunner struct{}

func (o *openRunner) RunE(cmd *cobra.Command, args []string) error {
	fmt.Println("Opening", args[0])
	return root.Ops.OpenURL(args[0])
}
