package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/spf13/cobra"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Reads and writes the installed mods manifest",
}

func init() {
	pathCmd := commands.New(&cobra.Command{
		Use:   "path",
		Short: "Prints where the manifest is stored",
		Args:  cobra.NoArgs,
	}, &manifestPathRunner{})

	readCmd := commands.New(&cobra.Command{
		Use:   "read [file]",
		Short: "Prints the manifest",
		Args:  cobra.MaximumNArgs(1),
	}, &manifestReadRunner{})

	saveRunner := &manifestSaveRunner{}
	saveCmd := commands.New(&cobra.Command{
		Use:   "save [file]",
		Short: "Replaces the manifest with the content read from stdin",
		Args:  cobra.MaximumNArgs(1),
	}, saveRunner)
	saveCmd.Flags().StringVarP(&saveRunner.from, "from", "f", "", "read the content from this file instead of stdin")

	manifestCmd.AddCommand(pathCmd.Command, readCmd.Command, saveCmd.Command)
	rootCmd.AddCommand(manifestCmd)
}

// manifestFile returns the file given as argument or the default manifest path
func manifestFile(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return root.Ops.ManifestPath()
}

type manifestPathRunner struct{}

func (m *manifestPathRunner) RunE(cmd *cobra.Command, args []string) error {
	path, err := root.Ops.ManifestPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

type manifestReadRunner struct{}

func (m *manifestReadRunner) RunE(cmd *cobra.Command, args []string) error {
	path, err := manifestFile(args)
	if err != nil {
		return err
	}
	content, err := root.Ops.ReadManifest(path)
	if err != nil {
		return err
	}
	fmt.Print(content)
	return nil
}

type manifestSaveRunner struct {
	from string
}

func (m *manifestSaveRunner) RunE(cmd *cobra.Command, args []string) error {
	path, err := manifestFile(args)
	if err != nil {
		return err
	}

	var content []byte
	if m.from != "" {
		content, err = os.ReadFile(m.from)
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	if err := root.Ops.SaveManifest(path, string(content)); err != nil {
		return err
	}
	root.Console.Success("Saved manifest to " + path)
	return nil
}
