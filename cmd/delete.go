package cmd

import (
	"path/filepath"

	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/manifoldco/promptui"
	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/rlsinstaller/rls-installer/internals/gamestate"
	"github.com/rlsinstaller/rls-installer/internals/utils"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	runner := &deleteRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "delete [file]",
		Aliases: []string{"rm", "remove"},
		Short:   "Deletes a mod archive",
		Long:    "Deletes a mod archive. Without a file you can pick one from the mods folder.",
		Args:    cobra.MaximumNArgs(1),

		ValidArgsFunction: modCompleter.ValidArgs(1),
	}, runner)

	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().StringVar(&runner.dir, "dir", "", "mods folder to pick from (default is the detected one)")

	rootCmd.AddCommand(cmd.Command)
}

type deleteRunner struct {
	yes bool
	dir string
}

func (d *deleteRunner) RunE(cmd *cobra.Command, args []string) error {
	file := ""
	if len(args) == 1 {
		file = root.resolveModFile(args[0])
	} else {
		picked, err := d.pick()
		if err != nil {
			return err
		}
		if picked == "" {
			return nil
		}
		file = picked
	}

	running, err := gamestate.New().Running(cmd.Context())
	if err != nil {
		root.Logger.Debug("could not check for a running game", "err", err)
	}
	if running {
		root.Console.Warn("BeamNG.drive is running. Files that are in use might not get deleted.")
	}

	if !d.yes {
		input := confirmation.New("Delete "+filepath.Base(file)+"?", confirmation.No)
		ok, err := input.RunPrompt()
		if !ok || err != nil {
			root.Console.Info("Aborting")
			return nil
		}
	}

	msg, err := root.Ops.DeleteMod(file)
	if err != nil {
		return err
	}
	root.Console.Success(msg)
	return nil
}

// pick lets the user select a mod from the mods folder
func (d *deleteRunner) pick() (string, error) {
	dir, err := root.modsDir(d.dir)
	if err != nil {
		return "", err
	}
	names, err := root.Ops.ScanModsFolder(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		root.Console.Info("No mods in " + dir)
		return "", nil
	}
	slices.Sort(names)

	prompt := &promptui.Select{
		Label: "Which mod should be deleted",
		Items: names,
		Size:  10,
	}
	_, name, err := utils.SelectPrompt(prompt)
	if err != nil {
		root.Console.Info("Aborting")
		return "", nil
	}
	return filepath.Join(dir, name), nil
}
