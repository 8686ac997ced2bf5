package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	runner := &listRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "list [dir]",
		Aliases: []string{"ls"},
		Short:   "Lists the mod archives in the mods folder",
		Args:    cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().BoolVarP(&runner.long, "long", "l", false, "show size and modification time")

	rootCmd.AddCommand(cmd.Command)
}

type listRunner struct {
	long bool
}

func (l *listRunner) RunE(cmd *cobra.Command, args []string) error {
	dirArg := ""
	if len(args) == 1 {
		dirArg = args[0]
	}
	dir, err := root.modsDir(dirArg)
	if err != nil {
		return err
	}

	names, err := root.Ops.ScanModsFolder(dir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		root.Console.Info("No mods in " + dir)
		return nil
	}
	slices.Sort(names)

	root.Console.Headline(fmt.Sprintf("%d mods in %s", len(names), dir))
	out := root.Console.Indented(2)
	var total uint64
	for _, name := range names {
		if !l.long {
			out.Info(name)
			continue
		}
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			out.Info(name)
			continue
		}
		total += uint64(info.Size())
		out.Info(fmt.Sprintf("%-48s %10s  %s", name, humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime())))
	}
	if l.long {
		root.Console.Info("Total " + humanize.Bytes(total))
	}
	return nil
}
