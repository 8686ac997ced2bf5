package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/rlsinstaller/rls-installer/internals/modarchive"
	"github.com/spf13/cobra"
)

func init() {
	runner := &inspectRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "inspect <file>",
		Short: "Shows what a mod archive contains",
		Args:  cobra.ExactArgs(1),

		ValidArgsFunction: modCompleter.ValidArgs(1),
	}, runner)

	cmd.Flags().BoolVar(&runner.files, "files", false, "list every file")

	rootCmd.AddCommand(cmd.Command)
}

type inspectRunner struct {
	files bool
}

func (i *inspectRunner) RunE(cmd *cobra.Command, args []string) error {
	file := root.resolveModFile(args[0])
	info, err := modarchive.Inspect(file)
	if err != nil {
		return err
	}

	root.Console.Headline(file)
	out := root.Console.Indented(2)
	out.Info(fmt.Sprintf("Files:    %s (%s uncompressed)", humanize.Comma(int64(len(info.Files))), humanize.Bytes(info.TotalSize)))
	if len(info.Kinds) != 0 {
		out.Info("Contains: " + highlight(strings.Join(info.Kinds, ", ")))
	} else {
		out.Warn("No vehicles, levels or scripts found. This might not be a BeamNG.drive mod.")
	}
	if info.ModInfo != "" {
		out.Info("Mod info: " + info.ModInfo)
	}

	if i.files {
		for _, f := range info.Files {
			out.Indented(2).Info(fmt.Sprintf("%-64s %10s", f.Name, humanize.Bytes(uint64(f.Size))))
		}
	}
	return nil
}
