package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/spf13/cobra"
)

// Verbose prints the full error chain with stack traces
var Verbose = false

type Command struct {
	*cobra.Command
	runner Runner
}

type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err != nil {
			fmt.Println(Render(err))
			if Verbose {
				fmt.Fprintf(os.Stderr, "\n%+v\n", err)
			}
			os.Exit(1)
		}
	}

	return build
}

// Render returns the error box for err
func Render(err error) string {
	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		return asCliErr.RichError() + "\n"
	}
	var asMErr *merrors.Error
	if errors.As(err, &asMErr) {
		return FromError(asMErr).RichError() + "\n"
	}
	return ErrorBox(err.Error(), "")
}
