package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	runner := &loginRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "login",
		Aliases: []string{"signin"},
		Short:   "Sign in with Patreon to download patron mods",
		Args:    cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVar(&runner.force, "force", false, "Always try to open the browser for login")
	cmd.Flags().BoolVar(&runner.printToken, "print-token", false, "Print the access token after login")

	logoutCmd := commands.New(&cobra.Command{
		Use:     "logout",
		Aliases: []string{"signout"},
		Short:   "Removes the stored Patreon token",
		Args:    cobra.NoArgs,
	}, &logoutRunner{})

	rootCmd.AddCommand(cmd.Command, logoutCmd.Command)
}

type loginRunner struct {
	force      bool
	printToken bool
}

func (l *loginRunner) RunE(cmd *cobra.Command, args []string) error {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !l.force && !tty {
		fmt.Println("This seems to be a server. You can not login without a browser.")
		fmt.Println("You can add --force if you want to try to open a browser nonetheless")
		os.Exit(1)
	}

	creds, err := root.credentials()
	if err != nil {
		return err
	}

	root.Console.Info("Trying to sign in with Patreon now …")
	root.Console.Info("A browser window should open. Sign in there and click allow to continue.")

	s := cmdlog.NewMaybeSpinner(tty)
	s.Start("Waiting for the browser")
	session := root.Ops.LoginSession()
	token, err := session.Login(cmd.Context())
	s.Stop()
	if err != nil {
		return err
	}
	root.Logger.Debug("login finished", "state", session.State(), "expires", token.Expiry)

	if err := creds.SetPatreonAuth(token); err != nil {
		return err
	}
	root.Console.Success("Login successful. Patron mods can now be downloaded with `download --auth`.")
	if l.printToken {
		fmt.Println(token.AccessToken)
	}
	return nil
}

type logoutRunner struct{}

func (l *logoutRunner) RunE(cmd *cobra.Command, args []string) error {
	creds, err := root.credentials()
	if err != nil {
		return err
	}
	if creds.AccessToken() == "" {
		root.Console.Info("You are not logged in")
		return nil
	}
	if err := creds.Clear(); err != nil {
		return err
	}
	root.Console.Success("Logged out")
	return nil
}
