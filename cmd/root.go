package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/jwalton/gchalk"
	"github.com/rlsinstaller/rls-installer/cmd/config"
	"github.com/rlsinstaller/rls-installer/internals/autocomplete"
	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/commands"
	appconfig "github.com/rlsinstaller/rls-installer/internals/config"
	"github.com/rlsinstaller/rls-installer/internals/credentials"
	"github.com/rlsinstaller/rls-installer/internals/facade"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set by the build
	Version = "dev"
	// Commit is set by the build
	Commit string
	// RemoteModsJSONURL is the mods.json url baked in at build time
	RemoteModsJSONURL string
)

// Root holds everything the commands share
type Root struct {
	cfgFile       string
	verbose       bool
	disableColors bool
	globalDir     string

	Config  *appconfig.Config
	Logger  *log.Logger
	Console *cmdlog.Console
	Ops     *facade.Operations
	creds   *credentials.Store
}

var root = &Root{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rls-installer",
	Short: "Installs and updates RLS mods for BeamNG.drive",
	Long:  "Installs and updates RLS mods for BeamNG.drive.\nRun without a command to open the installer window.",
	Example: `
  rls-installer
  rls-installer list
  rls-installer download https://example.com/rls_career.zip
  rls-installer login`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return guiCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if Commit != "" {
		rootCmd.Version += " (" + Commit + ")"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(commands.Render(err))
		if root.verbose {
			fmt.Fprintf(os.Stderr, "\n%+v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(root.initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&root.cfgFile, "config", "", "config file (default is $HOME/.rls-installer.toml)")
	rootCmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "print debug output and stack traces")
	rootCmd.PersistentFlags().BoolVarP(&root.disableColors, "no-color", "", false, "disable color output")
	viper.BindPFlag(appconfig.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(config.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func (r *Root) initConfig() {
	appconfig.SetDefaults(viper.GetViper())

	if r.cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(r.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		r.globalDir = filepath.Join(home, ".rls-installer")

		// Search config in home directory with name ".rls-installer" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".rls-installer")
	}

	viper.SetEnvPrefix("RLS")
	viper.AutomaticEnv() // read in environment variables that match

	r.Console = cmdlog.NewConsole()
	if r.disableColors {
		r.Console.DisableColors()
		commands.EmojiEnabled = false
	}

	// If a config file is found, read it in.
	configErr := viper.ReadInConfig()

	r.Config = appconfig.FromViper(viper.GetViper(), RemoteModsJSONURL)
	r.Logger = cmdlog.New(os.Stderr, r.Config.Verbose)
	commands.Verbose = r.Config.Verbose
	if configErr == nil {
		r.Logger.Debug("using config file", "file", viper.ConfigFileUsed())
	}

	r.Ops = facade.New(r.Config, facade.Options{Logger: r.Logger})
}

// credentials loads the credential store on first use
func (r *Root) credentials() (*credentials.Store, error) {
	if r.creds != nil {
		return r.creds, nil
	}
	dir := r.globalDir
	if dir == "" {
		dir = filepath.Dir(viper.ConfigFileUsed())
	}
	store, err := credentials.New(dir)
	if err != nil {
		return nil, err
	}
	if store.NoKeyRingMode {
		r.Logger.Warn("no system keyring available, credentials are stored in a file", "dir", dir)
	}
	r.creds = store
	return store, nil
}

// modsDir returns dir or the detected mods folder if dir is empty
func (r *Root) modsDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return r.Ops.DetectModsPath()
}

func highlight(s string) string {
	return gchalk.Bold(s)
}

// modCompleter completes mod file names from the detected mods folder
var modCompleter = &autocomplete.ModCompleter{
	Dir: func() (string, error) {
		if root.Ops == nil {
			root.initConfig()
		}
		return root.modsDir("")
	},
	Scan: func(dir string) ([]string, error) { return root.Ops.ScanModsFolder(dir) },
}

// resolveModFile treats a bare file name that does not exist in the
// working directory as a file in the mods folder
func (r *Root) resolveModFile(arg string) string {
	if filepath.Base(arg) != arg {
		return arg
	}
	if _, err := os.Stat(arg); err == nil {
		return arg
	}
	dir, err := r.modsDir("")
	if err != nil {
		return arg
	}
	return filepath.Join(dir, arg)
}
