package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/commands"
	"github.com/rlsinstaller/rls-installer/internals/downloadmgr"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/spf13/cobra"
	"github.com/stoewer/go-strcase"
)

func init() {
	runner := &downloadRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "download <url> [urls...]",
		Short: "Downloads mods into the mods folder",
		Long: `Downloads mods into the mods folder.
The file name the server sends is used if there is one.`,
		Example: `
  rls-installer download https://example.com/rls_career.zip
  rls-installer download --auth --target ~/mods/patron.zip https://example.com/patron`,
		Args: cobra.MinimumNArgs(1),
	}, runner)

	cmd.Flags().StringVarP(&runner.target, "target", "t", "", "file to download to (only for a single url)")
	cmd.Flags().StringVarP(&runner.dir, "dir", "d", "", "folder to download to (default is the mods folder)")
	cmd.Flags().StringVar(&runner.modID, "mod-id", "", "mod id reported in progress events (default is derived from the file name)")
	cmd.Flags().BoolVar(&runner.auth, "auth", false, "send the stored Patreon token")
	cmd.Flags().IntVarP(&runner.parallel, "parallel", "p", 2, "how many downloads run at the same time")
	cmd.Flags().BoolVar(&runner.plain, "plain", false, "never show the interactive progress bar")

	rootCmd.AddCommand(cmd.Command)
}

type downloadRunner struct {
	target   string
	dir      string
	modID    string
	auth     bool
	parallel int
	plain    bool
}

func (d *downloadRunner) RunE(cmd *cobra.Command, args []string) error {
	if d.target != "" && len(args) > 1 {
		return &commands.CliError{
			Text: "--target can only be used with a single url",
			Help: "Use --dir to download several mods into one folder.",
		}
	}

	dir, err := root.modsDir(d.dir)
	if err != nil {
		return err
	}

	requests := make([]downloadmgr.Request, 0, len(args))
	for _, rawURL := range args {
		target, modID := targetFor(rawURL, dir, d.modID)
		if d.target != "" {
			target = d.target
		}
		requests = append(requests, downloadmgr.Request{URL: rawURL, Target: target, ModID: modID})
	}

	ctx := cmd.Context()
	if d.auth {
		return d.downloadWithAuth(ctx, requests)
	}
	if len(requests) == 1 {
		return d.downloadOne(ctx, requests[0])
	}
	return d.downloadMany(ctx, requests)
}

func (d *downloadRunner) interactive() bool {
	if d.plain {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func (d *downloadRunner) downloadOne(ctx context.Context, req downloadmgr.Request) error {
	downloader := *root.Ops.Downloader

	if d.interactive() {
		res, err := runDownloadTUI(ctx, &downloader, req)
		if err != nil {
			return err
		}
		root.Console.Success("Saved " + res.Path)
		return nil
	}

	downloader.Progress = plainProgress(root.Console.Indented(2).Info)
	root.Console.Info("Downloading " + req.URL)
	res, err := downloader.Download(ctx, req)
	if err != nil {
		return err
	}
	root.Console.Success("Saved " + res.Path)
	return nil
}

func (d *downloadRunner) downloadMany(ctx context.Context, requests []downloadmgr.Request) error {
	queue := downloadmgr.NewQueue(root.Ops.Downloader, d.parallel)
	for _, req := range requests {
		queue.Add(req)
	}
	queue.OnDone = func(req downloadmgr.Request, res *downloadmgr.Result, err error) {
		if err != nil {
			root.Console.Warn(fmt.Sprintf("%s failed: %s", req.URL, err))
			return
		}
		root.Console.Success("Saved " + res.Path)
	}

	root.Console.Headline(fmt.Sprintf("Downloading %d mods", len(requests)))
	_, err := queue.Start(ctx)
	return err
}

func (d *downloadRunner) downloadWithAuth(ctx context.Context, requests []downloadmgr.Request) error {
	creds, err := root.credentials()
	if err != nil {
		return err
	}
	token := creds.AccessToken()
	if token == "" {
		return &commands.CliError{
			Text: "You are not logged in",
			Help: "Run `rls-installer login` first.",
		}
	}

	for _, req := range requests {
		s := cmdlog.NewMaybeSpinner(d.interactive())
		s.Start("Downloading " + req.URL)
		res, err := root.Ops.DownloadModWithAuth(ctx, req.URL, req.Target, token)
		s.Stop()
		if err != nil {
			if merrors.Is(err, merrors.KindNetwork) && strings.Contains(err.Error(), "401") {
				return &commands.CliError{Text: err.Error(), Suggestions: []string{"Your login might have expired. Run `rls-installer login` again."}}
			}
			return err
		}
		msg := "Saved " + res.Path
		if res.Filename != nil {
			msg += " (server name: " + *res.Filename + ")"
		}
		root.Console.Success(msg)
	}
	return nil
}

// plainProgress prints a line every 10 percent
func plainProgress(println func(string)) downloadmgr.ProgressSink {
	lastDecile := -1
	return downloadmgr.ProgressFunc(func(e downloadmgr.ProgressEvent) error {
		if e.Progress == nil || e.Total == nil {
			return nil
		}
		decile := int(*e.Progress) / 10
		if decile == lastDecile {
			return nil
		}
		lastDecile = decile
		println(fmt.Sprintf("%3d%% %s / %s", *e.Progress, humanize.Bytes(e.Downloaded), humanize.Bytes(*e.Total)))
		return nil
	})
}

// targetFor returns the download target inside dir and the mod id for rawURL.
// The file name is taken from the url path; if that does not look like an
// archive the mod id is used instead.
func targetFor(rawURL string, dir string, modID string) (string, string) {
	name := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		name = path.Base(parsed.Path)
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = ""
	}

	isArchive := strings.EqualFold(filepath.Ext(name), ".zip")
	if modID == "" {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		modID = strcase.SnakeCase(base)
	}
	if modID == "" {
		modID = "mod"
	}
	if !isArchive {
		name = modID + ".zip"
	}
	return filepath.Join(dir, name), modID
}
