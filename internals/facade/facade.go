// Package facade exposes every operation the front end can call. Results are
// structured, errors are *merrors.Error. Flattening into strings happens at the
// boundary (the desktop binding or the CLI).
package facade

import (
	"context"

	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/config"
	"github.com/rlsinstaller/rls-installer/internals/downloadmgr"
	"github.com/rlsinstaller/rls-installer/internals/manifest"
	"github.com/rlsinstaller/rls-installer/internals/modfiles"
	"github.com/rlsinstaller/rls-installer/internals/ownhttp"
	"github.com/rlsinstaller/rls-installer/internals/pagefetch"
	"github.com/rlsinstaller/rls-installer/internals/paths"
	"github.com/rlsinstaller/rls-installer/internals/patreon"
	"github.com/rlsinstaller/rls-installer/internals/utils"
)

// Operations holds the collaborators of all operations. It has no mutable
// state of its own, calls may run concurrently.
type Operations struct {
	Config     *config.Config
	Logger     cmdlog.Logger
	Opener     utils.Opener
	Paths      *paths.Resolver
	Files      *modfiles.Manager
	Manifests  *manifest.Store
	Downloader *downloadmgr.Downloader
	Fetcher    *pagefetch.Fetcher
}

// Options are the injectable parts of New. Zero values get defaults.
type Options struct {
	Logger   cmdlog.Logger
	Progress downloadmgr.ProgressSink
	Opener   utils.Opener
}

// New wires all operations to cfg
func New(cfg *config.Config, opts Options) *Operations {
	logger := cmdlog.OrDiscard(opts.Logger)
	opener := opts.Opener
	if opener == nil {
		opener = utils.NewBrowserOpener(true)
	}

	downloader := downloadmgr.New(opts.Progress, logger)
	if cfg.UserAgent != "" {
		downloader.Client = ownhttp.New(cfg.UserAgent, config.DownloadTimeout)
	}

	return &Operations{
		Config:     cfg,
		Logger:     logger,
		Opener:     opener,
		Paths:      paths.NewResolver(cfg, logger),
		Files:      modfiles.New(logger),
		Manifests:  manifest.New(),
		Downloader: downloader,
		Fetcher:    pagefetch.New(cfg.UserAgent, cfg.FetchRateLimit, logger),
	}
}

// DetectModsPath returns the game's mods folder
func (o *Operations) DetectModsPath() (string, error) {
	return paths.ModsDir(o.Config)
}

// DeleteMod deletes the archive at path and returns a status message
func (o *Operations) DeleteMod(path string) (string, error) {
	outcome, err := o.Files.Delete(path)
	if err != nil {
		return "", err
	}
	return outcome.Message(path), nil
}

// DownloadMod downloads url next to target, reporting progress for modID
func (o *Operations) DownloadMod(ctx context.Context, url, target, modID string) (*downloadmgr.Result, error) {
	return o.Downloader.Download(ctx, downloadmgr.Request{URL: url, Target: target, ModID: modID})
}

// DownloadModWithAuth downloads url to target with an optional bearer token
func (o *Operations) DownloadModWithAuth(ctx context.Context, url, target, token string) (*downloadmgr.AuthResult, error) {
	return o.Downloader.DownloadWithAuth(ctx, downloadmgr.Request{URL: url, Target: target, Token: token})
}

// RenameFile renames oldPath to newPath
func (o *Operations) RenameFile(oldPath, newPath string) error {
	return o.Files.Rename(oldPath, newPath)
}

// SaveManifest writes content to path
func (o *Operations) SaveManifest(path, content string) error {
	return o.Manifests.Save(path, content)
}

// ReadManifest reads the manifest at path
func (o *Operations) ReadManifest(path string) (string, error) {
	return o.Manifests.Read(path)
}

// ManifestPath returns where the manifest lives, migrating an old one if needed
func (o *Operations) ManifestPath() (string, error) {
	return o.Paths.ManifestPath()
}

// ScanModsFolder lists the mod archives in dir
func (o *Operations) ScanModsFolder(dir string) ([]string, error) {
	return o.Files.Scan(dir)
}

// Login runs the Patreon login and returns the access token
func (o *Operations) Login(ctx context.Context) (string, error) {
	session := o.LoginSession()
	token, err := session.Login(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// LoginSession returns a new login session configured from Config
func (o *Operations) LoginSession() *patreon.Session {
	return patreon.NewSession(patreon.LoginConfig{
		ClientID:     o.Config.PatreonClientID,
		ClientSecret: o.Config.PatreonClientSecret,
		ListenAddr:   o.Config.LoginAddr,
		RedirectURL:  o.Config.RedirectURL,
		Timeout:      o.Config.LoginTimeout,
	}, o.Opener, o.Logger)
}

// FetchPageContent returns the body of url
func (o *Operations) FetchPageContent(ctx context.Context, url string) (string, error) {
	return o.Fetcher.Fetch(ctx, url)
}

// OpenURL opens url in the default browser
func (o *Operations) OpenURL(url string) error {
	return o.Opener.OpenURL(url)
}

// BackendConfig returns the configuration the front end needs
func (o *Operations) BackendConfig() config.BackendConfig {
	return o.Config.Backend()
}
