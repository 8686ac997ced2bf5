package gui

import (
	"context"
	"errors"

	"github.com/rlsinstaller/rls-installer/internals/config"
	"github.com/rlsinstaller/rls-installer/internals/downloadmgr"
	"github.com/rlsinstaller/rls-installer/internals/facade"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App is bound to the front end. Every method flattens errors into plain strings.
type App struct {
	ctx context.Context
	ops *facade.Operations
}

// NewApp creates a new App
func NewApp(ops *facade.Operations) *App {
	return &App{ops: ops}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

func (a *App) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// DetectBeamngUserPath returns the mods folder
func (a *App) DetectBeamngUserPath() (string, error) {
	path, err := a.ops.DetectModsPath()
	return path, merrors.Flatten(err)
}

// DeleteOldMod deletes a mod archive
func (a *App) DeleteOldMod(path string) (string, error) {
	msg, err := a.ops.DeleteMod(path)
	return msg, merrors.Flatten(err)
}

// DownloadMod downloads a mod and emits download_progress events
func (a *App) DownloadMod(url string, targetPath string, modID string) (*downloadmgr.Result, error) {
	res, err := a.ops.DownloadMod(a.context(), url, targetPath, modID)
	return res, merrors.Flatten(err)
}

// DownloadModWithAuth downloads a patron only mod
func (a *App) DownloadModWithAuth(url string, targetPath string, token string) (*downloadmgr.AuthResult, error) {
	res, err := a.ops.DownloadModWithAuth(a.context(), url, targetPath, token)
	return res, merrors.Flatten(err)
}

// RenameFile renames a file
func (a *App) RenameFile(oldPath string, newPath string) error {
	return merrors.Flatten(a.ops.RenameFile(oldPath, newPath))
}

// SaveManifest writes the manifest
func (a *App) SaveManifest(path string, content string) error {
	return merrors.Flatten(a.ops.SaveManifest(path, content))
}

// ReadManifest reads the manifest
func (a *App) ReadManifest(path string) (string, error) {
	content, err := a.ops.ReadManifest(path)
	return content, merrors.Flatten(err)
}

// GetManifestPath returns the manifest location
func (a *App) GetManifestPath() (string, error) {
	path, err := a.ops.ManifestPath()
	return path, merrors.Flatten(err)
}

// ScanModsFolder lists the mod archives in dir
func (a *App) ScanModsFolder(dir string) ([]string, error) {
	names, err := a.ops.ScanModsFolder(dir)
	return names, merrors.Flatten(err)
}

// PatreonLogin runs the Patreon login and returns the access token
func (a *App) PatreonLogin() (string, error) {
	token, err := a.ops.Login(a.context())
	return token, merrors.Flatten(err)
}

// FetchPageContent fetches a page
func (a *App) FetchPageContent(url string) (string, error) {
	body, err := a.ops.FetchPageContent(a.context(), url)
	return body, merrors.Flatten(err)
}

// OpenURLInBrowser opens url in the default browser
func (a *App) OpenURLInBrowser(url string) error {
	return merrors.Flatten(a.ops.OpenURL(url))
}

// GetPatreonConfig returns the backend config
func (a *App) GetPatreonConfig() config.BackendConfig {
	return a.ops.BackendConfig()
}

var errNotStarted = errors.New("window is not running")

// progressEmitter sends progress events to the front end
type progressEmitter struct {
	app *App
}

func (p progressEmitter) EmitProgress(event downloadmgr.ProgressEvent) error {
	if p.app.ctx == nil {
		return errNotStarted
	}
	runtime.EventsEmit(p.app.ctx, downloadmgr.ProgressEventName, event)
	return nil
}
