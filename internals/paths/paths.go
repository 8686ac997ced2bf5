// Package paths resolves the well known locations: the game's mods folder
// and the manifest file.
package paths

import (
	"path/filepath"

	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/config"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/spf13/afero"
)

var errNoAppData = &merrors.Error{
	Kind: merrors.KindConfig,
	Err:  "LOCALAPPDATA is not set",
	Help: "This is usually set by Windows. Set it manually to the folder that contains the BeamNG user folder.",
}

// ModsDir returns the game's mods folder. The folder is not created and
// might not exist yet (the game was never started).
func ModsDir(cfg *config.Config) (string, error) {
	if cfg.LocalAppData == "" {
		return "", withOp(errNoAppData, "detect mods path")
	}
	parts := append([]string{cfg.LocalAppData}, config.ModsSubpath...)
	return filepath.Join(parts...), nil
}

// Resolver resolves the manifest path
type Resolver struct {
	Config *config.Config
	Fs     afero.Fs
	Logger cmdlog.Logger
}

// NewResolver returns a Resolver working on the OS filesystem
func NewResolver(cfg *config.Config, logger cmdlog.Logger) *Resolver {
	return &Resolver{Config: cfg, Fs: afero.NewOsFs(), Logger: cmdlog.OrDiscard(logger)}
}

// ManifestPath returns the manifest location in the per-user data dir and
// creates that dir. When there is no manifest yet but an old one next to the
// executable, it is copied over. Failing to copy is logged, not returned.
func (r *Resolver) ManifestPath() (string, error) {
	const op = "get manifest path"
	if r.Config.LocalAppData == "" {
		return "", withOp(errNoAppData, op)
	}

	dataDir := filepath.Join(r.Config.LocalAppData, config.AppDirName)
	if err := r.Fs.MkdirAll(dataDir, 0755); err != nil {
		return "", merrors.Wrapf(merrors.KindConfig, op, err, "could not create %s: %s", dataDir, err)
	}

	manifestPath := filepath.Join(dataDir, config.ManifestFileName)
	r.migrateLegacy(manifestPath)

	return manifestPath, nil
}

// migrateLegacy copies the manifest from the executable dir, once
func (r *Resolver) migrateLegacy(dest string) {
	logger := cmdlog.OrDiscard(r.Logger)

	if exists, _ := afero.Exists(r.Fs, dest); exists {
		return
	}
	if r.Config.ExecutableDir == "" {
		logger.Debug("executable dir unknown, skipping manifest migration")
		return
	}

	legacy := filepath.Join(r.Config.ExecutableDir, config.ManifestFileName)
	if exists, _ := afero.Exists(r.Fs, legacy); !exists {
		return
	}

	if err := copyFile(r.Fs, legacy, dest); err != nil {
		logger.Warn("failed to migrate manifest", "from", legacy, "to", dest, "err", err)
		return
	}
	logger.Debug("migrated manifest", "from", legacy, "to", dest)
}

func copyFile(fs afero.Fs, src, dest string) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, dest, data, 0644)
}

func withOp(e *merrors.Error, op string) *merrors.Error {
	cp := *e
	cp.Op = op
	return &cp
}
