// Package modfiles manages the mod archives inside a mods folder
package modfiles

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/spf13/afero"
)

// ArchiveExt is the extension (without dot) of mod archives
const ArchiveExt = "zip"

// DeleteOutcome tells how a delete succeeded
type DeleteOutcome int

const (
	// Deleted means the file was removed
	Deleted DeleteOutcome = iota
	// AlreadyAbsent means there was nothing to delete
	AlreadyAbsent
	// VanishedAfterError means removing failed but the file is gone anyway
	VanishedAfterError
	// AccessDeniedIgnored means Windows reported access denied. This happens
	// while the game or a virus scanner holds the file and is not reported as failure.
	AccessDeniedIgnored
)

// Message returns the status text shown to the user
func (o DeleteOutcome) Message(path string) string {
	switch o {
	case AlreadyAbsent:
		return fmt.Sprintf("File %s did not exist", path)
	case VanishedAfterError:
		return fmt.Sprintf("File %s was already deleted", path)
	case AccessDeniedIgnored:
		return fmt.Sprintf("Delete reported access denied for %s, continuing", path)
	default:
		return fmt.Sprintf("Deleted %s", path)
	}
}

// Manager deletes, renames and lists mod files
type Manager struct {
	Fs     afero.Fs
	Logger cmdlog.Logger
}

// New returns a Manager working on the OS filesystem
func New(logger cmdlog.Logger) *Manager {
	return &Manager{Fs: afero.NewOsFs(), Logger: cmdlog.OrDiscard(logger)}
}

// Delete removes the file at path. A missing file is not an error.
func (m *Manager) Delete(path string) (DeleteOutcome, error) {
	info, err := m.Fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return AlreadyAbsent, nil
	}
	// Remove would also take an empty directory
	if err == nil && info.IsDir() {
		return 0, merrors.New(merrors.KindIO, "delete", "%s is a directory", path)
	}

	err = m.Fs.Remove(path)
	if err == nil {
		return Deleted, nil
	}

	// transient errors happen on windows even though the file disappears
	if exists, _ := afero.Exists(m.Fs, path); !exists {
		return VanishedAfterError, nil
	}
	if errors.Is(err, fs.ErrPermission) {
		cmdlog.OrDiscard(m.Logger).Warn("delete reported access denied, continuing", "path", path, "err", err)
		return AccessDeniedIgnored, nil
	}
	return 0, merrors.Wrap(merrors.KindIO, "delete", err)
}

// Rename renames (moves) a file
func (m *Manager) Rename(oldPath, newPath string) error {
	return merrors.Wrap(merrors.KindIO, "rename", m.Fs.Rename(oldPath, newPath))
}

// Scan returns the file names of all mod archives in dir, in the order
// the filesystem lists them. A missing dir yields an empty list.
func (m *Manager) Scan(dir string) ([]string, error) {
	files := []string{}
	if exists, _ := afero.DirExists(m.Fs, dir); !exists {
		return files, nil
	}

	f, err := m.Fs.Open(dir)
	if err != nil {
		return nil, merrors.Wrap(merrors.KindIO, "scan", err)
	}
	defer f.Close()

	// Readdir does not sort, unlike afero.ReadDir
	entries, err := f.Readdir(-1)
	if err != nil {
		return nil, merrors.Wrap(merrors.KindIO, "scan", err)
	}

	for _, entry := range entries {
		// Readdir does not follow symlinks
		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := m.Fs.Stat(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			entry = namedInfo{target, entry.Name()}
		}
		if !isArchive(entry) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

func isArchive(fi os.FileInfo) bool {
	if !fi.Mode().IsRegular() {
		return false
	}
	ext := strings.TrimPrefix(filepath.Ext(fi.Name()), ".")
	return strings.ToLower(ext) == ArchiveExt
}

// namedInfo keeps the link name for a followed symlink
type namedInfo struct {
	os.FileInfo
	name string
}

func (n namedInfo) Name() string { return n.name }
