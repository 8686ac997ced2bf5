package modfiles

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/spf13/afero"
)

func newTestManager(fs afero.Fs) (*Manager, *cmdlog.Recorder) {
	rec := &cmdlog.Recorder{}
	return &Manager{Fs: fs, Logger: rec}, rec
}

func TestDeleteMissingFile(t *testing.T) {
	m, _ := newTestManager(afero.NewMemMapFs())
	for _, p := range []string{"/mods/nope.zip", "/does/not/exist"} {
		outcome, err := m.Delete(p)
		if err != nil {
			t.Fatalf("Delete(%q) error = %v", p, err)
		}
		if outcome != AlreadyAbsent {
			t.Fatalf("Delete(%q) = %v, want AlreadyAbsent", p, outcome)
		}
	}
}

func TestDeleteExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/mods/a.zip", []byte("zip"), 0644)
	m, _ := newTestManager(fs)

	outcome, err := m.Delete("/mods/a.zip")
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Deleted {
		t.Fatalf("outcome = %v, want Deleted", outcome)
	}
	if ok, _ := afero.Exists(fs, "/mods/a.zip"); ok {
		t.Fatal("file still exists")
	}
	if !strings.HasPrefix(outcome.Message("/mods/a.zip"), "Deleted") {
		t.Fatalf("unexpected message %q", outcome.Message("/mods/a.zip"))
	}
}

// removeFs fails every Remove with err, optionally deleting the file anyway
type removeFs struct {
	afero.Fs
	err          error
	removeAnyway bool
}

func (r removeFs) Remove(name string) error {
	if r.removeAnyway {
		r.Fs.Remove(name)
	}
	return &os.PathError{Op: "remove", Path: name, Err: r.err}
}

func TestDeleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		fs      func(afero.Fs) afero.Fs
		want    DeleteOutcome
		wantErr bool
		warning bool
	}{
		{
			name: "access denied",
			fs:   func(base afero.Fs) afero.Fs { return removeFs{base, fs.ErrPermission, false} },
			want: AccessDeniedIgnored, warning: true,
		},
		{
			name: "vanished after error",
			fs:   func(base afero.Fs) afero.Fs { return removeFs{base, errors.New("sharing violation"), true} },
			want: VanishedAfterError,
		},
		{
			name:    "real failure",
			fs:      func(base afero.Fs) afero.Fs { return removeFs{base, errors.New("device busy"), false} },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := afero.NewMemMapFs()
			afero.WriteFile(base, "/mods/a.zip", []byte("zip"), 0644)
			m, rec := newTestManager(tt.fs(base))

			outcome, err := m.Delete("/mods/a.zip")
			if tt.wantErr {
				if !merrors.Is(err, merrors.KindIO) {
					t.Fatalf("expected an IO error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if outcome != tt.want {
				t.Fatalf("outcome = %v, want %v", outcome, tt.want)
			}
			if got := len(rec.Warnings()) > 0; got != tt.warning {
				t.Fatalf("warning logged = %v, want %v", got, tt.warning)
			}
		})
	}
}

func TestRename(t *testing.T) {
	dir := t.TempDir()
	m := New(nil)
	oldPath := filepath.Join(dir, "old.zip")
	newPath := filepath.Join(dir, "new.zip")
	os.WriteFile(oldPath, []byte("zip"), 0644)

	if err := m.Rename(oldPath, newPath); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}

	err := m.Rename(filepath.Join(dir, "missing.zip"), newPath)
	if !merrors.Is(err, merrors.KindIO) {
		t.Fatalf("expected an IO error, got %v", err)
	}
}

func TestScanMissingDir(t *testing.T) {
	m, _ := newTestManager(afero.NewMemMapFs())
	files, err := m.Scan("/nope")
	if err != nil {
		t.Fatal(err)
	}
	if files == nil || len(files) != 0 {
		t.Fatalf("expected an empty list, got %#v", files)
	}
}

func TestScanFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.zip", "B.ZIP", "c.Zip", "readme.txt", "archive.zip.bak", "noext"} {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644)
	}
	os.Mkdir(filepath.Join(dir, "folder.zip"), 0755)

	files, err := New(nil).Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(files)
	want := []string{"B.ZIP", "a.zip", "c.Zip"}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Fatalf("Scan() = %v, want %v", files, want)
	}
}

func TestScanFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	elsewhere := t.TempDir()
	os.WriteFile(filepath.Join(dir, "plain.zip"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(elsewhere, "real.zip"), []byte("x"), 0644)
	os.Mkdir(filepath.Join(elsewhere, "folder"), 0755)

	links := map[string]string{
		"linked.zip":   filepath.Join(elsewhere, "real.zip"),
		"dirlink.zip":  filepath.Join(elsewhere, "folder"),
		"dangling.zip": filepath.Join(elsewhere, "missing.zip"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(dir, name)); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
	}

	files, err := New(nil).Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(files)
	want := []string{"linked.zip", "plain.zip"}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Fatalf("Scan() = %v, want %v", files, want)
	}
}

func TestDeleteDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	fs.MkdirAll("/mods/folder.zip", 0755)
	m, _ := newTestManager(fs)

	_, err := m.Delete("/mods/folder.zip")
	if !merrors.Is(err, merrors.KindIO) {
		t.Fatalf("Delete() err = %v, want an io error", err)
	}
	if ok, _ := afero.DirExists(fs, "/mods/folder.zip"); !ok {
		t.Error("directory was removed")
	}
}
