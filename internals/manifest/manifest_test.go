package manifest

import (
	"path/filepath"
	"testing"

	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/spf13/afero"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"json", `{"rls_career_overhaul":{"version":"2.6.2","filename":"rls_career_overhaul_2.6.2.zip"}}`},
		{"non ascii", `{"名前":"Ünïcödé 🚗"}`},
		{"newlines", "{\r\n  \"a\": 1\n}\n"},
	}
	store := New()
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "mod_manifest.json")
			if err := store.Save(path, tt.content); err != nil {
				t.Fatal(err)
			}
			got, err := store.Read(path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.content {
				t.Fatalf("Read() = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := &Store{Fs: afero.NewMemMapFs()}
	store.Save("/m.json", `{"a":"a very long manifest"}`)
	store.Save("/m.json", `{}`)
	got, _ := store.Read("/m.json")
	if got != `{}` {
		t.Fatalf("expected the file to be truncated, got %q", got)
	}
}

func TestSaveWithoutParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "mod_manifest.json")
	if err := New().Save(path, "{}"); !merrors.Is(err, merrors.KindIO) {
		t.Fatalf("expected an IO error, got %v", err)
	}
}

func TestReadMissing(t *testing.T) {
	_, err := New().Read(filepath.Join(t.TempDir(), "nope.json"))
	if !merrors.Is(err, merrors.KindIO) {
		t.Fatalf("expected an IO error, got %v", err)
	}
}
