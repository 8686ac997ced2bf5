// Package manifest reads and writes the mod manifest. The content is
// opaque JSON that only the front end interprets.
package manifest

import (
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/spf13/afero"
)

// Store persists the manifest
type Store struct {
	Fs afero.Fs
}

// New returns a Store working on the OS filesystem
func New() *Store {
	return &Store{Fs: afero.NewOsFs()}
}

// Save overwrites the manifest at path with content.
// The parent directory has to exist.
func (s *Store) Save(path string, content string) error {
	return merrors.Wrap(merrors.KindIO, "save manifest", afero.WriteFile(s.Fs, path, []byte(content), 0644))
}

// Read returns the manifest at path
func (s *Store) Read(path string) (string, error) {
	data, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return "", merrors.Wrap(merrors.KindIO, "read manifest", err)
	}
	return string(data), nil
}
