package credentials

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/spf13/afero"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

var (
	patreonAuthService = "rls-installer"
	patreonAuthUser    = "patreon_auth_data"

	patreonCredentialFile = "patreon-credentials.json"
)

// Store stores the Patreon token
type Store struct {
	globalDir string
	// Fs is only used when the system keyring is not available
	Fs            afero.Fs
	NoKeyRingMode bool
	PatreonAuth   *oauth2.Token
}

// New creates a new Store and loads existing credentials
func New(globalDir string) (*Store, error) {
	store := &Store{globalDir: globalDir, Fs: afero.NewOsFs()}
	if err := store.Find(); err != nil {
		return nil, err
	}
	return store, nil
}

// Find tries to find existing credentials
func (s *Store) Find() error {
	patreonAuth, err := keyring.Get(patreonAuthService, patreonAuthUser)
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(patreonAuth), &s.PatreonAuth); err != nil {
			return merrors.Wrapf(merrors.KindIO, "read credentials", err, "stored Patreon credentials are corrupt: %s", err)
		}
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		// not logged in yet
		return nil
	default:
		// no usable keyring (headless linux for example)
		s.NoKeyRingMode = true
		return s.findFromFiles()
	}
}

// findFromFiles is the same as Find but reads from plain files instead
func (s *Store) findFromFiles() error {
	return s.readCredentialFile(patreonCredentialFile, &s.PatreonAuth)
}

// SetPatreonAuth sets `PatreonAuth` and persists it
func (s *Store) SetPatreonAuth(auth *oauth2.Token) error {
	s.PatreonAuth = auth

	authJSONBlob, err := json.Marshal(s.PatreonAuth)
	if err != nil {
		return err
	}
	if s.NoKeyRingMode {
		return s.writeCredentialFile(patreonCredentialFile, authJSONBlob)
	}
	if err := keyring.Set(patreonAuthService, patreonAuthUser, string(authJSONBlob)); err != nil {
		return merrors.Wrap(merrors.KindIO, "save credentials", err)
	}
	return nil
}

// Clear removes the stored token
func (s *Store) Clear() error {
	s.PatreonAuth = nil
	if s.NoKeyRingMode {
		err := s.Fs.Remove(filepath.Join(s.globalDir, patreonCredentialFile))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return merrors.Wrap(merrors.KindIO, "clear credentials", err)
		}
		return nil
	}
	err := keyring.Delete(patreonAuthService, patreonAuthUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return merrors.Wrap(merrors.KindIO, "clear credentials", err)
	}
	return nil
}

// AccessToken returns the stored access token or an empty string
func (s *Store) AccessToken() string {
	if s.PatreonAuth == nil {
		return ""
	}
	return s.PatreonAuth.AccessToken
}

// readCredentialFile is a helper that reads a file from the global dir
func (s *Store) readCredentialFile(location string, v interface{}) error {
	file := filepath.Join(s.globalDir, location)
	rawCreds, err := afero.ReadFile(s.Fs, file)
	switch {
	case err == nil:
		return json.Unmarshal(rawCreds, v)
	case errors.Is(err, fs.ErrNotExist):
		// no file is fine
		return nil
	default:
		return merrors.Wrap(merrors.KindIO, "read credentials", err)
	}
}

// writeCredentialFile is a helper that writes a file to the global dir
func (s *Store) writeCredentialFile(location string, content []byte) error {
	if err := s.Fs.MkdirAll(s.globalDir, os.ModePerm); err != nil {
		return merrors.Wrap(merrors.KindIO, "save credentials", err)
	}
	credFile := filepath.Join(s.globalDir, location)
	if err := afero.WriteFile(s.Fs, credFile, content, 0600); err != nil {
		return merrors.Wrap(merrors.KindIO, "save credentials", err)
	}
	return nil
}
