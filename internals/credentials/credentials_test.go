package credentials

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
)

func TestKeyringRoundTrip(t *testing.T) {
	keyring.MockInit()

	store, err := New("/config")
	if err != nil {
		t.Fatal(err)
	}
	if store.AccessToken() != "" {
		t.Fatalf("expected no token, got %q", store.AccessToken())
	}

	if err := store.SetPatreonAuth(&oauth2.Token{AccessToken: "abc", RefreshToken: "def"}); err != nil {
		t.Fatal(err)
	}

	reloaded, err := New("/config")
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.AccessToken() != "abc" || reloaded.PatreonAuth.RefreshToken != "def" {
		t.Errorf("token not restored: %+v", reloaded.PatreonAuth)
	}

	if err := reloaded.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := keyring.Get(patreonAuthService, patreonAuthUser); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("token still in keyring: %v", err)
	}
	// clearing twice is fine
	if err := reloaded.Clear(); err != nil {
		t.Errorf("second Clear() = %v", err)
	}
}

func TestFileFallback(t *testing.T) {
	memFs := afero.NewMemMapFs()
	store := &Store{globalDir: "/config", Fs: memFs, NoKeyRingMode: true}

	// nothing stored yet is fine
	if err := store.findFromFiles(); err != nil {
		t.Fatal(err)
	}
	if store.AccessToken() != "" {
		t.Fatalf("expected no token, got %q", store.AccessToken())
	}

	if err := store.SetPatreonAuth(&oauth2.Token{AccessToken: "file-token"}); err != nil {
		t.Fatal(err)
	}
	if ok, _ := afero.Exists(memFs, "/config/patreon-credentials.json"); !ok {
		t.Fatal("credential file was not written")
	}

	reloaded := &Store{globalDir: "/config", Fs: memFs, NoKeyRingMode: true}
	if err := reloaded.findFromFiles(); err != nil {
		t.Fatal(err)
	}
	if reloaded.AccessToken() != "file-token" {
		t.Errorf("AccessToken() = %q", reloaded.AccessToken())
	}

	if err := reloaded.Clear(); err != nil {
		t.Fatal(err)
	}
	if reloaded.AccessToken() != "" {
		t.Error("token still in memory after Clear()")
	}
	if ok, _ := afero.Exists(memFs, "/config/patreon-credentials.json"); ok {
		t.Error("credential file still exists")
	}
	// clearing twice is fine
	if err := reloaded.Clear(); err != nil {
		t.Errorf("second Clear() = %v", err)
	}
}

func TestCorruptCredentialFile(t *testing.T) {
	memFs := afero.NewMemMapFs()
	afero.WriteFile(memFs, "/config/patreon-credentials.json", []byte("{not json"), 0600)

	store := &Store{globalDir: "/config", Fs: memFs, NoKeyRingMode: true}
	if err := store.findFromFiles(); err == nil {
		t.Error("expected an error for a corrupt credential file")
	}
}
