package utils

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/pkg/browser"
)

func TestOpenerFunc(t *testing.T) {
	var got string
	var opener Opener = OpenerFunc(func(url string) error {
		got = url
		return nil
	})
	if err := opener.OpenURL("https://example.com"); err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com" {
		t.Errorf("opened %q", got)
	}

	failing := OpenerFunc(func(string) error { return errors.New("nope") })
	if err := failing.OpenURL("x"); err == nil {
		t.Error("expected the error to be passed through")
	}
}

func TestNewBrowserOpenerQuiet(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			NewBrowserOpener(true)
		}()
	}
	wg.Wait()

	if browser.Stdout != io.Discard || browser.Stderr != io.Discard {
		t.Error("browser output is not silenced")
	}
}
