package utils

import (
	"io"
	"sync"

	"github.com/pkg/browser"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
)

// Opener opens urls with the system's default handler
type Opener interface {
	OpenURL(url string) error
}

// BrowserOpener opens urls in the default browser
type BrowserOpener struct{}

var silenceBrowser sync.Once

// NewBrowserOpener returns a BrowserOpener. quiet hides the output of the
// browser process. browser.Stdout is global, so it is only ever set once.
func NewBrowserOpener(quiet bool) BrowserOpener {
	if quiet {
		silenceBrowser.Do(func() {
			browser.Stdout = io.Discard
			browser.Stderr = io.Discard
		})
	}
	return BrowserOpener{}
}

// OpenURL opens url. Any failure of the system handler is returned as an IO error.
func (b BrowserOpener) OpenURL(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return merrors.Wrapf(merrors.KindIO, "open url", err, "could not open %s: %s", url, err)
	}
	return nil
}

// OpenerFunc is a func that implements Opener
type OpenerFunc func(url string) error

func (f OpenerFunc) OpenURL(url string) error { return f(url) }
