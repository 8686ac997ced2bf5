// Package pagefetch loads web pages for the front end, which cannot do
// cross origin requests itself.
package pagefetch

import (
	"context"
	"io"
	"net/http"

	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/config"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/rlsinstaller/rls-installer/internals/ownhttp"
)

// Fetcher fetches pages as text
type Fetcher struct {
	Client *http.Client
	Logger cmdlog.Logger
}

// New returns a Fetcher that sends userAgent and allows perSecond requests per second (0 = unlimited)
func New(userAgent string, perSecond float64, logger cmdlog.Logger) *Fetcher {
	if userAgent == "" {
		userAgent = ownhttp.DefaultUserAgent
	}
	return &Fetcher{
		Client: ownhttp.NewThrottled(userAgent, config.FetchTimeout, perSecond),
		Logger: cmdlog.OrDiscard(logger),
	}
}

// Fetch returns the body of url as text. The status code is not checked,
// error pages are returned like any other page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	const op = "fetch page"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", merrors.Wrap(merrors.KindNetwork, op, err)
	}

	res, err := f.Client.Do(req)
	if err != nil {
		return "", merrors.Wrap(merrors.KindNetwork, op, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		cmdlog.OrDiscard(f.Logger).Debug("page fetch returned an error status", "url", url, "status", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", merrors.Wrap(merrors.KindNetwork, op, err)
	}
	return string(body), nil
}
