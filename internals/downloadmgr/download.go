package downloadmgr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rlsinstaller/rls-installer/internals/cmdlog"
	"github.com/rlsinstaller/rls-installer/internals/config"
	"github.com/rlsinstaller/rls-installer/internals/merrors"
	"github.com/rlsinstaller/rls-installer/internals/ownhttp"
)

const chunkSize = 32 * 1024

// Request describes a single download
type Request struct {
	URL string
	// Target is the requested destination. The file name might change
	// if the server sends a Content-Disposition header.
	Target string
	// ModID is passed through to progress events. Optional.
	ModID string
	// Token is sent as bearer token. Optional, only used by DownloadWithAuth.
	Token string
}

// Result is returned by Download
type Result struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

// AuthResult is returned by DownloadWithAuth. Path is always the requested target,
// Filename is the name the server suggested (nil if it did not).
type AuthResult struct {
	Path     string  `json:"path"`
	Filename *string `json:"filename"`
}

// Downloader streams files to disk
type Downloader struct {
	Client   *http.Client
	Progress ProgressSink
	Logger   cmdlog.Logger
}

// New returns a Downloader with the default browser user agent and timeout
func New(progress ProgressSink, logger cmdlog.Logger) *Downloader {
	return &Downloader{
		Client:   ownhttp.New(ownhttp.DefaultUserAgent, config.DownloadTimeout),
		Progress: progress,
		Logger:   cmdlog.OrDiscard(logger),
	}
}

// Download fetches req.URL and writes it next to req.Target, using the server's
// file name if it sends one. Emits progress events when the size is known.
func (d *Downloader) Download(ctx context.Context, req Request) (*Result, error) {
	const op = "download"
	res, err := d.get(ctx, req.URL, "")
	if err != nil {
		return nil, merrors.Wrap(merrors.KindNetwork, op, err)
	}
	defer res.Body.Close()

	if !isSuccess(res.StatusCode) {
		return nil, merrors.New(merrors.KindNetwork, op, "Download failed with status: %s", res.Status)
	}

	dest := req.Target
	if name, ok := filenameFromDisposition(res.Header.Get("Content-Disposition")); ok {
		dest = filepath.Join(filepath.Dir(req.Target), name)
	}

	var onChunk func(downloaded uint64)
	if res.ContentLength > 0 {
		total := uint64(res.ContentLength)
		tracker := newPercentTracker(total)
		onChunk = func(downloaded uint64) {
			pct, ok := tracker.observe(downloaded)
			if !ok {
				return
			}
			d.emit(ProgressEvent{
				ModID:      optional(req.ModID),
				URL:        req.URL,
				Downloaded: downloaded,
				Total:      &total,
				Progress:   &pct,
			})
		}
	}

	if _, err := writeBody(dest, res.Body, onChunk); err != nil {
		return nil, err
	}

	return &Result{Path: dest, Filename: filepath.Base(dest)}, nil
}

// DownloadWithAuth fetches req.URL to req.Target, sending req.Token as bearer
// token if set. No progress events are emitted.
func (d *Downloader) DownloadWithAuth(ctx context.Context, req Request) (*AuthResult, error) {
	const op = "download"
	res, err := d.get(ctx, req.URL, req.Token)
	if err != nil {
		return nil, merrors.Wrap(merrors.KindNetwork, op, err)
	}
	defer res.Body.Close()

	if !isSuccess(res.StatusCode) {
		body, _ := io.ReadAll(res.Body)
		return nil, merrors.New(merrors.KindNetwork, op, "Download failed with status %s: %s", res.Status, string(body))
	}

	result := &AuthResult{Path: req.Target}
	if name, ok := filenameFromDisposition(res.Header.Get("Content-Disposition")); ok {
		result.Filename = &name
	}

	if _, err := writeBody(req.Target, res.Body, nil); err != nil {
		return nil, err
	}
	return result, nil
}

func (d *Downloader) get(ctx context.Context, url string, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := d.Client
	if client == nil {
		client = ownhttp.New(ownhttp.DefaultUserAgent, config.DownloadTimeout)
	}
	return client.Do(req)
}

func (d *Downloader) emit(event ProgressEvent) {
	if d.Progress == nil {
		return
	}
	if err := d.Progress.EmitProgress(event); err != nil {
		cmdlog.OrDiscard(d.Logger).Warn("failed to emit download_progress event", "url", event.URL, "err", err)
	}
}

// writeBody streams body into dest chunk by chunk, creating parent dirs as needed.
// onChunk is called with the running total after every written chunk.
func writeBody(dest string, body io.Reader, onChunk func(downloaded uint64)) (uint64, error) {
	const op = "download"
	if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return 0, merrors.Wrap(merrors.KindIO, op, err)
	}

	file, err := os.Create(dest)
	if err != nil {
		return 0, merrors.Wrap(merrors.KindIO, op, err)
	}
	defer file.Close()

	var downloaded uint64
	buf := make([]byte, chunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := file.Write(buf[:n]); err != nil {
				return downloaded, merrors.Wrap(merrors.KindIO, op, err)
			}
			downloaded += uint64(n)
			if onChunk != nil {
				onChunk(downloaded)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return downloaded, merrors.Wrapf(merrors.KindNetwork, op, readErr, "download interrupted after %d bytes: %s", downloaded, readErr)
		}
	}

	if err := file.Sync(); err != nil {
		return downloaded, merrors.Wrap(merrors.KindIO, op, err)
	}
	return downloaded, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// String implements fmt.Stringer for log output
func (r Request) String() string {
	return fmt.Sprintf("%s -> %s", r.URL, r.Target)
}
