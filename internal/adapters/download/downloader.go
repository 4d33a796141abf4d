// Package download fetches remote files over HTTP.
package download

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Downloader = (*HTTPDownloader)(nil)

// HTTPDownloader implements ports.Downloader using net/http.
type HTTPDownloader struct {
	httpClient *http.Client
}

// NewDownloader creates a downloader without a client timeout. Callers bound
// downloads through the context.
func NewDownloader() *HTTPDownloader {
	return &HTTPDownloader{httpClient: &http.Client{}}
}

// newDownloaderWithClient creates a downloader with a custom http client (used for testing).
func newDownloaderWithClient(client *http.Client) *HTTPDownloader {
	return &HTTPDownloader{httpClient: client}
}

// Download streams url into w. progress, when set, receives the running byte
// count after every chunk, starting with zero bytes done.
func (d *HTTPDownloader) Download(ctx context.Context, url string, w io.Writer, progress func(domain.Progress)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrNetworkFailure, err), "invalid request"), "url", url)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrNetworkFailure, err), "request failed"), "url", url)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if resp.StatusCode == http.StatusNotFound {
		return zerr.With(zerr.Wrap(domain.ErrRuntimeNotFound, "remote file does not exist"), "url", url)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := zerr.With(zerr.Wrap(domain.ErrNetworkFailure, "unexpected response"), "status_code", resp.StatusCode)
		return zerr.With(statusErr, "url", url)
	}

	counter := &progressWriter{
		w:        w,
		total:    resp.ContentLength,
		progress: progress,
	}
	counter.report()

	if _, err := io.Copy(counter, resp.Body); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrNetworkFailure, err), "transfer interrupted"), "url", url)
	}

	return nil
}

// progressWriter counts bytes written through it.
type progressWriter struct {
	w        io.Writer
	total    int64
	done     int64
	progress func(domain.Progress)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.done += int64(n)
	if n > 0 {
		p.report()
	}
	return n, err
}

func (p *progressWriter) report() {
	if p.progress != nil {
		p.progress(domain.Progress{Total: p.total, Done: p.done})
	}
}
