package download

import "net/http"

// NewDownloaderWithClient exposes newDownloaderWithClient for testing.
func NewDownloaderWithClient(client *http.Client) *HTTPDownloader {
	return newDownloaderWithClient(client)
}
