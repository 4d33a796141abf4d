package ports

import (
	"context"
	"io"

	"go.trai.ch/embark/internal/core/domain"
)

// Downloader fetches remote files.
//
//go:generate go run go.uber.org/mock/mockgen -source=download.go -destination=mocks/mock_download.go -package=mocks
type Downloader interface {
	// Download streams url into w. progress, when non-nil, is called as bytes arrive.
	Download(ctx context.Context, url string, w io.Writer, progress func(domain.Progress)) error
}

// Extractor unpacks archives.
type Extractor interface {
	// Extract unpacks the zip archive at src into dst.
	Extract(src, dst string) error
}

// Archiver creates archives.
type Archiver interface {
	// Archive writes the given sources into a gzip-compressed tarball at dst.
	Archive(sources []string, dst string) error
}
