// Package enginecache downloads engine builds once and serves them from a local cache.
package enginecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// progressBuffer bounds the channel between the download worker and the caller.
	progressBuffer = 16

	lockRetryDelay = 100 * time.Millisecond
)

var _ ports.RuntimeCache = (*Cache)(nil)

// Options configure a Cache.
type Options struct {
	// Root is the cache root. Engine builds live in Root/embark-engine.
	Root string
	// Mirror takes precedence over the mirror passed to Resolve when set.
	Mirror string
	// Override short-circuits Resolve and is returned verbatim.
	Override string
	Table    domain.PlatformTable
}

// DefaultOptions reads the cache configuration from the environment.
func DefaultOptions(getenv func(string) string) Options {
	root := getenv(domain.EnvCacheDir)
	if root == "" {
		root = xdg.CacheHome
	}
	return Options{
		Root:     root,
		Mirror:   strings.TrimRight(getenv(domain.EnvEngineMirror), "/"),
		Override: getenv(domain.EnvEnginePath),
		Table:    domain.DefaultPlatforms(),
	}
}

// Cache implements ports.RuntimeCache on the local filesystem.
type Cache struct {
	opts       Options
	downloader ports.Downloader
	extractor  ports.Extractor
	hasher     ports.Hasher
	logger     ports.Logger
	now        func() time.Time
}

// New creates a Cache.
func New(
	opts Options,
	downloader ports.Downloader,
	extractor ports.Extractor,
	hasher ports.Hasher,
	logger ports.Logger,
) *Cache {
	return &Cache{
		opts:       opts,
		downloader: downloader,
		extractor:  extractor,
		hasher:     hasher,
		logger:     logger,
		now:        time.Now,
	}
}

// Dir returns the directory holding every cached engine build.
func (c *Cache) Dir() string {
	return domain.EngineCachePath(c.opts.Root)
}

// Entry returns the cache entry directory for h. It does not validate h.
func (c *Cache) Entry(h domain.RuntimeHandle) string {
	return filepath.Join(c.Dir(), h.Version, h.Platform.String(), h.Profile.Name())
}

// Path returns the engine library path for h.
func (c *Cache) Path(h domain.RuntimeHandle) (string, error) {
	entry, err := h.Validate(c.opts.Table)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.Entry(h), entry.Library), nil
}

// URL returns the download location of the engine build for h.
func (c *Cache) URL(h domain.RuntimeHandle, mirror string) (string, error) {
	entry, err := h.Validate(c.opts.Table)
	if err != nil {
		return "", err
	}
	return c.url(h, entry, mirror), nil
}

func (c *Cache) url(h domain.RuntimeHandle, entry domain.PlatformEntry, mirror string) string {
	switch {
	case c.opts.Mirror != "":
		mirror = c.opts.Mirror
	case mirror == "":
		mirror = domain.DefaultEngineMirror
	}
	return fmt.Sprintf("%s/f-%s/%s.zip", strings.TrimRight(mirror, "/"), h.Version, entry.Variant(h.Profile))
}

// Resolve returns the engine library for h, downloading and publishing the
// cache entry on a miss. Concurrent callers for the same entry serialize on a
// file lock and the later ones reuse the published entry.
func (c *Cache) Resolve(ctx context.Context, h domain.RuntimeHandle, opts ports.ResolveOptions) (string, error) {
	if c.opts.Override != "" {
		c.logger.Debug("using engine override " + c.opts.Override)
		return c.opts.Override, nil
	}

	entry, err := h.Validate(c.opts.Table)
	if err != nil {
		return "", err
	}

	dir := c.Entry(h)
	lib := filepath.Join(dir, entry.Library)

	if c.complete(h, entry, dir) {
		c.logger.Debug("engine cache hit " + h.String())
		return lib, nil
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to create cache directory"), "path", parent)
	}

	lock := flock.New(dir + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return "", zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheLockFailed, err), "cache entry is busy"), "path", lock.Path())
	}
	defer lock.Unlock() //nolint:errcheck // the lock is released when the process exits anyway

	if c.complete(h, entry, dir) {
		c.logger.Debug("engine cache entry published by another process " + h.String())
		return lib, nil
	}

	url := c.url(h, entry, opts.Mirror)
	if err := c.fetch(ctx, h, entry, url, dir, opts.Observer); err != nil {
		return "", err
	}

	return lib, nil
}

// fetch downloads, extracts and publishes the entry. The temp file and the
// staging directory live beside the entry so the final rename stays on one filesystem.
func (c *Cache) fetch(
	ctx context.Context,
	h domain.RuntimeHandle,
	entry domain.PlatformEntry,
	url, dir string,
	observer func(domain.Progress),
) error {
	parent := filepath.Dir(dir)

	tmp, err := os.CreateTemp(parent, ".download-*.zip")
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to create temp file"), "path", parent)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // best effort cleanup

	c.logger.Info("downloading engine " + h.String())

	sum, size, err := c.download(ctx, url, tmp, observer)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, closeErr), "failed to write download"), "path", tmpName)
	}
	if err != nil {
		if errors.Is(err, domain.ErrRuntimeNotFound) {
			notFound := zerr.With(zerr.Wrap(&domain.RuntimeNotFoundError{Version: h.Version, URL: url}, "engine build unavailable"), "platform", h.Platform.String())
			return zerr.With(notFound, "profile", h.Profile.Name())
		}
		return err
	}

	c.logger.Info(fmt.Sprintf("downloaded %s", humanize.Bytes(uint64(size)))) //nolint:gosec // size is never negative

	staging, err := os.MkdirTemp(parent, ".staging-*")
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to create staging directory"), "path", parent)
	}
	defer os.RemoveAll(staging) //nolint:errcheck // best effort cleanup

	if err := c.extractor.Extract(tmpName, staging); err != nil {
		return err
	}

	libHash, err := c.hasher.ComputeFileHash(filepath.Join(staging, entry.Library))
	if err != nil {
		missing := zerr.With(zerr.Wrap(errors.Join(domain.ErrExtractionFailure, err), "archive does not contain the engine library"), "library", entry.Library)
		return zerr.With(missing, "url", url)
	}

	marker := domain.CacheMarker{
		Version:       h.Version,
		Platform:      h.Platform.String(),
		Profile:       h.Profile.Name(),
		URL:           url,
		Library:       entry.Library,
		LibraryHash:   libHash,
		ArchiveSHA256: sum,
		CompletedAt:   c.now().UTC(),
	}
	if err := writeMarker(filepath.Join(staging, domain.CacheMarkerFileName), marker); err != nil {
		return err
	}

	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to remove stale entry"), "path", dir)
	}
	if err := os.Rename(staging, dir); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to publish entry"), "path", dir)
	}

	c.logger.Debug("published engine cache entry " + dir)
	return nil
}

// download runs the transfer on a worker goroutine that streams progress over a
// bounded channel. The caller forwards updates to observer until the worker is done.
func (c *Cache) download(ctx context.Context, url string, w io.Writer, observer func(domain.Progress)) (string, int64, error) {
	updates := make(chan domain.Progress, progressBuffer)
	digest := sha256.New()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(updates)
		return c.downloader.Download(gctx, url, io.MultiWriter(w, digest), func(p domain.Progress) {
			select {
			case updates <- p:
			case <-gctx.Done():
			}
		})
	})

	last := domain.Progress{Total: -1}
	for p := range updates {
		if p.Done < last.Done {
			continue
		}
		last = p
		if observer != nil {
			observer(p)
		}
	}

	if err := g.Wait(); err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(digest.Sum(nil)), last.Done, nil
}

// complete reports whether dir holds a fully published entry for h whose
// library still matches the recorded hash.
func (c *Cache) complete(h domain.RuntimeHandle, entry domain.PlatformEntry, dir string) bool {
	marker, err := readMarker(filepath.Join(dir, domain.CacheMarkerFileName))
	if err != nil || !marker.Matches(h, entry.Library) {
		return false
	}

	sum, err := c.hasher.ComputeFileHash(filepath.Join(dir, entry.Library))
	if err != nil {
		return false
	}
	if sum != marker.LibraryHash {
		c.logger.Warn("engine cache entry is corrupt, fetching again: " + h.String())
		return false
	}
	return true
}

// Clean removes every cached engine build.
func (c *Cache) Clean() error {
	dir := c.Dir()
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to remove engine cache"), "path", dir)
	}
	c.logger.Info("removed " + dir)
	return nil
}

func readMarker(path string) (domain.CacheMarker, error) {
	var marker domain.CacheMarker

	data, err := os.ReadFile(path) //nolint:gosec // path is inside the cache directory
	if err != nil {
		return marker, err
	}
	if err := json.Unmarshal(data, &marker); err != nil {
		return marker, err
	}
	return marker, nil
}

func writeMarker(path string, marker domain.CacheMarker) error {
	data, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to encode cache marker")
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheWriteFailed, err), "failed to write cache marker"), "path", path)
	}
	return nil
}
