// Package config loads the embark project manifest.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/shlex"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultVersion is used when the manifest does not declare a version.
const DefaultVersion = "0.0.0"

var (
	_ ports.ManifestLoader = (*Loader)(nil)

	projectNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Loader implements ports.ManifestLoader for YAML and TOML manifests.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new manifest loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the manifest at path. A directory is resolved to the manifest file inside it.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, domain.ManifestFileName)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no manifest"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "read manifest"), "path", path)
	}

	var file Manifestfile
	if err := decode(path, data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "parse manifest"), "path", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "resolve manifest path"), "path", path)
	}

	m, err := toManifest(abs, &file)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded manifest " + abs)
	return m, nil
}

func decode(path string, data []byte, out *Manifestfile) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, out)
	}
	return yaml.Unmarshal(data, out)
}

func toManifest(path string, file *Manifestfile) (*domain.Manifest, error) {
	if file.Name == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingProjectName, "invalid manifest"), "path", path)
	}
	if !projectNamePattern.MatchString(file.Name) {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidProjectName, "invalid manifest"), "path", path)
		return nil, zerr.With(err, "name", file.Name)
	}

	args, err := shlex.Split(file.Build.Args)
	if err != nil {
		err = zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "split build.args"), "path", path)
		return nil, zerr.With(err, "args", file.Build.Args)
	}

	m := &domain.Manifest{
		Path:          path,
		Name:          file.Name,
		Version:       file.Version,
		EngineVersion: strings.TrimSpace(file.Engine.Version),
		EngineMirror:  strings.TrimRight(file.Engine.Mirror, "/"),
		Entrypoint:    file.Build.Entrypoint,
		NativeArgs:    args,
		Members:       file.Members,
	}
	if m.Version == "" {
		m.Version = DefaultVersion
	}
	if m.Entrypoint == "" {
		m.Entrypoint = domain.DefaultEntrypoint
	}

	if len(file.Package) > 0 {
		m.Formats = make(map[domain.Format]domain.FormatConfig, len(file.Package))
		for name, dto := range file.Package {
			format, err := domain.ParseFormat(name)
			if err != nil {
				return nil, zerr.With(err, "path", path)
			}
			m.Formats[format] = domain.FormatConfig(dto)
		}
	}

	return m, nil
}
