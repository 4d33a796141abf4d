package toolchain

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"runtime"
	"strings"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PlatformResolver = (*Resolver)(nil)

// Resolver implements ports.PlatformResolver using rustc and the platform table.
type Resolver struct {
	toolchain domain.Toolchain
	runner    ports.ProcessRunner
	table     domain.PlatformTable
	goos      string
	goarch    string
}

// NewResolver creates a Resolver that validates triples against table.
func NewResolver(tc domain.Toolchain, runner ports.ProcessRunner, table domain.PlatformTable) *Resolver {
	return &Resolver{
		toolchain: tc,
		runner:    runner,
		table:     table,
		goos:      runtime.GOOS,
		goarch:    runtime.GOARCH,
	}
}

// Host returns the triple of the machine embark runs on.
func (r *Resolver) Host(ctx context.Context) (domain.PlatformID, error) {
	if triple, ok := r.rustcHost(ctx); ok {
		return r.table.Parse(triple)
	}

	id, ok := domain.HostTriple(r.goos, r.goarch)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedPlatform, "cannot determine host platform"), "os", r.goos)
		return "", zerr.With(err, "arch", r.goarch)
	}
	return r.table.Parse(id.String())
}

// Target returns explicit when set, otherwise the host triple.
func (r *Resolver) Target(ctx context.Context, explicit string) (domain.PlatformID, error) {
	if explicit == "" {
		return r.Host(ctx)
	}
	return r.table.Parse(explicit)
}

// rustcHost reads the host line of "rustc -vV".
func (r *Resolver) rustcHost(ctx context.Context) (string, bool) {
	if r.toolchain.Rustc == "" {
		return "", false
	}

	var out bytes.Buffer
	err := r.runner.Run(ctx, domain.Command{
		Name:   r.toolchain.Rustc,
		Args:   []string{"-vV"},
		Stdout: &out,
		Stderr: io.Discard,
	})
	if err != nil {
		return "", false
	}
	return parseHostLine(out.String())
}

func parseHostLine(output string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		if host, ok := strings.CutPrefix(scanner.Text(), "host:"); ok {
			host = strings.TrimSpace(host)
			return host, host != ""
		}
	}
	return "", false
}
