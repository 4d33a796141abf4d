// Package shell runs external tools for the build pipeline.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/embark/internal/core/domain"
	"go.trai.ch/embark/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProcessRunner = (*Runner)(nil)

// waitDelay bounds how long Wait keeps copying output after the process is killed.
const waitDelay = 2 * time.Second

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	logger  ports.Logger
	environ func() []string
}

// NewRunner creates a Runner that overlays commands on the current environment.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger:  logger,
		environ: os.Environ,
	}
}

// Run starts the command and waits for it to exit.
func (r *Runner) Run(ctx context.Context, c domain.Command) error {
	p, err := r.Start(ctx, c)
	if err != nil {
		return err
	}
	return p.Wait()
}

// Start launches the command without waiting for it.
// Output goes to c.Stdout and c.Stderr when set, otherwise to the logger line by line.
func (r *Runner) Start(ctx context.Context, c domain.Command) (ports.Process, error) {
	if c.Name == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrToolNotFound, "empty command"), "stage", string(c.Stage))
	}

	env := resolveEnvironment(r.environ(), c.Env)

	executable := c.Name
	if !filepath.IsAbs(c.Name) && !strings.ContainsRune(c.Name, filepath.Separator) {
		lp, err := lookPath(c.Name, env)
		if err != nil {
			return nil, toolNotFound(c)
		}
		executable = lp
	}

	cancel := context.CancelFunc(func() {})
	if c.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
	}

	cmd := exec.CommandContext(ctx, executable, c.Args...) //nolint:gosec // tool paths come from the toolchain
	cmd.Args[0] = c.Name
	cmd.Dir = c.Dir
	cmd.Env = env
	cmd.WaitDelay = waitDelay

	stdout := &logWriter{log: r.logger.Info}
	stderr := &logWriter{log: r.logger.Warn}
	cmd.Stdout = io.Writer(stdout)
	cmd.Stderr = io.Writer(stderr)
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}

	r.logger.Debug("exec " + c.Name + " " + strings.Join(c.Args, " "))

	if err := cmd.Start(); err != nil {
		cancel()
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, exec.ErrNotFound) {
			return nil, toolNotFound(c)
		}
		return nil, &domain.ProcessError{Stage: c.Stage, Name: c.Name, ExitCode: -1, Err: err}
	}

	return &process{
		cmd:     cmd,
		command: c,
		cancel:  cancel,
		flush:   []*logWriter{stdout, stderr},
	}, nil
}

func toolNotFound(c domain.Command) error {
	err := zerr.With(zerr.Wrap(domain.ErrToolNotFound, "cannot start command"), "tool", c.Name)
	return zerr.With(err, "stage", string(c.Stage))
}

type process struct {
	cmd     *exec.Cmd
	command domain.Command
	cancel  context.CancelFunc
	flush   []*logWriter
	once    sync.Once
	err     error
}

// Wait blocks until the process exits. Repeated calls return the first result.
func (p *process) Wait() error {
	p.once.Do(func() {
		err := p.cmd.Wait()
		for _, w := range p.flush {
			w.Close()
		}
		p.cancel()

		if err == nil {
			return
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		p.err = &domain.ProcessError{
			Stage:    p.command.Stage,
			Name:     p.command.Name,
			ExitCode: exitCode,
			Err:      err,
		}
	})
	return p.err
}

// logWriter forwards complete lines to a log function and keeps partial lines
// until the next write or Close.
type logWriter struct {
	log func(string)
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// incomplete line, put it back
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.log(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Close flushes a trailing line without a newline.
func (w *logWriter) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.log(strings.TrimRight(w.buf.String(), "\r\n"))
		w.buf.Reset()
	}
}

// resolveEnvironment overlays env on the system environment. The result is sorted.
func resolveEnvironment(sysEnv []string, env map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(env))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}
	for k, v := range env {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
