// Package shell runs toolchain processes.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
// On systems with pseudo-terminal support the process runs attached to a PTY,
// so compilers keep their colored diagnostics. Elsewhere plain pipes are used.
type Executor struct {
	logger ports.Logger
	usePTY bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithPTY enables or disables running processes in a pseudo-terminal.
func WithPTY(enable bool) Option {
	return func(e *Executor) {
		e.usePTY = enable
	}
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger, opts ...Option) *Executor {
	e := &Executor{logger: logger, usePTY: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the command and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if len(cmd.Args) == 0 {
		return domain.ErrEmptyCommand
	}

	e.logger.Debug("exec: " + strings.Join(cmd.Args, " "))

	env := resolveEnvironment(os.Environ(), cmd.Env)

	err := e.run(ctx, cmd, env, stdout, stderr)
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "program", cmd.Args[0])
}

func (e *Executor) run(ctx context.Context, cmd domain.Command, env []string, stdout, stderr io.Writer) error {
	if e.usePTY {
		proc := newCmd(ctx, cmd, env)
		ptmx, err := pty.Start(proc)
		switch {
		case err == nil:
			return waitPTY(proc, ptmx, stdout)
		case !errors.Is(err, pty.ErrUnsupported):
			return zerr.Wrap(err, "failed to start process")
		}
	}

	proc := newCmd(ctx, cmd, env)
	// The same writer for both streams makes os/exec share a single pipe, preserving interleaving.
	proc.Stdout = stdout
	proc.Stderr = stderr
	return proc.Run()
}

func waitPTY(proc *exec.Cmd, ptmx *os.File, w io.Writer) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		// The PTY merges stdout and stderr. Reading fails with EIO once the child exits.
		_, _ = io.Copy(w, ptmx)
	}()

	err := proc.Wait()
	<-done
	_ = ptmx.Close()
	return err
}

func newCmd(ctx context.Context, cmd domain.Command, env []string) *exec.Cmd {
	name := cmd.Args[0]
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	proc := exec.CommandContext(ctx, executable, cmd.Args[1:]...) //nolint:gosec // toolchain command from configuration
	proc.Args[0] = name
	proc.Dir = cmd.Dir
	proc.Env = env
	return proc
}

// resolveEnvironment layers the command's entries over the inherited environment.
// A PATH entry of the command is prepended to the inherited PATH. The result is sorted by key.
func resolveEnvironment(sysEnv, cmdEnv []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(cmdEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for _, entry := range cmdEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath := envMap["PATH"]; sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH of env.
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
