//go:build !windows

package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bake/internal/adapters/shell"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T, opts ...shell.Option) *shell.Executor {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewExecutor(log, opts...)
}

func TestExecutor_CombinedOutput(t *testing.T) {
	e := newExecutor(t, shell.WithPTY(false))

	var buf bytes.Buffer
	err := e.Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "echo out; echo err 1>&2"},
		Dir:  t.TempDir(),
	}, &buf, &buf)

	require.NoError(t, err)
	assert.Equal(t, "out\nerr\n", buf.String())
}

func TestExecutor_PTY(t *testing.T) {
	if _, err := os.Stat("/dev/ptmx"); err != nil {
		t.Skip("no pseudo-terminal support")
	}
	e := newExecutor(t)

	var buf bytes.Buffer
	err := e.Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "echo hello"},
	}, &buf, &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hello")
}

func TestExecutor_WorkingDirAndEnv(t *testing.T) {
	e := newExecutor(t, shell.WithPTY(false))
	dir := t.TempDir()

	var buf bytes.Buffer
	err := e.Execute(context.Background(), domain.Command{
		Args: []string{"sh", "-c", "pwd; echo $BAKE_TEST_VALUE"},
		Dir:  dir,
		Env:  []string{"BAKE_TEST_VALUE=42"},
	}, &buf, &buf)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	wantDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(lines[0])
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir)
	assert.Equal(t, "42", lines[1])
}

func TestExecutor_ExitCode(t *testing.T) {
	e := newExecutor(t, shell.WithPTY(false))

	var buf bytes.Buffer
	err := e.Execute(context.Background(), domain.Command{Args: []string{"sh", "-c", "exit 3"}}, &buf, &buf)

	require.Error(t, err)
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	assert.Equal(t, "sh", zErr.Metadata()["program"])
}

func TestExecutor_MissingProgram(t *testing.T) {
	e := newExecutor(t, shell.WithPTY(false))

	err := e.Execute(context.Background(), domain.Command{Args: []string{"bake-no-such-tool"}}, os.Stdout, os.Stdout)

	assert.Error(t, err)
}

func TestExecutor_EmptyCommand(t *testing.T) {
	e := newExecutor(t)

	err := e.Execute(context.Background(), domain.Command{}, os.Stdout, os.Stdout)

	assert.ErrorIs(t, err, domain.ErrEmptyCommand)
}

func TestResolveEnvironment(t *testing.T) {
	sep := string(os.PathListSeparator)
	env := shell.ResolveEnvironment(
		[]string{"PATH=/usr/bin", "HOME=/home/dev", "CC=gcc"},
		[]string{"PATH=/opt/ndk/bin", "CC=clang", "INVALID"},
	)

	assert.Equal(t, []string{
		"CC=clang",
		"HOME=/home/dev",
		"PATH=/opt/ndk/bin" + sep + "/usr/bin",
	}, env)
}
