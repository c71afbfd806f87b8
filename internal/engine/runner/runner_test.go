package runner_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/bake/internal/core/ports/mocks"
	"go.trai.ch/bake/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

type runnerMocks struct {
	executor *mocks.MockExecutor
	tracer   *mocks.MockTracer
	span     *mocks.MockSpan
}

func setupRunner(t *testing.T) (*runner.Runner, runnerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := runnerMocks{
		executor: mocks.NewMockExecutor(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
		span:     mocks.NewMockSpan(ctrl),
	}

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, m.span
		},
	).AnyTimes()
	m.span.EXPECT().End().Times(1)
	m.span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.span.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		return len(p), nil
	}).AnyTimes()

	return runner.New(m.executor, m.tracer), m
}

func TestRun_Success(t *testing.T) {
	r, m := setupRunner(t)
	out := filepath.Join(t.TempDir(), "obj", "windows-x64", "app.c.obj")
	step := domain.NewBuildStep("Windows-x64 C Compile", domain.Command{
		Args:    []string{"cl", "/c", "app.c"},
		Outputs: []string{out},
	})

	m.executor.EXPECT().Execute(gomock.Any(), step.Command(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Command, stdout, _ io.Writer) error {
			_, err := io.WriteString(stdout, "app.c\n")
			return err
		})

	log := domain.NewFailureLog()
	res := r.Run(context.Background(), step, log)

	assert.True(t, res.Success)
	assert.Equal(t, "Windows-x64 C Compile", res.Label)
	assert.Equal(t, "app.c\n", res.Output)
	assert.Equal(t, 0, log.Len(), "successes are not retained")

	_, err := os.Stat(filepath.Dir(out))
	assert.NoError(t, err, "output directory should be created before execution")
}

func TestRun_FailureIsRecorded(t *testing.T) {
	r, m := setupRunner(t)
	step := domain.NewBuildStep("macOS-ARM64 C++ Compile", domain.Command{Args: []string{"clang++"}})
	execErr := errors.New("exit status 1")

	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Command, _, stderr io.Writer) error {
			_, _ = io.WriteString(stderr, "app.cpp:3: error: expected ';'\n")
			return execErr
		}).Times(1)
	m.span.EXPECT().RecordError(execErr)

	log := domain.NewFailureLog()
	res := r.Run(context.Background(), step, log)

	assert.False(t, res.Success)
	require.Equal(t, 1, log.Len())
	entry := log.Entries()[0]
	assert.Equal(t, "macOS-ARM64 C++ Compile", entry.Label)
	assert.Equal(t, "app.cpp:3: error: expected ';'\nexit status 1", entry.Output)
}

func TestRun_DeferredStepError(t *testing.T) {
	r, m := setupRunner(t)
	step := domain.NewFailedStep("iOS-ARM64 App Link", domain.ErrNoToolchain)
	m.span.EXPECT().RecordError(domain.ErrNoToolchain)

	log := domain.NewFailureLog()
	res := r.Run(context.Background(), step, log)

	assert.False(t, res.Success)
	assert.Equal(t, domain.ErrNoToolchain.Error(), res.Output)
	assert.Equal(t, 1, log.Len())
}

func TestRun_EmptyCommand(t *testing.T) {
	r, m := setupRunner(t)
	m.span.EXPECT().RecordError(gomock.Any())

	log := domain.NewFailureLog()
	res := r.Run(context.Background(), domain.NewBuildStep("empty", domain.Command{}), log)

	assert.False(t, res.Success)
	assert.Contains(t, res.Output, domain.ErrEmptyCommand.Error())
}

func TestRun_NilLog(t *testing.T) {
	r, m := setupRunner(t)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))
	m.span.EXPECT().RecordError(gomock.Any())

	res := r.Run(context.Background(), domain.NewBuildStep("step", domain.Command{Args: []string{"false"}}), nil)

	assert.False(t, res.Success)
	assert.Equal(t, "boom", res.Output)
}
