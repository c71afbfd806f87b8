package app_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bake/internal/adapters/detector"
	"go.trai.ch/bake/internal/app"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/bake/internal/core/ports/mocks"
	"go.trai.ch/bake/internal/engine/reporter"
	"go.uber.org/mock/gomock"
)

type fakePipeline struct {
	calls   int
	configs []*domain.Config
	fail    []domain.ProcessResult
}

func (f *fakePipeline) run(cfg *domain.Config) *domain.FailureLog {
	f.calls++
	f.configs = append(f.configs, cfg)
	log := domain.NewFailureLog()
	for _, r := range f.fail {
		log.Append(r)
	}
	return log
}

type fakeBuilder struct{ fakePipeline }

func (f *fakeBuilder) Build(_ context.Context, cfg *domain.Config) *domain.FailureLog {
	return f.run(cfg)
}

type fakeShaders struct{ fakePipeline }

func (f *fakeShaders) Rebuild(_ context.Context, cfg *domain.Config) *domain.FailureLog {
	return f.run(cfg)
}

type appFixture struct {
	app      *app.App
	loader   *mocks.MockConfigLoader
	builder  *fakeBuilder
	shaders  *fakeShaders
	android  *mocks.MockProjectGenerator
	xcode    *mocks.MockProjectGenerator
	watcher  *mocks.MockWatcher
	summary  *bytes.Buffer
	cfg      *domain.Config
	renderer *mocks.MockRenderer
}

func setupApp(t *testing.T) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &appFixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		builder:  &fakeBuilder{},
		shaders:  &fakeShaders{},
		android:  mocks.NewMockProjectGenerator(ctrl),
		xcode:    mocks.NewMockProjectGenerator(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		renderer: mocks.NewMockRenderer(ctrl),
		summary:  new(bytes.Buffer),
		cfg:      domain.DefaultConfig(filepath.Join(t.TempDir(), "Vizkaar")),
	}

	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		return len(p), nil
	}).AnyTimes()

	f.renderer.EXPECT().Start(gomock.Any()).Return(nil).AnyTimes()
	f.renderer.EXPECT().Stop().Return(nil).AnyTimes()
	f.renderer.EXPECT().Wait().Return(nil).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	f.app = app.New(f.loader, f.builder, f.shaders, f.android, f.xcode, tracer, f.renderer, f.watcher, log).
		WithSummaryOutput(f.summary)
	return f
}

func (f *appFixture) expectConfig(path string) {
	f.loader.EXPECT().Load(path).Return(f.cfg, nil)
}

func TestRun_DirectBuildSuccess(t *testing.T) {
	f := setupApp(t)
	f.expectConfig(domain.DefaultConfigFile)

	status, err := f.app.Run(context.Background(), domain.ModeDirectBuild, app.Options{})

	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, 1, f.builder.calls)
	assert.Equal(t, 0, f.shaders.calls)
	assert.Contains(t, f.summary.String(), reporter.SuccessMessage)
}

func TestRun_DirectBuildFailureSetsExitStatus(t *testing.T) {
	f := setupApp(t)
	f.expectConfig(domain.DefaultConfigFile)
	f.builder.fail = []domain.ProcessResult{
		{Label: "macOS-ARM64 C++ Compile", Output: "error: expected ';'"},
	}

	status, err := f.app.Run(context.Background(), domain.ModeDirectBuild, app.Options{})

	require.NoError(t, err)
	assert.Equal(t, 1, status)
	assert.Contains(t, f.summary.String(), "macOS-ARM64 C++ Compile")
}

func TestRun_OverridesFromOptions(t *testing.T) {
	f := setupApp(t)
	f.expectConfig("custom/bake.yaml")
	release := false

	_, err := f.app.Run(context.Background(), domain.ModeDirectBuild, app.Options{
		ConfigPath: "custom/bake.yaml",
		Jobs:       4,
		Release:    &release,
	})

	require.NoError(t, err)
	require.Len(t, f.builder.configs, 1)
	assert.Equal(t, 4, f.builder.configs[0].Jobs)
	assert.False(t, f.builder.configs[0].Release)
}

func TestRun_ShadersOnly(t *testing.T) {
	f := setupApp(t)
	f.expectConfig(domain.DefaultConfigFile)

	mode := app.SelectMode(app.Flags{RebuildShaders: true})
	status, err := f.app.Run(context.Background(), mode, app.Options{})

	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, 1, f.shaders.calls)
	assert.Equal(t, 0, f.builder.calls, "no platform pipeline runs in shader mode")
}

func TestRun_AndroidWinsOverShaders(t *testing.T) {
	f := setupApp(t)
	f.expectConfig(domain.DefaultConfigFile)

	f.android.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.ProjectSpec) error {
			assert.Equal(t, "Vizkaar", spec.AppName)
			assert.Equal(t, filepath.Join(f.cfg.Layout.Projects, "Android"), spec.OutputDir)
			assert.Equal(t, f.cfg.EntryPoints(), spec.Sources)
			assert.Equal(t, domain.DefaultAndroidAPI, spec.AndroidAPI)
			assert.True(t, spec.Unity)
			return nil
		},
	)

	mode := app.SelectMode(app.Flags{GenAndroid: true, RebuildShaders: true})
	status, err := f.app.Run(context.Background(), mode, app.Options{})

	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, 0, f.shaders.calls)
	assert.Equal(t, 0, f.builder.calls)
}

func TestRun_GeneratedProjectFollowsUnitySetting(t *testing.T) {
	f := setupApp(t)
	f.expectConfig(domain.DefaultConfigFile)
	f.cfg.Unity = false

	f.xcode.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.ProjectSpec) error {
			assert.False(t, spec.Unity)
			return nil
		},
	)

	status, err := f.app.Run(context.Background(), domain.ModeGenerateXcodeProject, app.Options{})

	require.NoError(t, err)
	assert.Equal(t, 0, status)
}

func TestRun_GeneratorFailureIsRecorded(t *testing.T) {
	f := setupApp(t)
	f.expectConfig(domain.DefaultConfigFile)
	f.cfg.Libraries[domain.OSMacOS] = []string{"Cocoa.framework", "Metal.framework"}
	f.cfg.Libraries[domain.OSIOS] = []string{"UIKit.framework", "Metal.framework"}

	f.xcode.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.ProjectSpec) error {
			assert.Equal(t, []string{"UIKit.framework", "Metal.framework", "Cocoa.framework"}, spec.Libraries)
			return errors.New("permission denied")
		},
	)

	status, err := f.app.Run(context.Background(), domain.ModeGenerateXcodeProject, app.Options{})

	require.NoError(t, err)
	assert.Equal(t, 1, status)
	assert.Contains(t, f.summary.String(), app.XcodeProjectLabel)
	assert.Contains(t, f.summary.String(), "permission denied")
}

func TestRun_ConfigErrorIsReturned(t *testing.T) {
	f := setupApp(t)
	f.loader.EXPECT().Load(domain.DefaultConfigFile).Return(nil, domain.ErrInvalidConfig)

	status, err := f.app.Run(context.Background(), domain.ModeDirectBuild, app.Options{})

	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Equal(t, 1, status)
	assert.Equal(t, 0, f.builder.calls)
	assert.Empty(t, f.summary.String())
}

func TestRun_WatchRebuildsOnChange(t *testing.T) {
	f := setupApp(t)
	f.expectConfig(domain.DefaultConfigFile)

	changes := make(chan []string, 2)
	changes <- []string{filepath.Join(f.cfg.Root, "Source", "zzzz_Unity.c")}
	changes <- []string{filepath.Join(f.cfg.Root, "Source", "render.c")}
	close(changes)

	f.watcher.EXPECT().Watch(gomock.Any(), []string{filepath.Join(f.cfg.Root, "Source")}).
		Return((<-chan []string)(changes), nil)

	status, err := f.app.Run(context.Background(), domain.ModeDirectBuild, app.Options{Watch: true})

	require.NoError(t, err)
	assert.Equal(t, 0, status)
	assert.Equal(t, 3, f.builder.calls)
}

func TestRun_WatchShadersObservesShaderDirectory(t *testing.T) {
	f := setupApp(t)
	f.expectConfig(domain.DefaultConfigFile)

	changes := make(chan []string)
	close(changes)
	f.watcher.EXPECT().Watch(gomock.Any(), []string{f.cfg.Shaders.Source}).
		Return((<-chan []string)(changes), nil)

	_, err := f.app.Run(context.Background(), domain.ModeRebuildShaders, app.Options{Watch: true})

	require.NoError(t, err)
	assert.Equal(t, 1, f.shaders.calls)
}

func TestRun_InvalidOutputModeIsConfigurationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	builder := &fakeBuilder{}

	display := detector.NewDisplay(mocks.NewMockRenderer(ctrl), mocks.NewMockRenderer(ctrl))
	a := app.New(loader, builder, &fakeShaders{}, nil, nil, mocks.NewMockTracer(ctrl), display,
		mocks.NewMockWatcher(ctrl), log)

	loader.EXPECT().Load(domain.DefaultConfigFile).Return(domain.DefaultConfig(t.TempDir()), nil)

	status, err := a.Run(context.Background(), domain.ModeDirectBuild, app.Options{Output: "fancy"})

	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Equal(t, 1, status)
	assert.Equal(t, 0, builder.calls)
}
