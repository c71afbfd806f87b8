// Package app implements the application layer for bake.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/bake/internal/adapters/detector" //nolint:depguard // Output selection happens in app layer
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/bake/internal/engine/reporter"
	"go.trai.ch/zerr"
)

const (
	// AndroidProjectLabel labels the failure of the Android project generator.
	AndroidProjectLabel = "Android Project Generation"
	// XcodeProjectLabel labels the failure of the Xcode project generator.
	XcodeProjectLabel = "Xcode Project Generation"
)

// Builder runs the direct build pipelines of every eligible platform.
type Builder interface {
	Build(ctx context.Context, cfg *domain.Config) *domain.FailureLog
}

// ShaderRebuilder recompiles the shader sources of a project.
type ShaderRebuilder interface {
	Rebuild(ctx context.Context, cfg *domain.Config) *domain.FailureLog
}

// handler runs the work of one BuildMode and returns its failures.
type handler func(ctx context.Context, cfg *domain.Config) *domain.FailureLog

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      Builder
	shaders      ShaderRebuilder
	android      ports.ProjectGenerator
	xcode        ports.ProjectGenerator
	tracer       ports.Tracer
	renderer     ports.Renderer
	watcher      ports.Watcher
	logger       ports.Logger
	summary      io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	builder Builder,
	shaders ShaderRebuilder,
	android ports.ProjectGenerator,
	xcode ports.ProjectGenerator,
	tracer ports.Tracer,
	renderer ports.Renderer,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      builder,
		shaders:      shaders,
		android:      android,
		xcode:        xcode,
		tracer:       tracer,
		renderer:     renderer,
		watcher:      watcher,
		logger:       log,
		summary:      os.Stdout,
	}
}

// WithSummaryOutput sets the writer the result summary is printed to.
func (a *App) WithSummaryOutput(w io.Writer) *App {
	a.summary = w
	return a
}

// Options configures a single invocation.
type Options struct {
	// ConfigPath is the bake.yaml to load. Empty means bake.yaml in the working directory.
	ConfigPath string
	// Jobs overrides the configured platform concurrency when positive.
	Jobs int
	// Release overrides the configured optimization mode when set.
	Release *bool
	// Verbose enables debug logging.
	Verbose bool
	// LogJSON switches the logger to JSON records.
	LogJSON bool
	// Watch re-runs the mode whenever a source file changes.
	Watch bool
	// Output selects the renderer: auto, tui or linear.
	Output string
}

// Run loads the configuration, runs the handler of mode and prints the summary.
// It returns the exit status derived from the failures of the run.
// Configuration errors are returned as errors and never recorded as failures.
func (a *App) Run(ctx context.Context, mode domain.BuildMode, opts Options) (int, error) {
	a.configureLogger(opts)

	cfg, err := a.loadConfig(opts)
	if err != nil {
		return 1, err
	}

	if err := a.selectOutput(opts.Output); err != nil {
		return 1, err
	}

	a.logger.Debug("mode: " + mode.String())

	if opts.Watch {
		return a.watch(ctx, mode, cfg)
	}
	return a.runOnce(ctx, mode, cfg)
}

func (a *App) runOnce(ctx context.Context, mode domain.BuildMode, cfg *domain.Config) (int, error) {
	if err := a.renderer.Start(ctx); err != nil {
		return 1, zerr.Wrap(err, "failed to start renderer")
	}

	log := a.handler(mode)(ctx, cfg)

	if err := a.renderer.Stop(); err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to stop renderer"))
	}
	if err := a.renderer.Wait(); err != nil {
		a.logger.Error(zerr.Wrap(err, "renderer terminated with error"))
	}

	if err := reporter.PrintSummary(a.summary, log); err != nil {
		return 1, zerr.Wrap(err, "failed to print summary")
	}
	return reporter.ExitStatus(log), nil
}

// handler returns the function that runs mode. Exactly one handler runs per invocation.
func (a *App) handler(mode domain.BuildMode) handler {
	switch mode {
	case domain.ModeGenerateAndroidProject:
		return a.generateAndroid
	case domain.ModeGenerateXcodeProject:
		return a.generateXcode
	case domain.ModeRebuildShaders:
		return a.shaders.Rebuild
	default:
		return a.builder.Build
	}
}

func (a *App) generateAndroid(ctx context.Context, cfg *domain.Config) *domain.FailureLog {
	return a.generate(ctx, a.android, AndroidProjectLabel, projectSpec(cfg, "Android", domain.OSAndroid))
}

func (a *App) generateXcode(ctx context.Context, cfg *domain.Config) *domain.FailureLog {
	return a.generate(ctx, a.xcode, XcodeProjectLabel, projectSpec(cfg, "Xcode", domain.OSIOS, domain.OSMacOS))
}

// generate runs gen and records its error as a failure under label.
func (a *App) generate(
	ctx context.Context,
	gen ports.ProjectGenerator,
	label string,
	spec domain.ProjectSpec,
) *domain.FailureLog {
	log := domain.NewFailureLog()

	ctx, span := a.tracer.Start(ctx, label)
	defer span.End()

	if err := gen.Generate(ctx, spec); err != nil {
		span.RecordError(err)
		log.Append(domain.ProcessResult{Label: label, Output: err.Error()})
		return log
	}

	_, _ = span.Write([]byte("generated " + spec.OutputDir + "\n"))
	return log
}

// projectSpec describes the project generated into <projects>/<dir>.
// Libraries of every OS in oses are included once, in order.
func projectSpec(cfg *domain.Config, dir string, oses ...domain.OS) domain.ProjectSpec {
	var libs []string
	seen := make(map[string]struct{})
	for _, o := range oses {
		for _, lib := range cfg.Libraries[o] {
			if _, ok := seen[lib]; ok {
				continue
			}
			seen[lib] = struct{}{}
			libs = append(libs, lib)
		}
	}

	return domain.ProjectSpec{
		AppName:     cfg.App,
		PackageID:   cfg.Package,
		OutputDir:   filepath.Join(cfg.Layout.Projects, dir),
		Sources:     cfg.EntryPoints(),
		IncludeDirs: cfg.Toolchain.IncludeDirs,
		Libraries:   libs,
		AndroidAPI:  cfg.Toolchain.AndroidAPI,
		Release:     cfg.Release,
		Unity:       cfg.Unity,
	}
}

func (a *App) loadConfig(opts Options) (*domain.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = domain.DefaultConfigFile
	}

	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Jobs > 0 {
		cfg.Jobs = opts.Jobs
	}
	if opts.Release != nil {
		cfg.Release = *opts.Release
	}
	return cfg, nil
}

// outputSelector is implemented by renderers that switch between presentations.
type outputSelector interface {
	Select(mode string) (detector.OutputMode, error)
}

func (a *App) selectOutput(mode string) error {
	s, ok := a.renderer.(outputSelector)
	if !ok {
		return nil
	}
	resolved, err := s.Select(mode)
	if err != nil {
		return err
	}
	a.logger.Debug("output: " + resolved.String())
	return nil
}

type levelSetter interface {
	SetDebug(enable bool)
	SetJSON(enable bool)
}

func (a *App) configureLogger(opts Options) {
	if l, ok := a.logger.(levelSetter); ok {
		l.SetJSON(opts.LogJSON)
		l.SetDebug(opts.Verbose)
	}
}
