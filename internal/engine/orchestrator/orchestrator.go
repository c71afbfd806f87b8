// Package orchestrator drives the per-platform compile and link pipelines.
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/bake/internal/engine/factory"
	"go.trai.ch/bake/internal/engine/runner"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// ManifestFile is the artifact manifest written into the binary directory.
	ManifestFile = "manifest.json"
	// CompileDatabaseFile is the clang compilation database written into the project root.
	CompileDatabaseFile = "compile_commands.json"
)

// Orchestrator builds every eligible platform of the catalog.
type Orchestrator struct {
	runner    *runner.Runner
	tracer    ports.Tracer
	resolver  ports.ToolchainResolver
	hasher    ports.Hasher
	manifest  ports.ManifestStore
	compdb    ports.CompileDatabaseWriter
	logger    ports.Logger
	platforms []domain.Platform
	now       func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPlatforms replaces the platform catalog iterated by Build.
func WithPlatforms(platforms []domain.Platform) Option {
	return func(o *Orchestrator) {
		o.platforms = slices.Clone(platforms)
	}
}

// WithClock sets the time source used for artifact timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// New creates an Orchestrator.
func New(
	r *runner.Runner,
	tracer ports.Tracer,
	resolver ports.ToolchainResolver,
	hasher ports.Hasher,
	manifest ports.ManifestStore,
	compdb ports.CompileDatabaseWriter,
	logger ports.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		runner:    r,
		tracer:    tracer,
		resolver:  resolver,
		hasher:    hasher,
		manifest:  manifest,
		compdb:    compdb,
		logger:    logger,
		platforms: domain.AllPlatforms(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Plan returns the compilation units of p in link order and the link job that consumes them.
// Languages without a configured source, or not supported by p, are left out.
func Plan(cfg *domain.Config, p domain.Platform) ([]domain.CompilationUnit, domain.LinkJob) {
	var units []domain.CompilationUnit
	objects := make([]string, 0, len(domain.Languages()))
	cxx := false

	for _, lang := range domain.Languages() {
		src, ok := cfg.Source(lang)
		if !ok || !p.Supports(lang) {
			continue
		}
		obj := filepath.Join(cfg.Layout.Obj, p.Dir(), cfg.App+"."+lang.Key()+p.ObjectExt())
		units = append(units, domain.CompilationUnit{
			Source:   src,
			Language: lang,
			Object:   obj,
			Release:  cfg.Release,
			Platform: p,
		})
		objects = append(objects, obj)
		cxx = cxx || lang == domain.LangCXX
	}

	job := domain.LinkJob{
		Objects:     objects,
		Libraries:   slices.Clone(cfg.Libraries[p.OS]),
		Output:      filepath.Join(cfg.Layout.Bin, p.Dir(), p.ExecutableName(cfg.App)),
		Release:     cfg.Release,
		MultiObject: len(objects) > 1,
		CXX:         cxx,
	}
	return units, job
}

// Build runs the pipeline of every eligible platform and returns the failures.
// A failing platform never stops another platform's pipeline. With cfg.Jobs above one,
// platforms run concurrently, each into its own log; logs are merged in catalog order.
func (o *Orchestrator) Build(ctx context.Context, cfg *domain.Config) *domain.FailureLog {
	f := factory.New(o.resolver, cfg.Toolchain)

	var platforms []domain.Platform
	for _, p := range o.platforms {
		if cfg.Eligible(p) {
			platforms = append(platforms, p)
		}
	}

	logs := make([]*domain.FailureLog, len(platforms))

	var g errgroup.Group
	g.SetLimit(cfg.Parallelism())
	for i, p := range platforms {
		g.Go(func() error {
			logs[i] = o.buildPlatform(ctx, f, cfg, p)
			return nil
		})
	}
	_ = g.Wait()

	merged := domain.NewFailureLog()
	for _, l := range logs {
		merged.Merge(l)
	}

	if cfg.CompileDatabase {
		o.writeCompileDatabase(f, cfg, platforms)
	}

	return merged
}

func (o *Orchestrator) buildPlatform(
	ctx context.Context,
	f *factory.Factory,
	cfg *domain.Config,
	p domain.Platform,
) *domain.FailureLog {
	log := domain.NewFailureLog()

	ctx, span := o.tracer.Start(ctx, p.String(), ports.WithPlatform(p.String()))
	defer span.End()

	units, job := Plan(cfg, p)
	if len(units) == 0 {
		err := zerr.With(domain.ErrNoSources, "platform", p.String())
		log.Append(domain.ProcessResult{Label: factory.LinkLabel(p, job.Output), Output: err.Error()})
		span.RecordError(err)
		return log
	}

	steps := make([]domain.BuildStep, 0, len(units)+1)
	for _, u := range units {
		steps = append(steps, f.CompileCommand(p, u, cfg.Unity))
	}
	steps = append(steps, f.LinkCommand(p, job))

	if !o.runSequence(ctx, steps, log) {
		span.RecordError(domain.ErrBuildFailed)
		return log
	}

	o.recordArtifact(cfg, p, job.Output)
	return log
}

// runSequence runs steps in order and stops at the first failure.
// It reports whether every step succeeded.
func (o *Orchestrator) runSequence(ctx context.Context, steps []domain.BuildStep, log *domain.FailureLog) bool {
	for _, step := range steps {
		if res := o.runner.Run(ctx, step, log); !res.Success {
			return false
		}
	}
	return true
}

func (o *Orchestrator) recordArtifact(cfg *domain.Config, p domain.Platform, output string) {
	info, err := os.Stat(output)
	if err != nil {
		o.logger.Warn("artifact missing after link: " + output)
		return
	}

	digest, err := o.hasher.ComputeFileHash(output)
	if err != nil {
		o.logger.Error(zerr.With(zerr.Wrap(err, "failed to hash artifact"), "path", output))
		return
	}

	path := output
	if rel, relErr := filepath.Rel(cfg.Layout.Bin, output); relErr == nil {
		path = filepath.ToSlash(rel)
	}

	rec := domain.ArtifactRecord{
		Platform:  p.String(),
		Path:      path,
		Digest:    digest,
		Size:      info.Size(),
		Timestamp: o.now().UTC(),
	}
	if err := o.manifest.Put(filepath.Join(cfg.Layout.Bin, ManifestFile), rec); err != nil {
		o.logger.Error(zerr.Wrap(err, "failed to record artifact"))
	}
}

// writeCompileDatabase emits the compile commands of the platform matching the host,
// or of the first eligible platform when the host is not built.
func (o *Orchestrator) writeCompileDatabase(f *factory.Factory, cfg *domain.Config, platforms []domain.Platform) {
	if len(platforms) == 0 {
		return
	}

	p := platforms[0]
	if i := slices.IndexFunc(platforms, func(p domain.Platform) bool { return p.OS == domain.HostOS() }); i >= 0 {
		p = platforms[i]
	}

	units, _ := Plan(cfg, p)
	entries := make([]domain.CompileEntry, 0, len(units))
	for _, u := range units {
		step := f.CompileCommand(p, u, cfg.Unity)
		if step.Err() != nil {
			continue
		}
		cmd := step.Command()
		dir := cmd.Dir
		if dir == "" {
			dir = cfg.Root
		}
		entries = append(entries, domain.CompileEntry{
			Directory: dir,
			File:      u.Source,
			Arguments: cmd.Args,
			Output:    u.Object,
		})
	}

	if err := o.compdb.Write(filepath.Join(cfg.Root, CompileDatabaseFile), entries); err != nil {
		o.logger.Error(zerr.Wrap(err, "failed to write compile database"))
	}
}
