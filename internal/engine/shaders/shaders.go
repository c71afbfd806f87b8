// Package shaders recompiles the shader sources of a project.
package shaders

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
)

// SourceExt is the extension of shader sources.
const SourceExt = ".wgsl"

// Label returns the failure label of the shader at rel.
func Label(rel string) string {
	return "Shader " + rel
}

// Dispatcher compiles every shader below the configured source directory.
type Dispatcher struct {
	walker   ports.FileWalker
	compiler ports.ShaderCompiler
	tracer   ports.Tracer
	logger   ports.Logger
}

// New creates a Dispatcher.
func New(walker ports.FileWalker, compiler ports.ShaderCompiler, tracer ports.Tracer, logger ports.Logger) *Dispatcher {
	return &Dispatcher{
		walker:   walker,
		compiler: compiler,
		tracer:   tracer,
		logger:   logger,
	}
}

// Rebuild compiles each shader into every configured format and returns the failures.
// A failing shader does not stop the others.
func (d *Dispatcher) Rebuild(ctx context.Context, cfg *domain.Config) *domain.FailureLog {
	log := domain.NewFailureLog()

	if _, err := os.Stat(cfg.Shaders.Source); err != nil {
		d.logger.Warn("shader directory not found: " + cfg.Shaders.Source)
		return log
	}

	ctx, span := d.tracer.Start(ctx, "Shaders")
	defer span.End()

	var count int
	for path := range d.walker.WalkFiles(cfg.Shaders.Source, SourceExt) {
		if ctx.Err() != nil {
			break
		}
		count++
		if err := d.compileOne(ctx, cfg, path); err != nil {
			log.Append(domain.ProcessResult{Label: Label(rel(cfg.Shaders.Source, path)), Output: err.Error()})
		}
	}

	if count == 0 {
		d.logger.Warn("no shaders found in " + cfg.Shaders.Source)
	}
	if log.Len() > 0 {
		span.RecordError(domain.ErrBuildFailed)
	}
	return log
}

func (d *Dispatcher) compileOne(ctx context.Context, cfg *domain.Config, path string) (err error) {
	name := rel(cfg.Shaders.Source, path)

	_, span := d.tracer.Start(ctx, Label(name))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	src, err := os.ReadFile(path) //nolint:gosec // path comes from walking the shader directory
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read shader"), "path", path)
	}

	artifacts, err := d.compiler.Compile(name, src, cfg.Shaders.Formats, !cfg.Release)
	if err != nil {
		return err
	}

	base := filepath.Join(cfg.Shaders.Output, filepath.FromSlash(strings.TrimSuffix(name, SourceExt)))
	if err := os.MkdirAll(filepath.Dir(base), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create shader output directory"), "path", filepath.Dir(base))
	}

	for _, a := range artifacts {
		out := base + "." + string(a.Format)
		if err := os.WriteFile(out, a.Data, domain.FilePerm); err != nil { //nolint:gosec // output files are meant to be world-readable
			return zerr.With(zerr.Wrap(err, "failed to write shader artifact"), "path", out)
		}
		_, _ = span.Write([]byte("wrote " + out + "\n"))
	}
	return nil
}

func rel(root, path string) string {
	r, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(r)
}
