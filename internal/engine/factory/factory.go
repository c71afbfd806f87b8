// Package factory turns compilation units and link jobs into build steps.
package factory

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory constructs build steps without running them.
// It holds no mutable state: equal inputs produce equal steps.
type Factory struct {
	resolver ports.ToolchainResolver
	cfg      domain.ToolchainConfig
}

// New creates a Factory that encodes commands with the toolchains of resolver.
func New(resolver ports.ToolchainResolver, cfg domain.ToolchainConfig) *Factory {
	return &Factory{resolver: resolver, cfg: cfg}
}

// CompileLabel returns the report label of a compile step.
func CompileLabel(p domain.Platform, lang domain.Language) string {
	return fmt.Sprintf("%s %s Compile", p, lang)
}

// LinkLabel returns the report label of a link step.
func LinkLabel(p domain.Platform, output string) string {
	return fmt.Sprintf("%s %s Link", p, filepath.Base(output))
}

// CompileCommand returns the step compiling unit for p.
// The unit's source is not checked for existence.
func (f *Factory) CompileCommand(p domain.Platform, unit domain.CompilationUnit, unity bool) domain.BuildStep {
	label := CompileLabel(p, unit.Language)

	tc, err := f.resolve(p)
	if err != nil {
		return domain.NewFailedStep(label, err)
	}
	if !p.Supports(unit.Language) {
		return domain.NewFailedStep(label, zerr.With(
			zerr.Wrap(domain.ErrNoToolchain, "language not supported on platform"),
			"language", unit.Language.String(),
		))
	}

	unit.Platform = p
	cmd := tc.Compile(unit, unity)
	cmd.Outputs = append(cmd.Outputs, unit.Object)
	return domain.NewBuildStep(label, cmd)
}

// LinkCommand returns the step linking job for p.
// Objects keep the order of job.Objects and libraries follow them.
func (f *Factory) LinkCommand(p domain.Platform, job domain.LinkJob) domain.BuildStep {
	label := LinkLabel(p, job.Output)

	tc, err := f.resolve(p)
	if err != nil {
		return domain.NewFailedStep(label, err)
	}

	cmd := tc.Link(p, job)
	cmd.Outputs = append(cmd.Outputs, job.Output)
	return domain.NewBuildStep(label, cmd)
}

func (f *Factory) resolve(p domain.Platform) (ports.Toolchain, error) {
	if f.resolver == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoToolchain, "no toolchain resolver"), "platform", p.String())
	}
	tc, err := f.resolver.Resolve(p, f.cfg)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve toolchain"), "platform", p.String())
	}
	return tc, nil
}
