// Package shader compiles WGSL shader sources with the naga shader translator.
package shader

import (
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"
	"github.com/gogpu/naga/spirv"
	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
)

// Compiler implements ports.ShaderCompiler. A source is parsed and validated once,
// then emitted once per requested format.
type Compiler struct{}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile translates the WGSL source into every requested format, in request order.
func (c *Compiler) Compile(name string, src []byte, formats []domain.ShaderFormat, debug bool) ([]domain.ShaderArtifact, error) {
	source := string(src)

	ast, err := naga.Parse(source)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse shader"), "shader", name)
	}

	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to lower shader"), "shader", name)
	}

	issues, err := naga.Validate(module)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to validate shader"), "shader", name)
	}
	if len(issues) > 0 {
		return nil, zerr.With(zerr.With(zerr.Wrap(&issues[0], "shader validation failed"), "shader", name), "issues", len(issues))
	}

	artifacts := make([]domain.ShaderArtifact, 0, len(formats))
	for _, format := range formats {
		data, err := emit(module, format, debug)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "shader", name), "shader_format", string(format))
		}
		artifacts = append(artifacts, domain.ShaderArtifact{Format: format, Data: data})
	}
	return artifacts, nil
}

func emit(module *ir.Module, format domain.ShaderFormat, debug bool) ([]byte, error) {
	switch format {
	case domain.ShaderSPIRV:
		data, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3, Debug: debug})
		if err != nil {
			return nil, zerr.Wrap(err, "failed to generate spir-v")
		}
		return data, nil
	case domain.ShaderMSL:
		src, _, err := msl.Compile(module, msl.DefaultOptions())
		if err != nil {
			return nil, zerr.Wrap(err, "failed to generate metal shading language")
		}
		return []byte(src), nil
	case domain.ShaderHLSL:
		src, _, err := hlsl.Compile(module, hlsl.DefaultOptions())
		if err != nil {
			return nil, zerr.Wrap(err, "failed to generate hlsl")
		}
		return []byte(src), nil
	case domain.ShaderGLSL:
		src, _, err := glsl.Compile(module, glsl.DefaultOptions())
		if err != nil {
			return nil, zerr.Wrap(err, "failed to generate glsl")
		}
		return []byte(src), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unknown shader format"), "shader_format", string(format))
	}
}
