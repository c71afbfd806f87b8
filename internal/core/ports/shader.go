package ports

import "go.trai.ch/bake/internal/core/domain"

// ShaderCompiler translates shader sources into the configured output formats.
//
//go:generate go run go.uber.org/mock/mockgen -source=shader.go -destination=mocks/mock_shader.go -package=mocks
type ShaderCompiler interface {
	// Compile compiles the WGSL source named name into every requested format.
	// Artifacts are returned in the order of formats.
	Compile(name string, src []byte, formats []domain.ShaderFormat, debug bool) ([]domain.ShaderArtifact, error)
}
