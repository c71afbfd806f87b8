package ports

import (
	"context"

	"go.trai.ch/bake/internal/core/domain"
)

// ProjectGenerator emits IDE or build-tool scaffolding for a mobile target.
//
//go:generate go run go.uber.org/mock/mockgen -source=project_generator.go -destination=mocks/mock_project_generator.go -package=mocks
type ProjectGenerator interface {
	// Generate writes the project described by spec into spec.OutputDir.
	Generate(ctx context.Context, spec domain.ProjectSpec) error
}
