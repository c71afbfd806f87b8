package ports

import "go.trai.ch/bake/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks

// Toolchain encodes compiler and linker invocations for one platform.
// Implementations must be pure: equal inputs produce equal commands.
type Toolchain interface {
	// Compile returns the command that compiles unit into its object file.
	Compile(unit domain.CompilationUnit, unity bool) domain.Command
	// Link returns the command that links job into an executable.
	// Objects keep their order and libraries follow them.
	Link(p domain.Platform, job domain.LinkJob) domain.Command
}

// ToolchainResolver selects the toolchain for a platform.
type ToolchainResolver interface {
	// Resolve returns the toolchain that targets p.
	// It returns domain.ErrNoToolchain if p cannot be targeted.
	Resolve(p domain.Platform, cfg domain.ToolchainConfig) (Toolchain, error)
}
