package toolchain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/bake/internal/core/domain"
)

// MSVC drives the Microsoft compiler and linker.
type MSVC struct {
	cl          string
	link        string
	includeDirs []string
	defines     []string
}

// NewMSVC creates an MSVC toolchain from the given configuration.
func NewMSVC(cfg domain.ToolchainConfig) *MSVC {
	return &MSVC{
		cl:          cfg.CL,
		link:        cfg.Link,
		includeDirs: cfg.IncludeDirs,
		defines:     cfg.Defines,
	}
}

// Compile returns the cl invocation that compiles unit.
func (m *MSVC) Compile(unit domain.CompilationUnit, unity bool) domain.Command {
	args := []string{m.cl, "/nologo", "/c"}

	if unit.Language == domain.LangCXX {
		args = append(args, "/TP", "/std:c++17", "/EHsc")
	} else {
		args = append(args, "/TC", "/std:c11")
	}

	if unit.Release {
		args = append(args, "/O2", "/DNDEBUG")
	} else {
		args = append(args, "/Od", "/Zi")
	}

	if unity {
		args = append(args, "/DUNITY_BUILD=1", "/I"+filepath.Dir(unit.Source))
	}
	for _, dir := range m.includeDirs {
		args = append(args, "/I"+dir)
	}
	for _, def := range m.defines {
		args = append(args, "/D"+def)
	}

	args = append(args, "/Fo"+unit.Object, unit.Source)
	return domain.Command{Args: args}
}

// Link returns the link.exe invocation that links job for p.
func (m *MSVC) Link(p domain.Platform, job domain.LinkJob) domain.Command {
	machine := "X64"
	if p.Arch == domain.ArchARM64 {
		machine = "ARM64"
	}

	args := []string{m.link, "/NOLOGO", "/MACHINE:" + machine, "/OUT:" + job.Output}
	if !job.Release {
		args = append(args, "/DEBUG")
	}
	args = append(args, job.Objects...)

	for _, lib := range job.Libraries {
		if !strings.EqualFold(filepath.Ext(lib), ".lib") {
			lib += ".lib"
		}
		args = append(args, lib)
	}
	return domain.Command{Args: args}
}
