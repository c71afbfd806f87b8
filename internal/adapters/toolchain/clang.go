// Package toolchain encodes compiler and linker command lines for the supported platforms.
package toolchain

import (
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/bake/internal/core/domain"
)

// Clang drives clang-compatible compilers through target triples.
type Clang struct {
	cc          string
	cxx         string
	androidAPI  int
	includeDirs []string
	defines     []string
}

// NewClang creates a Clang toolchain from the given configuration.
func NewClang(cfg domain.ToolchainConfig) *Clang {
	api := cfg.AndroidAPI
	if api <= 0 {
		api = domain.DefaultAndroidAPI
	}
	return &Clang{
		cc:          cfg.CC,
		cxx:         cfg.CXX,
		androidAPI:  api,
		includeDirs: cfg.IncludeDirs,
		defines:     cfg.Defines,
	}
}

// Triple returns the target triple for p.
func (c *Clang) Triple(p domain.Platform) string {
	arch := "x86_64"
	if p.Arch == domain.ArchARM64 {
		arch = "aarch64"
	}

	switch p.OS {
	case domain.OSMacOS:
		if p.Arch == domain.ArchARM64 {
			arch = "arm64"
		}
		return arch + "-apple-macos" + domain.MacOSDeploymentTarget
	case domain.OSIOS:
		return "arm64-apple-ios" + domain.IOSDeploymentTarget
	case domain.OSAndroid:
		return arch + "-linux-android" + strconv.Itoa(c.androidAPI)
	case domain.OSWindows:
		return arch + "-pc-windows-msvc"
	default:
		return arch + "-linux-gnu"
	}
}

// Compile returns the clang invocation that compiles unit.
func (c *Clang) Compile(unit domain.CompilationUnit, unity bool) domain.Command {
	driver := c.cc
	if unit.Language == domain.LangCXX {
		driver = c.cxx
	}

	args := []string{driver, "-target", c.Triple(unit.Platform)}
	switch unit.Language {
	case domain.LangCXX:
		args = append(args, "-std=c++17")
	case domain.LangObjC:
		args = append(args, "-x", "objective-c", "-fobjc-arc")
	default:
		args = append(args, "-std=c11")
	}

	if unit.Release {
		args = append(args, "-O2", "-DNDEBUG")
	} else {
		args = append(args, "-O0", "-g")
	}

	if unity {
		args = append(args, "-DUNITY_BUILD=1", "-I"+filepath.Dir(unit.Source))
	}
	for _, dir := range c.includeDirs {
		args = append(args, "-I"+dir)
	}
	for _, def := range c.defines {
		args = append(args, "-D"+def)
	}

	args = append(args, "-c", unit.Source, "-o", unit.Object)
	return domain.Command{Args: args}
}

// Link returns the clang invocation that links job for p.
// Jobs with C++ objects link through the C++ driver so the C++ runtime is pulled in.
func (c *Clang) Link(p domain.Platform, job domain.LinkJob) domain.Command {
	driver := c.cc
	if job.CXX {
		driver = c.cxx
	}

	args := []string{driver, "-target", c.Triple(p), "-o", job.Output}
	if !job.Release {
		args = append(args, "-g")
	}
	args = append(args, job.Objects...)

	for _, lib := range job.Libraries {
		args = append(args, linkFlags(p, lib)...)
	}
	return domain.Command{Args: args}
}

// linkFlags converts a library name into linker arguments.
// Paths and archives are passed as is, "Name.framework" links an Apple framework.
func linkFlags(p domain.Platform, lib string) []string {
	switch {
	case p.IsApple() && strings.HasSuffix(lib, ".framework"):
		return []string{"-framework", strings.TrimSuffix(lib, ".framework")}
	case strings.ContainsAny(lib, `/\`), strings.HasSuffix(lib, ".a"), strings.HasSuffix(lib, ".so"):
		return []string{lib}
	default:
		return []string{"-l" + strings.TrimPrefix(lib, "lib")}
	}
}
