// Package domain holds the core types of the bake build orchestrator.
package domain

import (
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// OS identifies a target operating system.
type OS string

const (
	// OSWindows targets Microsoft Windows.
	OSWindows OS = "windows"
	// OSLinux targets Linux.
	OSLinux OS = "linux"
	// OSMacOS targets Apple macOS.
	OSMacOS OS = "macos"
	// OSAndroid targets Android.
	OSAndroid OS = "android"
	// OSIOS targets Apple iOS.
	OSIOS OS = "ios"
)

// Arch identifies a target CPU architecture.
type Arch string

const (
	// ArchX64 is x86-64.
	ArchX64 Arch = "x64"
	// ArchARM64 is AArch64.
	ArchARM64 Arch = "arm64"
)

const (
	// MacOSDeploymentTarget is the minimum macOS version of Apple builds and projects.
	MacOSDeploymentTarget = "11.0"
	// IOSDeploymentTarget is the minimum iOS version of Apple builds and projects.
	IOSDeploymentTarget = "14.0"
)

// Platform is an (operating system, architecture) pair the orchestrator can target.
type Platform struct {
	OS         OS
	Arch       Arch
	PrettyOS   string
	PrettyArch string
}

// String returns the display name used in step labels, e.g. "Windows-x64".
func (p Platform) String() string {
	return p.PrettyOS + "-" + p.PrettyArch
}

// Dir returns the directory name that namespaces this platform's artifacts.
func (p Platform) Dir() string {
	return string(p.OS) + "-" + string(p.Arch)
}

// IsApple reports whether the platform uses the Apple toolchain and frameworks.
func (p Platform) IsApple() bool {
	return p.OS == OSMacOS || p.OS == OSIOS
}

// Supports reports whether sources of the given language are compiled for this platform.
func (p Platform) Supports(lang Language) bool {
	if lang == LangObjC {
		return p.IsApple()
	}
	return true
}

// ObjectExt returns the object file extension of the platform's native toolchain.
func (p Platform) ObjectExt() string {
	if p.OS == OSWindows {
		return ".obj"
	}
	return ".o"
}

// ExecutableName returns the platform specific file name for an executable.
func (p Platform) ExecutableName(app string) string {
	if p.OS == OSWindows {
		return app + ".exe"
	}
	return app
}

var catalog = []Platform{
	{OS: OSWindows, Arch: ArchX64, PrettyOS: "Windows", PrettyArch: "x64"},
	{OS: OSWindows, Arch: ArchARM64, PrettyOS: "Windows", PrettyArch: "ARM64"},
	{OS: OSLinux, Arch: ArchX64, PrettyOS: "Linux", PrettyArch: "x64"},
	{OS: OSLinux, Arch: ArchARM64, PrettyOS: "Linux", PrettyArch: "ARM64"},
	{OS: OSMacOS, Arch: ArchX64, PrettyOS: "macOS", PrettyArch: "x64"},
	{OS: OSMacOS, Arch: ArchARM64, PrettyOS: "macOS", PrettyArch: "ARM64"},
	{OS: OSAndroid, Arch: ArchARM64, PrettyOS: "Android", PrettyArch: "ARM64"},
	{OS: OSAndroid, Arch: ArchX64, PrettyOS: "Android", PrettyArch: "x64"},
	{OS: OSIOS, Arch: ArchARM64, PrettyOS: "iOS", PrettyArch: "ARM64"},
}

// AllPlatforms returns every known build target in a stable order.
// The order is the iteration order of the build orchestrator.
func AllPlatforms() []Platform {
	return slices.Clone(catalog)
}

// ParseOS converts a configuration value to an OS.
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows", "win":
		return OSWindows, nil
	case "linux":
		return OSLinux, nil
	case "macos", "osx", "darwin":
		return OSMacOS, nil
	case "android":
		return OSAndroid, nil
	case "ios":
		return OSIOS, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownPlatform, "failed to parse target"), "os", s)
	}
}

// ParseArch converts a configuration value to an Arch.
func ParseArch(s string) (Arch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x64", "amd64", "x86_64":
		return ArchX64, nil
	case "arm64", "aarch64":
		return ArchARM64, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownPlatform, "failed to parse architecture"), "arch", s)
	}
}

// HostOS returns the OS of the machine running bake.
func HostOS() OS {
	switch runtime.GOOS {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMacOS
	default:
		return OSLinux
	}
}
