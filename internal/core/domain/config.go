package domain

import (
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

const (
	// DefaultConfigFile is the configuration file name looked up in the working directory.
	DefaultConfigFile = "bake.yaml"
	// DefaultUnitySource is the conventional unity entry point for C sources.
	DefaultUnitySource = "Source/zzzz_Unity.c"
	// DefaultAndroidAPI is the Android API level targeted when none is configured.
	DefaultAndroidAPI = 26

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750
	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Config is the resolved project configuration. All paths are absolute.
type Config struct {
	Root    string
	App     string
	Package string
	Sources map[Language]string
	Unity   bool
	Release bool
	Targets []OS
	// Arches restricts direct builds to the listed architectures. Empty means all.
	Arches    []Arch
	Jobs      int
	Libraries map[OS][]string
	Layout    Layout
	Toolchain ToolchainConfig
	Shaders   ShaderConfig

	CompileDatabase bool
}

// Layout is the folder structure bake writes into.
type Layout struct {
	Bin      string
	Obj      string
	Projects string
}

// ToolchainConfig selects compiler drivers and shared flags.
type ToolchainConfig struct {
	CC          string
	CXX         string
	CL          string
	Link        string
	NDK         string
	AndroidAPI  int
	IncludeDirs []string
	Defines     []string
}

// ShaderConfig locates shader sources and their compiled output.
type ShaderConfig struct {
	Source  string
	Output  string
	Formats []ShaderFormat
}

// DefaultConfig returns the configuration used when no bake.yaml exists in root.
func DefaultConfig(root string) *Config {
	app := filepath.Base(root)
	return &Config{
		Root:    root,
		App:     app,
		Package: "com.example." + strings.ToLower(app),
		Sources: map[Language]string{
			LangC: filepath.Join(root, filepath.FromSlash(DefaultUnitySource)),
		},
		Unity:     true,
		Release:   true,
		Targets:   []OS{HostOS()},
		Jobs:      1,
		Libraries: DefaultLibraries(),
		Layout: Layout{
			Bin:      filepath.Join(root, "Binaries"),
			Obj:      filepath.Join(root, "Temp"),
			Projects: filepath.Join(root, "Projects"),
		},
		Toolchain: ToolchainConfig{
			CC:         "clang",
			CXX:        "clang++",
			CL:         "cl",
			Link:       "link",
			AndroidAPI: DefaultAndroidAPI,
		},
		Shaders: ShaderConfig{
			Source:  filepath.Join(root, "Shaders"),
			Output:  filepath.Join(root, "Binaries", "Shaders"),
			Formats: []ShaderFormat{ShaderSPIRV},
		},
		CompileDatabase: true,
	}
}

// DefaultLibraries returns the system libraries linked when none are configured.
func DefaultLibraries() map[OS][]string {
	return map[OS][]string{
		OSWindows: {"iphlpapi.lib", "Ws2_32.lib", "Shell32.lib", "Gdi32.lib", "User32.lib"},
		OSLinux:   {"pthread"},
	}
}

// Eligible reports whether direct builds include the platform.
func (c *Config) Eligible(p Platform) bool {
	if !slices.Contains(c.Targets, p.OS) {
		return false
	}
	return len(c.Arches) == 0 || slices.Contains(c.Arches, p.Arch)
}

// Source returns the configured entry point for a language.
func (c *Config) Source(lang Language) (string, bool) {
	src, ok := c.Sources[lang]
	if !ok || src == "" {
		return "", false
	}
	return src, true
}

// EntryPoints returns the configured sources in language order.
func (c *Config) EntryPoints() []string {
	var out []string
	for _, lang := range Languages() {
		if src, ok := c.Source(lang); ok {
			out = append(out, src)
		}
	}
	return out
}

// Parallelism returns the number of platform pipelines that may run at once.
func (c *Config) Parallelism() int {
	switch {
	case c.Jobs < 0:
		return runtime.NumCPU()
	case c.Jobs == 0:
		return 1
	default:
		return c.Jobs
	}
}
