package toolchain

import (
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
)

// NDKEnv is the environment variable consulted when no NDK path is configured.
const NDKEnv = "ANDROID_NDK_HOME"

// Resolver selects MSVC for Windows and clang for every other platform.
type Resolver struct {
	getenv func(string) string
	hostOS string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithGetenv replaces the environment lookup.
func WithGetenv(fn func(string) string) Option {
	return func(r *Resolver) {
		r.getenv = fn
	}
}

// WithHostOS overrides the GOOS used to locate prebuilt NDK binaries.
func WithHostOS(goos string) Option {
	return func(r *Resolver) {
		r.hostOS = goos
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{getenv: os.Getenv, hostOS: runtime.GOOS}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the toolchain that targets p.
func (r *Resolver) Resolve(p domain.Platform, cfg domain.ToolchainConfig) (ports.Toolchain, error) {
	if p.OS == domain.OSWindows {
		if cfg.CL == "" || cfg.Link == "" {
			return nil, noToolchain(p, "msvc compiler or linker not configured")
		}
		return NewMSVC(cfg), nil
	}

	if p.OS == domain.OSAndroid {
		ndk := cfg.NDK
		if ndk == "" {
			ndk = r.getenv(NDKEnv)
		}
		if ndk != "" {
			bin := filepath.Join(ndk, "toolchains", "llvm", "prebuilt", ndkHostTag(r.hostOS), "bin")
			cfg.CC = filepath.Join(bin, "clang")
			cfg.CXX = filepath.Join(bin, "clang++")
		}
	}

	if cfg.CC == "" || cfg.CXX == "" {
		return nil, noToolchain(p, "clang drivers not configured")
	}
	return NewClang(cfg), nil
}

func noToolchain(p domain.Platform, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrNoToolchain, msg), "platform", p.String())
}

// ndkHostTag returns the NDK prebuilt directory name for the host.
// Apple silicon hosts use the universal darwin-x86_64 binaries.
func ndkHostTag(goos string) string {
	switch goos {
	case "windows":
		return "windows-x86_64"
	case "darwin":
		return "darwin-x86_64"
	default:
		return "linux-x86_64"
	}
}
