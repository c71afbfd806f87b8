package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownPlatform is returned when a configuration names an OS bake does not know.
	ErrUnknownPlatform = zerr.New("unknown platform")

	// ErrNoToolchain is returned when no toolchain can build for a platform.
	ErrNoToolchain = zerr.New("no toolchain for platform")

	// ErrNoSources is returned when the configuration declares no source entry points.
	ErrNoSources = zerr.New("no source entry points configured")

	// ErrInvalidConfig is returned when the configuration file is malformed.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrEmptyCommand is returned when a build step has no program to run.
	ErrEmptyCommand = zerr.New("build step has no command")

	// ErrBuildFailed is returned when at least one step of the selected mode failed.
	ErrBuildFailed = zerr.New("build failed")
)
