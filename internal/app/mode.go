package app

import "go.trai.ch/bake/internal/core/domain"

// Flags holds the presence-only mode flags of an invocation.
type Flags struct {
	GenAndroid     bool
	GenXcode       bool
	RebuildShaders bool
}

// SelectMode returns the mode named by flags. The first set flag wins in the order
// Android project, Xcode project, shaders. Without flags the mode is a direct build.
func SelectMode(f Flags) domain.BuildMode {
	switch {
	case f.GenAndroid:
		return domain.ModeGenerateAndroidProject
	case f.GenXcode:
		return domain.ModeGenerateXcodeProject
	case f.RebuildShaders:
		return domain.ModeRebuildShaders
	default:
		return domain.ModeDirectBuild
	}
}
