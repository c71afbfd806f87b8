package domain

// BuildMode is the terminal action selected for an invocation.
type BuildMode int

const (
	// ModeDirectBuild compiles and links executables for the configured targets.
	ModeDirectBuild BuildMode = iota
	// ModeGenerateAndroidProject emits a Gradle project for Android.
	ModeGenerateAndroidProject
	// ModeGenerateXcodeProject emits an Xcode project description for Apple platforms.
	ModeGenerateXcodeProject
	// ModeRebuildShaders recompiles the shader sources.
	ModeRebuildShaders
)

// String returns the name of the mode.
func (m BuildMode) String() string {
	switch m {
	case ModeDirectBuild:
		return "build"
	case ModeGenerateAndroidProject:
		return "android-project"
	case ModeGenerateXcodeProject:
		return "xcode-project"
	case ModeRebuildShaders:
		return "shaders"
	default:
		return "unknown"
	}
}
