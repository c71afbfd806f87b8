package projgen

import (
	"bytes"
	"context"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// XcodeProjectFile is the XcodeGen project description written by XcodeGenerator.
const XcodeProjectFile = "project.yml"

// xcodeProject is the subset of the XcodeGen project format bake emits.
type xcodeProject struct {
	Name     string                 `yaml:"name"`
	Options  xcodeOptions           `yaml:"options"`
	Settings map[string]any         `yaml:"settings,omitempty"`
	Targets  map[string]xcodeTarget `yaml:"targets"`
}

type xcodeOptions struct {
	BundleIDPrefix   string            `yaml:"bundleIdPrefix"`
	DeploymentTarget map[string]string `yaml:"deploymentTarget"`
}

type xcodeTarget struct {
	Type         string            `yaml:"type"`
	Platform     string            `yaml:"platform"`
	Sources      []xcodeSource     `yaml:"sources"`
	Settings     map[string]any    `yaml:"settings"`
	Dependencies []xcodeDependency `yaml:"dependencies,omitempty"`
}

type xcodeSource struct {
	Path          string `yaml:"path"`
	BuildPhase    string `yaml:"buildPhase,omitempty"`
	CompilerFlags string `yaml:"compilerFlags,omitempty"`
}

type xcodeDependency struct {
	SDK string `yaml:"sdk"`
}

var infoPlist = template.Must(template.New("Info.plist").Funcs(templateFuncs).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleDevelopmentRegion</key>
	<string>en</string>
	<key>CFBundleDisplayName</key>
	<string>{{ xml .AppName }}</string>
	<key>CFBundleExecutable</key>
	<string>$(EXECUTABLE_NAME)</string>
	<key>CFBundleIdentifier</key>
	<string>{{ xml .PackageID }}</string>
	<key>CFBundleName</key>
	<string>{{ xml .AppName }}</string>
	<key>CFBundlePackageType</key>
	<string>APPL</string>
	<key>CFBundleShortVersionString</key>
	<string>1.0</string>
	<key>CFBundleVersion</key>
	<string>1</string>
	<key>UILaunchStoryboardName</key>
	<string></string>
	<key>UIRequiresFullScreen</key>
	<true/>
</dict>
</plist>
`))

// XcodeGenerator writes an XcodeGen project with an iOS and a macOS application target.
type XcodeGenerator struct{}

// NewXcodeGenerator creates an XcodeGenerator.
func NewXcodeGenerator() *XcodeGenerator {
	return &XcodeGenerator{}
}

// Generate writes project.yml and Info.plist into spec.OutputDir.
func (g *XcodeGenerator) Generate(ctx context.Context, spec domain.ProjectSpec) error {
	if err := validate(spec); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var plist bytes.Buffer
	if err := infoPlist.Execute(&plist, spec); err != nil {
		return zerr.Wrap(err, "failed to render Info.plist")
	}
	if err := writeFile(filepath.Join(spec.OutputDir, "Info.plist"), plist.Bytes()); err != nil {
		return err
	}

	data, err := yaml.Marshal(buildXcodeProject(spec))
	if err != nil {
		return zerr.Wrap(err, "failed to marshal xcode project")
	}
	return writeFile(filepath.Join(spec.OutputDir, XcodeProjectFile), data)
}

func buildXcodeProject(spec domain.ProjectSpec) xcodeProject {
	prefix := spec.PackageID
	if i := strings.LastIndex(prefix, "."); i > 0 {
		prefix = prefix[:i]
	}

	var sources []xcodeSource
	for _, src := range spec.Sources {
		s := xcodeSource{Path: relativeTo(spec.OutputDir, src), BuildPhase: "sources"}
		if filepath.Ext(src) == ".m" {
			s.CompilerFlags = "-fobjc-arc"
		}
		sources = append(sources, s)
	}

	var deps []xcodeDependency
	var ldflags []string
	for _, lib := range spec.Libraries {
		if strings.HasSuffix(lib, ".framework") {
			deps = append(deps, xcodeDependency{SDK: lib})
			continue
		}
		ldflags = append(ldflags, "-l"+strings.TrimPrefix(lib, "lib"))
	}

	headerPaths := make([]string, 0, len(spec.IncludeDirs))
	for _, dir := range spec.IncludeDirs {
		headerPaths = append(headerPaths, relativeTo(spec.OutputDir, dir))
	}

	targets := make(map[string]xcodeTarget, 2)
	for _, platform := range []string{"iOS", "macOS"} {
		settings := map[string]any{
			"PRODUCT_BUNDLE_IDENTIFIER": spec.PackageID,
			"PRODUCT_NAME":              spec.AppName,
			"INFOPLIST_FILE":            "Info.plist",
		}
		if spec.Unity {
			settings["GCC_PREPROCESSOR_DEFINITIONS"] = []string{"$(inherited)", "UNITY_BUILD=1"}
		}
		if len(headerPaths) > 0 {
			settings["HEADER_SEARCH_PATHS"] = slices.Clone(headerPaths)
		}
		if len(ldflags) > 0 {
			settings["OTHER_LDFLAGS"] = append([]string{"$(inherited)"}, ldflags...)
		}
		targets[spec.AppName+"_"+platform] = xcodeTarget{
			Type:         "application",
			Platform:     platform,
			Sources:      sources,
			Settings:     settings,
			Dependencies: deps,
		}
	}

	configuration := "Debug"
	if spec.Release {
		configuration = "Release"
	}

	return xcodeProject{
		Name: spec.AppName,
		Options: xcodeOptions{
			BundleIDPrefix: prefix,
			DeploymentTarget: map[string]string{
				"iOS":   domain.IOSDeploymentTarget,
				"macOS": domain.MacOSDeploymentTarget,
			},
		},
		Settings: map[string]any{"DEFAULT_CONFIGURATION": configuration},
		Targets:  targets,
	}
}

// relativeTo expresses path relative to the project directory, falling back to the absolute path.
func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
