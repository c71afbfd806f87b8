// Package projgen emits IDE and build-tool project scaffolding for mobile targets.
package projgen

import (
	"bytes"
	"context"
	"embed"
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:embed templates/android/*.tmpl
var androidTemplates embed.FS

const (
	// AndroidGradlePlugin is the Android Gradle plugin version of generated projects.
	AndroidGradlePlugin = "8.5.2"
	// AndroidTargetSDK is the compile and target SDK of generated projects.
	AndroidTargetSDK = 34
	// AndroidNDKVersion is the NDK version pinned in generated projects.
	AndroidNDKVersion = "26.3.11579264"
)

// androidFiles maps template names to their location in the generated project.
var androidFiles = []struct {
	template string
	path     string
}{
	{"settings.gradle.tmpl", "settings.gradle"},
	{"build.gradle.tmpl", "build.gradle"},
	{"app.build.gradle.tmpl", "app/build.gradle"},
	{"AndroidManifest.xml.tmpl", "app/src/main/AndroidManifest.xml"},
	{"CMakeLists.txt.tmpl", "app/src/main/cpp/CMakeLists.txt"},
}

var nonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]`)

// templateFuncs are available to every generated file.
var templateFuncs = template.FuncMap{"xml": xmlEscape}

// xmlEscape makes s safe inside XML character data and attribute values.
func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// AndroidGenerator writes a Gradle project that builds the entry points with CMake
// into a NativeActivity library.
type AndroidGenerator struct {
	templates *template.Template
}

// NewAndroidGenerator creates an AndroidGenerator.
func NewAndroidGenerator() *AndroidGenerator {
	return &AndroidGenerator{
		templates: template.Must(
			template.New("android").Funcs(templateFuncs).ParseFS(androidTemplates, "templates/android/*.tmpl"),
		),
	}
}

type androidData struct {
	AppName      string
	PackageID    string
	LibName      string
	GradlePlugin string
	NDKVersion   string
	MinSDK       int
	TargetSDK    int
	ABIs         []string
	Release      bool
	Unity        bool
	Sources      []string
	IncludeDirs  []string
	Libraries    []string
}

// Generate writes the Gradle project into spec.OutputDir.
func (g *AndroidGenerator) Generate(ctx context.Context, spec domain.ProjectSpec) error {
	if err := validate(spec); err != nil {
		return err
	}

	minSDK := spec.AndroidAPI
	if minSDK <= 0 {
		minSDK = domain.DefaultAndroidAPI
	}

	data := androidData{
		AppName:      spec.AppName,
		PackageID:    spec.PackageID,
		LibName:      nonIdentifier.ReplaceAllString(spec.AppName, "_"),
		GradlePlugin: AndroidGradlePlugin,
		NDKVersion:   AndroidNDKVersion,
		MinSDK:       minSDK,
		TargetSDK:    AndroidTargetSDK,
		ABIs:         []string{"arm64-v8a", "x86_64"},
		Release:      spec.Release,
		Unity:        spec.Unity,
		Sources:      cmakePaths(spec.Sources),
		IncludeDirs:  cmakePaths(spec.IncludeDirs),
		Libraries:    androidLibraries(spec.Libraries),
	}

	for _, f := range androidFiles {
		if err := ctx.Err(); err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := g.templates.ExecuteTemplate(&buf, f.template, data); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to render project file"), "file", f.path)
		}
		if err := writeFile(filepath.Join(spec.OutputDir, filepath.FromSlash(f.path)), buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// androidLibraries drops the libraries CMake links implicitly.
func androidLibraries(libs []string) []string {
	var out []string
	for _, lib := range libs {
		name := strings.TrimPrefix(lib, "-l")
		if name == "android" || name == "log" || name == "pthread" {
			continue
		}
		out = append(out, name)
	}
	return out
}

func cmakePaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	return out
}

func validate(spec domain.ProjectSpec) error {
	switch {
	case spec.AppName == "":
		return zerr.Wrap(domain.ErrInvalidConfig, "app name is required")
	case spec.PackageID == "":
		return zerr.Wrap(domain.ErrInvalidConfig, "package identifier is required")
	case spec.OutputDir == "":
		return zerr.Wrap(domain.ErrInvalidConfig, "output directory is required")
	case len(spec.Sources) == 0:
		return zerr.Wrap(domain.ErrNoSources, "project has no entry points")
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create project directory"), "path", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write project file"), "path", path)
	}
	return nil
}
