package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// ArtifactRecord describes an executable produced by a successful link.
type ArtifactRecord struct {
	Platform  string    `json:"platform,omitzero"`
	Path      string    `json:"path,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	Size      int64     `json:"size,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// CompileEntry is one record of a clang compilation database.
type CompileEntry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments"`
	Output    string   `json:"output,omitempty"`
}

// ProjectSpec is the input of a project generator.
type ProjectSpec struct {
	AppName   string
	PackageID string
	OutputDir string
	Sources   []string
	// IncludeDirs are added to the generated project's header search paths.
	IncludeDirs []string
	Libraries   []string
	// AndroidAPI is the minimum Android API level of generated Gradle projects.
	AndroidAPI int
	Release    bool
	// Unity defines UNITY_BUILD=1 in generated projects.
	Unity bool
}

// ShaderFormat names a shader output format.
type ShaderFormat string

const (
	// ShaderSPIRV is Vulkan SPIR-V binary.
	ShaderSPIRV ShaderFormat = "spv"
	// ShaderMSL is Metal Shading Language source.
	ShaderMSL ShaderFormat = "metal"
	// ShaderHLSL is DirectX HLSL source.
	ShaderHLSL ShaderFormat = "hlsl"
	// ShaderGLSL is OpenGL GLSL source.
	ShaderGLSL ShaderFormat = "glsl"
)

// ParseShaderFormat converts a configuration value to a ShaderFormat.
func ParseShaderFormat(s string) (ShaderFormat, error) {
	switch f := ShaderFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ShaderSPIRV, ShaderMSL, ShaderHLSL, ShaderGLSL:
		return f, nil
	case "spirv":
		return ShaderSPIRV, nil
	case "msl":
		return ShaderMSL, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidConfig, "unknown shader format"), "shader_format", s)
	}
}

// ShaderArtifact is one compiled representation of a shader.
type ShaderArtifact struct {
	Format ShaderFormat
	Data   []byte
}
