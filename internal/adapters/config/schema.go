package config

// Bakefile represents the structure of the bake.yaml configuration file.
// Unset fields keep their defaults.
type Bakefile struct {
	Version         string              `yaml:"version"`
	App             string              `yaml:"app"`
	Package         string              `yaml:"package"`
	Sources         map[string]string   `yaml:"sources"`
	Unity           *bool               `yaml:"unity"`
	Release         *bool               `yaml:"release"`
	Targets         []string            `yaml:"targets"`
	Arches          []string            `yaml:"arches"`
	Jobs            *int                `yaml:"jobs"`
	Libraries       map[string][]string `yaml:"libraries"`
	Layout          LayoutDTO           `yaml:"layout"`
	Toolchain       ToolchainDTO        `yaml:"toolchain"`
	Shaders         ShadersDTO          `yaml:"shaders"`
	CompileDatabase *bool               `yaml:"compileDatabase"`
}

// LayoutDTO represents the output folder structure.
// Shaders and ShaderOut are shorthands for shaders.source and shaders.output.
type LayoutDTO struct {
	Bin       string `yaml:"bin"`
	Obj       string `yaml:"obj"`
	Projects  string `yaml:"projects"`
	Shaders   string `yaml:"shaders"`
	ShaderOut string `yaml:"shaderOut"`
}

// ToolchainDTO represents the compiler selection.
type ToolchainDTO struct {
	CC          string   `yaml:"cc"`
	CXX         string   `yaml:"cxx"`
	CL          string   `yaml:"cl"`
	Link        string   `yaml:"link"`
	NDK         string   `yaml:"ndk"`
	AndroidAPI  int      `yaml:"androidApi"`
	IncludeDirs []string `yaml:"includeDirs"`
	Defines     []string `yaml:"defines"`
}

// ShadersDTO represents the shader sources and outputs.
type ShadersDTO struct {
	Source  string   `yaml:"source"`
	Output  string   `yaml:"output"`
	Formats []string `yaml:"formats"`
}
