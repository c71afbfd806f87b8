// Package config provides the configuration loader for bake.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the bake.yaml schema version understood by this loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path. A missing file yields the defaults
// rooted at the file's directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", path)
	}
	root := filepath.Dir(abs)

	data, err := os.ReadFile(abs) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		l.Logger.Debug("no " + filepath.Base(abs) + " found, using defaults")
		return domain.DefaultConfig(root), nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", abs)
	}

	var bakefile Bakefile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&bakefile); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", abs)
	}

	cfg, err := l.resolve(root, &bakefile)
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}
	return cfg, nil
}

func (l *Loader) resolve(root string, bf *Bakefile) (*domain.Config, error) {
	if bf.Version != "" && bf.Version != SupportedVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unsupported config version"), "version", bf.Version)
	}

	cfg := domain.DefaultConfig(root)

	if bf.App != "" {
		cfg.App = bf.App
	}
	if bf.Package != "" {
		cfg.Package = bf.Package
	}

	if bf.Sources != nil {
		sources, err := resolveSources(root, bf.Sources)
		if err != nil {
			return nil, err
		}
		cfg.Sources = sources
	}
	if len(cfg.EntryPoints()) == 0 {
		return nil, zerr.Wrap(domain.ErrNoSources, "no entry point configured")
	}

	setBool(&cfg.Unity, bf.Unity)
	setBool(&cfg.Release, bf.Release)
	setBool(&cfg.CompileDatabase, bf.CompileDatabase)
	if bf.Jobs != nil {
		cfg.Jobs = *bf.Jobs
	}

	if len(bf.Targets) > 0 {
		targets, err := parseTargets(bf.Targets)
		if err != nil {
			return nil, err
		}
		cfg.Targets = targets
	}

	for _, a := range bf.Arches {
		arch, err := domain.ParseArch(a)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(cfg.Arches, arch) {
			cfg.Arches = append(cfg.Arches, arch)
		}
	}

	if bf.Libraries != nil {
		libs, err := parseLibraries(bf.Libraries)
		if err != nil {
			return nil, err
		}
		cfg.Libraries = libs
	}

	setPath(root, &cfg.Layout.Bin, bf.Layout.Bin)
	setPath(root, &cfg.Layout.Obj, bf.Layout.Obj)
	setPath(root, &cfg.Layout.Projects, bf.Layout.Projects)
	setPath(root, &cfg.Shaders.Source, bf.Layout.Shaders)
	setPath(root, &cfg.Shaders.Output, bf.Layout.ShaderOut)

	l.resolveToolchain(root, &cfg.Toolchain, bf.Toolchain)

	setPath(root, &cfg.Shaders.Source, bf.Shaders.Source)
	setPath(root, &cfg.Shaders.Output, bf.Shaders.Output)
	if len(bf.Shaders.Formats) > 0 {
		formats := make([]domain.ShaderFormat, 0, len(bf.Shaders.Formats))
		for _, f := range bf.Shaders.Formats {
			format, err := domain.ParseShaderFormat(f)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(formats, format) {
				formats = append(formats, format)
			}
		}
		cfg.Shaders.Formats = formats
	}

	return cfg, nil
}

func (l *Loader) resolveToolchain(root string, tc *domain.ToolchainConfig, dto ToolchainDTO) {
	setString(&tc.CC, dto.CC)
	setString(&tc.CXX, dto.CXX)
	setString(&tc.CL, dto.CL)
	setString(&tc.Link, dto.Link)
	setPath(root, &tc.NDK, dto.NDK)
	if dto.AndroidAPI > 0 {
		tc.AndroidAPI = dto.AndroidAPI
	}
	for _, dir := range dto.IncludeDirs {
		tc.IncludeDirs = append(tc.IncludeDirs, absPath(root, dir))
	}
	tc.Defines = append(tc.Defines, dto.Defines...)

	if dto.NDK != "" {
		if _, err := os.Stat(tc.NDK); err != nil {
			l.Logger.Warn("android ndk not found at " + tc.NDK)
		}
	}
}

func resolveSources(root string, dto map[string]string) (map[domain.Language]string, error) {
	sources := make(map[domain.Language]string, len(dto))
	for key, src := range dto {
		lang, err := domain.ParseLanguage(key)
		if err != nil {
			return nil, err
		}
		if src == "" {
			continue
		}
		sources[lang] = absPath(root, src)
	}
	return sources, nil
}

func parseTargets(names []string) ([]domain.OS, error) {
	targets := make([]domain.OS, 0, len(names))
	for _, name := range names {
		osName, err := domain.ParseOS(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(targets, osName) {
			targets = append(targets, osName)
		}
	}
	return targets, nil
}

func parseLibraries(dto map[string][]string) (map[domain.OS][]string, error) {
	libs := make(map[domain.OS][]string, len(dto))
	for name, list := range dto {
		osName, err := domain.ParseOS(name)
		if err != nil {
			return nil, err
		}
		libs[osName] = append(libs[osName], list...)
	}
	return libs, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func setPath(root string, dst *string, src string) {
	if src != "" {
		*dst = absPath(root, src)
	}
}

func absPath(root, p string) string {
	p = filepath.FromSlash(os.ExpandEnv(p))
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
