// Package config handles bridgegen.yaml / bridgegen.toml project configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/gen"
	"bridge-generator/internal/plan"
)

// File names searched for, in order of preference.
var FileNames = []string{"bridgegen.yaml", "bridgegen.yml", "bridgegen.toml"}

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config represents a bridge-generator project configuration.
type Config struct {
	// Packages are the package patterns to generate for.
	Packages []string `yaml:"packages,omitempty" toml:"packages"`
	// Output is the name of the generated file in each package.
	Output string `yaml:"output,omitempty" toml:"output"`
	// Directive is the comment directive declaring a pair.
	Directive string `yaml:"directive,omitempty" toml:"directive"`
	// Tag is the struct tag key holding field directives.
	Tag string `yaml:"tag,omitempty" toml:"tag"`
	// BuildTag excludes generated files while loading.
	BuildTag string `yaml:"build_tag,omitempty" toml:"build_tag"`
	// Mapping is an optional mapping file, relative to the config file.
	Mapping string `yaml:"mapping,omitempty" toml:"mapping"`
	// Comments enables doc comments on generated declarations.
	Comments bool `yaml:"comments" toml:"comments"`
	// PairVars enables the <Name>Bridge pair values.
	PairVars bool `yaml:"pair_vars" toml:"pair_vars"`

	// Path is the file the config was loaded from (set at load time).
	Path string `yaml:"-" toml:"-"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	g := gen.DefaultGeneratorConfig()

	return &Config{
		Packages:  []string{"."},
		Output:    g.Filename,
		Directive: analyze.DefaultDirective,
		Tag:       analyze.DefaultTag,
		BuildTag:  g.BuildTag,
		Comments:  g.Comments,
		PairVars:  g.PairVars,
	}
}

// Load parses the config file at path. Unset keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes config data in the format named by ext (".yaml", ".yml" or
// ".toml").
func Parse(data []byte, ext string) (*Config, error) {
	c := Default()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return nil, err
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks that required values are present.
func (c *Config) Validate() error {
	var errs []error

	if c.Output == "" || filepath.Base(c.Output) != c.Output || !strings.HasSuffix(c.Output, ".go") {
		errs = append(errs, fmt.Errorf("output must be a .go file name, got %q", c.Output))
	}

	if c.Directive == "" {
		errs = append(errs, errors.New("directive must not be empty"))
	}

	if c.Tag == "" {
		errs = append(errs, errors.New("tag must not be empty"))
	}

	if c.BuildTag == "" {
		errs = append(errs, errors.New("build_tag must not be empty"))
	}

	if len(c.Packages) == 0 {
		errs = append(errs, errors.New("packages must not be empty"))
	}

	return errors.Join(errs...)
}

// Find walks up from startDir looking for a config file. It returns "" if
// none is found.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}

		dir = parent
	}
}

// FindAndLoad loads the nearest config file above startDir, or the defaults
// if there is none.
func FindAndLoad(startDir string) (*Config, error) {
	path, err := Find(startDir)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// Dir returns the directory relative paths are resolved against.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}

	return filepath.Dir(c.Path)
}

// MappingPath returns the mapping file location, or "" if none is set.
func (c *Config) MappingPath() string {
	if c.Mapping == "" || filepath.IsAbs(c.Mapping) {
		return c.Mapping
	}

	return filepath.Join(c.Dir(), c.Mapping)
}

// Analyzer returns the loader configuration.
func (c *Config) Analyzer(dir string) analyze.Config {
	return analyze.Config{
		Dir:       dir,
		Directive: c.Directive,
		Tag:       c.Tag,
		BuildTag:  c.BuildTag,
	}
}

// Resolution returns the resolver configuration.
func (c *Config) Resolution() plan.ResolutionConfig {
	return plan.ResolutionConfig{PairVars: c.PairVars}
}

// Generator returns the generator configuration.
func (c *Config) Generator() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		Filename: c.Output,
		BuildTag: c.BuildTag,
		Comments: c.Comments,
		PairVars: c.PairVars,
	}
}
