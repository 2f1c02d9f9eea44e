package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	assert.Equal(t, []string{"."}, c.Packages)
	assert.Equal(t, "bridge_gen.go", c.Output)
	assert.Equal(t, "bridge:map", c.Directive)
	assert.Equal(t, "bridge", c.Tag)
	assert.Equal(t, "bridgegen", c.BuildTag)
	assert.True(t, c.Comments)
	assert.True(t, c.PairVars)
	assert.Equal(t, ".", c.Dir())
	assert.Empty(t, c.MappingPath())
}

func TestParse_YAML(t *testing.T) {
	c, err := Parse([]byte(`
packages: [./geometry/...]
output: conv_gen.go
mapping: bridge.yaml
pair_vars: false
`), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"./geometry/..."}, c.Packages)
	assert.Equal(t, "conv_gen.go", c.Output)
	assert.Equal(t, "bridge.yaml", c.Mapping)
	assert.False(t, c.PairVars)
	// Unset keys keep their defaults.
	assert.True(t, c.Comments)
	assert.Equal(t, "bridge", c.Tag)

	assert.False(t, c.Resolution().PairVars)
	assert.Equal(t, "conv_gen.go", c.Generator().Filename)
	assert.Equal(t, "bridge:map", c.Analyzer("/src").Directive)
	assert.Equal(t, "/src", c.Analyzer("/src").Dir)
}

func TestParse_EmptyYAML(t *testing.T) {
	c, err := Parse(nil, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParse_TOML(t *testing.T) {
	c, err := Parse([]byte(`
packages = ["./..."]
tag = "py"
directive = "py:map"
comments = false
`), ".toml")
	require.NoError(t, err)

	assert.Equal(t, []string{"./..."}, c.Packages)
	assert.Equal(t, "py", c.Tag)
	assert.Equal(t, "py:map", c.Directive)
	assert.False(t, c.Comments)
	assert.False(t, c.Generator().Comments)
	assert.Equal(t, "bridge_gen.go", c.Output)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
		want string
	}{
		{"unknown format", "", ".json", "unknown config format"},
		{"bad yaml", "packages: [", ".yaml", ""},
		{"unknown toml key", "colour = true", ".toml", `unknown key "colour"`},
		{"unknown yaml key", "colour: true", ".yaml", "field colour not found"},
		{"yaml key typo", "pair_var: false", ".yml", "field pair_var not found"},
		{"output path", "output: gen/bridge_gen.go", ".yaml", "output must be a .go file name"},
		{"empty tag", "tag: \"\"", ".yml", "tag must not be empty"},
		{"empty packages", "packages = []", ".toml", "packages must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			require.Error(t, err)

			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	c, err := FindAndLoad(nested)
	require.NoError(t, err)
	assert.Empty(t, c.Path)

	path := filepath.Join(root, "bridgegen.toml")
	require.NoError(t, os.WriteFile(path, []byte(`mapping = "maps/bridge.yaml"`), 0o644))

	found, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	c, err = FindAndLoad(nested)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path)
	assert.Equal(t, root, c.Dir())
	assert.Equal(t, filepath.Join(root, "maps", "bridge.yaml"), c.MappingPath())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "bridgegen.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")
}
