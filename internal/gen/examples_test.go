package gen

import (
	"context"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/mapping"
	"bridge-generator/internal/plan"
)

// TestExamplesUpToDate regenerates the example packages and compares the
// result with the committed files.
func TestExamplesUpToDate(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go command")
	}

	graph, err := analyze.NewAnalyzer(analyze.Config{}).LoadPackages(context.Background(),
		"bridge-generator/examples/geometry", "bridge-generator/examples/mapped")
	require.NoError(t, err)

	mf, err := mapping.LoadFile("../../examples/mapped/bridge.yaml")
	require.NoError(t, err)
	graph.Diagnostics.Merge(*mapping.Apply(mf, graph))

	p := plan.NewResolver(graph, plan.DefaultConfig()).Resolve()
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, f := range files {
		require.False(t, f.Remove)

		want, err := os.ReadFile(f.Path())
		require.NoError(t, err)

		if diff := cmp.Diff(string(want), string(f.Content)); diff != "" {
			t.Errorf("%s is out of date (-committed +generated):\n%s", f.Path(), diff)
		}
	}

	outdated, err := Outdated(files)
	require.NoError(t, err)
	require.Empty(t, outdated)
}
