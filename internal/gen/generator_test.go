package gen

import (
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/plan"
)

func generateFixture(t *testing.T, dir string) []GeneratedFile {
	t.Helper()

	if testing.Short() {
		t.Skip("runs the go command")
	}

	graph, err := analyze.NewAnalyzer(analyze.Config{}).LoadPackages(context.Background(), dir)
	require.NoError(t, err)

	p := plan.NewResolver(graph, plan.DefaultConfig()).Resolve()
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(context.Background(), p)
	require.NoError(t, err)

	return files
}

func TestGenerate_ValidFixture(t *testing.T) {
	files := generateFixture(t, "../plan/testdata/valid")
	require.Len(t, files, 1)

	file := files[0]
	assert.Equal(t, "bridge_gen.go", file.Filename)
	assert.False(t, file.Remove)
	assert.Equal(t, "valid", filepath.Base(file.Dir))

	content := string(file.Content)

	assert.Contains(t, content, Header+"\n\n//go:build !bridgegen\n\npackage valid\n")
	assert.Contains(t, content, `"bridge-generator/bridge"`)
	assert.NotContains(t, content, `"bridge-generator/internal/plan/testdata/valid"`)

	for _, want := range []string{
		// Point is infallible in both directions.
		"func PointToBridge(ctx *bridge.Context, in Point) (PyPoint, error) {",
		"out.X = in.X",
		"func PointFromBridge(ctx *bridge.Context, in PyPoint) (Point, error) {",

		// Tag uses the enum check only towards the native side.
		"out.Color = int64(in.Color)",
		"if out.Color, err = bridge.TryEnum[Color, int64](ctx, in.Color); err != nil {",
		`return Tag{}, bridge.FieldError("Color", err)`,

		// Shape covers every container and handle form.
		"out.Name = string(in.Name)",
		"out.Size = int64(in.Size)",
		"out.Scale = float64(in.Scale)",
		"if out.Tags, err = bridge.MapOptional(ctx, in.Tags, bridge.Slice(TagToBridge)); err != nil {",
		"if out.Origin, err = PointToBridge(ctx, in.Origin); err != nil {",
		"if out.Meta, err = bridge.MapValues(ctx, in.Meta, MetaToBridge); err != nil {",
		"if out.Owner, err = bridge.WrapOwned(ctx, in.Owner, bridge.Identity[Owner]); err != nil {",
		"if out.Parent, err = bridge.MapOwned(ctx, in.Parent, bridge.Identity[Owner]); err != nil {",
		"out.Hidden = in.Hidden",
		`return PyShape{}, bridge.FieldError("Tags", err)`,

		"if out.Size, err = sizeFromBridge(ctx, in.Size); err != nil {",
		"if out.Scale, err = bridge.TryInto[float32, float64](ctx, in.Scale); err != nil {",
		"if out.Tags, err = bridge.MapOptional(ctx, in.Tags, bridge.Slice(TagFromBridge)); err != nil {",

		// ID is a wrapper.
		"return PyID(in), nil",
		"return ID(in), nil",

		"var ShapeBridge = bridge.Pair[Shape, PyShape]{",
		"// ShapeToBridge converts Shape to PyShape.",
	} {
		assert.Contains(t, content, want)
	}

	// Infallible directions declare no error variable.
	start := strings.Index(content, "func PointToBridge")
	end := strings.Index(content, "func PointFromBridge")
	require.True(t, start >= 0 && end > start)
	assert.NotContains(t, content[start:end], "var err error")

	_, err := parser.ParseFile(token.NewFileSet(), file.Filename, file.Content, parser.ParseComments)
	require.NoError(t, err)
}

func TestGenerate_Options(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go command")
	}

	graph, err := analyze.NewAnalyzer(analyze.Config{}).LoadPackages(context.Background(), "../plan/testdata/valid")
	require.NoError(t, err)

	p := plan.NewResolver(graph, plan.ResolutionConfig{}).Resolve()
	require.True(t, p.Diagnostics.IsValid(), p.Diagnostics.Error())

	files, err := NewGenerator(GeneratorConfig{Filename: "conv_gen.go"}).Generate(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, files, 1)

	content := string(files[0].Content)
	assert.Equal(t, "conv_gen.go", files[0].Filename)
	assert.NotContains(t, content, "var ShapeBridge")
	assert.NotContains(t, content, "// ShapeToBridge converts")
	assert.Contains(t, content, "//go:build !bridgegen")
}

func TestGenerate_RefusesInvalidPlan(t *testing.T) {
	p := &plan.Plan{}
	p.Diagnostics.AddError(diagnostic.CodeNoConversion, "no conversion", "a.T<->b.U", "F")

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), diagnostic.CodeNoConversion)
}

func TestGenerate_StaleFile(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bridge_gen.go"), []byte(Header+"\n\npackage stale\n"), filePerm))
	require.NoError(t, os.WriteFile(filepath.Join(other, "bridge_gen.go"), []byte("package mine\n"), filePerm))

	graph := analyze.NewTypeGraph()
	graph.AddPackage(&analyze.PackageInfo{Path: "example.com/stale", Name: "stale", Dir: dir})
	graph.AddPackage(&analyze.PackageInfo{Path: "example.com/mine", Name: "mine", Dir: other})

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(context.Background(), &plan.Plan{Graph: graph})
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.True(t, files[0].Remove)
	assert.Equal(t, filepath.Join(dir, "bridge_gen.go"), files[0].Path())
}
