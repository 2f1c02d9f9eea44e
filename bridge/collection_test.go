package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge-generator/bridge"
)

func positive(_ *bridge.Context, v int) (uint, error) {
	if v < 0 {
		return 0, bridge.Errorf(v, "negative value %d", v)
	}

	return uint(v), nil
}

func TestMapSlice(t *testing.T) {
	ctx := bridge.NewContext(nil)

	t.Run("nil stays nil", func(t *testing.T) {
		out, err := bridge.MapSlice(ctx, []int(nil), positive)
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("empty stays empty", func(t *testing.T) {
		out, err := bridge.MapSlice(ctx, []int{}, positive)
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("all converted", func(t *testing.T) {
		out, err := bridge.MapSlice(ctx, []int{1, 2, 3}, positive)
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 2, 3}, out)
	})

	t.Run("first failure aborts", func(t *testing.T) {
		calls := 0
		out, err := bridge.MapSlice(ctx, []int{1, -2, -3}, func(ctx *bridge.Context, v int) (uint, error) {
			calls++
			return positive(ctx, v)
		})

		require.ErrorIs(t, err, bridge.ErrInvalidValue)
		assert.Nil(t, out)
		assert.Equal(t, 2, calls)

		var be *bridge.Error
		require.ErrorAs(t, err, &be)
		assert.Equal(t, []string{"[1]"}, be.Path)
		assert.Equal(t, -2, be.Value)
	})
}

func TestSlice_NestedInOptional(t *testing.T) {
	ctx := bridge.NewContext(nil)
	fn := bridge.Optional(bridge.Slice(positive))

	in := []int{4, -1}
	out, err := fn(ctx, &in)
	require.Error(t, err)
	assert.Nil(t, out)

	in = []int{}
	out, err = fn(ctx, &in)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Empty(t, *out)
}

func TestMapValues(t *testing.T) {
	ctx := bridge.NewContext(nil)

	out, err := bridge.MapValues(ctx, map[string]int{"a": 1, "b": 2}, positive)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint{"a": 1, "b": 2}, out)

	out, err = bridge.MapValues(ctx, map[string]int{"bad": -1}, positive)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), `converting ["bad"]`)

	nilOut, err := bridge.Values[string](positive)(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, nilOut)
}

type tree struct {
	Children []tree
	Named    map[string]tree
}

func convertTree(ctx *bridge.Context, in tree) (tree, error) {
	children, err := bridge.MapSlice(ctx, in.Children, convertTree)
	if err != nil {
		return tree{}, bridge.FieldError("Children", err)
	}

	named, err := bridge.MapValues(ctx, in.Named, convertTree)
	if err != nil {
		return tree{}, bridge.FieldError("Named", err)
	}

	return tree{Children: children, Named: named}, nil
}

func TestMapSlice_CyclicValueHitsDepthLimit(t *testing.T) {
	ctx := bridge.NewContext(nil, bridge.WithMaxDepth(32))

	nodes := []tree{{}}
	nodes[0].Children = nodes

	_, err := convertTree(ctx, nodes[0])
	require.ErrorIs(t, err, bridge.ErrDepth)

	out, err := convertTree(ctx, tree{Children: []tree{{Children: []tree{{}}}}})
	require.NoError(t, err)
	require.Len(t, out.Children, 1)
	assert.Len(t, out.Children[0].Children, 1)
}

func TestMapValues_CyclicValueHitsDepthLimit(t *testing.T) {
	ctx := bridge.NewContext(nil, bridge.WithMaxDepth(32))

	root := tree{Named: map[string]tree{}}
	root.Named["self"] = root

	_, err := convertTree(ctx, root)
	require.ErrorIs(t, err, bridge.ErrDepth)
}

func TestMapSlice_DepthCountsNestingNotLength(t *testing.T) {
	ctx := bridge.NewContext(nil, bridge.WithMaxDepth(2))

	wide := tree{Children: make([]tree, 100)}

	out, err := convertTree(ctx, wide)
	require.NoError(t, err)
	assert.Len(t, out.Children, 100)
}
