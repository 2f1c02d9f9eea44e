package bridge_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge-generator/bridge"
)

func itoa(_ *bridge.Context, v int) (string, error) {
	return strconv.Itoa(v), nil
}

func TestMapOptional_NilSkipsConverter(t *testing.T) {
	ctx := bridge.NewContext(nil)
	called := false

	out, err := bridge.MapOptional(ctx, (*int)(nil), func(_ *bridge.Context, v int) (string, error) {
		called = true
		return "", nil
	})

	require.NoError(t, err)
	assert.Nil(t, out)
	assert.False(t, called)
}

func TestMapOptional_Present(t *testing.T) {
	ctx := bridge.NewContext(nil)
	v := 42

	out, err := bridge.MapOptional(ctx, &v, itoa)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "42", *out)
}

func TestMapOptional_InnerFailure(t *testing.T) {
	ctx := bridge.NewContext(nil)
	v := 1
	boom := errors.New("boom")

	out, err := bridge.MapOptional(ctx, &v, func(*bridge.Context, int) (string, error) {
		return "partial", boom
	})

	require.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

type node struct {
	Next *node
}

func convertNode(ctx *bridge.Context, n node) (node, error) {
	next, err := bridge.MapOptional(ctx, n.Next, convertNode)
	if err != nil {
		return node{}, bridge.FieldError("Next", err)
	}

	return node{Next: next}, nil
}

func TestMapOptional_CyclicValueHitsDepthLimit(t *testing.T) {
	ctx := bridge.NewContext(nil, bridge.WithMaxDepth(16))

	n := &node{}
	n.Next = n

	_, err := convertNode(ctx, *n)
	require.ErrorIs(t, err, bridge.ErrDepth)

	// The context is usable again once the failed call has unwound.
	chain := node{Next: &node{Next: &node{}}}
	out, err := convertNode(ctx, chain)
	require.NoError(t, err)
	require.NotNil(t, out.Next)
	assert.NotNil(t, out.Next.Next)
}

func TestOptional_Combinator(t *testing.T) {
	ctx := bridge.NewContext(nil)
	fn := bridge.Optional(itoa)

	v := 7
	out, err := fn(ctx, &v)
	require.NoError(t, err)
	assert.Equal(t, "7", *out)

	out, err = fn(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestMapOptional_NilContext(t *testing.T) {
	v := 3

	out, err := bridge.MapOptional(nil, &v, itoa)
	require.NoError(t, err)
	assert.Equal(t, "3", *out)

	_, err = bridge.NewHandle[int](nil, 1)
	require.ErrorIs(t, err, bridge.ErrHandle)
}
