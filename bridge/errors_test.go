package bridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "kind only",
			err:      &Error{Kind: KindDepth},
			expected: "bridge: depth",
		},
		{
			name:     "with path and detail",
			err:      &Error{Kind: KindOverflow, Path: []string{"Tags", "[1]", "Size"}, Detail: "value -5 overflows uint32"},
			expected: "bridge: converting Tags[1].Size: overflow: value -5 overflows uint32",
		},
		{
			name:     "with cause",
			err:      &Error{Kind: KindFailed, Path: []string{"Name"}, Cause: errors.New("boom")},
			expected: "bridge: converting Name: failed (caused by: boom)",
		},
		{
			name:     "leading index",
			err:      &Error{Kind: KindInvalidValue, Path: []string{"[0]", "X"}},
			expected: "bridge: converting [0].X: invalid_value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestFieldError(t *testing.T) {
	assert.NoError(t, FieldError("X", nil))

	inner := Overflow(int64(-1), "uint32")
	err := FieldError("Size", inner)
	err = FieldError("Shape", err)

	var be *Error
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, []string{"Shape", "Size"}, be.Path)
	assert.Empty(t, inner.Path, "the original error must not be mutated")
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestFieldError_ForeignError(t *testing.T) {
	orig := errors.New("original")
	err := FieldError("Name", fmt.Errorf("decorated: %w", orig))

	assert.ErrorIs(t, err, orig)
	assert.Equal(t, "bridge: converting Name: failed (caused by: decorated: original)", err.Error())

	wrapped := FieldError("Outer", fmt.Errorf("ctx: %w", Overflow(1, "x")))
	assert.ErrorIs(t, wrapped, ErrOverflow)
}
