package bridge

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Enum is an integer type that can validate its own members.
type Enum interface {
	constraints.Integer
	IsValid() bool
}

// Into converts between numeric types where every value of T is
// representable in U. It never fails; pick TryInto when it could.
func Into[U, T Number](_ *Context, in T) (U, error) {
	return U(in), nil
}

// TryInto converts between numeric types and fails with KindOverflow when
// in is not exactly representable in U (range, sign or precision loss).
//
// The check is exact for floats too: narrowing float64 to float32 rejects
// any value without an exact float32 form, such as 0.1, and NaN always
// fails. Fields that should round instead need a from= or into= override.
func TryInto[U, T Number](_ *Context, in T) (U, error) {
	out := U(in)
	if T(out) != in || (in < 0) != (out < 0) {
		return 0, Overflow(in, fmt.Sprintf("%T", out))
	}

	return out, nil
}

// TryEnum converts an integer into the enum U and fails with KindInvalidEnum
// when the result is not a valid member.
func TryEnum[U Enum, T constraints.Integer](ctx *Context, in T) (U, error) {
	out, err := TryInto[U](ctx, in)
	if err != nil {
		return 0, err
	}

	if !out.IsValid() {
		return 0, InvalidEnum(in, fmt.Sprintf("%T", out))
	}

	return out, nil
}
