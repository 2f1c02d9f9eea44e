package bridge

import "fmt"

// Handle is an owned reference to a T stored in the foreign runtime.
type Handle[T any] struct {
	id uint64
}

// HandleOf rebuilds a handle from a raw id received from the foreign side.
func HandleOf[T any](id uint64) Handle[T] {
	return Handle[T]{id: id}
}

// ID returns the runtime id of the handle.
func (h Handle[T]) ID() uint64 {
	return h.id
}

// IsZero reports whether h refers to nothing.
func (h Handle[T]) IsZero() bool {
	return h.id == 0
}

// NewHandle moves v into the context's runtime.
func NewHandle[T any](ctx *Context, v T) (Handle[T], error) {
	rt := ctx.Runtime()
	if rt == nil {
		return Handle[T]{}, &Error{Kind: KindHandle, Detail: "context has no runtime"}
	}

	id, err := rt.Alloc(v)
	if err != nil {
		return Handle[T]{}, &Error{Kind: KindHandle, Detail: "allocation failed", Cause: err}
	}

	return Handle[T]{id: id}, nil
}

// Extract copies the referenced value out of the runtime.
func (h Handle[T]) Extract(ctx *Context) (T, error) {
	var zero T

	if h.id == 0 {
		return zero, &Error{Kind: KindHandle, Detail: "zero handle"}
	}

	rt := ctx.Runtime()
	if rt == nil {
		return zero, &Error{Kind: KindHandle, Detail: "context has no runtime", Value: h.id}
	}

	v, ok := rt.Load(h.id)
	if !ok {
		return zero, &Error{Kind: KindHandle, Detail: fmt.Sprintf("handle %d is not live", h.id), Value: h.id}
	}

	t, ok := v.(T)
	if !ok {
		return zero, &Error{
			Kind:   KindHandle,
			Detail: fmt.Sprintf("handle %d holds %T, want %T", h.id, v, zero),
			Value:  h.id,
		}
	}

	return t, nil
}
