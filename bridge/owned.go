package bridge

// MapOwned extracts the value behind h from the runtime and converts it.
func MapOwned[S, T any](ctx *Context, h Handle[S], fn func(*Context, S) (T, error)) (T, error) {
	v, err := h.Extract(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	return fn(ctx, v)
}

// Owned lifts fn to handles. See MapOwned.
func Owned[S, T any](fn func(*Context, S) (T, error)) func(*Context, Handle[S]) (T, error) {
	return func(ctx *Context, h Handle[S]) (T, error) {
		return MapOwned(ctx, h, fn)
	}
}

// WrapOwned converts in and moves the result into the runtime.
func WrapOwned[S, T any](ctx *Context, in S, fn func(*Context, S) (T, error)) (Handle[T], error) {
	v, err := fn(ctx, in)
	if err != nil {
		return Handle[T]{}, err
	}

	return NewHandle(ctx, v)
}

// Wrapped lifts fn to produce handles. See WrapOwned.
func Wrapped[S, T any](fn func(*Context, S) (T, error)) func(*Context, S) (Handle[T], error) {
	return func(ctx *Context, in S) (Handle[T], error) {
		return WrapOwned(ctx, in, fn)
	}
}
