package bridge

// MapOptional converts an optional value. A nil input yields nil without
// calling fn; otherwise the pointee is converted and the result is returned
// by pointer.
func MapOptional[S, T any](ctx *Context, in *S, fn func(*Context, S) (T, error)) (*T, error) {
	if in == nil {
		return nil, nil
	}

	if err := ctx.enter(); err != nil {
		return nil, err
	}
	defer ctx.leave()

	out, err := fn(ctx, *in)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// Optional lifts fn to optional values. See MapOptional.
func Optional[S, T any](fn func(*Context, S) (T, error)) func(*Context, *S) (*T, error) {
	return func(ctx *Context, in *S) (*T, error) {
		return MapOptional(ctx, in, fn)
	}
}
