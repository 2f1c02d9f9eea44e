package bridge

// MapSlice converts every element of in with fn. Elements convert
// independently; the first failure aborts and no partial slice is returned.
// A nil slice stays nil and an empty slice stays empty.
func MapSlice[S, T any](ctx *Context, in []S, fn func(*Context, S) (T, error)) ([]T, error) {
	if in == nil {
		return nil, nil
	}

	if err := ctx.enter(); err != nil {
		return nil, err
	}
	defer ctx.leave()

	out := make([]T, len(in))
	for i := range in {
		v, err := fn(ctx, in[i])
		if err != nil {
			return nil, FieldError(indexSegment(i), err)
		}

		out[i] = v
	}

	return out, nil
}

// Slice lifts fn to slices. See MapSlice.
func Slice[S, T any](fn func(*Context, S) (T, error)) func(*Context, []S) ([]T, error) {
	return func(ctx *Context, in []S) ([]T, error) {
		return MapSlice(ctx, in, fn)
	}
}

// MapValues converts every value of in with fn, keeping keys as they are.
// Same failure rules as MapSlice.
func MapValues[K comparable, S, T any](ctx *Context, in map[K]S, fn func(*Context, S) (T, error)) (map[K]T, error) {
	if in == nil {
		return nil, nil
	}

	if err := ctx.enter(); err != nil {
		return nil, err
	}
	defer ctx.leave()

	out := make(map[K]T, len(in))
	for k, s := range in {
		v, err := fn(ctx, s)
		if err != nil {
			return nil, FieldError(indexSegment(k), err)
		}

		out[k] = v
	}

	return out, nil
}

// Values lifts fn to maps keyed by K. See MapValues.
func Values[K comparable, S, T any](fn func(*Context, S) (T, error)) func(*Context, map[K]S) (map[K]T, error) {
	return func(ctx *Context, in map[K]S) (map[K]T, error) {
		return MapValues(ctx, in, fn)
	}
}
