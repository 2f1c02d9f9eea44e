package bridge

// Func converts an S into a T. It is the shape of every generated converter,
// every override referenced by a field directive, and every helper below.
type Func[S, T any] func(ctx *Context, in S) (T, error)

// Convert calls f.
func (f Func[S, T]) Convert(ctx *Context, in S) (T, error) {
	return f(ctx, in)
}

// Converter is the conversion capability. Func implements it; so does any
// hand-written type that wants to take part in a Pair.
type Converter[S, T any] interface {
	Convert(ctx *Context, in S) (T, error)
}

// Pair bundles both directions of a native/bridge type pair.
// Generated code declares one Pair per annotated type.
type Pair[N, B any] struct {
	ToBridge   Func[N, B]
	FromBridge Func[B, N]
}

// Bridge returns the native -> bridge direction.
func (p Pair[N, B]) Bridge() Converter[N, B] {
	return p.ToBridge
}

// Native returns the bridge -> native direction.
func (p Pair[N, B]) Native() Converter[B, N] {
	return p.FromBridge
}

// Inverse swaps the directions.
func (p Pair[N, B]) Inverse() Pair[B, N] {
	return Pair[B, N]{
		ToBridge:   p.FromBridge,
		FromBridge: p.ToBridge,
	}
}

// RoundTrip converts v to the bridge side and back.
func (p Pair[N, B]) RoundTrip(ctx *Context, v N) (N, error) {
	b, err := p.ToBridge(ctx, v)
	if err != nil {
		var zero N
		return zero, err
	}

	return p.FromBridge(ctx, b)
}

// Identity is the converter between identical types.
func Identity[T any](_ *Context, in T) (T, error) {
	return in, nil
}
