package bridge

// DefaultMaxDepth bounds how deep optional values, slices and maps may nest
// during a single conversion before it fails with KindDepth.
const DefaultMaxDepth = 4096

// Runtime is the foreign runtime's object store. Values handed across the
// boundary by reference live in a Runtime and are addressed by Handle.
//
// Implementations decide their own concurrency discipline; Arena is safe for
// concurrent use.
type Runtime interface {
	// Alloc stores v and returns its id.
	Alloc(v any) (uint64, error)
	// Load returns the value stored under id.
	Load(id uint64) (any, bool)
	// Release drops the value stored under id.
	Release(id uint64)
}

// Context is the per-call token passed through every level of a conversion.
// It is created by the caller right before converting and dropped after.
// A Context is not safe for concurrent use.
//
// A nil *Context is valid: it has no runtime and no depth limit, so it only
// serves conversions that never touch handles.
type Context struct {
	rt       Runtime
	depth    int
	maxDepth int
}

// Option configures a Context.
type Option func(*Context)

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values disable the limit.
func WithMaxDepth(n int) Option {
	return func(c *Context) {
		c.maxDepth = n
	}
}

// NewContext returns a token bound to rt. rt may be nil when no conversion
// in the call chain touches foreign-owned values.
func NewContext(rt Runtime, opts ...Option) *Context {
	c := &Context{
		rt:       rt,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Runtime returns the runtime the context is bound to.
func (c *Context) Runtime() Runtime {
	if c == nil {
		return nil
	}

	return c.rt
}

// enter records one more level of nesting and fails once the limit is hit.
func (c *Context) enter() error {
	if c == nil {
		return nil
	}

	c.depth++
	if c.maxDepth > 0 && c.depth > c.maxDepth {
		c.depth--

		return &Error{
			Kind:   KindDepth,
			Detail: "nesting exceeds the context depth limit, the value graph is probably cyclic",
			Value:  c.maxDepth,
		}
	}

	return nil
}

func (c *Context) leave() {
	if c == nil {
		return
	}

	c.depth--
}
