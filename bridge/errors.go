package bridge

import (
	"fmt"
	"strings"
)

// Kind categorizes a conversion failure.
type Kind string

const (
	KindOverflow     Kind = "overflow"      // numeric value not representable in the target type
	KindInvalidEnum  Kind = "invalid_enum"  // value is not a member of the target enum
	KindInvalidValue Kind = "invalid_value" // rejected by a custom converter
	KindHandle       Kind = "handle"        // foreign handle is missing, released or of another type
	KindDepth        Kind = "depth"         // nesting limit exceeded (cyclic value graph)
	KindFailed       Kind = "failed"        // any other error returned by a converter
)

// Error is the typed failure returned by every conversion in this package and
// by generated converters.
type Error struct {
	Kind   Kind
	Path   []string // field path from the outermost value, e.g. ["Tags", "[1]", "Name"]
	Value  any      // the rejected value, if any
	Detail string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("bridge: ")
	if p := e.PathString(); p != "" {
		b.WriteString("converting ")
		b.WriteString(p)
		b.WriteString(": ")
	}

	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// PathString renders Path as a Go-like selector, e.g. "Tags[1].Name".
func (e *Error) PathString() string {
	var b strings.Builder

	for _, seg := range e.Path {
		if b.Len() > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}

		b.WriteString(seg)
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}

	return false
}

// Sentinels for errors.Is checks against a kind.
var (
	ErrOverflow     = &Error{Kind: KindOverflow}
	ErrInvalidEnum  = &Error{Kind: KindInvalidEnum}
	ErrInvalidValue = &Error{Kind: KindInvalidValue}
	ErrHandle       = &Error{Kind: KindHandle}
	ErrDepth        = &Error{Kind: KindDepth}
)

// Errorf returns a KindInvalidValue error carrying the rejected value.
// Custom converters use it to reject input.
func Errorf(value any, format string, args ...any) *Error {
	return &Error{
		Kind:   KindInvalidValue,
		Value:  value,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Overflow creates an overflow error for a value that does not fit into target.
func Overflow(value any, target string) *Error {
	return &Error{
		Kind:   KindOverflow,
		Value:  value,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
	}
}

// InvalidEnum creates an error for a value outside the target enum.
func InvalidEnum(value any, enum string) *Error {
	return &Error{
		Kind:   KindInvalidEnum,
		Value:  value,
		Detail: fmt.Sprintf("invalid enum value %v for %s", value, enum),
	}
}

// FieldError prefixes the path of err with a field or element segment.
// A nil err stays nil. Errors that are not *Error are wrapped as KindFailed.
func FieldError(segment string, err error) error {
	if err == nil {
		return nil
	}

	if be, ok := err.(*Error); ok {
		cp := *be
		cp.Path = append([]string{segment}, be.Path...)

		return &cp
	}

	return &Error{
		Kind:  KindFailed,
		Path:  []string{segment},
		Cause: err,
	}
}

// indexSegment formats a collection element segment.
func indexSegment(key any) string {
	if s, ok := key.(string); ok {
		return fmt.Sprintf("[%q]", s)
	}

	return fmt.Sprintf("[%v]", key)
}
