package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Default directive spellings.
const (
	DefaultDirective = "bridge:map"
	DefaultTag       = "bridge"
)

// Field directive keys.
const (
	KeyFrom = "from"
	KeyInto = "into"
)

// DirectiveLine is one occurrence of the declaration directive in a doc comment.
type DirectiveLine struct {
	Pos token.Pos
	Arg string // trimmed argument, empty if missing
}

// FindDirectives returns every "//<directive>" line of doc in source order.
// The directive must start the comment and be followed by whitespace or the
// end of the line, so "//bridge:mapping" does not match "bridge:map".
func FindDirectives(doc *ast.CommentGroup, directive string) []DirectiveLine {
	if doc == nil {
		return nil
	}

	prefix := "//" + directive

	var out []DirectiveLine

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, prefix)
		if !ok {
			continue
		}

		if r, _ := utf8.DecodeRuneInString(rest); rest != "" && !unicode.IsSpace(r) {
			continue
		}

		out = append(out, DirectiveLine{Pos: c.Slash, Arg: strings.TrimSpace(rest)})
	}

	return out
}

// ParseFieldTag parses the value of a field's bridge struct tag:
//
//	bridge:"from=sizeFromBridge,into=bridge.TryInto[int64, uint32]"
//
// Entries are separated by commas outside of brackets, braces and
// parentheses. Each key may appear once.
func ParseFieldTag(value string) (FieldDirective, error) {
	var d FieldDirective

	if strings.TrimSpace(value) == "" {
		return d, errors.New("empty field directive")
	}

	parts, err := splitTopLevel(value, ',')
	if err != nil {
		return d, err
	}

	seen := make(map[string]bool, 2)

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return d, fmt.Errorf("empty entry in %q", value)
		}

		key, expr, ok := strings.Cut(part, "=")
		if !ok {
			return d, fmt.Errorf("expected key=expression, got %q", part)
		}

		key, expr = strings.TrimSpace(key), strings.TrimSpace(expr)
		if expr == "" {
			return d, fmt.Errorf("%s: missing expression", key)
		}

		if seen[key] {
			return d, fmt.Errorf("%s: given more than once", key)
		}

		seen[key] = true

		switch key {
		case KeyFrom:
			d.From = expr
		case KeyInto:
			d.Into = expr
		default:
			return d, fmt.Errorf("unknown key %q (want %q or %q)", key, KeyFrom, KeyInto)
		}
	}

	return d, nil
}

// splitTopLevel splits s at sep where no bracket is open.
func splitTopLevel(s string, sep rune) ([]string, error) {
	var (
		parts []string
		stack []rune
		start int
	)

	closing := map[rune]rune{')': '(', ']': '[', '}': '{'}

	for i, r := range s {
		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != closing[r] {
				return nil, fmt.Errorf("unbalanced %q at offset %d in %q", r, i, s)
			}

			stack = stack[:len(stack)-1]
		case sep:
			if len(stack) == 0 {
				parts = append(parts, s[start:i])
				start = i + utf8.RuneLen(r)
			}
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("unclosed %q in %q", stack[len(stack)-1], s)
	}

	return append(parts, s[start:]), nil
}

// SplitRef splits a paired-type reference "<pkg>.<Type>" at its last dot.
// A reference without a dot names a type of the declaring package.
func SplitRef(ref string) (pkg, name string) {
	i := strings.LastIndexByte(ref, '.')
	if i < 0 {
		return "", ref
	}

	return ref[:i], ref[i+1:]
}
