// Package analyze loads Go packages and discovers bridge declarations.
//
// It uses golang.org/x/tools/go/packages with syntax and go/types to find
// every named type whose doc comment carries the declaration directive
// (//bridge:map <pkg>.<Type>), together with the per-field directives held in
// its struct tags.
//
// Key types:
//   - TypeID: package import path + type name
//   - Declaration: a native type, the paired type it names and its fields
//   - FieldDirective: optional from/into override expressions of one field
//   - TypeGraph: loaded packages plus the declarations in discovery order
package analyze
