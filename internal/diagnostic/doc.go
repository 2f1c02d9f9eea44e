// Package diagnostic provides structured generation-time errors and
// warnings for the bridge generator.
//
// Every problem found while discovering directives, resolving type pairs or
// emitting code is recorded with a stable code, the type pair and field it
// concerns, its source position, and optional suggestions. A run with any
// error diagnostic produces no output.
package diagnostic
