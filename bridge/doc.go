// Package bridge is the runtime half of bridge-generator.
//
// Generated converters (and hand-written ones following the same shape) are
// plain functions:
//
//	func(ctx *bridge.Context, in S) (T, error)
//
// The package provides the context token threaded through every call, the
// typed conversion error, and a small fixed set of generic adapters that
// compose converters over wrapper types:
//
//   - MapOptional / Optional: *S -> *T, nil stays nil
//   - MapSlice / Slice, MapValues / Values: element-wise, first failure aborts
//   - MapOwned / Owned, WrapOwned / Wrapped: values living in the foreign runtime
//   - Into, TryInto, TryEnum: numeric and enum coercions
//
// A typical call site looks like:
//
//	ctx := bridge.NewContext(rt)
//	py, err := geometry.ShapeToBridge(ctx, shape)
package bridge
