// Package plan resolves bridge declarations into per-field conversion plans
// consumed by code generation.
//
// Resolution pipeline:
//  1. Resolve the paired type of every declaration.
//  2. Check the declaration shape against its pair.
//  3. For every field and both directions pick one strategy, in order:
//     override, identical types, nested declaration, hand-written
//     converter, optional, slice, map, owned handle, numeric coercion,
//     same underlying type.
//  4. Report every problem as a diagnostic; a plan with errors is not
//     generated.
package plan
