// Package gen emits the bridge conversion code of a resolved plan.
//
// Generation uses text/template + go/format. Every package with declarations
// gets one file (bridge_gen.go by default) holding, per declaration:
//   - <Name>ToBridge(ctx, native) (bridge, error)
//   - <Name>FromBridge(ctx, bridge) (native, error)
//   - <Name>Bridge, a bridge.Pair bundling both
//
// Field conversions are expressed with the helpers of the bridge package:
// direct assignment or conversion, nested converter calls, MapOptional,
// MapSlice, MapValues, MapOwned, WrapOwned, TryInto and TryEnum. Each
// fallible call is checked and its error wrapped with the field name.
package gen
