package plan

import (
	"go/types"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/diagnostic"
)

// BridgePkgPath is the import path of the runtime helper package.
const BridgePkgPath = "bridge-generator/bridge"

// Generated function name suffixes. Hand-written converters use the same
// names for the types they cover.
const (
	ToBridgeSuffix   = "ToBridge"
	FromBridgeSuffix = "FromBridge"
	PairVarSuffix    = "Bridge"
)

// Plan is the final output of resolution.
type Plan struct {
	// Pairs in declaration order.
	Pairs []*ResolvedPair
	// Graph holds the loaded packages.
	Graph *analyze.TypeGraph
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// PackagePlan groups the pairs generated into one package.
type PackagePlan struct {
	Package *analyze.PackageInfo
	Pairs   []*ResolvedPair
}

// Packages groups pairs by their native package, in order of first appearance.
func (p *Plan) Packages() []*PackagePlan {
	var (
		out   []*PackagePlan
		index = make(map[string]*PackagePlan)
	)

	for _, pair := range p.Pairs {
		path := pair.Decl.ID.PkgPath

		pp, ok := index[path]
		if !ok {
			pp = &PackagePlan{Package: pair.Decl.Package}
			index[path] = pp
			out = append(out, pp)
		}

		pp.Pairs = append(pp.Pairs, pair)
	}

	return out
}

// Direction of a conversion.
type Direction int

//go:generate go tool stringer -type=Direction -trimprefix=Direction -output=direction_string.go

const (
	DirectionToBridge   Direction = iota // native -> bridge
	DirectionFromBridge                  // bridge -> native
)

// Suffix returns the generated function name suffix of the direction.
func (d Direction) Suffix() string {
	if d == DirectionFromBridge {
		return FromBridgeSuffix
	}

	return ToBridgeSuffix
}

// ResolvedPair is a declaration with both conversion directions resolved.
type ResolvedPair struct {
	Decl   *analyze.Declaration
	Native *types.Named
	Bridge *types.Named
	Shape  analyze.Shape
	// ToBridge and FromBridge list field conversions in native field order.
	// Both are empty for ShapeWrapper.
	ToBridge   []FieldConversion
	FromBridge []FieldConversion
}

// Name is the native type name used to derive generated identifiers.
func (p *ResolvedPair) Name() string {
	return p.Decl.ID.Name
}

// FuncName returns the generated function name for a direction.
func (p *ResolvedPair) FuncName(d Direction) string {
	return p.Name() + d.Suffix()
}

// Fields returns the field conversions of a direction.
func (p *ResolvedPair) Fields(d Direction) []FieldConversion {
	if d == DirectionFromBridge {
		return p.FromBridge
	}

	return p.ToBridge
}

// Source returns the input type of a direction.
func (p *ResolvedPair) Source(d Direction) *types.Named {
	if d == DirectionFromBridge {
		return p.Bridge
	}

	return p.Native
}

// Target returns the output type of a direction.
func (p *ResolvedPair) Target(d Direction) *types.Named {
	if d == DirectionFromBridge {
		return p.Native
	}

	return p.Bridge
}

// Fallible reports whether any field conversion of d can fail.
func (p *ResolvedPair) Fallible(d Direction) bool {
	for _, f := range p.Fields(d) {
		if f.Conv.Fallible() {
			return true
		}
	}

	return false
}

// FieldConversion converts one field in one direction.
type FieldConversion struct {
	Field string
	Conv  *Conversion
}

// Strategy names how a value is converted.
type Strategy int

//go:generate go tool stringer -type=Strategy -trimprefix=Strategy -output=strategy_string.go

const (
	StrategyAssign      Strategy = iota // identical types
	StrategyOverride                    // expression from a field directive
	StrategyNested                      // generated function of another declaration
	StrategyHandwritten                 // <T>ToBridge / <T>FromBridge written by hand
	StrategyOptional                    // pointer to pointer, bridge.MapOptional
	StrategySlice                       // bridge.MapSlice
	StrategyMap                         // bridge.MapValues
	StrategyMapOwned                    // handle source, bridge.MapOwned
	StrategyWrapOwned                   // handle target, bridge.WrapOwned
	StrategyInto                        // lossless numeric conversion
	StrategyTryInto                     // checked numeric conversion
	StrategyTryEnum                     // checked integer to enum conversion
	StrategyConvert                     // Go conversion between identical underlying types
)

// Import is a package referenced by an override expression, under the name
// the expression uses for it.
type Import struct {
	Name string
	Path string
}

// Conversion describes how to turn a Source value into a Target value.
type Conversion struct {
	Strategy Strategy
	Source   types.Type
	Target   types.Type
	// Elem converts the pointee, element, map value or handle payload.
	Elem *Conversion
	// Key is the map key type for StrategyMap.
	Key types.Type
	// Func names the function called by StrategyNested and StrategyHandwritten.
	Func *types.Func
	// FuncName is the generated function called by StrategyNested.
	FuncName string
	// FuncPkg is the package declaring FuncName.
	FuncPkg *types.Package
	// Expr is the override expression for StrategyOverride.
	Expr string
	// Imports needed by Expr.
	Imports []Import
}

// Fallible reports whether the conversion is emitted as a call returning an
// error. Assignments and Go conversions are not.
func (c *Conversion) Fallible() bool {
	switch c.Strategy {
	case StrategyAssign, StrategyConvert, StrategyInto:
		return false
	default:
		return true
	}
}

// Walk calls fn for c and every nested element conversion.
func (c *Conversion) Walk(fn func(*Conversion)) {
	for cur := c; cur != nil; cur = cur.Elem {
		fn(cur)
	}
}
