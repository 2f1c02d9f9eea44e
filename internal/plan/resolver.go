package plan

import (
	"errors"
	"fmt"
	"go/types"
	"time"

	"go.uber.org/zap"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/logging"
	"bridge-generator/internal/match"
)

// ResolutionConfig holds configuration for the resolution process.
type ResolutionConfig struct {
	// PairVars reserves the <Name>Bridge identifier for the generated Pair value.
	PairVars bool
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() ResolutionConfig {
	return ResolutionConfig{PairVars: true}
}

// Resolver resolves declarations into a Plan.
type Resolver struct {
	graph  *analyze.TypeGraph
	config ResolutionConfig
	log    *zap.Logger

	bridgePkg *types.Package
	// pairs indexes resolved pairs by native type for nested conversions.
	pairs map[*types.TypeName]*ResolvedPair
	diags diagnostic.Diagnostics
}

// NewResolver creates a new Resolver.
func NewResolver(graph *analyze.TypeGraph, config ResolutionConfig) *Resolver {
	return &Resolver{
		graph:  graph,
		config: config,
		log:    logging.Logger().Named("plan"),
		pairs:  make(map[*types.TypeName]*ResolvedPair),
	}
}

// Resolve runs resolution over every declaration of the graph. Discovery
// diagnostics of the graph are carried into the plan.
func (r *Resolver) Resolve() *Plan {
	start := time.Now()

	plan := &Plan{Graph: r.graph}
	plan.Diagnostics.Merge(r.graph.Diagnostics)

	r.bridgePkg = r.graph.Package(BridgePkgPath)

	var pending []*ResolvedPair

	for _, d := range r.graph.Declarations() {
		if p, ok := r.resolvePair(d); ok {
			pending = append(pending, p)
		}
	}

	for _, p := range pending {
		before := len(r.diags.Errors)

		switch p.Shape {
		case analyze.ShapeFields:
			r.resolveFields(p)
		case analyze.ShapeWrapper:
			r.resolveWrapper(p)
		}

		if len(r.diags.Errors) == before {
			plan.Pairs = append(plan.Pairs, p)
		}
	}

	plan.Diagnostics.Merge(r.diags)

	r.log.Debug("declarations resolved",
		zap.Int("pairs", len(plan.Pairs)),
		zap.Int("errors", len(plan.Diagnostics.Errors)),
		zap.Duration("took", time.Since(start)))

	return plan
}

// resolvePair resolves the paired type of d and checks the declaration shape.
// Pairs whose bridge type resolved are indexed for nested conversions even
// when their shape is rejected, so that users of the type do not cascade
// into no-conversion errors.
func (r *Resolver) resolvePair(d *analyze.Declaration) (*ResolvedPair, bool) {
	label := d.Label()

	native, ok := types.Unalias(d.Obj.Type()).(*types.Named)
	if !ok || d.Shape == analyze.ShapeUnsupported {
		r.diags.AddErrorAt(d.Pos, diagnostic.CodeUnsupportedShape,
			fmt.Sprintf("unsupported declaration shape: %s is not a non-generic defined type", d.ID.Name),
			label, "")

		return nil, false
	}

	tn, err := r.graph.ResolveRef(d, d.PairRef)
	if err != nil {
		r.diags.AddErrorAt(d.Pos, diagnostic.CodePairNotFound, err.Error(), label, "", r.refSuggestions(err)...)

		return nil, false
	}

	bridge, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok || bridge.TypeParams().Len() > 0 && bridge.TypeArgs().Len() == 0 {
		r.diags.AddErrorAt(d.Pos, diagnostic.CodeUnsupportedShape,
			fmt.Sprintf("paired type %s must be a non-generic defined type", d.PairRef), label, "")

		return nil, false
	}

	if bridge.Obj() == native.Obj() {
		r.diags.AddErrorAt(d.Pos, diagnostic.CodeConflictingPair,
			fmt.Sprintf("%s is paired with itself", d.ID.Name), label, "")

		return nil, false
	}

	p := &ResolvedPair{Decl: d, Native: native, Bridge: bridge, Shape: d.Shape}
	r.pairs[d.Obj] = p

	if !r.checkNames(p) {
		return nil, false
	}

	switch d.Shape {
	case analyze.ShapeEmpty:
		r.diags.AddErrorAt(d.Pos, diagnostic.CodeUnsupportedShape,
			fmt.Sprintf("unsupported declaration shape: %s has no fields", d.ID.Name), label, "")

		return nil, false
	case analyze.ShapeFields:
		if _, ok := bridge.Underlying().(*types.Struct); !ok {
			r.diags.AddErrorAt(d.Pos, diagnostic.CodeUnsupportedShape,
				fmt.Sprintf("%s has named fields but %s is not a struct", d.ID.Name, d.PairRef), label, "")

			return nil, false
		}
	}

	return p, true
}

// checkNames reports declarations in the native package that would collide
// with the generated identifiers.
func (r *Resolver) checkNames(p *ResolvedPair) bool {
	names := []string{p.FuncName(DirectionToBridge), p.FuncName(DirectionFromBridge)}
	if r.config.PairVars {
		names = append(names, p.Name()+PairVarSuffix)
	}

	scope := p.Native.Obj().Pkg().Scope()
	ok := true

	for _, name := range names {
		obj := scope.Lookup(name)
		if obj == nil || p.Decl.Package != nil && p.Decl.Package.IsGenerated(obj.Pos()) {
			continue
		}

		r.diags.AddErrorAt(r.graph.Fset.Position(obj.Pos()), diagnostic.CodeNameCollision,
			fmt.Sprintf("%s is already declared; the generated code for %s needs this name", name, p.Name()),
			p.Decl.Label(), "")

		ok = false
	}

	return ok
}

func (r *Resolver) refSuggestions(err error) []string {
	var refErr *analyze.RefError
	if !errors.As(err, &refErr) || refErr.Pkg == nil {
		return nil
	}

	_, name := analyze.SplitRef(refErr.Ref)

	return match.Suggest(name, refErr.Pkg.Scope().Names())
}

// resolveWrapper accepts a wrapper pair only when both sides share the same
// underlying type, so the value passes through unchanged. Convertible but
// different representations (int64 and int8) would truncate silently.
func (r *Resolver) resolveWrapper(p *ResolvedPair) {
	nu, bu := p.Native.Underlying(), p.Bridge.Underlying()
	if types.Identical(nu, bu) {
		return
	}

	qual := types.RelativeTo(p.Native.Obj().Pkg())
	r.diags.AddErrorAt(p.Decl.Pos, diagnostic.CodeWrapperConvertible,
		fmt.Sprintf("%s (%s) and %s (%s) do not share an underlying type; declare a struct pair or write the converters by hand",
			p.Native.Obj().Name(), types.TypeString(nu, qual), p.Decl.PairRef, types.TypeString(bu, qual)),
		p.Decl.Label(), "")
}

func (r *Resolver) resolveFields(p *ResolvedPair) {
	d := p.Decl
	bst := p.Bridge.Underlying().(*types.Struct)
	samePkg := p.Native.Obj().Pkg() == p.Bridge.Obj().Pkg()

	bridgeFields := make(map[string]*types.Var, bst.NumFields())
	bridgeNames := make([]string, 0, bst.NumFields())

	for i := range bst.NumFields() {
		v := bst.Field(i)
		bridgeFields[v.Name()] = v
		bridgeNames = append(bridgeNames, v.Name())
	}

	for i := range d.Fields {
		f := &d.Fields[i]

		bf, ok := bridgeFields[f.Name]
		if !ok {
			r.diags.AddErrorAt(f.Pos, diagnostic.CodeUnknownField,
				fmt.Sprintf("%s has no field %s", d.PairRef, f.Name), d.Label(), f.Name,
				match.Suggest(f.Name, bridgeNames)...)

			continue
		}

		if !samePkg && !bf.Exported() {
			r.diags.AddErrorAt(f.Pos, diagnostic.CodeUnexportedField,
				fmt.Sprintf("field %s of %s is not exported", f.Name, d.PairRef), d.Label(), f.Name)

			continue
		}

		if to, ok := r.fieldConversion(p, f, DirectionToBridge, f.Type, bf.Type(), f.Directive.Into); ok {
			p.ToBridge = append(p.ToBridge, FieldConversion{Field: f.Name, Conv: to})
		}

		if from, ok := r.fieldConversion(p, f, DirectionFromBridge, bf.Type(), f.Type, f.Directive.From); ok {
			p.FromBridge = append(p.FromBridge, FieldConversion{Field: f.Name, Conv: from})
		}
	}

	for _, name := range bridgeNames {
		if _, ok := d.Field(name); ok {
			continue
		}

		r.diags.AddErrorAt(d.Pos, diagnostic.CodeUnmatchedField,
			fmt.Sprintf("%s has no field %s to match %s.%s", d.ID.Name, name, d.PairRef, name),
			d.Label(), name, match.Suggest(name, d.FieldNames())...)
	}
}

func (r *Resolver) fieldConversion(p *ResolvedPair, f *analyze.FieldInfo, dir Direction, s, t types.Type, override string) (*Conversion, bool) {
	if override != "" {
		conv, err := r.checkOverride(p, dir, s, t, override)
		if err != nil {
			r.diags.AddErrorAt(f.Pos, diagnostic.CodeBadOverride, err.Error(), p.Decl.Label(), f.Name)

			return nil, false
		}

		return conv, true
	}

	conv, err := r.convert(p, dir, s, t)
	if err != nil {
		key := "into"
		if dir == DirectionFromBridge {
			key = "from"
		}

		qual := types.RelativeTo(p.Native.Obj().Pkg())
		r.diags.AddErrorAt(f.Pos, diagnostic.CodeNoConversion,
			fmt.Sprintf("%s: cannot convert %s to %s: %v; add a %s=<func> field directive",
				dir, types.TypeString(s, qual), types.TypeString(t, qual), err, key),
			p.Decl.Label(), f.Name)

		return nil, false
	}

	return conv, true
}
