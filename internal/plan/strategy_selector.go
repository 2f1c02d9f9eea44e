package plan

import (
	"errors"
	"fmt"
	"go/types"

	"bridge-generator/primitive"
)

var errNoRule = errors.New("no conversion rule applies")

// convert picks the default strategy for converting s into t. Element
// conversions inside pointers, collections and handles recurse.
func (r *Resolver) convert(p *ResolvedPair, dir Direction, s, t types.Type) (*Conversion, error) {
	c := &Conversion{Source: s, Target: t}

	if types.Identical(s, t) {
		c.Strategy = StrategyAssign
		return c, nil
	}

	if r.nested(dir, s, t, c) || r.handwritten(p, dir, s, t, c) {
		return c, nil
	}

	if elem, ok, err := r.container(p, dir, s, t, c); ok || err != nil {
		if err != nil {
			return nil, err
		}

		c.Elem = elem

		return c, nil
	}

	if r.numeric(s, t, c) {
		return c, nil
	}

	if types.Identical(s.Underlying(), t.Underlying()) {
		c.Strategy = StrategyConvert
		return c, nil
	}

	return nil, errNoRule
}

// nested matches a declared pair in this run: the native side of a
// declaration converted to its bridge side or back.
func (r *Resolver) nested(dir Direction, s, t types.Type, c *Conversion) bool {
	nativeSide, bridgeSide := s, t
	if dir == DirectionFromBridge {
		nativeSide, bridgeSide = t, s
	}

	n := named(nativeSide)
	if n == nil {
		return false
	}

	pair, ok := r.pairs[n.Obj()]
	if !ok || !types.Identical(pair.Bridge, bridgeSide) {
		return false
	}

	c.Strategy = StrategyNested
	c.FuncName = pair.FuncName(dir)
	c.FuncPkg = pair.Native.Obj().Pkg()

	return true
}

// handwritten finds <T>ToBridge / <T>FromBridge, T being the native-side type
// name, declared by hand in the package of p with the exact converter
// signature.
func (r *Resolver) handwritten(p *ResolvedPair, dir Direction, s, t types.Type, c *Conversion) bool {
	nativeSide := s
	if dir == DirectionFromBridge {
		nativeSide = t
	}

	n := named(nativeSide)
	if n == nil {
		return false
	}

	fn, ok := p.Native.Obj().Pkg().Scope().Lookup(n.Obj().Name() + dir.Suffix()).(*types.Func)
	if !ok || p.Decl.Package != nil && p.Decl.Package.IsGenerated(fn.Pos()) {
		return false
	}

	sig := fn.Type().(*types.Signature)
	if sig.TypeParams().Len() > 0 || r.checkSignature(sig, s, t, true) != nil {
		return false
	}

	c.Strategy = StrategyHandwritten
	c.Func = fn
	c.FuncName = fn.Name()
	c.FuncPkg = fn.Pkg()

	return true
}

// container handles pointers, slices, maps and owned handles. ok reports
// whether s and t have a container shape the rules cover.
func (r *Resolver) container(p *ResolvedPair, dir Direction, s, t types.Type, c *Conversion) (*Conversion, bool, error) {
	var (
		es, et types.Type
		shape  string
	)

	su, tu := types.Unalias(s), types.Unalias(t)

	switch {
	case r.handlePayload(s) != nil:
		c.Strategy = StrategyMapOwned
		es, et, shape = r.handlePayload(s), t, "handle payload"
	case r.handlePayload(t) != nil:
		c.Strategy = StrategyWrapOwned
		es, et, shape = s, r.handlePayload(t), "handle payload"
	default:
		switch sv := su.(type) {
		case *types.Pointer:
			tv, ok := tu.(*types.Pointer)
			if !ok {
				return nil, false, nil
			}

			c.Strategy = StrategyOptional
			es, et, shape = sv.Elem(), tv.Elem(), "pointee"
		case *types.Slice:
			tv, ok := tu.(*types.Slice)
			if !ok {
				return nil, false, nil
			}

			c.Strategy = StrategySlice
			es, et, shape = sv.Elem(), tv.Elem(), "slice element"
		case *types.Map:
			tv, ok := tu.(*types.Map)
			if !ok {
				return nil, false, nil
			}

			if !types.Identical(sv.Key(), tv.Key()) {
				return nil, true, fmt.Errorf("map keys %s and %s differ", sv.Key(), tv.Key())
			}

			c.Strategy = StrategyMap
			c.Key = sv.Key()
			es, et, shape = sv.Elem(), tv.Elem(), "map value"
		default:
			return nil, false, nil
		}
	}

	elem, err := r.convert(p, dir, es, et)
	if err != nil {
		return nil, true, fmt.Errorf("%s %s to %s: %w", shape, es, et, err)
	}

	return elem, true, nil
}

// handlePayload returns X for bridge.Handle[X], nil otherwise.
func (r *Resolver) handlePayload(t types.Type) types.Type {
	n := named(t)
	if n == nil || n.TypeArgs().Len() != 1 {
		return nil
	}

	obj := n.Obj()
	if obj.Pkg() == nil || obj.Pkg().Path() != BridgePkgPath || obj.Name() != "Handle" {
		return nil
	}

	return n.TypeArgs().At(0)
}

// numeric picks Into, TryInto or TryEnum for basic numeric kinds.
func (r *Resolver) numeric(s, t types.Type, c *Conversion) bool {
	ks, kt := primitive.FromGoType(s), primitive.FromGoType(t)
	if !ks.IsNumber() || !kt.IsNumber() {
		return false
	}

	switch {
	case isEnum(t):
		if !ks.IsInteger() {
			return false
		}

		c.Strategy = StrategyTryEnum
	case primitive.IsLossless(ks, kt):
		c.Strategy = StrategyInto
	default:
		c.Strategy = StrategyTryInto
	}

	return true
}

// isEnum reports whether t is a defined integer type with an IsValid() bool
// method.
func isEnum(t types.Type) bool {
	n := named(t)
	if n == nil || !primitive.FromGoType(t).IsInteger() {
		return false
	}

	obj, _, _ := types.LookupFieldOrMethod(t, false, n.Obj().Pkg(), "IsValid")

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig := fn.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}

	return types.Identical(sig.Results().At(0).Type(), types.Typ[types.Bool])
}

func named(t types.Type) *types.Named {
	n, _ := types.Unalias(t).(*types.Named)
	return n
}
