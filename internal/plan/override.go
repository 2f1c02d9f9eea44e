package plan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
)

// checkOverride type-checks a field directive expression in the scope of the
// file declaring the type. The expression must denote a function
// func(*bridge.Context, S') (T', error) with s assignable to S' and T'
// assignable to t.
func (r *Resolver) checkOverride(p *ResolvedPair, dir Direction, s, t types.Type, expr string) (*Conversion, error) {
	pkg := p.Native.Obj().Pkg()
	pos := p.Decl.Obj.Pos()

	tv, err := types.Eval(r.graph.Fset, pkg, pos, expr)
	if err != nil {
		return nil, fmt.Errorf("%s override %q: %w", dir, expr, err)
	}

	sig, ok := tv.Type.Underlying().(*types.Signature)
	if !ok || !tv.IsValue() {
		return nil, fmt.Errorf("%s override %q is not a function", dir, expr)
	}

	if sig.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("%s override %q is generic, instantiate it explicitly", dir, expr)
	}

	if err := r.checkSignature(sig, s, t, false); err != nil {
		return nil, fmt.Errorf("%s override %q: %w", dir, expr, err)
	}

	return &Conversion{
		Strategy: StrategyOverride,
		Source:   s,
		Target:   t,
		Expr:     expr,
		Imports:  r.exprImports(pkg, pos, expr),
	}, nil
}

// checkSignature verifies the converter shape of sig. With exact set the
// value types must be identical, otherwise assignable.
func (r *Resolver) checkSignature(sig *types.Signature, s, t types.Type, exact bool) error {
	ctx := r.contextType()
	want := func() error {
		qual := func(p *types.Package) string { return p.Name() }

		return fmt.Errorf("has type %s, want func(*bridge.Context, %s) (%s, error)",
			types.TypeString(sig, qual), types.TypeString(s, qual), types.TypeString(t, qual))
	}

	if ctx == nil || sig.Variadic() || sig.Params().Len() != 2 || sig.Results().Len() != 2 {
		return want()
	}

	params, results := sig.Params(), sig.Results()
	if !types.Identical(params.At(0).Type(), ctx) || !types.Identical(results.At(1).Type(), errorType) {
		return want()
	}

	in, out := params.At(1).Type(), results.At(0).Type()

	if exact {
		if !types.Identical(in, s) || !types.Identical(out, t) {
			return want()
		}

		return nil
	}

	if !types.AssignableTo(s, in) || !types.AssignableTo(out, t) {
		return want()
	}

	return nil
}

var errorType = types.Universe.Lookup("error").Type()

// contextType returns *bridge.Context, or nil when the runtime package is
// not among the loaded packages.
func (r *Resolver) contextType() types.Type {
	if r.bridgePkg == nil {
		return nil
	}

	tn, ok := r.bridgePkg.Scope().Lookup("Context").(*types.TypeName)
	if !ok {
		return nil
	}

	return types.NewPointer(tn.Type())
}

// exprImports lists the packages an expression refers to by the names it
// uses for them in the file scope at pos.
func (r *Resolver) exprImports(pkg *types.Package, pos token.Pos, expr string) []Import {
	x, err := parser.ParseExpr(expr)
	if err != nil {
		return nil
	}

	scope := pkg.Scope().Innermost(pos)
	if scope == nil {
		return nil
	}

	var out []Import

	ast.Inspect(x, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		_, obj := scope.LookupParent(id.Name, pos)

		pn, ok := obj.(*types.PkgName)
		if !ok {
			return true
		}

		imp := Import{Name: id.Name, Path: pn.Imported().Path()}
		if !slices.Contains(out, imp) {
			out = append(out, imp)
		}

		return true
	})

	return out
}
