package mapping

import (
	"fmt"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/diagnostic"
)

// Apply validates mf and merges its mappings into graph. Types without a
// declaration are registered with SourceMapping; existing declarations get
// their field overrides filled in.
func Apply(mf *MappingFile, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := Validate(mf, graph)
	if res.HasErrors() {
		return res
	}

	for i := range mf.Mappings {
		tm := &mf.Mappings[i]
		tn := ResolveTypeID(tm.Native, graph)

		decl, ok := graph.Declaration(analyze.TypeIDOf(tn))
		if !ok {
			decl = graph.NewDeclaration(tn, tm.Bridge, analyze.SourceMapping)
			mergeFields(res, mf, tm, decl)
			graph.AddDeclaration(decl)

			continue
		}

		if !samePair(graph, decl, tm.Bridge) {
			res.AddErrorAt(mf.position(tm.Line), diagnostic.CodeConflictingPair,
				fmt.Sprintf("%s is declared with //bridge:map %s at %s but mapped to %s here",
					decl.ID.Short(), decl.PairRef, decl.Pos, tm.Bridge),
				decl.Label(), "")

			continue
		}

		mergeFields(res, mf, tm, decl)
	}

	return res
}

func samePair(graph *analyze.TypeGraph, decl *analyze.Declaration, ref string) bool {
	if decl.PairRef == ref {
		return true
	}

	a, errA := graph.ResolveRef(decl, decl.PairRef)
	b, errB := graph.ResolveRef(decl, ref)

	return errA == nil && errB == nil && a == b
}

func mergeFields(res *diagnostic.Diagnostics, mf *MappingFile, tm *TypeMapping, decl *analyze.Declaration) {
	for _, fm := range tm.Fields {
		f, ok := decl.Field(fm.Name)
		if !ok {
			continue
		}

		for _, dir := range []struct {
			key  string
			dst  *string
			expr string
		}{
			{analyze.KeyFrom, &f.Directive.From, fm.From},
			{analyze.KeyInto, &f.Directive.Into, fm.Into},
		} {
			if mergeExpr(dir.dst, dir.expr) {
				continue
			}

			res.AddErrorAt(mf.position(fm.Line), diagnostic.CodeConflictingDirective,
				fmt.Sprintf("%s override %q conflicts with struct tag %q", dir.key, dir.expr, *dir.dst),
				decl.Label(), fm.Name)
		}
	}
}

// mergeExpr fills *dst with expr unless it already holds a different one.
func mergeExpr(dst *string, expr string) bool {
	switch {
	case expr == "" || *dst == expr:
		return true
	case *dst == "":
		*dst = expr
		return true
	default:
		return false
	}
}
