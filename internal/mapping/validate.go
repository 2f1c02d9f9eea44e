package mapping

import (
	"fmt"
	"go/token"
	"go/types"
	"slices"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/match"
)

// Validate checks a mapping file against the loaded packages. It reports
// structural problems only; the bridge side is checked during resolution.
func Validate(mf *MappingFile, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError(diagnostic.CodeBadDirective, "mapping file is nil", "", "")
		return res
	}

	if graph == nil {
		res.AddError(diagnostic.CodeLoad, "type graph is nil", "", "")
		return res
	}

	seen := make(map[analyze.TypeID]int)

	for i := range mf.Mappings {
		tm := &mf.Mappings[i]
		pos := mf.position(tm.Line)

		if tm.Native == "" || tm.Bridge == "" {
			res.AddErrorAt(pos, diagnostic.CodeMissingPair,
				"mapping must name both a native and a bridge type", tm.Label(), "")

			continue
		}

		tn := ResolveTypeID(tm.Native, graph)
		if tn == nil {
			res.AddErrorAt(pos, diagnostic.CodeTypeNotFound,
				fmt.Sprintf("native type %q not found in the loaded packages", tm.Native), tm.Label(), "",
				match.Suggest(tm.Native, nativeCandidates(graph))...)

			continue
		}

		id := analyze.TypeIDOf(tn)
		if first, dup := seen[id]; dup {
			res.AddErrorAt(pos, diagnostic.CodeDuplicateMapping,
				fmt.Sprintf("%s is already mapped by entry %d", id.Short(), first+1), tm.Label(), "")

			continue
		}

		seen[id] = i

		validateFields(res, mf, tm, tn)
	}

	return res
}

func validateFields(res *diagnostic.Diagnostics, mf *MappingFile, tm *TypeMapping, tn *types.TypeName) {
	if len(tm.Fields) == 0 {
		return
	}

	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		res.AddErrorAt(mf.position(tm.Line), diagnostic.CodeUnsupportedShape,
			fmt.Sprintf("%s is not a struct, field entries do not apply", tm.Native), tm.Label(), "")

		return
	}

	names := make([]string, 0, st.NumFields())
	for i := range st.NumFields() {
		names = append(names, st.Field(i).Name())
	}

	seen := make(map[string]bool, len(tm.Fields))

	for _, fm := range tm.Fields {
		pos := mf.position(fm.Line)

		switch {
		case fm.Name == "":
			res.AddErrorAt(pos, diagnostic.CodeBadDirective, "field entry without a name", tm.Label(), "")
		case !slices.Contains(names, fm.Name):
			res.AddErrorAt(pos, diagnostic.CodeUnknownField,
				fmt.Sprintf("%s has no field %s", tm.Native, fm.Name), tm.Label(), fm.Name,
				match.Suggest(fm.Name, names)...)
		case seen[fm.Name]:
			res.AddErrorAt(pos, diagnostic.CodeDuplicateMapping,
				fmt.Sprintf("field %s is listed more than once", fm.Name), tm.Label(), fm.Name)
		case fm.From == "" && fm.Into == "":
			res.AddErrorAt(pos, diagnostic.CodeBadDirective,
				fmt.Sprintf("field %s sets neither from nor into", fm.Name), tm.Label(), fm.Name)
		}

		seen[fm.Name] = true
	}
}

func (mf *MappingFile) position(line int) token.Position {
	return token.Position{Filename: mf.Path, Line: line}
}

func nativeCandidates(graph *analyze.TypeGraph) []string {
	var out []string

	for _, pkg := range graph.Roots {
		if pkg.PairOnly() {
			continue
		}

		for _, name := range pkg.Types.Scope().Names() {
			if _, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName); ok {
				out = append(out, pkg.Name+"."+name)
			}
		}
	}

	return out
}
