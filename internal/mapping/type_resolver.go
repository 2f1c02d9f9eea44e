package mapping

import (
	"go/types"
	"strings"

	"bridge-generator/internal/analyze"
)

// ResolveTypeID resolves a native type reference among the root packages:
//   - "bridge-generator/examples/geometry.Shape" (full)
//   - "geometry.Shape" (short, matched by package name or path suffix)
//   - "Shape" (name only, must be unique).
func ResolveTypeID(ref string, graph *analyze.TypeGraph) *types.TypeName {
	if graph == nil || ref == "" {
		return nil
	}

	pkgStr, name := analyze.SplitRef(ref)
	if name == "" {
		return nil
	}

	if _, root := graph.Packages[pkgStr]; root {
		return graph.LookupType(analyze.TypeID{PkgPath: pkgStr, Name: name})
	}

	var found []*types.TypeName

	for _, pkg := range graph.Roots {
		if pkg.PairOnly() {
			continue
		}

		if pkgStr != "" && pkg.Name != pkgStr && !strings.HasSuffix(pkg.Path, "/"+pkgStr) {
			continue
		}

		if tn, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName); ok {
			found = append(found, tn)
		}
	}

	if len(found) != 1 {
		return nil
	}

	return found[0]
}
