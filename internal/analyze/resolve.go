package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"strconv"
	"strings"
)

var (
	// ErrPackageNotLoaded is returned by ResolveRef for an import path that is
	// neither a root package nor imported by one.
	ErrPackageNotLoaded = errors.New("package not loaded")
	// ErrTypeNotFound is returned when the package is known but has no such type.
	ErrTypeNotFound = errors.New("type not found")
)

// RefError describes a paired-type reference that could not be resolved.
type RefError struct {
	Ref     string
	PkgPath string         // set for import-path references
	Pkg     *types.Package // set when the package was found but not the type
	Err     error
}

func (e *RefError) Error() string {
	return fmt.Sprintf("cannot resolve %q: %v", e.Ref, e.Err)
}

func (e *RefError) Unwrap() error {
	return e.Err
}

// ResolveRef resolves the paired-type reference of d.
//
// The package part is either a full import path (contains a slash or matches
// a loaded package path) or a package name. Names are looked up among the
// imports of the file declaring d first, then the declaring package and its
// other imports, then the other root packages.
func (g *TypeGraph) ResolveRef(d *Declaration, ref string) (*types.TypeName, error) {
	pkgPart, name := SplitRef(ref)
	if name == "" || !token.IsIdentifier(name) {
		return nil, &RefError{Ref: ref, Err: fmt.Errorf("%q is not a type name", name)}
	}

	var pkg *types.Package

	switch {
	case pkgPart == "":
		pkg = d.Obj.Pkg()
	case strings.Contains(pkgPart, "/") || g.Package(pkgPart) != nil:
		pkg = g.Package(pkgPart)
		if pkg == nil {
			return nil, &RefError{Ref: ref, PkgPath: pkgPart, Err: ErrPackageNotLoaded}
		}
	default:
		var err error

		pkg, err = g.packageByName(d, pkgPart)
		if err != nil {
			return nil, &RefError{Ref: ref, Err: err}
		}
	}

	tn, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return nil, &RefError{Ref: ref, Pkg: pkg, Err: fmt.Errorf("%w: %s.%s", ErrTypeNotFound, pkg.Path(), name)}
	}

	return tn, nil
}

func (g *TypeGraph) packageByName(d *Declaration, name string) (*types.Package, error) {
	if d.File != nil && d.Package != nil && d.Package.Types != nil {
		imported := make(map[string]*types.Package)
		for _, imp := range d.Package.Types.Imports() {
			imported[imp.Path()] = imp
		}

		for _, spec := range d.File.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}

			imp := imported[path]
			if imp == nil {
				continue
			}

			local := imp.Name()
			if spec.Name != nil {
				local = spec.Name.Name
			}

			if local == name {
				return imp, nil
			}
		}
	}

	if own := d.Obj.Pkg(); own != nil {
		if own.Name() == name {
			return own, nil
		}

		for _, imp := range own.Imports() {
			if imp.Name() == name {
				return imp, nil
			}
		}
	}

	var found []*types.Package

	for _, root := range g.Roots {
		if root.Types != nil && root.Name == name {
			found = append(found, root.Types)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: no imported or loaded package named %s", ErrPackageNotLoaded, name)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("package name %s is ambiguous, use the import path", name)
	}
}
