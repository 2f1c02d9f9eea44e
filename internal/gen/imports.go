package gen

import (
	"fmt"
	"go/types"
	"slices"
	"sort"

	"bridge-generator/internal/common"
	"bridge-generator/internal/plan"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string // empty when the package name is used
	Path  string
}

// importSet assigns file-local names to the packages a generated file uses.
// It is filled sequentially and only read while rendering.
type importSet struct {
	self    *types.Package
	names   map[string]string // path -> local name
	taken   map[string]string // local name -> path
	pkgName map[string]string // path -> declared package name
}

func newImportSet(self *types.Package) *importSet {
	return &importSet{
		self:    self,
		names:   make(map[string]string),
		taken:   make(map[string]string),
		pkgName: make(map[string]string),
	}
}

// require imports path under exactly the given name, as override
// expressions are written against it.
func (s *importSet) require(name, path, pkgName string) error {
	if path == s.self.Path() {
		return nil
	}

	if got, ok := s.names[path]; ok {
		if got != name {
			return fmt.Errorf("package %s is referred to as both %s and %s", path, got, name)
		}

		return nil
	}

	if other, ok := s.taken[name]; ok && other != path {
		return fmt.Errorf("name %s refers to both %s and %s", name, other, path)
	}

	s.names[path] = name
	s.taken[name] = path
	s.pkgName[path] = pkgName

	return nil
}

// add imports pkg under its own name, or the first free numbered variant.
func (s *importSet) add(pkg *types.Package) {
	if pkg == nil || pkg == s.self || pkg.Path() == s.self.Path() {
		return
	}

	if _, ok := s.names[pkg.Path()]; ok {
		return
	}

	base := pkg.Name()
	name := base

	for i := 2; !s.free(name); i++ {
		name = fmt.Sprintf("%s%d", base, i)
	}

	s.names[pkg.Path()] = name
	s.taken[name] = pkg.Path()
	s.pkgName[pkg.Path()] = pkg.Name()
}

// locals are the identifiers generated bodies declare.
var locals = map[string]bool{"ctx": true, "in": true, "out": true, "err": true, "v": true}

func (s *importSet) free(name string) bool {
	if _, ok := s.taken[name]; ok || locals[name] {
		return false
	}

	return s.self.Scope().Lookup(name) == nil
}

// addType imports every package t refers to.
func (s *importSet) addType(t types.Type) {
	switch t := t.(type) {
	case *types.Named:
		s.add(t.Obj().Pkg())

		for i := range t.TypeArgs().Len() {
			s.addType(t.TypeArgs().At(i))
		}
	case *types.Alias:
		s.addType(types.Unalias(t))
	case *types.Pointer:
		s.addType(t.Elem())
	case *types.Slice:
		s.addType(t.Elem())
	case *types.Array:
		s.addType(t.Elem())
	case *types.Map:
		s.addType(t.Key())
		s.addType(t.Elem())
	case *types.Chan:
		s.addType(t.Elem())
	case *types.Struct:
		for i := range t.NumFields() {
			s.addType(t.Field(i).Type())
		}
	case *types.Signature:
		for i := range t.Params().Len() {
			s.addType(t.Params().At(i).Type())
		}

		for i := range t.Results().Len() {
			s.addType(t.Results().At(i).Type())
		}
	}
}

// addOverrideImports imports the packages override expressions refer to,
// under the names the expressions use. pkgName reports the declared name of
// a package path, or "" when it is not loaded.
func (s *importSet) addOverrideImports(c *plan.Conversion, pkgName func(string) string) error {
	var err error

	c.Walk(func(c *plan.Conversion) {
		for _, imp := range c.Imports {
			if e := s.require(imp.Name, imp.Path, pkgName(imp.Path)); e != nil && err == nil {
				err = e
			}
		}
	})

	return err
}

// addConversion imports every package the types and functions of a
// conversion chain refer to.
func (s *importSet) addConversion(c *plan.Conversion) {
	c.Walk(func(c *plan.Conversion) {
		s.addType(c.Source)
		s.addType(c.Target)

		if c.Key != nil {
			s.addType(c.Key)
		}

		s.add(c.FuncPkg)
	})
}

// qualifier returns the local name of pkg for types.TypeString.
func (s *importSet) qualifier(pkg *types.Package) string {
	if pkg == nil || pkg.Path() == s.self.Path() {
		return ""
	}

	if name, ok := s.names[pkg.Path()]; ok {
		return name
	}

	return pkg.Name()
}

// name returns the local name of the package with the given path.
func (s *importSet) name(path string) string {
	return s.names[path]
}

// typeString renders t as written in the generated file.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// specs returns the import statements sorted by path.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.names))

	for path, name := range s.names {
		spec := importSpec{Path: path}
		declared := s.pkgName[path]
		if declared == "" {
			declared = common.PkgAlias(path)
		}

		if declared != name {
			spec.Alias = name
		}

		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

// paths lists the imported paths, for logging.
func (s *importSet) paths() []string {
	out := make([]string, 0, len(s.names))
	for path := range s.names {
		out = append(out, path)
	}

	slices.Sort(out)

	return out
}
