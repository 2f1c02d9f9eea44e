package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"bridge-generator/internal/common"
	"bridge-generator/internal/diagnostic"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "bridge-generator/examples/geometry"
	Name    string // e.g., "Shape"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the TypeID qualified by the package alias only ("geometry.Shape").
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// TypeIDOf returns the TypeID of a named type object.
func TypeIDOf(obj *types.TypeName) TypeID {
	id := TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		id.PkgPath = obj.Pkg().Path()
	}

	return id
}

// Shape classifies the structure of a declared type.
type Shape int

//go:generate go tool stringer -type=Shape -trimprefix=Shape -output=shape_string.go

const (
	ShapeUnsupported Shape = iota // interfaces, generics, aliases
	ShapeFields                   // struct with at least one field
	ShapeWrapper                  // defined non-struct type, e.g. type UserID int64
	ShapeEmpty                    // struct{}
)

// ShapeOf classifies a named type.
func ShapeOf(obj *types.TypeName) Shape {
	if obj.IsAlias() {
		return ShapeUnsupported
	}

	named, ok := obj.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return ShapeUnsupported
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		if u.NumFields() == 0 {
			return ShapeEmpty
		}

		return ShapeFields
	case *types.Interface, *types.Signature, *types.Chan:
		return ShapeUnsupported
	default:
		return ShapeWrapper
	}
}

// FieldDirective holds the override expressions of one field. Into converts
// native to bridge, From converts bridge to native. Empty means default.
type FieldDirective struct {
	From string `yaml:"from,omitempty"`
	Into string `yaml:"into,omitempty"`
}

// IsZero reports whether neither direction is overridden.
func (d FieldDirective) IsZero() bool {
	return d.From == "" && d.Into == ""
}

// FieldInfo describes a struct field of a declared type.
type FieldInfo struct {
	Name      string            // Go field name
	Exported  bool              // Whether the field is exported
	Embedded  bool              // Whether the field is embedded (anonymous)
	Index     int               // Field index in the struct
	Type      types.Type        // Field type
	Tag       reflect.StructTag // Raw struct tag
	Pos       token.Position    // Field position
	Directive FieldDirective    // Overrides from the struct tag or mapping file
}

// Source records where a declaration came from.
type Source int

const (
	SourceDirective Source = iota // doc comment directive
	SourceMapping                 // mapping file entry
)

// Declaration is a native type paired with a bridge type.
type Declaration struct {
	ID      TypeID
	Obj     *types.TypeName
	Package *PackageInfo
	File    *ast.File // file declaring the type, used as the override scope
	Pos     token.Position
	PairRef string // "<pkg>.<Type>" as written
	Shape   Shape
	Fields  []FieldInfo // ShapeFields only, declaration order
	Source  Source
}

// Label names the declaration for diagnostics ("geometry.Shape<->pygeom.PyShape").
func (d *Declaration) Label() string {
	if d.PairRef == "" {
		return d.ID.Short()
	}

	return d.ID.Short() + "<->" + d.PairRef
}

// Field returns the field with the given name.
func (d *Declaration) Field(name string) (*FieldInfo, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}

	return nil, false
}

// FieldNames returns field names in declaration order.
func (d *Declaration) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}

	return names
}

// PackageInfo holds a loaded root package.
type PackageInfo struct {
	Path      string // Import path
	Name      string // Package name
	Dir       string // Directory holding the package sources
	Types     *types.Package
	TypesInfo *types.Info
	Syntax    []*ast.File
	Fset      *token.FileSet

	generated map[string]bool // filenames of generated files
	extra     bool            // loaded only to resolve paired types
}

// IsGenerated reports whether pos lies in a generated file of the package.
func (p *PackageInfo) IsGenerated(pos token.Pos) bool {
	if !pos.IsValid() || p.Fset == nil {
		return false
	}

	return p.generated[p.Fset.Position(pos).Filename]
}

// PairOnly reports whether the package was loaded only to resolve paired
// types and is not scanned for declarations.
func (p *PackageInfo) PairOnly() bool {
	return p.extra
}

// FileOf returns the syntax tree of the file containing pos.
func (p *PackageInfo) FileOf(pos token.Pos) *ast.File {
	for _, f := range p.Syntax {
		if f.FileStart <= pos && pos <= f.FileEnd {
			return f
		}
	}

	return nil
}

func (p *PackageInfo) indexFiles() {
	p.generated = make(map[string]bool)

	for _, f := range p.Syntax {
		if !ast.IsGenerated(f) {
			continue
		}

		p.generated[p.Fset.Position(f.Package).Filename] = true
	}

	if p.Dir == "" && len(p.Syntax) > 0 {
		p.Dir = filepath.Dir(p.Fset.Position(p.Syntax[0].Package).Filename)
	}
}

// TypeGraph holds the loaded packages and the declarations discovered in them.
type TypeGraph struct {
	Fset *token.FileSet
	// Packages maps import paths of root packages to their info.
	Packages map[string]*PackageInfo
	// Roots lists root packages in load order.
	Roots []*PackageInfo
	// Diagnostics collected during discovery.
	Diagnostics diagnostic.Diagnostics

	decls   *linkedhashmap.Map // TypeID -> *Declaration
	imports map[string]*types.Package
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Fset:     token.NewFileSet(),
		Packages: make(map[string]*PackageInfo),
		decls:    linkedhashmap.New(),
	}
}

// AddPackage registers a root package.
func (g *TypeGraph) AddPackage(p *PackageInfo) {
	if p.Fset == nil {
		p.Fset = g.Fset
	}

	p.indexFiles()
	g.Packages[p.Path] = p
	g.Roots = append(g.Roots, p)
	g.imports = nil
}

// AddDeclaration registers d. It returns false if the type is already declared.
func (g *TypeGraph) AddDeclaration(d *Declaration) bool {
	if _, ok := g.decls.Get(d.ID); ok {
		return false
	}

	g.decls.Put(d.ID, d)

	return true
}

// Declaration returns the declaration of a native type.
func (g *TypeGraph) Declaration(id TypeID) (*Declaration, bool) {
	v, ok := g.decls.Get(id)
	if !ok {
		return nil, false
	}

	return v.(*Declaration), true
}

// Declarations returns all declarations in discovery order.
func (g *TypeGraph) Declarations() []*Declaration {
	out := make([]*Declaration, 0, g.decls.Size())
	for it := g.decls.Iterator(); it.Next(); {
		out = append(out, it.Value().(*Declaration))
	}

	return out
}

// Len returns the number of declarations.
func (g *TypeGraph) Len() int {
	return g.decls.Size()
}

// LookupType finds a named type in a root package or in any package they
// import, directly or transitively.
func (g *TypeGraph) LookupType(id TypeID) *types.TypeName {
	pkg := g.Package(id.PkgPath)
	if pkg == nil {
		return nil
	}

	tn, _ := pkg.Scope().Lookup(id.Name).(*types.TypeName)

	return tn
}

// Package returns the type-checked package with the given import path if it
// is a root package or reachable from one through imports.
func (g *TypeGraph) Package(path string) *types.Package {
	if p, ok := g.Packages[path]; ok && p.Types != nil {
		return p.Types
	}

	if g.imports == nil {
		g.imports = make(map[string]*types.Package)

		var visit func(*types.Package)
		visit = func(p *types.Package) {
			for _, imp := range p.Imports() {
				if _, seen := g.imports[imp.Path()]; seen {
					continue
				}

				g.imports[imp.Path()] = imp
				visit(imp)
			}
		}

		for _, root := range g.Roots {
			if root.Types != nil {
				visit(root.Types)
			}
		}
	}

	return g.imports[path]
}

// NewDeclaration builds a declaration of obj paired with ref, with its fields
// in declaration order and no field directives. It does not register it.
func (g *TypeGraph) NewDeclaration(obj *types.TypeName, ref string, src Source) *Declaration {
	d := &Declaration{
		ID:      TypeIDOf(obj),
		Obj:     obj,
		Pos:     g.Fset.Position(obj.Pos()),
		PairRef: ref,
		Shape:   ShapeOf(obj),
		Source:  src,
	}

	if obj.Pkg() != nil {
		if pkg, ok := g.Packages[obj.Pkg().Path()]; ok {
			d.Package = pkg
			d.File = pkg.FileOf(obj.Pos())
		}
	}

	if d.Shape != ShapeFields {
		return d
	}

	st := obj.Type().Underlying().(*types.Struct)
	d.Fields = make([]FieldInfo, 0, st.NumFields())

	for i := range st.NumFields() {
		v := st.Field(i)
		d.Fields = append(d.Fields, FieldInfo{
			Name:     v.Name(),
			Exported: v.Exported(),
			Embedded: v.Embedded(),
			Index:    i,
			Type:     v.Type(),
			Tag:      reflect.StructTag(st.Tag(i)),
			Pos:      g.Fset.Position(v.Pos()),
		})
	}

	return d
}
