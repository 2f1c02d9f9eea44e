package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"bridge-generator/internal/common"
	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/logging"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// DefaultBuildTag is set while loading. Generated files carry the negated
// constraint so previous output never takes part in analysis.
const DefaultBuildTag = "bridgegen"

// Config controls package loading and directive discovery.
type Config struct {
	Dir       string   // working directory for the go command
	Env       []string // environment for the go command, nil inherits
	Directive string   // declaration directive, default DefaultDirective
	Tag       string   // struct tag key, default DefaultTag
	BuildTag  string   // tag set while loading, default DefaultBuildTag
	Tags      []string // extra build tags
}

func (c Config) withDefaults() Config {
	if c.Directive == "" {
		c.Directive = DefaultDirective
	}

	if c.Tag == "" {
		c.Tag = DefaultTag
	}

	if c.BuildTag == "" {
		c.BuildTag = DefaultBuildTag
	}

	return c
}

// Analyzer loads Go packages and discovers bridge declarations.
type Analyzer struct {
	cfg Config
	log *zap.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{
		cfg: cfg.withDefaults(),
		log: logging.Logger().Named("analyze"),
	}
}

// LoadPackages loads the packages matching patterns in a single go/packages
// call and discovers their declarations. Paired types named by import path
// whose package is not reachable from the loaded set cause one reload with
// those paths added; such packages are not scanned for directives.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	start := time.Now()

	graph, err := a.load(ctx, patterns, nil)
	if err != nil {
		return nil, err
	}

	a.discover(graph)

	if missing := a.missingPackages(graph); len(missing) > 0 {
		a.log.Debug("reloading with paired packages", zap.Strings("packages", missing))

		graph, err = a.load(ctx, append(slices.Clone(patterns), missing...), missing)
		if err != nil {
			return nil, err
		}

		a.discover(graph)
	}

	a.log.Debug("packages analyzed",
		zap.Strings("patterns", patterns),
		zap.Int("packages", len(graph.Roots)),
		zap.Int("declarations", graph.Len()),
		zap.Duration("took", time.Since(start)))

	return graph, nil
}

// LoadPackage builds a TypeGraph from a single package that has already been
// type-checked, as done by analysis passes. No go command is run.
func (a *Analyzer) LoadPackage(fset *token.FileSet, pkg *types.Package, info *types.Info, files []*ast.File) *TypeGraph {
	graph := NewTypeGraph()
	graph.Fset = fset

	graph.AddPackage(&PackageInfo{
		Path:      pkg.Path(),
		Name:      pkg.Name(),
		Types:     pkg,
		TypesInfo: info,
		Syntax:    files,
		Fset:      fset,
	})
	a.discover(graph)

	return graph
}

func (a *Analyzer) load(ctx context.Context, patterns, extra []string) (*TypeGraph, error) {
	tags := append([]string{a.cfg.BuildTag}, a.cfg.Tags...)

	cfg := &packages.Config{
		Mode:       LoadMode,
		Context:    ctx,
		Dir:        a.cfg.Dir,
		Env:        a.cfg.Env,
		BuildFlags: []string{"-tags=" + strings.Join(tags, ",")},
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	graph := NewTypeGraph()
	graph.Fset = cfg.Fset

	var errs error

	for _, pkg := range pkgs {
		if graph.Fset == nil {
			graph.Fset = pkg.Fset
		}

		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				a.log.Warn("type error", zap.String("package", pkg.PkgPath), zap.String("error", e.Error()))
				graph.Diagnostics.Add(diagnostic.Diagnostic{
					Severity: diagnostic.DiagnosticWarning,
					Code:     diagnostic.CodeLoad,
					Message:  e.Error(),
					TypePair: pkg.PkgPath,
				})

				continue
			}

			errs = errors.Join(errs, e)
		}

		if pkg.Types == nil || pkg.TypesInfo == nil || len(pkg.Syntax) == 0 {
			errs = errors.Join(errs, fmt.Errorf("package %s has no type information", pkg.PkgPath))

			continue
		}

		dir := ""
		if len(pkg.GoFiles) > 0 {
			dir = filepath.Dir(pkg.GoFiles[0])
		}

		graph.AddPackage(&PackageInfo{
			Path:      pkg.PkgPath,
			Name:      pkg.Name,
			Dir:       dir,
			Types:     pkg.Types,
			TypesInfo: pkg.TypesInfo,
			Syntax:    pkg.Syntax,
			Fset:      pkg.Fset,
			extra:     slices.Contains(extra, pkg.PkgPath),
		})
	}

	if errs != nil {
		return nil, fmt.Errorf("package errors: %w", errs)
	}

	return graph, nil
}

// missingPackages lists import paths named by directives that ResolveRef
// could not find among the loaded packages.
func (a *Analyzer) missingPackages(g *TypeGraph) []string {
	var missing []string

	for _, d := range g.Declarations() {
		_, err := g.ResolveRef(d, d.PairRef)

		var refErr *RefError
		if errors.As(err, &refErr) && refErr.PkgPath != "" && !slices.Contains(missing, refErr.PkgPath) {
			missing = append(missing, refErr.PkgPath)
		}
	}

	return missing
}

// discover scans every non-generated file of the root packages for
// declaration directives.
func (a *Analyzer) discover(g *TypeGraph) {
	for _, pkg := range g.Roots {
		if pkg.extra {
			continue
		}

		for _, file := range pkg.Syntax {
			if ast.IsGenerated(file) {
				continue
			}

			for _, decl := range file.Decls {
				gd, ok := decl.(*ast.GenDecl)
				if !ok || gd.Tok != token.TYPE {
					continue
				}

				for _, spec := range gd.Specs {
					ts := spec.(*ast.TypeSpec)

					doc := ts.Doc
					if doc == nil && len(gd.Specs) == 1 {
						doc = gd.Doc
					}

					a.discoverType(g, pkg, file, ts, doc)
				}
			}
		}
	}
}

func (a *Analyzer) discoverType(g *TypeGraph, pkg *PackageInfo, file *ast.File, ts *ast.TypeSpec, doc *ast.CommentGroup) {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return
	}

	id := TypeIDOf(obj)
	pos := g.Fset.Position(ts.Name.Pos())
	lines := FindDirectives(doc, a.cfg.Directive)

	if common.IsEmpty(lines) {
		if a.hasFieldDirectives(obj) {
			g.Diagnostics.AddErrorAt(pos, diagnostic.CodeMissingPair,
				fmt.Sprintf("%s has %s field tags but no //%s directive", id.Name, a.cfg.Tag, a.cfg.Directive),
				id.Short(), "")
		}

		return
	}

	if common.IsMultiple(lines) {
		g.Diagnostics.AddErrorAt(g.Fset.Position(lines[1].Pos), diagnostic.CodeDuplicateDirective,
			fmt.Sprintf("%s has %d //%s directives, want exactly one", id.Name, len(lines), a.cfg.Directive),
			id.Short(), "")

		return
	}

	line, _ := common.First(lines)
	if line.Arg == "" {
		g.Diagnostics.AddErrorAt(g.Fset.Position(line.Pos), diagnostic.CodeMissingPair,
			"must specify a target type", id.Short(), "")

		return
	}

	if strings.ContainsFunc(line.Arg, unicode.IsSpace) {
		g.Diagnostics.AddErrorAt(g.Fset.Position(line.Pos), diagnostic.CodeBadDirective,
			fmt.Sprintf("directive takes a single <pkg>.<Type> argument, got %q", line.Arg),
			id.Short(), "")

		return
	}

	d := g.NewDeclaration(obj, line.Arg, SourceDirective)
	d.File = file
	d.Pos = pos

	for i := range d.Fields {
		a.parseFieldTag(g, d, &d.Fields[i])
	}

	g.AddDeclaration(d)
}

func (a *Analyzer) parseFieldTag(g *TypeGraph, d *Declaration, f *FieldInfo) {
	value, ok := f.Tag.Lookup(a.cfg.Tag)
	if !ok {
		return
	}

	dir, err := ParseFieldTag(value)
	if err != nil {
		g.Diagnostics.AddErrorAt(f.Pos, diagnostic.CodeBadDirective, err.Error(), d.Label(), f.Name)
	}

	f.Directive = dir
}

func (a *Analyzer) hasFieldDirectives(obj *types.TypeName) bool {
	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return false
	}

	for i := range st.NumFields() {
		if _, ok := reflect.StructTag(st.Tag(i)).Lookup(a.cfg.Tag); ok {
			return true
		}
	}

	return false
}
