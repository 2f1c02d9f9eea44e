package gen

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"go/format"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/common"
	"bridge-generator/internal/logging"
	"bridge-generator/internal/plan"
)

// Header is the first line of every generated file.
const Header = "// Code generated by bridge-generator. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file generated into each package.
	Filename string
	// BuildTag excludes generated files while the generator loads packages.
	BuildTag string
	// Comments enables doc comments on generated declarations.
	Comments bool
	// PairVars enables the <Name>Bridge pair values.
	PairVars bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename: "bridge_gen.go",
		BuildTag: analyze.DefaultBuildTag,
		Comments: true,
		PairVars: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()
	if config.Filename == "" {
		config.Filename = def.Filename
	}

	if config.BuildTag == "" {
		config.BuildTag = def.BuildTag
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "bridge_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
	// Remove marks a stale generated file of a package without declarations.
	Remove bool
}

// Path returns the location of the file.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders one file per package of the plan. Packages that no longer
// hold declarations but still carry a generated file get a removal entry.
func (g *Generator) Generate(ctx context.Context, p *plan.Plan) ([]GeneratedFile, error) {
	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("plan has errors: %w", p.Diagnostics.Error())
	}

	var files []GeneratedFile

	done := make(map[string]bool)

	for _, pp := range p.Packages() {
		done[pp.Package.Path] = true

		start := time.Now()

		file, err := g.generatePackage(ctx, p.Graph, pp)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pp.Package.Path, err)
		}

		logging.Logger().Debug("generated package",
			zap.String("package", pp.Package.Path),
			zap.Int("pairs", len(pp.Pairs)),
			zap.Duration("elapsed", time.Since(start)))

		files = append(files, *file)
	}

	if p.Graph != nil {
		for _, pkg := range p.Graph.Roots {
			if done[pkg.Path] || pkg.PairOnly() {
				continue
			}

			if stale := g.staleFile(pkg); stale != nil {
				files = append(files, *stale)
			}
		}
	}

	return files, nil
}

// staleFile returns a removal entry when pkg still has a file written by us.
func (g *Generator) staleFile(pkg *analyze.PackageInfo) *GeneratedFile {
	if pkg.Dir == "" {
		return nil
	}

	f := GeneratedFile{Dir: pkg.Dir, Filename: g.config.Filename, Remove: true}
	if !hasHeader(f.Path()) {
		return nil
	}

	return &f
}

// hasHeader reports whether the file at path starts with Header.
func hasHeader(path string) bool {
	fh, err := os.Open(path)
	if err != nil {
		return false
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)

	return sc.Scan() && strings.TrimSpace(sc.Text()) == Header
}

// generatePackage renders the file of one package. Imports are collected
// first, then each pair is rendered concurrently against the finished set.
func (g *Generator) generatePackage(ctx context.Context, graph *analyze.TypeGraph, pp *plan.PackagePlan) (*GeneratedFile, error) {
	self := pp.Pairs[0].Native.Obj().Pkg()

	imports, err := g.collectImports(graph, self, pp.Pairs)
	if err != nil {
		return nil, err
	}

	r := &renderer{imports: imports}
	bodies := make([]string, len(pp.Pairs))

	eg, ctx := errgroup.WithContext(ctx)
	for i, pair := range pp.Pairs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			body, err := g.renderPair(r, pair)
			if err != nil {
				return fmt.Errorf("%s: %w", pair.Decl.Label(), err)
			}

			bodies[i] = body

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	data := fileData{
		Header:   Header,
		BuildTag: g.config.BuildTag,
		Package:  self.Name(),
		Imports:  imports.specs(),
		Bodies:   bodies,
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{Dir: pp.Package.Dir, Filename: g.config.Filename}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort sidecar to aid debugging.
		_ = writeDebugUnformatted(file.Dir, file.Filename, buf.Bytes())
		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	logging.Logger().Debug("collected imports",
		zap.String("package", self.Path()),
		zap.Strings("imports", imports.paths()))

	file.Content = formatted

	return file, nil
}

// collectImports builds the import set of a file. Override imports come
// first since their names are fixed by the expressions.
func (g *Generator) collectImports(graph *analyze.TypeGraph, self *types.Package, pairs []*plan.ResolvedPair) (*importSet, error) {
	s := newImportSet(self)

	if err := s.require(common.PkgAlias(plan.BridgePkgPath), plan.BridgePkgPath, common.PkgAlias(plan.BridgePkgPath)); err != nil {
		return nil, err
	}

	pkgName := func(path string) string {
		if graph == nil {
			return ""
		}

		if pkg := graph.Package(path); pkg != nil {
			return pkg.Name()
		}

		return ""
	}

	for _, pair := range pairs {
		for _, d := range directions {
			for _, fc := range pair.Fields(d) {
				if err := s.addOverrideImports(fc.Conv, pkgName); err != nil {
					return nil, fmt.Errorf("%s.%s: %w", pair.Decl.Label(), fc.Field, err)
				}
			}
		}
	}

	for _, pair := range pairs {
		s.addType(pair.Bridge)

		for _, d := range directions {
			for _, fc := range pair.Fields(d) {
				s.addConversion(fc.Conv)
			}
		}
	}

	return s, nil
}

var directions = []plan.Direction{plan.DirectionToBridge, plan.DirectionFromBridge}

// renderPair renders both conversion functions of a pair and its pair value.
func (g *Generator) renderPair(r *renderer, pair *plan.ResolvedPair) (string, error) {
	data := pairData{
		Comments: g.config.Comments,
		Context:  r.bridge("Context"),
	}

	for _, d := range directions {
		data.Funcs = append(data.Funcs, r.funcData(pair, d))
	}

	if g.config.PairVars {
		data.Var = &pairVar{
			Name: pair.Name() + plan.PairVarSuffix,
			Type: fmt.Sprintf("%s[%s, %s]", r.bridge("Pair"), r.typ(pair.Native), r.typ(pair.Bridge)),
			To:   pair.FuncName(plan.DirectionToBridge),
			From: pair.FuncName(plan.DirectionFromBridge),
		}
	}

	var buf bytes.Buffer
	if err := pairTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

func (r *renderer) funcData(pair *plan.ResolvedPair, d plan.Direction) funcData {
	src, dst := pair.Source(d), pair.Target(d)
	f := funcData{
		Name:     pair.FuncName(d),
		Source:   r.typ(src),
		Target:   r.typ(dst),
		Fallible: pair.Fallible(d),
	}

	if pair.Shape == analyze.ShapeWrapper {
		f.Wrap = r.conversionType(dst) + "(in)"

		return f
	}

	zero := f.Target + "{}"
	for _, fc := range pair.Fields(d) {
		f.Lines = append(f.Lines, r.fieldLine(fc, zero))
	}

	return f
}

type fileData struct {
	Header   string
	BuildTag string
	Package  string
	Imports  []importSpec
	Bodies   []string
}

type pairData struct {
	Comments bool
	Context  string
	Funcs    []funcData
	Var      *pairVar
}

type funcData struct {
	Name     string
	Source   string
	Target   string
	Fallible bool
	Wrap     string // non-empty for wrapper shapes
	Lines    []string
}

type pairVar struct {
	Name string
	Type string
	To   string
	From string
}

var fileTemplate = template.Must(template.New("file").Parse(`{{.Header}}

//go:build !{{.BuildTag}}

package {{.Package}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range .Bodies}}
{{.}}{{end}}`))

var pairTemplate = template.Must(template.New("pair").Parse(`{{range .Funcs}}{{if $.Comments}}// {{.Name}} converts {{.Source}} to {{.Target}}.
{{end}}func {{.Name}}(ctx *{{$.Context}}, in {{.Source}}) ({{.Target}}, error) {
{{if .Wrap}}	return {{.Wrap}}, nil
{{else}}	var out {{.Target}}
{{if .Fallible}}	var err error
{{end}}
{{range .Lines}}	{{.}}
{{end}}
	return out, nil
{{end}}}

{{end}}{{with .Var}}{{if $.Comments}}// {{.Name}} bundles {{.To}} and {{.From}}.
{{end}}var {{.Name}} = {{.Type}}{
	ToBridge:   {{.To}},
	FromBridge: {{.From}},
}
{{end}}`))
