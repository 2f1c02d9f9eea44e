// Package bridgeanalysis reports bridge declaration mistakes as analysis
// diagnostics, so they show up in editors and go vet -vettool runs.
package bridgeanalysis

import (
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/plan"
)

// Analyzer validates the bridge declarations of the package.
var Analyzer = &analysis.Analyzer{
	Name: "bridge",
	Doc:  "linter for bridge declarations and field directives",
	Run:  run,
}

var (
	directive = analyze.DefaultDirective
	tag       = analyze.DefaultTag
)

func init() {
	Analyzer.Flags.StringVar(&directive, "directive", directive, "comment directive declaring a pair")
	Analyzer.Flags.StringVar(&tag, "tag", tag, "struct tag key holding field directives")
}

func run(pass *analysis.Pass) (any, error) {
	a := analyze.NewAnalyzer(analyze.Config{Directive: directive, Tag: tag})
	graph := a.LoadPackage(pass.Fset, pass.Pkg, pass.TypesInfo, pass.Files)

	if graph.Len() == 0 && graph.Diagnostics.IsValid() {
		return nil, nil
	}

	p := plan.NewResolver(graph, plan.DefaultConfig()).Resolve()

	for _, d := range p.Diagnostics.Errors {
		report(pass, d)
	}

	for _, d := range p.Diagnostics.Warnings {
		report(pass, d)
	}

	return nil, nil
}

func report(pass *analysis.Pass, d diagnostic.Diagnostic) {
	pos, ok := tokenPos(pass, d.Pos)

	msg := "[" + d.Code + "] " + d.Message
	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if !ok {
		if len(pass.Files) == 0 {
			return
		}

		pos = pass.Files[0].Package

		if d.Pos.IsValid() {
			msg = d.Pos.String() + ": " + msg
		}
	}

	pass.Report(analysis.Diagnostic{Pos: pos, Category: d.Code, Message: msg})
}

// tokenPos maps a position back into the files of the pass.
func tokenPos(pass *analysis.Pass, p token.Position) (token.Pos, bool) {
	if !p.IsValid() {
		return token.NoPos, false
	}

	for _, f := range pass.Files {
		tf := pass.Fset.File(f.FileStart)
		if tf == nil || tf.Name() != p.Filename || p.Line > tf.LineCount() {
			continue
		}

		col := max(p.Column, 1)

		return tf.LineStart(p.Line) + token.Pos(col-1), true
	}

	return token.NoPos, false
}
