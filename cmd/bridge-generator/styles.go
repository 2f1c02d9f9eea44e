package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"bridge-generator/internal/common"
	"bridge-generator/internal/diagnostic"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type styles struct {
	err, warn, info, pos, hint, ok lipgloss.Style
}

func newStyles(w io.Writer, mode string) *styles {
	r := lipgloss.NewRenderer(w)

	if useColor(w, mode) {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &styles{
		err:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		warn: r.NewStyle().Foreground(lipgloss.Color("#FFD166")),
		info: r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		pos:  r.NewStyle().Foreground(lipgloss.Color("#666666")),
		hint: r.NewStyle().Foreground(lipgloss.Color("#98FB98")).Italic(true),
		ok:   r.NewStyle().Foreground(lipgloss.Color("#90EE90")),
	}
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := stdFile(w)

	return ok && term.IsTerminal(int(f.Fd()))
}

// printDiagnostics writes errors, then warnings, then infos, one per line.
func printDiagnostics(w io.Writer, diags *diagnostic.Diagnostics, st *styles) {
	emit := func(list []diagnostic.Diagnostic, label string, style lipgloss.Style) {
		for _, d := range list {
			fmt.Fprintln(w, formatDiagnostic(d, label, style, st))
		}
	}

	emit(diags.Errors, "error", st.err)
	emit(diags.Warnings, "warning", st.warn)
	emit(diags.Infos, "info", st.info)
}

func formatDiagnostic(d diagnostic.Diagnostic, label string, style lipgloss.Style, st *styles) string {
	var line string

	if d.Pos.IsValid() {
		line = st.pos.Render(d.Pos.String()+":") + " "
	}

	line += style.Render(label+"["+d.Code+"]") + " "

	if d.TypePair != "" {
		line += d.TypePair

		if d.FieldPath != "" {
			line += "." + d.FieldPath
		}

		line += ": "
	}

	line += d.Message

	if len(d.Suggestions) > 0 {
		line += " " + st.hint.Render("(did you mean "+joinOr(d.Suggestions)+"?)")
	}

	return line
}

func joinOr(items []string) string {
	switch {
	case common.IsEmpty(items):
		return ""
	case common.IsSingle(items):
		return items[0]
	}

	out := items[0]
	for _, s := range items[1 : len(items)-1] {
		out += ", " + s
	}

	return out + " or " + items[len(items)-1]
}
