package diagnostic

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Severity:    DiagnosticError,
		Code:        CodeUnknownField,
		Message:     "bridge type has no field Sise",
		TypePair:    "geometry.Shape<->pygeom.PyShape",
		FieldPath:   "Sise",
		Pos:         token.Position{Filename: "shape.go", Line: 12, Column: 2},
		Suggestions: []string{"Size"},
	}

	assert.Equal(t,
		"shape.go:12:2: [geometry.Shape<->pygeom.PyShape] Sise: [unknown-field] bridge type has no field Sise (did you mean Size?)",
		d.String())
}

func TestDiagnostics_ErrorAndCodes(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Error())

	d.AddWarning("note", "just a warning", "", "")
	assert.True(t, d.IsValid())

	d.AddError(CodeMissingPair, "must specify a target type", "geometry.Point", "")
	d.AddErrorAt(token.Position{}, CodeUnsupportedShape, "unsupported declaration shape", "geometry.Empty", "")

	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{CodeMissingPair, CodeUnsupportedShape}, d.Codes())
	assert.Len(t, d.All(), 3)
	assert.EqualError(t, d.Error(),
		"[geometry.Point]: [missing-pair] must specify a target type; [geometry.Empty]: [unsupported-shape] unsupported declaration shape")
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo("i", "info", "", "")
	b.Add(Diagnostic{Severity: DiagnosticError, Code: "e"})
	b.Add(Diagnostic{Severity: DiagnosticWarning, Code: "w"})

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}
