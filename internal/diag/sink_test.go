package diag_test

import (
	"bytes"
	"testing"

	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/lexer"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeTaxonomy(t *testing.T) {
	tests := []struct {
		code  string
		phase string
	}{
		{diag.PP002, "preprocessor"},
		{diag.LEX001, "lexer"},
		{diag.PAR001, "parser"},
		{diag.MOD002, "module"},
		{diag.SCP001, "scope"},
		{diag.TC001, "typecheck"},
		{diag.MONO001, "monomorphize"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.phase, diag.Phase(tt.code), tt.code)
	}
}

func TestUnknownCodeHasUnknownPhase(t *testing.T) {
	require.Equal(t, "unknown", diag.Phase("NOPE999"))
}

func TestSinkHasErrorsOnlyOnErrorLevel(t *testing.T) {
	s := diag.NewSink()
	require.False(t, s.HasErrors())

	s.Warnf(diag.TC001, "main.mach", lexer.Token{}, "looks suspicious")
	require.False(t, s.HasErrors())

	s.Errorf(diag.TC001, "main.mach", lexer.Token{}, "type mismatch")
	require.True(t, s.HasErrors())
}

func TestSinkPreservesInsertionOrder(t *testing.T) {
	s := diag.NewSink()
	s.Errorf(diag.PAR001, "a.mach", lexer.Token{}, "first")
	s.Errorf(diag.PAR001, "a.mach", lexer.Token{}, "second")

	recs := s.Records()
	require.Len(t, recs, 2)
	require.Equal(t, "first", recs[0].Message)
	require.Equal(t, "second", recs[1].Message)
}

func TestRenderPrintsCaretUnderColumn(t *testing.T) {
	src := []byte("val x = y;\n")
	tok := lexer.Token{Offset: 8, Length: 1, File: "main.mach"}

	s := diag.NewSink()
	s.Add(diag.Diagnostic{Level: diag.LevelError, Code: diag.SCP002, File: "main.mach", Tok: tok, Message: "unknown identifier y"})

	var buf bytes.Buffer
	diag.Render(&buf, s.Records(), map[string][]byte{"main.mach": src})

	out := buf.String()
	require.Contains(t, out, "unknown identifier y")
	require.Contains(t, out, "val x = y;")
	require.Contains(t, out, "^")
}

func TestErrorReportJSONSchema(t *testing.T) {
	s := diag.NewSink()
	s.Errorf(diag.TC001, "main.mach", lexer.Token{}, "type mismatch")

	reports := s.ErrorReport(map[string][]byte{"main.mach": []byte("x")})
	require.Len(t, reports, 1)
	require.Equal(t, "mach.diagnostic/v1", reports[0].Schema)
	require.Equal(t, diag.TC001, reports[0].Code)

	out, err := diag.ToJSON(reports, true)
	require.NoError(t, err)
	require.Contains(t, out, "mach.diagnostic/v1")
}
