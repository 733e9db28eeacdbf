package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jingwhale/blockpy/internal/analyzer"
)

func TestConvertReport(t *testing.T) {
	report := analyzer.NewAnalyzer().AnalyzeSource("test.py", "print(y)")
	diagnostics := ConvertReport(report)

	require.Len(t, diagnostics, 1)
	diag := diagnostics[0]

	assert.Equal(t, "variable 'y' is used before it is set", diag.Message)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diag.Severity)
	assert.Equal(t, "blockpy-analyzer", *diag.Source)

	// LSP positions are zero-based; print(y) is on line 1, y in column 7.
	assert.Equal(t, uint32(0), diag.Range.Start.Line)
	assert.Equal(t, uint32(6), diag.Range.Start.Character)
	assert.Equal(t, uint32(7), diag.Range.End.Character)
}

func TestConvertParserFailure(t *testing.T) {
	report := analyzer.NewAnalyzer().AnalyzeSource("test.py", "x = (")
	diagnostics := ConvertReport(report)

	require.NotEmpty(t, diagnostics)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)
}

func TestConvertNilReport(t *testing.T) {
	assert.Empty(t, ConvertReport(nil))
}

func TestCleanReportHasNoDiagnostics(t *testing.T) {
	report := analyzer.NewAnalyzer().AnalyzeSource("test.py", "x = 5\nprint(x)")
	assert.Empty(t, ConvertReport(report))
}
