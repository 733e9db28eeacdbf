package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jingwhale/blockpy/internal/analyzer"
	"github.com/jingwhale/blockpy/internal/issue"
)

// ConvertReport transforms an analysis report into LSP diagnostics.
// Parser failures surface as errors; pedagogic findings surface as
// warnings so students can still run their program.
func ConvertReport(report *analyzer.Report) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if report == nil {
		return diagnostics
	}

	for _, kind := range issue.AllKinds() {
		for _, data := range report.Issues[kind] {
			diagnostics = append(diagnostics, convertIssue(kind, data))
		}
	}
	return diagnostics
}

func convertIssue(kind issue.Kind, data issue.Data) protocol.Diagnostic {
	line := data.Position.Line
	if line < 1 {
		line = 1
	}
	column := data.Position.Column
	if column < 1 {
		column = 1
	}

	span := uint32(len(data.Name))
	if span == 0 {
		span = 1
	}

	severity := protocol.DiagnosticSeverityWarning
	if issue.IsError(kind) {
		severity = protocol.DiagnosticSeverityError
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(line - 1), // Convert to 0-based indexing
				Character: uint32(column - 1),
			},
			End: protocol.Position{
				Line:      uint32(line - 1),
				Character: uint32(column-1) + span,
			},
		},
		Severity: ptrSeverity(severity),
		Source:   ptrString("blockpy-analyzer"),
		Code:     &protocol.IntegerOrString{Value: string(kind)},
		Message:  issue.Message(kind, data),
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
