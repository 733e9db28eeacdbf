package analyzer

import (
	"fmt"

	"github.com/jingwhale/blockpy/internal/issue"
	"github.com/jingwhale/blockpy/internal/parser"
)

// AnalyzeSource is the convenience entry point that accepts source text
// and delegates parsing. A scan or parse failure yields a failed report
// whose only issues are parser failures; the analyzer proper never runs
// on a broken tree.
func (a *Analyzer) AnalyzeSource(filename, source string) *Report {
	module, parseErrors, scanErrors := parser.ParseSource(filename, source)
	if len(scanErrors) > 0 || len(parseErrors) > 0 {
		report := newReport()
		report.Success = false

		for _, scanErr := range scanErrors {
			report.Issues[issue.ParserFailure] = append(report.Issues[issue.ParserFailure],
				issue.Data{Name: scanErr.Message, Position: scanErr.Position})
		}
		for _, parseErr := range parseErrors {
			report.Issues[issue.ParserFailure] = append(report.Issues[issue.ParserFailure],
				issue.Data{Name: parseErr.Message, Position: parseErr.Position})
		}
		report.Error = fmt.Errorf("parsing %s failed with %d errors",
			filename, len(report.Issues[issue.ParserFailure]))
		return report
	}
	return a.Analyze(module)
}
