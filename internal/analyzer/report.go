package analyzer

import (
	"strings"

	"github.com/jingwhale/blockpy/internal/issue"
)

// Report is the complete result of one analysis: the accumulated issues
// plus the final per-variable state tables.
type Report struct {
	Success bool
	Error   error
	Issues  map[issue.Kind][]issue.Data

	// Variables maps every PathId to its fully-scoped name table.
	Variables map[int]map[string]*State

	// TopLevelVariables exposes the module-scope bindings by bare name.
	TopLevelVariables map[string]*State
}

// newReport pre-seeds the issue table with every kind so consumers can
// index without checking for missing keys.
func newReport() *Report {
	issues := make(map[issue.Kind][]issue.Data, len(issue.AllKinds()))
	for _, k := range issue.AllKinds() {
		issues[k] = []issue.Data{}
	}
	return &Report{
		Issues:            issues,
		Variables:         make(map[int]map[string]*State),
		TopLevelVariables: make(map[string]*State),
	}
}

// HasIssues reports whether any diagnostic was raised.
func (r *Report) HasIssues() bool {
	for _, list := range r.Issues {
		if len(list) > 0 {
			return true
		}
	}
	return false
}

// IssueCount returns the total number of raised issues.
func (r *Report) IssueCount() int {
	total := 0
	for _, list := range r.Issues {
		total += len(list)
	}
	return total
}

func (a *Analyzer) reportIssue(kind issue.Kind, data issue.Data) {
	if !a.cfg.Enabled(string(kind)) {
		return
	}
	a.report.Issues[kind] = append(a.report.Issues[kind], data)
}

// finalizeReport copies the path tables into the report and projects the
// module-scope subset out by bare name.
func (a *Analyzer) finalizeReport() {
	for pathID, table := range a.nameMap {
		snapshot := make(map[string]*State, len(table.states))
		for name, st := range table.states {
			snapshot[name] = st
		}
		a.report.Variables[pathID] = snapshot
	}

	modulePrefix := joinScope([]int{moduleScope}) + "/"
	if moduleTable, ok := a.nameMap[modulePath]; ok {
		for _, fullName := range moduleTable.order {
			if !strings.HasPrefix(fullName, modulePrefix) {
				continue
			}
			rest := fullName[len(modulePrefix):]
			if rest == "" || strings.Contains(rest, "/") || strings.HasPrefix(rest, "*") {
				continue
			}
			a.report.TopLevelVariables[rest] = moduleTable.states[fullName]
		}
	}
}
