package analyzer

import (
	"fmt"

	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/config"
	"github.com/jingwhale/blockpy/internal/issue"
)

const (
	// moduleScope is the ScopeId of the source unit itself.
	moduleScope = 0
	// modulePath is the PathId of the outermost control-flow path.
	modulePath = 0

	// maxCallDepth bounds call-site inlining so self-recursive student
	// code cannot run the analyzer into the ground.
	maxCallDepth = 32
)

// Analyzer is a single-threaded abstract interpreter over one source unit
// at a time. All of its state belongs to one analysis and resets when the
// next one starts.
type Analyzer struct {
	cfg *config.Config

	scopeChain []int // innermost scope first
	pathChain  []int // innermost path first
	nameMap    map[int]*pathTable
	builtins   map[string]*Type
	report     *Report

	pathID    int
	scopeID   int
	astID     int
	callDepth int
}

func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.Default())
}

func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Analyzer{
		cfg:      cfg,
		builtins: defaultBuiltins(),
	}
}

// Analyze walks one module and produces its report. Diagnostics
// accumulate and never abort the walk; an internal failure is caught here
// so callers always receive a complete report value.
func (a *Analyzer) Analyze(module *ast.Module) (report *Report) {
	a.reset()
	report = a.report

	defer func() {
		if r := recover(); r != nil {
			report = newReport()
			report.Success = false
			report.Error = fmt.Errorf("analyzer failure: %v", r)
		}
	}()

	if module == nil {
		report.Success = false
		report.Error = fmt.Errorf("analyzer: nil module")
		return report
	}

	a.visitStmts(module.Body)
	a.finishScope()
	a.finalizeReport()
	report.Success = true
	return report
}

// reset prepares fresh per-analysis state: module scope 0, module path 0,
// zeroed counters.
func (a *Analyzer) reset() {
	a.scopeChain = []int{moduleScope}
	a.pathChain = []int{modulePath}
	a.nameMap = map[int]*pathTable{modulePath: newPathTable()}
	a.report = newReport()
	a.pathID = 0
	a.scopeID = 0
	a.astID = 0
	a.callDepth = 0
}

func (a *Analyzer) visitStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		a.visitStmt(stmt)
	}
}

// visitBody checks a required block for emptiness and redundant pass
// statements before walking it.
func (a *Analyzer) visitBody(body []ast.Stmt, pos ast.Position) {
	if len(body) == 0 {
		a.reportIssue(issue.EmptyBody, issue.Data{Position: pos})
		return
	}
	if len(body) > 1 {
		for _, stmt := range body {
			if pass, ok := stmt.(*ast.Pass); ok {
				a.reportIssue(issue.UnnecessaryPass, issue.Data{Position: pass.Pos})
			}
		}
	}
	a.visitStmts(body)
}

func (a *Analyzer) visitStmt(stmt ast.Stmt) {
	a.astID++
	a.checkAfterReturn(stmt.NodePos())

	switch node := stmt.(type) {
	case *ast.Assign:
		a.visitAssign(node)
	case *ast.ExprStmt:
		a.visitExpr(node.Value)
	case *ast.Return:
		a.visitReturn(node)
	case *ast.Pass:
		// No flow effect on its own; visitBody flags redundant ones.
	case *ast.If:
		a.visitIf(node)
	case *ast.While:
		a.visitWhile(node)
	case *ast.For:
		a.visitFor(node)
	case *ast.FunctionDef:
		a.visitFunctionDef(node)
	case *ast.With:
		a.visitWith(node)
	}
}

// checkAfterReturn raises once per statement that executes after the
// enclosing function has already returned on this path.
func (a *Analyzer) checkAfterReturn(pos ast.Position) {
	if len(a.scopeChain) <= 1 {
		return
	}
	found := a.findInScope(returnName)
	if found.exists && found.inScope && found.state.Set == TriYes {
		a.reportIssue(issue.ActionAfterReturn, issue.Data{Position: pos})
	}
}

func (a *Analyzer) visitAssign(node *ast.Assign) {
	valueType := a.visitExpr(node.Value)
	for _, target := range node.Targets {
		a.walkTarget(target, valueType, false)
	}
}

// walkTarget destructures an assignment target against the value type.
// Names store; nested tuple and list patterns recurse element-wise with
// the indexed element type; anything else (attribute or subscript
// targets) is evaluated as an ordinary expression.
func (a *Analyzer) walkTarget(target ast.Expr, t *Type, iter bool) {
	switch node := target.(type) {
	case *ast.Name:
		if node.Id == unconnectedName {
			a.reportIssue(issue.UnconnectedBlocks, issue.Data{Position: node.Pos})
			return
		}
		if iter {
			a.storeIterVariable(node.Id, t, node.Pos)
		} else {
			a.storeVariable(node.Id, t, node.Pos)
		}
	case *ast.Tuple:
		for i, elt := range node.Elts {
			a.walkTarget(elt, indexSequenceType(t, i), iter)
		}
	case *ast.List:
		for i, elt := range node.Elts {
			a.walkTarget(elt, indexSequenceType(t, i), iter)
		}
	default:
		a.visitExpr(target)
	}
}

func (a *Analyzer) visitReturn(node *ast.Return) {
	if len(a.scopeChain) == 1 {
		a.reportIssue(issue.ReturnOutsideFunction, issue.Data{Position: node.Pos})
	}
	valueType := NoneType()
	if node.Value != nil {
		valueType = a.visitExpr(node.Value)
	}
	a.storeVariable(returnName, valueType, node.Pos)
}

// visitIf forks one fresh path per branch and joins both back into the
// parent on exit.
func (a *Analyzer) visitIf(node *ast.If) {
	a.visitExpr(node.Test)

	bodyPath := a.pushPath()
	a.visitBody(node.Body, node.Pos)
	a.popPath()

	elsePath := a.pushPath()
	a.visitStmts(node.Orelse)
	a.popPath()

	a.mergePaths(bodyPath, elsePath, node.Pos)
}

// visitWhile treats the loop as a single branch fork, then revisits the
// test once to model the reads of one extra iteration. No fixed point is
// computed. Every name the body stores or loads is present on the body
// side only (unless the else clause touches it too), so its set/read/over
// axes surface as maybe after the join; this includes names defined
// before the loop and only read inside it.
func (a *Analyzer) visitWhile(node *ast.While) {
	a.visitExpr(node.Test)

	bodyPath := a.pushPath()
	a.visitBody(node.Body, node.Pos)
	a.popPath()

	elsePath := a.pushPath()
	a.visitStmts(node.Orelse)
	a.popPath()

	a.mergePaths(bodyPath, elsePath, node.Pos)
	a.visitExpr(node.Test)
}

// mergePaths joins two closed branch paths into the live parent path. The
// union of touched names is walked in visit order, left branch first.
func (a *Analyzer) mergePaths(leftID, rightID int, pos ast.Position) {
	left := a.nameMap[leftID]
	right := a.nameMap[rightID]
	parent := a.currentPath()

	for _, name := range left.order {
		leftState := left.states[name]
		rightState := right.states[name]
		parent.set(name, a.combineStates(leftState, rightState, pos))
	}
	for _, name := range right.order {
		if _, seen := left.get(name); seen {
			continue
		}
		parent.set(name, a.combineStates(nil, right.states[name], pos))
	}
}

func (a *Analyzer) visitFor(node *ast.For) {
	iterType, iterName := a.visitIterSource(node.Iter)

	elementType := indexSequenceType(iterType, 0)
	a.walkTarget(node.Target, elementType, true)

	targetName := ""
	if name, ok := node.Target.(*ast.Name); ok {
		targetName = name.Id
	}
	if targetName != "" && targetName == iterName {
		a.reportIssue(issue.IterVariableIsList, issue.Data{
			Name:     targetName,
			Position: node.Target.NodePos(),
		})
	}

	targetBefore := a.stateOf(targetName)
	iterBefore := a.stateOf(iterName)

	a.visitBody(node.Body, node.Pos)
	a.visitStmts(node.Orelse)

	if targetName != "" && !a.touchedSince(targetName, targetBefore, "load") {
		a.reportIssue(issue.UnusedIterationVar, issue.Data{
			Name:     targetName,
			Position: node.Target.NodePos(),
		})
	}
	if iterName != "" && iterName != targetName && a.touchedSince(iterName, iterBefore, "store") {
		a.reportIssue(issue.UsedIterationList, issue.Data{
			Name:     iterName,
			Position: node.Iter.NodePos(),
		})
	}
}

// visitIterSource resolves the source of an iteration. A bare name is
// loaded (iteration counts as a read); the placeholder name raises
// instead. Emptiness and sequence checks are skipped for Unknown so a
// failed inference does not cascade.
func (a *Analyzer) visitIterSource(iter ast.Expr) (*Type, string) {
	iterType := UnknownType()
	iterName := ""

	if name, ok := iter.(*ast.Name); ok {
		iterName = name.Id
		if iterName == unconnectedName {
			a.reportIssue(issue.UnconnectedBlocks, issue.Data{Position: name.Pos})
			return iterType, ""
		}
		iterType = a.loadVariable(iterName, name.Pos).Type
	} else {
		iterType = a.visitExpr(iter)
	}

	if isEmptyList(iterType) {
		a.reportIssue(issue.EmptyIterations, issue.Data{Name: iterName, Position: iter.NodePos()})
	} else if iterType.Kind != KindUnknown && !isSequenceType(iterType) {
		a.reportIssue(issue.NonListIterations, issue.Data{
			Name:     iterName,
			Type:     typeName(iterType),
			Position: iter.NodePos(),
		})
	}
	return iterType, iterName
}

// stateOf snapshots the currently visible state of a bare name, if any.
func (a *Analyzer) stateOf(name string) *State {
	if name == "" {
		return nil
	}
	found := a.findInScope(name)
	return found.state
}

// touchedSince walks the trace of name back to the given snapshot and
// reports whether any link in between was produced by method.
func (a *Analyzer) touchedSince(name string, since *State, method string) bool {
	found := a.findInScope(name)
	if !found.exists {
		return false
	}
	for cur := found.state; cur != nil && cur != since; cur = cur.Prev {
		if cur.Method == method {
			return true
		}
	}
	return false
}

func (a *Analyzer) visitWith(node *ast.With) {
	contextType := a.visitExpr(node.ContextExpr)
	if node.OptionalVars != nil {
		a.walkTarget(node.OptionalVars, contextType, false)
	}
	a.visitBody(node.Body, node.Pos)
}
