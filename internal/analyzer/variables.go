package analyzer

import (
	"strings"

	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/issue"
)

// storeVariable records a write of name with the given type. First writes
// insert a fresh state; later writes derive a successor and run the
// overwrite, out-of-scope, and type-change checks.
func (a *Analyzer) storeVariable(name string, t *Type, pos ast.Position) *State {
	if t == nil {
		t = UnknownType()
	}

	found := a.findInScope(name)
	if !found.exists {
		if _, isBuiltin := a.builtins[name]; isBuiltin {
			a.reportIssue(issue.AliasedBuiltin, issue.Data{Name: name, Position: pos})
		}
		st := &State{
			Name:   name,
			Type:   t,
			Set:    TriYes,
			Read:   TriNo,
			Over:   TriNo,
			Method: "store",
		}
		a.currentPath().set(a.fullyScopedName(name), st)
		return st
	}

	st := traceState(found.state, "store")
	if !found.inScope {
		a.reportIssue(issue.WriteOutOfScope, issue.Data{Name: name, Position: pos})
	}
	if t.Kind != KindUnknown && found.state.Type != nil &&
		found.state.Type.Kind != KindUnknown && !areTypesEqual(t, found.state.Type) {
		a.reportIssue(issue.TypeChanges, issue.Data{
			Name:     name,
			Position: pos,
			Old:      typeName(found.state.Type),
			New:      typeName(t),
		})
	}
	st.Type = t
	if found.state.Set == TriYes && found.state.Read == TriNo {
		st.Over = TriYes
	} else {
		st.Set = TriYes
		st.Read = TriNo
	}
	a.currentPath().set(a.fullyScopedName(name), st)
	return st
}

// storeIterVariable stores a loop variable and immediately marks it read,
// so a loop whose variable is genuinely unused is caught by the dedicated
// iteration check instead of the generic unread one.
func (a *Analyzer) storeIterVariable(name string, t *Type, pos ast.Position) *State {
	st := traceState(a.storeVariable(name, t, pos), "store_iter")
	st.Read = TriYes
	a.currentPath().set(a.fullyScopedName(name), st)
	return st
}

// loadVariable records a read of name. Unknown names insert an Unknown
// placeholder so downstream rules keep firing.
func (a *Analyzer) loadVariable(name string, pos ast.Position) *State {
	found := a.findInScope(name)
	if !found.exists {
		if a.findOutOfScope(name) != nil {
			a.reportIssue(issue.ReadOutOfScope, issue.Data{Name: name, Position: pos})
		} else {
			a.reportIssue(issue.UndefinedVariables, issue.Data{Name: name, Position: pos})
		}
		st := &State{
			Name:   name,
			Type:   UnknownType(),
			Set:    TriNo,
			Read:   TriYes,
			Over:   TriNo,
			Method: "load",
		}
		a.currentPath().set(a.fullyScopedName(name), st)
		return st
	}

	st := traceState(found.state, "load")
	switch found.state.Set {
	case TriNo:
		a.reportIssue(issue.UndefinedVariables, issue.Data{Name: name, Position: pos})
	case TriMaybe:
		a.reportIssue(issue.PossiblyUndefined, issue.Data{Name: name, Position: pos})
	}
	st.Read = TriYes

	// A function looked up from an enclosing scope stays under its own
	// scoped name, so calls never fork a local shadow of the function.
	if !found.inScope && found.state.Type != nil && found.state.Type.Kind == KindFunction {
		a.currentPath().set(found.scopedName, st)
	} else {
		a.currentPath().set(a.fullyScopedName(name), st)
	}
	return st
}

// appendStore refines the recorded type of name in place after a
// container-mutating method call, without touching the set/read axes.
func (a *Analyzer) appendStore(name string, t *Type, pos ast.Position) {
	found := a.findInScope(name)
	if !found.exists {
		return
	}
	st := traceState(found.state, "append")
	st.Type = t
	a.currentPath().set(found.scopedName, st)
}

// finishScope runs on every scope exit: each name defined exactly in the
// closing scope is checked for unread and overwritten values. Synthetic
// names (the *return slot) are exempt from both checks; functions are
// exempt from the unread check only.
func (a *Analyzer) finishScope() {
	table := a.currentPath()
	for _, fullName := range table.order {
		if !sameScope(fullName, a.scopeChain) {
			continue
		}
		name := baseName(fullName)
		if strings.HasPrefix(name, "*") {
			continue
		}
		st := table.states[fullName]
		if st.Over == TriYes {
			a.reportIssue(issue.OverwrittenVariables, issue.Data{
				Name:  name,
				Scope: joinScope(a.scopeChain),
			})
		}
		if st.Read == TriNo && (st.Type == nil || st.Type.Kind != KindFunction) {
			a.reportIssue(issue.UnreadVariables, issue.Data{
				Name:  name,
				Scope: joinScope(a.scopeChain),
				Type:  typeName(st.Type),
			})
		}
	}
}
