package analyzer

import (
	"strconv"
	"strings"
)

// pathTable holds the states recorded along one control-flow path. The
// insertion order of names is kept so that scope finalization and path
// joins emit issues in visit order.
type pathTable struct {
	states map[string]*State
	order  []string
}

func newPathTable() *pathTable {
	return &pathTable{states: make(map[string]*State)}
}

func (t *pathTable) get(name string) (*State, bool) {
	st, ok := t.states[name]
	return st, ok
}

func (t *pathTable) set(name string, st *State) {
	if _, seen := t.states[name]; !seen {
		t.order = append(t.order, name)
	}
	t.states[name] = st
}

// scopeFind is the result of resolving a bare name against the scope and
// path chains.
type scopeFind struct {
	exists     bool
	inScope    bool
	scopedName string
	state      *State
}

func joinScope(chain []int) string {
	parts := make([]string, len(chain))
	for i, id := range chain {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "/")
}

// fullyScopedName qualifies a bare name with the current scope chain,
// innermost scope first. This string is the name's identity in the
// tables.
func (a *Analyzer) fullyScopedName(name string) string {
	return joinScope(a.scopeChain) + "/" + name
}

// currentPath returns the live path table (the top of the path chain).
func (a *Analyzer) currentPath() *pathTable {
	return a.nameMap[a.pathChain[0]]
}

// findInScope walks outward from the innermost scope: each suffix of the
// scope chain is tried against each path in the path chain, innermost
// first. Only a hit on the full chain counts as in scope.
func (a *Analyzer) findInScope(name string) scopeFind {
	for i := range a.scopeChain {
		prefix := joinScope(a.scopeChain[i:])
		scopedName := prefix + "/" + name
		for _, pathID := range a.pathChain {
			if st, ok := a.nameMap[pathID].get(scopedName); ok {
				return scopeFind{
					exists:     true,
					inScope:    i == 0,
					scopedName: scopedName,
					state:      st,
				}
			}
		}
	}
	return scopeFind{}
}

// findOutOfScope scans every path for a binding whose bare name matches,
// regardless of scope. Used to tell an out-of-scope read apart from a
// truly undefined one.
func (a *Analyzer) findOutOfScope(name string) *State {
	for _, table := range a.nameMap {
		for _, fullName := range table.order {
			if baseName(fullName) == name {
				return table.states[fullName]
			}
		}
	}
	return nil
}

// sameScope reports whether a fully-scoped name was defined exactly in
// the given scope chain (no outer or inner scope).
func sameScope(fullName string, scopeChain []int) bool {
	idx := strings.LastIndex(fullName, "/")
	if idx < 0 {
		return false
	}
	return fullName[:idx] == joinScope(scopeChain)
}

// baseName strips the scope prefix from a fully-scoped name.
func baseName(fullName string) string {
	idx := strings.LastIndex(fullName, "/")
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}

// pushPath opens a fresh control-flow path with an empty table and makes
// it the live path.
func (a *Analyzer) pushPath() int {
	a.pathID++
	id := a.pathID
	a.nameMap[id] = newPathTable()
	a.pathChain = append([]int{id}, a.pathChain...)
	return id
}

func (a *Analyzer) popPath() {
	a.pathChain = a.pathChain[1:]
}
