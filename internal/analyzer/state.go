package analyzer

import (
	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/issue"
)

// TriState is one axis of a variable's flow fact.
type TriState string

const (
	TriNo    TriState = "no"
	TriYes   TriState = "yes"
	TriMaybe TriState = "maybe"
)

// State is the per-name flow fact along one path. States are never
// mutated after insertion into a path table: every update allocates a
// successor whose Prev link preserves the full history.
type State struct {
	Name   string
	Type   *Type
	Set    TriState
	Read   TriState
	Over   TriState
	Method string // operation that produced this snapshot: store, load, ...
	Prev   *State
}

// traceState derives a successor with the same axes and type, linked back
// to its predecessor.
func traceState(s *State, method string) *State {
	return &State{
		Name:   s.Name,
		Type:   s.Type,
		Set:    s.Set,
		Read:   s.Read,
		Over:   s.Over,
		Method: method,
		Prev:   s,
	}
}

// Trace returns the predecessor snapshots, most recent first.
func (s *State) Trace() []*State {
	var trace []*State
	for cur := s.Prev; cur != nil; cur = cur.Prev {
		trace = append(trace, cur)
	}
	return trace
}

// demoteTri weakens an axis for a name seen on only one side of a join:
// what was certain on one branch is only possible overall.
func demoteTri(v TriState) TriState {
	if v == TriYes {
		return TriMaybe
	}
	return v
}

// demoteState joins a one-sided state into the parent path.
func demoteState(s *State) *State {
	next := traceState(s, "branch")
	next.Set = demoteTri(s.Set)
	next.Read = demoteTri(s.Read)
	next.Over = demoteTri(s.Over)
	return next
}

// joinTri keeps an axis that both branches agree on and weakens it to
// maybe otherwise.
func joinTri(left, right TriState) TriState {
	if left == right {
		return left
	}
	return TriMaybe
}

// combineStates joins the two sides of a branch for one name. A type
// disagreement between the branches is itself a diagnostic; axes join
// pointwise.
func (a *Analyzer) combineStates(left, right *State, pos ast.Position) *State {
	if right == nil {
		return demoteState(left)
	}
	if left == nil {
		return demoteState(right)
	}
	if left.Type != nil && right.Type != nil &&
		left.Type.Kind != KindUnknown && right.Type.Kind != KindUnknown &&
		!areTypesEqual(left.Type, right.Type) {
		a.reportIssue(issue.TypeChanges, issue.Data{
			Name:     baseName(left.Name),
			Position: pos,
			Old:      typeName(left.Type),
			New:      typeName(right.Type),
		})
	}
	next := traceState(left, "branch")
	next.Set = joinTri(left.Set, right.Set)
	next.Read = joinTri(left.Read, right.Read)
	next.Over = joinTri(left.Over, right.Over)
	return next
}
