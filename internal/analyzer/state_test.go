package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingwhale/blockpy/internal/ast"
	"github.com/jingwhale/blockpy/internal/issue"
)

func TestTraceState(t *testing.T) {
	first := &State{Name: "x", Type: NumType(), Set: TriYes, Read: TriNo, Over: TriNo, Method: "store"}
	second := traceState(first, "load")
	third := traceState(second, "store")

	assert.Equal(t, "load", second.Method)
	assert.Same(t, first, second.Prev)

	trace := third.Trace()
	require.Len(t, trace, 2)
	assert.Same(t, second, trace[0])
	assert.Same(t, first, trace[1])
}

func TestDemoteTri(t *testing.T) {
	assert.Equal(t, TriNo, demoteTri(TriNo))
	assert.Equal(t, TriMaybe, demoteTri(TriYes))
	assert.Equal(t, TriMaybe, demoteTri(TriMaybe))
}

func TestCombineStates(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}

	newTestAnalyzer := func() *Analyzer {
		a := NewAnalyzer()
		a.reset()
		return a
	}

	t.Run("OneSidedDegrades", func(t *testing.T) {
		a := newTestAnalyzer()
		left := &State{Name: "x", Type: NumType(), Set: TriYes, Read: TriNo, Over: TriNo}

		joined := a.combineStates(left, nil, pos)
		assert.Equal(t, TriMaybe, joined.Set)
		assert.Equal(t, TriNo, joined.Read)
		assert.Equal(t, TriNo, joined.Over)
	})

	t.Run("AgreementKeepsAxes", func(t *testing.T) {
		a := newTestAnalyzer()
		left := &State{Name: "x", Type: NumType(), Set: TriYes, Read: TriYes, Over: TriNo}
		right := &State{Name: "x", Type: NumType(), Set: TriYes, Read: TriNo, Over: TriNo}

		joined := a.combineStates(left, right, pos)
		assert.Equal(t, TriYes, joined.Set)
		assert.Equal(t, TriMaybe, joined.Read)
		assert.Equal(t, TriNo, joined.Over)
	})

	t.Run("TypeDisagreementRaises", func(t *testing.T) {
		a := newTestAnalyzer()
		left := &State{Name: "0/x", Type: NumType(), Set: TriYes, Read: TriNo, Over: TriNo}
		right := &State{Name: "0/x", Type: StrType(), Set: TriYes, Read: TriNo, Over: TriNo}

		a.combineStates(left, right, pos)
		require.Len(t, a.report.Issues[issue.TypeChanges], 1)
		assert.Equal(t, "Num", a.report.Issues[issue.TypeChanges][0].Old)
		assert.Equal(t, "Str", a.report.Issues[issue.TypeChanges][0].New)
	})

	t.Run("UnknownSuppressesTypeDisagreement", func(t *testing.T) {
		a := newTestAnalyzer()
		left := &State{Name: "x", Type: UnknownType(), Set: TriYes, Read: TriNo, Over: TriNo}
		right := &State{Name: "x", Type: StrType(), Set: TriYes, Read: TriNo, Over: TriNo}

		a.combineStates(left, right, pos)
		assert.Empty(t, a.report.Issues[issue.TypeChanges])
	})

	// Join commutativity: swapping the branches reports the same number
	// of type disagreements and produces the same axis values.
	t.Run("Commutativity", func(t *testing.T) {
		left := &State{Name: "x", Type: NumType(), Set: TriYes, Read: TriNo, Over: TriMaybe}
		right := &State{Name: "x", Type: StrType(), Set: TriMaybe, Read: TriNo, Over: TriNo}

		a1 := newTestAnalyzer()
		ab := a1.combineStates(left, right, pos)
		a2 := newTestAnalyzer()
		ba := a2.combineStates(right, left, pos)

		assert.Equal(t, ab.Set, ba.Set)
		assert.Equal(t, ab.Read, ba.Read)
		assert.Equal(t, ab.Over, ba.Over)
		assert.Len(t, a1.report.Issues[issue.TypeChanges], 1)
		assert.Len(t, a2.report.Issues[issue.TypeChanges], 1)
	})
}

func TestFindInScope(t *testing.T) {
	a := NewAnalyzer()
	a.reset()

	a.storeVariable("x", NumType(), ast.Position{Line: 1, Column: 1})

	t.Run("ModuleScopeHit", func(t *testing.T) {
		found := a.findInScope("x")
		assert.True(t, found.exists)
		assert.True(t, found.inScope)
		assert.Equal(t, "0/x", found.scopedName)
	})

	t.Run("Miss", func(t *testing.T) {
		found := a.findInScope("y")
		assert.False(t, found.exists)
	})

	t.Run("OuterScopeHitIsOutOfScope", func(t *testing.T) {
		a.scopeChain = []int{1, 0}
		defer func() { a.scopeChain = []int{0} }()

		found := a.findInScope("x")
		assert.True(t, found.exists)
		assert.False(t, found.inScope)
		assert.Equal(t, "0/x", found.scopedName)
	})
}

func TestSameScope(t *testing.T) {
	assert.True(t, sameScope("0/x", []int{0}))
	assert.False(t, sameScope("1/0/x", []int{0}))
	assert.True(t, sameScope("1/0/x", []int{1, 0}))
	assert.False(t, sameScope("x", []int{0}))
}

func TestFullyScopedName(t *testing.T) {
	a := NewAnalyzer()
	a.reset()
	assert.Equal(t, "0/x", a.fullyScopedName("x"))

	a.scopeChain = []int{2, 0}
	assert.Equal(t, "2/0/x", a.fullyScopedName("x"))
}
