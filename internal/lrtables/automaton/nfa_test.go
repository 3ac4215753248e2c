package automaton

import (
	"testing"

	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_NewLR0ViablePrefixNFA_epsilonEdgesExpandNonTerminals(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> A b
		A -> a
	`)

	nfa := NewLR0ViablePrefixNFA(g)

	closure := nfa.EpsilonClosure(nfa.Start)
	assert.True(closure.Has(nfa.Start))

	foundAStart := false
	for _, name := range closure.Elements() {
		item := nfa.GetValue(name)
		if item.NonTerminal == "A" && len(item.Left) == 0 {
			foundAStart = true
		}
	}
	assert.True(foundAStart, "epsilon closure of the start item should reach A -> . a")
}

func Test_NewLR0ViablePrefixNFA_lowercaseNonTerminalStillExpands(t *testing.T) {
	assert := assert.New(t)

	// regression test: whether X is a non-terminal must be decided by
	// looking it up in the grammar, not by checking its casing.
	var g grammar.Grammar
	g.AddTerm("id", "")
	g.AddRule("start", grammar.Production{"expr"})
	g.AddRule("expr", grammar.Production{"id"})

	nfa := NewLR0ViablePrefixNFA(g)
	closure := nfa.EpsilonClosure(nfa.Start)

	foundExprStart := false
	for _, name := range closure.Elements() {
		item := nfa.GetValue(name)
		if item.NonTerminal == "expr" && len(item.Left) == 0 {
			foundExprStart = true
		}
	}
	assert.True(foundExprStart, "epsilon closure should expand into lowercase non-terminal expr's productions")
}

func Test_NFA_ToDFA_isDeterministicPerSymbol(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> a S b | a b
	`)

	dfa := NewLR0ViablePrefixNFA(g).ToDFA()

	for _, state := range dfa.States().Elements() {
		seen := map[string]bool{}
		st := dfa.states[state]
		for sym, trans := range st.transitions {
			assert.False(seen[sym], "state %q should have at most one transition per symbol", state)
			seen[sym] = true
			assert.NotEmpty(trans.next)
		}
	}
}

func Test_NFA_ToDFA_canonicalNamingStableAcrossRuns(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> a S b | a b
	`)

	first := NewLR0ViablePrefixNFA(g).ToDFA()
	first.NumberStates()

	second := NewLR0ViablePrefixNFA(g).ToDFA()
	second.NumberStates()

	assert.Equal(first.String(), second.String())
	assert.Equal("I0", first.Start)
}

func Test_NFA_Copy_isIndependent(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> a b
	`)

	nfa := NewLR0ViablePrefixNFA(g)
	cp := nfa.Copy()

	cp.AddState("extra", false)

	assert.False(nfa.States().Has("extra"), "adding to the copy must not affect the original")
	assert.Equal(nfa.Start, cp.Start)
	assert.True(cp.States().Has(nfa.Start))
}

func Test_NFA_MOVE_andEpsilonClosureOfSet(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> a b
	`)

	nfa := NewLR0ViablePrefixNFA(g)
	start := nfa.EpsilonClosure(nfa.Start)

	moved := nfa.MOVE(start, "a")
	assert.NotEmpty(moved, "moving on the first terminal of the only production should reach a state")

	closure := nfa.EpsilonClosureOfSet(moved)
	assert.True(closure.Len() >= moved.Len())
}
