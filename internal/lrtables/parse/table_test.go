package parse

import (
	"strings"
	"testing"

	"github.com/dekarrin/lrtables/internal/lrtables/automaton"
	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
	"github.com/dekarrin/lrtables/internal/lrtables/icterrors"
	"github.com/stretchr/testify/assert"
)

// cellActions returns the entries at ACTION[state, term], treating an
// unfilled cell as an empty set; any error other than NoSuchCell fails the
// test.
func cellActions(t *testing.T, table *ParsingTable, state, term string) []LRAction {
	t.Helper()

	actions, err := table.GetActions(state, term)
	if err != nil {
		kind, ok := icterrors.KindOf(err)
		if !ok || kind != icterrors.NoSuchCell {
			t.Fatalf("GetActions(%q, %q): unexpected error: %v", state, term, err)
		}
		return nil
	}
	return actions
}

func Test_BuildLR0Table_conflictsOnMinimalSLRGrammar(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> a S b | a b
	`)

	table, err := BuildLR0Table(g)
	assert.NoError(err)

	assert.GreaterOrEqual(len(table.States), 5)
	assert.LessOrEqual(len(table.States), 8)
	assert.NotEmpty(table.FindConflicts(), "LR(0) table for this grammar is expected to have conflicts")
}

func Test_BuildSLRTable_noConflictsOnMinimalSLRGrammar(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> a S b | a b
	`)

	table, err := BuildSLRTable(g)
	assert.NoError(err)

	assert.GreaterOrEqual(len(table.States), 5)
	assert.LessOrEqual(len(table.States), 8)
	assert.Empty(table.FindConflicts(), "SLR(1) table for this grammar should have no conflicts")
}

func Test_BuildSLRTable_epsilonProductionReducesOnlyUnderFollow(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> A b
		A -> a |
	`)

	table, err := BuildSLRTable(g)
	assert.NoError(err)
	assert.Empty(table.FindConflicts())

	foundEpsilonReduce := false
	for _, state := range table.States {
		for _, act := range cellActions(t, table, state, "b") {
			if act.Type == LRReduce && act.Symbol == "A" && len(act.Production) == 0 {
				foundEpsilonReduce = true
			}
		}

		for _, term := range table.Terminals {
			if term == "b" {
				continue
			}
			for _, act := range cellActions(t, table, state, term) {
				assert.Falsef(act.Type == LRReduce && act.Symbol == "A" && len(act.Production) == 0,
					"A -> ε reduce must only appear under FOLLOW(A) = {b}, found it under %q", term)
			}
		}
	}

	assert.True(foundEpsilonReduce, "expected to find the A -> ε reduce under b somewhere in the table")
}

func Test_BuildSLRTable_conflictOnAssignmentGrammar(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> L = R | R
		L -> * R | id
		R -> L
	`)

	table, err := BuildSLRTable(g)
	assert.NoError(err)
	conflicts := table.FindConflicts()
	assert.NotEmpty(conflicts, "SLR(1) table for this grammar is expected to have a shift/reduce conflict on =")

	foundOnEquals := false
	for _, c := range conflicts {
		if c.Terminal == "=" {
			foundOnEquals = true
		}
	}
	assert.True(foundOnEquals)
}

func Test_BuildLR1Table_resolvesSLRConflictOnAssignmentGrammar(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> L = R | R
		L -> * R | id
		R -> L
	`)

	table, err := BuildLR1Table(g)
	assert.NoError(err)
	assert.Empty(table.FindConflicts(), "canonical LR(1) table should resolve the SLR(1) conflict on this grammar")
}

func Test_BuildLR1Table_augmentationNameCollision(t *testing.T) {
	assert := assert.New(t)

	g := grammar.Grammar{}
	g.AddTerm("a", "")
	g.AddRule("S", grammar.Production{"a"})
	g.AddRule("S_expanded", grammar.Production{"a"})

	augmented := g.Augmented()
	assert.Equal("S_expanded_expanded", augmented.StartSymbol())
	rule := augmented.Rule(augmented.StartSymbol())
	assert.Len(rule.Productions, 1)
	assert.Equal(grammar.Production{"S"}, rule.Productions[0])

	table, err := BuildLR1Table(g)
	assert.NoError(err)
	assert.NotEmpty(table.States)
}

func Test_BuildSLRTable_reduceEntriesMatchFollowAndStateItems(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> L = R | R
		L -> * R | id
		R -> L
	`)
	augmented := g.Augmented()

	table, err := BuildSLRTable(g)
	assert.NoError(err)

	// construction is deterministic, so rebuilding the same item-set DFA
	// gives the exact states the builder derived the table from.
	dfa := automaton.NewLR0ViablePrefixNFA(g).ToDFA()
	dfa.NumberStates()

	cols := append(append([]string{}, table.Terminals...), grammar.EndOfInput)

	for _, state := range table.States {
		itemSet := dfa.GetValue(state)

		for _, term := range cols {
			for _, act := range cellActions(t, table, state, term) {
				if act.Type != LRReduce {
					continue
				}

				assert.Truef(augmented.FOLLOW(act.Symbol).Has(term),
					"reduce %s -> %s at (%s, %s) but %q is not in FOLLOW(%s)",
					act.Symbol, act.Production.String(), state, term, term, act.Symbol)

				foundItem := false
				for _, item := range itemSet {
					if item.NonTerminal == act.Symbol && len(item.Right) == 0 && grammar.Production(item.Left).Equal(act.Production) {
						foundItem = true
					}
				}
				assert.Truef(foundItem,
					"reduce %s -> %s at (%s, %s) has no matching complete item in the state",
					act.Symbol, act.Production.String(), state, term)
			}
		}
	}
}

func Test_BuildLR0Table_reducesOnEveryTerminalIncludingEndMarker(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> a b
	`)

	table, err := BuildLR0Table(g)
	assert.NoError(err)

	cols := append(append([]string{}, table.Terminals...), grammar.EndOfInput)

	sawReduceState := false
	for _, state := range table.States {
		hasReduce := false
		for _, term := range cols {
			for _, act := range cellActions(t, table, state, term) {
				if act.Type == LRReduce {
					hasReduce = true
				}
			}
		}
		if !hasReduce {
			continue
		}
		sawReduceState = true

		for _, term := range cols {
			foundReduce := false
			for _, act := range cellActions(t, table, state, term) {
				if act.Type == LRReduce {
					foundReduce = true
				}
			}
			assert.Truef(foundReduce, "LR(0) state %s reduces somewhere, so it must reduce under every terminal, missing %q", state, term)
		}
	}

	assert.True(sawReduceState, "the grammar's only production must produce at least one reducing state")
}

func Test_ParsingTable_String_rendersEveryColumn(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> a b
	`)

	table, err := BuildSLRTable(g)
	assert.NoError(err)

	rendered := table.String()

	assert.Contains(rendered, "I0")
	assert.Contains(rendered, "A:a")
	assert.Contains(rendered, "A:"+grammar.EndOfInput)
	assert.Contains(rendered, "G:S")
	assert.Contains(rendered, "acc")
}

func Test_Builders_rejectInvalidGrammar(t *testing.T) {
	assert := assert.New(t)

	var g grammar.Grammar
	g.AddTerm("a", "")
	g.AddRule("S", grammar.Production{"a", "B"})

	_, err := BuildLR0Table(g)
	assert.Error(err)
	kind, ok := icterrors.KindOf(err)
	assert.True(ok)
	assert.Equal(icterrors.InvalidGrammar, kind)

	_, err = BuildSLRTable(g)
	assert.Error(err)

	_, err = BuildLR1Table(g)
	assert.Error(err)
}

func Test_ParsingTable_AddAction_duplicateIsNotNewlyAdded(t *testing.T) {
	assert := assert.New(t)

	table := newParsingTable(LR0, []string{"I0"}, "I0", []string{"a"}, nil)

	added := table.AddAction("I0", "a", LRAction{Type: LRShift, State: "I1"})
	assert.True(added)

	addedAgain := table.AddAction("I0", "a", LRAction{Type: LRShift, State: "I1"})
	assert.False(addedAgain, "adding an equal entry a second time should not count as newly added")

	entries, err := table.GetActions("I0", "a")
	assert.NoError(err)
	assert.Len(entries, 1)
}

func Test_ParsingTable_GetActions_errors(t *testing.T) {
	assert := assert.New(t)

	table := newParsingTable(LR0, []string{"I0"}, "I0", []string{"a"}, []string{"S"})

	_, err := table.GetActions("I99", "a")
	assert.Error(err)
	kind, ok := icterrors.KindOf(err)
	assert.True(ok)
	assert.Equal(icterrors.NoSuchCell, kind)

	_, err = table.GetActions("I0", "S")
	assert.Error(err)
	kind, ok = icterrors.KindOf(err)
	assert.True(ok)
	assert.Equal(icterrors.WrongCategory, kind)

	_, err = table.GetActions("I0", "a")
	assert.Error(err, "an unfilled ACTION cell is a NoSuchCell error, not an empty result")
	kind, ok = icterrors.KindOf(err)
	assert.True(ok)
	assert.Equal(icterrors.NoSuchCell, kind)
}

func Test_ParsingTable_GetGoto_errorsAndUnfilledCell(t *testing.T) {
	assert := assert.New(t)

	table := newParsingTable(LR0, []string{"I0", "I1"}, "I0", []string{"a"}, []string{"S"})
	table.AddGoto("I0", "S", "I1")

	dest, err := table.GetGoto("I0", "S")
	assert.NoError(err)
	assert.Equal("I1", dest)

	_, err = table.GetGoto("I0", "a")
	assert.Error(err, "querying GOTO with a terminal should be a WrongCategory error")

	_, err = table.GetGoto("I99", "S")
	assert.Error(err)

	_, err = table.GetGoto("I1", "S")
	assert.Error(err, "an unfilled GOTO cell should be distinguishable from a queried-but-absent one")
}

func Test_ParsingTable_AddGoto_conflictIsRecordedNotOverwritten(t *testing.T) {
	assert := assert.New(t)

	table := newParsingTable(LR0, []string{"I0", "I1", "I2"}, "I0", nil, []string{"S"})
	table.AddGoto("I0", "S", "I1")
	table.AddGoto("I0", "S", "I2")

	dest, err := table.GetGoto("I0", "S")
	assert.NoError(err)
	assert.Equal("I1", dest, "AddGoto must not silently replace the first destination")

	conflicts := table.FindGotoConflicts()
	assert.Len(conflicts, 1)
	assert.Equal("I0", conflicts[0].State)
	assert.Equal("S", conflicts[0].NonTerminal)
	assert.ElementsMatch([]string{"I1", "I2"}, conflicts[0].Destinations)
}

func Test_ParsingTable_FillingCheck_reportsUnfilledCells(t *testing.T) {
	assert := assert.New(t)

	g := grammar.MustParse(`
		S -> L = R | R
		L -> * R | id
		R -> L
	`)

	table, err := BuildSLRTable(g)
	assert.NoError(err)
	unfilled := table.FillingCheck()
	assert.NotEmpty(unfilled, "a table built from a real grammar should have at least some unreachable ACTION cells")

	sawAction := false
	sawGoto := false
	for _, cell := range unfilled {
		if strings.HasPrefix(cell, "ACTION[") {
			sawAction = true
		}
		if strings.HasPrefix(cell, "GOTO[") {
			sawGoto = true
		}
	}
	assert.True(sawAction)
	assert.True(sawGoto, "the check must sweep GOTO cells too; most states have no GOTO entry for most non-terminals")
}

func Test_ParsingTable_FillingCheck_coversWholeDeclaredUniverse(t *testing.T) {
	assert := assert.New(t)

	table := newParsingTable(LR0, []string{"I0", "I1"}, "I0", []string{"a"}, []string{"S"})
	table.AddAction("I0", "a", LRAction{Type: LRShift, State: "I1"})
	table.AddGoto("I0", "S", "I1")

	unfilled := table.FillingCheck()

	// universe: 2 states x (1 terminal + $) ACTION cells + 2 states x 1
	// non-terminal GOTO cells = 6 cells, of which exactly 2 are filled.
	assert.Len(unfilled, 4)
	assert.Contains(unfilled, "ACTION[I0, $]")
	assert.Contains(unfilled, "ACTION[I1, a]")
	assert.Contains(unfilled, "ACTION[I1, $]")
	assert.Contains(unfilled, "GOTO[I1, S]")
	assert.NotContains(unfilled, "ACTION[I0, a]")
	assert.NotContains(unfilled, "GOTO[I0, S]")
}
