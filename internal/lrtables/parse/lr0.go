package parse

import (
	"github.com/dekarrin/lrtables/internal/lrtables/automaton"
	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
)

// BuildLR0Table constructs the "simple LR" table: a reduce item A -> β. is
// filled in on every terminal (including the end marker), not just those in
// FOLLOW(A). This over-reports reduce actions relative to SLR(1) and is
// exactly what makes LR(0) construction weaker — grammars that are SLR(1)
// but not LR(0) will show reduce conflicts here that the SLR(1) table
// resolves by restricting to FOLLOW.
func BuildLR0Table(g grammar.Grammar) (*ParsingTable, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	oldStart := g.StartSymbol()
	augmented := g.Augmented()
	augStart := augmented.StartSymbol()

	dfa := automaton.NewLR0ViablePrefixNFA(g).ToDFA()
	dfa.NumberStates()

	// augmented.Terminals() already carries the end marker, since Augmented
	// declares it as a terminal.
	allTerms := augmented.Terminals()

	table := newParsingTable(LR0, dfa.StatesInOrder(), dfa.Start, g.Terminals(), g.NonTerminals())

	lookaheadsFor := func(coreItem) []string {
		return allTerms
	}

	for _, state := range dfa.StatesInOrder() {
		itemSet := dfa.GetValue(state)
		items := make([]coreItem, 0, len(itemSet))
		for _, item := range itemSet {
			items = append(items, coreOfLR0(item))
		}

		next := func(sym string) string { return dfa.Next(state, sym) }

		fillState(table, augmented, state, items, next, augStart, oldStart, lookaheadsFor)
	}

	return table, nil
}
