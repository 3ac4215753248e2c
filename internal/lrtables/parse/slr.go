package parse

import (
	"github.com/dekarrin/lrtables/internal/lrtables/automaton"
	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
)

// BuildSLRTable constructs the SLR(1) table: the same LR(0) item-set DFA as
// BuildLR0Table, but a reduce item A -> β. is only filled in on the
// terminals of FOLLOW(A) rather than on every terminal. This resolves the
// reduce/reduce and shift/reduce conflicts that arise purely from LR(0)'s
// lack of lookahead, at the cost of still conflating lookahead across every
// occurrence of A regardless of which production derived it — the gap that
// canonical LR(1) closes.
func BuildSLRTable(g grammar.Grammar) (*ParsingTable, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	oldStart := g.StartSymbol()
	augmented := g.Augmented()
	augStart := augmented.StartSymbol()

	dfa := automaton.NewLR0ViablePrefixNFA(g).ToDFA()
	dfa.NumberStates()

	table := newParsingTable(SLR1, dfa.StatesInOrder(), dfa.Start, g.Terminals(), g.NonTerminals())

	lookaheadsFor := func(item coreItem) []string {
		return augmented.FOLLOW(item.nonTerminal).Elements()
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
