package parse

import (
	"github.com/dekarrin/lrtables/internal/lrtables/automaton"
	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
)

// BuildLR1Table constructs the canonical LR(1) table. Each item already
// carries its own lookahead symbol as part of the canonical LR(1) item-set
// DFA, so a reduce item A -> β., a is filled in on exactly that one
// terminal rather than on all of FOLLOW(A); this is what lets canonical
// LR(1) accept grammars that SLR(1) reports conflicts for, at the cost of a
// larger item-set DFA.
func BuildLR1Table(g grammar.Grammar) (*ParsingTable, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	oldStart := g.StartSymbol()
	augmented := g.Augmented()
	augStart := augmented.StartSymbol()

	dfa := automaton.NewLR1ViablePrefixDFA(g)
	dfa.NumberStates()

	table := newParsingTable(LR1, dfa.StatesInOrder(), dfa.Start, g.Terminals(), g.NonTerminals())

	for _, state := range dfa.StatesInOrder() {
		itemSet := dfa.GetValue(state)
		items := make([]coreItem, 0, len(itemSet))
		lookaheads := map[string][]string{}
		for _, item := range itemSet {
			core := coreOfLR1(item)
			items = append(items, core)
			lookaheads[core.String()] = append(lookaheads[core.String()], item.Lookahead)
		}

		next := func(sym string) string { return dfa.Next(state, sym) }

		lookaheadsFor := func(item coreItem) []string {
			return lookaheads[item.String()]
		}

		fillState(table, augmented, state, items, next, augStart, oldStart, lookaheadsFor)
	}

	return table, nil
}
