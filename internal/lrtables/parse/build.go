package parse

import (
	"strings"

	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
)

// coreItem is the LR0Item shape shared by LR0Item and LR1Item, used so the
// ACTION-filling logic below doesn't need to be duplicated per item kind.
type coreItem struct {
	nonTerminal string
	left        []string
	right       []string
}

// String renders the dotted-item core as a key suitable for grouping
// LR(1) items that share a core but differ only in lookahead.
func (c coreItem) String() string {
	return c.nonTerminal + " -> " + strings.Join(c.left, " ") + " . " + strings.Join(c.right, " ")
}

func coreOfLR0(i grammar.LR0Item) coreItem {
	return coreItem{nonTerminal: i.NonTerminal, left: i.Left, right: i.Right}
}

func coreOfLR1(i grammar.LR1Item) coreItem {
	return coreItem{nonTerminal: i.LR0Item.NonTerminal, left: i.LR0Item.Left, right: i.LR0Item.Right}
}

// fillState adds every ACTION entry derivable from the dotted items of a
// single DFA state, plus every GOTO entry reachable from it. It is shared by
// the LR(0), SLR(1), and canonical LR(1) builders, which differ only in how
// they decide a reduce item's lookahead set (lookaheadsFor) and in the shape
// of the items they hand it (coreOfLR0 vs coreOfLR1).
//
// augStart/oldStart identify the augmented grammar's synthetic start
// production (augStart -> oldStart); an item reducing that production at
// end-of-input is the accept action rather than an ordinary reduce.
func fillState(
	table *ParsingTable,
	g grammar.Grammar,
	state string,
	items []coreItem,
	next func(sym string) string,
	augStart, oldStart string,
	lookaheadsFor func(item coreItem) []string,
) {
	for _, item := range items {
		if len(item.right) == 0 {
			if item.nonTerminal == augStart && len(item.left) == 1 && item.left[0] == oldStart {
				table.AddAction(state, grammar.EndOfInput, LRAction{Type: LRAccept})
				continue
			}

			prod := grammar.Production(append([]string{}, item.left...))
			for _, la := range lookaheadsFor(item) {
				table.AddAction(state, la, LRAction{
					Type:       LRReduce,
					Production: prod,
					Symbol:     item.nonTerminal,
				})
			}
			continue
		}

		sym := item.right[0]
		if sym == grammar.Epsilon[0] {
			continue
		}
		if !g.IsTerminal(sym) {
			continue
		}

		dest := next(sym)
		if dest == "" {
			continue
		}
		table.AddAction(state, sym, LRAction{Type: LRShift, State: dest})
	}

	for _, nt := range g.NonTerminals() {
		if nt == augStart {
			continue
		}
		if dest := next(nt); dest != "" {
			table.AddGoto(state, nt, dest)
		}
	}
}
