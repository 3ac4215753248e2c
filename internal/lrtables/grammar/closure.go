package grammar

import "github.com/dekarrin/lrtables/internal/util"

// LR0Items enumerates every LR(0) item derivable from g's productions: for
// every non-terminal A with a right-hand side of length n, the n+1 items
// obtained by placing the dot at each position from 0 to n (including the
// single item A -> . for an epsilon production).
func (g Grammar) LR0Items() []LR0Item {
	var items []LR0Item

	for _, nt := range g.NonTerminals() {
		rule := g.Rule(nt)
		for _, prod := range rule.Productions {
			for dot := 0; dot <= len(prod); dot++ {
				left := make([]string, dot)
				copy(left, prod[:dot])
				right := make([]string, len(prod)-dot)
				copy(right, prod[dot:])

				items = append(items, LR0Item{
					NonTerminal: nt,
					Left:        left,
					Right:       right,
				})
			}
		}
	}

	return items
}

// LR0_CLOSURE computes CLOSURE(I) for a set of LR(0) items: the least
// superset of I that, for every item A -> alpha . B gamma with B a
// non-terminal, also contains every item B -> . delta for B -> delta in P
// (including B -> . when B has an epsilon production).
func (g Grammar) LR0_CLOSURE(I util.SVSet[LR0Item]) util.SVSet[LR0Item] {
	closure := util.NewSVSet(I)

	added := true
	for added {
		added = false

		for _, key := range closure.Elements() {
			item := closure.Get(key)
			if len(item.Right) == 0 {
				continue
			}
			B := item.Right[0]
			if !g.IsNonTerminal(B) {
				continue
			}

			rule := g.Rule(B)
			for _, delta := range rule.Productions {
				newItem := LR0Item{NonTerminal: B, Left: nil, Right: append([]string{}, delta...)}
				key := newItem.String()
				if !closure.Has(key) {
					closure.Set(key, newItem)
					added = true
				}
			}
		}
	}

	return closure
}

// LR1_CLOSURE computes CLOSURE(I) for a set of LR(1) items, propagating
// lookaheads: for every item [A -> alpha . B gamma, a] in the closure, and
// every production B -> delta, the closure gains [B -> . delta, b] for every
// b in FIRST(gamma a).
func (g Grammar) LR1_CLOSURE(I util.SVSet[LR1Item]) util.SVSet[LR1Item] {
	closure := util.NewSVSet(I)
	memo := map[string]util.StringSet{}

	added := true
	for added {
		added = false

		for _, key := range closure.Elements() {
			item := closure.Get(key)
			if len(item.Right) == 0 {
				continue
			}
			B := item.Right[0]
			if !g.IsNonTerminal(B) {
				continue
			}
			gamma := item.Right[1:]

			lookaheads, _ := g.firstOfSequence(append(append([]string{}, gamma...), item.Lookahead), memo)

			rule := g.Rule(B)
			for _, delta := range rule.Productions {
				for _, b := range lookaheads.Elements() {
					newItem := LR1Item{
						LR0Item:   LR0Item{NonTerminal: B, Left: nil, Right: append([]string{}, delta...)},
						Lookahead: b,
					}
					k := newItem.String()
					if !closure.Has(k) {
						closure.Set(k, newItem)
						added = true
					}
				}
			}
		}
	}

	return closure
}
