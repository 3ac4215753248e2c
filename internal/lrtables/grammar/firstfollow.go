package grammar

import "github.com/dekarrin/lrtables/internal/util"

// FIRST computes FIRST(sym) for a single grammar symbol: itself if sym is a
// terminal (or the end marker), or the fixed-point union of the FIRST sets
// of sym's productions if sym is a non-terminal. Epsilon (Epsilon[0]) is
// included whenever sym is nullable.
func (g Grammar) FIRST(sym string) util.StringSet {
	memo := map[string]util.StringSet{}
	return g.first(sym, memo)
}

func (g Grammar) first(sym string, memo map[string]util.StringSet) util.StringSet {
	if cached, ok := memo[sym]; ok {
		return cached
	}

	if g.IsTerminal(sym) {
		return util.NewStringSet(map[string]bool{sym: true})
	}

	if !g.IsNonTerminal(sym) {
		// unknown symbol; treat as having no FIRST set rather than panicking,
		// callers validate grammars before using this.
		return util.NewStringSet()
	}

	result := util.NewStringSet()
	// seed memo before recursing so that left-recursive productions
	// terminate instead of looping forever; the fixed point below repeats
	// until nothing changes.
	memo[sym] = result

	changed := true
	for changed {
		changed = false

		rule := g.Rule(sym)
		for _, prod := range rule.Productions {
			firstOfProd, nullable := g.firstOfSequence(prod, memo)
			before := result.Len()
			result.AddAll(firstOfProd)
			if nullable {
				result.Add(Epsilon[0])
			}
			if result.Len() != before {
				changed = true
			}
		}
	}

	return result
}

// firstOfSequence computes FIRST(Y1 Y2 ... Yn) for a production's right-hand
// side, along with whether the whole sequence is nullable.
func (g Grammar) firstOfSequence(seq []string, memo map[string]util.StringSet) (util.StringSet, bool) {
	result := util.NewStringSet()

	if len(seq) == 0 {
		return result, true
	}

	for _, sym := range seq {
		symFirst := g.first(sym, memo)
		for _, f := range symFirst.Elements() {
			if f != Epsilon[0] {
				result.Add(f)
			}
		}

		if !symFirst.Has(Epsilon[0]) {
			return result, false
		}
		// sym is nullable; continue on to the next symbol in the sequence
	}

	// every symbol in seq was nullable
	return result, true
}

// Nullable returns whether sym can derive the empty string.
func (g Grammar) Nullable(sym string) bool {
	return g.FIRST(sym).Has(Epsilon[0])
}

// FOLLOW computes FOLLOW(nonTerm) over the grammar by fixed point: the end
// marker is in FOLLOW of the start symbol, and for every production
// B -> alpha A beta, FIRST(beta)\{epsilon} is added to FOLLOW(A), with
// FOLLOW(B) added too whenever beta is nullable or empty.
func (g Grammar) FOLLOW(nonTerm string) util.StringSet {
	all := g.followAll()
	if s, ok := all[nonTerm]; ok {
		return s
	}
	return util.NewStringSet()
}

func (g Grammar) followAll() map[string]util.StringSet {
	memo := map[string]util.StringSet{}
	follow := map[string]util.StringSet{}
	for _, nt := range g.NonTerminals() {
		follow[nt] = util.NewStringSet()
	}
	if g.start != "" {
		follow[g.start].Add(EndOfInput)
	}

	changed := true
	for changed {
		changed = false

		for _, lhs := range g.NonTerminals() {
			rule := g.Rule(lhs)
			for _, prod := range rule.Productions {
				for i, sym := range prod {
					if !g.IsNonTerminal(sym) {
						continue
					}

					beta := prod[i+1:]
					betaFirst, betaNullable := g.firstOfSequence(beta, memo)

					before := follow[sym].Len()
					follow[sym].AddAll(betaFirst)
					if betaNullable {
						follow[sym].AddAll(follow[lhs])
					}
					if follow[sym].Len() != before {
						changed = true
					}
				}
			}
		}
	}

	return follow
}
