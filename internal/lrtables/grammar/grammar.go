// Package grammar provides the in-memory context-free grammar model used by
// the rest of lrtables: symbols, productions, the epsilon-production set,
// grammar augmentation, and the FIRST/FOLLOW fixed-point computations that
// the parsing-table builders depend on.
package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/lrtables/internal/lrtables/icterrors"
	"github.com/dekarrin/lrtables/internal/util"
)

// Epsilon is the sentinel symbol used as the key for ε-edges in NFA
// transition maps and as the ε member of FIRST sets (marking a nullable
// symbol); Epsilon[0] is always the empty string. An epsilon production
// itself is an empty Production, not one holding this symbol.
var Epsilon = []string{""}

// Production is the right-hand side of a rule: a sequence of terminal and/or
// non-terminal symbol names. Epsilon productions are never represented as an
// empty Production inside a Grammar's rule map; see Grammar.HasEpsilon.
type Production []string

// Equal returns whether p and o consist of the same symbols in the same
// order.
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		return false
	}
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	if len(p) == 0 {
		return "ε"
	}
	return strings.Join(p, " ")
}

// Rule is every production associated with a single non-terminal.
type Rule struct {
	NonTerminal string
	Productions []Production
}

func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.NonTerminal)
	sb.WriteString(" -> ")
	for i, p := range r.Productions {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(p.String())
	}
	return sb.String()
}

// Grammar is a context-free grammar: a set of terminals, a set of
// non-terminals, a start symbol, a mapping from each non-terminal to its
// (non-epsilon) productions, and the set of non-terminals that additionally
// carry an epsilon production.
type Grammar struct {
	start           string
	terminals       map[string]Symbol
	nonTerms        util.StringSet
	rules           map[string][]Production
	epsilons        util.StringSet
	nonTermOrdering []string
}

// AddTerm declares a terminal symbol. If name is already a declared
// terminal, its Property is overwritten.
func (g *Grammar) AddTerm(name string, property string) {
	if g.terminals == nil {
		g.terminals = map[string]Symbol{}
	}
	g.terminals[name] = Symbol{Name: name, Kind: Terminal, Property: property}
}

// AddRule adds production as a right-hand side of nonTerm, declaring
// nonTerm as a non-terminal (and as the start symbol if it is the first
// non-terminal ever added) if this is the first time it has been seen. An
// empty production denotes an epsilon production and is recorded in the
// epsilon set rather than appended to the rule's production list.
func (g *Grammar) AddRule(nonTerm string, production Production) {
	if g.nonTerms == nil {
		g.nonTerms = util.NewStringSet()
	}
	if g.rules == nil {
		g.rules = map[string][]Production{}
	}
	if g.epsilons == nil {
		g.epsilons = util.NewStringSet()
	}

	if !g.nonTerms.Has(nonTerm) {
		g.nonTerms.Add(nonTerm)
		g.nonTermOrdering = append(g.nonTermOrdering, nonTerm)
		if g.start == "" {
			g.start = nonTerm
		}
	}

	if len(production) == 0 {
		g.epsilons.Add(nonTerm)
		return
	}

	g.rules[nonTerm] = append(g.rules[nonTerm], production)
}

// SetStart explicitly sets the grammar's start symbol. nonTerm must already
// have been declared via AddRule.
func (g *Grammar) SetStart(nonTerm string) {
	g.start = nonTerm
}

// StartSymbol returns the name of the grammar's start symbol.
func (g Grammar) StartSymbol() string {
	return g.start
}

// IsTerminal returns whether name is a declared terminal symbol, including
// the reserved end marker.
func (g Grammar) IsTerminal(name string) bool {
	if name == EndOfInput {
		return true
	}
	_, ok := g.terminals[name]
	return ok
}

// IsNonTerminal returns whether name is a declared non-terminal symbol.
func (g Grammar) IsNonTerminal(name string) bool {
	return g.nonTerms.Has(name)
}

// Term returns the declared terminal symbol named name.
func (g Grammar) Term(name string) Symbol {
	if name == EndOfInput {
		return Symbol{Name: EndOfInput, Kind: EndMarker}
	}
	return g.terminals[name]
}

// Terminals returns the names of every declared terminal, in a stable
// (alphabetical) order.
func (g Grammar) Terminals() []string {
	names := make([]string, 0, len(g.terminals))
	for name := range g.terminals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NonTerminals returns the names of every declared non-terminal, in
// discovery (first-AddRule) order, which places the start symbol first.
func (g Grammar) NonTerminals() []string {
	out := make([]string, len(g.nonTermOrdering))
	copy(out, g.nonTermOrdering)
	return out
}

// HasEpsilon returns whether nonTerm carries an epsilon production.
func (g Grammar) HasEpsilon(nonTerm string) bool {
	return g.epsilons.Has(nonTerm)
}

// Rule returns the Rule for nonTerm, with its Productions slice including a
// trailing empty Production if nonTerm carries an epsilon production. This
// is the convenience view item enumeration and NFA construction iterate
// over; internal storage never keeps the epsilon case inside the rule map
// itself (see Grammar.AddRule).
func (g Grammar) Rule(nonTerm string) Rule {
	prods := g.rules[nonTerm]
	out := make([]Production, len(prods))
	copy(out, prods)
	if g.epsilons.Has(nonTerm) {
		out = append(out, Production{})
	}
	return Rule{NonTerminal: nonTerm, Productions: out}
}

// Validate checks the CFG invariants from the data model: at least one rule,
// at least one terminal, the start symbol is a declared non-terminal, and
// every symbol appearing on the right-hand side of a production is declared
// as a terminal or non-terminal.
func (g Grammar) Validate() error {
	if len(g.nonTerms) == 0 {
		return icterrors.InvalidGrammarf("grammar has no non-terminals")
	}
	if len(g.terminals) == 0 {
		return icterrors.InvalidGrammarf("grammar has no terminals")
	}
	if g.start == "" || !g.nonTerms.Has(g.start) {
		return icterrors.InvalidGrammarf("start symbol %q is not a declared non-terminal", g.start)
	}

	for _, nonTerm := range g.nonTermOrdering {
		rule := g.Rule(nonTerm)
		if len(rule.Productions) == 0 {
			return icterrors.InvalidGrammarf("non-terminal %q has no productions", nonTerm)
		}
		for _, prod := range rule.Productions {
			var undeclared []string
			for _, sym := range prod {
				if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
					undeclared = append(undeclared, fmt.Sprintf("%q", sym))
				}
			}
			if len(undeclared) > 0 {
				return icterrors.InvalidGrammarf("production %s -> %s references undeclared symbol(s) %s", nonTerm, prod.String(), util.MakeTextList(undeclared))
			}
		}
	}

	return nil
}

// Augmented returns a new grammar G′ with a fresh start symbol S′ → S and
// the reserved end marker $ introduced as a terminal. The name of S′ is
// derived by appending "_expanded" to the original start symbol's name,
// repeating the suffix until it no longer collides with any declared
// symbol.
func (g Grammar) Augmented() Grammar {
	allNames := util.NewStringSet()
	for _, t := range g.Terminals() {
		allNames.Add(t)
	}
	for _, nt := range g.NonTerminals() {
		allNames.Add(nt)
	}
	allNames.Add(EndOfInput)

	namer := util.FreshNamer{Suffix: "_expanded", Taken: allNames}
	newStart := namer.Name(g.start + "_expanded")

	augmented := g.Copy()
	augmented.AddTerm(EndOfInput, "")
	augmented.nonTerms.Add(newStart)
	augmented.nonTermOrdering = append([]string{newStart}, augmented.nonTermOrdering...)
	augmented.rules[newStart] = []Production{{g.start}}
	augmented.start = newStart

	return augmented
}

// Copy returns a deep copy of g.
func (g Grammar) Copy() Grammar {
	cp := Grammar{
		start:           g.start,
		terminals:       map[string]Symbol{},
		nonTerms:        util.NewStringSet(),
		rules:           map[string][]Production{},
		epsilons:        util.NewStringSet(),
		nonTermOrdering: make([]string, len(g.nonTermOrdering)),
	}
	copy(cp.nonTermOrdering, g.nonTermOrdering)

	for k, v := range g.terminals {
		cp.terminals[k] = v
	}
	for _, nt := range g.nonTermOrdering {
		cp.nonTerms.Add(nt)
	}
	for k, v := range g.epsilons {
		if v {
			cp.epsilons.Add(k)
		}
	}
	for nt, prods := range g.rules {
		cpProds := make([]Production, len(prods))
		for i := range prods {
			p := make(Production, len(prods[i]))
			copy(p, prods[i])
			cpProds[i] = p
		}
		cp.rules[nt] = cpProds
	}

	return cp
}

func (g Grammar) String() string {
	var sb strings.Builder
	for i, nt := range g.nonTermOrdering {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(g.Rule(nt).String())
	}
	return sb.String()
}
