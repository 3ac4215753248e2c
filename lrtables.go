// Package lrtables constructs LR parsing automata and parsing tables from
// context-free grammars. Given a Grammar, it builds an item-set DFA (the
// LR(0) one from the item-set NFA via subset construction, or the canonical
// LR(1) one directly) and fills an LR(0), SLR(1), or canonical LR(1)
// parsing table, recording rather than resolving any conflicts it
// finds along the way. A generic, alphabet-parametric DFA simulator is
// included for replaying and validating automata.
//
// This package is the public face of the toolkit; the construction
// machinery itself lives in the internal packages and is reached through
// the aliases and constructors here.
package lrtables

import (
	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
	"github.com/dekarrin/lrtables/internal/lrtables/parse"
)

// Grammar is a context-free grammar: terminals, non-terminals, a start
// symbol, productions, and the set of non-terminals carrying an epsilon
// production. The zero value is an empty grammar ready for AddTerm/AddRule
// calls; ParseGrammar builds one from a compact textual notation.
type Grammar = grammar.Grammar

// Production is a single right-hand side of a grammar rule.
type Production = grammar.Production

// ParsingTable is a filled ACTION/GOTO table. Cells are entry sets; use
// FindConflicts to inspect cells holding more than one entry.
type ParsingTable = parse.ParsingTable

// Conflict is an ACTION cell holding more than one entry.
type Conflict = parse.Conflict

// ParseGrammar parses the compact textual grammar notation; see
// grammar.ParseGrammar for the format.
func ParseGrammar(src string) (Grammar, error) {
	return grammar.ParseGrammar(src)
}

// NewLR0Table validates g and fills its LR(0) parsing table.
func NewLR0Table(g Grammar) (*ParsingTable, error) {
	return parse.BuildLR0Table(g)
}

// NewSLRTable validates g and fills its SLR(1) parsing table.
func NewSLRTable(g Grammar) (*ParsingTable, error) {
	return parse.BuildSLRTable(g)
}

// NewCLRTable validates g and fills its canonical LR(1) parsing table.
func NewCLRTable(g Grammar) (*ParsingTable, error) {
	return parse.BuildLR1Table(g)
}
