// Package parse builds LR parsing tables (LR(0), SLR(1), and canonical
// LR(1)) from a grammar's canonical item-set DFA. Unlike a table meant to
// drive an actual parser, a ParsingTable never resolves or rejects a
// conflicting cell: every ACTION cell holds the full set of entries that the
// construction algorithm derived for it (a second GOTO destination is kept
// aside as a GotoConflict), and it is up to the
// caller (FindConflicts, or a consumer inspecting the table directly) to
// decide what a cell with more than one entry means for the grammar.
package parse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
	"github.com/dekarrin/lrtables/internal/lrtables/icterrors"
	"github.com/dekarrin/lrtables/internal/util"
)

// ParsingTableType identifies which construction strategy produced a
// ParsingTable.
type ParsingTableType int

const (
	LR0 ParsingTableType = iota
	SLR1
	LR1
)

func (t ParsingTableType) String() string {
	switch t {
	case LR0:
		return "LR(0)"
	case SLR1:
		return "SLR(1)"
	case LR1:
		return "LR(1)"
	default:
		return fmt.Sprintf("ParsingTableType(%d)", int(t))
	}
}

// ParsingTable is a bottom-up LR parsing table whose rows are canonical
// item-set DFA states (named I0, I1, …) and whose columns are the
// grammar's terminals (plus the end marker) for ACTION, and non-terminals
// for GOTO. Every ACTION cell is a set: AddAction never overwrites an
// existing entry, it only adds to it, so a table accumulates every action
// the construction derives rather than picking a winner. A GOTO cell holds
// one destination; AddGoto keeps the first and records any second, distinct
// one as a GotoConflict instead of overwriting it.
type ParsingTable struct {
	Type ParsingTableType

	// States lists every row of the table, in canonical discovery order
	// (I0 first).
	States []string

	// Start is the canonical name of the initial state.
	Start string

	Terminals    []string
	NonTerminals []string

	action map[string]map[string][]LRAction
	goto_  map[string]map[string]string

	// gotoConflicts records any (state, nonTerminal) pair for which
	// AddGoto was asked to record two different destinations. A correctly
	// constructed LR DFA never produces one (GOTO is a function of the
	// subset-construction state set), so this is an ill-formed-grammar
	// signal rather than an ordinary parsing conflict.
	gotoConflicts []GotoConflict
}

func newParsingTable(typ ParsingTableType, states []string, start string, terms, nonTerms []string) *ParsingTable {
	return &ParsingTable{
		Type:         typ,
		States:       states,
		Start:        start,
		Terminals:    terms,
		NonTerminals: nonTerms,
		action:       map[string]map[string][]LRAction{},
		goto_:        map[string]map[string]string{},
	}
}

// AddAction adds act to the set of ACTION entries at (state, term). It
// returns whether act was newly added; adding an entry equal to one already
// present is a no-op (not a conflict), but adding a second, distinct entry
// for the same cell grows the set and is exactly the shift/reduce or
// reduce/reduce conflict that FindConflicts reports.
func (t *ParsingTable) AddAction(state, term string, act LRAction) bool {
	if t.action[state] == nil {
		t.action[state] = map[string][]LRAction{}
	}
	for _, existing := range t.action[state][term] {
		if existing.Equal(act) {
			return false
		}
	}
	t.action[state][term] = append(t.action[state][term], act)
	return true
}

// GetActions returns every ACTION entry recorded at (state, term). A cell
// that was never filled is a NoSuchCell error, which is NOT the same thing
// as a cell holding an explicit error action: the latter was deliberately
// recorded and comes back as an ordinary one-entry set.
func (t *ParsingTable) GetActions(state, term string) ([]LRAction, error) {
	if !util.StringSetOf(t.States).Has(state) {
		return nil, icterrors.NoSuchCellf("no such state %q in parsing table", state)
	}
	if !util.StringSetOf(t.Terminals).Has(term) && term != grammar.EndOfInput {
		return nil, icterrors.WrongCategoryf("%q is not a terminal of this grammar", term)
	}
	entries := t.action[state][term]
	if len(entries) == 0 {
		return nil, icterrors.NoSuchCellf("ACTION[%s, %s] is unfilled", state, term)
	}
	return entries, nil
}

// AddGoto records that GOTO(state, nonTerm) = dest. Unlike ACTION, GOTO is
// not expected to ever hold more than one distinct destination for a
// correctly-formed CFG. A second, distinct destination does not replace the
// first; it is recorded for FindGotoConflicts, which reports it as a sign of an
// ill-formed grammar rather than as an ordinary parsing conflict, since a
// second GOTO entry could never be resolved by a parser regardless of
// lookahead.
func (t *ParsingTable) AddGoto(state, nonTerm, dest string) {
	if t.goto_[state] == nil {
		t.goto_[state] = map[string]string{}
	}
	if existing, ok := t.goto_[state][nonTerm]; ok && existing != dest {
		t.gotoConflicts = append(t.gotoConflicts, GotoConflict{
			State:        state,
			NonTerminal:  nonTerm,
			Destinations: []string{existing, dest},
		})
		return
	}
	t.goto_[state][nonTerm] = dest
}

// GetGoto returns GOTO(state, nonTerm), if defined.
func (t *ParsingTable) GetGoto(state, nonTerm string) (string, error) {
	if !util.StringSetOf(t.States).Has(state) {
		return "", icterrors.NoSuchCellf("no such state %q in parsing table", state)
	}
	if !util.StringSetOf(t.NonTerminals).Has(nonTerm) {
		return "", icterrors.WrongCategoryf("%q is not a non-terminal of this grammar", nonTerm)
	}
	dest, ok := t.goto_[state][nonTerm]
	if !ok {
		return "", icterrors.NoSuchCellf("GOTO[%s, %s] is unfilled", state, nonTerm)
	}
	return dest, nil
}

// Conflict describes more than one ACTION entry recorded at the same cell.
type Conflict struct {
	State       string
	Terminal    string
	Entries     []LRAction
	Description string
}

// GotoConflict describes two different GOTO destinations recorded for the
// same (state, non-terminal) cell. Unlike Conflict, this is never a
// legitimate parsing ambiguity to resolve with lookahead; it signals that
// the CFG or DFA construction produced a non-function GOTO relation.
type GotoConflict struct {
	State        string
	NonTerminal  string
	Destinations []string
}

// FindGotoConflicts returns every GOTO cell that was asked to record more
// than one distinct destination state. The builders in this package never
// produce one for a well-formed grammar; a non-empty result indicates an
// ill-formed CFG rather than an ordinary shift/reduce-style ambiguity.
func (t *ParsingTable) FindGotoConflicts() []GotoConflict {
	return append([]GotoConflict{}, t.gotoConflicts...)
}

// FindConflicts returns every ACTION cell that carries more than one entry,
// in (state, terminal) order for reproducible output. It never resolves a
// conflict or treats one as an error; it is purely descriptive.
func (t *ParsingTable) FindConflicts() []Conflict {
	var conflicts []Conflict

	for _, state := range t.States {
		for _, term := range t.actionColumns() {
			entries := t.action[state][term]
			if len(entries) < 2 {
				continue
			}
			conflicts = append(conflicts, Conflict{
				State:       state,
				Terminal:    term,
				Entries:     append([]LRAction{}, entries...),
				Description: describeLRConflict(entries, term),
			})
		}
	}

	return conflicts
}

func (t *ParsingTable) actionColumns() []string {
	cols := make([]string, 0, len(t.Terminals)+1)
	cols = append(cols, t.Terminals...)
	cols = append(cols, grammar.EndOfInput)
	return cols
}

// FillingCheck reports every empty cell over the table's declared universe
// of states × symbols: ACTION cells for every (state, terminal-or-$) pair
// and GOTO cells for every (state, non-terminal) pair. Unlike a strict
// parser-generator check, this is permissive: an unfilled cell is simply
// reported, not treated as invalid, since an incomplete table is still a
// meaningful artifact to inspect (e.g. an LR(0) table built from a
// non-LR(0) grammar).
func (t *ParsingTable) FillingCheck() (unfilled []string) {
	for _, state := range t.States {
		for _, term := range t.actionColumns() {
			if len(t.action[state][term]) == 0 {
				unfilled = append(unfilled, fmt.Sprintf("ACTION[%s, %s]", state, term))
			}
		}
		for _, nt := range t.NonTerminals {
			if _, ok := t.goto_[state][nt]; !ok {
				unfilled = append(unfilled, fmt.Sprintf("GOTO[%s, %s]", state, nt))
			}
		}
	}
	return unfilled
}

func (t *ParsingTable) String() string {
	cols := t.actionColumns()

	data := [][]string{}

	headers := []string{"S", "|"}
	for _, term := range cols {
		headers = append(headers, fmt.Sprintf("A:%s", term))
	}
	headers = append(headers, "|")
	for _, nt := range t.NonTerminals {
		headers = append(headers, fmt.Sprintf("G:%s", nt))
	}
	data = append(data, headers)

	for _, state := range t.States {
		row := []string{state, "|"}

		for _, term := range cols {
			row = append(row, formatActionCell(t.action[state][term]))
		}

		row = append(row, "|")

		for _, nt := range t.NonTerminals {
			row = append(row, t.goto_[state][nt])
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func formatActionCell(entries []LRAction) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, len(entries))
	for i, act := range entries {
		switch act.Type {
		case LRAccept:
			parts[i] = "acc"
		case LRReduce:
			parts[i] = fmt.Sprintf("r%s -> %s", act.Symbol, act.Production.String())
		case LRShift:
			parts[i] = fmt.Sprintf("s%s", act.State)
		case LRError:
			parts[i] = ""
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, " / ")
}
