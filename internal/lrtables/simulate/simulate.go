// Package simulate provides a generic, alphabet-parametric DFA simulator.
// Unlike the automaton package's DFA[E], which is parametric on the value
// carried by each state (an item set, in the table-construction pipeline),
// the DFA here is parametric on the type of symbol it consumes, so that the
// same simulator can validate a DFA over grammar-symbol names, over runes,
// or over any other comparable alphabet.
//
// The simulator is a standalone collaborator: it does not know about
// grammars, items, or parsing tables. It exists to replay and validate
// automata produced elsewhere, including the ones the core builds.
package simulate

import (
	"fmt"
	"sort"

	"github.com/dekarrin/lrtables/internal/lrtables/icterrors"
	"github.com/dekarrin/lrtables/internal/util"
)

// DFA is a deterministic finite automaton over an alphabet of type T. Unlike
// automaton.DFA[E], the parametric type here is the symbol consumed, not a
// value carried by states; states are always named by string.
type DFA[T comparable] struct {
	Alphabet    []T
	States      []string
	Start       string
	Accepting   []string
	Transitions map[string]map[T]string
}

// Validate checks the invariants a DFA must hold before it can be simulated:
// Start is a declared state, every accepting state is declared, and every
// transition's source, target, and symbol are all declared.
func (d DFA[T]) Validate() error {
	states := util.StringSetOf(d.States)

	if d.Start == "" || !states.Has(d.Start) {
		return icterrors.SimulatorConfigInvalidf("initial state %q is not in the declared state set", d.Start)
	}

	for _, acc := range d.Accepting {
		if !states.Has(acc) {
			return icterrors.SimulatorConfigInvalidf("accepting state %q is not in the declared state set", acc)
		}
	}

	alphabet := util.KeySetOf(d.Alphabet)

	for from, row := range d.Transitions {
		if !states.Has(from) {
			return icterrors.SimulatorConfigInvalidf("transition source %q is not in the declared state set", from)
		}
		for sym, to := range row {
			if !alphabet.Has(sym) {
				return icterrors.SimulatorConfigInvalidf("transition on %v from %q is not in the declared alphabet", sym, from)
			}
			if !states.Has(to) {
				return icterrors.SimulatorConfigInvalidf("transition on %v from %q leads to undeclared state %q", sym, from, to)
			}
		}
	}

	return nil
}

func (d DFA[T]) isAccepting(state string) bool {
	return util.StringSetOf(d.Accepting).Has(state)
}

// Result is the outcome of a single Simulate call: whether the sequence was
// accepted, and the full trace of states visited (with a DFA installed,
// Trace[0] is always Start, and len(Trace) == len(sequence)+1 whenever simulation runs to
// completion rather than stalling on an unknown transition). The trace
// accumulates the entire run; it is never reset or truncated mid-simulation.
type Result struct {
	Accepted bool
	Trace    []string
}

// Simulator replays sequences against a single installed DFA. The zero
// value has no DFA installed; Update must be called before Simulate.
type Simulator[T comparable] struct {
	dfa    DFA[T]
	hasDFA bool
}

// Update validates dfa and installs it as the configuration future Simulate
// calls run against. It returns the validation error from DFA.Validate
// without installing the DFA if dfa is invalid.
func (s *Simulator[T]) Update(dfa DFA[T]) error {
	if err := dfa.Validate(); err != nil {
		return err
	}
	s.dfa = dfa
	s.hasDFA = true
	return nil
}

// Simulate runs sequence against the installed DFA and reports whether it
// is accepted. An empty sequence is always rejected, per policy, not
// treated as an error. Encountering a state with no outgoing transitions,
// or a symbol absent from the current state's transition row, is also a
// rejection rather than an error; the trace records however far the
// simulation got before stalling.
func (s Simulator[T]) Simulate(sequence []T) Result {
	if !s.hasDFA {
		return Result{Accepted: false}
	}
	if len(sequence) == 0 {
		return Result{Accepted: false, Trace: []string{s.dfa.Start}}
	}

	current := s.dfa.Start
	trace := []string{current}

	for _, sym := range sequence {
		row, ok := s.dfa.Transitions[current]
		if !ok {
			return Result{Accepted: false, Trace: trace}
		}
		next, ok := row[sym]
		if !ok {
			return Result{Accepted: false, Trace: trace}
		}
		current = next
		trace = append(trace, current)
	}

	return Result{Accepted: s.dfa.isAccepting(current), Trace: trace}
}

// GenerateAccepted enumerates every sequence of length <= maxLen accepted by
// the installed DFA, via depth-first search over the transition graph. The
// alphabet is visited in a fixed order (sorted by each symbol's %v
// representation) at every step so the result is reproducible across runs.
// The empty sequence is never included, matching Simulate's policy that
// empty input is always rejected.
func (s Simulator[T]) GenerateAccepted(maxLen int) [][]T {
	if !s.hasDFA || maxLen <= 0 {
		return nil
	}

	orderedAlphabet := make([]T, len(s.dfa.Alphabet))
	copy(orderedAlphabet, s.dfa.Alphabet)
	sort.Slice(orderedAlphabet, func(i, j int) bool {
		return fmt.Sprintf("%v", orderedAlphabet[i]) < fmt.Sprintf("%v", orderedAlphabet[j])
	})

	var accepted [][]T
	var walk func(state string, prefix []T)
	walk = func(state string, prefix []T) {
		if len(prefix) > 0 && s.dfa.isAccepting(state) {
			cp := make([]T, len(prefix))
			copy(cp, prefix)
			accepted = append(accepted, cp)
		}
		if len(prefix) >= maxLen {
			return
		}
		row, ok := s.dfa.Transitions[state]
		if !ok {
			return
		}
		for _, sym := range orderedAlphabet {
			next, ok := row[sym]
			if !ok {
				continue
			}
			walk(next, append(prefix, sym))
		}
	}
	walk(s.dfa.Start, nil)

	return accepted
}
