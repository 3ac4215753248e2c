package automaton

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dekarrin/lrtables/internal/lrtables/icterrors"
	"github.com/dekarrin/lrtables/internal/util"
)

// DOTString renders the DFA in Graphviz DOT format. States are emitted in
// discovery order and each state's out-edges in sorted symbol order, so two
// calls on equal DFAs produce byte-identical output; call NumberStates first
// to get the canonical I0, I1, … node names.
func (dfa DFA[E]) DOTString() string {
	var sb strings.Builder

	sb.WriteString("digraph {\n")
	sb.WriteString("\trankdir=LR;\n")

	for _, name := range dfa.StatesInOrder() {
		st := dfa.states[name]
		shape := "circle"
		if st.accepting {
			shape = "doublecircle"
		}
		sb.WriteString(fmt.Sprintf("\t%s [shape=%s];\n", dotID(name), shape))
	}

	sb.WriteString("\t__start [shape=point];\n")
	sb.WriteString(fmt.Sprintf("\t__start -> %s;\n", dotID(dfa.Start)))

	for _, name := range dfa.StatesInOrder() {
		st := dfa.states[name]
		for _, sym := range util.OrderedKeys(st.transitions) {
			t := st.transitions[sym]
			sb.WriteString(fmt.Sprintf("\t%s -> %s [label=%s];\n", dotID(name), dotID(t.next), dotID(dotLabel(sym))))
		}
	}

	sb.WriteString("}\n")

	return sb.String()
}

// DOTString renders the NFA in Graphviz DOT format. ε-moves are labeled "ε".
// States are emitted in discovery order and out-edges in sorted symbol order
// (then sorted target order within a symbol), so output is stable across
// runs.
func (nfa NFA[E]) DOTString() string {
	var sb strings.Builder

	accepting := nfa.AcceptingStates()

	sb.WriteString("digraph {\n")
	sb.WriteString("\trankdir=LR;\n")

	ordered := nfa.statesInOrder()

	for _, name := range ordered {
		shape := "circle"
		if accepting.Has(name) {
			shape = "doublecircle"
		}
		sb.WriteString(fmt.Sprintf("\t%s [shape=%s];\n", dotID(name), shape))
	}

	sb.WriteString("\t__start [shape=point];\n")
	sb.WriteString(fmt.Sprintf("\t__start -> %s;\n", dotID(nfa.Start)))

	for _, name := range ordered {
		st := nfa.states[name]
		for _, sym := range util.OrderedKeys(st.transitions) {
			nexts := make([]string, len(st.transitions[sym]))
			for i, t := range st.transitions[sym] {
				nexts[i] = t.next
			}
			sort.Strings(nexts)

			for _, next := range nexts {
				sb.WriteString(fmt.Sprintf("\t%s -> %s [label=%s];\n", dotID(name), dotID(next), dotID(dotLabel(sym))))
			}
		}
	}

	sb.WriteString("}\n")

	return sb.String()
}

// WriteDOTFile writes dot to a file at path, creating or truncating it. The
// file is closed on every return path.
func WriteDOTFile(path string, dot string) error {
	f, err := os.Create(path)
	if err != nil {
		return icterrors.WrapIoFailure(err, "creating DOT file %q", path)
	}
	defer f.Close()

	if _, err := f.WriteString(dot); err != nil {
		return icterrors.WrapIoFailure(err, "writing DOT file %q", path)
	}

	return nil
}

func (nfa NFA[E]) statesInOrder() []string {
	return util.OrderedKeysByRank(nfa.states, func(s NFAState[E]) uint64 { return s.ordering })
}

// dotID quotes a state or label name so that names containing spaces, dots,
// or arrows (item-string state names before NumberStates is called) stay
// valid DOT tokens.
func dotID(name string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(name, `\`, `\\`), `"`, `\"`) + `"`
}

func dotLabel(sym string) string {
	if sym == "" {
		return "ε"
	}
	return sym
}
