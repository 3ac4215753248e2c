package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
)

// LRActionType identifies what kind of step an LRAction performs.
type LRActionType int

const (
	LRShift LRActionType = iota
	LRReduce
	LRAccept
	LRError
)

// LRAction is a single ACTION-cell entry. A ParsingTable cell holds a slice
// of these rather than one resolved LRAction; more than one entry at the
// same cell is a parsing conflict, described by describeLRConflict rather
// than rejected at construction time.
type LRAction struct {
	Type LRActionType

	// Production is used when Type is LRReduce. It is the production which
	// should be reduced; the β of A -> β.
	Production grammar.Production

	// Symbol is used when Type is LRReduce. It is the symbol to reduce the
	// production to; the A of A -> β.
	Symbol string

	// State is the state to shift to. It is used only when Type is LRShift.
	State string
}

func (act LRAction) String() string {
	switch act.Type {
	case LRAccept:
		return "ACTION<accept>"
	case LRError:
		return "ACTION<error>"
	case LRReduce:
		return fmt.Sprintf("ACTION<reduce %s -> %s>", act.Symbol, act.Production.String())
	case LRShift:
		return fmt.Sprintf("ACTION<shift %s>", act.State)
	default:
		return "ACTION<unknown>"
	}
}

func (act LRAction) Equal(o any) bool {
	other, ok := o.(LRAction)
	if !ok {
		otherPtr, ok := o.(*LRAction)
		if !ok {
			return false
		}
		if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if act.Type != other.Type {
		return false
	} else if !act.Production.Equal(other.Production) {
		return false
	} else if act.State != other.State {
		return false
	} else if act.Symbol != other.Symbol {
		return false
	}

	return true
}

// describeLRConflict renders a human-readable description of a conflicting
// ACTION cell for Conflict.Description. It never chooses a winner; it only
// names what kind of conflict the entries represent.
func describeLRConflict(entries []LRAction, onInput string) string {
	if len(entries) == 2 {
		act1, act2 := entries[0], entries[1]

		if (act1.Type == LRReduce && act2.Type == LRShift) || (act1.Type == LRShift && act2.Type == LRReduce) {
			reduceAct := act1
			if act1.Type != LRReduce {
				reduceAct = act2
			}
			reduceRule := reduceAct.Symbol + " -> " + reduceAct.Production.String()
			return fmt.Sprintf("shift/reduce conflict on terminal %q (shift or reduce %s)", onInput, reduceRule)
		}
		if act1.Type == LRReduce && act2.Type == LRReduce {
			reduce1 := act1.Symbol + " -> " + act1.Production.String()
			reduce2 := act2.Symbol + " -> " + act2.Production.String()
			return fmt.Sprintf("reduce/reduce conflict on terminal %q (reduce %s or reduce %s)", onInput, reduce1, reduce2)
		}
		if act1.Type == LRAccept || act2.Type == LRAccept {
			nonAccept := act2
			if act2.Type == LRAccept {
				nonAccept = act1
			}
			if nonAccept.Type == LRShift {
				return fmt.Sprintf("accept/shift conflict on terminal %q", onInput)
			}
			if nonAccept.Type == LRReduce {
				reduce := nonAccept.Symbol + " -> " + nonAccept.Production.String()
				return fmt.Sprintf("accept/reduce conflict on terminal %q (accept or reduce %s)", onInput, reduce)
			}
		}
		if act1.Type == LRShift && act2.Type == LRShift {
			return fmt.Sprintf("shift/shift conflict on terminal %q", onInput)
		}
	}

	descs := make([]string, len(entries))
	for i, act := range entries {
		descs[i] = act.String()
	}
	return fmt.Sprintf("conflict on terminal %q (%s)", onInput, strings.Join(descs, " or "))
}
