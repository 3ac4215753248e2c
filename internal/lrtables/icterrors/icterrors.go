// Package icterrors defines the typed error kinds surfaced by lrtables:
// grammar and DFA validation failures, parsing-table query errors, and I/O
// failures from writing DOT files. Each kind wraps
// an optional underlying error so callers can use errors.Is/errors.As while
// still getting a message tailored to where the failure happened.
package icterrors

import (
	"errors"
	"fmt"
)

// Kind identifies which of the error categories described in the
// specification a kindedError belongs to.
type Kind int

const (
	InvalidGrammar Kind = iota
	AugmentationFailure
	NoSuchCell
	WrongCategory
	SimulatorConfigInvalid
	IoFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidGrammar:
		return "InvalidGrammar"
	case AugmentationFailure:
		return "AugmentationFailure"
	case NoSuchCell:
		return "NoSuchCell"
	case WrongCategory:
		return "WrongCategory"
	case SimulatorConfigInvalid:
		return "SimulatorConfigInvalid"
	case IoFailure:
		return "IoFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type kindedError struct {
	kind Kind
	msg  string
	wrap error
}

func (e *kindedError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *kindedError) Unwrap() error {
	return e.wrap
}

// Is reports whether target is a kindedError of the same Kind, so that
// errors.Is treats any two lrtables errors of the same Kind as matching. It
// never matches an ordinary error from outside this package; to test an
// error against a Kind value, use KindOf.
func (e *kindedError) Is(target error) bool {
	other, ok := target.(*kindedError)
	if !ok {
		return false
	}
	return e.kind == other.kind
}

func newf(kind Kind, format string, a ...interface{}) error {
	return &kindedError{kind: kind, msg: fmt.Sprintf(format, a...)}
}

func wrap(kind Kind, err error, msg string) error {
	return &kindedError{kind: kind, msg: msg, wrap: err}
}

// KindOf returns the Kind of err if it (or something it wraps) is an
// lrtables error, and false otherwise.
func KindOf(err error) (Kind, bool) {
	var ke *kindedError
	if !errors.As(err, &ke) {
		return 0, false
	}
	return ke.kind, true
}

func InvalidGrammarf(format string, a ...interface{}) error {
	return newf(InvalidGrammar, format, a...)
}

func AugmentationFailuref(format string, a ...interface{}) error {
	return newf(AugmentationFailure, format, a...)
}

func NoSuchCellf(format string, a ...interface{}) error {
	return newf(NoSuchCell, format, a...)
}

func WrongCategoryf(format string, a ...interface{}) error {
	return newf(WrongCategory, format, a...)
}

func SimulatorConfigInvalidf(format string, a ...interface{}) error {
	return newf(SimulatorConfigInvalid, format, a...)
}

func WrapIoFailure(err error, format string, a ...interface{}) error {
	return wrap(IoFailure, err, fmt.Sprintf(format, a...))
}
