// Package mcvierr defines the error taxonomy shared by every planner
// component, so that a fatal error raised deep in the belief tree can be
// told apart from a normal, expected termination (TraversalEnded, which is
// never represented as an error — see tree.Tree.ChooseObservation).
package mcvierr

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal planner error per spec §7.
type Kind int

const (
	// InvalidArgument marks a caller mistake: non-finite bound, negative
	// depth, an epsilon outside [0, 1), and similar.
	InvalidArgument Kind = iota
	// SimulatorViolation marks a Simulator that broke its contract:
	// probabilities that don't sum to one, an out-of-range state/action/
	// observation, and similar.
	SimulatorViolation
	// BudgetExceeded marks a planner run that hit max_computation_ms
	// before the bound gap converged. Callers receive the best FSC built
	// so far alongside this error. A run that reaches max_iter without
	// converging returns no error and no other non-converged signal.
	BudgetExceeded
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case SimulatorViolation:
		return "SimulatorViolation"
	case BudgetExceeded:
		return "BudgetExceeded"
	default:
		return "Unknown"
	}
}

// Error is a fatal planner error tagged with its Kind so callers can branch
// on errors.As without string-matching the message.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with the given Kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
