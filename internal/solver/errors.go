package solver

import "errors"

// Error taxonomy (spec.md §7). Each kind is a distinct type so callers can
// dispatch with errors.As instead of an inheritance hierarchy.

// ErrSessionClosed is returned by send/await on a session whose child
// process has already exited or been closed.
var ErrSessionClosed = errors.New("solver: session closed")

// ErrCancelled is returned by AwaitResponse when the caller's cancellation
// token trips while a response is outstanding.
var ErrCancelled = errors.New("solver: cancelled")

// ProcessStartFailure indicates the child executable was missing or could
// not be started. Fatal to the session.
type ProcessStartFailure struct {
	Command string
	Cause   error
}

func (e *ProcessStartFailure) Error() string {
	return "solver: failed to start " + e.Command + ": " + e.Cause.Error()
}

func (e *ProcessStartFailure) Unwrap() error { return e.Cause }

// ParseError indicates malformed S-expression input. Logged and reported
// via the error handler; the current AwaitResponse resolves to (nil, nil).
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return "solver: parse error: " + e.Msg }

// SoftSolverError is a benign textual error (model unavailable, context
// unsat, ...): treated as "no reply" by the classifier.
type SoftSolverError struct {
	Msg string
}

func (e *SoftSolverError) Error() string { return "solver: soft error: " + e.Msg }

// HardSolverError is any other "(error ...)" reply from the solver.
type HardSolverError struct {
	Msg string
}

func (e *HardSolverError) Error() string { return "solver: error: " + e.Msg }
