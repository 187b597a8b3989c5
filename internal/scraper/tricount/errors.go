package tricount

import (
	"errors"
	"fmt"
)

var (
	// ErrElementNotLoaded marks a probe that timed out. Recoverable: the
	// classifier falls through to less specific screens and the navigator
	// falls back to a reset.
	ErrElementNotLoaded = errors.New("element not loaded")

	// ErrUnrecognizedPage means the session is on the site but no known
	// screen's probes matched.
	ErrUnrecognizedPage = errors.New("page matches no known screen")

	// ErrFormUnreachable aborts the whole run: continuing past an expense
	// that could not even be started is worse than stopping.
	ErrFormUnreachable = errors.New("expense form unreachable")
)

// InvalidURLError means the session is not on the target site at all.
type InvalidURLError struct {
	Expected string
	Actual   string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url: want address containing %q, got %q", e.Expected, e.Actual)
}

// FieldParseError reports malformed amount or date text encountered during
// extraction or equivalence comparison.
type FieldParseError struct {
	Field string
	Value string
	Cause error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("bad %s field %q: %v", e.Field, e.Value, e.Cause)
}

func (e *FieldParseError) Unwrap() error {
	return e.Cause
}

// SubmissionError reports a failure while filling or saving the expense
// form. The submission must be considered incomplete.
type SubmissionError struct {
	Op    string
	Cause error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission %s failed: %v", e.Op, e.Cause)
}

func (e *SubmissionError) Unwrap() error {
	return e.Cause
}
