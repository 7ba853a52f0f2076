package pegmatch

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLoop is the cause of the fault raised when the inner
	// rule of a repetition succeeds without consuming input
	ErrEmptyLoop = errors.New("inner rule matched empty")

	// ErrInvalidRule is the cause of construction faults
	ErrInvalidRule = errors.New("invalid rule")
)

// ParseError is a recoverable error found during a parse run.  It's
// recorded in the run's error list and doesn't abort the run.
type ParseError struct {
	// Index is the code unit offset where the error happened
	Index int

	// Position is the line/column version of Index
	Position Position

	Message string

	// Path is the chain of matcher labels from the root to the
	// matcher that produced the error
	Path string

	// Cause is the error returned by the action, if any
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s @ %s (%s)", e.Message, e.Position, e.Path)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func newActionError(ctx *MatcherContext, cause error) *ParseError {
	index := ctx.CurrentIndex()
	return &ParseError{
		Index:    index,
		Position: ctx.Input().Position(index),
		Message:  cause.Error(),
		Path:     ctx.Path(),
		Cause:    cause,
	}
}

// GrammarError reports a broken grammar.  It's returned when rules
// are built with invalid arguments, and it's what a run fails with
// when a grammar can't terminate (a repetition over a rule that
// matches empty).
type GrammarError struct {
	// Rule is the label, or the full path during a run, of the
	// offending rule
	Rule    string
	Message string
	Err     error
}

func (e *GrammarError) Error() string {
	if e.Rule == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func (e *GrammarError) Unwrap() error { return e.Err }

func invalidRule(rule, format string, args ...any) *GrammarError {
	return &GrammarError{Rule: rule, Message: fmt.Sprintf(format, args...), Err: ErrInvalidRule}
}

// throwEmptyLoop aborts the run.  ParseRunner recovers the panic and
// returns the error to its caller.
func throwEmptyLoop(ctx *MatcherContext, kind string) {
	panic(&GrammarError{
		Rule:    ctx.Path(),
		Message: fmt.Sprintf("the inner rule of %s must not allow empty matches", kind),
		Err:     ErrEmptyLoop,
	})
}
