package scansion

import (
	"errors"
	"fmt"
)

// Step names reported in RewriteError.
const (
	StepNormalize = "normalize"
	StepPronounce = "pronounce"
	StepExpand    = "expand"
)

var (
	// ErrRewriteFailure matches every RewriteError through errors.Is.
	ErrRewriteFailure = errors.New("rewrite failure")

	// ErrMissingRule is returned when the rule archive lacks a relation the
	// scanner needs.
	ErrMissingRule = errors.New("missing rule")

	// ErrIncompleteRuleSet is returned when a RuleSet has an unset relation.
	ErrIncompleteRuleSet = errors.New("incomplete rule set")
)

// RewriteError reports that a relation produced no usable output for a
// string. It is local to one line and never aborts a document scan.
type RewriteError struct {
	// Step is the stage that failed.
	Step string

	// Input is the string the relation was applied to.
	Input string

	// Err is the underlying engine error.
	Err error
}

// Error implements error.
func (e *RewriteError) Error() string {
	return fmt.Sprintf("%s failed on %q: %v", e.Step, e.Input, e.Err)
}

// Unwrap returns the underlying engine error.
func (e *RewriteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRewriteFailure.
func (e *RewriteError) Is(target error) bool {
	return target == ErrRewriteFailure
}

func newRewriteError(step, input string, err error) *RewriteError {
	return &RewriteError{Step: step, Input: input, Err: err}
}
