package pipeline

import "errors"

var (
	// ErrUnexpectedStage is returned by a step run on a line that is not at
	// the stage the step expects.
	ErrUnexpectedStage = errors.New("unexpected stage")

	// ErrNoSurvivors is returned by the select step when the filtered
	// candidate set is empty.
	ErrNoSurvivors = errors.New("no candidate survived the meter filter")
)
