package pipeline

import (
	"github.com/nao1215/latinscan/internal/model"
	"github.com/nao1215/latinscan/internal/rewrite"
)

// Stage is the position of a line in the scan state machine.
type Stage int

const (
	// StageStart is the stage of a line that has not been processed.
	StageStart Stage = iota

	// StageNormalized means the normalized text is set.
	StageNormalized

	// StagePronounced means the baseline pronunciation is known.
	StagePronounced

	// StageExpanded means the pronunciation variants are known.
	StageExpanded

	// StageFiltered means the variants that scan are known and there is at
	// least one.
	StageFiltered

	// StageScanned is terminal: a pronunciation was selected.
	StageScanned

	// StageDefective is terminal: no variant scans.
	StageDefective

	// StageFailed is terminal: a rewrite step produced no output.
	StageFailed
)

// String returns the name of the stage.
func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageNormalized:
		return "normalized"
	case StagePronounced:
		return "pronounced"
	case StageExpanded:
		return "expanded"
	case StageFiltered:
		return "filtered"
	case StageScanned:
		return "scanned"
	case StageDefective:
		return "defective"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no step can advance the stage.
func (s Stage) Terminal() bool {
	return s == StageScanned || s == StageDefective || s == StageFailed
}

// State is the working state of one line while it is being scanned.
// Steps fill in Line as they complete. Intermediate results that do not
// belong in the final record live beside it.
type State struct {
	// Line is the record under construction.
	Line model.Line

	// Stage is the last stage the line reached.
	Stage Stage

	// Baseline is the pronunciation before poetic license.
	Baseline string

	// Candidates holds the variants, then the variants that scan.
	Candidates rewrite.Lattice

	// Expanded is the number of variants before meter filtering.
	Expanded int

	// FailedStep names the step that failed when Stage is StageFailed.
	FailedStep string

	// Err is the failure of the step named by FailedStep.
	Err error
}

// NewState returns the state of an unprocessed line.
func NewState(text string, lineNumber int) *State {
	return &State{
		Line:  model.NewLine(text, lineNumber),
		Stage: StageStart,
	}
}
