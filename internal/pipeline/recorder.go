package pipeline

import (
	"time"

	"github.com/nao1215/latinscan/internal/model"
)

// Recorder receives scan outcomes, typically for metrics.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// RecordLine is called once per scanned line.
	RecordLine(status model.Status)

	// RecordCandidates is called for every line that reached the meter
	// filter, with the number of variants before and after filtering.
	RecordCandidates(expanded, surviving int)

	// RecordFailure is called for every failed line with the failing step.
	RecordFailure(step string)

	// RecordDocument is called once per scanned document.
	RecordDocument(lines int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordLine(model.Status) {}
func (nopRecorder) RecordCandidates(int, int) {}
func (nopRecorder) RecordFailure(string) {}
func (nopRecorder) RecordDocument(int, time.Duration) {}
