package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/latinscan/internal/model"
	"github.com/nao1215/latinscan/internal/scansion"
)

// Scanner scans lines and documents with a fixed RuleSet.
// A Scanner is safe for concurrent use.
type Scanner struct {
	pipeline *Pipeline
	logger   *slog.Logger
	workers  int
	recorder Recorder
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithScannerLogger sets the logger for line outcomes and document totals.
func WithScannerLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithWorkers sets the number of lines of a document scanned concurrently.
// The result does not depend on the number of workers.
func WithWorkers(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRecorder sets the recorder that receives scan outcomes.
func WithRecorder(r Recorder) ScannerOption {
	return func(s *Scanner) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewScanner creates a Scanner over rules.
func NewScanner(rules scansion.RuleSet, opts ...ScannerOption) (*Scanner, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	s := &Scanner{
		workers:  1,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.pipeline = NewScanPipeline(rules, WithLogger(s.logger))
	return s, nil
}

// ScanLine scans one line of verse. Use model.NoLineNumber for a line
// outside a document.
//
// Rewrite failures and defective lines are reported through the returned
// Line, not as errors. The error is non-nil only when ctx is cancelled or a
// step breaks the stage order.
func (s *Scanner) ScanLine(ctx context.Context, text string, lineNumber int) (model.Line, error) {
	state := NewState(text, lineNumber)
	if err := s.pipeline.Execute(ctx, state); err != nil {
		return state.Line, err
	}

	switch state.Stage {
	case StageFailed:
		input := text
		var rerr *scansion.RewriteError
		if errors.As(state.Err, &rerr) {
			input = rerr.Input
		}
		s.logger.Error("line failed",
			"line", lineNumber,
			"step", state.FailedStep,
			"input", input,
			"error", state.Err,
		)
		s.recorder.RecordFailure(state.FailedStep)
	case StageDefective:
		s.logger.Warn("line defective",
			"line", lineNumber,
			"text", text,
			"candidates", state.Expanded,
		)
		s.recorder.RecordCandidates(state.Expanded, 0)
	case StageScanned:
		s.recorder.RecordCandidates(state.Expanded, len(state.Candidates))
	}

	line := state.Line
	s.recorder.RecordLine(line.Status())
	return line, nil
}

// ScanDocument scans lines in order and collects them into a document.
// Lines are numbered from 1. Every input line yields exactly one Line in the
// same position, whatever its outcome.
func (s *Scanner) ScanDocument(ctx context.Context, lines []string, name string) (*model.Document, error) {
	start := time.Now()

	scanned, err := s.scanLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	doc := model.NewDocument(name)
	for _, l := range scanned {
		doc.Append(l)
	}

	nScanned, nDefective, _ := doc.Counts()
	s.logger.Info("lines scanned", "document", name, "count", nScanned)
	s.logger.Info("lines defective", "document", name, "count", nDefective)
	s.recorder.RecordDocument(len(lines), time.Since(start))

	return doc, nil
}

func (s *Scanner) scanLines(ctx context.Context, lines []string) ([]model.Line, error) {
	out := make([]model.Line, len(lines))

	if s.workers <= 1 {
		for i, text := range lines {
			l, err := s.ScanLine(ctx, text, i+1)
			if err != nil {
				return nil, err
			}
			out[i] = l
		}
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, text := range lines {
		g.Go(func() error {
			l, err := s.ScanLine(ctx, text, i+1)
			if err != nil {
				return err
			}
			out[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
