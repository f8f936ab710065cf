package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/latinscan/internal/scansion"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, each advancing the state left by the
// previous one.
type Step interface {
	// Do executes the pipeline step.
	// A *scansion.RewriteError ends the line as failed; any other error
	// aborts the scan.
	Do(ctx context.Context, state *State) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// A Pipeline holds no per-line state and may be shared by goroutines once
// its steps are added.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps in sequence until the state reaches a terminal
// stage. Context cancellation is checked before each step.
//
// A rewrite failure marks the state as failed and is not returned. Any other
// step error also marks the state as failed and is returned, as is the
// context error on cancellation.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for _, step := range p.steps {
		if state.Stage.Terminal() {
			break
		}

		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"line", state.Line.LineNumber,
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		if err := step.Do(ctx, state); err != nil {
			state.Stage = StageFailed
			state.FailedStep = step.Name()
			state.Err = err
			if errors.Is(err, scansion.ErrRewriteFailure) {
				return nil
			}
			p.logger.Error("step failed",
				"step", step.Name(),
				"line", state.Line.LineNumber,
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"line", state.Line.LineNumber,
			"stage", state.Stage.String(),
		)
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
