package pipeline

import (
	"context"
	"fmt"

	"github.com/nao1215/latinscan/internal/model"
	"github.com/nao1215/latinscan/internal/scansion"
)

// NormalizeStep sets the normalized text of a line.
type NormalizeStep struct {
	normalizer *scansion.Normalizer
}

// NewNormalizeStep creates a NormalizeStep.
func NewNormalizeStep(n *scansion.Normalizer) *NormalizeStep {
	return &NormalizeStep{normalizer: n}
}

// Name implements Step.
func (s *NormalizeStep) Name() string {
	return scansion.StepNormalize
}

// Do implements Step.
func (s *NormalizeStep) Do(_ context.Context, state *State) error {
	if err := expectStage(state, StageStart); err != nil {
		return err
	}
	out, err := s.normalizer.Normalize(state.Line.Text)
	if err != nil {
		return err
	}
	state.Line.Normalized = model.StringPtr(out)
	state.Stage = StageNormalized
	return nil
}

// PronounceStep computes the baseline pronunciation.
type PronounceStep struct {
	pronouncer *scansion.Pronouncer
}

// NewPronounceStep creates a PronounceStep.
func NewPronounceStep(p *scansion.Pronouncer) *PronounceStep {
	return &PronounceStep{pronouncer: p}
}

// Name implements Step.
func (s *PronounceStep) Name() string {
	return scansion.StepPronounce
}

// Do implements Step.
func (s *PronounceStep) Do(_ context.Context, state *State) error {
	if err := expectStage(state, StageNormalized); err != nil {
		return err
	}
	normalized, _ := state.Line.NormalizedText()
	out, err := s.pronouncer.Pronounce(normalized)
	if err != nil {
		return err
	}
	state.Baseline = out
	state.Stage = StagePronounced
	return nil
}

// ExpandStep enumerates the pronunciation variants.
type ExpandStep struct {
	expander *scansion.VariantExpander
}

// NewExpandStep creates an ExpandStep.
func NewExpandStep(e *scansion.VariantExpander) *ExpandStep {
	return &ExpandStep{expander: e}
}

// Name implements Step.
func (s *ExpandStep) Name() string {
	return scansion.StepExpand
}

// Do implements Step.
func (s *ExpandStep) Do(_ context.Context, state *State) error {
	if err := expectStage(state, StagePronounced); err != nil {
		return err
	}
	out, err := s.expander.Expand(state.Baseline)
	if err != nil {
		return err
	}
	state.Candidates = out
	state.Expanded = len(out)
	state.Stage = StageExpanded
	return nil
}

// MeterStep keeps the variants that scan. It is the only step that marks a
// line defective.
type MeterStep struct {
	filter *scansion.MeterFilter
}

// NewMeterStep creates a MeterStep.
func NewMeterStep(f *scansion.MeterFilter) *MeterStep {
	return &MeterStep{filter: f}
}

// Name implements Step.
func (s *MeterStep) Name() string {
	return "meter"
}

// Do implements Step.
func (s *MeterStep) Do(_ context.Context, state *State) error {
	if err := expectStage(state, StageExpanded); err != nil {
		return err
	}
	state.Candidates = s.filter.Filter(state.Candidates)
	if state.Candidates.Empty() {
		state.Line.Defective = true
		state.Stage = StageDefective
		return nil
	}
	state.Stage = StageFiltered
	return nil
}

// SelectStep picks the preferred pronunciation and its foot analysis.
type SelectStep struct {
	filter *scansion.MeterFilter
}

// NewSelectStep creates a SelectStep. The filter supplies the foot analysis
// of the selected pronunciation.
func NewSelectStep(f *scansion.MeterFilter) *SelectStep {
	return &SelectStep{filter: f}
}

// Name implements Step.
func (s *SelectStep) Name() string {
	return "select"
}

// Do implements Step.
func (s *SelectStep) Do(_ context.Context, state *State) error {
	if err := expectStage(state, StageFiltered); err != nil {
		return err
	}
	pron, ok := scansion.Select(state.Candidates)
	if !ok {
		return ErrNoSurvivors
	}
	state.Line.Pronunciation = model.StringPtr(pron)
	if feet, ok := s.filter.Analyze(pron); ok {
		state.Line.Feet = model.StringPtr(feet)
	}
	state.Stage = StageScanned
	return nil
}

// NewScanPipeline builds the pipeline of the five scansion steps over rules.
func NewScanPipeline(rules scansion.RuleSet, opts ...Option) *Pipeline {
	p := New(opts...)
	filter := scansion.NewMeterFilter(rules.Meter, scansion.WithLogger(p.logger))
	p.AddSteps(
		NewNormalizeStep(scansion.NewNormalizer(rules.Normalize)),
		NewPronounceStep(scansion.NewPronouncer(rules.Pronounce)),
		NewExpandStep(scansion.NewVariantExpander(rules.Variable)),
		NewMeterStep(filter),
		NewSelectStep(filter),
	)
	return p
}

func expectStage(state *State, want Stage) error {
	if state.Stage != want {
		return fmt.Errorf("%w: line is %s, want %s", ErrUnexpectedStage, state.Stage, want)
	}
	return nil
}
