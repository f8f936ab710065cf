package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/latinscan/internal/config"
	"github.com/nao1215/latinscan/internal/grammar"
	"github.com/nao1215/latinscan/internal/rewrite"
	"github.com/nao1215/latinscan/internal/scansion"
)

func defaultRuleSet(t *testing.T) scansion.RuleSet {
	t.Helper()

	a, err := grammar.Default()
	if err != nil {
		t.Fatalf("grammar.Default() error = %v", err)
	}
	rules, err := scansion.LoadRuleSet(a, config.DefaultRuleNames())
	if err != nil {
		t.Fatalf("LoadRuleSet() error = %v", err)
	}
	return rules
}

func TestNewScanPipeline(t *testing.T) {
	t.Parallel()

	p := NewScanPipeline(defaultRuleSet(t), WithLogger(slog.New(slog.DiscardHandler)))

	want := []string{"normalize", "pronounce", "expand", "meter", "select"}
	if diff := cmp.Diff(want, p.StepNames()); diff != "" {
		t.Errorf("StepNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestStepsAdvanceTheState(t *testing.T) {
	t.Parallel()

	p := NewScanPipeline(defaultRuleSet(t), WithLogger(slog.New(slog.DiscardHandler)))
	state := NewState("Arma virumque canō, Trojae quī prīmus ab ōris", 1)

	wantStages := []Stage{StageNormalized, StagePronounced, StageExpanded, StageFiltered, StageScanned}
	for i, step := range p.steps {
		if err := step.Do(context.Background(), state); err != nil {
			t.Fatalf("%s: Do() error = %v", step.Name(), err)
		}
		if state.Stage != wantStages[i] {
			t.Fatalf("%s: Stage = %v, want %v", step.Name(), state.Stage, wantStages[i])
		}
	}

	if state.Baseline != "arma wirumkwe kanoː trojjaj kwiː priːmu sa boːris" {
		t.Errorf("Baseline = %q", state.Baseline)
	}
	if state.Expanded != 1 {
		t.Errorf("Expanded = %d, want 1", state.Expanded)
	}
	if feet, _ := state.Line.FeetText(); feet != "DDSSDT" {
		t.Errorf("Feet = %q, want DDSSDT", feet)
	}
}

func TestStepsRejectUnexpectedStage(t *testing.T) {
	t.Parallel()

	p := NewScanPipeline(defaultRuleSet(t), WithLogger(slog.New(slog.DiscardHandler)))

	for _, step := range p.steps[1:] {
		t.Run(step.Name(), func(t *testing.T) {
			t.Parallel()

			err := step.Do(context.Background(), NewState("arma", 1))
			if !errors.Is(err, ErrUnexpectedStage) {
				t.Errorf("Do() error = %v, want ErrUnexpectedStage", err)
			}
		})
	}
}

func TestMeterStepMarksDefective(t *testing.T) {
	t.Parallel()

	rules := defaultRuleSet(t)
	step := NewMeterStep(scansion.NewMeterFilter(rules.Meter))

	state := NewState("Hic cursus fuit,", 1)
	state.Stage = StageExpanded
	state.Candidates = rewrite.Lattice{{Text: "hik kursus fuit"}}

	if err := step.Do(context.Background(), state); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if state.Stage != StageDefective || !state.Line.Defective {
		t.Errorf("state = %v, defective = %v", state.Stage, state.Line.Defective)
	}
}

func TestSelectStepWithoutSurvivors(t *testing.T) {
	t.Parallel()

	rules := defaultRuleSet(t)
	step := NewSelectStep(scansion.NewMeterFilter(rules.Meter))

	state := NewState("arma", 1)
	state.Stage = StageFiltered
	if err := step.Do(context.Background(), state); !errors.Is(err, ErrNoSurvivors) {
		t.Errorf("Do() error = %v, want ErrNoSurvivors", err)
	}
}
