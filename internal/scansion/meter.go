package scansion

import (
	"log/slog"

	"github.com/nao1215/latinscan/internal/rewrite"
)

// MeterFilter keeps the pronunciations that scan.
type MeterFilter struct {
	rel    rewrite.Relation
	logger *slog.Logger
}

// MeterFilterOption configures a MeterFilter.
type MeterFilterOption func(*MeterFilter)

// WithLogger sets the logger for rejected candidates.
func WithLogger(logger *slog.Logger) MeterFilterOption {
	return func(f *MeterFilter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewMeterFilter returns a MeterFilter over the composed meter relation.
func NewMeterFilter(rel rewrite.Relation, opts ...MeterFilterOption) *MeterFilter {
	f := &MeterFilter{
		rel:    rel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Filter returns the candidates the meter relation accepts, in their
// original order. A survivor's weight is its variant weight plus the weight
// of its cheapest analysis. A candidate whose analysis fails is dropped and
// logged at Warn. An empty result means the line is defective.
func (f *MeterFilter) Filter(candidates rewrite.Lattice) rewrite.Lattice {
	out, err := rewrite.Intersect(candidates, f.rel)
	if err != nil {
		f.logger.Warn("meter analysis failed", "error", err)
	}
	return out
}

// Analyze returns the cheapest metrical analysis of pron, one letter per
// foot. The boolean is false when pron does not scan.
func (f *MeterFilter) Analyze(pron string) (string, bool) {
	outs, err := f.rel.Apply(pron)
	if err != nil {
		f.logger.Debug("meter analysis failed", "pronunciation", pron, "error", err)
		return "", false
	}
	best, ok := outs.Shortest()
	return best.Text, ok
}
