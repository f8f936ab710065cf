package scansion

import (
	"fmt"

	"github.com/nao1215/latinscan/internal/config"
	"github.com/nao1215/latinscan/internal/rewrite"
)

// meterName is the name of the composed meter relation.
const meterName = "METER"

// RuleSet bundles the relations used by a scan.
// A RuleSet is immutable once loaded and safe for concurrent use.
type RuleSet struct {
	// Normalize maps raw text to canonical text.
	Normalize rewrite.Relation

	// Pronounce maps canonical text to a baseline pronunciation.
	Pronounce rewrite.Relation

	// Variable maps a pronunciation to its licensed variants.
	Variable rewrite.Relation

	// Meter maps a pronunciation to its hexameter analyses and has no
	// output for a pronunciation that does not scan.
	Meter rewrite.Relation
}

// Validate reports whether every relation is set.
func (r RuleSet) Validate() error {
	switch {
	case r.Normalize == nil:
		return fmt.Errorf("%w: normalize", ErrIncompleteRuleSet)
	case r.Pronounce == nil:
		return fmt.Errorf("%w: pronounce", ErrIncompleteRuleSet)
	case r.Variable == nil:
		return fmt.Errorf("%w: variable", ErrIncompleteRuleSet)
	case r.Meter == nil:
		return fmt.Errorf("%w: meter", ErrIncompleteRuleSet)
	}
	return nil
}

type ruleSetOptions struct {
	limit int
}

// RuleSetOption configures LoadRuleSet.
type RuleSetOption func(*ruleSetOptions)

// WithMeterLimit sets the candidate limit of the composed meter relation.
func WithMeterLimit(n int) RuleSetOption {
	return func(o *ruleSetOptions) {
		if n > 0 {
			o.limit = n
		}
	}
}

// LoadRuleSet looks up the relations named by names in the archive.
//
// The meter relation is names.Meter followed by names.Hexameter when Meter
// is set, and otherwise the composition of Syllable, Weight, Foot (if set)
// and Hexameter.
func LoadRuleSet(a *rewrite.Archive, names config.RuleNames, opts ...RuleSetOption) (RuleSet, error) {
	o := ruleSetOptions{limit: rewrite.DefaultCandidateLimit}
	for _, opt := range opts {
		opt(&o)
	}

	if err := names.Validate(); err != nil {
		return RuleSet{}, fmt.Errorf("%w: %w", ErrMissingRule, err)
	}

	lookup := func(keys ...string) ([]rewrite.Relation, error) {
		rels := make([]rewrite.Relation, 0, len(keys))
		for _, key := range keys {
			if key == "" {
				continue
			}
			rel, err := a.Relation(key)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not defined in %s", ErrMissingRule, key, a.Name())
			}
			rels = append(rels, rel)
		}
		return rels, nil
	}

	front, err := lookup(names.Normalize, names.Pronounce, names.Variable)
	if err != nil {
		return RuleSet{}, err
	}

	meterKeys := []string{names.Syllable, names.Weight, names.Foot, names.Hexameter}
	if names.Meter != "" {
		meterKeys = []string{names.Meter, names.Hexameter}
	}
	meter, err := lookup(meterKeys...)
	if err != nil {
		return RuleSet{}, err
	}

	return RuleSet{
		Normalize: front[0],
		Pronounce: front[1],
		Variable:  front[2],
		Meter:     rewrite.Compose(meterName, meter...).WithCompositionLimit(o.limit),
	}, nil
}
