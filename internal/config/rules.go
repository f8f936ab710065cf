package config

import "fmt"

// Default archive keys.
const (
	DefaultNormalizeRule = "NORMALIZE"
	DefaultPronounceRule = "PRONOUNCE"
	DefaultVariableRule  = "VARIABLE"
	DefaultSyllableRule  = "SYLLABLE"
	DefaultWeightRule    = "WEIGHT"
	DefaultFootRule      = "FOOT"
	DefaultHexameterRule = "HEXAMETER"
)

// RuleNames holds the archive keys of the relations the scanner uses.
//
// Meter, when set, names a pre-combined relation that replaces the
// Syllable, Weight and Foot sequence.
type RuleNames struct {
	Normalize string `yaml:"normalize,omitempty"`
	Pronounce string `yaml:"pronounce,omitempty"`
	Variable  string `yaml:"variable,omitempty"`
	Syllable  string `yaml:"syllable,omitempty"`
	Weight    string `yaml:"weight,omitempty"`
	Foot      string `yaml:"foot,omitempty"`
	Meter     string `yaml:"meter,omitempty"`
	Hexameter string `yaml:"hexameter,omitempty"`
}

// DefaultRuleNames returns the keys used by the embedded grammar.
func DefaultRuleNames() RuleNames {
	return RuleNames{
		Normalize: DefaultNormalizeRule,
		Pronounce: DefaultPronounceRule,
		Variable:  DefaultVariableRule,
		Syllable:  DefaultSyllableRule,
		Weight:    DefaultWeightRule,
		Foot:      DefaultFootRule,
		Hexameter: DefaultHexameterRule,
	}
}

// Merge returns r overridden by the non-empty fields of other.
func (r RuleNames) Merge(other RuleNames) RuleNames {
	result := r
	if other.Normalize != "" {
		result.Normalize = other.Normalize
	}
	if other.Pronounce != "" {
		result.Pronounce = other.Pronounce
	}
	if other.Variable != "" {
		result.Variable = other.Variable
	}
	if other.Syllable != "" {
		result.Syllable = other.Syllable
	}
	if other.Weight != "" {
		result.Weight = other.Weight
	}
	if other.Foot != "" {
		result.Foot = other.Foot
	}
	if other.Meter != "" {
		result.Meter = other.Meter
	}
	if other.Hexameter != "" {
		result.Hexameter = other.Hexameter
	}
	return result
}

// Validate checks that every required key is set. Syllable and Weight are
// required unless Meter is set. Foot is always optional.
func (r RuleNames) Validate() error {
	type field struct {
		name  string
		value string
	}
	required := []field{
		{"normalize", r.Normalize},
		{"pronounce", r.Pronounce},
		{"variable", r.Variable},
		{"hexameter", r.Hexameter},
	}
	if r.Meter == "" {
		required = append(required, field{"syllable", r.Syllable}, field{"weight", r.Weight})
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%s: %w", f.name, ErrEmptyRuleName)
		}
	}
	return nil
}
