package rewrite

import (
	"fmt"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transform names accepted by NewTransform.
const (
	TransformLower      = "lower"
	TransformNFC        = "nfc"
	TransformNFD        = "nfd"
	TransformStripMarks = "strip-marks"
)

var latin = language.Make("la")

// transformStep is a deterministic, weightless string transform.
type transformStep struct {
	kind string
	fn   func(string) (string, error)
}

// newTransform returns the named Unicode transform as a cascade step.
func newTransform(kind string) (*transformStep, error) {
	var fn func(string) (string, error)
	switch kind {
	case TransformLower:
		fn = func(s string) (string, error) {
			return cases.Lower(latin).String(s), nil
		}
	case TransformNFC:
		fn = func(s string) (string, error) { return norm.NFC.String(s), nil }
	case TransformNFD:
		fn = func(s string) (string, error) { return norm.NFD.String(s), nil }
	case TransformStripMarks:
		fn = func(s string) (string, error) {
			t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
			out, _, err := transform.String(t, s)
			return out, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, kind)
	}
	return &transformStep{kind: kind, fn: fn}, nil
}

func (t *transformStep) name() string {
	return t.kind
}

func (t *transformStep) apply(in Candidate, emit func(Candidate) error) error {
	out, err := t.fn(in.Text)
	if err != nil {
		return fmt.Errorf("transform %s: %w", t.kind, err)
	}
	return emit(Candidate{Text: out, Weight: in.Weight})
}
