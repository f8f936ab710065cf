package model

// NoLineNumber is the line number of a line scanned on its own, outside a
// document. Document scans number lines from 1.
const NoLineNumber = -1

// Line is one scanned line of verse.
//
// Optional fields are pointers: nil means the stage that sets them did not
// complete, which is distinct from an empty string. A Line returned by the
// scanner is never modified afterwards, and the strings behind its pointers
// are never written through.
type Line struct {
	// LineNumber is the 1-based position in the source document, or
	// NoLineNumber when the caller did not supply one.
	LineNumber int `json:"line_number" yaml:"line_number"`

	// Text is the input line, verbatim.
	Text string `json:"text" yaml:"text"`

	// Normalized is the canonical lowercase text.
	Normalized *string `json:"normalized,omitempty" yaml:"normalized,omitempty"`

	// Pronunciation is the selected metrically valid phonemic string.
	Pronunciation *string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`

	// Feet is the metrical analysis of Pronunciation, one letter per foot
	// (D dactyl, S spondee, T trochee with the default grammar).
	Feet *string `json:"feet,omitempty" yaml:"feet,omitempty"`

	// Defective is true when no pronunciation variant scans.
	Defective bool `json:"defective,omitempty" yaml:"defective,omitempty"`
}

// NewLine returns an unscanned line.
func NewLine(text string, lineNumber int) Line {
	return Line{
		LineNumber: lineNumber,
		Text:       text,
	}
}

// HasLineNumber reports whether the line carries a caller-supplied number.
func (l Line) HasLineNumber() bool {
	return l.LineNumber != NoLineNumber
}

// NormalizedText returns the normalized text and whether it is set.
func (l Line) NormalizedText() (string, bool) {
	return deref(l.Normalized)
}

// PronunciationText returns the pronunciation and whether it is set.
func (l Line) PronunciationText() (string, bool) {
	return deref(l.Pronunciation)
}

// FeetText returns the foot analysis and whether it is set.
func (l Line) FeetText() (string, bool) {
	return deref(l.Feet)
}

// Status derives the outcome of the scan from the populated fields.
func (l Line) Status() Status {
	switch {
	case l.Pronunciation != nil:
		return StatusScanned
	case l.Defective:
		return StatusDefective
	default:
		return StatusFailed
	}
}

// Validate checks the invariants that hold between the optional fields.
func (l Line) Validate() error {
	switch {
	case l.Defective && l.Pronunciation != nil:
		return ErrDefectiveWithPronunciation
	case l.Pronunciation != nil && l.Normalized == nil:
		return ErrPronunciationWithoutNormalized
	case l.Feet != nil && l.Pronunciation == nil:
		return ErrFeetWithoutPronunciation
	case l.Defective && l.Normalized == nil:
		return ErrDefectiveWithoutNormalized
	}
	return nil
}

// Equal reports whether two lines hold the same values.
func (l Line) Equal(other Line) bool {
	return l.LineNumber == other.LineNumber &&
		l.Text == other.Text &&
		l.Defective == other.Defective &&
		equalOptional(l.Normalized, other.Normalized) &&
		equalOptional(l.Pronunciation, other.Pronunciation) &&
		equalOptional(l.Feet, other.Feet)
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
