package model

import "fmt"

// Document is an ordered collection of scanned lines.
type Document struct {
	// Name is an optional provenance label, usually the source file path.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Lines holds the scanned lines in input order.
	Lines []Line `json:"lines" yaml:"lines"`
}

// NewDocument returns an empty document.
func NewDocument(name string) *Document {
	return &Document{
		Name:  name,
		Lines: make([]Line, 0),
	}
}

// Append adds a scanned line at the end of the document.
func (d *Document) Append(line Line) {
	d.Lines = append(d.Lines, line)
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.Lines)
}

// Counts returns the number of scanned, defective and failed lines.
func (d *Document) Counts() (scanned, defective, failed int) {
	for _, l := range d.Lines {
		switch l.Status() {
		case StatusScanned:
			scanned++
		case StatusDefective:
			defective++
		default:
			failed++
		}
	}
	return scanned, defective, failed
}

// Validate checks every line's invariants.
func (d *Document) Validate() error {
	for i, l := range d.Lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("line %d (position %d): %w", l.LineNumber, i+1, err)
		}
	}
	return nil
}

// Equal reports whether two documents hold the same values.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Name != other.Name || len(d.Lines) != len(other.Lines) {
		return false
	}
	for i := range d.Lines {
		if !d.Lines[i].Equal(other.Lines[i]) {
			return false
		}
	}
	return true
}
