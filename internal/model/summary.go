package model

import (
	"slices"
	"time"
)

// Summary is a condensed view of a scanned document.
type Summary struct {
	// Name is the document name.
	Name string `json:"name,omitempty"`

	// Grammar identifies the rule archive used for the scan.
	Grammar string `json:"grammar,omitempty"`

	// DateScanned is when the scan finished.
	DateScanned time.Time `json:"date_scanned"`

	// Total is the number of lines.
	Total int `json:"total"`

	// Scanned is the number of lines with a valid pronunciation.
	Scanned int `json:"scanned"`

	// Defective is the number of lines that do not scan.
	Defective int `json:"defective"`

	// Failed is the number of lines the grammar could not process.
	Failed int `json:"failed"`

	// DefectiveLines lists the line numbers of defective lines.
	DefectiveLines []int `json:"defective_lines,omitempty"`

	// FailedLines lists the line numbers of failed lines.
	FailedLines []int `json:"failed_lines,omitempty"`

	// Patterns counts scanned lines by foot pattern.
	Patterns map[string]int `json:"patterns,omitempty"`
}

// PatternCount is one entry of a foot pattern distribution.
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// NewSummary summarizes a document.
func NewSummary(doc *Document, grammar string, scannedAt time.Time) *Summary {
	s := &Summary{
		Name:        doc.Name,
		Grammar:     grammar,
		DateScanned: scannedAt,
		Total:       doc.Len(),
		Patterns:    make(map[string]int),
	}

	for _, l := range doc.Lines {
		switch l.Status() {
		case StatusScanned:
			s.Scanned++
			if feet, ok := l.FeetText(); ok {
				s.Patterns[feet]++
			}
		case StatusDefective:
			s.Defective++
			s.DefectiveLines = append(s.DefectiveLines, l.LineNumber)
		default:
			s.Failed++
			s.FailedLines = append(s.FailedLines, l.LineNumber)
		}
	}

	return s
}

// ScanRate returns the share of lines that scanned, between 0 and 1.
func (s *Summary) ScanRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Scanned) / float64(s.Total)
}

// HasProblems reports whether any line is defective or failed.
func (s *Summary) HasProblems() bool {
	return s.Defective > 0 || s.Failed > 0
}

// TopPatterns returns the n most frequent foot patterns, most frequent first.
// Patterns with equal counts are ordered alphabetically. n <= 0 returns all.
func (s *Summary) TopPatterns(n int) []PatternCount {
	out := make([]PatternCount, 0, len(s.Patterns))
	for p, c := range s.Patterns {
		out = append(out, PatternCount{Pattern: p, Count: c})
	}
	slices.SortFunc(out, func(a, b PatternCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.Pattern < b.Pattern {
			return -1
		}
		if a.Pattern > b.Pattern {
			return 1
		}
		return 0
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
