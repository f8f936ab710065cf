package report

import (
	"io"
	"strings"
	"time"

	"github.com/nao1215/latinscan/internal/model"
)

// Report is a scanned document with its summary.
type Report struct {
	Summary  *model.Summary  `json:"summary"`
	Document *model.Document `json:"document"`
}

// NewReport summarizes doc and bundles it into a Report.
func NewReport(doc *model.Document, grammar string, scannedAt time.Time) *Report {
	return &Report{
		Summary:  model.NewSummary(doc, grammar, scannedAt),
		Document: doc,
	}
}

// Writer defines the interface for report output.
// Implementations write scan results in various formats.
type Writer interface {
	// Write outputs the summary and every line of a report.
	// Returns the number of bytes written and any error encountered.
	Write(report *Report) (int, error)

	// WriteSummary outputs only the summary.
	WriteSummary(summary *model.Summary) (int, error)

	// WriteComparison outputs the differences between two scans.
	WriteComparison(c *model.Comparison) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// lineColumns returns the status, feet and pronunciation-or-text columns
// used by the line listings.
func lineColumns(l model.Line) (status, feet, detail string) {
	status = l.Status().String()
	feet, _ = l.FeetText()
	if pron, ok := l.PronunciationText(); ok {
		return status, feet, pron
	}
	return status, feet, l.Text
}

// truncateString truncates a string to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// MultiWriter writes reports to multiple writers.
// Every writer is attempted; the first error is returned.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a MultiWriter that writes to all given writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all writers.
// Returns the total bytes written across all writers.
func (m *MultiWriter) Write(report *Report) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(report) })
}

// WriteSummary outputs the summary to all writers.
func (m *MultiWriter) WriteSummary(summary *model.Summary) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteSummary(summary) })
}

// WriteComparison outputs the comparison to all writers.
func (m *MultiWriter) WriteComparison(c *model.Comparison) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteComparison(c) })
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	total := 0
	var firstErr error
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return total, firstErr
}
