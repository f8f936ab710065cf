package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/latinscan/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// problemsOnly limits the line listing to defective and failed lines.
	problemsOnly bool

	// verbose adds the normalized text of every listed line.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithProblemsOnly limits the line listing to defective and failed lines.
func WithProblemsOnly(only bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.problemsOnly = only
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *Report) (int, error) {
	var sb strings.Builder
	w.writeHeader(&sb, report.Summary)
	w.writeSummary(&sb, report.Summary)
	w.writePatterns(&sb, report.Summary)
	w.writeLines(&sb, report.Document)
	return io.WriteString(w.output, sb.String())
}

// WriteSummary outputs the summary in human-readable format.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder
	w.writeHeader(&sb, summary)
	w.writeSummary(&sb, summary)
	w.writePatterns(&sb, summary)
	return io.WriteString(w.output, sb.String())
}

// WriteComparison outputs the differences between two scans.
func (w *SimpleWriter) WriteComparison(c *model.Comparison) (int, error) {
	var sb strings.Builder
	writeSection(&sb, "COMPARISON: "+orDash(c.Name))

	if !c.HasChanges() {
		sb.WriteString("  No changes\n\n")
		return io.WriteString(w.output, sb.String())
	}

	fmt.Fprintf(&sb, "  Changed lines: %d\n", len(c.Changes))
	fmt.Fprintf(&sb, "  Fixed:         %d\n", c.Fixed)
	fmt.Fprintf(&sb, "  Broken:        %d\n\n", c.Broken)

	for _, ch := range c.Changes {
		fmt.Fprintf(&sb, "  %5d  %-13s %s\n", ch.Position, strings.ToUpper(string(ch.Kind)), ch.Text)
		if ch.Before != nil {
			status, feet, detail := lineColumns(*ch.Before)
			fmt.Fprintf(&sb, "         - %-9s %-6s %s\n", status, feet, detail)
		}
		if ch.After != nil {
			status, feet, detail := lineColumns(*ch.After)
			fmt.Fprintf(&sb, "         + %-9s %-6s %s\n", status, feet, detail)
		}
	}
	sb.WriteString("\n")
	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *model.Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         LATINSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Document:   %s\n", orDash(s.Name))
	fmt.Fprintf(sb, "Grammar:    %s\n", orDash(s.Grammar))
	fmt.Fprintf(sb, "Scan Date:  %s\n", s.DateScanned.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Lines:      %d\n\n", s.Total)
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, s *model.Summary) {
	writeSection(sb, "SUMMARY")

	fmt.Fprintf(sb, "  SCANNED:    %d\n", s.Scanned)
	fmt.Fprintf(sb, "  DEFECTIVE:  %d\n", s.Defective)
	fmt.Fprintf(sb, "  FAILED:     %d\n", s.Failed)
	fmt.Fprintf(sb, "  SCAN RATE:  %.1f%%\n\n", s.ScanRate()*100)

	if len(s.DefectiveLines) > 0 {
		fmt.Fprintf(sb, "  Defective lines: %s\n", joinInts(s.DefectiveLines))
	}
	if len(s.FailedLines) > 0 {
		fmt.Fprintf(sb, "  Failed lines:    %s\n", joinInts(s.FailedLines))
	}
	if s.HasProblems() {
		sb.WriteString("\n")
	}
}

func (w *SimpleWriter) writePatterns(sb *strings.Builder, s *model.Summary) {
	patterns := s.TopPatterns(0)
	if len(patterns) == 0 {
		return
	}
	writeSection(sb, "FOOT PATTERNS")
	for _, p := range patterns {
		fmt.Fprintf(sb, "  %-8s %d\n", p.Pattern, p.Count)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeLines(sb *strings.Builder, doc *model.Document) {
	writeSection(sb, "LINES")

	listed := 0
	for _, l := range doc.Lines {
		if w.problemsOnly && l.Status() == model.StatusScanned {
			continue
		}
		listed++
		status, feet, detail := lineColumns(l)
		fmt.Fprintf(sb, "  %5d  %-9s %-6s %s\n", l.LineNumber, status, feet, detail)
		if l.Status() == model.StatusScanned {
			fmt.Fprintf(sb, "         %s\n", l.Text)
		}
		if w.verbose {
			if n, ok := l.NormalizedText(); ok {
				fmt.Fprintf(sb, "         normalized: %s\n", n)
			}
		}
	}
	if listed == 0 {
		sb.WriteString("  No lines to show\n")
	}
	sb.WriteString("\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
