package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/latinscan/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report.Summary)
	w.writeSummary(md, report.Summary)
	w.writePatterns(md, report.Summary)
	w.writeLines(md, report.Document)
	w.writeProblems(md, report.Document)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeSummary(md, summary)
	w.writePatterns(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteComparison outputs a comparison in Markdown format.
func (w *MarkdownWriter) WriteComparison(c *model.Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Latinscan Comparison")
	md.PlainText("")

	if c.Name != "" {
		md.PlainTextf("Document: `%s`", c.Name)
		md.PlainText("")
	}

	if !c.HasChanges() {
		md.Tip("Both scans are identical.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	switch {
	case c.Broken > 0:
		md.Warningf("%d line(s) no longer scan.", c.Broken)
	case c.Fixed > 0:
		md.Tip(fmt.Sprintf("%d line(s) scan now.", c.Fixed))
	default:
		md.Note("Line outcomes are unchanged; only pronunciations or feet differ.")
	}
	md.PlainText("")

	rows := make([][]string, len(c.Changes))
	for i, ch := range c.Changes {
		rows[i] = []string{
			strconv.Itoa(ch.Position),
			string(ch.Kind),
			escapeCell(truncateString(ch.Text, 60)),
			describeLine(ch.Before),
			describeLine(ch.After),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Line", "Change", "Text", "Before", "After"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *model.Summary) {
	md.H1("Latinscan Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + orDash(s.Name) + "`"},
			{"Grammar", "`" + orDash(s.Grammar) + "`"},
			{"Scan Date", s.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Lines", strconv.Itoa(s.Total)},
			{"Scan Rate", fmt.Sprintf("%.1f%%", s.ScanRate()*100)},
		},
	})
	md.PlainText("")
}

// writeSummary writes the outcome counts, a pie chart and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s *model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Lines"},
		Rows: [][]string{
			{"✅ Scanned", strconv.Itoa(s.Scanned)},
			{"⚠️ Defective", strconv.Itoa(s.Defective)},
			{"❌ Failed", strconv.Itoa(s.Failed)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
		},
	})
	md.PlainText("")

	if s.Total > 0 {
		w.writePieChart(md, s)
	}
	w.writeAlert(md, s)
}

// writePieChart writes a mermaid pie chart of line outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Line Outcomes"),
		piechart.WithShowData(true),
	)

	if s.Scanned > 0 {
		chart.LabelAndIntValue("Scanned", uint64(s.Scanned))
	}
	if s.Defective > 0 {
		chart.LabelAndIntValue("Defective", uint64(s.Defective))
	}
	if s.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(s.Failed))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *model.Summary) {
	switch {
	case s.Failed > 0:
		md.Cautionf("%d line(s) could not be processed by the grammar.", s.Failed)
	case s.Defective > 0:
		md.Warningf("%d line(s) do not scan as dactylic hexameter.", s.Defective)
	case s.Total == 0:
		md.Note("The document has no lines.")
	default:
		md.Tip("Every line scans.")
	}
	md.PlainText("")
}

// writePatterns writes the foot pattern distribution.
func (w *MarkdownWriter) writePatterns(md *markdown.Markdown, s *model.Summary) {
	patterns := s.TopPatterns(0)
	if len(patterns) == 0 {
		return
	}

	md.H2("Foot Patterns")
	md.PlainText("")

	rows := make([][]string, len(patterns))
	for i, p := range patterns {
		rows[i] = []string{"`" + p.Pattern + "`", strconv.Itoa(p.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Pattern", "Lines"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeLines writes one table row per line.
func (w *MarkdownWriter) writeLines(md *markdown.Markdown, doc *model.Document) {
	md.H2("Lines")
	md.PlainText("")

	if doc.Len() == 0 {
		md.PlainText("No lines.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(doc.Lines))
	for i, l := range doc.Lines {
		status, feet, detail := lineColumns(l)
		rows[i] = []string{
			strconv.Itoa(l.LineNumber),
			status,
			orDash(feet),
			escapeCell(truncateString(l.Text, 60)),
			escapeCell(truncateString(detail, 60)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Line", "Status", "Feet", "Text", "Pronunciation"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeProblems explains the outcome of every defective or failed line.
func (w *MarkdownWriter) writeProblems(md *markdown.Markdown, doc *model.Document) {
	for _, status := range []model.Status{model.StatusDefective, model.StatusFailed} {
		info := model.GetStatusInfo(status)
		var lines []string
		for _, l := range doc.Lines {
			if l.Status() == status {
				lines = append(lines, fmt.Sprintf("%d: %s", l.LineNumber, l.Text))
			}
		}
		if len(lines) == 0 {
			continue
		}
		md.Details(fmt.Sprintf("%s lines (%d)", status, len(lines)),
			info.Description+" "+info.Recommendation+"\n\n"+strings.Join(lines, "\n"))
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [latinscan](https://github.com/nao1215/latinscan)*")
}

func describeLine(l *model.Line) string {
	if l == nil {
		return "-"
	}
	status, feet, detail := lineColumns(*l)
	if feet != "" {
		status += " " + feet
	}
	return escapeCell(status + ": " + truncateString(detail, 40))
}

// escapeCell keeps table cells from breaking the table layout.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
