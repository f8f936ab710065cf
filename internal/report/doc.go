// Package report renders scanned documents, their summaries and scan
// comparisons.
//
// Three formats are provided: plain text for terminals, JSON for tools and
// GitHub Flavored Markdown (tables, alerts and a mermaid pie chart of line
// outcomes) for sharing.
package report
