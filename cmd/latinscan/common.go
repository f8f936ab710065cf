package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nao1215/latinscan/internal/config"
	"github.com/nao1215/latinscan/internal/docfile"
	"github.com/nao1215/latinscan/internal/grammar"
	"github.com/nao1215/latinscan/internal/log"
	"github.com/nao1215/latinscan/internal/report"
	"github.com/nao1215/latinscan/internal/rewrite"
	"github.com/spf13/cobra"
)

// stdinName is the input argument and document name for standard input.
const stdinName = "-"

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newLogger creates the command logger on the command's error stream.
func newLogger(cmd *cobra.Command) *slog.Logger {
	return log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// loadArchive loads the grammar at path, or the embedded grammar when path
// is empty.
func loadArchive(path string, maxCandidates int, cacheTTL time.Duration) (*rewrite.Archive, error) {
	a, err := grammar.Load(path,
		rewrite.WithCandidateLimit(maxCandidates),
		rewrite.WithCacheTTL(cacheTTL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load grammar %s: %w", grammar.Identifier(path), err)
	}
	return a, nil
}

// readInput reads verse lines from path, or from stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]string, error) {
	if path == stdinName {
		return docfile.ReadLines(cmd.InOrStdin())
	}
	return docfile.ReadLinesFile(path)
}

// newReportWriter returns the report writer selected by the configuration.
func newReportWriter(output io.Writer, cfg *config.Config) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// createOutputFile creates path and its parent directories.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
