package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/latinscan/internal/config"
	"github.com/nao1215/latinscan/internal/database"
	"github.com/nao1215/latinscan/internal/model"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
// This command compares scan results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [document-name]",
		Short: "Compare scan results with historical data",
		Long: `Compare displays the lines whose outcome, pronunciation or feet changed
between two scans of a document.

This is the regression check after editing a grammar: scan a document, edit
the grammar, scan it again and compare. By default the latest scan is
compared with the one before it.

Documents are identified by name, which defaults to the scanned file path.

Examples:
  # Compare latest two scans of a document
  latinscan compare aeneid1.txt

  # List the scan history of a document
  latinscan compare --list aeneid1.txt

  # Compare the latest scan with a specific run
  latinscan compare --with-run-id 0b6d8c1e-... aeneid1.txt

  # Compare the latest scan with the first scan since a date
  latinscan compare --since 2025-01-01 aeneid1.txt

  # List all scanned documents in the database
  latinscan compare --list-documents`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List scan history for the specified document")
	cmd.Flags().BoolP("list-documents", "L", false,
		"List all scanned documents in the database")

	// Comparison target flags
	cmd.Flags().StringP("with-run-id", "i", "",
		"Compare with a specific run (use --list to see available run ids)")
	cmd.Flags().StringP("since", "s", "",
		"Compare with the first scan on or after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// compareOptions holds the parsed compare flags.
type compareOptions struct {
	name      string
	withRunID string
	since     string
	cfg       *config.Config
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	listDocuments, err := cmd.Flags().GetBool("list-documents")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database.
	var name string
	if !listDocuments {
		if len(args) == 0 {
			return errors.New("document name is required (use --list-documents to see available documents)")
		}
		name = args[0]
	}

	cfg := config.NewConfig()
	if cmd.Flags().Changed("db-dir") {
		if cfg.DBDir, err = cmd.Flags().GetString("db-dir"); err != nil {
			return err
		}
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return config.ErrConflictingReportFormats
	}

	withRunID, err := cmd.Flags().GetString("with-run-id")
	if err != nil {
		return err
	}
	since, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}
	if withRunID != "" && since != "" {
		return errors.New("--with-run-id and --since are mutually exclusive")
	}

	db, err := database.Open(cfg.DBDir, database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if listDocuments {
		return listScannedDocuments(ctx, out, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, out, db, name)
	}

	return runComparison(ctx, out, db, compareOptions{
		name:      name,
		withRunID: withRunID,
		since:     since,
		cfg:       cfg,
	})
}

// listScannedDocuments lists all documents that have runs in the database.
func listScannedDocuments(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	names, err := db.ListDocuments(ctx)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Fprintln(out, "No scanned documents found in the database.")
		fmt.Fprintln(out, "\nUse 'latinscan scan <file>' to scan a document.")
		return nil
	}

	fmt.Fprintf(out, "Scanned documents (%d):\n\n", len(names))
	for _, name := range names {
		fmt.Fprintf(out, "  • %s\n", name)
	}
	fmt.Fprintln(out, "\nUse 'latinscan compare --list <name>' to see the scan history of a document.")

	return nil
}

// listRunHistory lists all runs of a document.
func listRunHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, name string) error {
	runs, err := db.GetRunHistory(ctx, name)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintf(out, "No scan history found for %s\n", name)
		fmt.Fprintln(out, "\nUse 'latinscan scan' to scan this document.")
		return nil
	}

	fmt.Fprintf(out, "Scan history for %s (%d scans):\n\n", name, len(runs))
	fmt.Fprintf(out, "  %-36s  %-19s  %s\n", "Run ID", "Date", "Lines")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 80))

	for _, meta := range runs {
		fmt.Fprintf(out, "  %-36s  %-19s  %s\n",
			meta.RunID,
			meta.Timestamp.Local().Format("2006-01-02 15:04:05"),
			formatCounts(meta),
		)
	}

	fmt.Fprintln(out, "\nUse 'latinscan compare <name>' to compare the latest two scans.")
	fmt.Fprintln(out, "Use 'latinscan compare --with-run-id <id> <name>' to compare with a specific run.")

	return nil
}

// formatCounts formats the line counts of a run.
func formatCounts(meta database.RunMetadata) string {
	return fmt.Sprintf("%d total, %d scanned, %d defective, %d failed",
		meta.Total, meta.Scanned, meta.Defective, meta.Failed)
}

// runComparison compares the latest run of a document with an earlier one.
func runComparison(ctx context.Context, out io.Writer, db *database.HistoryDB, opts compareOptions) error {
	latest, err := db.GetLatestRuns(ctx, opts.name, 2)
	if err != nil {
		return err
	}
	if len(latest) == 0 {
		return fmt.Errorf("no scan history found for %s", opts.name)
	}
	current := latest[0]

	var previous *database.Run
	switch {
	case opts.withRunID != "":
		previous, err = db.GetRun(ctx, opts.withRunID)
		if err != nil {
			return err
		}
		if previous.DocumentName != opts.name {
			return fmt.Errorf("run %s belongs to %s, not %s", opts.withRunID, previous.DocumentName, opts.name)
		}
	case opts.since != "":
		previous, err = firstRunSince(ctx, db, opts.name, opts.since)
		if err != nil {
			return err
		}
		if previous.RunID == current.RunID {
			return fmt.Errorf("only one scan found since %s; at least 2 scans are required for comparison", opts.since)
		}
	default:
		if len(latest) < 2 {
			return fmt.Errorf("at least 2 scans are required for comparison (found %d)", len(latest))
		}
		previous = latest[1]
	}

	comparison := model.CompareDocuments(previous.Document, current.Document)
	comparison.Name = opts.name

	writer := newReportWriter(out, opts.cfg)
	if !opts.cfg.JSONReport && !opts.cfg.MarkdownReport {
		fmt.Fprintf(out, "Previous: %s (%s, %s)\n", previous.RunID, previous.Timestamp.Local().Format(time.DateTime), previous.Grammar)
		fmt.Fprintf(out, "Current:  %s (%s, %s)\n\n", current.RunID, current.Timestamp.Local().Format(time.DateTime), current.Grammar)
	}
	_, err = writer.WriteComparison(comparison)
	return err
}

// firstRunSince returns the oldest run of a document on or after date.
func firstRunSince(ctx context.Context, db *database.HistoryDB, name, date string) (*database.Run, error) {
	since, err := time.ParseInLocation(time.DateOnly, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date format (use YYYY-MM-DD): %w", err)
	}

	history, err := db.GetRunHistory(ctx, name)
	if err != nil {
		return nil, err
	}

	// History is newest first; walk it backwards to find the oldest match.
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Timestamp.Before(since) {
			return db.GetRun(ctx, history[i].RunID)
		}
	}
	return nil, fmt.Errorf("no scans found since %s", date)
}
