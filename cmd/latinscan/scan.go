package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/latinscan/internal/config"
	"github.com/nao1215/latinscan/internal/database"
	"github.com/nao1215/latinscan/internal/docfile"
	"github.com/nao1215/latinscan/internal/grammar"
	"github.com/nao1215/latinscan/internal/metrics"
	"github.com/nao1215/latinscan/internal/model"
	"github.com/nao1215/latinscan/internal/pipeline"
	"github.com/nao1215/latinscan/internal/report"
	"github.com/nao1215/latinscan/internal/scansion"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan FILE...",
		Short: "Scan verse files as dactylic hexameter",
		Long: `Scan reads verse files, one line of verse per line of text, and finds for
every line a pronunciation that scans as dactylic hexameter.

Each line ends up in one of three states:
- SCANNED: a pronunciation and its feet were found
- DEFECTIVE: no variant of the pronunciation scans
- FAILED: the grammar could not normalize or pronounce the line

Results are saved to the scan history database so that later scans can be
compared with 'latinscan compare'.

Examples:
  # Scan a file with the built-in grammar
  latinscan scan aeneid1.txt

  # Scan standard input
  cat aeneid1.txt | latinscan scan -

  # Scan several books, four at a time
  latinscan scan --batch-size 4 aeneid*.txt

  # Write the scanned document as YAML and a Markdown report
  latinscan scan -o aeneid1.yaml --markdown --report-file report.md aeneid1.txt

  # Use your own grammar
  latinscan scan --grammar latin.yaml aeneid1.txt

Configuration file (.latinscan) example:
  grammar: latin.yaml
  rules:
    variable: VARIABLE
  workers: 4`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Grammar flags
	cmd.Flags().StringP("grammar", "g", "",
		"Grammar archive (default: built-in Latin hexameter grammar)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .latinscan in current or home directory)")
	cmd.Flags().Int("max-candidates", config.DefaultMaxCandidates,
		"Maximum candidates a rule may produce for one line")
	cmd.Flags().Duration("cache-ttl", config.DefaultCacheTTL,
		"Lifetime of cached rule results (0 keeps them for the whole run)")

	// Concurrency flags
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of lines of one document scanned concurrently")
	cmd.Flags().IntP("batch-size", "b", config.DefaultBatchSize,
		"Number of documents scanned concurrently")

	// Output flags
	cmd.Flags().StringP("name", "n", "",
		"Document name (default: the input path)")
	cmd.Flags().StringP("output", "o", "",
		"Write the scanned document to a .yaml or .json file")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("report-file", "r", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().String("metrics-file", "",
		"Write Prometheus metrics to a textfile after the scan")

	// History flags
	cmd.Flags().Bool("no-db", false,
		"Do not save the scan to the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd)

	// Cancel the scan on interrupt; lines already scanned are discarded.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScan(ctx, cmd, cfg, logger)
}

// buildScanConfig creates a Config from the configuration file and flags.
// Flags override file values only when they are set explicitly.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Inputs = args

	var err error
	flags := cmd.Flags()

	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user named a config file it must exist; otherwise a missing
	// file just means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		f, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(f)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("grammar") {
		if cfg.GrammarPath, err = flags.GetString("grammar"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-candidates") {
		if cfg.MaxCandidates, err = flags.GetInt("max-candidates"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("cache-ttl") {
		if cfg.CacheTTL, err = flags.GetDuration("cache-ttl"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("batch-size") {
		if cfg.BatchSize, err = flags.GetInt("batch-size"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.Name, err = flags.GetString("name"); err != nil {
		return nil, err
	}
	if cfg.OutputPath, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("report-file"); err != nil {
		return nil, err
	}
	if cfg.MetricsFile, err = flags.GetString("metrics-file"); err != nil {
		return nil, err
	}

	noDB, err := flags.GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB

	return cfg, nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	archive, err := loadArchive(cfg.GrammarPath, cfg.MaxCandidates, cfg.CacheTTL)
	if err != nil {
		return err
	}
	rules, err := scansion.LoadRuleSet(archive, cfg.Rules, scansion.WithMeterLimit(cfg.MaxCandidates))
	if err != nil {
		return fmt.Errorf("grammar %s: %w", grammar.Identifier(cfg.GrammarPath), err)
	}
	grammarID := grammar.Identifier(cfg.GrammarPath)

	logger.Info("starting scan",
		"inputs", cfg.Inputs,
		"grammar", grammarID,
		"workers", cfg.Workers,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	scannerOpts := []pipeline.ScannerOption{
		pipeline.WithScannerLogger(logger),
		pipeline.WithWorkers(cfg.Workers),
	}

	var scanMetrics *metrics.ScanMetrics
	if cfg.MetricsFile != "" {
		scanMetrics, err = metrics.NewScanMetrics(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		scannerOpts = append(scannerOpts, pipeline.WithRecorder(scanMetrics))
	}

	scanner, err := pipeline.NewScanner(rules, scannerOpts...)
	if err != nil {
		return err
	}

	sources, err := readSources(cmd, cfg)
	if err != nil {
		return err
	}

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
	}

	bp := pipeline.NewBatchProcessor(scanner,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)
	docs, err := bp.ProcessBatch(ctx, sources)
	if err != nil {
		return fmt.Errorf("scan aborted: %w", err)
	}
	scannedAt := time.Now()

	if err := outputReports(cmd, cfg, docs, grammarID, scannedAt); err != nil {
		return err
	}

	if cfg.OutputPath != "" {
		if err := docfile.WriteFile(cfg.OutputPath, docs[0]); err != nil {
			return err
		}
		logger.Info("document written", "path", cfg.OutputPath)
	}

	var errs []error
	for _, doc := range docs {
		if err := saveDocument(ctx, db, doc, grammarID, scannedAt, logger); err != nil {
			errs = append(errs, err)
		}
	}

	if scanMetrics != nil {
		if err := scanMetrics.WriteTextfile(cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// readSources reads every input. Document names default to the cleaned
// input path.
func readSources(cmd *cobra.Command, cfg *config.Config) ([]pipeline.Source, error) {
	sources := make([]pipeline.Source, 0, len(cfg.Inputs))
	for _, input := range cfg.Inputs {
		lines, err := readInput(cmd, input)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", input, err)
		}

		name := cfg.Name
		if name == "" {
			name = input
			if input != stdinName {
				name = filepath.Clean(input)
			}
		}
		sources = append(sources, pipeline.Source{Name: name, Lines: lines})
	}
	return sources, nil
}

// outputReports writes one report per document in the requested format.
// With --report-file, the terminal still gets a short text report listing
// the lines that need attention.
func outputReports(cmd *cobra.Command, cfg *config.Config, docs []*model.Document, grammarID string, scannedAt time.Time) error {
	var writer report.Writer
	if cfg.ReportFile != "" {
		f, err := createOutputFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer f.Close()

		writer = report.NewMultiWriter(
			newReportWriter(f, cfg),
			report.NewSimpleWriter(cmd.OutOrStdout(), report.WithProblemsOnly(true)),
		)
	} else {
		writer = newReportWriter(cmd.OutOrStdout(), cfg)
	}

	for _, doc := range docs {
		if _, err := writer.Write(report.NewReport(doc, grammarID, scannedAt)); err != nil {
			return fmt.Errorf("failed to write report for %s: %w", doc.Name, err)
		}
	}
	return nil
}

// saveDocument saves the document to the database.
// If db is nil, this function is a no-op.
func saveDocument(ctx context.Context, db *database.HistoryDB, doc *model.Document, grammarID string, at time.Time, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	runID, err := db.SaveDocument(ctx, doc, grammarID, at)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", doc.Name, err)
	}

	logger.Info("scan saved to database", "document", doc.Name, "run", runID)
	return nil
}
