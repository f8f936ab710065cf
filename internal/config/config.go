package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "latinscan"

	// DefaultWorkers scans the lines of a document one at a time.
	// Results do not depend on the number of workers.
	DefaultWorkers = 1

	// DefaultBatchSize is the number of documents scanned concurrently
	// when several input files are given.
	DefaultBatchSize = 4

	// DefaultMaxCandidates bounds the number of candidates a relation may
	// produce for a single input. Optional rules grow the candidate set
	// exponentially in the number of match sites, so an unbounded grammar
	// can exhaust memory on a long line.
	DefaultMaxCandidates = 4096

	// DefaultCacheTTL keeps cached relation results for the lifetime of the
	// process. A positive value expires entries after that duration.
	DefaultCacheTTL time.Duration = 0
)

// Config holds all configuration options for latinscan.
// It is populated from the config file and CLI flags and passed through the
// application rather than kept in global state.
type Config struct {
	// GrammarPath is the path of a YAML rule archive.
	// An empty path selects the embedded default grammar.
	GrammarPath string

	// Rules names the archive keys the scanner uses.
	Rules RuleNames

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Workers is the number of lines of one document scanned concurrently.
	Workers int

	// BatchSize is the number of documents scanned concurrently.
	BatchSize int

	// MaxCandidates is the candidate limit applied to every relation.
	MaxCandidates int

	// CacheTTL is the lifetime of cached relation results.
	CacheTTL time.Duration

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// File holds the settings loaded from the configuration file, if any.
	File *File

	// JSONReport selects JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects GitHub Flavored Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report is written to stdout.
	ReportFile string

	// OutputPath is where the scanned document is written as YAML or JSON,
	// chosen by extension. Only valid with a single input.
	OutputPath string

	// Inputs lists the verse files to scan. "-" reads standard input.
	Inputs []string

	// Name overrides the document name. Only valid with a single input.
	Name string

	// DBDir is the directory of the scan history database.
	// Defaults to XDG data directory (~/.local/share/latinscan on Linux).
	DBDir string

	// SaveToDB indicates whether to save scan results to the database.
	SaveToDB bool

	// MetricsFile is a Prometheus textfile written after the scan.
	MetricsFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Rules:         DefaultRuleNames(),
		Workers:       DefaultWorkers,
		BatchSize:     DefaultBatchSize,
		MaxCandidates: DefaultMaxCandidates,
		CacheTTL:      DefaultCacheTTL,
		DBDir:         XDGDataDir(),
		SaveToDB:      true,
	}
}

// XDGDataDir returns the XDG data directory for latinscan.
// On Linux: ~/.local/share/latinscan
// On macOS: ~/Library/Application Support/latinscan
// On Windows: %LOCALAPPDATA%\latinscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for latinscan.
// On Linux: ~/.config/latinscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxCandidates <= 0 {
		return ErrInvalidMaxCandidates
	}
	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if len(c.Inputs) > 1 && c.OutputPath != "" {
		return ErrOutputWithMultipleInputs
	}
	if len(c.Inputs) > 1 && c.Name != "" {
		return ErrNameWithMultipleInputs
	}
	return c.Rules.Validate()
}

// ApplyFile copies the settings of the configuration file into c.
// Zero values in the file leave the current value unchanged.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.File = f
	if f.Grammar != "" {
		c.GrammarPath = f.Grammar
	}
	c.Rules = c.Rules.Merge(f.Rules)
	if f.Workers != 0 {
		c.Workers = f.Workers
	}
	if f.BatchSize != 0 {
		c.BatchSize = f.BatchSize
	}
	if f.MaxCandidates != 0 {
		c.MaxCandidates = f.MaxCandidates
	}
	if f.CacheTTL != 0 {
		c.CacheTTL = f.CacheTTL
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
}
