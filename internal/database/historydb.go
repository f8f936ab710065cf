package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/latinscan/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "latinscan.db"

// timestampLayout is fixed-width so that timestamps sort as text.
const timestampLayout = "2006-01-02 15:04:05.000000000"

// ErrRunNotFound is returned when no run matches a lookup.
var ErrRunNotFound = errors.New("scan run not found")

// HistoryDB stores scan runs.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run a scan first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	h := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := h.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return h, nil
}

// Path returns the path of the database file.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scan_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		document_name TEXT NOT NULL,
		grammar TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		total INTEGER NOT NULL,
		scanned INTEGER NOT NULL,
		defective INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		document_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_document ON scan_runs(document_name);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON scan_runs(timestamp);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata describes a stored run without its document.
type RunMetadata struct {
	// ID is the row id; it increases with every saved run.
	ID int64

	// RunID is the unique identifier of the run.
	RunID string

	// DocumentName is the name of the scanned document.
	DocumentName string

	// Grammar identifies the rule archive used.
	Grammar string

	// Timestamp is when the scan was saved.
	Timestamp time.Time

	Total     int
	Scanned   int
	Defective int
	Failed    int
}

// Run is a stored scan run.
type Run struct {
	RunMetadata

	// Document is the scanned document.
	Document *model.Document
}

// SaveDocument stores a scanned document as a new run and returns its run id.
func (h *HistoryDB) SaveDocument(ctx context.Context, doc *model.Document, grammar string, at time.Time) (string, error) {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}

	scanned, defective, failed := doc.Counts()
	runID := uuid.NewString()

	query := `
	INSERT INTO scan_runs (run_id, document_name, grammar, timestamp, total, scanned, defective, failed, document_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = h.db.ExecContext(ctx, query,
		runID,
		doc.Name,
		grammar,
		at.UTC().Format(timestampLayout),
		doc.Len(),
		scanned,
		defective,
		failed,
		string(docJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save scan run: %w", err)
	}

	return runID, nil
}

const runColumns = `id, run_id, document_name, grammar, timestamp, total, scanned, defective, failed`

// GetRun retrieves a run by its run id.
func (h *HistoryDB) GetRun(ctx context.Context, runID string) (*Run, error) {
	query := `SELECT ` + runColumns + `, document_json FROM scan_runs WHERE run_id = ?`

	run, err := scanRun(h.db.QueryRowContext(ctx, query, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetLatestRuns retrieves up to n runs of a document, newest first.
func (h *HistoryDB) GetLatestRuns(ctx context.Context, documentName string, n int) ([]*Run, error) {
	query := `SELECT ` + runColumns + `, document_json FROM scan_runs
	WHERE document_name = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT ?`

	rows, err := h.db.QueryContext(ctx, query, documentName, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*Run, 0, n)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunHistory retrieves the metadata of every run of a document, newest first.
func (h *HistoryDB) GetRunHistory(ctx context.Context, documentName string) ([]RunMetadata, error) {
	query := `SELECT ` + runColumns + ` FROM scan_runs
	WHERE document_name = ?
	ORDER BY timestamp DESC, id DESC`

	rows, err := h.db.QueryContext(ctx, query, documentName)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	results := make([]RunMetadata, 0)
	for rows.Next() {
		var meta RunMetadata
		var timestamp string
		if err := rows.Scan(&meta.ID, &meta.RunID, &meta.DocumentName, &meta.Grammar, &timestamp,
			&meta.Total, &meta.Scanned, &meta.Defective, &meta.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		meta.Timestamp = parseTimestamp(timestamp)
		results = append(results, meta)
	}
	return results, rows.Err()
}

// ListDocuments returns the names of all documents with stored runs.
func (h *HistoryDB) ListDocuments(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT document_name FROM scan_runs
	ORDER BY document_name
	`

	rows, err := h.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan document name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var timestamp, docJSON string
	err := row.Scan(&run.ID, &run.RunID, &run.DocumentName, &run.Grammar, &timestamp,
		&run.Total, &run.Scanned, &run.Defective, &run.Failed, &docJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	run.Timestamp = parseTimestamp(timestamp)

	var doc model.Document
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document of run %s: %w", run.RunID, err)
	}
	run.Document = &doc
	return &run, nil
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	time.RFC3339Nano,
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
