package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/svgencoder/internal/model"
)

// FileName is the name of the database file inside the history directory.
const FileName = "history.db"

// ErrNotFound is returned by Open when the database does not exist and
// creation was not requested.
var ErrNotFound = errors.New("history database not found")

// HistoryDB provides SQLite-based storage for conversion runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
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

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (run with --history first)", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
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

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the path of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		input_root TEXT NOT NULL,
		output_root TEXT NOT NULL,
		recursive INTEGER NOT NULL DEFAULT 0,
		overwrite INTEGER NOT NULL DEFAULT 0,
		file_count INTEGER NOT NULL DEFAULT 0,
		skipped_count INTEGER NOT NULL DEFAULT 0,
		cancelled INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input_root);

	CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		encoded_length INTEGER NOT NULL,
		source_size INTEGER NOT NULL DEFAULT 0,
		source_digest TEXT,
		skipped INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_conversions_run ON conversions(run_id);
	CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions(input_path);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord represents a stored conversion run.
type RunRecord struct {
	ID           int64     `json:"id"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
	InputRoot    string    `json:"inputRoot"`
	OutputRoot   string    `json:"outputRoot"`
	Recursive    bool      `json:"recursive"`
	Overwrite    bool      `json:"overwrite"`
	FileCount    int       `json:"fileCount"`
	SkippedCount int       `json:"skippedCount"`
	Cancelled    bool      `json:"cancelled"`
}

// Status returns "completed" or "cancelled".
func (r *RunRecord) Status() string {
	if r.Cancelled {
		return model.RunCancelled
	}
	return model.RunCompleted
}

// ConversionRow represents a stored file conversion.
type ConversionRow struct {
	ID            int64  `json:"id"`
	RunID         int64  `json:"runId"`
	InputPath     string `json:"inputPath"`
	OutputPath    string `json:"outputPath"`
	EncodedLength int    `json:"encodedLength"`
	SourceSize    int64  `json:"sourceSize"`
	SourceDigest  string `json:"sourceDigest,omitempty"`
	Skipped       bool   `json:"skipped"`
}

// SaveRun stores a run and all of its records in one transaction.
// Returns the ID of the new run.
func (hdb *HistoryDB) SaveRun(ctx context.Context, summary *model.RunSummary) (int64, error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // No-op after a successful commit
	}()

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (started_at, finished_at, input_root, output_root, recursive, overwrite, file_count, skipped_count, cancelled)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		formatTimestamp(summary.StartedAt),
		formatTimestamp(summary.FinishedAt),
		summary.Request.InputRoot,
		summary.Request.OutputRoot,
		summary.Request.Recursive,
		summary.Request.Overwrite,
		summary.Count(),
		summary.SkippedCount(),
		summary.Cancelled,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO conversions (run_id, input_path, output_path, encoded_length, source_size, source_digest, skipped)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare conversion insert: %w", err)
	}
	defer stmt.Close()

	for i := range summary.Records {
		r := &summary.Records[i]
		if _, err := stmt.ExecContext(ctx,
			runID,
			r.InputPath,
			r.OutputPath(),
			r.EncodedLength,
			r.SourceSize,
			r.SourceDigest,
			r.Skipped,
		); err != nil {
			return 0, fmt.Errorf("failed to insert conversion %s: %w", r.InputPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `id, started_at, finished_at, input_root, output_root, recursive, overwrite, file_count, skipped_count, cancelled`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (*RunRecord, error) {
	var r RunRecord
	var started, finished string
	if err := s.Scan(
		&r.ID,
		&started,
		&finished,
		&r.InputRoot,
		&r.OutputRoot,
		&r.Recursive,
		&r.Overwrite,
		&r.FileCount,
		&r.SkippedCount,
		&r.Cancelled,
	); err != nil {
		return nil, err
	}
	r.StartedAt = parseTimestamp(started)
	r.FinishedAt = parseTimestamp(finished)
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns all runs.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY id DESC`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunRecord, 0)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRun returns the run with the given ID, or nil if it does not exist.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*RunRecord, error) {
	row := hdb.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return r, nil
}

// ListConversions returns the conversions of a run in processing order.
func (hdb *HistoryDB) ListConversions(ctx context.Context, runID int64) ([]ConversionRow, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT id, run_id, input_path, output_path, encoded_length, source_size, COALESCE(source_digest, ''), skipped
	FROM conversions
	WHERE run_id = ?
	ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	out := make([]ConversionRow, 0)
	for rows.Next() {
		var c ConversionRow
		if err := rows.Scan(
			&c.ID,
			&c.RunID,
			&c.InputPath,
			&c.OutputPath,
			&c.EncodedLength,
			&c.SourceSize,
			&c.SourceDigest,
			&c.Skipped,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// timestampFormats lists the formats accepted when reading timestamps back.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999",
}

// formatTimestamp formats t for storage.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
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
