package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/headline/internal/model"
)

// RunDB provides SQLite-based storage for completed run reports.
//
// Design decision: one database file holds all runs for all sections.
// Runs are small and append-only, so a single file keeps history
// queries trivial and makes backup a single-file copy.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
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

// RunSummary is one row of the run history listing.
type RunSummary struct {
	// ID is the run's row ID.
	ID int64 `json:"id"`

	// SectionURL is the section the run processed.
	SectionURL string `json:"section_url"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// State is the run's terminal state.
	State model.RunState `json:"state"`

	// ArticleCount is the number of records the run produced.
	ArticleCount int `json:"article_count"`

	// TopWords is a comma-joined preview of the leading frequency rows.
	TopWords string `json:"top_words"`
}

// Open opens or creates a RunDB at the specified directory.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "headline.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw refuses to create a
	// new file, mode=rwc allows it.
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

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// Path returns the database file location.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// createTables creates the schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		section_url TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP,
		state TEXT NOT NULL,
		article_count INTEGER NOT NULL,
		top_words TEXT NOT NULL DEFAULT '',
		report_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_section ON runs(section_url);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	if _, err := rdb.db.ExecContext(context.Background(), schema); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

// SaveRun persists one completed run and returns its row ID.
func (rdb *RunDB) SaveRun(ctx context.Context, report *model.RunReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal report: %w", err)
	}

	result, err := rdb.db.ExecContext(ctx, `
		INSERT INTO runs (section_url, started_at, finished_at, state, article_count, top_words, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.SectionURL,
		report.StartedAt,
		report.FinishedAt,
		string(report.State),
		len(report.Records),
		topWordsPreview(report, 5),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// ListRuns returns up to limit runs, newest first.
func (rdb *RunDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := rdb.db.QueryContext(ctx, `
		SELECT id, section_url, started_at, state, article_count, top_words
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var state string
		if err := rows.Scan(&s.ID, &s.SectionURL, &s.StartedAt, &state, &s.ArticleCount, &s.TopWords); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		s.State = model.RunState(state)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return summaries, nil
}

// GetRun loads one stored run report by row ID.
func (rdb *RunDB) GetRun(ctx context.Context, id int64) (*model.RunReport, error) {
	var reportJSON string
	err := rdb.db.QueryRowContext(ctx,
		"SELECT report_json FROM runs WHERE id = ?", id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %d: %w", id, err)
	}

	var report model.RunReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %d: %w", id, err)
	}
	return &report, nil
}

// topWordsPreview joins the leading frequency rows for the listing
// column.
func topWordsPreview(report *model.RunReport, n int) string {
	words := make([]string, 0, n)
	for _, row := range report.TopWords(n) {
		words = append(words, fmt.Sprintf("%s(%d)", row.Word, row.Count))
	}
	return strings.Join(words, ", ")
}
