// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists per-run metric snapshots in a local SQLite
// database. The store is optional and best-effort: it records what each
// run observed so download trends can be inspected later, but a storage
// failure never affects the run that produced the data.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aichikawa/pubtrack/pkg/types"
)

// Store manages the snapshot SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at TEXT NOT NULL,
			total_downloads INTEGER NOT NULL,
			average_downloads REAL NOT NULL,
			averaged INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_metrics (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			doi TEXT NOT NULL,
			title TEXT NOT NULL,
			platform TEXT NOT NULL,
			views INTEGER,
			downloads INTEGER,
			dl_rate TEXT NOT NULL,
			mention_score REAL NOT NULL,
			forum_points INTEGER,
			reads TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_metrics_doi ON run_metrics(doi)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun inserts one run snapshot: the corpus stats plus a row per
// record. Absent counts are stored as NULL, keeping them distinct from
// genuine zeros across runs.
func (s *Store) RecordRun(ctx context.Context, dateLabel string, stats types.CorpusStats, records []types.MetricRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_at, total_downloads, average_downloads, averaged) VALUES (?, ?, ?, ?)`,
		dateLabel, stats.TotalDownloads, stats.AverageDownloads, stats.Averaged)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}

	for _, r := range records {
		var forumPoints sql.NullInt64
		if r.Forum != nil {
			forumPoints = sql.NullInt64{Int64: int64(r.Forum.Points), Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_metrics
				(run_id, doi, title, platform, views, downloads, dl_rate, mention_score, forum_points, reads)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, r.DOI, r.Title, string(r.Platform),
			nullCount(r.Views), nullCount(r.Downloads),
			r.DLRate, r.Social.Score, forumPoints, r.Reads.String())
		if err != nil {
			return fmt.Errorf("inserting metrics for %s: %w", r.DOI, err)
		}
	}

	return tx.Commit()
}

// RunCount returns the number of stored snapshots.
func (s *Store) RunCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}

// DownloadTrend returns the recorded download counts for one DOI in run
// order. NULL snapshots (no data that run) are skipped.
func (s *Store) DownloadTrend(ctx context.Context, doi string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT downloads FROM run_metrics WHERE doi = ? AND downloads IS NOT NULL ORDER BY run_id`, doi)
	if err != nil {
		return nil, fmt.Errorf("querying trend for %s: %w", doi, err)
	}
	defer rows.Close()

	var trend []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning trend row: %w", err)
		}
		trend = append(trend, n)
	}
	return trend, rows.Err()
}

func nullCount(c types.Count) sql.NullInt64 {
	if !c.Known {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(c.Value), Valid: true}
}
