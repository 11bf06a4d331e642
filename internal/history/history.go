// Package history persists per-job conversion records in a local SQLite
// database. The store is advisory: callers degrade write failures to
// warnings, a broken history database never fails a run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"filmpress/internal/config"
)

// Store manages history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Record is one job's history row.
type Record struct {
	ID          int64
	InputPath   string
	OutputPath  string
	Encoder     string
	Preset      string
	Rate        string
	Success     bool
	UsedGPU     bool
	SourceBytes int64
	OutputBytes int64
	Message     string
	CreatedAt   time.Time
}

// Open initializes or connects to the history database at the configured
// path and ensures the schema is current.
func Open(cfg *config.Config) (*Store, error) {
	dbPath, err := config.ExpandPath(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve history path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the resolved database file path.
func (s *Store) Path() string {
	return s.path
}

// RecordJob inserts one finished job.
func (s *Store) RecordJob(ctx context.Context, rec Record) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO jobs (
            input_path, output_path, encoder, preset, rate,
            success, used_gpu, source_bytes, output_bytes, message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.InputPath,
		rec.OutputPath,
		rec.Encoder,
		rec.Preset,
		rec.Rate,
		boolToInt(rec.Success),
		boolToInt(rec.UsedGPU),
		rec.SourceBytes,
		rec.OutputBytes,
		rec.Message,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert job record: %w", err)
	}
	return nil
}

// RecentJobs returns up to limit records, newest first.
func (s *Store) RecentJobs(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, input_path, output_path, encoder, preset, rate,
                success, used_gpu, source_bytes, output_bytes, message, created_at
         FROM jobs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent jobs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var outputPath, encoder, preset, rate, message sql.NullString
		var successFlag, gpuFlag int
		var createdAt string
		if err := rows.Scan(
			&rec.ID, &rec.InputPath, &outputPath, &encoder, &preset, &rate,
			&successFlag, &gpuFlag, &rec.SourceBytes, &rec.OutputBytes, &message, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan job record: %w", err)
		}
		rec.OutputPath = outputPath.String
		rec.Encoder = encoder.String
		rec.Preset = preset.String
		rec.Rate = rate.String
		rec.Message = message.String
		rec.Success = successFlag != 0
		rec.UsedGPU = gpuFlag != 0
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			rec.CreatedAt = parsed
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job records: %w", err)
	}
	return records, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
