// Package sqlite provides the SQLite-backed generation manifest.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStorage records generation runs in a SQLite database.
type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStorage creates a SQLite-backed manifest at the provided path.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	storage := &SQLiteStorage{db: db, now: time.Now}
	if err := storage.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return storage, nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) utcNow() time.Time {
	return s.now().UTC()
}

// BeginRun opens a run for dir and returns it with a fresh UUID.
func (s *SQLiteStorage) BeginRun(ctx context.Context, dir string) (manifest.Run, error) {
	if strings.TrimSpace(dir) == "" {
		return manifest.Run{}, fmt.Errorf("sqlite storage: begin run: dir cannot be empty")
	}
	run := manifest.Run{
		ID:        uuid.NewString(),
		Dir:       dir,
		StartedAt: s.utcNow(),
		Status:    manifest.StatusRunning,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, dir, started_at, status) VALUES (?, ?, ?, ?)`,
		run.ID, run.Dir, run.StartedAt.Format(timeLayout), string(run.Status))
	if err != nil {
		return manifest.Run{}, fmt.Errorf("sqlite storage: begin run: %w", err)
	}
	colors.StructuredDebug("storage", "begin_run", "ok", nil, run.ID, map[string]interface{}{"dir": dir})
	return run, nil
}

// RecordEntry appends the output of one variant to a run.
func (s *SQLiteStorage) RecordEntry(ctx context.Context, e manifest.Entry) error {
	if e.RunID == "" || e.TypeName == "" {
		return fmt.Errorf("sqlite storage: record entry: %w", ErrInvalidEntry)
	}
	fields := e.Fields
	if fields == nil {
		fields = []string{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("sqlite storage: encode fields: %w", err)
	}
	if e.Hash == "" {
		e.Hash = manifest.Hash(e.Template, e.Output)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite storage: record entry: %w", err)
	}
	defer tx.Rollback()

	var status string
	if err := tx.QueryRowContext(ctx, `SELECT status FROM runs WHERE id = ?`, e.RunID).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("sqlite storage: record entry: %w: %s", ErrRunNotFound, e.RunID)
		}
		return fmt.Errorf("sqlite storage: record entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entries (run_id, seq, type_name, variant, template, rewritten, fields, hash, output)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM entries WHERE run_id = ?), ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.RunID, e.TypeName, e.Variant, e.Template, e.Rewritten, string(encoded), e.Hash, e.Output)
	if err != nil {
		return fmt.Errorf("sqlite storage: record entry: %w", err)
	}
	return tx.Commit()
}

// FinishRun closes a run with its totals and final status.
func (s *SQLiteStorage) FinishRun(ctx context.Context, runID string, files, variants int, status manifest.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, files = ?, variants = ?, status = ? WHERE id = ?`,
		s.utcNow().Format(timeLayout), files, variants, string(status), runID)
	if err != nil {
		return fmt.Errorf("sqlite storage: finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: finish run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sqlite storage: finish run: %w: %s", ErrRunNotFound, runID)
	}
	return nil
}
