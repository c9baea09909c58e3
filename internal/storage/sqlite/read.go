package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
)

// ListRuns returns the most recent runs first. A non-positive limit returns all runs.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]manifest.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dir, started_at, finished_at, files, variants, status
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list runs: %w", err)
	}
	defer rows.Close()

	var runs []manifest.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list runs: %w", err)
	}
	return runs, nil
}

// GetRun resolves a full run ID or a unique prefix of one.
func (s *SQLiteStorage) GetRun(ctx context.Context, idOrPrefix string) (manifest.Run, error) {
	if idOrPrefix == "" {
		return manifest.Run{}, fmt.Errorf("sqlite storage: get run: %w: empty id", ErrRunNotFound)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dir, started_at, finished_at, files, variants, status
		FROM runs WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2`,
		idOrPrefix, len(idOrPrefix), idOrPrefix)
	if err != nil {
		return manifest.Run{}, fmt.Errorf("sqlite storage: get run: %w", err)
	}
	defer rows.Close()

	var found []manifest.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return manifest.Run{}, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return manifest.Run{}, fmt.Errorf("sqlite storage: get run: %w", err)
	}
	switch len(found) {
	case 0:
		return manifest.Run{}, fmt.Errorf("sqlite storage: get run: %w: %s", ErrRunNotFound, idOrPrefix)
	case 1:
		return found[0], nil
	default:
		return manifest.Run{}, fmt.Errorf("sqlite storage: get run: %w: %s", ErrAmbiguousRunID, idOrPrefix)
	}
}

// ListEntries returns the entries of a run in the order they were recorded.
// The run may be named by a unique ID prefix.
func (s *SQLiteStorage) ListEntries(ctx context.Context, runID string) ([]manifest.Entry, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, type_name, variant, template, rewritten, fields, hash, output
		FROM entries WHERE run_id = ? ORDER BY seq`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list entries: %w", err)
	}
	defer rows.Close()

	entries := []manifest.Entry{}
	for rows.Next() {
		var (
			e      manifest.Entry
			fields string
		)
		if err := rows.Scan(&e.RunID, &e.TypeName, &e.Variant, &e.Template, &e.Rewritten, &fields, &e.Hash, &e.Output); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(fields), &e.Fields); err != nil {
			return nil, fmt.Errorf("sqlite storage: decode fields: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list entries: %w", err)
	}
	return entries, nil
}

// LastHash returns the hash recorded for a variant by the latest successful
// run over dir.
func (s *SQLiteStorage) LastHash(ctx context.Context, dir, typeName, variant string) (string, bool, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT e.hash FROM entries e JOIN runs r ON r.id = e.run_id
		WHERE r.dir = ? AND r.status = ? AND e.type_name = ? AND e.variant = ?
		ORDER BY r.started_at DESC, r.rowid DESC, e.seq DESC LIMIT 1`,
		dir, string(manifest.StatusOK), typeName, variant).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite storage: last hash: %w", err)
	}
	return hash, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (manifest.Run, error) {
	var (
		run               manifest.Run
		started, finished string
		status            string
	)
	if err := row.Scan(&run.ID, &run.Dir, &started, &finished, &run.Files, &run.Variants, &status); err != nil {
		return manifest.Run{}, fmt.Errorf("sqlite storage: scan run: %w", err)
	}
	var err error
	if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return manifest.Run{}, fmt.Errorf("sqlite storage: parse started_at: %w", err)
	}
	if finished != "" {
		if run.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
			return manifest.Run{}, fmt.Errorf("sqlite storage: parse finished_at: %w", err)
		}
	}
	run.Status = manifest.Status(status)
	return run, nil
}
