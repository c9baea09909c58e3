package sqlite

import (
	"context"
	"fmt"
)

// Cleanup removes finished runs, and their entries, that started more than
// daysThreshold days ago. A threshold of 0 removes every finished run. Runs
// still in progress are never removed. It returns how many runs matched; with
// dryRun nothing is deleted.
func (s *SQLiteStorage) Cleanup(ctx context.Context, daysThreshold int, dryRun bool) (int, error) {
	if daysThreshold < 0 {
		return 0, fmt.Errorf("sqlite storage: days threshold must be >= 0")
	}
	cutoff := s.utcNow().AddDate(0, 0, -daysThreshold).Format(timeLayout)
	const match = `status != 'running' AND started_at <= ?`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: cleanup: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE `+match, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite storage: count runs for cleanup: %w", err)
	}
	if count == 0 || dryRun {
		return count, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE run_id IN (SELECT id FROM runs WHERE `+match+`)`, cutoff); err != nil {
		return 0, fmt.Errorf("sqlite storage: cleanup entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE `+match, cutoff); err != nil {
		return 0, fmt.Errorf("sqlite storage: cleanup runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite storage: cleanup: %w", err)
	}
	return count, nil
}
