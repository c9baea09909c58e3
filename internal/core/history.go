package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianoliveira/displaygen/internal/logging"
	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
)

// ErrInvalidDays indicates a prune threshold that is not positive.
var ErrInvalidDays = errors.New("days must be a positive integer")

// History lists recent runs, newest first. A limit of zero or less lists all.
func (c *Core) History(ctx context.Context, limit int) ([]manifest.Run, error) {
	runs, err := c.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return runs, nil
}

// RunEntries lists the variants recorded by a run. The id may be a prefix.
func (c *Core) RunEntries(ctx context.Context, runID string) ([]manifest.Entry, error) {
	entries, err := c.store.ListEntries(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return entries, nil
}

// Prune removes finished runs older than days and returns how many were, or
// with dryRun would be, removed.
func (c *Core) Prune(ctx context.Context, days int, dryRun bool) (int, error) {
	if days <= 0 {
		return 0, ErrInvalidDays
	}
	n, err := c.store.Cleanup(ctx, days, dryRun)
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	logging.Info("pruned runs", "days", days, "dry_run", dryRun, "count", n)
	return n, nil
}
