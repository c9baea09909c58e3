// Package storage selects and exposes the generation manifest backend.
package storage

import (
	"context"

	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
)

// Store records generation runs and the code produced for each variant.
type Store interface {
	BeginRun(ctx context.Context, dir string) (manifest.Run, error)
	RecordEntry(ctx context.Context, e manifest.Entry) error
	FinishRun(ctx context.Context, runID string, files, variants int, status manifest.Status) error
	ListRuns(ctx context.Context, limit int) ([]manifest.Run, error)
	ListEntries(ctx context.Context, runID string) ([]manifest.Entry, error)
	LastHash(ctx context.Context, dir, typeName, variant string) (string, bool, error)
	Cleanup(ctx context.Context, daysThreshold int, dryRun bool) (int, error)
	Close() error
}
