package storage

import (
	"context"

	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
	"github.com/google/uuid"
)

// NoopStore satisfies Store without persisting anything.
type NoopStore struct{}

var _ Store = NoopStore{}

func (NoopStore) BeginRun(_ context.Context, dir string) (manifest.Run, error) {
	return manifest.Run{ID: uuid.NewString(), Dir: dir, Status: manifest.StatusRunning}, nil
}

func (NoopStore) RecordEntry(context.Context, manifest.Entry) error { return nil }

func (NoopStore) FinishRun(context.Context, string, int, int, manifest.Status) error { return nil }

func (NoopStore) ListRuns(context.Context, int) ([]manifest.Run, error) { return nil, nil }

func (NoopStore) ListEntries(context.Context, string) ([]manifest.Entry, error) { return nil, nil }

func (NoopStore) LastHash(context.Context, string, string, string) (string, bool, error) {
	return "", false, nil
}

func (NoopStore) Cleanup(context.Context, int, bool) (int, error) { return 0, nil }

func (NoopStore) Close() error { return nil }
