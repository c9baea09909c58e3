package app

import (
	"context"
	"fmt"
	"io"

	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
)

// HistoryClient defines dependencies required by the history command.
type HistoryClient interface {
	History(ctx context.Context, limit int) ([]manifest.Run, error)
	RunEntries(ctx context.Context, runID string) ([]manifest.Entry, error)
}

// HistoryUseCase lists generation runs or the variants of one run.
type HistoryUseCase struct {
	client HistoryClient
}

// NewHistoryUseCase creates a history use-case.
func NewHistoryUseCase(client HistoryClient) *HistoryUseCase {
	if client == nil {
		panic("NewHistoryUseCase: client dependency cannot be nil")
	}
	return &HistoryUseCase{client: client}
}

// HistoryInput holds parsed history options.
type HistoryInput struct {
	// RunID selects one run, by id or prefix, and lists its variants.
	RunID  string
	Limit  int
	Format string
	Output io.Writer
}

// Execute prints the requested history.
func (u *HistoryUseCase) Execute(ctx context.Context, input HistoryInput) error {
	formatter, err := resolveFormatter(input.Format)
	if err != nil {
		return err
	}

	if input.RunID != "" {
		entries, err := u.client.RunEntries(ctx, input.RunID)
		if err != nil {
			return err
		}
		return formatter.FormatEntries(entries, input.Output)
	}

	if input.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	runs, err := u.client.History(ctx, input.Limit)
	if err != nil {
		return err
	}
	return formatter.FormatRuns(runs, input.Output)
}
