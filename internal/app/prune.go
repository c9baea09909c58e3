package app

import (
	"context"
	"fmt"
	"io"
)

// PruneClient defines dependencies required to prune history.
type PruneClient interface {
	Prune(ctx context.Context, days int, dryRun bool) (int, error)
}

// PruneUseCase removes old generation runs.
type PruneUseCase struct {
	client PruneClient
}

// NewPruneUseCase creates a prune use-case.
func NewPruneUseCase(client PruneClient) *PruneUseCase {
	if client == nil {
		panic("NewPruneUseCase: client dependency cannot be nil")
	}
	return &PruneUseCase{client: client}
}

// PruneInput holds parsed prune options.
type PruneInput struct {
	Days   int
	DryRun bool
	Output io.Writer
}

// Execute prunes runs older than Days.
func (u *PruneUseCase) Execute(ctx context.Context, input PruneInput) error {
	if input.Days <= 0 {
		return fmt.Errorf("days must be a positive integer")
	}

	n, err := u.client.Prune(ctx, input.Days, input.DryRun)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}

	verb := "Removed"
	if input.DryRun {
		verb = "Would remove"
	}
	_, _ = fmt.Fprintf(input.Output, "%s %s older than %d days\n", verb, plural(n, "run"), input.Days)
	return nil
}
