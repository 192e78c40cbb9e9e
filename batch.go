package notetable

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BuildAll builds one table per configuration concurrently.
//
// Builds share no state. The result is all-or-nothing: if any configuration
// is invalid, or ctx is cancelled first, BuildAll returns the first error and
// no tables. The returned slice is index-aligned with cfgs.
func BuildAll(ctx context.Context, cfgs []Config) ([]*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Fail fast on configuration errors before starting any goroutine.
	for i, cfg := range cfgs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
	}

	tables := make([]*Table, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := Build(cfg)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
