// Package compiler plans every structure of a schema graph.
package compiler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Telenav/smithy-sub007/compiler/gen"
	"github.com/Telenav/smithy-sub007/schema"
)

// Result holds the plans of one run, ordered by shape id.
type Result struct {
	RunID string
	Plans []*gen.Plan
}

// Plan returns the plan of the given structure.
func (r *Result) Plan(id schema.ShapeID) (*gen.Plan, bool) {
	for _, p := range r.Plans {
		if p.Shape == id {
			return p, true
		}
	}
	return nil, false
}

// Generate plans all structures of g in parallel. The composed extension
// chain is shared by all workers; each structure gets its own pipeline and
// size estimator. The first error cancels the run and no partial result is
// returned.
func Generate(ctx context.Context, g *schema.Graph, cfg *gen.Config) (*Result, error) {
	if g == nil {
		return nil, gen.NewConfigError("Graph", nil, "graph cannot be nil")
	}
	if cfg == nil {
		var err error
		if cfg, err = gen.NewConfig(); err != nil {
			return nil, err
		}
	}
	res := &Result{RunID: uuid.NewString()}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run", res.RunID)
	start := time.Now()
	chain := cfg.Compose()
	structures := g.Structures()
	plans := make([]*gen.Plan, len(structures))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for i, s := range structures {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			p, err := gen.NewPipeline(g, chain, cfg)
			if err != nil {
				return err
			}
			plan, err := p.Plan(s.ID)
			if err != nil {
				return err
			}
			plans[i] = plan
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Error("generation failed", "error", err)
		return nil, err
	}
	res.Plans = plans
	logger.Info("generation finished",
		"structures", len(plans),
		"workers", cfg.Workers,
		"duration", time.Since(start),
	)
	return res, nil
}
