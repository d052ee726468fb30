// Package batch refines multiple documents concurrently. Each document is
// exclusively owned by its own refinement run; runs share no mutable state,
// so the only coordination is the concurrency limit.
package batch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-refiner/internal/refinement"
	"github.com/jonathan/resume-refiner/internal/types"
)

// defaultConcurrency bounds parallel refinement runs when no limit is given.
const defaultConcurrency = 5

// Result is the per-document outcome of a batch run.
type Result struct {
	Index    int
	Document *types.StructuredDocument
	Outcome  *refinement.Outcome
	Err      error
}

// Runner fans documents out over a bounded worker pool.
type Runner struct {
	engine *refinement.Engine
	limit  int
	logger *zap.Logger
}

// NewRunner creates a Runner. limit <= 0 selects the default concurrency.
// logger may be nil.
func NewRunner(engine *refinement.Engine, limit int, logger *zap.Logger) *Runner {
	if limit <= 0 {
		limit = defaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{engine: engine, limit: limit, logger: logger}
}

// RefineAll refines every document against the shared job context and
// returns one Result per input, in input order. A single document's failure
// is recorded in its Result; it does not abort the batch. Cancellation of
// ctx stops the whole batch.
func (r *Runner) RefineAll(ctx context.Context, docs []*types.StructuredDocument, jobContext string) []Result {
	results := make([]Result, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			outcome, err := r.engine.Refine(gctx, doc, jobContext)
			results[i] = Result{Index: i, Document: doc, Outcome: outcome, Err: err}
			if err != nil {
				r.logger.Warn("document refinement failed",
					zap.Int("index", i),
					zap.Error(err))
			}
			return nil
		})
	}

	_ = g.Wait() // workers never return errors; per-document failures live in results
	return results
}
