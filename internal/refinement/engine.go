// Package refinement implements the constrained iterative refinement engine:
// it drives repeated shortening strategies over a structured document until
// every per-category budget is satisfied or the iteration ceiling is reached,
// with a single whole-document escalation pass as the last resort.
package refinement

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-refiner/internal/budget"
	"github.com/jonathan/resume-refiner/internal/generation"
	"github.com/jonathan/resume-refiner/internal/types"
	"github.com/jonathan/resume-refiner/internal/validation"
)

// State is the engine's position in the refinement state machine.
type State string

// Engine states. Converged and IterationExhausted are terminal.
const (
	StateAnalyzing          State = "ANALYZING"
	StateStrategySelected   State = "STRATEGY_SELECTED"
	StateApplying           State = "APPLYING"
	StateRechecking         State = "RECHECKING"
	StateConverged          State = "CONVERGED"
	StateEscalating         State = "ESCALATING"
	StateIterationExhausted State = "ITERATION_EXHAUSTED"
)

// Options are the immutable per-run engine knobs.
type Options struct {
	// MaxIterations is the per-field strategy iteration ceiling.
	MaxIterations int `validate:"gt=0"`
	// MaxStepReduction caps a single percentage-based section reduction
	// (0.5 = never ask for more than a 50% cut in one step).
	MaxStepReduction float64 `validate:"gt=0,lte=1"`
}

// DefaultOptions returns the stock engine options.
func DefaultOptions() Options {
	return Options{
		MaxIterations:    2,
		MaxStepReduction: 0.5,
	}
}

var validateOpts = validator.New(validator.WithRequiredStructEnabled())

// Outcome reports how a refinement run ended. A non-empty Remaining on an
// IterationExhausted outcome is the partial-compliance warning: surfaced as
// data, never as an error.
type Outcome struct {
	RunID       string                    `json:"run_id"`
	State       State                     `json:"state"`
	Iterations  int                       `json:"iterations"`
	Escalated   bool                      `json:"escalated"`
	Attempts    []types.RefinementAttempt `json:"attempts"`
	Remaining   types.Violations          `json:"remaining"`
	Irreducible []types.FieldID           `json:"irreducible,omitempty"`
}

// Converged reports whether every field ended compliant.
func (o *Outcome) Converged() bool {
	return o.State == StateConverged
}

// Engine refines one document at a time. An Engine is safe to reuse across
// documents but each Refine call owns its document exclusively; refine
// multiple documents concurrently with independent calls, not shared ones.
type Engine struct {
	gen    generation.Generator
	table  *types.BudgetTable
	opts   Options
	logger *zap.Logger
}

// NewEngine validates the budget table and options up front (fail closed) and
// returns a ready engine. logger may be nil.
func NewEngine(gen generation.Generator, table *types.BudgetTable, opts Options, logger *zap.Logger) (*Engine, error) {
	if err := budget.Validate(table); err != nil {
		return nil, err
	}
	if err := validateOpts.Struct(opts); err != nil {
		return nil, &budget.ConfigurationError{Message: "invalid engine options", Cause: err}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{gen: gen, table: table, opts: opts, logger: logger}, nil
}

// fieldState tracks per-field progress within a single run.
type fieldState struct {
	attempts    int // strategy applications so far
	noReduction int // consecutive attempts that failed to shorten
	irreducible bool
}

// run carries the mutable state of one refinement run.
type run struct {
	doc        *types.StructuredDocument
	jobContext string
	fields     map[types.FieldID]*fieldState
	outcome    *Outcome
	iteration  int
}

func (r *run) field(id types.FieldID) *fieldState {
	fs, ok := r.fields[id]
	if !ok {
		fs = &fieldState{}
		r.fields[id] = fs
	}
	return fs
}

// record appends an audit attempt and updates irreducibility bookkeeping:
// two consecutive attempts with no length reduction exclude the field from
// further per-field strategies for the remainder of the run.
func (r *run) record(a types.RefinementAttempt) {
	r.outcome.Attempts = append(r.outcome.Attempts, a)
	fs := r.field(a.FieldID)
	fs.attempts++
	if a.Reduced() {
		fs.noReduction = 0
		return
	}
	fs.noReduction++
	if fs.noReduction >= 2 {
		fs.irreducible = true
	}
}

// markIrreducible excludes a field after a generation failure.
func (r *run) markIrreducible(id types.FieldID) {
	r.field(id).irreducible = true
}

// Refine drives the document to budget compliance. jobContext is the target
// job description used by relevance-based pruning; it may be empty. The input
// document is mutated in place only when the run reaches a terminal state;
// a cancelled run leaves it untouched.
func (e *Engine) Refine(ctx context.Context, doc *types.StructuredDocument, jobContext string) (*Outcome, error) {
	work := doc.Clone()
	r := &run{
		doc:        work,
		jobContext: jobContext,
		fields:     make(map[types.FieldID]*fieldState),
		outcome: &Outcome{
			RunID: uuid.NewString(),
			State: StateAnalyzing,
		},
	}

	for iter := 1; iter <= e.opts.MaxIterations; iter++ {
		// Cooperative cancellation checkpoint at ANALYZING entry. Partial
		// results are discarded; the caller's document is never corrupted.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		violations := validation.Detect(work, e.table)
		if violations.Empty() {
			return e.finish(doc, r, StateConverged)
		}

		r.iteration = iter
		r.outcome.Iterations = iter
		e.logger.Debug("refinement iteration",
			zap.String("run_id", r.outcome.RunID),
			zap.Int("iteration", iter),
			zap.Int("violations", len(violations.Violations)))

		touched := e.applyStrategies(ctx, r, violations)

		// Recheck the fields touched this iteration, then the whole document.
		recheck := validation.Detect(work, e.table).ByField(touched)
		e.logger.Debug("recheck",
			zap.String("run_id", r.outcome.RunID),
			zap.Int("iteration", iter),
			zap.Int("touched", len(touched)),
			zap.Int("still_violating", len(recheck.Violations)))

		if validation.Detect(work, e.table).Empty() {
			return e.finish(doc, r, StateConverged)
		}
	}

	// Iteration ceiling reached with violations outstanding: one aggregative
	// escalation pass over the whole document, never retried.
	if !validation.Detect(work, e.table).Empty() {
		r.outcome.State = StateEscalating
		e.escalate(ctx, r)
		r.outcome.Escalated = true
	}

	return e.finish(doc, r, StateIterationExhausted)
}

// finish records terminal state, copies the working document back to the
// caller, and reports remaining violations as structured metadata.
func (e *Engine) finish(dst *types.StructuredDocument, r *run, state State) (*Outcome, error) {
	r.outcome.State = state
	r.outcome.Remaining = *validation.Detect(r.doc, e.table)
	for id, fs := range r.fields {
		if fs.irreducible {
			r.outcome.Irreducible = append(r.outcome.Irreducible, id)
		}
	}
	*dst = *r.doc

	e.logger.Info("refinement finished",
		zap.String("run_id", r.outcome.RunID),
		zap.String("state", string(state)),
		zap.Int("iterations", r.outcome.Iterations),
		zap.Int("attempts", len(r.outcome.Attempts)),
		zap.Bool("escalated", r.outcome.Escalated),
		zap.Int("remaining_violations", len(r.outcome.Remaining.Violations)))
	return r.outcome, nil
}
