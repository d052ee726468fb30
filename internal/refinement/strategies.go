package refinement

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/resume-refiner/internal/generation"
	"github.com/jonathan/resume-refiner/internal/ranking"
	"github.com/jonathan/resume-refiner/internal/types"
	"github.com/jonathan/resume-refiner/internal/validation"
)

// applyStrategies handles STRATEGY_SELECTED and APPLYING for one iteration:
// each violation gets the strategy its category calls for. Returns the set of
// fields touched, which drives the restricted recheck.
func (e *Engine) applyStrategies(ctx context.Context, r *run, violations *types.Violations) map[types.FieldID]bool {
	touched := make(map[types.FieldID]bool)
	pruned := false

	for _, v := range violations.Violations {
		if ctx.Err() != nil {
			return touched
		}
		if r.field(v.FieldID).irreducible {
			continue
		}

		switch v.Type {
		case types.ViolationSkillCount:
			if e.pruneSkills(ctx, r, v) {
				pruned = true
				touched[v.FieldID] = true
				// Pruning shifts skill indices; process the surviving skills'
				// length violations against a fresh detection instead of the
				// stale pre-prune list.
				fresh := validation.Detect(r.doc, e.table)
				for _, sv := range fresh.Violations {
					if sv.Category == types.CategorySkill && sv.Type == types.ViolationLengthOverflow {
						e.rewriteField(ctx, r, sv)
						touched[sv.FieldID] = true
					}
				}
			}

		case types.ViolationSectionOverflow:
			e.reduceSection(ctx, r, v)
			touched[v.FieldID] = true

		default:
			if pruned && v.Category == types.CategorySkill {
				continue // already handled against the post-prune list
			}
			e.rewriteField(ctx, r, v)
			touched[v.FieldID] = true
		}
	}

	return touched
}

// pruneSkills drops the lowest-relevance skills until the list is at the
// configured target, preserving the original relative order of survivors.
// Pruning never fabricates skills. Returns false when the relevance ranking
// call failed and the list was left untouched.
func (e *Engine) pruneSkills(ctx context.Context, r *run, v types.Violation) bool {
	before := len(r.doc.Skills)
	target := e.table.SkillTarget
	if before <= target {
		return false
	}

	order, err := ranking.RankSkills(ctx, e.gen, r.doc.Skills, r.jobContext)
	if err != nil {
		e.logger.Warn("skill ranking failed, skills left unpruned",
			zap.String("run_id", r.outcome.RunID),
			zap.Error(err))
		r.markIrreducible(v.FieldID)
		return false
	}

	keep := make(map[int]bool, target)
	for _, idx := range order[:target] {
		keep[idx] = true
	}

	survivors := make([]string, 0, target)
	for i, s := range r.doc.Skills {
		if keep[i] {
			survivors = append(survivors, s)
		}
	}
	r.doc.Skills = survivors

	r.record(types.RefinementAttempt{
		FieldID:   v.FieldID,
		Category:  types.CategorySkill,
		Strategy:  types.StrategyPruneSkills,
		Iteration: r.iteration,
		BeforeLen: before,
		AfterLen:  len(survivors),
	})
	return true
}

// rewriteField requests a targeted rewrite of one text field with an explicit
// character target. The first attempt on a field asks for an incremental
// rewrite; repeat attempts fall back to from-scratch summarization. The
// response is never trusted for length: compliance comes from the recheck.
func (e *Engine) rewriteField(ctx context.Context, r *run, v types.Violation) {
	entry, ok := e.table.Lookup(v.Category)
	if !ok {
		return
	}
	text, ok := r.doc.Text(v.FieldID)
	if !ok {
		return
	}

	templateID := generation.TemplateRewriteField
	params := map[string]string{
		"FieldName":   fieldLabel(v.Category),
		"TargetChars": strconv.Itoa(entry.MaxChars),
		"Text":        text,
	}
	if r.field(v.FieldID).attempts > 0 {
		templateID = generation.TemplateSummarizeField
		params = map[string]string{
			"FieldName": fieldLabel(v.Category),
			"MaxChars":  strconv.Itoa(entry.MaxChars),
			"Text":      text,
		}
	}

	rewritten, err := e.gen.Generate(ctx, generation.Request{
		TemplateID: templateID,
		Params:     params,
		Shape:      generation.ShapePlainText,
	})
	if err != nil {
		e.logger.Warn("field rewrite failed",
			zap.String("run_id", r.outcome.RunID),
			zap.String("field_id", string(v.FieldID)),
			zap.Error(err))
		r.markIrreducible(v.FieldID)
		return
	}

	r.doc.SetText(v.FieldID, rewritten)
	r.record(types.RefinementAttempt{
		FieldID:   v.FieldID,
		Category:  v.Category,
		Strategy:  types.StrategyRewrite,
		Iteration: r.iteration,
		BeforeLen: types.TextLength(text),
		AfterLen:  types.TextLength(rewritten),
	})
}

// reduceSection applies a percentage-based reduction to a whole section whose
// combined length exceeds the section_total budget. The requested percentage
// is overage/current_total rounded up, floored at 10 points per iteration,
// and capped by MaxStepReduction to avoid over-aggressive single-pass loss. A structurally invalid response (changed
// bullet count) counts as a generation failure: one retry, then irreducible.
func (e *Engine) reduceSection(ctx context.Context, r *run, v types.Violation) {
	si := -1
	for i := range r.doc.Sections {
		if types.SectionFieldID(i) == v.FieldID {
			si = i
			break
		}
	}
	if si < 0 {
		return
	}
	section := &r.doc.Sections[si]
	before := section.AggregateLength()
	if before == 0 {
		return
	}

	percent := int(math.Ceil(float64(v.Overage) / float64(before) * 100))
	// Later iterations ask harder: the floor rises 10 points per iteration.
	if floor := 10 * r.iteration; percent < floor {
		percent = floor
	}
	maxPercent := int(e.opts.MaxStepReduction * 100)
	if percent > maxPercent {
		percent = maxPercent
	}
	if percent < 1 {
		percent = 1
	}

	sectionJSON, err := json.Marshal(section)
	if err != nil {
		return
	}

	var reduced types.JobEntry
	structural := fmt.Errorf("no attempt made")
	for attempt := 0; attempt < 2 && structural != nil; attempt++ {
		// The retry after a structural mismatch restates the bullet contract
		// explicitly instead of resending the identical prompt.
		strictNote := ""
		if attempt > 0 {
			strictNote = fmt.Sprintf(
				"\n\nSTRICT: The JSON object must contain exactly %d bullets, in the same order as the input. Do not add, remove, merge, or reorder bullets.",
				len(section.Bullets))
		}

		var resp string
		resp, err = e.gen.Generate(ctx, generation.Request{
			TemplateID: generation.TemplateSectionReduce,
			Params: map[string]string{
				"ReductionPercent": strconv.Itoa(percent),
				"SectionJSON":      string(sectionJSON),
				"StrictNote":       strictNote,
			},
			Shape: generation.ShapeJSONObject,
		})
		if err != nil {
			break
		}
		structural = parseSection(resp, len(section.Bullets), &reduced)
		if structural != nil {
			e.logger.Debug("section reduction returned invalid structure",
				zap.String("run_id", r.outcome.RunID),
				zap.String("field_id", string(v.FieldID)),
				zap.Error(structural))
		}
	}
	if err != nil || structural != nil {
		e.logger.Warn("section reduction failed",
			zap.String("run_id", r.outcome.RunID),
			zap.String("field_id", string(v.FieldID)),
			zap.Error(firstNonNil(err, structural)))
		r.markIrreducible(v.FieldID)
		return
	}

	r.doc.Sections[si] = reduced
	r.record(types.RefinementAttempt{
		FieldID:   v.FieldID,
		Category:  types.CategorySectionTotal,
		Strategy:  types.StrategySectionReduce,
		Iteration: r.iteration,
		BeforeLen: before,
		AfterLen:  reduced.AggregateLength(),
	})
}

// parseSection unmarshals a reduced section and enforces the structural
// contract: same bullet count, same order.
func parseSection(resp string, wantBullets int, out *types.JobEntry) error {
	var entry types.JobEntry
	if err := json.Unmarshal([]byte(resp), &entry); err != nil {
		return fmt.Errorf("failed to parse section response: %w", err)
	}
	if len(entry.Bullets) != wantBullets {
		return fmt.Errorf("section response has %d bullets, expected %d", len(entry.Bullets), wantBullets)
	}
	*out = entry
	return nil
}

func fieldLabel(c types.Category) string {
	switch c {
	case types.CategoryObjective:
		return "objective statement"
	case types.CategorySkill:
		return "skill entry"
	case types.CategoryBulletOverview:
		return "bullet overview"
	case types.CategoryBulletDescription:
		return "bullet description"
	default:
		return "section"
	}
}

func firstNonNil(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
