package refinement

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/resume-refiner/internal/generation"
	"github.com/jonathan/resume-refiner/internal/types"
)

// documentContent is the escalation view of a document: budgeted content
// only, no identifiers or provenance metadata.
type documentContent struct {
	Objective      string           `json:"objective"`
	Skills         []string         `json:"skills"`
	Sections       []types.JobEntry `json:"sections"`
	Education      []string         `json:"education,omitempty"`
	Certifications []string         `json:"certifications,omitempty"`
}

// escalate is the fallback of last resort: a single aggregative reduction
// pass asking for the entire document to fit the overall character budget,
// accepting some precision loss. It runs at most once per document and is
// never retried; irreducible fields participate here even though they are
// excluded from per-field strategies. Any failure leaves the document as-is.
func (e *Engine) escalate(ctx context.Context, r *run) {
	before := r.doc.TotalLength()

	content := documentContent{
		Objective:      r.doc.Objective,
		Skills:         r.doc.Skills,
		Sections:       r.doc.Sections,
		Education:      r.doc.Education,
		Certifications: r.doc.Certifications,
	}
	docJSON, err := json.Marshal(content)
	if err != nil {
		return
	}

	resp, err := e.gen.Generate(ctx, generation.Request{
		TemplateID: generation.TemplateDocumentReduce,
		Params: map[string]string{
			"MaxChars":     strconv.Itoa(e.table.TotalChars),
			"DocumentJSON": string(docJSON),
		},
		Shape: generation.ShapeJSONObject,
	})
	if err != nil {
		e.logger.Warn("escalation pass failed, document kept as-is",
			zap.String("run_id", r.outcome.RunID),
			zap.Error(err))
		return
	}

	var reduced documentContent
	if err := json.Unmarshal([]byte(resp), &reduced); err != nil {
		e.logger.Warn("escalation response unparseable, document kept as-is",
			zap.String("run_id", r.outcome.RunID),
			zap.Error(err))
		return
	}
	if !sameShape(&content, &reduced) {
		e.logger.Warn("escalation response changed document structure, document kept as-is",
			zap.String("run_id", r.outcome.RunID))
		return
	}

	r.doc.Objective = reduced.Objective
	r.doc.Skills = reduced.Skills
	r.doc.Sections = reduced.Sections
	r.doc.Education = reduced.Education
	r.doc.Certifications = reduced.Certifications

	r.record(types.RefinementAttempt{
		FieldID:   "document",
		Category:  types.CategorySectionTotal,
		Strategy:  types.StrategyEscalate,
		Iteration: r.iteration,
		BeforeLen: before,
		AfterLen:  r.doc.TotalLength(),
	})
}

// sameShape verifies the reduced document kept the entry counts and ordering
// invariants: same skills count, same sections, same bullets per section, and
// same education and certification counts.
func sameShape(before, after *documentContent) bool {
	if len(after.Skills) != len(before.Skills) {
		return false
	}
	if len(after.Sections) != len(before.Sections) {
		return false
	}
	for i := range before.Sections {
		if len(after.Sections[i].Bullets) != len(before.Sections[i].Bullets) {
			return false
		}
	}
	if len(after.Education) != len(before.Education) {
		return false
	}
	if len(after.Certifications) != len(before.Certifications) {
		return false
	}
	return true
}
