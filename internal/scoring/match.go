// Package scoring evaluates how well a finalized document matches a target
// job description. It is a strict pass-through to the text generator: shape
// and range validation, no retry policy of its own.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-refiner/internal/generation"
	"github.com/jonathan/resume-refiner/internal/types"
)

// Scorer scores documents against job descriptions. It may be invoked
// repeatedly on the same document as it evolves across refinement passes;
// whether a score triggers another pass is the caller's decision.
type Scorer struct {
	gen    generation.Generator
	logger *zap.Logger
}

// NewScorer creates a Scorer. logger may be nil.
func NewScorer(gen generation.Generator, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{gen: gen, logger: logger}
}

// Score returns a 0-100 compatibility rating plus rationale. The response
// must carry both fields with the score in range; anything else is a
// generation failure, never coerced.
func (s *Scorer) Score(ctx context.Context, doc *types.StructuredDocument, jobDescription string) (*types.MatchEvaluation, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}
	if jobDescription == "" {
		return nil, fmt.Errorf("job description is required")
	}

	resumeJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	resp, err := s.gen.Generate(ctx, generation.Request{
		TemplateID: generation.TemplateMatchEvaluation,
		Params: map[string]string{
			"ResumeJSON":     string(resumeJSON),
			"JobDescription": jobDescription,
		},
		Shape: generation.ShapeJSONObject,
	})
	if err != nil {
		return nil, err
	}

	var eval struct {
		Score       *int   `json:"match_rating"`
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(resp), &eval); err != nil {
		return nil, &generation.Error{
			TemplateID: generation.TemplateMatchEvaluation,
			Message:    "failed to parse match evaluation",
			Cause:      err,
		}
	}
	if eval.Score == nil || eval.Explanation == "" {
		return nil, &generation.Error{
			TemplateID: generation.TemplateMatchEvaluation,
			Message:    "match evaluation missing match_rating or explanation",
		}
	}
	if *eval.Score < 0 || *eval.Score > 100 {
		return nil, &generation.Error{
			TemplateID: generation.TemplateMatchEvaluation,
			Message:    fmt.Sprintf("match_rating %d out of range [0,100]", *eval.Score),
		}
	}

	s.logger.Debug("match scored",
		zap.String("document_id", doc.ID),
		zap.Int("score", *eval.Score))

	return &types.MatchEvaluation{
		Score:       *eval.Score,
		Explanation: eval.Explanation,
	}, nil
}
