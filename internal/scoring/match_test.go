package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-refiner/internal/generation"
	"github.com/jonathan/resume-refiner/internal/types"
)

type stubGenerator struct {
	resp string
	err  error
	last generation.Request
}

func (s *stubGenerator) Generate(_ context.Context, req generation.Request) (string, error) {
	s.last = req
	return s.resp, s.err
}

func testDoc() *types.StructuredDocument {
	return &types.StructuredDocument{
		ID:        "doc-1",
		Objective: "Backend engineer",
		Skills:    []string{"Go"},
	}
}

func TestScore(t *testing.T) {
	gen := &stubGenerator{resp: `{"match_rating": 78, "explanation": "Strong overlap on Go and distributed systems."}`}
	scorer := NewScorer(gen, nil)

	eval, err := scorer.Score(context.Background(), testDoc(), "Go backend role")
	require.NoError(t, err)
	assert.Equal(t, 78, eval.Score)
	assert.Contains(t, eval.Explanation, "Strong overlap")

	assert.Equal(t, generation.TemplateMatchEvaluation, gen.last.TemplateID)
	assert.Equal(t, generation.ShapeJSONObject, gen.last.Shape)
	assert.Contains(t, gen.last.Params["ResumeJSON"], "Backend engineer")
}

func TestScore_BoundaryRatings(t *testing.T) {
	for _, resp := range []string{
		`{"match_rating": 0, "explanation": "No overlap."}`,
		`{"match_rating": 100, "explanation": "Perfect fit."}`,
	} {
		gen := &stubGenerator{resp: resp}
		_, err := NewScorer(gen, nil).Score(context.Background(), testDoc(), "role")
		assert.NoError(t, err, "resp %s", resp)
	}
}

func TestScore_RejectsInvalidResponses(t *testing.T) {
	tests := []struct {
		name string
		resp string
	}{
		{"missing rating", `{"explanation": "no score given"}`},
		{"missing explanation", `{"match_rating": 50}`},
		{"rating too high", `{"match_rating": 150, "explanation": "x"}`},
		{"rating negative", `{"match_rating": -1, "explanation": "x"}`},
		{"not json", `a heartfelt prose answer`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{resp: tt.resp}
			_, err := NewScorer(gen, nil).Score(context.Background(), testDoc(), "role")
			require.Error(t, err)
			assert.True(t, generation.IsFailure(err), "shape and range problems are generation failures")
		})
	}
}

func TestScore_RequiresInputs(t *testing.T) {
	scorer := NewScorer(&stubGenerator{}, nil)

	_, err := scorer.Score(context.Background(), nil, "role")
	assert.Error(t, err)

	_, err = scorer.Score(context.Background(), testDoc(), "")
	assert.Error(t, err)
}

func TestScore_GenerationFailure(t *testing.T) {
	gen := &stubGenerator{err: &generation.Error{TemplateID: generation.TemplateMatchEvaluation, Message: "model down"}}

	_, err := NewScorer(gen, nil).Score(context.Background(), testDoc(), "role")
	require.Error(t, err)
	assert.True(t, generation.IsFailure(err))
}
