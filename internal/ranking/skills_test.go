package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-refiner/internal/generation"
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

func TestRankSkills(t *testing.T) {
	gen := &stubGenerator{resp: "[2, 0, 1]"}

	order, err := RankSkills(context.Background(), gen, []string{"Go", "SQL", "Kubernetes"}, "platform role")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, order)

	assert.Equal(t, generation.TemplateRankSkills, gen.last.TemplateID)
	assert.Equal(t, generation.ShapeJSONArray, gen.last.Shape)
	assert.Contains(t, gen.last.Params["Skills"], "Kubernetes")
	assert.Equal(t, "platform role", gen.last.Params["JobDescription"])
}

func TestRankSkills_EmptyInput(t *testing.T) {
	gen := &stubGenerator{}

	order, err := RankSkills(context.Background(), gen, nil, "role")
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Empty(t, gen.last.TemplateID, "no generation call for empty skills")
}

func TestRankSkills_GenerationFailure(t *testing.T) {
	boom := errors.New("model down")
	gen := &stubGenerator{err: boom}

	_, err := RankSkills(context.Background(), gen, []string{"Go"}, "role")
	assert.ErrorIs(t, err, boom)
}

func TestRankSkills_InvalidPermutation(t *testing.T) {
	tests := []struct {
		name string
		resp string
	}{
		{"wrong length", "[0, 1]"},
		{"duplicate index", "[0, 0, 1]"},
		{"out of range", "[0, 1, 3]"},
		{"negative index", "[0, -1, 2]"},
		{"not numbers", `["Go", "SQL", "K8s"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{resp: tt.resp}
			_, err := RankSkills(context.Background(), gen, []string{"Go", "SQL", "Kubernetes"}, "role")
			require.Error(t, err)
		})
	}
}
