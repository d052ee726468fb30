// Package ranking provides LLM-backed relevance ranking of skills against a
// target job description. The refinement engine uses it to decide which
// skills to prune first.
package ranking

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-refiner/internal/generation"
)

// RankSkills orders skills by relevance to the job description, most relevant
// first. The returned slice is a permutation of indices into skills. The
// response is validated strictly: every index present exactly once.
func RankSkills(ctx context.Context, gen generation.Generator, skills []string, jobDescription string) ([]int, error) {
	if len(skills) == 0 {
		return nil, nil
	}

	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	resp, err := gen.Generate(ctx, generation.Request{
		TemplateID: generation.TemplateRankSkills,
		Params: map[string]string{
			"Skills":         string(skillsJSON),
			"JobDescription": jobDescription,
		},
		Shape: generation.ShapeJSONArray,
	})
	if err != nil {
		return nil, err
	}

	var indices []int
	if err := json.Unmarshal([]byte(resp), &indices); err != nil {
		return nil, fmt.Errorf("failed to parse ranking response: %w (content: %s)", err, resp)
	}

	if err := checkPermutation(indices, len(skills)); err != nil {
		return nil, fmt.Errorf("invalid ranking response: %w (content: %s)", err, resp)
	}

	return indices, nil
}

// checkPermutation verifies indices is a permutation of [0, n).
func checkPermutation(indices []int, n int) error {
	if len(indices) != n {
		return fmt.Errorf("expected %d indices, got %d", n, len(indices))
	}
	seen := make([]bool, n)
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("index %d out of range [0,%d)", idx, n)
		}
		if seen[idx] {
			return fmt.Errorf("duplicate index %d", idx)
		}
		seen[idx] = true
	}
	return nil
}
