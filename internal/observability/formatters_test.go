package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-refiner/internal/refinement"
	"github.com/jonathan/resume-refiner/internal/types"
)

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.StructuredDocument{
		Objective: "Backend engineer",
		Skills:    []string{"Go", "SQL"},
		Sections: []types.JobEntry{
			{Title: "Senior Engineer", Bullets: []types.Bullet{{Overview: "o", Description: "d"}}},
		},
	}

	p.PrintDocument(doc)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED DOCUMENT")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "Skills:         2")
}

func TestPrintDocument_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(nil)
	assert.Empty(t, buf.String())
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(&types.Violations{Violations: []types.Violation{
		{FieldID: "objective", Length: 80, MaxChars: 50, Overage: 30},
	}})
	output := buf.String()

	assert.Contains(t, output, "VIOLATIONS")
	assert.Contains(t, output, "objective")
	assert.Contains(t, output, "+30")
}

func TestPrintViolations_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintViolations(&types.Violations{})
	assert.Contains(t, buf.String(), "All fields within budget")
}

func TestPrintOutcome(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintOutcome(&refinement.Outcome{
		State:      refinement.StateConverged,
		Iterations: 1,
		Attempts: []types.RefinementAttempt{
			{FieldID: "objective", Strategy: types.StrategyRewrite, Iteration: 1, BeforeLen: 80, AfterLen: 48},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "REFINEMENT OUTCOME")
	assert.Contains(t, output, "CONVERGED")
	assert.Contains(t, output, "80 -> 48")
}

func TestPrintMatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatch(&types.MatchEvaluation{Score: 78, Explanation: "Good fit"})
	output := buf.String()

	assert.Contains(t, output, "MATCH EVALUATION")
	assert.Contains(t, output, "78/100")
	assert.Contains(t, output, "Good fit")
}
