package extraction

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-refiner/internal/generation"
	"github.com/jonathan/resume-refiner/internal/ingestion"
	"github.com/jonathan/resume-refiner/internal/types"
)

// ExtractJob produces a JobPosting from raw posting text. Like resume
// extraction it is all-or-nothing: any failure yields no posting.
func ExtractJob(ctx context.Context, gen generation.Generator, rawText, sourceName string) (*types.JobPosting, error) {
	cleaned, err := ingestion.Normalize(rawText)
	if err != nil {
		return nil, &Error{Source: sourceName, Message: "failed to normalize input", Cause: err}
	}
	if cleaned == "" {
		return nil, &Error{Source: sourceName, Message: "input text is empty"}
	}

	resp, err := gen.Generate(ctx, generation.Request{
		TemplateID: generation.TemplateExtractJob,
		Params:     map[string]string{"RawText": cleaned},
		Shape:      generation.ShapeJSONObject,
	})
	if err != nil {
		return nil, &Error{Source: sourceName, Message: "generation failed", Cause: err}
	}

	var posting types.JobPosting
	if err := json.Unmarshal([]byte(resp), &posting); err != nil {
		return nil, &Error{Source: sourceName, Message: "failed to parse extracted posting", Cause: err}
	}
	if posting.Description == "" {
		return nil, &Error{Source: sourceName, Message: "extracted posting has no description"}
	}

	posting.ID = uuid.NewString()
	posting.ExtractedAt = time.Now().UTC()
	return &posting, nil
}
