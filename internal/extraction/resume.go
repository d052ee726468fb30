package extraction

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-refiner/internal/generation"
	"github.com/jonathan/resume-refiner/internal/ingestion"
	"github.com/jonathan/resume-refiner/internal/schemas"
	"github.com/jonathan/resume-refiner/internal/types"
)

// ExtractResume produces a StructuredDocument from raw resume text. The
// response is validated against the document schema before acceptance;
// entry order in the source is preserved by the extraction prompt.
func ExtractResume(ctx context.Context, gen generation.Generator, rawText, sourceName string) (*types.StructuredDocument, error) {
	cleaned, err := ingestion.Normalize(rawText)
	if err != nil {
		return nil, &Error{Source: sourceName, Message: "failed to normalize input", Cause: err}
	}
	if cleaned == "" {
		return nil, &Error{Source: sourceName, Message: "input text is empty"}
	}

	resp, err := gen.Generate(ctx, generation.Request{
		TemplateID: generation.TemplateExtractResume,
		Params:     map[string]string{"RawText": cleaned},
		Shape:      generation.ShapeJSONObject,
	})
	if err != nil {
		return nil, &Error{Source: sourceName, Message: "generation failed", Cause: err}
	}

	if err := schemas.Validate(schemas.StructuredDocumentSchema, []byte(resp)); err != nil {
		return nil, &Error{Source: sourceName, Message: "extracted document does not match schema", Cause: err}
	}

	var doc types.StructuredDocument
	if err := json.Unmarshal([]byte(resp), &doc); err != nil {
		return nil, &Error{Source: sourceName, Message: "failed to parse extracted document", Cause: err}
	}

	doc.ID = uuid.NewString()
	doc.SourceFile = sourceName
	doc.ExtractedAt = time.Now().UTC()
	return &doc, nil
}
