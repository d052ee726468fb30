// Package generation defines the narrow contract between the refinement core
// and the text-generation collaborator: prompt templates in, shape-validated
// text out. Callers never see raw, unvalidated LLM output.
package generation

import "context"

// Shape is the expected structure of a generated response.
type Shape string

// Expected response shapes.
const (
	ShapePlainText  Shape = "PLAIN_TEXT"
	ShapeJSONObject Shape = "JSON_OBJECT"
	ShapeJSONArray  Shape = "JSON_ARRAY"
	ShapeCommaList  Shape = "COMMA_LIST"
)

// Request describes a single generation call.
type Request struct {
	// TemplateID names a registered prompt template (see templates.go).
	TemplateID string
	// Params maps template placeholders to values.
	Params map[string]string
	// Shape is validated against the response before it is accepted.
	Shape Shape
}

// Generator produces text for a request. Implementations must return a
// non-empty, shape-validated response or an *Error; they never return
// unvalidated content.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
