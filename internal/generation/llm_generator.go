package generation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-refiner/internal/llm"
	"github.com/jonathan/resume-refiner/internal/logger"
	"github.com/jonathan/resume-refiner/internal/prompts"
)

// LLMGenerator implements Generator on top of the shared llm.Client.
//
// Failure policy (shared by every caller): one attempt, then exactly one
// retry with a stricter instruction appended, then an *Error. Callers add no
// retry logic of their own.
type LLMGenerator struct {
	client llm.Client
	logger *zap.Logger
}

// NewLLMGenerator creates a generator backed by client. logger may be nil.
func NewLLMGenerator(client llm.Client, logger *zap.Logger) *LLMGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMGenerator{client: client, logger: logger}
}

// Generate renders the template, calls the model, and validates the response
// shape. The second (strict) attempt reuses the same template with a harder
// instruction appended.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (string, error) {
	spec, ok := templateRegistry[req.TemplateID]
	if !ok {
		return "", &Error{TemplateID: req.TemplateID, Message: "unknown template"}
	}

	template, err := prompts.Get(spec.File, spec.Key)
	if err != nil {
		return "", &Error{TemplateID: req.TemplateID, Message: "failed to load prompt", Cause: err}
	}
	prompt := prompts.Format(template, req.Params)

	result, firstErr := g.attempt(ctx, prompt, spec.Tier, req.Shape)
	if firstErr == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return "", &Error{TemplateID: req.TemplateID, Message: "generation cancelled", Cause: ctx.Err()}
	}

	g.logger.Debug("generation attempt failed, retrying with strict instruction",
		zap.String("template_id", req.TemplateID),
		zap.String("shape", string(req.Shape)),
		zap.String("prompt", logger.TruncateForLog(prompt, 200)),
		zap.Error(firstErr))

	result, retryErr := g.attempt(ctx, prompt+strictInstruction(req.Shape), spec.Tier, req.Shape)
	if retryErr == nil {
		return result, nil
	}

	return "", &Error{
		TemplateID: req.TemplateID,
		Message:    fmt.Sprintf("failed after strict retry (first attempt: %v)", firstErr),
		Cause:      retryErr,
	}
}

// attempt performs a single provider call and shape validation.
func (g *LLMGenerator) attempt(ctx context.Context, prompt string, tier llm.ModelTier, shape Shape) (string, error) {
	var (
		raw string
		err error
	)
	switch shape {
	case ShapeJSONObject, ShapeJSONArray:
		raw, err = g.client.GenerateJSON(ctx, prompt, tier)
	default:
		raw, err = g.client.GenerateContent(ctx, prompt, tier)
	}
	if err != nil {
		return "", err
	}
	return ValidateShape(shape, raw)
}
