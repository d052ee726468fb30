package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-refiner/internal/llm"
)

// ValidateShape checks text against the expected shape and returns the
// cleaned response. A mismatch is reported as an error wrapping
// ErrShapeMismatch; it is never silently coerced.
func ValidateShape(shape Shape, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyResponse
	}

	switch shape {
	case ShapePlainText:
		return trimmed, nil

	case ShapeJSONObject:
		cleaned := llm.CleanJSONBlock(trimmed)
		var obj map[string]any
		if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
			return "", fmt.Errorf("%w: expected JSON object: %v", ErrShapeMismatch, err)
		}
		return cleaned, nil

	case ShapeJSONArray:
		cleaned := llm.CleanJSONBlock(trimmed)
		var arr []any
		if err := json.Unmarshal([]byte(cleaned), &arr); err != nil {
			return "", fmt.Errorf("%w: expected JSON array: %v", ErrShapeMismatch, err)
		}
		return cleaned, nil

	case ShapeCommaList:
		items := SplitCommaList(trimmed)
		if len(items) == 0 {
			return "", fmt.Errorf("%w: expected comma-separated list", ErrShapeMismatch)
		}
		return strings.Join(items, ", "), nil

	default:
		return "", fmt.Errorf("%w: unknown shape %q", ErrShapeMismatch, shape)
	}
}

// SplitCommaList splits a comma-separated response into trimmed, non-empty items.
func SplitCommaList(text string) []string {
	parts := strings.Split(text, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if item := strings.TrimSpace(p); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// strictInstruction returns the harder follow-up instruction appended on the
// single retry after a shape failure.
func strictInstruction(shape Shape) string {
	switch shape {
	case ShapeJSONObject:
		return "\n\nSTRICT: Return ONLY a single valid JSON object. No markdown, no code fences, no commentary."
	case ShapeJSONArray:
		return "\n\nSTRICT: Return ONLY a single valid JSON array. No markdown, no code fences, no commentary."
	case ShapeCommaList:
		return "\n\nSTRICT: Return ONLY a comma-separated list on one line. No numbering, no extra text."
	default:
		return "\n\nSTRICT: Return ONLY the requested text. No preamble, no explanation, no formatting."
	}
}
