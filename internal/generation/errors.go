package generation

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when a response does not match the requested shape.
var ErrShapeMismatch = errors.New("response shape mismatch")

// ErrEmptyResponse is returned when the provider produced no usable text.
var ErrEmptyResponse = errors.New("empty response")

// Error represents a generation failure: the call errored, timed out, or the
// response failed shape validation after the single strict retry.
type Error struct {
	TemplateID string
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed for template %s: %s: %v", e.TemplateID, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed for template %s: %s", e.TemplateID, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsFailure reports whether err is a generation failure.
func IsFailure(err error) bool {
	var ge *Error
	return errors.As(err, &ge)
}
