// Package extraction turns raw source text into structured documents via LLM
// extraction. Extraction is all-or-nothing: a failure produces no document,
// never a partially populated one.
package extraction

import "fmt"

// Error represents an extraction failure. The refinement engine never starts
// on a failed extraction; this is surfaced to the caller as a hard failure.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed for %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
