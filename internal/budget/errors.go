// Package budget loads and validates the per-category budget table that
// drives the refinement engine.
package budget

import "fmt"

// ConfigurationError represents an invalid budget table: an unknown category,
// a non-positive max_chars, or a tolerance outside [0,1). Detected at run
// start, before any generation calls are made.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("budget configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("budget configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}
