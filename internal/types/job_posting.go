//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// JobPosting is the structured form of a target job description, extracted
// from raw posting text. Description holds the cleaned posting body used for
// tailoring and match scoring.
type JobPosting struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Field       string    `json:"field,omitempty"`
	Description string    `json:"description"`
	PostingDate string    `json:"posting_date,omitempty"`
	ExtractedAt time.Time `json:"extracted_at,omitempty"`
}
