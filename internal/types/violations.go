//nolint:revive // types is a standard Go package name pattern
package types

// Violation type constants.
const (
	// ViolationLengthOverflow marks a single text field over its budget.
	ViolationLengthOverflow = "length_overflow"
	// ViolationSectionOverflow marks a section whose combined field lengths
	// exceed the section_total budget.
	ViolationSectionOverflow = "section_overflow"
	// ViolationSkillCount marks a skills list longer than the configured target.
	ViolationSkillCount = "skill_count"
)

// Violation represents a single budget failure on one addressable field.
type Violation struct {
	Type     string   `json:"type"`
	FieldID  FieldID  `json:"field_id"`
	Category Category `json:"category"`
	Length   int      `json:"length"`
	MaxChars int      `json:"max_chars"`
	Overage  int      `json:"overage"`
	Details  string   `json:"details,omitempty"`
}

// Violations represents an ordered collection of budget failures. Order is
// the detector's deterministic processing order.
type Violations struct {
	Violations []Violation `json:"violations"`
}

// Empty reports whether there are no violations.
func (v *Violations) Empty() bool {
	return v == nil || len(v.Violations) == 0
}

// ByField returns the subset of violations touching the given field IDs,
// preserving detector order.
func (v *Violations) ByField(ids map[FieldID]bool) *Violations {
	out := &Violations{}
	if v == nil {
		return out
	}
	for _, viol := range v.Violations {
		if ids[viol.FieldID] {
			out.Violations = append(out.Violations, viol)
		}
	}
	return out
}
