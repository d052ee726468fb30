//nolint:revive // types is a standard Go package name pattern
package types

// Strategy names recorded on refinement attempts.
const (
	StrategyPruneSkills   = "prune_skills"
	StrategyRewrite       = "rewrite"
	StrategySectionReduce = "section_reduce"
	StrategyEscalate      = "escalate"
)

// RefinementAttempt is one audit record in the refinement log: a single
// strategy application against a single field within one iteration.
type RefinementAttempt struct {
	FieldID   FieldID  `json:"field_id"`
	Category  Category `json:"category"`
	Strategy  string   `json:"strategy"`
	Iteration int      `json:"iteration"`
	BeforeLen int      `json:"before_len"`
	AfterLen  int      `json:"after_len"`
}

// Reduced reports whether the attempt actually shortened the field.
func (a RefinementAttempt) Reduced() bool {
	return a.AfterLen < a.BeforeLen
}
