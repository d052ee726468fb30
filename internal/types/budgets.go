//nolint:revive // types is a standard Go package name pattern
package types

import "math"

// BudgetEntry defines the length constraint for one content category. A field
// is compliant when its character count is at most
// max_chars * (1 + tolerance_fraction). Lengths are characters, not bytes;
// see TextLength.
type BudgetEntry struct {
	Category          Category `json:"category" validate:"required"`
	MaxChars          int      `json:"max_chars" validate:"gt=0"`
	ToleranceFraction float64  `json:"tolerance_fraction" validate:"gte=0,lt=1"`
}

// Limit returns the effective character ceiling including tolerance.
func (e BudgetEntry) Limit() int {
	return int(math.Floor(float64(e.MaxChars) * (1 + e.ToleranceFraction)))
}

// Compliant reports whether a text of length n satisfies this budget.
func (e BudgetEntry) Compliant(n int) bool {
	return n <= e.Limit()
}

// Overage returns how far a text of length n exceeds max_chars. Zero when
// the text fits within max_chars (tolerance is not subtracted here; overage
// is always measured against the nominal budget).
func (e BudgetEntry) Overage(n int) int {
	if n <= e.MaxChars {
		return 0
	}
	return n - e.MaxChars
}

// BudgetTable is the immutable per-run budget configuration. SkillTarget is
// the exact number of skills a finalized document carries (pruning-only; the
// engine never fabricates skills). TotalChars is the whole-document budget
// used by the escalation pass.
type BudgetTable struct {
	Budgets     []BudgetEntry `json:"budgets" validate:"required,min=1,dive"`
	SkillTarget int           `json:"skill_target" validate:"gt=0"`
	TotalChars  int           `json:"total_chars" validate:"gt=0"`
}

// Lookup returns the budget entry for a category.
func (t *BudgetTable) Lookup(c Category) (BudgetEntry, bool) {
	for _, e := range t.Budgets {
		if e.Category == c {
			return e, true
		}
	}
	return BudgetEntry{}, false
}
