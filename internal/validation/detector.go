// Package validation provides budget-compliance checking for structured
// documents. Detection is a pure function of the document and the budget
// table; its output order is the engine's processing order.
package validation

import (
	"fmt"

	"github.com/jonathan/resume-refiner/internal/types"
)

// Detect returns every budget violation in the document, tagged with its
// category and overage. Ordering is deterministic: objective first, then
// sections in document order (bullets in order, then the section total),
// then the skills list. This order doubles as the tie-break for which
// violation is processed first.
func Detect(doc *types.StructuredDocument, table *types.BudgetTable) *types.Violations {
	out := &types.Violations{}
	if doc == nil {
		return out
	}

	objectiveBudget, _ := table.Lookup(types.CategoryObjective)
	skillBudget, _ := table.Lookup(types.CategorySkill)
	overviewBudget, _ := table.Lookup(types.CategoryBulletOverview)
	descriptionBudget, _ := table.Lookup(types.CategoryBulletDescription)
	sectionBudget, _ := table.Lookup(types.CategorySectionTotal)

	if n := types.TextLength(doc.Objective); !objectiveBudget.Compliant(n) {
		out.Violations = append(out.Violations, lengthViolation(types.ObjectiveFieldID(), objectiveBudget, n))
	}

	for si := range doc.Sections {
		sec := &doc.Sections[si]
		for bi := range sec.Bullets {
			b := &sec.Bullets[bi]
			if n := types.TextLength(b.Overview); !overviewBudget.Compliant(n) {
				out.Violations = append(out.Violations, lengthViolation(types.BulletOverviewFieldID(si, bi), overviewBudget, n))
			}
			if n := types.TextLength(b.Description); !descriptionBudget.Compliant(n) {
				out.Violations = append(out.Violations, lengthViolation(types.BulletDescriptionFieldID(si, bi), descriptionBudget, n))
			}
		}
		if n := sec.AggregateLength(); !sectionBudget.Compliant(n) {
			v := lengthViolation(types.SectionFieldID(si), sectionBudget, n)
			v.Type = types.ViolationSectionOverflow
			v.Details = fmt.Sprintf("section %q totals %d chars, budget %d", sec.Title, n, sectionBudget.MaxChars)
			out.Violations = append(out.Violations, v)
		}
	}

	if table.SkillTarget > 0 && len(doc.Skills) > table.SkillTarget {
		out.Violations = append(out.Violations, types.Violation{
			Type:     types.ViolationSkillCount,
			FieldID:  "skills",
			Category: types.CategorySkill,
			Length:   len(doc.Skills),
			MaxChars: table.SkillTarget,
			Overage:  len(doc.Skills) - table.SkillTarget,
			Details:  fmt.Sprintf("%d skills, target is %d", len(doc.Skills), table.SkillTarget),
		})
	}
	for i, s := range doc.Skills {
		if n := types.TextLength(s); !skillBudget.Compliant(n) {
			out.Violations = append(out.Violations, lengthViolation(types.SkillFieldID(i), skillBudget, n))
		}
	}

	return out
}

func lengthViolation(id types.FieldID, entry types.BudgetEntry, length int) types.Violation {
	return types.Violation{
		Type:     types.ViolationLengthOverflow,
		FieldID:  id,
		Category: entry.Category,
		Length:   length,
		MaxChars: entry.MaxChars,
		Overage:  entry.Overage(length),
	}
}
