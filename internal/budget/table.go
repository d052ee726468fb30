package budget

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-refiner/internal/schemas"
	"github.com/jonathan/resume-refiner/internal/types"
)

// Defaults mirror the stock limits shipped with the system.
const (
	defaultObjectiveChars   = 500
	defaultSkillChars       = 50
	defaultOverviewChars    = 60
	defaultDescriptionChars = 200
	defaultSectionChars     = 600
	defaultTolerance        = 0.1
	defaultSkillTarget      = 10
	defaultTotalChars       = 3500
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in budget table.
func Default() *types.BudgetTable {
	return &types.BudgetTable{
		Budgets: []types.BudgetEntry{
			{Category: types.CategoryObjective, MaxChars: defaultObjectiveChars, ToleranceFraction: defaultTolerance},
			{Category: types.CategorySkill, MaxChars: defaultSkillChars, ToleranceFraction: defaultTolerance},
			{Category: types.CategoryBulletOverview, MaxChars: defaultOverviewChars, ToleranceFraction: defaultTolerance},
			{Category: types.CategoryBulletDescription, MaxChars: defaultDescriptionChars, ToleranceFraction: defaultTolerance},
			{Category: types.CategorySectionTotal, MaxChars: defaultSectionChars, ToleranceFraction: defaultTolerance},
		},
		SkillTarget: defaultSkillTarget,
		TotalChars:  defaultTotalChars,
	}
}

// Load reads a budget table from a JSON file, validates it against the
// embedded schema, and fills unset top-level values from the defaults.
func Load(path string) (*types.BudgetTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Message: fmt.Sprintf("failed to read budget file %s", path), Cause: err}
	}

	if err := schemas.Validate(schemas.BudgetTableSchema, data); err != nil {
		return nil, &ConfigurationError{Message: "budget file does not match schema", Cause: err}
	}

	var table types.BudgetTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, &ConfigurationError{Message: "failed to parse budget JSON", Cause: err}
	}

	if table.SkillTarget == 0 {
		table.SkillTarget = defaultSkillTarget
	}
	if table.TotalChars == 0 {
		table.TotalChars = defaultTotalChars
	}

	if err := Validate(&table); err != nil {
		return nil, err
	}

	return &table, nil
}

// Validate checks a budget table for structural validity. Fails closed:
// any unknown category or out-of-range value rejects the whole table.
func Validate(table *types.BudgetTable) error {
	if table == nil || len(table.Budgets) == 0 {
		return &ConfigurationError{Message: "budget table is empty"}
	}

	if err := validate.Struct(table); err != nil {
		return &ConfigurationError{Message: "budget table failed validation", Cause: err}
	}

	seen := make(map[types.Category]bool, len(table.Budgets))
	for _, entry := range table.Budgets {
		if !entry.Category.Valid() {
			return &ConfigurationError{Message: fmt.Sprintf("unknown category %q", entry.Category)}
		}
		if seen[entry.Category] {
			return &ConfigurationError{Message: fmt.Sprintf("duplicate category %q", entry.Category)}
		}
		seen[entry.Category] = true
	}

	// Every category the detector can tag must have an entry; a document
	// field without a recognized budget is a configuration error, not a
	// silently skipped check.
	for _, c := range types.KnownCategories() {
		if !seen[c] {
			return &ConfigurationError{Message: fmt.Sprintf("missing entry for category %q", c)}
		}
	}

	return nil
}
