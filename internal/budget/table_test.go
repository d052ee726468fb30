package budget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-refiner/internal/types"
)

func TestDefault_IsValid(t *testing.T) {
	table := Default()

	require.NoError(t, Validate(table))
	assert.Equal(t, 10, table.SkillTarget)
	assert.Equal(t, 3500, table.TotalChars)

	entry, ok := table.Lookup(types.CategoryObjective)
	require.True(t, ok)
	assert.Equal(t, 500, entry.MaxChars)
	assert.Equal(t, 0.1, entry.ToleranceFraction)
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *types.BudgetTable { return Default() }

	tests := []struct {
		name   string
		mutate func(*types.BudgetTable)
	}{
		{"nil table", nil},
		{"empty budgets", func(tb *types.BudgetTable) { tb.Budgets = nil }},
		{"zero max_chars", func(tb *types.BudgetTable) { tb.Budgets[0].MaxChars = 0 }},
		{"negative max_chars", func(tb *types.BudgetTable) { tb.Budgets[0].MaxChars = -5 }},
		{"tolerance at one", func(tb *types.BudgetTable) { tb.Budgets[0].ToleranceFraction = 1.0 }},
		{"negative tolerance", func(tb *types.BudgetTable) { tb.Budgets[0].ToleranceFraction = -0.1 }},
		{"unknown category", func(tb *types.BudgetTable) { tb.Budgets[0].Category = "headline" }},
		{"duplicate category", func(tb *types.BudgetTable) { tb.Budgets[1].Category = tb.Budgets[0].Category }},
		{"missing category", func(tb *types.BudgetTable) { tb.Budgets = tb.Budgets[:4] }},
		{"zero skill target", func(tb *types.BudgetTable) { tb.SkillTarget = 0 }},
		{"zero total chars", func(tb *types.BudgetTable) { tb.TotalChars = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var table *types.BudgetTable
			if tt.mutate != nil {
				table = base()
				tt.mutate(table)
			}
			err := Validate(table)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func writeTempBudget(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budgets.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeTempBudget(t, `{
		"budgets": [
			{"category": "objective", "max_chars": 400, "tolerance_fraction": 0.05},
			{"category": "skill", "max_chars": 40, "tolerance_fraction": 0.1},
			{"category": "bullet_overview", "max_chars": 60, "tolerance_fraction": 0.1},
			{"category": "bullet_description", "max_chars": 180, "tolerance_fraction": 0.1},
			{"category": "section_total", "max_chars": 500, "tolerance_fraction": 0.1}
		],
		"skill_target": 8
	}`)

	table, err := Load(path)
	require.NoError(t, err)

	entry, ok := table.Lookup(types.CategoryObjective)
	require.True(t, ok)
	assert.Equal(t, 400, entry.MaxChars)
	assert.Equal(t, 8, table.SkillTarget)
	assert.Equal(t, 3500, table.TotalChars, "unset total_chars falls back to default")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_SchemaRejection(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"missing budgets", `{"skill_target": 5}`},
		{"wrong type", `{"budgets": [{"category": "objective", "max_chars": "lots"}]}`},
		{"non-positive max", `{"budgets": [
			{"category": "objective", "max_chars": 0, "tolerance_fraction": 0.1},
			{"category": "skill", "max_chars": 40, "tolerance_fraction": 0.1},
			{"category": "bullet_overview", "max_chars": 60, "tolerance_fraction": 0.1},
			{"category": "bullet_description", "max_chars": 180, "tolerance_fraction": 0.1},
			{"category": "section_total", "max_chars": 500, "tolerance_fraction": 0.1}
		]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTempBudget(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoad_UnknownCategory(t *testing.T) {
	path := writeTempBudget(t, `{
		"budgets": [
			{"category": "headline", "max_chars": 100, "tolerance_fraction": 0.1}
		]
	}`)

	_, err := Load(path)
	require.Error(t, err)
}
