package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_StructuredDocument(t *testing.T) {
	valid := []byte(`{
		"objective": "Backend engineer",
		"skills": ["Go"],
		"sections": [
			{"title": "Engineer", "bullets": [{"overview": "o", "description": "d"}]}
		]
	}`)
	assert.NoError(t, Validate(StructuredDocumentSchema, valid))
}

func TestValidate_StructuredDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing required fields", `{"objective": "x"}`},
		{"skills not an array", `{"objective": "x", "skills": "Go", "sections": []}`},
		{"bullet missing overview", `{
			"objective": "x", "skills": [],
			"sections": [{"title": "t", "bullets": [{"description": "d"}]}]
		}`},
		{"not an object", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(StructuredDocumentSchema, []byte(tt.doc))
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
			assert.Contains(t, ve.Error(), "validation failed")
		})
	}
}

func TestValidate_BudgetTable(t *testing.T) {
	valid := []byte(`{
		"budgets": [
			{"category": "objective", "max_chars": 500, "tolerance_fraction": 0.1}
		],
		"skill_target": 10
	}`)
	assert.NoError(t, Validate(BudgetTableSchema, valid))

	invalid := []byte(`{
		"budgets": [
			{"category": "made_up", "max_chars": 500}
		]
	}`)
	var ve *ValidationError
	require.ErrorAs(t, Validate(BudgetTableSchema, invalid), &ve)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nonexistent.schema.json", []byte(`{}`))
	require.Error(t, err)

	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}
