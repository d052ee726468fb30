package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *StructuredDocument {
	return &StructuredDocument{
		Objective: "Seasoned engineer seeking a backend role",
		Skills:    []string{"Go", "PostgreSQL", "Kubernetes"},
		Sections: []JobEntry{
			{
				Title:        "Senior Engineer",
				Organization: "Acme Corp",
				Dates:        "2020-2024",
				Bullets: []Bullet{
					{Overview: "Led platform team", Description: "Owned the migration of billing to a new service"},
					{Overview: "Cut costs", Description: "Reduced infra spend by consolidating clusters"},
				},
			},
			{
				Title:        "Engineer",
				Organization: "Widgets Inc",
				Dates:        "2017-2020",
				Bullets: []Bullet{
					{Overview: "Built APIs", Description: "Shipped the public REST API"},
				},
			},
		},
		Education:      []string{"BS Computer Science"},
		Certifications: []string{"CKA"},
	}
}

func TestFieldID_TextAddressing(t *testing.T) {
	doc := sampleDocument()

	tests := []struct {
		name string
		id   FieldID
		want string
	}{
		{"objective", ObjectiveFieldID(), doc.Objective},
		{"skill", SkillFieldID(1), "PostgreSQL"},
		{"overview", BulletOverviewFieldID(0, 1), "Cut costs"},
		{"description", BulletDescriptionFieldID(1, 0), "Shipped the public REST API"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := doc.Text(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldID_SectionAggregate(t *testing.T) {
	doc := sampleDocument()

	text, ok := doc.Text(SectionFieldID(1))
	require.True(t, ok)
	assert.Equal(t, doc.Sections[1].AggregateLength(), len(text))
	assert.Contains(t, text, "Widgets Inc")
}

func TestFieldID_OutOfRange(t *testing.T) {
	doc := sampleDocument()

	for _, id := range []FieldID{
		SkillFieldID(99),
		SectionFieldID(5),
		BulletOverviewFieldID(0, 9),
		FieldID("garbage"),
		FieldID("sections[0].bullets[0].nonsense"),
	} {
		_, ok := doc.Text(id)
		assert.False(t, ok, "id %s should not resolve", id)
	}
}

func TestSetText(t *testing.T) {
	doc := sampleDocument()

	require.True(t, doc.SetText(ObjectiveFieldID(), "short"))
	assert.Equal(t, "short", doc.Objective)

	require.True(t, doc.SetText(SkillFieldID(0), "Golang"))
	assert.Equal(t, "Golang", doc.Skills[0])

	require.True(t, doc.SetText(BulletDescriptionFieldID(0, 0), "rewritten"))
	assert.Equal(t, "rewritten", doc.Sections[0].Bullets[0].Description)

	// Section aggregates are read-only through field addressing.
	assert.False(t, doc.SetText(SectionFieldID(0), "whole section"))
}

func TestAggregateLength(t *testing.T) {
	entry := JobEntry{
		Title:        "abc",
		Organization: "de",
		Dates:        "f",
		Bullets: []Bullet{
			{Overview: "1234", Description: "56789"},
		},
	}
	assert.Equal(t, 3+2+1+4+5, entry.AggregateLength())
}

func TestTotalLength(t *testing.T) {
	doc := &StructuredDocument{
		Objective:      "12345",
		Skills:         []string{"ab", "cd"},
		Education:      []string{"xyz"},
		Certifications: []string{"q"},
		Sections: []JobEntry{
			{Title: "t", Bullets: []Bullet{{Overview: "ov", Description: "desc"}}},
		},
	}
	assert.Equal(t, 5+4+3+1+1+2+4, doc.TotalLength())
}

func TestTextLength_CountsCharacters(t *testing.T) {
	assert.Equal(t, 5, TextLength("ascii"))
	assert.Equal(t, 4, TextLength("café"))
	assert.Equal(t, 3, TextLength("日本語"))
	assert.Equal(t, 0, TextLength(""))
}

func TestAggregateLength_Multibyte(t *testing.T) {
	entry := JobEntry{
		Title:        "Ingénieur",
		Organization: "Société",
		Bullets: []Bullet{
			{Overview: "très", Description: "réussi"},
		},
	}
	assert.Equal(t, 9+7+4+6, entry.AggregateLength())
}

func TestTotalLength_Multibyte(t *testing.T) {
	doc := &StructuredDocument{
		Objective: "日本語",
		Skills:    []string{"café"},
	}
	assert.Equal(t, 3+4, doc.TotalLength())
}

func TestClone_DeepCopy(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()

	clone.Objective = "changed"
	clone.Skills[0] = "changed"
	clone.Sections[0].Bullets[0].Overview = "changed"
	clone.Education[0] = "changed"

	assert.NotEqual(t, "changed", doc.Objective)
	assert.Equal(t, "Go", doc.Skills[0])
	assert.Equal(t, "Led platform team", doc.Sections[0].Bullets[0].Overview)
	assert.Equal(t, "BS Computer Science", doc.Education[0])
}

func TestClone_Nil(t *testing.T) {
	var doc *StructuredDocument
	assert.Nil(t, doc.Clone())
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range KnownCategories() {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("headline").Valid())
}
