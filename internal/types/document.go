// Package types provides type definitions for structured data used throughout the resume-refiner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Category identifies which budget entry applies to a text field.
type Category string

// Known content categories. Every addressable text field carries exactly one.
const (
	CategoryObjective         Category = "objective"
	CategorySkill             Category = "skill"
	CategoryBulletOverview    Category = "bullet_overview"
	CategoryBulletDescription Category = "bullet_description"
	CategorySectionTotal      Category = "section_total"
)

// KnownCategories returns all recognized categories in a stable order.
func KnownCategories() []Category {
	return []Category{
		CategoryObjective,
		CategorySkill,
		CategoryBulletOverview,
		CategoryBulletDescription,
		CategorySectionTotal,
	}
}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	switch c {
	case CategoryObjective, CategorySkill, CategoryBulletOverview, CategoryBulletDescription, CategorySectionTotal:
		return true
	}
	return false
}

// Bullet is a single experience bullet with a short bolded overview and a longer description.
type Bullet struct {
	Overview    string `json:"overview"`
	Description string `json:"description"`
}

// JobEntry is one position in the experience section. Bullet order reflects
// source chronology and must be preserved across refinement.
type JobEntry struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Dates        string   `json:"dates"`
	Bullets      []Bullet `json:"bullets"`
}

// StructuredDocument is the canonical intermediate representation of an
// extracted resume. It is created once by extraction, owned exclusively by a
// single refinement run, and mutated in place across iterations.
type StructuredDocument struct {
	ID             string     `json:"id,omitempty"`
	Objective      string     `json:"objective"`
	Skills         []string   `json:"skills"`
	Sections       []JobEntry `json:"sections"`
	Education      []string   `json:"education,omitempty"`
	Certifications []string   `json:"certifications,omitempty"`

	SourceFile  string    `json:"source_file,omitempty"`
	ExtractedAt time.Time `json:"extracted_at,omitempty"`
}

// FieldID addresses a single budgeted text field inside a StructuredDocument.
// Forms:
//
//	objective
//	skills[i]
//	sections[i]                       (section total, aggregate)
//	sections[i].bullets[j].overview
//	sections[i].bullets[j].description
type FieldID string

// ObjectiveFieldID addresses the objective statement.
func ObjectiveFieldID() FieldID { return "objective" }

// SkillFieldID addresses the i-th skill.
func SkillFieldID(i int) FieldID { return FieldID(fmt.Sprintf("skills[%d]", i)) }

// SectionFieldID addresses the aggregate of the i-th section.
func SectionFieldID(i int) FieldID { return FieldID(fmt.Sprintf("sections[%d]", i)) }

// BulletOverviewFieldID addresses the overview of bullet j in section i.
func BulletOverviewFieldID(i, j int) FieldID {
	return FieldID(fmt.Sprintf("sections[%d].bullets[%d].overview", i, j))
}

// BulletDescriptionFieldID addresses the description of bullet j in section i.
func BulletDescriptionFieldID(i, j int) FieldID {
	return FieldID(fmt.Sprintf("sections[%d].bullets[%d].description", i, j))
}

// parseFieldID decomposes a FieldID into its indices. part is one of
// "objective", "skill", "section", "overview", "description".
func parseFieldID(id FieldID) (part string, section, index int, ok bool) {
	s := string(id)
	switch {
	case s == "objective":
		return "objective", -1, -1, true
	case strings.HasPrefix(s, "skills["):
		var i int
		if _, err := fmt.Sscanf(s, "skills[%d]", &i); err == nil && i >= 0 {
			return "skill", -1, i, true
		}
	case strings.HasPrefix(s, "sections["):
		var i, j int
		if n, err := fmt.Sscanf(s, "sections[%d].bullets[%d].overview", &i, &j); err == nil && n == 2 {
			return "overview", i, j, true
		}
		if n, err := fmt.Sscanf(s, "sections[%d].bullets[%d].description", &i, &j); err == nil && n == 2 {
			return "description", i, j, true
		}
		if n, err := fmt.Sscanf(s, "sections[%d]", &i); err == nil && n == 1 && !strings.Contains(s, ".") {
			return "section", i, -1, true
		}
	}
	return "", -1, -1, false
}

// Text returns the text addressed by id. For section IDs it returns the
// concatenated section text used for aggregate length checks.
func (d *StructuredDocument) Text(id FieldID) (string, bool) {
	part, si, idx, ok := parseFieldID(id)
	if !ok {
		return "", false
	}
	switch part {
	case "objective":
		return d.Objective, true
	case "skill":
		if idx >= len(d.Skills) {
			return "", false
		}
		return d.Skills[idx], true
	case "section":
		if si >= len(d.Sections) {
			return "", false
		}
		return d.Sections[si].aggregateText(), true
	case "overview", "description":
		if si >= len(d.Sections) || idx >= len(d.Sections[si].Bullets) {
			return "", false
		}
		b := d.Sections[si].Bullets[idx]
		if part == "overview" {
			return b.Overview, true
		}
		return b.Description, true
	}
	return "", false
}

// SetText replaces the text addressed by id. Section IDs are not settable
// through this method; aggregate rewrites replace the JobEntry wholesale.
func (d *StructuredDocument) SetText(id FieldID, text string) bool {
	part, si, idx, ok := parseFieldID(id)
	if !ok {
		return false
	}
	switch part {
	case "objective":
		d.Objective = text
		return true
	case "skill":
		if idx >= len(d.Skills) {
			return false
		}
		d.Skills[idx] = text
		return true
	case "overview":
		if si >= len(d.Sections) || idx >= len(d.Sections[si].Bullets) {
			return false
		}
		d.Sections[si].Bullets[idx].Overview = text
		return true
	case "description":
		if si >= len(d.Sections) || idx >= len(d.Sections[si].Bullets) {
			return false
		}
		d.Sections[si].Bullets[idx].Description = text
		return true
	}
	return false
}

// aggregateText joins the budgeted text of a section for total-length checks.
func (e *JobEntry) aggregateText() string {
	var sb strings.Builder
	sb.WriteString(e.Title)
	sb.WriteString(e.Organization)
	sb.WriteString(e.Dates)
	for _, b := range e.Bullets {
		sb.WriteString(b.Overview)
		sb.WriteString(b.Description)
	}
	return sb.String()
}

// TextLength returns the budget-relevant length of a text: characters, not
// bytes. Multibyte content must not be penalized by its encoding.
func TextLength(s string) int {
	return utf8.RuneCountInString(s)
}

// AggregateLength returns the combined character count of a section's fields.
func (e *JobEntry) AggregateLength() int {
	n := TextLength(e.Title) + TextLength(e.Organization) + TextLength(e.Dates)
	for _, b := range e.Bullets {
		n += TextLength(b.Overview) + TextLength(b.Description)
	}
	return n
}

// TotalLength returns the combined character count of all budgeted content.
func (d *StructuredDocument) TotalLength() int {
	n := TextLength(d.Objective)
	for _, s := range d.Skills {
		n += TextLength(s)
	}
	for i := range d.Sections {
		n += d.Sections[i].AggregateLength()
	}
	for _, e := range d.Education {
		n += TextLength(e)
	}
	for _, c := range d.Certifications {
		n += TextLength(c)
	}
	return n
}

// Clone returns a deep copy of the document. The refinement engine works on a
// clone so a cancelled run never leaves the caller's document half-mutated.
func (d *StructuredDocument) Clone() *StructuredDocument {
	if d == nil {
		return nil
	}
	out := *d
	out.Skills = append([]string(nil), d.Skills...)
	out.Education = append([]string(nil), d.Education...)
	out.Certifications = append([]string(nil), d.Certifications...)
	out.Sections = make([]JobEntry, len(d.Sections))
	for i, sec := range d.Sections {
		copied := sec
		copied.Bullets = append([]Bullet(nil), sec.Bullets...)
		out.Sections[i] = copied
	}
	return &out
}
