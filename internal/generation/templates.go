package generation

import "github.com/jonathan/resume-refiner/internal/llm"

// Template IDs understood by the LLM-backed generator.
const (
	// TemplateRewriteField asks for a targeted rewrite of one text field to an
	// explicit character target. Params: FieldName, TargetChars, Text.
	TemplateRewriteField = "rewrite-field"
	// TemplateSummarizeField asks for a from-scratch summary of a field within
	// its nominal budget. Params: FieldName, MaxChars, Text.
	TemplateSummarizeField = "summarize-field"
	// TemplateSectionReduce asks for a percentage reduction of a whole section,
	// returned as a JSON object with the same bullet count.
	// Params: ReductionPercent, SectionJSON.
	TemplateSectionReduce = "section-reduce"
	// TemplateDocumentReduce is the escalation pass over the entire document.
	// Params: MaxChars, DocumentJSON.
	TemplateDocumentReduce = "document-reduce"
	// TemplateRankSkills orders skills by relevance to a job description.
	// Params: Skills, JobDescription.
	TemplateRankSkills = "rank-skills"
	// TemplateMatchEvaluation scores a finalized document against a job.
	// Params: ResumeJSON, JobDescription.
	TemplateMatchEvaluation = "match-evaluation"
	// TemplateExtractResume extracts a StructuredDocument from raw resume text.
	// Params: RawText.
	TemplateExtractResume = "extract-resume"
	// TemplateExtractJob extracts a JobPosting from raw posting text.
	// Params: RawText.
	TemplateExtractJob = "extract-job"
)

// templateSpec binds a template ID to its prompt file, key, and model tier.
type templateSpec struct {
	File string
	Key  string
	Tier llm.ModelTier
}

var templateRegistry = map[string]templateSpec{
	TemplateRewriteField:    {File: "refinement.json", Key: "rewrite-field", Tier: llm.TierAdvanced},
	TemplateSummarizeField:  {File: "refinement.json", Key: "summarize-field", Tier: llm.TierAdvanced},
	TemplateSectionReduce:   {File: "refinement.json", Key: "section-reduce", Tier: llm.TierAdvanced},
	TemplateDocumentReduce:  {File: "refinement.json", Key: "document-reduce", Tier: llm.TierAdvanced},
	TemplateRankSkills:      {File: "ranking.json", Key: "rank-skills", Tier: llm.TierLite},
	TemplateMatchEvaluation: {File: "scoring.json", Key: "match-evaluation", Tier: llm.TierAdvanced},
	TemplateExtractResume:   {File: "extraction.json", Key: "extract-resume", Tier: llm.TierStandard},
	TemplateExtractJob:      {File: "extraction.json", Key: "extract-job", Tier: llm.TierStandard},
}
