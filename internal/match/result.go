package match

// Result is the shared analysis produced once per request and consumed by
// the report builders. Scores are always present; a failed sub-computation
// degrades to 0.0 or the empty set rather than surfacing as an error.
type Result struct {
	ResumeText    string
	ReferenceText string

	SemanticScore  float64
	KeywordScore   float64
	KeywordDensity float64

	ResumeSkills    SkillSet
	ReferenceSkills SkillSet

	Warnings []string
}

// MissingSkills returns the reference skills absent from the resume, sorted.
func (r Result) MissingSkills() []string {
	return r.ReferenceSkills.Diff(r.ResumeSkills).Sorted()
}
