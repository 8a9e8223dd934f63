package types

// Priority ranks a skill gap.
type Priority string

const (
	PriorityCritical  Priority = "critical"
	PriorityImportant Priority = "important"
)

// SkillGap is the level-aware gap for one required skill.
type SkillGap struct {
	Skill         string   `json:"skill"`
	RequiredLevel int      `json:"required_level"`
	ActualLevel   int      `json:"actual_level"`
	Gap           int      `json:"gap"`
	Priority      Priority `json:"priority"`
}

// GapAnalysis is the output of the gap analyzer.
type GapAnalysis struct {
	MissingRequiredSkills  []string   `json:"missing_required_skills"`
	MissingPreferredSkills []string   `json:"missing_preferred_skills"`
	ExperienceGap          float64    `json:"experience_gap"`
	EducationGap           string     `json:"education_gap"`
	SkillGaps              []SkillGap `json:"skill_gaps,omitempty"`
}

// AnalysisRecord is one entry of the analyzed_jobs document.
type AnalysisRecord struct {
	JobID           string      `json:"job_id"`
	Title           string      `json:"title"`
	Company         string      `json:"company"`
	AnalyzedAt      string      `json:"analyzed_at"`
	Score           MatchScore  `json:"score"`
	DetailedScore   MatchScore  `json:"detailed_score"`
	Gaps            GapAnalysis `json:"gaps"`
	Recommendations []string    `json:"recommendations"`
}
