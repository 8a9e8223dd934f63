package types

// Category names a scoring category of a MatchScore.
type Category string

const (
	CategoryRequiredSkills  Category = "required_skills"
	CategoryPreferredSkills Category = "preferred_skills"
	CategoryExperience      Category = "experience"
	CategoryEducation       Category = "education"
	CategoryCertifications  Category = "certifications"
	CategoryKeywords        Category = "keywords"
)

// Categories lists every scoring category in reporting order.
var Categories = []Category{
	CategoryRequiredSkills,
	CategoryPreferredSkills,
	CategoryExperience,
	CategoryEducation,
	CategoryCertifications,
	CategoryKeywords,
}

// MatchScore is the weighted 0-100 score of a candidate against a job.
type MatchScore struct {
	Strategy       string               `json:"strategy"`
	CategoryScores map[Category]float64 `json:"category_scores"`
	Weights        map[Category]float64 `json:"weights"`
	TotalScore     float64              `json:"total_score"`
	CloseSkills    []string             `json:"close_skills,omitempty"`
}
