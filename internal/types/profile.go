package types

import "github.com/go-playground/validator/v10"

// CandidateProfile is the structured candidate record produced by the CV parser.
// It is treated as immutable for the duration of one analysis.
type CandidateProfile struct {
	Name            string      `json:"name"`
	Email           string      `json:"email,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	Skills          SkillLevels `json:"skills" validate:"dive"`
	SoftSkills      []string    `json:"soft_skills,omitempty"`
	Keywords        []string    `json:"keywords,omitempty"`
	ExperienceYears float64     `json:"experience_years" validate:"gte=0"`
	Education       []string    `json:"education,omitempty"`
	Certifications  []string    `json:"certifications,omitempty"`
}

// JobRequirement is the structured job record produced by the job parser.
type JobRequirement struct {
	JobID                  string      `json:"job_id,omitempty"`
	Title                  string      `json:"title"`
	Company                string      `json:"company"`
	RawText                string      `json:"raw_text,omitempty"`
	RequiredSkills         SkillLevels `json:"required_skills" validate:"dive"`
	PreferredSkills        SkillLevels `json:"preferred_skills" validate:"dive"`
	RequiredExperience     float64     `json:"required_experience" validate:"gte=0"`
	EducationRequired      []string    `json:"education_required,omitempty"`
	CertificationsRequired []string    `json:"certifications_required,omitempty"`
	Keywords               []string    `json:"keywords,omitempty"`
}

// Validate validates the CandidateProfile using the validator.
func (p *CandidateProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate validates the JobRequirement using the validator.
func (r *JobRequirement) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
