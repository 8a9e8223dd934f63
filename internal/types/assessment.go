package types

// TestTier is one difficulty tier of a skill assessment.
type TestTier struct {
	Level         TestLevel `json:"level"`
	Questions     int       `json:"questions"`
	PassThreshold int       `json:"pass_threshold"`
}

// SkillTest is the assessment definition for one skill.
type SkillTest struct {
	Skill       string     `json:"skill"`
	Tiers       []TestTier `json:"tiers"`
	GeneratedAt string     `json:"generated_at"`
}

// TechnicalSkills groups technical skills by subgroup.
type TechnicalSkills struct {
	Programming []string `json:"programming"`
	Frameworks  []string `json:"frameworks"`
	Tools       []string `json:"tools"`
	Databases   []string `json:"databases"`
	Cloud       []string `json:"cloud"`
}

// MasterSkillset is the accumulated skill inventory.
type MasterSkillset struct {
	Technical      TechnicalSkills `json:"technical_skills"`
	SoftSkills     []string        `json:"soft_skills"`
	Certifications []string        `json:"certifications"`
	UpdatedAt      string          `json:"updated_at,omitempty"`
}

// NewMasterSkillset returns an empty inventory with non-nil lists.
func NewMasterSkillset() MasterSkillset {
	return MasterSkillset{
		Technical: TechnicalSkills{
			Programming: []string{},
			Frameworks:  []string{},
			Tools:       []string{},
			Databases:   []string{},
			Cloud:       []string{},
		},
		SoftSkills:     []string{},
		Certifications: []string{},
	}
}
