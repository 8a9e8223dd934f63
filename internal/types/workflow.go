package types

// Stage is the coarse position of the workflow.
type Stage string

const (
	StageBaseline      Stage = "baseline"
	StageSkillBuilding Stage = "skill_building"
	StageMastery       Stage = "mastery"
	StagePositioning   Stage = "positioning"
	StageReady         Stage = "ready"
)

// GateName names a readiness gate.
type GateName string

const (
	GateFoundation       GateName = "foundation"
	GateCompetency       GateName = "competency"
	GateMastery          GateName = "mastery"
	GateApplicationReady GateName = "application_ready"
)

// TestLevel is the tier of a passed skill test.
type TestLevel string

const (
	TestLevelBeginner     TestLevel = "beginner"
	TestLevelIntermediate TestLevel = "intermediate"
	TestLevelAdvanced     TestLevel = "advanced"
)

// ProjectRecord is appended to the workflow state when a sprint ends.
type ProjectRecord struct {
	SprintNumber int      `json:"sprint_number"`
	Goal         string   `json:"goal"`
	URL          string   `json:"url,omitempty"`
	Skills       []string `json:"skills"`
	CompletedOn  string   `json:"completed_on"`
}

// WorkflowState is the long-lived record of the skill-development workflow.
type WorkflowState struct {
	Mode               Mode                   `json:"mode"`
	CurrentStage       Stage                  `json:"current_stage"`
	StartedDate        string                 `json:"started_date,omitempty"`
	BaselineScore      float64                `json:"baseline_score"`
	CurrentScore       float64                `json:"current_score"`
	TargetScore        float64                `json:"target_score"`
	CurrentSprint      int                    `json:"current_sprint"`
	SkillsMastered     []string               `json:"skills_mastered"`
	ProjectsCompleted  []ProjectRecord        `json:"projects_completed"`
	TestsPassed        map[string][]TestLevel `json:"tests_passed"`
	QualityGatesPassed []GateName             `json:"quality_gates_passed"`
	BrandReady         bool                   `json:"brand_ready"`
	NetworkReady       bool                   `json:"network_ready"`
	ApplicationReady   bool                   `json:"application_ready"`
}

// DefaultTargetScore is the target score of a fresh workflow.
const DefaultTargetScore = 90

// NewWorkflowState returns the state used on first run.
func NewWorkflowState() WorkflowState {
	return WorkflowState{
		Mode:               ModeStandard,
		CurrentStage:       StageBaseline,
		TargetScore:        DefaultTargetScore,
		SkillsMastered:     []string{},
		ProjectsCompleted:  []ProjectRecord{},
		TestsPassed:        map[string][]TestLevel{},
		QualityGatesPassed: []GateName{},
	}
}

// HasGate reports whether gate has been recorded as passed.
func (s *WorkflowState) HasGate(gate GateName) bool {
	for _, g := range s.QualityGatesPassed {
		if g == gate {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the state.
func (s WorkflowState) Clone() WorkflowState {
	out := s
	out.SkillsMastered = append([]string{}, s.SkillsMastered...)
	out.QualityGatesPassed = append([]GateName{}, s.QualityGatesPassed...)
	out.ProjectsCompleted = make([]ProjectRecord, len(s.ProjectsCompleted))
	for i, p := range s.ProjectsCompleted {
		p.Skills = append([]string{}, p.Skills...)
		out.ProjectsCompleted[i] = p
	}
	out.TestsPassed = make(map[string][]TestLevel, len(s.TestsPassed))
	for skill, levels := range s.TestsPassed {
		out.TestsPassed[skill] = append([]TestLevel{}, levels...)
	}
	return out
}
