package types

// Mode selects the learning workflow variant.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeReverse  Mode = "reverse"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeStandard || m == ModeReverse
}

// ResourceBundle lists learning resources for one skill.
type ResourceBundle struct {
	Courses       []string `json:"courses"`
	Documentation []string `json:"documentation"`
	Projects      []string `json:"projects"`
}

// StudyItem is an entry of the study tier, drawn from missing required skills.
type StudyItem struct {
	Skill        string         `json:"skill"`
	Priority     string         `json:"priority"`
	Category     string         `json:"category"`
	LearningPath []string       `json:"learning_path"`
	Resources    ResourceBundle `json:"resources"`
}

// PracticeItem is an entry of the practice tier, drawn from missing preferred skills.
type PracticeItem struct {
	Skill         string   `json:"skill"`
	Category      string   `json:"category"`
	PracticeGoals []string `json:"practice_goals"`
}

// CourseItem is an entry of the courses tier.
type CourseItem struct {
	Skill                  string `json:"skill"`
	CertificationAvailable bool   `json:"certification_available"`
}

// PlanLevels holds the three tiers of a learning plan.
type PlanLevels struct {
	Study    []StudyItem    `json:"study"`
	Practice []PracticeItem `json:"practice"`
	Courses  []CourseItem   `json:"courses"`
}

// WeekPlan is one entry of the weekly schedule.
type WeekPlan struct {
	Week       int      `json:"week"`
	Focus      string   `json:"focus"`
	Hours      int      `json:"hours"`
	Activities []string `json:"activities"`
}

// Milestone is a fixed checkpoint of a learning plan.
type Milestone struct {
	Week        int    `json:"week"`
	Title       string `json:"title"`
	Deliverable string `json:"deliverable"`
}

// LearningPlan is a tiered plan generated from a gap analysis.
type LearningPlan struct {
	PlanID         string      `json:"plan_id"`
	JobID          string      `json:"job_id,omitempty"`
	Mode           Mode        `json:"mode"`
	Duration       string      `json:"duration"`
	CreatedAt      string      `json:"created_at"`
	Levels         PlanLevels  `json:"levels"`
	WeeklySchedule []WeekPlan  `json:"weekly_schedule"`
	Milestones     []Milestone `json:"milestones"`
}
