package types

import "github.com/go-playground/validator/v10"

// DateLayout is the calendar date format used for sprint and log dates.
const DateLayout = "2006-01-02"

// DailyLog is one append-only entry of a sprint's log.
type DailyLog struct {
	DayNumber int      `json:"day_number"`
	Date      string   `json:"date"`
	Hours     float64  `json:"hours"`
	Concepts  []string `json:"concepts"`
	Notes     string   `json:"notes,omitempty"`
}

// Sprint is a 14-day focused learning unit.
type Sprint struct {
	SprintNumber   int                `json:"sprint_number"`
	StartDate      string             `json:"start_date"`
	EndDate        string             `json:"end_date"`
	SkillsTargeted []string           `json:"skills_targeted"`
	ProjectGoal    string             `json:"project_goal"`
	DailyLogs      []DailyLog         `json:"daily_logs"`
	Completed      bool               `json:"completed"`
	CompletedDate  string             `json:"completed_date,omitempty"`
	ProjectURL     string             `json:"project_url,omitempty"`
	TestScores     map[string]float64 `json:"test_scores"`
	TotalHours     float64            `json:"total_hours"`
}

// DailyLogInput is the caller-supplied part of a daily log.
// An empty Date means today.
type DailyLogInput struct {
	Hours    float64  `json:"hours" validate:"gte=0"`
	Concepts []string `json:"concepts"`
	Notes    string   `json:"notes"`
	Date     string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// EndSprintInput closes the active sprint.
type EndSprintInput struct {
	ProjectURL string             `json:"project_url"`
	TestScores map[string]float64 `json:"test_scores" validate:"dive,keys,required,endkeys,gte=0,lte=100"`
}

// Validate validates the DailyLogInput using the validator.
func (in *DailyLogInput) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

// Validate validates the EndSprintInput using the validator.
func (in *EndSprintInput) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

// Clone returns a deep copy of the sprint.
func (s Sprint) Clone() Sprint {
	out := s
	out.SkillsTargeted = append([]string{}, s.SkillsTargeted...)
	out.DailyLogs = make([]DailyLog, len(s.DailyLogs))
	for i, l := range s.DailyLogs {
		l.Concepts = append([]string{}, l.Concepts...)
		out.DailyLogs[i] = l
	}
	out.TestScores = make(map[string]float64, len(s.TestScores))
	for k, v := range s.TestScores {
		out.TestScores[k] = v
	}
	return out
}
