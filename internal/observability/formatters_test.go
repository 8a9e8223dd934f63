package observability

import (
	"bytes"
	"testing"

	"github.com/jonathan/jobready/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.AnalysisRecord{
		JobID:   "abc123",
		Title:   "Backend Engineer",
		Company: "Acme",
		Score:   types.MatchScore{TotalScore: 72.5},
		DetailedScore: types.MatchScore{
			TotalScore:     64.0,
			CategoryScores: map[types.Category]float64{types.CategoryRequiredSkills: 50},
		},
		Gaps: types.GapAnalysis{
			MissingRequiredSkills: []string{"Kubernetes"},
			ExperienceGap:         1.5,
			EducationGap:          "Need Master's",
		},
		Recommendations: []string{"[critical] Learn Kubernetes to level 4"},
	}

	p.PrintAnalysis(record)
	output := buf.String()

	assert.Contains(t, output, "JOB ANALYSIS")
	assert.Contains(t, output, "Backend Engineer @ Acme")
	assert.Contains(t, output, "72.5")
	assert.Contains(t, output, "64.0")
	assert.Contains(t, output, "required_skills")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "1.5 years")
	assert.Contains(t, output, "Need Master's")
	assert.Contains(t, output, "[critical]")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil)
	p.PrintPlan(nil)
	p.PrintSprint(nil)
	p.PrintStatus(nil, nil)

	assert.Empty(t, buf.String())
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	plan := &types.LearningPlan{
		PlanID:   "plan-1",
		Mode:     types.ModeStandard,
		Duration: "12 weeks",
		Levels: types.PlanLevels{
			Study:    []types.StudyItem{{Skill: "Go", Priority: "CRITICAL"}},
			Practice: []types.PracticeItem{{Skill: "Docker"}},
			Courses:  []types.CourseItem{{Skill: "AWS", CertificationAvailable: true}},
		},
		Milestones: []types.Milestone{{Week: 4, Title: "Foundations complete"}},
	}

	p.PrintPlan(plan)
	output := buf.String()

	assert.Contains(t, output, "LEARNING PLAN")
	assert.Contains(t, output, "plan-1")
	assert.Contains(t, output, "Go [CRITICAL]")
	assert.Contains(t, output, "Docker")
	assert.Contains(t, output, "AWS (certification)")
	assert.Contains(t, output, "Foundations complete")
}

func TestPrintSprint(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sprint := &types.Sprint{
		SprintNumber:   2,
		StartDate:      "2024-03-01",
		EndDate:        "2024-03-15",
		SkillsTargeted: []string{"Go", "SQL"},
		ProjectGoal:    "Build an API",
		DailyLogs:      []types.DailyLog{{DayNumber: 1}},
		TotalHours:     3,
		TestScores:     map[string]float64{"SQL": 65, "Go": 85},
	}

	p.PrintSprint(sprint)
	output := buf.String()

	assert.Contains(t, output, "#2 (active)")
	assert.Contains(t, output, "Build an API")
	assert.Contains(t, output, "Go, SQL")
	assert.Contains(t, output, "3.0")
	assert.Contains(t, output, "85.0")
	assert.Contains(t, output, "65.0")
}

func TestPrintGates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGates(
		[]types.GateName{types.GateFoundation, types.GateCompetency},
		map[types.GateName]bool{types.GateFoundation: true},
	)
	output := buf.String()

	assert.Contains(t, output, "QUALITY GATES")
	assert.Contains(t, output, "✓ foundation")
	assert.Contains(t, output, "✗ competency")
}

func TestPrintGates_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintGates(nil, nil)
	assert.Empty(t, buf.String())
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	state := types.NewWorkflowState()
	state.CurrentScore = 77
	state.SkillsMastered = []string{"Go"}
	state.QualityGatesPassed = []types.GateName{types.GateFoundation}

	p.PrintStatus(&state, nil)
	output := buf.String()

	assert.Contains(t, output, "WORKFLOW STATUS")
	assert.Contains(t, output, "baseline")
	assert.Contains(t, output, "77.0")
	assert.Contains(t, output, "foundation")
	assert.Contains(t, output, "No active sprint")

	buf.Reset()
	p.PrintStatus(&state, &types.Sprint{SprintNumber: 3, EndDate: "2024-04-01"})
	assert.Contains(t, buf.String(), "Active sprint #3")
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintWarnings([]string{"only 3 of 14 daily logs recorded"})

	assert.Contains(t, buf.String(), "warning:")
	assert.Contains(t, buf.String(), "only 3 of 14")
}
