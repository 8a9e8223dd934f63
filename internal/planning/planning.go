// Package planning turns a gap analysis into a tiered learning plan.
package planning

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobready/internal/parsing"
	"github.com/jonathan/jobready/internal/types"
)

// Tier sizes and schedule constants.
const (
	MaxStudyItems    = 5
	MaxPracticeItems = 3
	MaxCourseItems   = 7
	ScheduleWeeks    = 12
	WeeklyHours      = 15
)

const (
	standardDuration = "12 weeks"
	reverseDuration  = "16-24 weeks"
)

// Generator builds learning plans. The zero value is not usable; call NewGenerator.
type Generator struct {
	now   func() time.Time
	newID func() string
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithClock sets the time source used for created_at.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// WithIDFunc sets the plan_id source.
func WithIDFunc(newID func() string) GeneratorOption {
	return func(g *Generator) { g.newID = newID }
}

// NewGenerator creates a Generator with uuid plan ids and the wall clock.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a plan from gaps. An unknown mode is treated as standard.
// An empty gap set still yields a plan with empty tiers.
func (g *Generator) Generate(gaps types.GapAnalysis, mode types.Mode) types.LearningPlan {
	if !mode.Valid() {
		mode = types.ModeStandard
	}

	levels := types.PlanLevels{
		Study:    studyTier(gaps.MissingRequiredSkills),
		Practice: practiceTier(gaps.MissingPreferredSkills),
		Courses:  courseTier(gaps.MissingRequiredSkills, gaps.MissingPreferredSkills),
	}

	duration := standardDuration
	if mode == types.ModeReverse {
		duration = reverseDuration
	}

	return types.LearningPlan{
		PlanID:         g.newID(),
		Mode:           mode,
		Duration:       duration,
		CreatedAt:      g.now().UTC().Format(time.RFC3339),
		Levels:         levels,
		WeeklySchedule: weeklySchedule(levels.Study),
		Milestones:     milestones(),
	}
}

func studyTier(missingRequired []string) []types.StudyItem {
	items := []types.StudyItem{}
	for _, skill := range head(missingRequired, MaxStudyItems) {
		items = append(items, types.StudyItem{
			Skill:    skill,
			Priority: "CRITICAL",
			Category: "required",
			LearningPath: []string{
				fmt.Sprintf("Fundamentals: complete a structured course on %s", skill),
				fmt.Sprintf("Application: build a project that uses %s end to end", skill),
			},
			Resources: ResourcesFor(skill),
		})
	}
	return items
}

func practiceTier(missingPreferred []string) []types.PracticeItem {
	items := []types.PracticeItem{}
	for _, skill := range head(missingPreferred, MaxPracticeItems) {
		items = append(items, types.PracticeItem{
			Skill:    skill,
			Category: "preferred",
			PracticeGoals: []string{
				fmt.Sprintf("Complete three hands-on exercises with %s", skill),
				fmt.Sprintf("Add %s to an existing portfolio project", skill),
			},
		})
	}
	return items
}

// courseTier takes the de-duplicated union of required then preferred skills.
func courseTier(missingRequired, missingPreferred []string) []types.CourseItem {
	items := []types.CourseItem{}
	seen := make(map[string]bool)
	for _, list := range [][]string{missingRequired, missingPreferred} {
		for _, skill := range list {
			if len(items) == MaxCourseItems {
				return items
			}
			key := parsing.SkillKey(skill)
			if seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, types.CourseItem{
				Skill:                  skill,
				CertificationAvailable: CertificationAvailable(skill),
			})
		}
	}
	return items
}

// weeklySchedule is a fixed 12-week template. Only the first study skill is named.
func weeklySchedule(study []types.StudyItem) []types.WeekPlan {
	firstSkill := "core required skills"
	if len(study) > 0 {
		firstSkill = study[0].Skill
	}

	weeks := make([]types.WeekPlan, 0, ScheduleWeeks)
	for week := 1; week <= ScheduleWeeks; week++ {
		var wp types.WeekPlan
		switch {
		case week <= 4:
			wp = types.WeekPlan{
				Focus:      fmt.Sprintf("Foundations: %s", firstSkill),
				Activities: []string{"Course modules", "Documentation reading", "Daily exercises"},
			}
		case week <= 8:
			wp = types.WeekPlan{
				Focus:      "Practice and integration",
				Activities: []string{"Hands-on labs", "Mini projects", "Skill assessments"},
			}
		default:
			wp = types.WeekPlan{
				Focus:      "Portfolio and advanced topics",
				Activities: []string{"Portfolio project", "Advanced topics", "Mock interviews"},
			}
		}
		wp.Week = week
		wp.Hours = WeeklyHours
		weeks = append(weeks, wp)
	}
	return weeks
}

func milestones() []types.Milestone {
	return []types.Milestone{
		{Week: 4, Title: "Foundations complete", Deliverable: "Pass beginner assessments for all study skills"},
		{Week: 8, Title: "Practical competency", Deliverable: "Two completed projects demonstrating the target skills"},
		{Week: 12, Title: "Portfolio ready", Deliverable: "Published portfolio project and intermediate assessments passed"},
	}
}

func head(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
