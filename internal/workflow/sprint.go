package workflow

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/assessment"
	"github.com/jonathan/jobready/internal/parsing"
	"github.com/jonathan/jobready/internal/types"
	"go.uber.org/zap"
)

const (
	// SprintDays is the planned length of a sprint.
	SprintDays = 14
	// ExpectedDailyLogs is the log count below which ending a sprint warns.
	ExpectedDailyLogs = 14
)

// Sprint errors. All are apperr InvalidOperation errors.
var (
	ErrSprintActive   = apperr.InvalidOperation("", "a sprint is already active")
	ErrNoActiveSprint = apperr.InvalidOperation("", "no active sprint")
	ErrNegativeHours  = apperr.InvalidOperation("", "hours must be a non-negative number")
	ErrFutureDate     = apperr.InvalidOperation("", "log date is in the future")
)

// EndSprintResult reports what closing a sprint changed.
type EndSprintResult struct {
	Sprint        types.Sprint
	NewlyMastered []string
	TestLevels    map[string]types.TestLevel
	GatesPassed   []types.GateName
	Stage         types.Stage
	Warnings      []string
}

func (e *Engine) activeIndex() int {
	for i := range e.sprints {
		if !e.sprints[i].Completed {
			return i
		}
	}
	return -1
}

// ActiveSprint returns a copy of the open sprint, if any.
func (e *Engine) ActiveSprint() (types.Sprint, bool) {
	i := e.activeIndex()
	if i < 0 {
		return types.Sprint{}, false
	}
	return e.sprints[i].Clone(), true
}

// Sprints returns a copy of the sprint history.
func (e *Engine) Sprints() []types.Sprint {
	return cloneSprints(e.sprints)
}

// StartSprint opens sprint previous_max+1 for the given skills. It fails with
// ErrSprintActive, leaving the history untouched, while another sprint is open.
func (e *Engine) StartSprint(ctx context.Context, skills []string, projectGoal string) (types.Sprint, error) {
	if i := e.activeIndex(); i >= 0 {
		e.log.Warn("sprint start rejected", zap.Int("active_sprint", e.sprints[i].SprintNumber))
		return types.Sprint{}, ErrSprintActive
	}

	number := 0
	for _, sp := range e.sprints {
		if sp.SprintNumber > number {
			number = sp.SprintNumber
		}
	}
	number++

	start := e.now()
	sp := types.Sprint{
		SprintNumber:   number,
		StartDate:      start.Format(types.DateLayout),
		EndDate:        start.AddDate(0, 0, SprintDays).Format(types.DateLayout),
		SkillsTargeted: trimAll(skills),
		ProjectGoal:    strings.TrimSpace(projectGoal),
		DailyLogs:      []types.DailyLog{},
		TestScores:     map[string]float64{},
	}

	nextSprints := append(cloneSprints(e.sprints), sp)
	next := e.state.Clone()
	next.Mode = types.ModeReverse
	next.CurrentSprint = number
	if next.StartedDate == "" {
		next.StartedDate = sp.StartDate
	}

	if err := e.commit(ctx, next, nextSprints); err != nil {
		return types.Sprint{}, err
	}
	e.log.Info("sprint started",
		zap.Int("sprint", number),
		zap.Strings("skills", sp.SkillsTargeted),
		zap.String("end_date", sp.EndDate))
	return sp.Clone(), nil
}

// LogDaily appends a log entry to the open sprint. Without an open sprint it
// returns ErrNoActiveSprint and changes nothing. An empty date means today.
func (e *Engine) LogDaily(ctx context.Context, in types.DailyLogInput) (types.DailyLog, error) {
	i := e.activeIndex()
	if i < 0 {
		e.log.Warn("daily log without active sprint")
		return types.DailyLog{}, ErrNoActiveSprint
	}
	if math.IsNaN(in.Hours) || in.Hours < 0 {
		return types.DailyLog{}, ErrNegativeHours
	}
	if err := in.Validate(); err != nil {
		return types.DailyLog{}, apperr.InvalidFormat("log daily", "invalid daily log", err)
	}

	date := in.Date
	if date == "" {
		date = e.today()
	} else {
		d, err := time.ParseInLocation(types.DateLayout, date, e.now().Location())
		if err != nil {
			return types.DailyLog{}, apperr.InvalidFormat("log daily", "invalid date", err)
		}
		if d.Format(types.DateLayout) > e.today() {
			return types.DailyLog{}, ErrFutureDate
		}
	}

	nextSprints := cloneSprints(e.sprints)
	sp := &nextSprints[i]
	entry := types.DailyLog{
		DayNumber: len(sp.DailyLogs) + 1,
		Date:      date,
		Hours:     in.Hours,
		Concepts:  trimAll(in.Concepts),
		Notes:     strings.TrimSpace(in.Notes),
	}
	sp.DailyLogs = append(sp.DailyLogs, entry)

	if err := e.commit(ctx, e.state.Clone(), nextSprints); err != nil {
		return types.DailyLog{}, err
	}
	e.log.Info("daily log recorded",
		zap.Int("sprint", sp.SprintNumber),
		zap.Int("day", entry.DayNumber),
		zap.Float64("hours", entry.Hours))
	return entry, nil
}

// EndSprint closes the open sprint, records mastered skills, test levels and
// the project, then evaluates the quality gates.
func (e *Engine) EndSprint(ctx context.Context, in types.EndSprintInput) (*EndSprintResult, error) {
	i := e.activeIndex()
	if i < 0 {
		e.log.Warn("sprint end without active sprint")
		return nil, ErrNoActiveSprint
	}
	if err := in.Validate(); err != nil {
		return nil, apperr.InvalidFormat("end sprint", "test scores must be between 0 and 100", err)
	}

	today := e.today()
	nextSprints := cloneSprints(e.sprints)
	sp := &nextSprints[i]
	sp.Completed = true
	sp.CompletedDate = today
	sp.ProjectURL = strings.TrimSpace(in.ProjectURL)
	sp.TotalHours = 0
	for _, l := range sp.DailyLogs {
		sp.TotalHours += l.Hours
	}
	for skill, score := range in.TestScores {
		sp.TestScores[skill] = score
	}

	next := e.state.Clone()
	result := &EndSprintResult{TestLevels: map[string]types.TestLevel{}}

	skills := make([]string, 0, len(in.TestScores))
	for skill := range in.TestScores {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	for _, skill := range skills {
		score := in.TestScores[skill]
		if score >= assessment.MasteryThreshold() && !hasMastered(&next, skill) {
			next.SkillsMastered = append(next.SkillsMastered, skill)
			result.NewlyMastered = append(result.NewlyMastered, skill)
		}
		if level, ok := assessment.LevelForScore(score); ok {
			result.TestLevels[skill] = level
			key := testsKey(&next, skill)
			if !containsLevel(next.TestsPassed[key], level) {
				next.TestsPassed[key] = append(next.TestsPassed[key], level)
			}
		}
	}

	next.ProjectsCompleted = append(next.ProjectsCompleted, types.ProjectRecord{
		SprintNumber: sp.SprintNumber,
		Goal:         sp.ProjectGoal,
		URL:          sp.ProjectURL,
		Skills:       append([]string{}, sp.SkillsTargeted...),
		CompletedOn:  today,
	})
	result.GatesPassed = applyGates(&next)

	if n := len(sp.DailyLogs); n < ExpectedDailyLogs {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("sprint %d ended with %d daily logs, expected %d", sp.SprintNumber, n, ExpectedDailyLogs))
	}

	if err := e.commit(ctx, next, nextSprints); err != nil {
		return nil, err
	}

	result.Sprint = sp.Clone()
	result.Stage = next.CurrentStage
	e.log.Info("sprint ended",
		zap.Int("sprint", sp.SprintNumber),
		zap.Float64("total_hours", sp.TotalHours),
		zap.Strings("mastered", result.NewlyMastered),
		zap.Strings("warnings", result.Warnings))
	e.logGates(result.GatesPassed)
	return result, nil
}

// hasMastered reports whether skill, or a spelling or synonym of it, is
// already in SkillsMastered.
func hasMastered(s *types.WorkflowState, skill string) bool {
	key := parsing.SkillKey(skill)
	for _, m := range s.SkillsMastered {
		if parsing.SkillKey(m) == key {
			return true
		}
	}
	return false
}

// testsKey returns the TestsPassed key already recorded for skill, so one
// skill never splits across spellings. New skills keep their own spelling.
func testsKey(s *types.WorkflowState, skill string) string {
	key := parsing.SkillKey(skill)
	existing := make([]string, 0, len(s.TestsPassed))
	for k := range s.TestsPassed {
		if parsing.SkillKey(k) == key {
			existing = append(existing, k)
		}
	}
	if len(existing) == 0 {
		return skill
	}
	sort.Strings(existing)
	return existing[0]
}

func containsLevel(levels []types.TestLevel, level types.TestLevel) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

func trimAll(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
