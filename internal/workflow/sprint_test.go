package workflow

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/schemas"
	"github.com/jonathan/jobready/internal/store"
	"github.com/jonathan/jobready/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSprint(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, store.NewMemoryStore(), newClock())

	sp, err := e.StartSprint(ctx, []string{" Docker ", "", "Kubernetes"}, "Deploy a service")
	require.NoError(t, err)

	assert.Equal(t, 1, sp.SprintNumber)
	assert.Equal(t, "2025-03-01", sp.StartDate)
	assert.Equal(t, "2025-03-15", sp.EndDate)
	assert.Equal(t, []string{"Docker", "Kubernetes"}, sp.SkillsTargeted)
	assert.False(t, sp.Completed)

	state := e.State()
	assert.Equal(t, types.ModeReverse, state.Mode)
	assert.Equal(t, "2025-03-01", state.StartedDate)
	assert.Equal(t, 1, state.CurrentSprint)

	active, ok := e.ActiveSprint()
	require.True(t, ok)
	assert.Equal(t, sp, active)
}

func TestStartSprint_WhileActiveFails(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	e := newTestEngine(t, s, newClock())

	_, err := e.StartSprint(ctx, []string{"Go"}, "first")
	require.NoError(t, err)
	before, err := s.Read(ctx, schemas.SprintHistory)
	require.NoError(t, err)

	_, err = e.StartSprint(ctx, []string{"Rust"}, "second")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSprintActive))
	assert.True(t, errors.Is(err, apperr.ErrInvalidOperation))

	assert.Len(t, e.Sprints(), 1)
	after, err := s.Read(ctx, schemas.SprintHistory)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStartSprint_NumbersAreMonotonic(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	e := newTestEngine(t, store.NewMemoryStore(), clock)

	for want := 1; want <= 3; want++ {
		sp, err := e.StartSprint(ctx, []string{"Go"}, "goal")
		require.NoError(t, err)
		assert.Equal(t, want, sp.SprintNumber)
		clock.advance(14)
		_, err = e.EndSprint(ctx, types.EndSprintInput{})
		require.NoError(t, err)
	}
	assert.Equal(t, "2025-03-01", e.State().StartedDate, "started date is set once")
}

func TestLogDaily_NoActiveSprint(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	e := newTestEngine(t, s, newClock())

	_, err := e.LogDaily(ctx, types.DailyLogInput{Hours: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoActiveSprint))
	assert.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))

	assert.Empty(t, e.Sprints())
	_, err = s.Read(ctx, schemas.SprintHistory)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "history is not written")
}

func TestLogDaily(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	e := newTestEngine(t, store.NewMemoryStore(), clock)
	_, err := e.StartSprint(ctx, []string{"Go"}, "goal")
	require.NoError(t, err)

	first, err := e.LogDaily(ctx, types.DailyLogInput{Hours: 1.5, Concepts: []string{"goroutines", " "}, Notes: " ok "})
	require.NoError(t, err)
	assert.Equal(t, types.DailyLog{DayNumber: 1, Date: "2025-03-01", Hours: 1.5, Concepts: []string{"goroutines"}, Notes: "ok"}, first)

	clock.advance(1)
	second, err := e.LogDaily(ctx, types.DailyLogInput{Hours: 0, Date: "2025-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.DayNumber)
	assert.Equal(t, "2025-03-01", second.Date)

	active, _ := e.ActiveSprint()
	assert.Len(t, active.DailyLogs, 2)
}

func TestLogDaily_MoreThanFourteenEntries(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, store.NewMemoryStore(), newClock())
	_, err := e.StartSprint(ctx, []string{"Go"}, "goal")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err := e.LogDaily(ctx, types.DailyLogInput{Hours: 30})
		require.NoError(t, err)
	}
	active, _ := e.ActiveSprint()
	assert.Len(t, active.DailyLogs, 20)
	assert.Equal(t, 20, active.DailyLogs[19].DayNumber)
}

func TestLogDaily_Rejections(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, store.NewMemoryStore(), newClock())
	_, err := e.StartSprint(ctx, []string{"Go"}, "goal")
	require.NoError(t, err)

	_, err = e.LogDaily(ctx, types.DailyLogInput{Hours: -1})
	assert.True(t, errors.Is(err, ErrNegativeHours))

	_, err = e.LogDaily(ctx, types.DailyLogInput{Hours: math.NaN()})
	assert.True(t, errors.Is(err, ErrNegativeHours))

	_, err = e.LogDaily(ctx, types.DailyLogInput{Hours: 1, Date: "2025-03-02"})
	assert.True(t, errors.Is(err, ErrFutureDate))

	_, err = e.LogDaily(ctx, types.DailyLogInput{Hours: 1, Date: "03/01/2025"})
	assert.Equal(t, apperr.KindInvalidFormat, apperr.KindOf(err))

	active, _ := e.ActiveSprint()
	assert.Empty(t, active.DailyLogs, "rejected logs are not recorded")
}

func TestEndSprint_RecordsMasteryAndTestLevel(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	e := newTestEngine(t, store.NewMemoryStore(), clock)
	_, err := e.StartSprint(ctx, []string{"Docker"}, "Containerize the API")
	require.NoError(t, err)
	_, err = e.LogDaily(ctx, types.DailyLogInput{Hours: 2})
	require.NoError(t, err)
	_, err = e.LogDaily(ctx, types.DailyLogInput{Hours: 3.5})
	require.NoError(t, err)
	clock.advance(14)

	res, err := e.EndSprint(ctx, types.EndSprintInput{
		ProjectURL: "https://github.com/jane/api",
		TestScores: map[string]float64{"Docker": 72},
	})
	require.NoError(t, err)

	state := e.State()
	assert.Equal(t, []string{"Docker"}, state.SkillsMastered)
	assert.Equal(t, []types.TestLevel{types.TestLevelIntermediate}, state.TestsPassed["Docker"])
	require.Len(t, state.ProjectsCompleted, 1)
	assert.Equal(t, types.ProjectRecord{
		SprintNumber: 1,
		Goal:         "Containerize the API",
		URL:          "https://github.com/jane/api",
		Skills:       []string{"Docker"},
		CompletedOn:  "2025-03-15",
	}, state.ProjectsCompleted[0])

	assert.True(t, res.Sprint.Completed)
	assert.Equal(t, 5.5, res.Sprint.TotalHours)
	assert.Equal(t, "2025-03-15", res.Sprint.CompletedDate)
	assert.Equal(t, map[string]float64{"Docker": 72}, res.Sprint.TestScores)
	assert.Equal(t, []string{"Docker"}, res.NewlyMastered)
	assert.Equal(t, types.TestLevelIntermediate, res.TestLevels["Docker"])
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "2 daily logs")

	_, ok := e.ActiveSprint()
	assert.False(t, ok)
	_, err = e.LogDaily(ctx, types.DailyLogInput{Hours: 1})
	assert.True(t, errors.Is(err, ErrNoActiveSprint), "completed sprints are frozen")
}

func TestEndSprint_ScoreThresholds(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, store.NewMemoryStore(), newClock())
	_, err := e.StartSprint(ctx, []string{"Go", "SQL", "Rust"}, "goal")
	require.NoError(t, err)

	res, err := e.EndSprint(ctx, types.EndSprintInput{TestScores: map[string]float64{"Go": 85, "SQL": 60, "Rust": 59}})
	require.NoError(t, err)

	state := e.State()
	assert.Equal(t, []string{"Go", "SQL"}, state.SkillsMastered)
	assert.Equal(t, []types.TestLevel{types.TestLevelAdvanced}, state.TestsPassed["Go"])
	assert.Equal(t, []types.TestLevel{types.TestLevelBeginner}, state.TestsPassed["SQL"])
	assert.NotContains(t, state.TestsPassed, "Rust")
	assert.NotContains(t, res.TestLevels, "Rust")
}

func TestEndSprint_DoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, store.NewMemoryStore(), newClock())

	for i := 0; i < 2; i++ {
		_, err := e.StartSprint(ctx, []string{"Docker"}, "goal")
		require.NoError(t, err)
		_, err = e.EndSprint(ctx, types.EndSprintInput{TestScores: map[string]float64{"Docker": 75}})
		require.NoError(t, err)
	}

	state := e.State()
	assert.Equal(t, []string{"Docker"}, state.SkillsMastered)
	assert.Equal(t, []types.TestLevel{types.TestLevelIntermediate}, state.TestsPassed["Docker"])
	assert.Len(t, state.ProjectsCompleted, 2)
}

func TestEndSprint_SkillIdentityIgnoresCase(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, store.NewMemoryStore(), newClock())

	_, err := e.StartSprint(ctx, []string{"Docker"}, "containers")
	require.NoError(t, err)
	_, err = e.EndSprint(ctx, types.EndSprintInput{TestScores: map[string]float64{"Docker": 72}})
	require.NoError(t, err)

	_, err = e.StartSprint(ctx, []string{"docker"}, "containers again")
	require.NoError(t, err)
	second, err := e.EndSprint(ctx, types.EndSprintInput{TestScores: map[string]float64{"docker": 85}})
	require.NoError(t, err)

	assert.Empty(t, second.NewlyMastered)
	assert.Equal(t, types.TestLevelAdvanced, second.TestLevels["docker"])

	state := e.State()
	assert.Equal(t, []string{"Docker"}, state.SkillsMastered)
	assert.Equal(t, map[string][]types.TestLevel{
		"Docker": {types.TestLevelIntermediate, types.TestLevelAdvanced},
	}, state.TestsPassed)
}

func TestEndSprint_NoActiveSprint(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore(), newClock())

	res, err := e.EndSprint(context.Background(), types.EndSprintInput{})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrNoActiveSprint))
}

func TestEndSprint_InvalidScore(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, store.NewMemoryStore(), newClock())
	_, err := e.StartSprint(ctx, []string{"Go"}, "goal")
	require.NoError(t, err)

	_, err = e.EndSprint(ctx, types.EndSprintInput{TestScores: map[string]float64{"Go": 120}})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidFormat, apperr.KindOf(err))

	_, ok := e.ActiveSprint()
	assert.True(t, ok, "sprint stays open")
}

func TestCommit_RollsBackOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	flaky := &flakyStore{MemoryStore: mem, failOn: map[string]bool{}}
	e := newTestEngine(t, flaky, newClock())

	_, err := e.StartSprint(ctx, []string{"Go"}, "first")
	require.NoError(t, err)
	before := e.State()
	historyBefore, err := mem.Read(ctx, schemas.SprintHistory)
	require.NoError(t, err)

	flaky.failOn[schemas.WorkflowState] = true
	_, err = e.EndSprint(ctx, types.EndSprintInput{TestScores: map[string]float64{"Go": 90}})
	require.Error(t, err)

	assert.Equal(t, before, e.State())
	_, ok := e.ActiveSprint()
	assert.True(t, ok, "sprint is still open in memory")

	historyAfter, err := mem.Read(ctx, schemas.SprintHistory)
	require.NoError(t, err)
	assert.JSONEq(t, string(historyBefore), string(historyAfter), "history on disk is restored")

	flaky.failOn[schemas.SprintHistory] = true
	_, err = e.LogDaily(ctx, types.DailyLogInput{Hours: 1})
	require.Error(t, err)
	active, _ := e.ActiveSprint()
	assert.Empty(t, active.DailyLogs)
}
