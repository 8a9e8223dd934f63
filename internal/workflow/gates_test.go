package workflow

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/store"
	"github.com/jonathan/jobready/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateWith(score float64, projects int) types.WorkflowState {
	s := types.NewWorkflowState()
	s.CurrentScore = score
	for i := 0; i < projects; i++ {
		s.ProjectsCompleted = append(s.ProjectsCompleted, types.ProjectRecord{SprintNumber: i + 1})
	}
	return s
}

func TestCheckGates_Foundation(t *testing.T) {
	s := stateWith(65, 2)
	assert.True(t, CheckGates(&s)[types.GateFoundation])

	s = stateWith(65, 1)
	assert.False(t, CheckGates(&s)[types.GateFoundation])

	s = stateWith(64.9, 2)
	assert.False(t, CheckGates(&s)[types.GateFoundation])
}

func TestCheckGates_Table(t *testing.T) {
	advanced := func(s *types.WorkflowState) { s.TestsPassed["Go"] = []types.TestLevel{types.TestLevelAdvanced} }
	brand := func(s *types.WorkflowState) { s.BrandReady = true }

	tests := []struct {
		name     string
		score    float64
		projects int
		mutate   []func(*types.WorkflowState)
		want     map[types.GateName]bool
	}{
		{"nothing", 0, 0, nil, map[types.GateName]bool{}},
		{"competency", 80, 4, nil, map[types.GateName]bool{types.GateFoundation: true, types.GateCompetency: true}},
		{"mastery needs advanced test", 95, 5, nil, map[types.GateName]bool{types.GateFoundation: true, types.GateCompetency: true}},
		{"mastery", 90, 5, []func(*types.WorkflowState){advanced},
			map[types.GateName]bool{types.GateFoundation: true, types.GateCompetency: true, types.GateMastery: true}},
		{"application ready without projects", 90, 0, []func(*types.WorkflowState){brand},
			map[types.GateName]bool{types.GateApplicationReady: true}},
		{"brand without score", 89, 9, []func(*types.WorkflowState){brand, advanced},
			map[types.GateName]bool{types.GateFoundation: true, types.GateCompetency: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stateWith(tt.score, tt.projects)
			for _, m := range tt.mutate {
				m(&s)
			}
			got := CheckGates(&s)
			require.Len(t, got, 4)
			for _, g := range Gates {
				assert.Equal(t, tt.want[g.Name], got[g.Name], g.Name)
			}
		})
	}
}

func TestApplyGates_StageFollowsHighestGate(t *testing.T) {
	s := stateWith(90, 0)
	s.BrandReady = true

	passed := applyGates(&s)

	assert.Equal(t, []types.GateName{types.GateApplicationReady}, passed)
	assert.Equal(t, types.StageReady, s.CurrentStage)
	assert.True(t, s.ApplicationReady)

	s.ProjectsCompleted = append(s.ProjectsCompleted, types.ProjectRecord{}, types.ProjectRecord{})
	passed = applyGates(&s)
	assert.Equal(t, []types.GateName{types.GateFoundation}, passed)
	assert.Equal(t, types.StageReady, s.CurrentStage, "stage never regresses")
}

func TestEngine_CheckQualityGatesIsPure(t *testing.T) {
	e := newTestEngine(t, store.NewMemoryStore(), newClock())
	e.state = stateWith(65, 2)

	assert.True(t, e.CheckQualityGates()[types.GateFoundation])
	assert.Empty(t, e.State().QualityGatesPassed)
}

func TestEngine_EvaluateGates(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	e := newTestEngine(t, s, newClock())
	e.state = stateWith(82, 4)

	passed, err := e.EvaluateGates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.GateName{types.GateFoundation, types.GateCompetency}, passed)
	assert.Equal(t, types.StageMastery, e.State().CurrentStage)

	passed, err = e.EvaluateGates(ctx)
	require.NoError(t, err)
	assert.Empty(t, passed)

	reloaded := newTestEngine(t, s, newClock())
	assert.Equal(t, []types.GateName{types.GateFoundation, types.GateCompetency}, reloaded.State().QualityGatesPassed)
}

func TestGatesPassed_MonotonicAcrossSprints(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	e := newTestEngine(t, store.NewMemoryStore(), clock)

	scores := []float64{70, 40, 85, 10, 92, 0, 95}
	previous := []types.GateName{}
	for i, score := range scores {
		_, err := e.SetCurrentScore(ctx, score)
		require.NoError(t, err)

		_, err = e.StartSprint(ctx, []string{"Go"}, fmt.Sprintf("project %d", i))
		require.NoError(t, err)
		clock.advance(14)
		_, err = e.EndSprint(ctx, types.EndSprintInput{TestScores: map[string]float64{"Go": score}})
		require.NoError(t, err)

		current := e.State().QualityGatesPassed
		require.GreaterOrEqual(t, len(current), len(previous))
		assert.Equal(t, previous, current[:len(previous)], "recorded gates are append-only")
		previous = current
	}

	assert.Equal(t, []types.GateName{types.GateFoundation, types.GateCompetency, types.GateMastery}, previous)
	assert.Equal(t, types.StagePositioning, e.State().CurrentStage)
}

func TestSetCurrentScore_OutOfRange(t *testing.T) {
	for name, score := range map[string]float64{
		"above":    101,
		"below":    -1,
		"nan":      math.NaN(),
		"infinity": math.Inf(1),
	} {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, store.NewMemoryStore(), newClock())

			_, err := e.SetCurrentScore(context.Background(), score)
			require.Error(t, err)
			assert.Equal(t, apperr.KindInvalidOperation, apperr.KindOf(err))
			assert.Equal(t, 0.0, e.State().CurrentScore)
		})
	}
}

func TestSetBrandAndNetworkReady(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, store.NewMemoryStore(), newClock())

	_, err := e.SetNetworkReady(ctx, true)
	require.NoError(t, err)
	assert.True(t, e.State().NetworkReady)

	_, err = e.SetCurrentScore(ctx, 91)
	require.NoError(t, err)
	passed, err := e.SetBrandReady(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []types.GateName{types.GateApplicationReady}, passed)
	assert.True(t, e.State().ApplicationReady)

	_, err = e.SetBrandReady(ctx, false)
	require.NoError(t, err)
	state := e.State()
	assert.False(t, state.BrandReady)
	assert.True(t, state.HasGate(types.GateApplicationReady), "recorded gates stay recorded")
	assert.True(t, state.ApplicationReady)
}
