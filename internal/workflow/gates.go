package workflow

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/types"
	"go.uber.org/zap"
)

// Gate is a readiness threshold. A gate passes when the current score and the
// number of completed projects reach the minimums and Extra (if set) holds.
type Gate struct {
	Name        types.GateName
	MinScore    float64
	MinProjects int
	Stage       types.Stage
	Requirement string
	Extra       func(s *types.WorkflowState) bool
}

// Gates lists the quality gates in order. Stages advance in the same order.
var Gates = []Gate{
	{
		Name:        types.GateFoundation,
		MinScore:    65,
		MinProjects: 2,
		Stage:       types.StageSkillBuilding,
		Requirement: "score >= 65 and 2 projects",
	},
	{
		Name:        types.GateCompetency,
		MinScore:    80,
		MinProjects: 4,
		Stage:       types.StageMastery,
		Requirement: "score >= 80 and 4 projects",
	},
	{
		Name:        types.GateMastery,
		MinScore:    90,
		MinProjects: 5,
		Stage:       types.StagePositioning,
		Requirement: "score >= 90, 5 projects and one advanced test",
		Extra:       hasAdvancedTest,
	},
	{
		Name:        types.GateApplicationReady,
		MinScore:    90,
		Stage:       types.StageReady,
		Requirement: "score >= 90 and brand ready",
		Extra:       func(s *types.WorkflowState) bool { return s.BrandReady },
	},
}

func hasAdvancedTest(s *types.WorkflowState) bool {
	for _, levels := range s.TestsPassed {
		for _, l := range levels {
			if l == types.TestLevelAdvanced {
				return true
			}
		}
	}
	return false
}

// Passes reports whether the gate holds for s right now.
func (g Gate) Passes(s *types.WorkflowState) bool {
	if s.CurrentScore < g.MinScore {
		return false
	}
	if len(s.ProjectsCompleted) < g.MinProjects {
		return false
	}
	if g.Extra != nil && !g.Extra(s) {
		return false
	}
	return true
}

// CheckGates evaluates every gate against s without recording anything.
func CheckGates(s *types.WorkflowState) map[types.GateName]bool {
	out := make(map[types.GateName]bool, len(Gates))
	for _, g := range Gates {
		out[g.Name] = g.Passes(s)
	}
	return out
}

// applyGates records newly passed gates on s and moves the stage to the
// stage of the highest recorded gate. Recorded gates are never removed.
func applyGates(s *types.WorkflowState) []types.GateName {
	var passed []types.GateName
	for _, g := range Gates {
		if g.Passes(s) && !s.HasGate(g.Name) {
			s.QualityGatesPassed = append(s.QualityGatesPassed, g.Name)
			passed = append(passed, g.Name)
		}
	}
	for _, g := range Gates {
		if s.HasGate(g.Name) {
			s.CurrentStage = g.Stage
		}
	}
	s.ApplicationReady = s.HasGate(types.GateApplicationReady)
	return passed
}

// CheckQualityGates evaluates the gates against the current state. It is pure.
func (e *Engine) CheckQualityGates() map[types.GateName]bool {
	return CheckGates(&e.state)
}

// EvaluateGates records every gate that passes now and returns the new ones.
func (e *Engine) EvaluateGates(ctx context.Context) ([]types.GateName, error) {
	next := e.state.Clone()
	passed := applyGates(&next)
	if len(passed) == 0 && next.CurrentStage == e.state.CurrentStage {
		return nil, nil
	}
	if err := e.commit(ctx, next, nil); err != nil {
		return nil, err
	}
	e.logGates(passed)
	return passed, nil
}

// SetCurrentScore overwrites the current score and re-evaluates the gates.
func (e *Engine) SetCurrentScore(ctx context.Context, score float64) ([]types.GateName, error) {
	if math.IsNaN(score) || score < 0 || score > 100 {
		return nil, apperr.InvalidOperation("set score", fmt.Sprintf("score %.1f is outside 0-100", score))
	}
	return e.update(ctx, func(s *types.WorkflowState) { s.CurrentScore = score })
}

// SetBrandReady records whether the personal brand is ready and re-evaluates the gates.
func (e *Engine) SetBrandReady(ctx context.Context, ready bool) ([]types.GateName, error) {
	return e.update(ctx, func(s *types.WorkflowState) { s.BrandReady = ready })
}

// SetNetworkReady records whether networking is done and re-evaluates the gates.
func (e *Engine) SetNetworkReady(ctx context.Context, ready bool) ([]types.GateName, error) {
	return e.update(ctx, func(s *types.WorkflowState) { s.NetworkReady = ready })
}

func (e *Engine) update(ctx context.Context, mutate func(s *types.WorkflowState)) ([]types.GateName, error) {
	next := e.state.Clone()
	mutate(&next)
	passed := applyGates(&next)
	if err := e.commit(ctx, next, nil); err != nil {
		return nil, err
	}
	e.logGates(passed)
	return passed, nil
}

func (e *Engine) logGates(passed []types.GateName) {
	for _, g := range passed {
		e.log.Info("quality gate passed",
			zap.String("gate", string(g)),
			zap.Float64("score", e.state.CurrentScore),
			zap.Int("projects", len(e.state.ProjectsCompleted)))
	}
}
