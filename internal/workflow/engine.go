// Package workflow implements the skill-development engine: job analysis,
// learning plans, the sprint tracker and the quality-gate state machine.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/planning"
	"github.com/jonathan/jobready/internal/schemas"
	"github.com/jonathan/jobready/internal/scoring"
	"github.com/jonathan/jobready/internal/store"
	"github.com/jonathan/jobready/internal/types"
	"go.uber.org/zap"
)

// Engine owns the workflow state and sprint history of one data directory.
// It is not safe for concurrent use.
type Engine struct {
	store    store.Store
	log      *zap.Logger
	now      func() time.Time
	weights  map[types.Category]float64
	keywords []string
	quick    *scoring.Scorer
	detailed *scoring.Scorer
	planner  *planning.Generator
	target   float64

	state   types.WorkflowState
	sprints []types.Sprint
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Nil means no logging.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock sets the time source for dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithWeights replaces the scoring weights of both scoring paths.
func WithWeights(weights map[types.Category]float64) Option {
	return func(e *Engine) { e.weights = weights }
}

// WithKeywords replaces the curated keyword list of both scoring paths.
// An empty list keeps the default.
func WithKeywords(keywords []string) Option {
	return func(e *Engine) { e.keywords = keywords }
}

// WithTargetScore sets the target score recorded in the workflow state.
func WithTargetScore(target float64) Option {
	return func(e *Engine) { e.target = target }
}

// NewEngine loads workflow_state and sprint_history from s, using defaults
// when they do not exist yet.
func NewEngine(ctx context.Context, s store.Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store: s,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	var scoreOpts []scoring.Option
	if e.weights != nil {
		scoreOpts = append(scoreOpts, scoring.WithWeights(e.weights))
	}
	if len(e.keywords) > 0 {
		scoreOpts = append(scoreOpts, scoring.WithKeywords(e.keywords))
	}
	e.quick = scoring.NewScorer(scoring.MembershipStrategy{}, scoreOpts...)
	e.detailed = scoring.NewScorer(scoring.NewLevelStrategy(), scoreOpts...)
	e.planner = planning.NewGenerator(planning.WithClock(e.now))

	state, err := store.Load(ctx, s, schemas.WorkflowState, types.NewWorkflowState())
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow state: %w", err)
	}
	sprints, err := store.Load(ctx, s, schemas.SprintHistory, []types.Sprint{})
	if err != nil {
		return nil, fmt.Errorf("failed to load sprint history: %w", err)
	}

	e.state = normalizeState(state)
	if e.target > 0 {
		e.state.TargetScore = e.target
	}
	e.sprints = sprints

	open := 0
	for _, sp := range sprints {
		if !sp.Completed {
			open++
		}
	}
	if open > 1 {
		return nil, apperr.InvalidFormat("load sprint history", fmt.Sprintf("%d sprints are open, at most one is allowed", open), nil)
	}

	e.log.Debug("engine loaded",
		zap.String("stage", string(e.state.CurrentStage)),
		zap.Int("sprints", len(e.sprints)),
		zap.Float64("current_score", e.state.CurrentScore))
	return e, nil
}

// normalizeState replaces null collections from older documents.
func normalizeState(s types.WorkflowState) types.WorkflowState {
	if s.SkillsMastered == nil {
		s.SkillsMastered = []string{}
	}
	if s.ProjectsCompleted == nil {
		s.ProjectsCompleted = []types.ProjectRecord{}
	}
	if s.TestsPassed == nil {
		s.TestsPassed = map[string][]types.TestLevel{}
	}
	if s.QualityGatesPassed == nil {
		s.QualityGatesPassed = []types.GateName{}
	}
	if s.Mode == "" {
		s.Mode = types.ModeStandard
	}
	if s.CurrentStage == "" {
		s.CurrentStage = types.StageBaseline
	}
	return s
}

// State returns a copy of the workflow state.
func (e *Engine) State() types.WorkflowState {
	return e.state.Clone()
}

func (e *Engine) today() string {
	return e.now().Format(types.DateLayout)
}

func (e *Engine) timestamp() string {
	return e.now().UTC().Format(time.RFC3339)
}

func cloneSprints(sprints []types.Sprint) []types.Sprint {
	out := make([]types.Sprint, len(sprints))
	for i, sp := range sprints {
		out[i] = sp.Clone()
	}
	return out
}

// commit persists the next sprint history (when non-nil) and the next state,
// then publishes them. Nothing in memory changes unless every save succeeds;
// a failed state save restores the previous sprint history on disk.
func (e *Engine) commit(ctx context.Context, state types.WorkflowState, sprints []types.Sprint) error {
	if sprints != nil {
		if err := store.Save(ctx, e.store, schemas.SprintHistory, sprints); err != nil {
			return fmt.Errorf("failed to save sprint history: %w", err)
		}
	}
	if err := store.Save(ctx, e.store, schemas.WorkflowState, state); err != nil {
		if sprints != nil {
			if rerr := store.Save(ctx, e.store, schemas.SprintHistory, e.sprints); rerr != nil {
				e.log.Error("failed to restore sprint history", zap.Error(rerr))
			}
		}
		return fmt.Errorf("failed to save workflow state: %w", err)
	}

	if sprints != nil {
		e.sprints = sprints
	}
	if state.CurrentStage != e.state.CurrentStage {
		e.log.Info("stage changed",
			zap.String("from", string(e.state.CurrentStage)),
			zap.String("to", string(state.CurrentStage)))
	}
	e.state = state
	e.log.Debug("state persisted", zap.Bool("sprints_saved", sprints != nil))
	return nil
}
