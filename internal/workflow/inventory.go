package workflow

import (
	"context"
	"fmt"

	"github.com/jonathan/jobready/internal/assessment"
	"github.com/jonathan/jobready/internal/schemas"
	"github.com/jonathan/jobready/internal/skillset"
	"github.com/jonathan/jobready/internal/store"
	"github.com/jonathan/jobready/internal/types"
	"go.uber.org/zap"
)

// GenerateSkillTests creates three-tier tests for skills and merges them into
// skill_tests. With no skills given, the active sprint's skills are used.
func (e *Engine) GenerateSkillTests(ctx context.Context, skills []string) ([]types.SkillTest, error) {
	if len(skills) == 0 {
		if sp, ok := e.ActiveSprint(); ok {
			skills = sp.SkillsTargeted
		}
	}
	fresh := assessment.Generate(skills, e.now())
	if len(fresh) == 0 {
		return fresh, nil
	}

	existing, err := e.SkillTests(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, e.store, schemas.SkillTests, assessment.Merge(existing, fresh)); err != nil {
		return nil, fmt.Errorf("failed to save skill tests: %w", err)
	}
	e.log.Info("skill tests generated", zap.Int("count", len(fresh)))
	return fresh, nil
}

// SkillTests returns the stored skill tests.
func (e *Engine) SkillTests(ctx context.Context) ([]types.SkillTest, error) {
	return store.Load(ctx, e.store, schemas.SkillTests, []types.SkillTest{})
}

// UpdateMasterSkillset merges the profile and every mastered skill into
// master_skillset and returns the updated inventory with the number of new entries.
func (e *Engine) UpdateMasterSkillset(ctx context.Context, profile *types.CandidateProfile) (types.MasterSkillset, int, error) {
	m, err := e.MasterSkillset(ctx)
	if err != nil {
		return m, 0, err
	}

	added := skillset.MergeProfile(&m, profile)
	for _, skill := range e.state.SkillsMastered {
		if skillset.Add(&m, skill) {
			added++
		}
	}
	m.UpdatedAt = e.timestamp()

	if err := store.Save(ctx, e.store, schemas.MasterSkillset, m); err != nil {
		return m, 0, fmt.Errorf("failed to save master skillset: %w", err)
	}
	e.log.Info("master skillset updated", zap.Int("added", added))
	return m, added, nil
}

// MasterSkillset returns the stored inventory, or an empty one.
func (e *Engine) MasterSkillset(ctx context.Context) (types.MasterSkillset, error) {
	return store.Load(ctx, e.store, schemas.MasterSkillset, types.NewMasterSkillset())
}
