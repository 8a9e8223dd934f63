package workflow

import (
	"context"
	"fmt"

	"github.com/jonathan/jobready/internal/apperr"
	"github.com/jonathan/jobready/internal/gaps"
	"github.com/jonathan/jobready/internal/ingestion"
	"github.com/jonathan/jobready/internal/parsing"
	"github.com/jonathan/jobready/internal/schemas"
	"github.com/jonathan/jobready/internal/store"
	"github.com/jonathan/jobready/internal/types"
	"go.uber.org/zap"
)

// AnalyzeJob scores profile against req with both scoring strategies,
// computes the gaps and recommendations, and upserts the record into
// analyzed_jobs. The first analysis sets the baseline score; every analysis
// sets the current score to the detailed score.
func (e *Engine) AnalyzeJob(ctx context.Context, profile *types.CandidateProfile, req *types.JobRequirement) (*types.AnalysisRecord, error) {
	if profile == nil || req == nil {
		return nil, apperr.InvalidFormat("analyze job", "profile and job requirement are required", nil)
	}
	if err := profile.Validate(); err != nil {
		return nil, apperr.InvalidFormat("analyze job", "invalid candidate profile", err)
	}
	if err := req.Validate(); err != nil {
		return nil, apperr.InvalidFormat("analyze job", "invalid job requirement", err)
	}

	profile, req = normalizeSkills(profile, req)

	jobID := req.JobID
	if jobID == "" {
		jobID = ingestion.JobID(req.Title, req.Company, req.RawText)
	}

	g := gaps.Analyze(profile, req)
	record := types.AnalysisRecord{
		JobID:           jobID,
		Title:           req.Title,
		Company:         req.Company,
		AnalyzedAt:      e.timestamp(),
		Score:           e.quick.Score(profile, req),
		DetailedScore:   e.detailed.Score(profile, req),
		Gaps:            g,
		Recommendations: gaps.Recommendations(g),
	}

	records, err := e.Analyses(ctx)
	if err != nil {
		return nil, err
	}
	first := len(records) == 0
	nextRecords := upsertRecord(records, record)

	if err := store.Save(ctx, e.store, schemas.AnalyzedJobs, nextRecords); err != nil {
		return nil, fmt.Errorf("failed to save analyzed jobs: %w", err)
	}

	next := e.state.Clone()
	if first {
		next.BaselineScore = record.DetailedScore.TotalScore
	}
	next.CurrentScore = record.DetailedScore.TotalScore
	passed := applyGates(&next)
	if err := e.commit(ctx, next, nil); err != nil {
		if rerr := store.Save(ctx, e.store, schemas.AnalyzedJobs, records); rerr != nil {
			e.log.Error("failed to restore analyzed jobs", zap.Error(rerr))
		}
		return nil, err
	}

	e.log.Info("job analyzed",
		zap.String("job_id", jobID),
		zap.Float64("score", record.Score.TotalScore),
		zap.Float64("detailed_score", record.DetailedScore.TotalScore),
		zap.Int("missing_required", len(g.MissingRequiredSkills)))
	e.logGates(passed)
	return &record, nil
}

// normalizeSkills returns copies of profile and req whose skill lists use
// canonical names with duplicates merged at their highest level.
func normalizeSkills(profile *types.CandidateProfile, req *types.JobRequirement) (*types.CandidateProfile, *types.JobRequirement) {
	p := *profile
	p.Skills = parsing.NormalizeSkillLevels(profile.Skills)
	r := *req
	r.RequiredSkills = parsing.NormalizeSkillLevels(req.RequiredSkills)
	r.PreferredSkills = parsing.NormalizeSkillLevels(req.PreferredSkills)
	return &p, &r
}

func upsertRecord(records []types.AnalysisRecord, record types.AnalysisRecord) []types.AnalysisRecord {
	out := append([]types.AnalysisRecord{}, records...)
	for i := range out {
		if out[i].JobID == record.JobID {
			out[i] = record
			return out
		}
	}
	return append(out, record)
}

// Analyses returns the stored analysis records.
func (e *Engine) Analyses(ctx context.Context) ([]types.AnalysisRecord, error) {
	return store.Load(ctx, e.store, schemas.AnalyzedJobs, []types.AnalysisRecord{})
}

// Analysis returns the stored record for jobID, or an apperr NotFound error.
func (e *Engine) Analysis(ctx context.Context, jobID string) (*types.AnalysisRecord, error) {
	records, err := e.Analyses(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].JobID == jobID {
			return &records[i], nil
		}
	}
	return nil, apperr.NotFound("find analysis", fmt.Sprintf("no analysis for job %s", jobID), nil)
}

// GeneratePlan builds a learning plan from the stored analysis of jobID and
// appends it to learning_progress. Plans are not unique per job.
func (e *Engine) GeneratePlan(ctx context.Context, jobID string, mode types.Mode) (*types.LearningPlan, error) {
	if !mode.Valid() {
		return nil, apperr.InvalidFormat("generate plan", fmt.Sprintf("unknown mode %q", mode), nil)
	}
	record, err := e.Analysis(ctx, jobID)
	if err != nil {
		return nil, err
	}

	plan := e.planner.Generate(record.Gaps, mode)
	plan.JobID = jobID

	plans, err := e.Plans(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, e.store, schemas.LearningProgress, append(plans, plan)); err != nil {
		return nil, fmt.Errorf("failed to save learning plan: %w", err)
	}

	e.log.Info("learning plan generated",
		zap.String("plan_id", plan.PlanID),
		zap.String("job_id", jobID),
		zap.String("mode", string(mode)),
		zap.Int("study", len(plan.Levels.Study)),
		zap.Int("practice", len(plan.Levels.Practice)))
	return &plan, nil
}

// Plans returns the stored learning plans, oldest first.
func (e *Engine) Plans(ctx context.Context) ([]types.LearningPlan, error) {
	return store.Load(ctx, e.store, schemas.LearningProgress, []types.LearningPlan{})
}
