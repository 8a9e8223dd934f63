// Package scoring computes the weighted match score of a candidate against a job.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/jobready/internal/parsing"
	"github.com/jonathan/jobready/internal/types"
)

// Default weights for scoring categories. They sum to 1.0.
const (
	requiredSkillsWeight  = 0.35
	preferredSkillsWeight = 0.15
	experienceWeight      = 0.20
	educationWeight       = 0.10
	certificationsWeight  = 0.05
	keywordsWeight        = 0.15
)

const (
	// underExperiencedCap is the most an under-experienced candidate can earn in the experience category.
	underExperiencedCap = 80.0
	// educationPartialCredit is the flat score when the candidate's degree is below the requirement.
	educationPartialCredit = 70.0
)

// DefaultWeights returns a fresh copy of the default category weights.
func DefaultWeights() map[types.Category]float64 {
	return map[types.Category]float64{
		types.CategoryRequiredSkills:  requiredSkillsWeight,
		types.CategoryPreferredSkills: preferredSkillsWeight,
		types.CategoryExperience:      experienceWeight,
		types.CategoryEducation:       educationWeight,
		types.CategoryCertifications:  certificationsWeight,
		types.CategoryKeywords:        keywordsWeight,
	}
}

// Scorer computes MatchScores with a skill strategy and a weight map.
// Weights are used as given; callers overriding them keep the sum at 1.0.
type Scorer struct {
	strategy Strategy
	weights  map[types.Category]float64
	keywords map[string]bool
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights replaces the whole weight map.
func WithWeights(weights map[types.Category]float64) Option {
	return func(s *Scorer) {
		s.weights = make(map[types.Category]float64, len(weights))
		for c, w := range weights {
			s.weights[c] = w
		}
	}
}

// WithKeywords replaces the curated keyword set.
func WithKeywords(keywords []string) Option {
	return func(s *Scorer) {
		s.keywords = parsing.SkillSet(keywords)
	}
}

// NewScorer creates a Scorer. A nil strategy means MembershipStrategy.
func NewScorer(strategy Strategy, opts ...Option) *Scorer {
	if strategy == nil {
		strategy = MembershipStrategy{}
	}
	s := &Scorer{
		strategy: strategy,
		weights:  DefaultWeights(),
		keywords: parsing.SkillSet(CuratedKeywords),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns a copy of the weights in use.
func (s *Scorer) Weights() map[types.Category]float64 {
	out := make(map[types.Category]float64, len(s.weights))
	for c, w := range s.weights {
		out[c] = w
	}
	return out
}

// Score computes the match score of profile against req.
// Missing fields count as empty or zero; there are no error conditions.
func (s *Scorer) Score(profile *types.CandidateProfile, req *types.JobRequirement) types.MatchScore {
	if profile == nil {
		profile = &types.CandidateProfile{}
	}
	if req == nil {
		req = &types.JobRequirement{}
	}

	requiredScore, requiredClose := s.strategy.SkillScore(profile, req.RequiredSkills)
	preferredScore, preferredClose := s.strategy.SkillScore(profile, req.PreferredSkills)

	categoryScores := map[types.Category]float64{
		types.CategoryRequiredSkills:  requiredScore,
		types.CategoryPreferredSkills: preferredScore,
		types.CategoryExperience:      computeExperienceScore(profile.ExperienceYears, req.RequiredExperience),
		types.CategoryEducation:       computeEducationScore(profile.Education, req.EducationRequired),
		types.CategoryCertifications:  computeCertificationScore(profile.Certifications, req.CertificationsRequired),
		types.CategoryKeywords:        s.computeKeywordScore(profile, req.Keywords),
	}

	total := 0.0
	for _, c := range types.Categories {
		total += categoryScores[c] * s.weights[c]
	}

	var closeSkills []string
	closeSkills = append(closeSkills, requiredClose...)
	closeSkills = append(closeSkills, preferredClose...)

	return types.MatchScore{
		Strategy:       s.strategy.Name(),
		CategoryScores: categoryScores,
		Weights:        s.Weights(),
		TotalScore:     clampScore(roundOneDecimal(total)),
		CloseSkills:    closeSkills,
	}
}

// computeExperienceScore gives full credit when the candidate meets the requirement,
// otherwise a proportional score capped at 80.
func computeExperienceScore(candidateYears, requiredYears float64) float64 {
	if candidateYears >= requiredYears {
		return 100
	}
	if requiredYears == 0 {
		return 100
	}
	return clampScore(candidateYears / requiredYears * underExperiencedCap)
}

// computeEducationScore compares the highest degree ordinals. No interpolation.
func computeEducationScore(candidate, required []string) float64 {
	if parsing.MaxDegree(candidate) >= parsing.MaxDegree(required) {
		return 100
	}
	return educationPartialCredit
}

// computeCertificationScore is the case-insensitive share of required certifications held.
func computeCertificationScore(held, required []string) float64 {
	if len(required) == 0 {
		return 100
	}

	heldSet := make(map[string]bool, len(held))
	for _, h := range held {
		heldSet[strings.ToLower(strings.TrimSpace(h))] = true
	}

	matched := 0
	for _, r := range required {
		if heldSet[strings.ToLower(strings.TrimSpace(r))] {
			matched++
		}
	}
	return float64(matched) / float64(len(required)) * 100
}

// computeKeywordScore scores the job keywords that belong to the curated set.
// Keywords outside the curated set are ignored.
func (s *Scorer) computeKeywordScore(profile *types.CandidateProfile, keywords []string) float64 {
	required := make(map[string]bool)
	for _, k := range keywords {
		key := parsing.SkillKey(k)
		if s.keywords[key] {
			required[key] = true
		}
	}
	if len(required) == 0 {
		return 100
	}

	pool := parsing.SkillSet(profile.Keywords, profile.Skills.Names(), profile.SoftSkills)
	matched := 0
	for key := range required {
		if pool[key] {
			matched++
		}
	}
	return float64(matched) / float64(len(required)) * 100
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
