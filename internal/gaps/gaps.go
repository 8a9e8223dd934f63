// Package gaps derives missing skills, level gaps and recommendations from a
// candidate profile and a job requirement.
package gaps

import (
	"fmt"
	"math"

	"github.com/jonathan/jobready/internal/parsing"
	"github.com/jonathan/jobready/internal/scoring"
	"github.com/jonathan/jobready/internal/types"
)

// EducationGapNone is the education_gap value when the requirement is met.
const EducationGapNone = "None"

// criticalLevel is the required level at which a skill gap becomes critical.
const criticalLevel = 4

// Analyze computes the gap analysis of profile against req.
// Missing skills keep the requirement's order. The function is pure.
func Analyze(profile *types.CandidateProfile, req *types.JobRequirement) types.GapAnalysis {
	if profile == nil {
		profile = &types.CandidateProfile{}
	}
	if req == nil {
		req = &types.JobRequirement{}
	}

	candidate := scoring.CandidateSkillSet(profile)

	return types.GapAnalysis{
		MissingRequiredSkills:  missing(req.RequiredSkills, candidate),
		MissingPreferredSkills: missing(req.PreferredSkills, candidate),
		ExperienceGap:          math.Max(0, req.RequiredExperience-profile.ExperienceYears),
		EducationGap:           educationGap(profile.Education, req.EducationRequired),
		SkillGaps:              skillGaps(profile, req.RequiredSkills),
	}
}

func missing(required types.SkillLevels, candidate map[string]bool) []string {
	out := []string{}
	for _, r := range required {
		if !candidate[parsing.SkillKey(r.Name)] {
			out = append(out, r.Name)
		}
	}
	return out
}

// educationGap names the lowest required degree the candidate has not reached.
func educationGap(candidate, required []string) string {
	have := parsing.MaxDegree(candidate)
	if have >= parsing.MaxDegree(required) {
		return EducationGapNone
	}

	lowest := 0
	for _, r := range required {
		o := parsing.DegreeOrdinal(r)
		if o > have && (lowest == 0 || o < lowest) {
			lowest = o
		}
	}
	return "Need " + parsing.DegreeLabel(lowest)
}

// skillGaps is the level-aware view of the required skills. Absent skills
// have an actual level of 0.
func skillGaps(profile *types.CandidateProfile, required types.SkillLevels) []types.SkillGap {
	var out []types.SkillGap
	for _, r := range required {
		level, _ := scoring.CandidateLevel(profile, r.Name)
		if level >= r.Level {
			continue
		}
		out = append(out, types.SkillGap{
			Skill:         r.Name,
			RequiredLevel: r.Level,
			ActualLevel:   level,
			Gap:           r.Level - level,
			Priority:      PriorityFor(r.Level),
		})
	}
	return out
}

// PriorityFor returns critical for required levels of 4 and above.
func PriorityFor(requiredLevel int) types.Priority {
	if requiredLevel >= criticalLevel {
		return types.PriorityCritical
	}
	return types.PriorityImportant
}

// Recommendations turns a gap analysis into ordered advice lines: critical
// gaps, important gaps, missing preferred skills, then experience and education.
func Recommendations(g types.GapAnalysis) []string {
	recs := []string{}

	for _, priority := range []types.Priority{types.PriorityCritical, types.PriorityImportant} {
		for _, sg := range g.SkillGaps {
			if sg.Priority != priority {
				continue
			}
			if sg.ActualLevel == 0 {
				recs = append(recs, fmt.Sprintf("[%s] Learn %s to level %d", priority, sg.Skill, sg.RequiredLevel))
				continue
			}
			recs = append(recs, fmt.Sprintf("[%s] Improve %s from level %d to %d", priority, sg.Skill, sg.ActualLevel, sg.RequiredLevel))
		}
	}

	for _, skill := range g.MissingPreferredSkills {
		recs = append(recs, fmt.Sprintf("[preferred] Consider learning %s", skill))
	}

	if g.ExperienceGap > 0 {
		recs = append(recs, fmt.Sprintf("[experience] Build %.1f more years of relevant experience through projects", g.ExperienceGap))
	}
	if g.EducationGap != "" && g.EducationGap != EducationGapNone {
		recs = append(recs, fmt.Sprintf("[education] %s or equivalent certifications", g.EducationGap))
	}
	return recs
}
