package scoring

import (
	"github.com/jonathan/jobready/internal/parsing"
	"github.com/jonathan/jobready/internal/types"
)

// Strategy scores one skill category (required or preferred).
// Both implementations return 100 for an empty requirement.
type Strategy interface {
	Name() string
	SkillScore(profile *types.CandidateProfile, required types.SkillLevels) (score float64, closeSkills []string)
}

// MembershipStrategy counts a skill as matched when the candidate lists it at all.
// Used by the quick-analysis path.
type MembershipStrategy struct{}

// Name implements Strategy.
func (MembershipStrategy) Name() string { return "membership" }

// SkillScore implements Strategy.
func (MembershipStrategy) SkillScore(profile *types.CandidateProfile, required types.SkillLevels) (float64, []string) {
	if len(required) == 0 {
		return 100, nil
	}

	candidate := CandidateSkillSet(profile)
	matched := 0
	for _, r := range required {
		if candidate[parsing.SkillKey(r.Name)] {
			matched++
		}
	}
	return float64(matched) / float64(len(required)) * 100, nil
}

// DefaultCloseCredit is the share of a match credited to a skill one level short.
const DefaultCloseCredit = 0.5

// LevelStrategy matches when candidate_level >= required_level, and gives
// partial credit to "close" skills (candidate_level == required_level - 1).
// Used by the detailed gap/recommendation path and by sprint evaluation.
type LevelStrategy struct {
	CloseCredit float64
}

// NewLevelStrategy returns a LevelStrategy with the default close credit.
func NewLevelStrategy() LevelStrategy {
	return LevelStrategy{CloseCredit: DefaultCloseCredit}
}

// Name implements Strategy.
func (LevelStrategy) Name() string { return "level" }

// SkillScore implements Strategy.
func (l LevelStrategy) SkillScore(profile *types.CandidateProfile, required types.SkillLevels) (float64, []string) {
	if len(required) == 0 {
		return 100, nil
	}

	credit := 0.0
	var closeSkills []string
	for _, r := range required {
		level, ok := CandidateLevel(profile, r.Name)
		switch {
		case ok && level >= r.Level:
			credit++
		case ok && level == r.Level-1:
			credit += l.CloseCredit
			closeSkills = append(closeSkills, r.Name)
		}
	}
	return credit / float64(len(required)) * 100, closeSkills
}

// CandidateSkillSet flattens the candidate's technical and soft skills into a key set.
func CandidateSkillSet(profile *types.CandidateProfile) map[string]bool {
	if profile == nil {
		return map[string]bool{}
	}
	return parsing.SkillSet(profile.Skills.Names(), profile.SoftSkills)
}

// CandidateLevel returns the candidate's level for a skill, matching synonyms.
// Absent skills report (0, false).
func CandidateLevel(profile *types.CandidateProfile, skill string) (int, bool) {
	if profile == nil {
		return 0, false
	}
	key := parsing.SkillKey(skill)
	for _, sl := range profile.Skills {
		if parsing.SkillKey(sl.Name) == key {
			return sl.Level, true
		}
	}
	return 0, false
}
