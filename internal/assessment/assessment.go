// Package assessment defines the three-tier skill tests and their pass thresholds.
package assessment

import (
	"strings"
	"time"

	"github.com/jonathan/jobready/internal/types"
)

// Tiers lists the test tiers from easiest to hardest.
var Tiers = []types.TestTier{
	{Level: types.TestLevelBeginner, Questions: 10, PassThreshold: 60},
	{Level: types.TestLevelIntermediate, Questions: 15, PassThreshold: 70},
	{Level: types.TestLevelAdvanced, Questions: 20, PassThreshold: 80},
}

// Generate returns one SkillTest per distinct non-empty skill, in input order.
func Generate(skills []string, now time.Time) []types.SkillTest {
	generatedAt := now.UTC().Format(time.RFC3339)
	seen := make(map[string]bool)
	tests := []types.SkillTest{}
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || seen[strings.ToLower(skill)] {
			continue
		}
		seen[strings.ToLower(skill)] = true
		tests = append(tests, types.SkillTest{
			Skill:       skill,
			Tiers:       append([]types.TestTier{}, Tiers...),
			GeneratedAt: generatedAt,
		})
	}
	return tests
}

// LevelForScore returns the highest tier whose threshold score reaches.
// It returns false below the beginner threshold.
func LevelForScore(score float64) (types.TestLevel, bool) {
	for i := len(Tiers) - 1; i >= 0; i-- {
		if score >= float64(Tiers[i].PassThreshold) {
			return Tiers[i].Level, true
		}
	}
	return "", false
}

// MasteryThreshold is the score at which a tested skill counts as mastered.
func MasteryThreshold() float64 {
	return float64(Tiers[0].PassThreshold)
}

// Merge upserts fresh tests into existing, keyed case-insensitively by skill.
// Existing order is kept and new skills are appended.
func Merge(existing, fresh []types.SkillTest) []types.SkillTest {
	out := append([]types.SkillTest{}, existing...)
	index := make(map[string]int, len(out))
	for i, t := range out {
		index[strings.ToLower(t.Skill)] = i
	}
	for _, t := range fresh {
		key := strings.ToLower(t.Skill)
		if i, ok := index[key]; ok {
			out[i] = t
			continue
		}
		index[key] = len(out)
		out = append(out, t)
	}
	return out
}
