package assessment

import (
	"testing"
	"time"

	"github.com/jonathan/jobready/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := Generate([]string{"Docker", " ", "docker", "Python"}, now)

	require.Len(t, tests, 2)
	assert.Equal(t, "Docker", tests[0].Skill)
	assert.Equal(t, "Python", tests[1].Skill)
	assert.Equal(t, "2025-01-02T03:04:05Z", tests[0].GeneratedAt)

	require.Len(t, tests[0].Tiers, 3)
	assert.Equal(t, types.TestTier{Level: types.TestLevelBeginner, Questions: 10, PassThreshold: 60}, tests[0].Tiers[0])
	assert.Equal(t, types.TestTier{Level: types.TestLevelIntermediate, Questions: 15, PassThreshold: 70}, tests[0].Tiers[1])
	assert.Equal(t, types.TestTier{Level: types.TestLevelAdvanced, Questions: 20, PassThreshold: 80}, tests[0].Tiers[2])
}

func TestLevelForScore(t *testing.T) {
	cases := []struct {
		score float64
		level types.TestLevel
		ok    bool
	}{
		{100, types.TestLevelAdvanced, true},
		{80, types.TestLevelAdvanced, true},
		{79.9, types.TestLevelIntermediate, true},
		{72, types.TestLevelIntermediate, true},
		{70, types.TestLevelIntermediate, true},
		{60, types.TestLevelBeginner, true},
		{59.9, "", false},
		{0, "", false},
	}
	for _, tc := range cases {
		level, ok := LevelForScore(tc.score)
		assert.Equal(t, tc.ok, ok, "score %v", tc.score)
		assert.Equal(t, tc.level, level, "score %v", tc.score)
	}
	assert.Equal(t, 60.0, MasteryThreshold())
}

func TestMerge(t *testing.T) {
	old := []types.SkillTest{{Skill: "Docker", GeneratedAt: "old"}, {Skill: "Go", GeneratedAt: "old"}}
	fresh := []types.SkillTest{{Skill: "docker", GeneratedAt: "new"}, {Skill: "SQL", GeneratedAt: "new"}}

	merged := Merge(old, fresh)

	require.Len(t, merged, 3)
	assert.Equal(t, "docker", merged[0].Skill)
	assert.Equal(t, "new", merged[0].GeneratedAt)
	assert.Equal(t, "Go", merged[1].Skill)
	assert.Equal(t, "SQL", merged[2].Skill)
	assert.Equal(t, "Docker", old[0].Skill, "input is not modified")
}
