//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyLogInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   DailyLogInput
		wantErr bool
	}{
		{name: "zero hours", input: DailyLogInput{}},
		{name: "hours and date", input: DailyLogInput{Hours: 2.5, Date: "2024-03-02"}},
		{name: "negative hours", input: DailyLogInput{Hours: -1}, wantErr: true},
		{name: "bad date", input: DailyLogInput{Hours: 1, Date: "03/02/2024"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEndSprintInput_Validate(t *testing.T) {
	assert.NoError(t, (&EndSprintInput{TestScores: map[string]float64{"Go": 0, "SQL": 100}}).Validate())
	assert.NoError(t, (&EndSprintInput{}).Validate())
	assert.Error(t, (&EndSprintInput{TestScores: map[string]float64{"Go": 101}}).Validate())
	assert.Error(t, (&EndSprintInput{TestScores: map[string]float64{"Go": -5}}).Validate())
	assert.Error(t, (&EndSprintInput{TestScores: map[string]float64{"": 50}}).Validate())
}

func TestSprint_CloneIsIndependent(t *testing.T) {
	original := Sprint{
		SprintNumber:   1,
		SkillsTargeted: []string{"Go"},
		DailyLogs:      []DailyLog{{DayNumber: 1, Concepts: []string{"channels"}}},
		TestScores:     map[string]float64{"Go": 70},
	}

	clone := original.Clone()
	clone.SkillsTargeted[0] = "Rust"
	clone.DailyLogs[0].Concepts[0] = "traits"
	clone.TestScores["Go"] = 10

	assert.Equal(t, "Go", original.SkillsTargeted[0])
	assert.Equal(t, "channels", original.DailyLogs[0].Concepts[0])
	assert.Equal(t, 70.0, original.TestScores["Go"])
}

func TestWorkflowState_Clone(t *testing.T) {
	state := NewWorkflowState()
	state.SkillsMastered = append(state.SkillsMastered, "Go")
	state.TestsPassed["Go"] = []TestLevel{TestLevelBeginner}
	state.QualityGatesPassed = append(state.QualityGatesPassed, GateFoundation)

	clone := state.Clone()
	clone.SkillsMastered[0] = "Rust"
	clone.TestsPassed["Go"][0] = TestLevelAdvanced
	clone.QualityGatesPassed = append(clone.QualityGatesPassed, GateCompetency)

	assert.Equal(t, []string{"Go"}, state.SkillsMastered)
	assert.Equal(t, TestLevelBeginner, state.TestsPassed["Go"][0])
	assert.True(t, state.HasGate(GateFoundation))
	assert.False(t, state.HasGate(GateCompetency))
}

func TestMode_Valid(t *testing.T) {
	assert.True(t, ModeStandard.Valid())
	assert.True(t, ModeReverse.Valid())
	assert.False(t, Mode("sideways").Valid())
}
