package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreJSON(t *testing.T) {
	payload := []byte(`{"score":null,"max":100}`)
	var component ComponentScore
	require.NoError(t, json.Unmarshal(payload, &component))
	assert.False(t, component.Score.IsPresent())

	require.NoError(t, json.Unmarshal([]byte(`{"score":0,"max":100}`), &component))
	value, ok := component.Score.Value()
	assert.True(t, ok, "zero is a real score")
	assert.Zero(t, value)

	out, err := json.Marshal(ComponentScore{Max: 50})
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":null,"max":50}`, string(out))
}

func TestScoreHelpers(t *testing.T) {
	assert.Equal(t, 10.0, Absent().Or(10))
	assert.Equal(t, 0.0, Present(0).Or(10))
	assert.False(t, ScoreFromPtr(nil).IsPresent())
	v := 7.5
	got, ok := ScoreFromPtr(&v).Value()
	assert.True(t, ok)
	assert.Equal(t, 7.5, got)
	assert.Equal(t, "N/A", Absent().String())
	assert.Equal(t, "7.5", Present(7.5).String())
}

func TestPeriodInputsComplete(t *testing.T) {
	in := PeriodInputs{
		Quizzes: [QuizSlots]ComponentScore{{Score: Present(1), Max: 10}, {Score: Present(2), Max: 10}},
		Exam:    ComponentScore{Score: Present(0), Max: 100},
	}
	assert.True(t, in.Complete())
	in.Quizzes[1].Score = Absent()
	assert.False(t, in.Complete())
	assert.False(t, PeriodInputs{}.Complete())
}
