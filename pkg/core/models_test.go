package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionNames(t *testing.T) {
	assert.Equal(t, "Suck", Suck.String())
	assert.Equal(t, "MoveRight", MoveRight.String())
	assert.Equal(t, "MoveLeft", MoveLeft.String())
	assert.Equal(t, "Stop", Stop.String())
	assert.Equal(t, "Action(9)", Action(9).String())

	var a Action
	require.NoError(t, a.UnmarshalText([]byte("MoveLeft")))
	assert.Equal(t, MoveLeft, a)
	assert.Error(t, a.UnmarshalText([]byte("Jump")))
}

func TestOutcome(t *testing.T) {
	assert.False(t, Running.Terminal())
	for _, o := range []Outcome{StoppedByPolicy, StoppedByExhaustion, StoppedByCompletion, StoppedByTimeout} {
		assert.True(t, o.Terminal(), o.String())
	}

	counts := map[Outcome]int{StoppedByTimeout: 2}
	data, err := json.Marshal(counts)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stopped_by_timeout": 2}`, string(data))

	var back map[Outcome]int
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, counts, back)
}
