package agent

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristopalov/vacuumworld/pkg/core"
	"github.com/boristopalov/vacuumworld/pkg/environment"
	"github.com/boristopalov/vacuumworld/pkg/random"
)

func newEnv(levels ...int) *environment.Environment {
	return environment.FromLevels(levels, random.NewSource(1), environment.WithRegrowthProbability(0))
}

func TestNewAgent(t *testing.T) {
	a := New(4)
	assert.Equal(t, 0, a.Position())
	assert.Equal(t, 10.0, a.Energy())
	assert.Equal(t, 10.0, a.InitialEnergy())
	assert.Empty(t, a.Actions())
	assert.Equal(t, 0, a.CleanedRooms())
	assert.True(t, strings.HasPrefix(a.ID(), "agent-"))

	b := New(4, WithID("vac"), WithEnergy(-1))
	assert.Equal(t, "vac", b.ID())
	assert.Equal(t, 0.0, b.Energy())
}

func TestReflexPolicy(t *testing.T) {
	tests := []struct {
		name    string
		percept core.Percept
		rooms   int
		want    core.Action
	}{
		{"dirty and affordable", core.Percept{Position: 1, Dirtiness: 3, Energy: 3}, 3, core.Suck},
		{"dirty beats move", core.Percept{Position: 0, Dirtiness: 1, Energy: 10}, 3, core.Suck},
		{"dirty but too expensive moves right", core.Percept{Position: 0, Dirtiness: 3, Energy: 2.5}, 3, core.MoveRight},
		{"clean moves right", core.Percept{Position: 0, Dirtiness: 0, Energy: 5}, 3, core.MoveRight},
		{"right edge moves left", core.Percept{Position: 2, Dirtiness: 0, Energy: 5}, 3, core.MoveLeft},
		{"single room cannot move", core.Percept{Position: 0, Dirtiness: 3, Energy: 2.5}, 1, core.Stop},
		{"cannot afford a move", core.Percept{Position: 1, Dirtiness: 0, Energy: 1.9}, 3, core.Stop},
		{"exact move cost", core.Percept{Position: 1, Dirtiness: 0, Energy: 2}, 3, core.MoveRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReflexPolicy{}.Decide(tt.percept, tt.rooms)
			assert.Equal(t, tt.want, got)
			// same input, same answer
			assert.Equal(t, got, ReflexPolicy{}.Decide(tt.percept, tt.rooms))
		})
	}
}

func TestPriority(t *testing.T) {
	for dirt := 1; dirt <= environment.MaxDirtiness; dirt++ {
		for pos := 0; pos < 4; pos++ {
			p := core.Percept{Position: pos, Dirtiness: dirt, Energy: float64(dirt) + 0.5}
			assert.Equal(t, core.Suck, ReflexPolicy{}.Decide(p, 4))
		}
	}
}

func TestPerceive(t *testing.T) {
	t.Run("reads current room", func(t *testing.T) {
		env := newEnv(0, 4)
		a := New(2, WithPosition(1))
		p, err := a.Perceive(env)
		require.NoError(t, err)
		assert.Equal(t, core.Percept{Position: 1, Dirtiness: 4, Energy: 5}, p)
		assert.Equal(t, []int{0, 4}, env.Levels())
	})

	t.Run("out of bounds position", func(t *testing.T) {
		env := newEnv(0)
		a := New(1, WithPosition(3))
		_, err := a.Perceive(env)
		assert.True(t, errors.Is(err, environment.ErrOutOfBounds))
	})
}

func TestAct(t *testing.T) {
	t.Run("suck cleans and pays dirtiness", func(t *testing.T) {
		env := newEnv(3, 0)
		a := New(2)
		require.NoError(t, a.Act(core.Suck, env))
		assert.Equal(t, []int{0, 0}, env.Levels())
		assert.Equal(t, 2.0, a.Energy())
		assert.Equal(t, 1, a.CleanedRooms())
	})

	t.Run("suck uses live dirtiness", func(t *testing.T) {
		env := newEnv(2)
		a := New(1, WithEnergy(4))
		p, err := a.Perceive(env)
		require.NoError(t, err)
		require.Equal(t, core.Suck, a.Decide(p, env.Len()))

		r, _ := env.Room(0)
		r.MakeDirty(5)
		require.NoError(t, a.Act(core.Suck, env))
		assert.Equal(t, []int{5}, env.Levels())
		assert.Equal(t, 4.0, a.Energy())
		assert.Equal(t, 0, a.CleanedRooms())
		assert.Equal(t, []core.Action{core.Suck}, a.Actions())
	})

	t.Run("moves pay the move cost", func(t *testing.T) {
		env := newEnv(0, 0, 0)
		a := New(3)
		require.NoError(t, a.Act(core.MoveRight, env))
		require.NoError(t, a.Act(core.MoveRight, env))
		assert.Equal(t, 2, a.Position())
		require.NoError(t, a.Act(core.MoveLeft, env))
		assert.Equal(t, 1, a.Position())
		assert.Equal(t, 1.5, a.Energy())
	})

	t.Run("impossible moves are recorded no-ops", func(t *testing.T) {
		env := newEnv(0, 0)
		a := New(2, WithEnergy(1))
		require.NoError(t, a.Act(core.MoveLeft, env))
		require.NoError(t, a.Act(core.MoveRight, env))
		require.NoError(t, a.Act(core.Stop, env))
		assert.Equal(t, 0, a.Position())
		assert.Equal(t, 1.0, a.Energy())
		assert.Equal(t, []core.Action{core.MoveLeft, core.MoveRight, core.Stop}, a.Actions())
	})

	t.Run("suck out of bounds", func(t *testing.T) {
		env := newEnv(1)
		a := New(1, WithPosition(-1))
		err := a.Act(core.Suck, env)
		assert.True(t, errors.Is(err, environment.ErrOutOfBounds))
	})

	t.Run("actions is a copy", func(t *testing.T) {
		env := newEnv(0, 0)
		a := New(2)
		require.NoError(t, a.Act(core.MoveRight, env))
		actions := a.Actions()
		actions[0] = core.Stop
		assert.Equal(t, []core.Action{core.MoveRight}, a.Actions())
	})
}

func TestStateStaysInBounds(t *testing.T) {
	rng := random.NewSource(5)
	env := environment.New(6, rng)
	a := New(env.Len())
	last := a.Energy()
	for i := 0; i < 200; i++ {
		env.UpdateDirtiness()
		p, err := a.Perceive(env)
		require.NoError(t, err)
		action := a.Decide(p, env.Len())
		if action == core.Stop {
			break
		}
		require.NoError(t, a.Act(action, env))
		assert.LessOrEqual(t, a.Energy(), last)
		assert.GreaterOrEqual(t, a.Position(), 0)
		assert.Less(t, a.Position(), env.Len())
		assert.LessOrEqual(t, a.CleanedRooms(), len(a.Actions()))
		last = a.Energy()
	}
}
