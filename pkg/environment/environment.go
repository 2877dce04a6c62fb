package environment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

const (
	DefaultCleanProbability    = 0.5
	DefaultRegrowthProbability = 0.1
)

// ErrOutOfBounds is returned for a room index outside the row
var ErrOutOfBounds = errors.New("room index out of bounds")

// Environment is a fixed-length row of rooms with stochastic dirt regrowth
type Environment struct {
	rooms    []*Room
	rng      core.Rand
	cleanP   float64
	regrowth float64
}

type EnvParams struct {
	CleanProbability    float64
	RegrowthProbability float64
}

type EnvOption func(*EnvParams)

// WithCleanProbability sets the chance that a room starts clean
func WithCleanProbability(p float64) EnvOption {
	return func(e *EnvParams) {
		e.CleanProbability = p
	}
}

// WithRegrowthProbability sets the per-step chance that a clean room gets dirty again
func WithRegrowthProbability(p float64) EnvOption {
	return func(e *EnvParams) {
		e.RegrowthProbability = p
	}
}

func defaultEnvParams() *EnvParams {
	return &EnvParams{
		CleanProbability:    DefaultCleanProbability,
		RegrowthProbability: DefaultRegrowthProbability,
	}
}

// New creates n rooms, each independently clean or dirty with a level in [1, 5].
func New(n int, rng core.Rand, opts ...EnvOption) *Environment {
	env := newEnvironment(rng, opts)
	env.rooms = make([]*Room, 0, n)
	for i := 0; i < n; i++ {
		if rng.Float64() < env.cleanP {
			env.rooms = append(env.rooms, NewRoom(0))
			continue
		}
		env.rooms = append(env.rooms, NewRoom(rng.IntRange(MinDirtiness, MaxDirtiness)))
	}
	return env
}

// FromLevels creates an environment with a fixed initial layout. rng is only used for regrowth.
func FromLevels(levels []int, rng core.Rand, opts ...EnvOption) *Environment {
	env := newEnvironment(rng, opts)
	env.rooms = make([]*Room, len(levels))
	for i, l := range levels {
		env.rooms[i] = NewRoom(l)
	}
	return env
}

func newEnvironment(rng core.Rand, opts []EnvOption) *Environment {
	params := defaultEnvParams()
	for _, opt := range opts {
		opt(params)
	}
	return &Environment{
		rng:      rng,
		cleanP:   params.CleanProbability,
		regrowth: params.RegrowthProbability,
	}
}

// UpdateDirtiness gives every clean room a chance to get dirty again.
// Dirty rooms are left alone. The regrowth events are returned in room order.
func (e *Environment) UpdateDirtiness() []core.Regrowth {
	var events []core.Regrowth
	for i, room := range e.rooms {
		if room.IsDirty() {
			continue
		}
		if e.rng.Float64() < e.regrowth {
			level := room.MakeRandomDirty(e.rng)
			events = append(events, core.Regrowth{Room: i, Level: level})
		}
	}
	return events
}

func (e *Environment) AllClean() bool {
	for _, room := range e.rooms {
		if room.IsDirty() {
			return false
		}
	}
	return true
}

func (e *Environment) Room(index int) (*Room, error) {
	if index < 0 || index >= len(e.rooms) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfBounds, index, len(e.rooms))
	}
	return e.rooms[index], nil
}

func (e *Environment) Len() int {
	return len(e.rooms)
}

// Levels returns a snapshot of every room's dirtiness
func (e *Environment) Levels() []int {
	levels := make([]int, len(e.rooms))
	for i, room := range e.rooms {
		levels[i] = room.Dirtiness()
	}
	return levels
}

func (e *Environment) String() string {
	parts := make([]string, len(e.rooms))
	for i, room := range e.rooms {
		parts[i] = room.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
