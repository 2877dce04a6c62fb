package agent

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/boristopalov/vacuumworld/pkg/core"
	"github.com/boristopalov/vacuumworld/pkg/environment"
)

const (
	// EnergyPerRoom scales the starting budget with the length of the row
	EnergyPerRoom = 2.5
	// MoveCost is charged for every successful move
	MoveCost = 2.0
)

// Agent is a reflex vacuum cleaner that only senses the room it is in
type Agent struct {
	id            string
	position      int
	energy        float64
	initialEnergy float64
	actions       []core.Action
	cleanedRooms  int
	policy        core.Policy
}

type AgentParams struct {
	AgentID  string
	Energy   float64
	Position int
	Policy   core.Policy
}

type AgentOption func(*AgentParams)

func WithID(id string) AgentOption {
	return func(p *AgentParams) {
		p.AgentID = id
	}
}

// WithEnergy overrides the starting budget
func WithEnergy(e float64) AgentOption {
	return func(p *AgentParams) {
		p.Energy = e
	}
}

func WithPosition(pos int) AgentOption {
	return func(p *AgentParams) {
		p.Position = pos
	}
}

func WithPolicy(policy core.Policy) AgentOption {
	return func(p *AgentParams) {
		p.Policy = policy
	}
}

func defaultAgentParams(rooms int) *AgentParams {
	return &AgentParams{
		AgentID:  "agent-" + uuid.New().String(),
		Energy:   EnergyPerRoom * float64(rooms),
		Position: 0,
		Policy:   ReflexPolicy{},
	}
}

// New creates an agent for a row of the given length, at position 0 with a full budget.
func New(rooms int, opts ...AgentOption) *Agent {
	params := defaultAgentParams(rooms)
	for _, opt := range opts {
		opt(params)
	}
	energy := params.Energy
	if energy < 0 {
		energy = 0
	}

	return &Agent{
		id:            params.AgentID,
		position:      params.Position,
		energy:        energy,
		initialEnergy: energy,
		actions:       make([]core.Action, 0),
		policy:        params.Policy,
	}
}

func (a *Agent) ID() string {
	return a.id
}

func (a *Agent) Position() int {
	return a.position
}

func (a *Agent) Energy() float64 {
	return a.energy
}

func (a *Agent) InitialEnergy() float64 {
	return a.initialEnergy
}

func (a *Agent) CleanedRooms() int {
	return a.cleanedRooms
}

// Actions returns a copy of the action history in the order taken
func (a *Agent) Actions() []core.Action {
	actions := make([]core.Action, len(a.actions))
	copy(actions, a.actions)
	return actions
}

// Perceive senses the current room without changing anything.
func (a *Agent) Perceive(env *environment.Environment) (core.Percept, error) {
	room, err := env.Room(a.position)
	if err != nil {
		return core.Percept{}, fmt.Errorf("agent %s failed to perceive: %w", a.id, err)
	}
	return core.Percept{
		Position:  a.position,
		Dirtiness: room.Dirtiness(),
		Energy:    a.energy,
	}, nil
}

func (a *Agent) Decide(p core.Percept, rooms int) core.Action {
	return a.policy.Decide(p, rooms)
}

// Act applies an action. Preconditions are re-checked against the live environment and an
// unaffordable or impossible action does nothing, but it is still recorded.
func (a *Agent) Act(action core.Action, env *environment.Environment) error {
	switch action {
	case core.Suck:
		room, err := env.Room(a.position)
		if err != nil {
			return fmt.Errorf("agent %s failed to suck: %w", a.id, err)
		}
		cost := float64(room.Dirtiness())
		if a.energy >= cost {
			room.Clean()
			a.energy -= cost
			a.cleanedRooms++
		}
	case core.MoveRight:
		if a.position < env.Len()-1 && a.energy >= MoveCost {
			a.position++
			a.energy -= MoveCost
		}
	case core.MoveLeft:
		if a.position > 0 && a.energy >= MoveCost {
			a.position--
			a.energy -= MoveCost
		}
	}

	a.actions = append(a.actions, action)
	return nil
}
