package core

import (
	"fmt"
	"time"
)

// Action is a label the agent can choose each timestep
type Action int

const (
	Suck Action = iota
	MoveRight
	MoveLeft
	Stop
)

var actionNames = [...]string{
	Suck:      "Suck",
	MoveRight: "MoveRight",
	MoveLeft:  "MoveLeft",
	Stop:      "Stop",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// MarshalText renders the action by name so JSON output stays readable.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(b []byte) error {
	for i, name := range actionNames {
		if name == string(b) {
			*a = Action(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", string(b))
}

// Percept is everything the agent senses at one timestep
type Percept struct {
	Position  int     `json:"position"`
	Dirtiness int     `json:"dirtiness"`
	Energy    float64 `json:"energy"`
}

// Outcome is the state of a simulation run
type Outcome int

const (
	Running Outcome = iota
	StoppedByPolicy
	StoppedByExhaustion
	StoppedByCompletion
	StoppedByTimeout
)

var outcomeNames = [...]string{
	Running:             "running",
	StoppedByPolicy:     "stopped_by_policy",
	StoppedByExhaustion: "stopped_by_exhaustion",
	StoppedByCompletion: "stopped_by_completion",
	StoppedByTimeout:    "stopped_by_timeout",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	for i, name := range outcomeNames {
		if name == string(b) {
			*o = Outcome(i)
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", string(b))
}

// Terminal reports whether the run has stopped.
func (o Outcome) Terminal() bool {
	return o != Running
}

// Regrowth records a clean room that became dirty during an environment update
type Regrowth struct {
	Room  int `json:"room"`
	Level int `json:"level"`
}

// InitialState is reported once before the first timestep
type InitialState struct {
	RunID     string    `json:"run_id"`
	Seed      int64     `json:"seed"`
	Rooms     []int     `json:"rooms"`
	Position  int       `json:"position"`
	Energy    float64   `json:"energy"`
	MaxSteps  int       `json:"max_steps"`
	Timestamp time.Time `json:"timestamp"`
}

// StepEvent is reported after every action the agent takes
type StepEvent struct {
	Step     int        `json:"step"` // 1-based
	Action   Action     `json:"action"`
	Position int        `json:"position"`
	Energy   float64    `json:"energy"`
	Rooms    []int      `json:"rooms"`
	Regrowth []Regrowth `json:"regrowth,omitempty"`
}

// Summary is the final report of a run
type Summary struct {
	RunID           string   `json:"run_id"`
	Seed            int64    `json:"seed"`
	Outcome         Outcome  `json:"outcome"`
	Steps           int      `json:"steps"`      // actions performed
	StoppedAt       int      `json:"stopped_at"` // timestep index the loop ended on
	Rooms           []int    `json:"rooms"`
	RoomsCleaned    int      `json:"rooms_cleaned"`
	EnergyConsumed  int      `json:"energy_consumed"`
	RemainingEnergy float64  `json:"remaining_energy"`
	Actions         []Action `json:"actions"`
}
