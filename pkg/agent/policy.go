package agent

import "github.com/boristopalov/vacuumworld/pkg/core"

// ReflexPolicy cleans before it moves and prefers moving right.
type ReflexPolicy struct{}

var _ core.Policy = ReflexPolicy{}

func (ReflexPolicy) Decide(p core.Percept, rooms int) core.Action {
	switch {
	case p.Dirtiness > 0 && p.Energy >= float64(p.Dirtiness):
		return core.Suck
	case p.Position < rooms-1 && p.Energy >= MoveCost:
		return core.MoveRight
	case p.Position > 0 && p.Energy >= MoveCost:
		return core.MoveLeft
	default:
		return core.Stop
	}
}
