package report

import "github.com/boristopalov/vacuumworld/pkg/core"

// Reporter receives the structured events of a simulation run
type Reporter interface {
	// Start is called once with the freshly built world
	Start(core.InitialState)
	// Step is called after every action the agent takes
	Step(core.StepEvent)
	// Finish is called once with the final summary
	Finish(core.Summary)
}

// Nop discards every event
type Nop struct{}

var _ Reporter = Nop{}

func (Nop) Start(core.InitialState) {}

func (Nop) Step(core.StepEvent) {}

func (Nop) Finish(core.Summary) {}
