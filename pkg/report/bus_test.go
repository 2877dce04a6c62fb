package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

// orderReporter appends its name to a shared log on every event
type orderReporter struct {
	name string
	log  *[]string
}

func (o orderReporter) Start(core.InitialState) { *o.log = append(*o.log, o.name+":start") }
func (o orderReporter) Step(core.StepEvent)     { *o.log = append(*o.log, o.name+":step") }
func (o orderReporter) Finish(core.Summary)     { *o.log = append(*o.log, o.name+":finish") }

func TestBus(t *testing.T) {
	t.Run("fan out to every subscriber", func(t *testing.T) {
		bus := NewBus()
		t.Cleanup(bus.Reset)
		r1, r2 := NewRecorder(0), NewRecorder(0)
		require.NoError(t, bus.Subscribe("r1", r1))
		require.NoError(t, bus.Subscribe("r2", r2))

		bus.Start(core.InitialState{RunID: "run"})
		bus.Step(core.StepEvent{Step: 1, Action: core.Suck})
		bus.Finish(core.Summary{Outcome: core.StoppedByCompletion})

		for _, r := range []*Recorder{r1, r2} {
			assert.Equal(t, "run", r.Initial().RunID)
			assert.Len(t, r.Steps(), 1)
			s, ok := r.Summary()
			require.True(t, ok)
			assert.Equal(t, core.StoppedByCompletion, s.Outcome)
		}
	})

	t.Run("subscription order is delivery order", func(t *testing.T) {
		bus := NewBus()
		var log []string
		require.NoError(t, bus.Subscribe("b", orderReporter{"b", &log}))
		require.NoError(t, bus.Subscribe("a", orderReporter{"a", &log}))

		bus.Start(core.InitialState{})
		bus.Step(core.StepEvent{})
		assert.Equal(t, []string{"b:start", "a:start", "b:step", "a:step"}, log)
	})

	t.Run("subscription management", func(t *testing.T) {
		bus := NewBus()
		rec := NewRecorder(0)

		require.NoError(t, bus.Subscribe("r", rec))
		assert.Error(t, bus.Subscribe("r", rec), "duplicate subscription")
		assert.Equal(t, 1, bus.Len())

		require.NoError(t, bus.Unsubscribe("r"))
		assert.Error(t, bus.Unsubscribe("r"), "unsubscribing twice")

		bus.Step(core.StepEvent{Step: 1})
		assert.Empty(t, rec.Steps())
	})
}
