package report

import (
	"sync"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

// Recorder keeps the events of a run in memory.
// With a positive capacity only the most recent steps are kept.
type Recorder struct {
	initial  core.InitialState
	steps    []core.StepEvent
	summary  *core.Summary
	capacity int
	dropped  int
	mu       sync.RWMutex
}

var _ Reporter = &Recorder{}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{
		steps:    make([]core.StepEvent, 0),
		capacity: capacity,
	}
}

func (r *Recorder) Start(s core.InitialState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initial = s
	r.steps = r.steps[:0]
	r.summary = nil
	r.dropped = 0
}

func (r *Recorder) Step(e core.StepEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps = append(r.steps, e)
	if r.capacity > 0 && len(r.steps) > r.capacity {
		r.steps = r.steps[1:]
		r.dropped++
	}
}

func (r *Recorder) Finish(s core.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary = &s
}

func (r *Recorder) Initial() core.InitialState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initial
}

// Steps returns a copy of the recorded step events
func (r *Recorder) Steps() []core.StepEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	steps := make([]core.StepEvent, len(r.steps))
	copy(steps, r.steps)
	return steps
}

// Dropped is the number of steps evicted by the capacity limit
func (r *Recorder) Dropped() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dropped
}

// Summary returns the final summary, or false if the run has not finished
func (r *Recorder) Summary() (core.Summary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.summary == nil {
		return core.Summary{}, false
	}
	return *r.summary, true
}
