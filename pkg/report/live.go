package report

import (
	"fmt"
	"io"

	"github.com/gosuri/uilive"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

// LiveReporter redraws a single status block in place as the run progresses
type LiveReporter struct {
	writer   *uilive.Writer
	maxSteps int
}

var _ Reporter = &LiveReporter{}

func NewLiveReporter(out io.Writer) *LiveReporter {
	w := uilive.New()
	w.Out = out
	return &LiveReporter{writer: w}
}

func (l *LiveReporter) Start(s core.InitialState) {
	l.maxSteps = s.MaxSteps
	fmt.Fprintf(l.writer, "step 0/%d  energy %g\nrooms %s\n", s.MaxSteps, s.Energy, FormatRooms(s.Rooms))
	l.writer.Flush()
}

func (l *LiveReporter) Step(e core.StepEvent) {
	fmt.Fprintf(l.writer, "step %d/%d  %-9s energy %g  position %d\nrooms %s\n",
		e.Step, l.maxSteps, e.Action, e.Energy, e.Position, FormatRooms(e.Rooms))
	l.writer.Flush()
}

func (l *LiveReporter) Finish(s core.Summary) {
	fmt.Fprintf(l.writer, "%s after %d steps: cleaned %d, consumed %d energy\nrooms %s\n",
		s.Outcome, s.Steps, s.RoomsCleaned, s.EnergyConsumed, FormatRooms(s.Rooms))
	l.writer.Flush()
}
