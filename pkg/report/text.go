package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

// TextReporter prints a human readable step-by-step account of a run
type TextReporter struct {
	out io.Writer

	header *color.Color
	action *color.Color
	dirty  *color.Color
	clean  *color.Color
	faint  *color.Color
}

var _ Reporter = &TextReporter{}

func NewTextReporter(out io.Writer, colored bool) *TextReporter {
	t := &TextReporter{
		out:    out,
		header: color.New(color.Bold),
		action: color.New(color.FgCyan),
		dirty:  color.New(color.FgYellow),
		clean:  color.New(color.FgGreen),
		faint:  color.New(color.FgHiBlack),
	}
	if !colored {
		for _, c := range []*color.Color{t.header, t.action, t.dirty, t.clean, t.faint} {
			c.DisableColor()
		}
	}
	return t
}

func (t *TextReporter) Start(s core.InitialState) {
	t.faint.Fprintf(t.out, "Run %s (seed %d)\n", s.RunID, s.Seed)
	fmt.Fprintf(t.out, "Initial state: %s\n", t.rooms(s.Rooms))
	fmt.Fprintf(t.out, "Initial energy: %s\n", formatEnergy(s.Energy))
}

func (t *TextReporter) Step(e core.StepEvent) {
	fmt.Fprintf(t.out, "Step %d: Action = %s, Energy = %s, Rooms = %s\n",
		e.Step, t.action.Sprint(e.Action), formatEnergy(e.Energy), t.rooms(e.Rooms))
}

func (t *TextReporter) Finish(s core.Summary) {
	if s.Outcome == core.StoppedByPolicy {
		fmt.Fprintf(t.out, "\nStopping at timestep %d. No more actions possible.\n", s.StoppedAt)
	}

	t.header.Fprintln(t.out, "\nFinal Report:")
	fmt.Fprintf(t.out, "Outcome: %s\n", s.Outcome)
	fmt.Fprintf(t.out, "Final room states: %s\n", t.rooms(s.Rooms))
	fmt.Fprintf(t.out, "Rooms cleaned: %d\n", s.RoomsCleaned)
	fmt.Fprintf(t.out, "Total energy consumed: %d\n", s.EnergyConsumed)
	fmt.Fprintf(t.out, "Remaining energy: %s\n", formatEnergy(s.RemainingEnergy))
	fmt.Fprintf(t.out, "Actions taken: %s\n", formatActions(s.Actions))
}

func (t *TextReporter) rooms(levels []int) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		if l > 0 {
			parts[i] = t.dirty.Sprintf("Dirtiness(%d)", l)
		} else {
			parts[i] = t.clean.Sprint("Clean")
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatRooms renders room levels the way the text report does, without color
func FormatRooms(levels []int) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		if l > 0 {
			parts[i] = fmt.Sprintf("Dirtiness(%d)", l)
		} else {
			parts[i] = "Clean"
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatEnergy(e float64) string {
	return fmt.Sprintf("%g", e)
}

func formatActions(actions []core.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
