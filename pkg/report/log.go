package report

import (
	"log/slog"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

// LogReporter writes run events to a structured logger
type LogReporter struct {
	base   *slog.Logger
	logger *slog.Logger
}

var _ Reporter = &LogReporter{}

func NewLogReporter(logger *slog.Logger) *LogReporter {
	return &LogReporter{base: logger, logger: logger}
}

func (l *LogReporter) Start(s core.InitialState) {
	l.logger = l.base.With("run_id", s.RunID)
	l.logger.Info("simulation started",
		"seed", s.Seed,
		"rooms", FormatRooms(s.Rooms),
		"energy", s.Energy,
		"max_steps", s.MaxSteps,
	)
}

func (l *LogReporter) Step(e core.StepEvent) {
	l.logger.Debug("step",
		"step", e.Step,
		"action", e.Action.String(),
		"position", e.Position,
		"energy", e.Energy,
		"rooms", FormatRooms(e.Rooms),
		"regrowth", len(e.Regrowth),
	)
}

func (l *LogReporter) Finish(s core.Summary) {
	l.logger.Info("simulation finished",
		"outcome", s.Outcome.String(),
		"steps", s.Steps,
		"rooms_cleaned", s.RoomsCleaned,
		"energy_consumed", s.EnergyConsumed,
		"remaining_energy", s.RemainingEnergy,
	)
}
