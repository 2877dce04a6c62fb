package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/boristopalov/vacuumworld/pkg/config"
	"github.com/boristopalov/vacuumworld/pkg/core"
	"github.com/boristopalov/vacuumworld/pkg/logging"
	"github.com/boristopalov/vacuumworld/pkg/report"
	"github.com/boristopalov/vacuumworld/pkg/simulation"
)

// Stat summarizes one measure over all episodes
type Stat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Result aggregates the episodes of a batch
type Result struct {
	Episodes       int                  `json:"episodes"`
	BaseSeed       int64                `json:"base_seed"`
	Outcomes       map[core.Outcome]int `json:"outcomes"`
	RoomsCleaned   Stat                 `json:"rooms_cleaned"`
	EnergyConsumed Stat                 `json:"energy_consumed"`
	Steps          Stat                 `json:"steps"`
}

type BatchParams struct {
	Reporter report.Reporter
	Logger   *slog.Logger
}

type BatchOption func(*BatchParams)

// WithReporter shares one reporter across every episode
func WithReporter(r report.Reporter) BatchOption {
	return func(p *BatchParams) {
		p.Reporter = r
	}
}

func WithLogger(l *slog.Logger) BatchOption {
	return func(p *BatchParams) {
		p.Logger = l
	}
}

// Run plays cfg.Batch.Episodes independent episodes. Episode i uses seed base+i, where base
// is the configured seed or a clock-based one.
func Run(ctx context.Context, cfg *config.SimulationConfig, opts ...BatchOption) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params := &BatchParams{
		Reporter: report.Nop{},
		Logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(params)
	}

	base := time.Now().UnixNano()
	if cfg.Seed != nil {
		base = *cfg.Seed
	}

	episodes := cfg.Batch.Episodes
	result := &Result{
		Episodes: episodes,
		BaseSeed: base,
		Outcomes: make(map[core.Outcome]int),
	}
	cleaned := make([]float64, 0, episodes)
	consumed := make([]float64, 0, episodes)
	steps := make([]float64, 0, episodes)

	for i := 0; i < episodes; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		episodeCfg := *cfg
		seed := base + int64(i)
		episodeCfg.Seed = &seed

		sim, err := simulation.NewFromConfig(&episodeCfg,
			simulation.WithReporter(params.Reporter),
			simulation.WithLogger(params.Logger),
		)
		if err != nil {
			return nil, err
		}
		summary, err := sim.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("episode %d (seed %d): %w", i, seed, err)
		}

		result.Outcomes[summary.Outcome]++
		cleaned = append(cleaned, float64(summary.RoomsCleaned))
		consumed = append(consumed, float64(summary.EnergyConsumed))
		steps = append(steps, float64(summary.Steps))
	}

	result.RoomsCleaned = summarize(cleaned)
	result.EnergyConsumed = summarize(consumed)
	result.Steps = summarize(steps)

	params.Logger.Info("batch finished",
		"episodes", episodes,
		"base_seed", base,
		"mean_rooms_cleaned", result.RoomsCleaned.Mean,
		"mean_energy_consumed", result.EnergyConsumed.Mean,
	)
	return result, nil
}

func summarize(x []float64) Stat {
	if len(x) == 0 {
		return Stat{}
	}
	s := Stat{
		Min: floats.Min(x),
		Max: floats.Max(x),
	}
	if len(x) < 2 {
		s.Mean = x[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	return s
}
