package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boristopalov/vacuumworld/pkg/agent"
	"github.com/boristopalov/vacuumworld/pkg/config"
	"github.com/boristopalov/vacuumworld/pkg/core"
	"github.com/boristopalov/vacuumworld/pkg/environment"
	"github.com/boristopalov/vacuumworld/pkg/logging"
	"github.com/boristopalov/vacuumworld/pkg/random"
	"github.com/boristopalov/vacuumworld/pkg/report"
)

var ErrAlreadyRan = errors.New("simulation already ran")

// Status is a snapshot of a run in progress
type Status struct {
	Outcome   core.Outcome
	Timestep  int
	StartTime time.Time
	EndTime   time.Time
}

// Simulation drives one agent through one environment for at most maxSteps timesteps
type Simulation struct {
	runID    string
	seed     int64
	env      *environment.Environment
	agent    *agent.Agent
	maxSteps int
	reporter report.Reporter
	logger   *slog.Logger

	mu     sync.RWMutex
	status Status
}

type SimulationParams struct {
	RunID    string
	Seed     int64
	Reporter report.Reporter
	Logger   *slog.Logger
}

type SimulationOption func(*SimulationParams)

func WithRunID(id string) SimulationOption {
	return func(p *SimulationParams) {
		p.RunID = id
	}
}

// WithSeed records the seed the environment's random stream was built from
func WithSeed(seed int64) SimulationOption {
	return func(p *SimulationParams) {
		p.Seed = seed
	}
}

func WithReporter(r report.Reporter) SimulationOption {
	return func(p *SimulationParams) {
		p.Reporter = r
	}
}

func WithLogger(l *slog.Logger) SimulationOption {
	return func(p *SimulationParams) {
		p.Logger = l
	}
}

func defaultSimulationParams() *SimulationParams {
	return &SimulationParams{
		RunID:    uuid.New().String(),
		Reporter: report.Nop{},
		Logger:   logging.Discard(),
	}
}

func New(env *environment.Environment, ag *agent.Agent, maxSteps int, opts ...SimulationOption) *Simulation {
	params := defaultSimulationParams()
	for _, opt := range opts {
		opt(params)
	}

	return &Simulation{
		runID:    params.RunID,
		seed:     params.Seed,
		env:      env,
		agent:    ag,
		maxSteps: maxSteps,
		reporter: params.Reporter,
		logger:   params.Logger.With("run_id", params.RunID),
		status: Status{
			Outcome: core.Running,
		},
	}
}

// NewFromConfig builds a freshly randomized world. Without a configured seed one is taken
// from the clock and reported so the run can be replayed.
func NewFromConfig(cfg *config.SimulationConfig, opts ...SimulationOption) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var rng *random.Source
	if cfg.Seed != nil {
		rng = random.NewSource(*cfg.Seed)
	} else {
		rng = random.NewTimeSeeded()
	}

	env := environment.New(cfg.Rooms, rng,
		environment.WithCleanProbability(cfg.CleanProbability),
		environment.WithRegrowthProbability(cfg.RegrowthProbability),
	)
	ag := agent.New(cfg.Rooms, agent.WithEnergy(cfg.InitialEnergy()))

	opts = append([]SimulationOption{WithSeed(rng.Seed())}, opts...)
	return New(env, ag, cfg.Steps, opts...), nil
}

func (s *Simulation) RunID() string {
	return s.runID
}

func (s *Simulation) Environment() *environment.Environment {
	return s.env
}

func (s *Simulation) Agent() *agent.Agent {
	return s.agent
}

func (s *Simulation) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Run steps the simulation until a stop condition and returns the final summary.
// A simulation can only run once.
func (s *Simulation) Run(ctx context.Context) (core.Summary, error) {
	s.mu.Lock()
	if !s.status.StartTime.IsZero() {
		s.mu.Unlock()
		return core.Summary{}, ErrAlreadyRan
	}
	s.status.StartTime = time.Now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.status.EndTime = time.Now()
		s.mu.Unlock()
	}()

	s.reporter.Start(core.InitialState{
		RunID:     s.runID,
		Seed:      s.seed,
		Rooms:     s.env.Levels(),
		Position:  s.agent.Position(),
		Energy:    s.agent.Energy(),
		MaxSteps:  s.maxSteps,
		Timestamp: s.Status().StartTime,
	})
	s.logger.Debug("simulation started", "rooms", s.env.Len(), "max_steps", s.maxSteps, "seed", s.seed)

	outcome, stoppedAt, err := s.runLoop(ctx)
	if err != nil {
		s.logger.Error("simulation failed", "timestep", stoppedAt, "error", err)
		return core.Summary{}, err
	}
	s.setStatus(outcome, stoppedAt)

	summary := s.summarize(outcome, stoppedAt)
	s.logger.Debug("simulation finished", "outcome", outcome.String(), "timestep", stoppedAt)
	s.reporter.Finish(summary)
	return summary, nil
}

func (s *Simulation) runLoop(ctx context.Context) (core.Outcome, int, error) {
	for t := 0; t < s.maxSteps; t++ {
		select {
		case <-ctx.Done():
			return core.Running, t, ctx.Err()
		default:
		}
		s.setStatus(core.Running, t)

		regrowth := s.env.UpdateDirtiness()

		percept, err := s.agent.Perceive(s.env)
		if err != nil {
			return core.Running, t, fmt.Errorf("timestep %d: %w", t, err)
		}

		action := s.agent.Decide(percept, s.env.Len())
		if action == core.Stop {
			s.logger.Debug("agent stopped", "timestep", t, "position", percept.Position, "energy", percept.Energy)
			return core.StoppedByPolicy, t, nil
		}

		if err := s.agent.Act(action, s.env); err != nil {
			return core.Running, t, fmt.Errorf("timestep %d: %w", t, err)
		}

		s.reporter.Step(core.StepEvent{
			Step:     t + 1,
			Action:   action,
			Position: s.agent.Position(),
			Energy:   s.agent.Energy(),
			Rooms:    s.env.Levels(),
			Regrowth: regrowth,
		})

		if s.agent.Energy() <= 0 {
			return core.StoppedByExhaustion, t, nil
		}
		if s.env.AllClean() {
			return core.StoppedByCompletion, t, nil
		}
	}
	return core.StoppedByTimeout, s.maxSteps, nil
}

func (s *Simulation) summarize(outcome core.Outcome, stoppedAt int) core.Summary {
	actions := s.agent.Actions()
	return core.Summary{
		RunID:           s.runID,
		Seed:            s.seed,
		Outcome:         outcome,
		Steps:           len(actions),
		StoppedAt:       stoppedAt,
		Rooms:           s.env.Levels(),
		RoomsCleaned:    s.agent.CleanedRooms(),
		EnergyConsumed:  int(math.Round(s.agent.InitialEnergy() - s.agent.Energy())),
		RemainingEnergy: s.agent.Energy(),
		Actions:         actions,
	}
}

func (s *Simulation) setStatus(outcome core.Outcome, timestep int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Outcome = outcome
	s.status.Timestep = timestep
}
