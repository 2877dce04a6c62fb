package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/boristopalov/vacuumworld/pkg/agent"
	"github.com/boristopalov/vacuumworld/pkg/environment"
)

var ErrInvalidConfig = errors.New("invalid config")

type SimulationConfig struct {
	Name                string      `yaml:"name"`
	Rooms               int         `yaml:"rooms"`
	Steps               int         `yaml:"steps"`
	Seed                *int64      `yaml:"seed"`
	CleanProbability    float64     `yaml:"clean_probability"`
	RegrowthProbability float64     `yaml:"regrowth_probability"`
	EnergyPerRoom       float64     `yaml:"energy_per_room"`
	Logging             LogConfig   `yaml:"logging"`
	Batch               BatchConfig `yaml:"batch"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type BatchConfig struct {
	Episodes int `yaml:"episodes"`
}

func Default() *SimulationConfig {
	return &SimulationConfig{
		Name:                "vacuum",
		Rooms:               3,
		Steps:               100,
		CleanProbability:    environment.DefaultCleanProbability,
		RegrowthProbability: environment.DefaultRegrowthProbability,
		EnergyPerRoom:       agent.EnergyPerRoom,
		Logging: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Batch: BatchConfig{
			Episodes: 100,
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults. Unknown keys are rejected.
func LoadConfig(path string) (*SimulationConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SimulationConfig) Validate() error {
	switch {
	case c.Rooms <= 0:
		return fmt.Errorf("%w: rooms must be positive, got %d", ErrInvalidConfig, c.Rooms)
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	case c.CleanProbability < 0 || c.CleanProbability > 1:
		return fmt.Errorf("%w: clean_probability must be in [0, 1], got %g", ErrInvalidConfig, c.CleanProbability)
	case c.RegrowthProbability < 0 || c.RegrowthProbability > 1:
		return fmt.Errorf("%w: regrowth_probability must be in [0, 1], got %g", ErrInvalidConfig, c.RegrowthProbability)
	case c.EnergyPerRoom < 0:
		return fmt.Errorf("%w: energy_per_room must not be negative, got %g", ErrInvalidConfig, c.EnergyPerRoom)
	case c.Batch.Episodes <= 0:
		return fmt.Errorf("%w: batch episodes must be positive, got %d", ErrInvalidConfig, c.Batch.Episodes)
	}
	return nil
}

// InitialEnergy is the agent's starting budget for this configuration
func (c *SimulationConfig) InitialEnergy() float64 {
	return c.EnergyPerRoom * float64(c.Rooms)
}
