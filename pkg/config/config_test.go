package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vacuum.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Rooms)
	assert.Equal(t, 100, cfg.Steps)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, 7.5, cfg.InitialEnergy())
}

func TestLoadConfig(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
name: long-hall
rooms: 8
seed: 42
regrowth_probability: 0.25
logging:
  level: debug
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "long-hall", cfg.Name)
		assert.Equal(t, 8, cfg.Rooms)
		assert.Equal(t, 100, cfg.Steps)
		require.NotNil(t, cfg.Seed)
		assert.Equal(t, int64(42), *cfg.Seed)
		assert.Equal(t, 0.25, cfg.RegrowthProbability)
		assert.Equal(t, 0.5, cfg.CleanProbability)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
	})

	t.Run("empty file gives defaults", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, ""))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "roooms: 3\n"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "rooms: 0\n"))
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationConfig)
	}{
		{"zero steps", func(c *SimulationConfig) { c.Steps = 0 }},
		{"negative rooms", func(c *SimulationConfig) { c.Rooms = -1 }},
		{"clean probability above one", func(c *SimulationConfig) { c.CleanProbability = 1.5 }},
		{"negative regrowth", func(c *SimulationConfig) { c.RegrowthProbability = -0.1 }},
		{"negative energy", func(c *SimulationConfig) { c.EnergyPerRoom = -2 }},
		{"no episodes", func(c *SimulationConfig) { c.Batch.Episodes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
		})
	}
}
