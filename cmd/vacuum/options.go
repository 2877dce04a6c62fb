package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/boristopalov/vacuumworld/pkg/batch"
	"github.com/boristopalov/vacuumworld/pkg/config"
	"github.com/boristopalov/vacuumworld/pkg/core"
)

const envPrefix = "VACUUM"

type options struct {
	Config      *config.SimulationConfig
	Output      string
	MetricsFile string
}

func addConfigFlags(cmd *cobra.Command) {
	defaults := config.Default()
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.Int("rooms", defaults.Rooms, "Number of rooms in the row")
	flags.Int("steps", defaults.Steps, "Maximum number of timesteps")
	flags.Int64("seed", 0, "Random seed (default: derived from the clock)")
	flags.Float64("clean-probability", defaults.CleanProbability, "Chance that a room starts clean")
	flags.Float64("regrowth-probability", defaults.RegrowthProbability, "Per-step chance that a clean room gets dirty")
	flags.Float64("energy-per-room", defaults.EnergyPerRoom, "Starting energy per room")
	flags.String("log-level", defaults.Logging.Level, "Log level: debug, info, warn, error")
	flags.String("log-format", defaults.Logging.Format, "Log format: text or json")
	flags.String("out", "", "Write the result as JSON to this path")
	flags.String("metrics-file", "", "Write prometheus metrics in textfile format to this path")
}

// loadOptions layers defaults, the YAML file, VACUUM_* environment variables and flags,
// in increasing precedence.
func loadOptions(cmd *cobra.Command) (*options, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg := config.Default()
	if path := v.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v.IsSet("rooms") {
		cfg.Rooms = v.GetInt("rooms")
	}
	if v.IsSet("steps") {
		cfg.Steps = v.GetInt("steps")
	}
	if v.IsSet("seed") {
		seed := v.GetInt64("seed")
		cfg.Seed = &seed
	}
	if v.IsSet("clean-probability") {
		cfg.CleanProbability = v.GetFloat64("clean-probability")
	}
	if v.IsSet("regrowth-probability") {
		cfg.RegrowthProbability = v.GetFloat64("regrowth-probability")
	}
	if v.IsSet("energy-per-room") {
		cfg.EnergyPerRoom = v.GetFloat64("energy-per-room")
	}
	if v.IsSet("log-level") {
		cfg.Logging.Level = v.GetString("log-level")
	}
	if v.IsSet("log-format") {
		cfg.Logging.Format = v.GetString("log-format")
	}
	if isSet(v, cmd.Flags().Lookup("episodes")) {
		cfg.Batch.Episodes = v.GetInt("episodes")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &options{
		Config:      cfg,
		Output:      v.GetString("out"),
		MetricsFile: v.GetString("metrics-file"),
	}, nil
}

// isSet guards keys for flags that only some subcommands define
func isSet(v *viper.Viper, f *pflag.Flag) bool {
	return f != nil && v.IsSet(f.Name)
}

var outcomeOrder = []core.Outcome{
	core.StoppedByPolicy,
	core.StoppedByExhaustion,
	core.StoppedByCompletion,
	core.StoppedByTimeout,
}

func printBatch(cmd *cobra.Command, res *batch.Result) {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	bold.Fprintf(out, "Batch of %d episodes (base seed %d)\n", res.Episodes, res.BaseSeed)
	fmt.Fprintln(out, "Outcomes:")
	for _, o := range outcomeOrder {
		fmt.Fprintf(out, "  %-22s %d\n", o.String(), res.Outcomes[o])
	}
	fmt.Fprintln(out, "Per episode (mean ± stddev, min..max):")
	for _, row := range []struct {
		name string
		stat batch.Stat
	}{
		{"rooms cleaned", res.RoomsCleaned},
		{"energy consumed", res.EnergyConsumed},
		{"steps", res.Steps},
	} {
		fmt.Fprintf(out, "  %-16s %.2f ± %.2f  (%g..%g)\n", row.name, row.stat.Mean, row.stat.StdDev, row.stat.Min, row.stat.Max)
	}
}
