package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/boristopalov/vacuumworld/internal/fsutil"
	"github.com/boristopalov/vacuumworld/pkg/batch"
	"github.com/boristopalov/vacuumworld/pkg/logging"
	"github.com/boristopalov/vacuumworld/pkg/report"
	"github.com/boristopalov/vacuumworld/pkg/simulation"
)

func main() {
	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "vacuum",
		Short:        "Vacuum simulates a reflex agent cleaning a row of rooms on an energy budget.",
		SilenceUsage: true,
	}
	addConfigFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single simulation and print it step by step",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().Bool("live", false, "Redraw a single status block instead of printing every step")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	runCmd.Flags().Bool("quiet", false, "Only print the final summary")

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Run many seeded episodes and print aggregate statistics",
		Args:  cobra.NoArgs,
		RunE:  runBatch,
	}
	batchCmd.Flags().Int("episodes", 0, "Number of episodes (default from config)")

	rootCmd.AddCommand(runCmd, batchCmd)
	return rootCmd
}

// interruptContext is cancelled on the first interrupt
func interruptContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		select {
		case <-sigChan:
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
		cancel()
	}()
	return ctx, cancel
}

func runSimulation(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	cfg := opts.Config

	logger := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})

	out := cmd.OutOrStdout()
	bus := report.NewBus()
	defer bus.Reset()

	live, _ := cmd.Flags().GetBool("live")
	noColor, _ := cmd.Flags().GetBool("no-color")
	quiet, _ := cmd.Flags().GetBool("quiet")
	switch {
	case live:
		_ = bus.Subscribe("live", report.NewLiveReporter(out))
	case !quiet:
		_ = bus.Subscribe("text", report.NewTextReporter(out, !noColor))
	}
	_ = bus.Subscribe("log", report.NewLogReporter(logger))

	var metrics *report.MetricsReporter
	if opts.MetricsFile != "" {
		metrics = report.NewMetricsReporter()
		_ = bus.Subscribe("metrics", metrics)
	}

	ctx, cancel := interruptContext()
	defer cancel()

	sim, err := simulation.NewFromConfig(cfg,
		simulation.WithReporter(bus),
		simulation.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	summary, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if quiet && !live {
		fmt.Fprintf(out, "%s: cleaned %d rooms, consumed %d energy, %g left\n",
			summary.Outcome, summary.RoomsCleaned, summary.EnergyConsumed, summary.RemainingEnergy)
	}
	if opts.Output != "" {
		if err := fsutil.SaveJSON(opts.Output, summary); err != nil {
			return fmt.Errorf("failed to save summary: %w", err)
		}
	}
	if metrics != nil {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	cfg := opts.Config

	logger := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})

	batchOpts := []batch.BatchOption{batch.WithLogger(logger)}
	var metrics *report.MetricsReporter
	if opts.MetricsFile != "" {
		metrics = report.NewMetricsReporter()
		batchOpts = append(batchOpts, batch.WithReporter(metrics))
	}

	ctx, cancel := interruptContext()
	defer cancel()

	result, err := batch.Run(ctx, cfg, batchOpts...)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	printBatch(cmd, result)

	if opts.Output != "" {
		if err := fsutil.SaveJSON(opts.Output, result); err != nil {
			return fmt.Errorf("failed to save batch result: %w", err)
		}
	}
	if metrics != nil {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
