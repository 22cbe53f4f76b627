package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/sigcore"
	"github.com/AnatoleLucet/sigcore/metrics"
)

type benchConfig struct {
	Signals   int
	Computeds int
	Effects   int
	Rounds    int
	Batch     bool
}

type benchResult struct {
	Elapsed    time.Duration
	Stats      sigcore.Stats
	EffectRuns int
}

func benchCmd(logger func() *slog.Logger) *cobra.Command {
	var config benchConfig

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure a fan-out graph of signals, computeds and effects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Signals <= 0 || config.Computeds <= 0 || config.Rounds <= 0 {
				return fmt.Errorf("--signals, --computeds and --rounds must be positive")
			}

			reg := prometheus.NewRegistry()
			collector := metrics.NewCollector(metrics.WithRegistry(reg))
			rt := sigcore.NewRuntime(
				sigcore.WithLogger(logger()),
				sigcore.WithObserver(collector),
			)

			result := runBench(rt, config)

			out := cmd.OutOrStdout()
			printResult(out, config, result)

			return printMetrics(out, reg)
		},
	}

	cmd.Flags().IntVar(&config.Signals, "signals", 100, "Number of source signals")
	cmd.Flags().IntVar(&config.Computeds, "computeds", 50, "Number of computeds, each summing a window of signals")
	cmd.Flags().IntVar(&config.Effects, "effects", 50, "Number of effects, each reading one computed")
	cmd.Flags().IntVar(&config.Rounds, "rounds", 100, "Number of rounds writing every signal")
	cmd.Flags().BoolVar(&config.Batch, "batch", true, "Write every round inside a single batch")

	return cmd
}

func runBench(rt *sigcore.Runtime, config benchConfig) benchResult {
	var result benchResult

	rt.Run(func() {
		signals := make([]*sigcore.Signal[int], config.Signals)
		for i := range signals {
			signals[i] = sigcore.NewSignal(0)
		}

		window := max(1, config.Signals/config.Computeds)
		computeds := make([]*sigcore.Computed[int], config.Computeds)
		for i := range computeds {
			start := (i * window) % config.Signals
			computeds[i] = sigcore.NewComputed(func() int {
				sum := 0
				for j := 0; j < window; j++ {
					sum += signals[(start+j)%config.Signals].Read()
				}
				return sum
			})
		}

		for i := 0; i < config.Effects; i++ {
			c := computeds[i%len(computeds)]
			sigcore.NewEffect(func() {
				c.Read()
				result.EffectRuns++
			})
		}

		start := time.Now()
		for round := 1; round <= config.Rounds; round++ {
			write := func() {
				for _, s := range signals {
					s.Write(round)
				}
			}

			if config.Batch {
				sigcore.Batch(write)
			} else {
				write()
			}
		}
		result.Elapsed = time.Since(start)
	})

	result.Stats = rt.Stats()
	return result
}

func printResult(w io.Writer, config benchConfig, r benchResult) {
	fmt.Fprintf(w, "graph:       %d signals, %d computeds, %d effects\n", config.Signals, config.Computeds, config.Effects)
	fmt.Fprintf(w, "rounds:      %d (batch=%t)\n", config.Rounds, config.Batch)
	fmt.Fprintf(w, "elapsed:     %s\n", r.Elapsed)
	fmt.Fprintf(w, "writes:      %d\n", r.Stats.Writes)
	fmt.Fprintf(w, "recomputes:  %d\n", r.Stats.Recomputes)
	fmt.Fprintf(w, "effect runs: %d\n", r.EffectRuns)
	fmt.Fprintf(w, "callbacks:   %d\n", r.Stats.Callbacks)
	fmt.Fprintf(w, "flushes:     %d\n", r.Stats.Flushes)
	fmt.Fprintf(w, "panics:      %d\n", r.Stats.Panics)
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
