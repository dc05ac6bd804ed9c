package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ChinaQuants/Strata/minimize"
	"github.com/ChinaQuants/Strata/store"
)

var (
	minCoeffs string
	minLower  float64
	minUpper  float64
	minMethod string
	minIters  int
	minPop    int
	minSeed   int64
	dataDir   string
)

var minimizeCmd = &cobra.Command{
	Use:   "minimize",
	Short: "Minimize a polynomial over an interval",
	Long: `Minimizes the polynomial given by --coeffs (highest degree first)
over [--lower, --upper]. The golden method brackets outward from the interval
and converges to a local minimum; the mayfly method runs a global evolutionary
search within the interval.`,
	RunE: runMinimize,
}

func init() {
	minimizeCmd.Flags().StringVar(&minCoeffs, "coeffs", "", "Polynomial coefficients, highest degree first (required)")
	minimizeCmd.Flags().Float64Var(&minLower, "lower", 0, "Lower end of the search interval")
	minimizeCmd.Flags().Float64Var(&minUpper, "upper", 1, "Upper end of the search interval")
	minimizeCmd.Flags().StringVar(&minMethod, "method", "golden", "Minimizer: golden, mayfly")
	minimizeCmd.Flags().IntVar(&minIters, "iters", 100, "Max iterations (mayfly)")
	minimizeCmd.Flags().IntVar(&minPop, "pop", 30, "Population size (mayfly)")
	minimizeCmd.Flags().Int64Var(&minSeed, "seed", 42, "Random seed (mayfly)")
	minimizeCmd.Flags().StringVar(&dataDir, "data", "", "Base directory for run records and traces (empty = don't persist)")

	minimizeCmd.MarkFlagRequired("coeffs")
	rootCmd.AddCommand(minimizeCmd)
}

func runMinimize(cmd *cobra.Command, args []string) error {
	coeffs, err := parseFloats(minCoeffs)
	if err != nil {
		return fmt.Errorf("failed to parse coefficients: %w", err)
	}
	f := func(x float64) float64 {
		var v float64
		for _, c := range coeffs {
			v = v*x + c
		}
		return v
	}

	runID := store.NewRunID()
	slog.Info("Starting minimization", "method", minMethod, "lower", minLower, "upper", minUpper, "runID", runID)

	var tracer *store.TraceWriter
	if dataDir != "" && minMethod == "golden" {
		tracer, err = store.NewTraceWriter(dataDir, runID)
		if err != nil {
			return fmt.Errorf("failed to create trace writer: %w", err)
		}
		defer tracer.Close()
	}

	var iterations int
	var minimizer minimize.ScalarMinimizer
	switch minMethod {
	case "golden":
		minimizer = &minimize.GoldenSection{
			Observer: func(it minimize.Iteration) {
				iterations = it.N
				if tracer == nil {
					return
				}
				entry := store.TraceEntry{
					Iteration: it.N,
					X:         it.X,
					Value:     it.FX,
					Width:     it.Width,
					Timestamp: time.Now(),
				}
				if err := tracer.Write(entry); err != nil {
					slog.Warn("Failed to write trace entry", "error", err)
				}
			},
		}
	case "mayfly":
		minimizer = minimize.NewMayfly(minIters, minPop, minSeed)
	default:
		return fmt.Errorf("unknown method %q (want golden or mayfly)", minMethod)
	}

	loc, minErr := minimizer.Minimize(f, minLower, minUpper)

	if dataDir != "" {
		rec := &store.RunRecord{
			RunID:      runID,
			Method:     minMethod,
			Function:   minCoeffs,
			Lower:      minLower,
			Upper:      minUpper,
			Iterations: iterations,
			Timestamp:  time.Now(),
		}
		if minErr != nil {
			rec.Error = minErr.Error()
		} else {
			rec.Location = loc
			rec.Value = f(loc)
		}
		fs, err := store.NewFSStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		if err := fs.SaveRun(runID, rec); err != nil {
			return fmt.Errorf("failed to save run record: %w", err)
		}
	}

	if minErr != nil {
		return fmt.Errorf("minimization failed: %w", minErr)
	}

	slog.Info("Minimization complete", "location", loc, "value", f(loc), "iterations", iterations)
	fmt.Printf("minimum at x = %.12g, f(x) = %.12g\n", loc, f(loc))
	return nil
}
