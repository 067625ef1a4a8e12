package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gonum.org/v1/gonum/mat"

	"IO_Analysis/leontief"
)

var (
	technologyPath = flag.String("technology", "", "CSV file with the technology matrix (header row of sector names).")
	demandPath     = flag.String("demand", "", "CSV file with the final demand vector (header row of sector names).")
	threshold      = flag.Float64("threshold", leontief.DefaultThreshold, "Mean relative error at which the series estimate stops.")
	maxIterations  = flag.Int("max-iterations", leontief.DefaultMaxIterations, "Maximum number of power terms in the series estimate.")
	logDebug       = flag.Bool("debug", false, "Enable debug logs, including per-term series progress.")
)

// exampleEconomy is the three-sector economy used when no CSV files are given
func exampleEconomy() *leontief.Economy {
	return &leontief.Economy{
		Sectors: []string{"agriculture", "manufacturing", "services"},
		Technology: mat.NewDense(3, 3, []float64{
			0.10, 0.01, 0.01,
			0.02, 0.13, 0.20,
			0.05, 0.18, 0.05,
		}),
		Demand: mat.NewVecDense(3, []float64{2350, 4552, 911}),
	}
}

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *logDebug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))

	if err := run(); err != nil {
		slog.Error("leontief analysis failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	if !(*threshold >= 0) || math.IsInf(*threshold, 1) {
		return fmt.Errorf("-threshold must be finite and >= 0, got %v", *threshold)
	}
	if *maxIterations <= 0 {
		return fmt.Errorf("-max-iterations must be > 0, got %d", *maxIterations)
	}

	// 1. Load the economy, or fall back to the built-in example
	economy := exampleEconomy()
	if *technologyPath != "" || *demandPath != "" {
		var err error
		if economy, err = leontief.LoadEconomy(*technologyPath, *demandPath); err != nil {
			return err
		}
		slog.Info("loaded economy", "technology", *technologyPath, "demand", *demandPath, "sectors", len(economy.Sectors))
	} else {
		slog.Info("no input files, using the built-in example economy")
	}
	if err := economy.Validate(); err != nil {
		return err
	}

	leontief.PrintMatrix(os.Stdout, "Technology Matrix A", economy.Technology)

	// 2. Check the convergence precondition
	radius, err := leontief.SpectralRadius(economy.Technology)
	if err != nil {
		return err
	}
	if radius >= 1 {
		slog.Warn("spectral radius >= 1, the series estimate will not converge", "radius", radius)
	} else {
		slog.Info("spectral radius", "radius", radius)
	}

	// 3. Exact solve
	inv, err := leontief.LeontiefInverse(economy.Technology)
	if err != nil {
		return err
	}
	leontief.PrintMatrix(os.Stdout, "Leontief Inverse (I - A)^-1", inv)

	var estimator leontief.Estimator = leontief.DirectEstimator{}
	x, err := estimator.Estimate(economy.Technology, economy.Demand)
	if err != nil {
		return err
	}
	leontief.PrintProduction(os.Stdout, economy.Sectors, x)

	mult, err := leontief.OutputMultipliers(economy.Technology)
	if err != nil {
		return err
	}
	leontief.PrintMatrix(os.Stdout, "Output Multipliers", mult.T())

	// 4. Series estimate
	n, err := leontief.TaylorSeriesEstimate(economy.Technology, economy.Demand,
		leontief.WithThreshold(*threshold),
		leontief.WithMaxIterations(*maxIterations),
		leontief.WithObserver(leontief.LogObserver(slog.Default())),
	)
	if err != nil {
		return err
	}
	slog.Info("neumann series converged", "terms", n, "threshold", *threshold)

	return nil
}
