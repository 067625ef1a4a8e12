package leontief

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Economy is a named input-output table
type Economy struct {
	// Sector names, in row/column order
	Sectors []string
	// Technology matrix A (n x n)
	Technology *mat.Dense
	// Final demand d (length n)
	Demand *mat.VecDense
}

// Validate checks that the technology matrix is square and that the demand
// vector and sector names agree with its dimension.
func (e *Economy) Validate() error {
	if e == nil || e.Technology == nil || e.Demand == nil {
		return fmt.Errorf("economy not provided: %w", ErrDimensionMismatch)
	}
	r, c := e.Technology.Dims()
	if r != c {
		return fmt.Errorf("technology is %dx%d, want square: %w", r, c, ErrDimensionMismatch)
	}
	if n := e.Demand.Len(); n != r {
		return fmt.Errorf("demand has %d sectors, technology has %d: %w", n, r, ErrDimensionMismatch)
	}
	if e.Sectors != nil && len(e.Sectors) != r {
		return fmt.Errorf("%d sector names for %d sectors: %w", len(e.Sectors), r, ErrDimensionMismatch)
	}
	return nil
}

// Progress is reported once per evaluated partial sum of the series
type Progress struct {
	// Number of power terms added beyond the identity
	Terms int
	// Mean relative error of the partial sum against the exact production
	Error float64
}

// Observer receives series progress, see WithObserver.
type Observer func(Progress)

// SeriesResult is the outcome of a converged Neumann series
type SeriesResult struct {
	// Terms added beyond the identity, S = I + A + ... + A^Terms
	Terms int
	// Partial sum S, the approximate Leontief inverse
	Sum *mat.Dense
	// S · d
	Production *mat.VecDense
	// Mean relative error of Production against the exact solve
	Error float64
}

// Estimator turns a technology matrix and demand into a production vector.
type Estimator interface {
	Estimate(technology mat.Matrix, demand mat.Vector) (*mat.VecDense, error)
}

// --- Direct estimator ---

// DirectEstimator solves through the exact Leontief inverse.
type DirectEstimator struct{}

// --- Series estimator ---

// SeriesEstimator approximates the Leontief inverse with a truncated Neumann series.
type SeriesEstimator struct {
	// Options passed through to NeumannSeries
	Options []Option
}
