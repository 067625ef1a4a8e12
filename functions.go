package leontief

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// --- FUNCTIONS FOR ESTIMATORS ---

// Estimate returns (I - A)^-1 · d
func (DirectEstimator) Estimate(technology mat.Matrix, demand mat.Vector) (*mat.VecDense, error) {
	return ProductionEstimate(technology, demand)
}

// Estimate returns S · d for the first partial Neumann sum S within the threshold
func (e SeriesEstimator) Estimate(technology mat.Matrix, demand mat.Vector) (*mat.VecDense, error) {
	res, err := NeumannSeries(technology, demand, e.Options...)
	if err != nil {
		return nil, err
	}
	return res.Production, nil
}

// --- CORE ---

// TechnologyMatrix derives A from absolute intersectoral flows and total output per sector.
// Element (i,j) is flow[i,j] / output[j], the input from sector i per unit output of sector j.
func TechnologyMatrix(flow mat.Matrix, output mat.Vector) (*mat.Dense, error) {
	n, err := squareDim("TechnologyMatrix", flow)
	if err != nil {
		return nil, err
	}
	if output == nil || output.Len() != n {
		return nil, fmt.Errorf("TechnologyMatrix: output has %d sectors, flow has %d: %w",
			vecLen(output), n, ErrDimensionMismatch)
	}

	tech := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		o := output.AtVec(j)
		if o == 0 {
			return nil, fmt.Errorf("TechnologyMatrix: output of sector %d is zero: %w", j, ErrDivisionByZero)
		}
		for i := 0; i < n; i++ {
			tech.Set(i, j, flow.At(i, j)/o)
		}
	}
	return tech, nil
}

// LeontiefInverse computes (I - A)^-1 with gonum's LU-based inverse.
// Whatever condition the solver reports is returned as ErrSingularMatrix.
func LeontiefInverse(technology mat.Matrix) (*mat.Dense, error) {
	n, err := squareDim("LeontiefInverse", technology)
	if err != nil {
		return nil, err
	}

	var m mat.Dense
	m.Sub(identity(n), technology)

	var inv mat.Dense
	if err := inv.Inverse(&m); err != nil {
		return nil, fmt.Errorf("LeontiefInverse: I - A not invertible (%v): %w", err, ErrSingularMatrix)
	}
	return &inv, nil
}

// ProductionEstimate returns the production X = (I - A)^-1 · d that meets demand.
// Negative entries mean A violates the non-negativity precondition and are not flagged.
func ProductionEstimate(technology mat.Matrix, demand mat.Vector) (*mat.VecDense, error) {
	n, err := squareDim("ProductionEstimate", technology)
	if err != nil {
		return nil, err
	}
	if demand == nil || demand.Len() != n {
		return nil, fmt.Errorf("ProductionEstimate: demand has %d sectors, technology has %d: %w",
			vecLen(demand), n, ErrDimensionMismatch)
	}

	inv, err := LeontiefInverse(technology)
	if err != nil {
		return nil, fmt.Errorf("ProductionEstimate: %w", err)
	}

	x := mat.NewVecDense(n, nil)
	x.MulVec(inv, demand)
	return x, nil
}

// MeanRelativeError is the arithmetic mean of (truth[i] - estimate[i]) / truth[i].
// The result is signed: an estimate above the truth gives a negative error.
func MeanRelativeError(truth, estimate mat.Vector) (float64, error) {
	n := vecLen(truth)
	if n == 0 || vecLen(estimate) != n {
		return 0, fmt.Errorf("MeanRelativeError: lengths %d and %d: %w", n, vecLen(estimate), ErrDimensionMismatch)
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		t := truth.AtVec(i)
		if t == 0 {
			return 0, fmt.Errorf("MeanRelativeError: ground truth %d is zero: %w", i, ErrDivisionByZero)
		}
		sum += (t - estimate.AtVec(i)) / t
	}
	return sum / float64(n), nil
}

// TaylorSeriesEstimate returns the number of power terms n such that
// (I + A + ... + A^n) · d is within the threshold of the exact production.
// n is minimal: n-1 terms do not reach the threshold.
//
// HOW TO USE:
// n, err := TaylorSeriesEstimate(a, d, WithThreshold(1e-8), WithObserver(LogObserver(logger)))
func TaylorSeriesEstimate(technology mat.Matrix, demand mat.Vector, opts ...Option) (int, error) {
	res, err := NeumannSeries(technology, demand, opts...)
	if err != nil {
		return 0, err
	}
	return res.Terms, nil
}

// NeumannSeries builds S = I + A + A² + ... until S · d is within the threshold
// of ProductionEstimate(A, d), and returns the partial sum with its production.
//
// The series only converges for spectral radius of A below one; otherwise the
// iteration cap is reached and ErrConvergence is returned.
func NeumannSeries(technology mat.Matrix, demand mat.Vector, opts ...Option) (*SeriesResult, error) {
	o := gatherOptions(opts)

	reference, err := ProductionEstimate(technology, demand)
	if err != nil {
		return nil, fmt.Errorf("NeumannSeries: %w", err)
	}

	n, _ := technology.Dims()

	// S_0 = I, T_0 = A
	sum := identity(n)
	term := mat.DenseCopyOf(technology)
	prod := mat.NewVecDense(n, nil)

	for terms := 0; ; terms++ {
		prod.MulVec(sum, demand)

		e, err := MeanRelativeError(reference, prod)
		if err != nil {
			return nil, fmt.Errorf("NeumannSeries: %w", err)
		}
		if o.observer != nil {
			o.observer(Progress{Terms: terms, Error: e})
		}

		// A diverged sum can produce NaN, which never compares above the threshold.
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("NeumannSeries: error is %v after %d terms: %w", e, terms, ErrConvergence)
		}
		if e <= o.threshold {
			return &SeriesResult{
				Terms:      terms,
				Sum:        sum,
				Production: prod,
				Error:      e,
			}, nil
		}
		if terms >= o.maxIterations {
			return nil, fmt.Errorf("NeumannSeries: error %g above %g after %d terms: %w",
				e, o.threshold, terms, ErrConvergence)
		}

		// S <- S + T, T <- T · A
		sum.Add(sum, term)
		next := mat.NewDense(n, n, nil)
		next.Mul(term, technology)
		term = next
	}
}

// --- SUPPORTING ANALYSIS ---

// SpectralRadius returns the largest absolute eigenvalue of A.
// The Neumann series converges exactly when it is below one.
func SpectralRadius(technology mat.Matrix) (float64, error) {
	if _, err := squareDim("SpectralRadius", technology); err != nil {
		return 0, err
	}

	var eig mat.Eigen
	if ok := eig.Factorize(technology, mat.EigenNone); !ok {
		return 0, fmt.Errorf("SpectralRadius: %w", ErrEigenFailed)
	}

	radius := 0.0
	for _, v := range eig.Values(nil) {
		radius = math.Max(radius, cmplx.Abs(v))
	}
	return radius, nil
}

// OutputMultipliers returns the column sums of the Leontief inverse: the total
// output across all sectors generated by one unit of final demand for sector j.
func OutputMultipliers(technology mat.Matrix) (*mat.VecDense, error) {
	inv, err := LeontiefInverse(technology)
	if err != nil {
		return nil, fmt.Errorf("OutputMultipliers: %w", err)
	}

	n, _ := inv.Dims()
	mult := mat.NewVecDense(n, nil)
	for j := 0; j < n; j++ {
		mult.SetVec(j, mat.Sum(inv.ColView(j)))
	}
	return mult, nil
}

// --- HELPERS ---

// identity returns the n x n identity matrix
func identity(n int) *mat.Dense {
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1.0
	}
	return mat.NewDense(n, n, data)
}

// squareDim returns the dimension of a non-empty square matrix
func squareDim(op string, a mat.Matrix) (int, error) {
	if a == nil {
		return 0, fmt.Errorf("%s: matrix not provided: %w", op, ErrDimensionMismatch)
	}
	r, c := a.Dims()
	if r == 0 || r != c {
		return 0, fmt.Errorf("%s: %dx%d matrix is not square: %w", op, r, c, ErrDimensionMismatch)
	}
	return r, nil
}

// vecLen treats a nil vector as empty
func vecLen(v mat.Vector) int {
	if v == nil {
		return 0
	}
	return v.Len()
}
