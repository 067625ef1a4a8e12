// Package leontief implements Leontief input-output analysis on gonum dense matrices.
//
// Given a technology matrix A (input of sector i per unit output of sector j) and a
// final-demand vector d, the production that meets demand is
//
//	X = (I - A)^-1 · d
//
// The package computes X directly through the Leontief inverse, and iteratively through
// the truncated Neumann series I + A + A² + ..., which converges to (I - A)^-1 when the
// spectral radius of A is below one.
//
// Typical use:
//
//	a, _ := leontief.TechnologyMatrix(flows, output)
//	x, err := leontief.ProductionEstimate(a, demand)
//	n, err := leontief.TaylorSeriesEstimate(a, demand, leontief.WithThreshold(1e-8))
//
// All functions are pure: inputs are never modified and every result is freshly allocated.
// Failures are reported with the sentinel errors in errors.go and can be matched with errors.Is.
package leontief
