package leontief

import "errors"

// Every message is prefixed with "leontief: ". Call sites add context with
// fmt.Errorf("Op: ...: %w", ErrX); callers match with errors.Is.
var (
	// ErrDimensionMismatch is returned when operand shapes are incompatible:
	// a matrix that must be square is not, or a vector length differs from
	// the matrix dimension.
	ErrDimensionMismatch = errors.New("leontief: dimension mismatch")

	// ErrSingularMatrix is returned when I - A cannot be inverted.
	ErrSingularMatrix = errors.New("leontief: singular matrix")

	// ErrDivisionByZero is returned for a zero entry in an output vector or
	// in a ground-truth vector.
	ErrDivisionByZero = errors.New("leontief: division by zero")

	// ErrConvergence is returned when the power series does not reach the
	// threshold within the iteration cap.
	ErrConvergence = errors.New("leontief: series did not converge")

	// ErrEigenFailed is returned when the eigenvalue factorization fails.
	ErrEigenFailed = errors.New("leontief: eigen decomposition failed")
)
