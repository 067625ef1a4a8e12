package leontief

import (
	"log/slog"
	"math"
)

// Defaults for the series estimate.
const (
	// DefaultThreshold is the mean relative error at which the series stops.
	DefaultThreshold = 1e-10

	// DefaultMaxIterations caps the number of power terms. A technology matrix
	// with spectral radius >= 1 never converges, so the cap turns that into
	// ErrConvergence.
	DefaultMaxIterations = 10000
)

const (
	panicThresholdInvalid     = "leontief: WithThreshold: threshold must be finite and non-negative"
	panicMaxIterationsInvalid = "leontief: WithMaxIterations: cap must be > 0"
)

// Option configures NeumannSeries and TaylorSeriesEstimate.
// Constructors panic only on nonsensical values (programmer error).
type Option func(*options)

type options struct {
	threshold     float64
	maxIterations int
	observer      Observer
}

func defaultOptions() options {
	return options{
		threshold:     DefaultThreshold,
		maxIterations: DefaultMaxIterations,
	}
}

// WithThreshold sets the convergence threshold on the mean relative error.
func WithThreshold(threshold float64) Option {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		panic(panicThresholdInvalid)
	}
	return func(o *options) { o.threshold = threshold }
}

// WithMaxIterations sets the maximum number of power terms added before
// the series gives up with ErrConvergence.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterationsInvalid)
	}
	return func(o *options) { o.maxIterations = n }
}

// WithObserver installs a callback invoked for every evaluated partial sum,
// including the one that converges. A nil observer is ignored.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// LogObserver reports series progress to logger at debug level.
func LogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return func(p Progress) {
		logger.Debug("neumann series", "terms", p.Terms, "error", p.Error)
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
