package leontief

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherOptions_Defaults(t *testing.T) {
	o := gatherOptions(nil)
	assert.Equal(t, DefaultThreshold, o.threshold)
	assert.Equal(t, DefaultMaxIterations, o.maxIterations)
	assert.Nil(t, o.observer)
}

func TestGatherOptions_AppliesInOrder(t *testing.T) {
	o := gatherOptions([]Option{
		WithThreshold(1e-3),
		nil,
		WithMaxIterations(7),
		WithThreshold(1e-5),
		WithObserver(func(Progress) {}),
	})
	assert.Equal(t, 1e-5, o.threshold)
	assert.Equal(t, 7, o.maxIterations)
	assert.NotNil(t, o.observer)
}

func TestWithThreshold_PanicsOnNonsense(t *testing.T) {
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		assert.PanicsWithValue(t, panicThresholdInvalid, func() { WithThreshold(v) }, "threshold %v", v)
	}
	assert.NotPanics(t, func() { WithThreshold(0) })
}

func TestWithMaxIterations_PanicsOnNonsense(t *testing.T) {
	assert.PanicsWithValue(t, panicMaxIterationsInvalid, func() { WithMaxIterations(0) })
	assert.PanicsWithValue(t, panicMaxIterationsInvalid, func() { WithMaxIterations(-3) })
}

// A zero threshold still terminates on the example economy or fails at the cap
func TestWithThreshold_Zero(t *testing.T) {
	n, err := TaylorSeriesEstimate(exampleTechnology(), exampleDemand(),
		WithThreshold(0), WithMaxIterations(200))
	if err != nil {
		require.ErrorIs(t, err, ErrConvergence)
		return
	}
	assert.Greater(t, n, 18)
}

func TestLogObserver_WritesDebugRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	n, err := TaylorSeriesEstimate(exampleTechnology(), exampleDemand(),
		WithThreshold(1e-2), WithObserver(LogObserver(logger)))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	out := buf.String()
	assert.Equal(t, n+1, bytes.Count(buf.Bytes(), []byte("msg=\"neumann series\"")))
	assert.Contains(t, out, "terms=0")
	assert.Contains(t, out, "terms=3")
	assert.Contains(t, out, "level=DEBUG")
}

func TestLogObserver_SilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	LogObserver(logger)(Progress{Terms: 1, Error: 0.5})
	assert.Empty(t, buf.String())
}
