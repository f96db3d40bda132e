package arsgo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/arsgo/envelope"
	"github.com/hupe1980/arsgo/testutil"
)

func TestDefaultOptions(t *testing.T) {
	assert.Equal(t, 25, DefaultOptions.MaxSegments)
	assert.InDelta(t, 0.001, DefaultOptions.MaxFailedRate, 1e-12)
	assert.False(t, DefaultOptions.LogDensity)
	assert.InDelta(t, envelope.DefaultClampThreshold, DefaultOptions.ClampThreshold, 1e-12)
}

func TestOptionSetters(t *testing.T) {
	rng := testutil.NewRand(1)
	logger := NoopLogger()
	diag := &BasicDiagnostics{}
	grad := func(x float64) float64 { return -x }

	opts := DefaultOptions
	for _, fn := range []Option{
		WithMaxSegments(10),
		WithMaxFailedRate(0.01),
		WithLogDensity(true),
		WithGrad(grad),
		WithClampThreshold(30),
		WithRand(rng),
		WithLogger(logger),
		WithDiagnostics(diag),
	} {
		fn(&opts)
	}

	assert.Equal(t, 10, opts.MaxSegments)
	assert.InDelta(t, 0.01, opts.MaxFailedRate, 1e-12)
	assert.True(t, opts.LogDensity)
	assert.NotNil(t, opts.Grad)
	assert.InDelta(t, 30, opts.ClampThreshold, 1e-12)
	assert.Same(t, rng, opts.Rand)
	assert.Same(t, logger, opts.Logger)
	assert.Same(t, diag, opts.Diagnostics)
}
