package arsgo

import (
	"math/rand"

	"github.com/hupe1980/arsgo/envelope"
	"github.com/hupe1980/arsgo/objective"
)

// Options configures a Sampler.
type Options struct {
	// MaxSegments caps the number of envelope segments. Once the cap is
	// reached, rejections stop refining the envelope but still count
	// toward the failure budget.
	MaxSegments int

	// MaxFailedRate sets the rejection budget for a Run of n samples to
	// n/MaxFailedRate rejections. Zero or negative disables the budget.
	MaxFailedRate float64

	// LogDensity indicates that the supplied function already is a
	// log-density. If false, its logarithm is taken first.
	LogDensity bool

	// Grad is the derivative of the log-density. If nil, it is derived by
	// central finite differences. Note that Grad always differentiates the
	// log-density, regardless of LogDensity.
	Grad objective.Func

	// ClampThreshold bounds the exponents used during segment integration.
	// Non-positive values fall back to envelope.DefaultClampThreshold.
	ClampThreshold float64

	// Rand is the random source for candidate and acceptance draws. The
	// caller owns it; pass a seeded source for deterministic sampling.
	// If nil, a time-seeded source is created.
	Rand *rand.Rand

	// Logger configures structured logging. If nil, logging is disabled.
	Logger *Logger

	// Diagnostics receives structured diagnostics. If nil, diagnostics are
	// discarded.
	Diagnostics DiagnosticsCollector
}

// DefaultOptions are the options used when none are supplied.
var DefaultOptions = Options{
	MaxSegments:    25,
	MaxFailedRate:  0.001,
	ClampThreshold: envelope.DefaultClampThreshold,
}

// Option configures Sampler construction.
type Option func(*Options)

// WithMaxSegments configures the envelope segment cap.
func WithMaxSegments(n int) Option {
	return func(o *Options) {
		o.MaxSegments = n
	}
}

// WithMaxFailedRate configures the rejection budget: a Run of n samples may
// reject at most n/rate candidates before failing.
func WithMaxFailedRate(rate float64) Option {
	return func(o *Options) {
		o.MaxFailedRate = rate
	}
}

// WithLogDensity declares whether the supplied function is a log-density
// (true) or a density whose logarithm should be taken (false).
func WithLogDensity(logDensity bool) Option {
	return func(o *Options) {
		o.LogDensity = logDensity
	}
}

// WithGrad supplies an explicit derivative of the log-density, bypassing the
// finite-difference fallback.
func WithGrad(grad objective.Func) Option {
	return func(o *Options) {
		o.Grad = grad
	}
}

// WithClampThreshold configures the exponent clamp used during segment
// integration.
func WithClampThreshold(threshold float64) Option {
	return func(o *Options) {
		o.ClampThreshold = threshold
	}
}

// WithRand configures the random source used for all draws.
func WithRand(rng *rand.Rand) Option {
	return func(o *Options) {
		o.Rand = rng
	}
}

// WithLogger configures structured logging.
func WithLogger(logger *Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithDiagnostics configures a diagnostics collector.
// Pass nil to disable diagnostics collection.
func WithDiagnostics(d DiagnosticsCollector) Option {
	return func(o *Options) {
		o.Diagnostics = d
	}
}
