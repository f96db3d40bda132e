package objective

import (
	"gonum.org/v1/gonum/diff/fd"
)

// Func is a scalar function of one real variable.
type Func func(x float64) float64

// Options configures objective construction.
type Options struct {
	// Grad is the derivative of the log-density. If nil, a central
	// finite-difference approximation of the log-density is used.
	Grad Func

	// Step overrides the finite-difference step size. Zero keeps the
	// formula default. Ignored when Grad is set.
	Step float64
}

// DefaultOptions are the options used when none are supplied.
var DefaultOptions = Options{}

// Objective is an immutable value/derivative oracle for a log-density.
// It carries no further behavior: the sampler only ever asks for the
// log-density value and its slope at a point.
type Objective struct {
	logf Func
	grad Func
}

// New wraps a log-density. The derivative is taken from Options.Grad when
// supplied, and derived by central finite differences otherwise.
func New(logf Func, optFns ...func(o *Options)) *Objective {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	grad := opts.Grad
	if grad == nil {
		settings := &fd.Settings{Formula: fd.Central}
		if opts.Step > 0 {
			settings.Step = opts.Step
		}

		grad = func(x float64) float64 {
			return fd.Derivative(logf, x, settings)
		}
	}

	return &Objective{logf: logf, grad: grad}
}

// LogF evaluates the log-density at x.
func (o *Objective) LogF(x float64) float64 {
	return o.logf(x)
}

// Grad evaluates the derivative of the log-density at x.
func (o *Objective) Grad(x float64) float64 {
	return o.grad(x)
}
