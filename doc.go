// Package arsgo implements adaptive rejection sampling (ARS) for univariate
// log-concave densities known only up to a normalizing constant.
//
// ARS builds a piecewise-exponential envelope from tangent lines of the
// log-density and refines it at every rejected candidate, so the rejection
// rate falls as sampling proceeds. The density never needs to be normalized
// and is only ever queried for its value and slope at a point.
//
// # Quick Start
//
//	logf := func(x float64) float64 { return -0.5 * x * x } // N(0,1), unnormalized
//
//	s, err := arsgo.New(logf, arsgo.Real(), -1, 1, arsgo.WithLogDensity(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	samples, err := s.Run(10000)
//
// Pass a plain density instead and arsgo takes its logarithm:
//
//	pdf := func(x float64) float64 { return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi) }
//	s, _ := arsgo.New(pdf, arsgo.Real(), -1, 1)
//
// # Seed Points
//
// The two seed points must bracket a mode: the log-density has to be
// increasing at the left seed and decreasing at the right one. When no good
// seeds are known, NewWithSearch scans a grid for them:
//
//	s, err := arsgo.NewWithSearch(logf, arsgo.Real(), arsgo.SearchOptions{
//	    Delta: 0.25,
//	    Lo:    -5,
//	    Hi:    5,
//	}, arsgo.WithLogDensity(true))
//
// # Derivatives
//
// The gradient of the log-density is obtained by central finite differences
// unless an explicit derivative is supplied:
//
//	s, _ := arsgo.New(logf, arsgo.Real(), -1, 1,
//	    arsgo.WithLogDensity(true),
//	    arsgo.WithGrad(func(x float64) float64 { return -x }),
//	)
//
// # Determinism
//
// All randomness flows through a caller-owned source:
//
//	rng := rand.New(rand.NewSource(42))
//	s, _ := arsgo.New(logf, arsgo.Real(), -1, 1,
//	    arsgo.WithLogDensity(true),
//	    arsgo.WithRand(rng),
//	)
//
// # Diagnostics
//
// Numerical instability is clamped rather than fatal: oversized exponents
// are cut at a threshold and reported through a DiagnosticsCollector.
// LoggingDiagnostics rate-limits these warnings so a long run cannot flood
// the log:
//
//	diag := arsgo.NewLoggingDiagnostics(arsgo.NewTextLogger(slog.LevelInfo))
//	s, _ := arsgo.New(logf, arsgo.Real(), -1, 1,
//	    arsgo.WithLogDensity(true),
//	    arsgo.WithDiagnostics(diag),
//	)
//
// # Limits
//
// The algorithm is inherently sequential: every draw depends on the envelope
// state left behind by all prior rejections, so a Sampler must not be shared
// across goroutines. Run independent samplers instead when parallelism is
// needed. Multivariate and non-log-concave densities are out of scope.
package arsgo
