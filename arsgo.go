package arsgo

import (
	"math"
	"math/rand"
	"time"

	"github.com/hupe1980/arsgo/envelope"
	"github.com/hupe1980/arsgo/objective"
)

// Support is the interval on which the density lives.
type Support = envelope.Support

// Real returns the unbounded support (-inf, +inf).
func Real() Support {
	return Support{Lo: math.Inf(-1), Hi: math.Inf(1)}
}

// Above returns the support (lo, +inf).
func Above(lo float64) Support {
	return Support{Lo: lo, Hi: math.Inf(1)}
}

// Below returns the support (-inf, hi).
func Below(hi float64) Support {
	return Support{Lo: math.Inf(-1), Hi: hi}
}

// Interval returns the bounded support (lo, hi).
func Interval(lo, hi float64) Support {
	return Support{Lo: lo, Hi: hi}
}

// ratioSlack tolerates floating-point jitter at cutpoints before a ratio
// above one is reported as a concavity violation.
const ratioSlack = 1e-9

// Sampler draws independent samples from a univariate log-concave density
// known up to a normalizing constant, using adaptive rejection sampling.
// It owns its envelope exclusively: no other component reads or writes it,
// and each rejection below the segment cap tightens it for future draws.
//
// A Sampler is single-threaded. Run may be invoked repeatedly; every call
// keeps refining the same envelope.
type Sampler struct {
	obj    *objective.Objective
	env    *envelope.Envelope
	rng    *rand.Rand
	logger *Logger
	diag   DiagnosticsCollector
	opts   Options

	accepted int
	rejected int
}

// New constructs a Sampler from explicit seed points x1 < x2. The
// log-density must be increasing at x1 and decreasing at x2 so that the two
// initial tangents form an integrable envelope.
func New(f objective.Func, support Support, x1, x2 float64, optFns ...Option) (*Sampler, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	return newSampler(f, support, x1, x2, opts)
}

func newSampler(f objective.Func, support Support, x1, x2 float64, opts Options) (*Sampler, error) {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}

	if opts.Diagnostics == nil {
		opts.Diagnostics = NoopDiagnostics{}
	}

	if opts.MaxSegments < 2 {
		// Fewer than two segments cannot hold the initial tangent pair.
		opts.MaxSegments = 2
	}

	if !(support.Lo < support.Hi) {
		return nil, &ErrInvalidSupport{Lo: support.Lo, Hi: support.Hi}
	}

	obj := newObjective(f, opts)

	g1, g2 := obj.Grad(x1), obj.Grad(x2)
	if !(x1 < x2) || !(g1 > 0) || !(g2 < 0) {
		return nil, &ErrNotLogConcaveAtSeed{X1: x1, X2: x2, Grad1: g1, Grad2: g2}
	}

	lines := []envelope.Line{
		envelope.TangentAt(x1, obj.LogF(x1), g1),
		envelope.TangentAt(x2, obj.LogF(x2), g2),
	}

	env, err := envelope.New(lines, support, func(o *envelope.Options) {
		o.ClampThreshold = opts.ClampThreshold
		o.Sink = sinkAdapter{c: opts.Diagnostics}
	})
	if err != nil {
		return nil, translateError(err)
	}

	s := &Sampler{
		obj:    obj,
		env:    env,
		rng:    opts.Rand,
		logger: opts.Logger,
		diag:   opts.Diagnostics,
		opts:   opts,
	}

	s.logger.Debug("sampler initialized", "x1", x1, "x2", x2, "segments", env.Len())

	return s, nil
}

func newObjective(f objective.Func, opts Options) *objective.Objective {
	logf := f
	if !opts.LogDensity {
		logf = func(x float64) float64 { return math.Log(f(x)) }
	}

	return objective.New(logf, func(o *objective.Options) {
		o.Grad = opts.Grad
	})
}

// Run draws exactly n samples, in acceptance order. Each rejected candidate
// below the segment cap inserts its tangent into the envelope, shrinking the
// rejection probability of future draws. Run fails with
// ErrMaxFailedRateExceeded once the rejection count reaches n/MaxFailedRate;
// no partial results are returned on failure.
func (s *Sampler) Run(n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidN
	}

	budget := 0
	if s.opts.MaxFailedRate > 0 {
		budget = int(float64(n) / s.opts.MaxFailedRate)
	}

	start := time.Now()
	out := make([]float64, 0, n)
	rejected := 0

	for len(out) < n {
		x := s.env.SampleCandidate(s.rng)
		lf := s.obj.LogF(x)

		le, inside := s.env.LogEvaluate(x)
		if inside {
			// ratio = exp(logf(x)) / envelope(x), computed in log space.
			// A majorizing envelope keeps it in (0, 1]; above-one ratios
			// are surfaced as diagnostics, not failures, since cutpoint
			// jitter would otherwise abort valid runs.
			ratio := math.Exp(lf - le)
			if ratio > 1+ratioSlack {
				s.diag.RecordRatioAboveOne(x, ratio)
			}

			if s.rng.Float64() < ratio {
				out = append(out, x)
				continue
			}
		}

		rejected++

		if s.env.Len() < s.opts.MaxSegments {
			g := s.obj.Grad(x)
			if isFinite(lf) && isFinite(g) {
				if err := s.env.Insert(envelope.TangentAt(x, lf, g)); err != nil {
					err = translateError(err)
					s.finishRun(n, len(out), rejected, start, err)
					return nil, err
				}

				s.diag.RecordRefine(s.env.Len())
			}
		}

		if budget > 0 && rejected >= budget {
			err := &ErrMaxFailedRateExceeded{Accepted: len(out), Rejected: rejected, Budget: budget}
			s.finishRun(n, len(out), rejected, start, err)
			return nil, err
		}
	}

	s.finishRun(n, n, rejected, start, nil)

	return out, nil
}

func (s *Sampler) finishRun(n, accepted, rejected int, start time.Time, err error) {
	s.accepted += accepted
	s.rejected += rejected
	s.diag.RecordRun(n, accepted, rejected, time.Since(start), err)
	s.logger.WithN(n).WithSegments(s.env.Len()).Debug("run finished",
		"accepted", accepted, "rejected", rejected, "error", err)
}

// Evaluate returns the current envelope density at x. It exists for
// diagnostics and plotting; sampling itself never needs it externally.
func (s *Sampler) Evaluate(x float64) float64 {
	return s.env.Evaluate(x)
}

// Accepted returns the total samples accepted across all runs.
func (s *Sampler) Accepted() int {
	return s.accepted
}

// Rejected returns the total candidates rejected across all runs.
func (s *Sampler) Rejected() int {
	return s.rejected
}

// Stats summarizes the sampler session and the envelope shape.
type Stats struct {
	Accepted int
	Rejected int
	Envelope envelope.Stats
}

// Stats returns a snapshot of the session counters and envelope shape.
func (s *Sampler) Stats() Stats {
	return Stats{
		Accepted: s.accepted,
		Rejected: s.rejected,
		Envelope: s.env.Stats(),
	}
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
