package envelope

import (
	"math"
	"math/rand"
	"slices"
	"sort"
)

// maxExpArg is the largest argument for which math.Exp stays finite.
const maxExpArg = 700

// Support is the interval on which the envelope is defined.
// Either bound may be infinite.
type Support struct {
	Lo float64
	Hi float64
}

// Options configures envelope construction.
type Options struct {
	// ClampThreshold bounds the exponents used during segment integration.
	// See DefaultClampThreshold. Non-positive values fall back to the
	// default.
	ClampThreshold float64

	// Sink receives numerical-instability events. Nil disables reporting.
	Sink DiagnosticSink
}

// DefaultOptions are the options used when none are supplied.
var DefaultOptions = Options{
	ClampThreshold: DefaultClampThreshold,
}

// Envelope is a piecewise-exponential majorizer of a concave log-density.
// It holds tangent lines ordered by strictly decreasing slope, the strictly
// increasing cutpoints where adjacent lines cross, and one unnormalized
// weight per segment. Exactly one line is active per half-open segment
// [cutpoints[i], cutpoints[i+1]).
//
// An Envelope is mutated only through Insert and is not safe for concurrent
// use; its owning sampler drives all access.
type Envelope struct {
	lines     []Line
	cutpoints []float64
	weights   []float64
	support   Support
	opts      Options
}

// New constructs an envelope from lines pre-sorted by strictly decreasing
// slope. Interior cutpoints are the pairwise intersections of adjacent
// lines; the outer cutpoints are the support bounds.
func New(lines []Line, support Support, optFns ...func(o *Options)) (*Envelope, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Sink == nil {
		opts.Sink = noopSink{}
	}

	if opts.ClampThreshold <= 0 {
		opts.ClampThreshold = DefaultClampThreshold
	}

	if !(support.Lo < support.Hi) {
		return nil, &ErrInvalidSupport{Lo: support.Lo, Hi: support.Hi}
	}

	if len(lines) < 2 {
		return nil, ErrTooFewLines
	}

	for i := 1; i < len(lines); i++ {
		if lines[i].Slope >= lines[i-1].Slope {
			return nil, &ErrInvalidOrdering{Violation: ViolationSlopesNotDecreasing, Index: i}
		}
	}

	cutpoints := make([]float64, 0, len(lines)+1)
	cutpoints = append(cutpoints, support.Lo)

	for i := 1; i < len(lines); i++ {
		cutpoints = append(cutpoints, lines[i-1].IntersectX(lines[i]))
	}

	cutpoints = append(cutpoints, support.Hi)

	for i := 1; i < len(cutpoints); i++ {
		if cutpoints[i] <= cutpoints[i-1] {
			return nil, &ErrInvalidOrdering{Violation: ViolationCutpointsNotIncreasing, Index: i}
		}
	}

	e := &Envelope{
		lines:     slices.Clone(lines),
		cutpoints: cutpoints,
		weights:   make([]float64, len(lines)),
		support:   support,
		opts:      opts,
	}

	if err := e.reweigh(); err != nil {
		return nil, err
	}

	return e, nil
}

// Insert adds a tangent line to the envelope, splicing new cutpoints around
// it and recomputing all segment weights. The insertion position is located
// by binary search on the strictly decreasing slopes.
func (e *Envelope) Insert(l Line) error {
	// First index whose slope is not above the new slope.
	pos := sort.Search(len(e.lines), func(i int) bool { return e.lines[i].Slope <= l.Slope })
	if pos < len(e.lines) && e.lines[pos].Slope == l.Slope {
		return &ErrInvalidOrdering{Violation: ViolationSlopesNotDecreasing, Index: pos}
	}

	switch {
	case pos == 0:
		// The new line only intersects its right neighbor.
		cut := l.IntersectX(e.lines[0])
		if cut <= e.cutpoints[0] || cut >= e.cutpoints[1] {
			return &ErrInvalidOrdering{Violation: ViolationCutpointsNotIncreasing, Index: 1}
		}

		e.lines = slices.Insert(e.lines, 0, l)
		e.cutpoints = slices.Insert(e.cutpoints, 1, cut)
	case pos == len(e.lines):
		// The new line only intersects its left neighbor.
		last := len(e.cutpoints) - 1

		cut := e.lines[pos-1].IntersectX(l)
		if cut <= e.cutpoints[last-1] || cut >= e.cutpoints[last] {
			return &ErrInvalidOrdering{Violation: ViolationCutpointsNotIncreasing, Index: last}
		}

		e.lines = append(e.lines, l)
		e.cutpoints = slices.Insert(e.cutpoints, last, cut)
	default:
		// The new line intersects both neighbors; the single cutpoint that
		// separated them becomes two. Out-of-order intersections signal a
		// line incompatible with the current envelope.
		left := e.lines[pos-1].IntersectX(l)
		right := l.IntersectX(e.lines[pos])
		if !(e.cutpoints[pos-1] < left && left < right && right < e.cutpoints[pos+1]) {
			return &ErrInvalidOrdering{Violation: ViolationCutpointsNotIncreasing, Index: pos}
		}

		e.lines = slices.Insert(e.lines, pos, l)
		e.cutpoints = slices.Replace(e.cutpoints, pos, pos+1, left, right)
	}

	return e.reweigh()
}

// reweigh recomputes every segment weight from scratch. The segment count is
// capped at a small constant by the sampler, so the full recompute stays
// cheap and avoids incremental bookkeeping bugs.
func (e *Envelope) reweigh() error {
	if len(e.weights) != len(e.lines) {
		e.weights = make([]float64, len(e.lines))
	}

	for i, l := range e.lines {
		w, err := segmentMass(l, e.cutpoints[i], e.cutpoints[i+1], i, e.opts.ClampThreshold, e.opts.Sink)
		if err != nil {
			return err
		}

		e.weights[i] = w
	}

	return nil
}

// SampleCandidate draws one coordinate from the normalized envelope density:
// a segment index from the categorical distribution over segment weights,
// then a coordinate within the segment by inverting the exponential CDF.
// The caller owns rng, which enables deterministic draws in tests.
func (e *Envelope) SampleCandidate(rng *rand.Rand) float64 {
	total := 0.0
	for _, w := range e.weights {
		total += w
	}

	// Falling through to the last segment absorbs rounding error in the
	// cumulative sum.
	idx := len(e.weights) - 1

	u := rng.Float64() * total
	cum := 0.0

	for i, w := range e.weights {
		cum += w
		if u < cum {
			idx = i
			break
		}
	}

	l := e.lines[idx]
	x1, x2 := e.cutpoints[idx], e.cutpoints[idx+1]
	w := e.weights[idx]

	v := rng.Float64()
	for v == 0 {
		v = rng.Float64()
	}

	if l.Slope == 0 {
		// Flat segment, uniform on [x1, x2).
		return x1 + v*(x2-x1)
	}

	a, b := l.Slope, l.Intercept

	t := -b - a*x1
	if a > 0 && (math.IsInf(x1, -1) || t > maxExpArg) {
		// exp(a*x1) vanishes against the accumulated mass term.
		return (math.Log(v*a*w) - b) / a
	}

	return x1 + math.Log1p(v*a*w*math.Exp(t))/a
}

// LogEvaluate returns the envelope's log value at x and whether x lies
// inside the support.
func (e *Envelope) LogEvaluate(x float64) (float64, bool) {
	last := len(e.cutpoints) - 1
	if x < e.cutpoints[0] || x > e.cutpoints[last] {
		return 0, false
	}

	// Active segment is [cutpoints[i], cutpoints[i+1]); the upper support
	// bound maps onto the final segment.
	idx := sort.Search(len(e.cutpoints), func(i int) bool { return e.cutpoints[i] > x }) - 1
	if idx > len(e.lines)-1 {
		idx = len(e.lines) - 1
	}

	return e.lines[idx].Y(x), true
}

// Evaluate returns the envelope density at x, and 0 outside the support.
// Every coordinate producible by SampleCandidate evaluates to a positive,
// finite value.
func (e *Envelope) Evaluate(x float64) float64 {
	lv, ok := e.LogEvaluate(x)
	if !ok {
		return 0
	}

	return math.Exp(lv)
}

// Len returns the number of segments.
func (e *Envelope) Len() int {
	return len(e.lines)
}

// Support returns the support interval.
func (e *Envelope) Support() Support {
	return e.support
}

// Cutpoints returns a copy of the cutpoints, including both support bounds.
func (e *Envelope) Cutpoints() []float64 {
	return slices.Clone(e.cutpoints)
}

// TotalMass returns the unnormalized mass under the envelope.
func (e *Envelope) TotalMass() float64 {
	total := 0.0
	for _, w := range e.weights {
		total += w
	}

	return total
}

// Stats summarizes the current envelope shape.
type Stats struct {
	Segments  int
	Cutpoints []float64
	TotalMass float64
}

// Stats returns a snapshot of the envelope shape for diagnostics.
func (e *Envelope) Stats() Stats {
	return Stats{
		Segments:  e.Len(),
		Cutpoints: e.Cutpoints(),
		TotalMass: e.TotalMass(),
	}
}
