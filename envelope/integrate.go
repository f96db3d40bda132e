package envelope

import "math"

// DefaultClampThreshold is the largest exponent, in natural-log units, fed to
// math.Exp during segment integration. Larger exponents are clamped to the
// threshold and reported through the diagnostic sink. Clamping trades a small
// bias in the affected weight for continued operation.
const DefaultClampThreshold = 25.0

// ClampEvent describes one clamped exponent during segment integration.
type ClampEvent struct {
	Segment   int
	Quantity  string // "a*x1", "a*x2" or "b"
	Value     float64
	Threshold float64
}

// DiagnosticSink receives numerical-instability events emitted while segment
// weights are computed.
type DiagnosticSink interface {
	RecordClamp(e ClampEvent)
}

type noopSink struct{}

func (noopSink) RecordClamp(ClampEvent) {}

// segmentMass computes the integral of exp(l.Slope*x + l.Intercept) over
// [x1, x2] in closed form. The antiderivative of a zero-slope line is linear,
// so that case gets its own branch instead of a division by zero.
func segmentMass(l Line, x1, x2 float64, segment int, threshold float64, sink DiagnosticSink) (float64, error) {
	a, b := l.Slope, l.Intercept
	if b > threshold {
		sink.RecordClamp(ClampEvent{Segment: segment, Quantity: "b", Value: b, Threshold: threshold})
		b = threshold
	}

	if a == 0 {
		if math.IsInf(x1, 0) || math.IsInf(x2, 0) {
			return 0, &ErrNumericalOverflow{Segment: segment, Weight: math.Inf(1)}
		}
		return math.Exp(b) * (x2 - x1), nil
	}

	t1, t2 := a*x1, a*x2
	if t1 > threshold {
		sink.RecordClamp(ClampEvent{Segment: segment, Quantity: "a*x1", Value: t1, Threshold: threshold})
		t1 = threshold
	}
	if t2 > threshold {
		sink.RecordClamp(ClampEvent{Segment: segment, Quantity: "a*x2", Value: t2, Threshold: threshold})
		t2 = threshold
	}

	w := math.Exp(b) * (math.Exp(t2) - math.Exp(t1)) / a
	if math.IsInf(w, 0) || math.IsNaN(w) || w < 0 {
		return 0, &ErrNumericalOverflow{Segment: segment, Weight: w}
	}
	return w, nil
}
