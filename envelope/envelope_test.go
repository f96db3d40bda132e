package envelope

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unbounded() Support {
	return Support{Lo: math.Inf(-1), Hi: math.Inf(1)}
}

// stdNormalTangents returns the tangents of log f(x) = -x^2/2 at -1 and 1.
func stdNormalTangents() []Line {
	return []Line{
		TangentAt(-1, -0.5, 1),
		TangentAt(1, -0.5, -1),
	}
}

func TestNew(t *testing.T) {
	t.Run("ComputesIntersectionCutpoints", func(t *testing.T) {
		e, err := New([]Line{{Slope: 1, Intercept: 1}, {Slope: -3, Intercept: 2}}, unbounded())
		require.NoError(t, err)

		cuts := e.Cutpoints()
		require.Len(t, cuts, 3)
		assert.True(t, math.IsInf(cuts[0], -1))
		assert.InDelta(t, 0.25, cuts[1], 1e-12)
		assert.True(t, math.IsInf(cuts[2], 1))
	})

	t.Run("ComputesSegmentWeights", func(t *testing.T) {
		e, err := New(stdNormalTangents(), unbounded())
		require.NoError(t, err)

		// Both tangents contribute exp(0.5) of mass on their side of 0.
		assert.InDelta(t, 2*math.Exp(0.5), e.TotalMass(), 1e-9)
	})

	t.Run("RejectsUnsortedSlopes", func(t *testing.T) {
		_, err := New([]Line{{Slope: -3, Intercept: 2}, {Slope: 1, Intercept: 1}}, unbounded())

		var oe *ErrInvalidOrdering
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, ViolationSlopesNotDecreasing, oe.Violation)
	})

	t.Run("RejectsDuplicateSlopes", func(t *testing.T) {
		_, err := New([]Line{{Slope: 1, Intercept: 0}, {Slope: 1, Intercept: 1}}, unbounded())

		var oe *ErrInvalidOrdering
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, ViolationSlopesNotDecreasing, oe.Violation)
	})

	t.Run("RejectsTooFewLines", func(t *testing.T) {
		_, err := New([]Line{{Slope: 1, Intercept: 0}}, unbounded())
		require.ErrorIs(t, err, ErrTooFewLines)
	})

	t.Run("RejectsInvalidSupport", func(t *testing.T) {
		_, err := New(stdNormalTangents(), Support{Lo: 1, Hi: -1})

		var se *ErrInvalidSupport
		require.ErrorAs(t, err, &se)
		assert.InDelta(t, 1.0, se.Lo, 0)
		assert.InDelta(t, -1.0, se.Hi, 0)
	})

	t.Run("RejectsCutpointOutsideSupport", func(t *testing.T) {
		// Tangents crossing at 0 cannot span a support left of their
		// intersection.
		_, err := New(stdNormalTangents(), Support{Lo: 2, Hi: 5})

		var oe *ErrInvalidOrdering
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, ViolationCutpointsNotIncreasing, oe.Violation)
	})

	t.Run("RejectsFlatLineOverInfiniteSegment", func(t *testing.T) {
		_, err := New([]Line{{Slope: 0, Intercept: 0}, {Slope: -1, Intercept: 0}}, unbounded())

		var oe *ErrNumericalOverflow
		require.ErrorAs(t, err, &oe)
	})
}

func TestInsert(t *testing.T) {
	newEnvelope := func(t *testing.T) *Envelope {
		t.Helper()

		e, err := New(stdNormalTangents(), unbounded())
		require.NoError(t, err)
		return e
	}

	t.Run("Interior", func(t *testing.T) {
		e := newEnvelope(t)

		// Flat tangent at the mode splits the single cutpoint at 0 into two.
		require.NoError(t, e.Insert(Line{Slope: 0, Intercept: 0}))

		cuts := e.Cutpoints()
		require.Len(t, cuts, 4)
		assert.InDelta(t, -0.5, cuts[1], 1e-12)
		assert.InDelta(t, 0.5, cuts[2], 1e-12)

		// The inserted line is active strictly inside its segment.
		assert.InDelta(t, 1.0, e.Evaluate(0.1), 1e-12)
	})

	t.Run("Front", func(t *testing.T) {
		e := newEnvelope(t)

		require.NoError(t, e.Insert(Line{Slope: 2, Intercept: 1.5}))
		assert.Equal(t, 3, e.Len())

		cuts := e.Cutpoints()
		require.Len(t, cuts, 4)
		assert.InDelta(t, -1, cuts[1], 1e-12)
		assert.InDelta(t, 0, cuts[2], 1e-12)

		assert.InDelta(t, math.Exp(2*-2+1.5), e.Evaluate(-2), 1e-12)
	})

	t.Run("Back", func(t *testing.T) {
		e := newEnvelope(t)

		require.NoError(t, e.Insert(Line{Slope: -2, Intercept: 1.5}))
		assert.Equal(t, 3, e.Len())

		cuts := e.Cutpoints()
		require.Len(t, cuts, 4)
		assert.InDelta(t, 0, cuts[1], 1e-12)
		assert.InDelta(t, 1, cuts[2], 1e-12)

		assert.InDelta(t, math.Exp(-2*2+1.5), e.Evaluate(2), 1e-12)
	})

	t.Run("DuplicateSlopeFails", func(t *testing.T) {
		e := newEnvelope(t)

		err := e.Insert(Line{Slope: 1, Intercept: 0})

		var oe *ErrInvalidOrdering
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, ViolationSlopesNotDecreasing, oe.Violation)
	})

	t.Run("IncompatibleLineFails", func(t *testing.T) {
		e := newEnvelope(t)

		// A flat line far above the hull crosses its neighbors in the wrong
		// order; a tangent of a concave function cannot do this.
		err := e.Insert(Line{Slope: 0, Intercept: 5})

		var oe *ErrInvalidOrdering
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, ViolationCutpointsNotIncreasing, oe.Violation)
	})

	t.Run("InvariantsAfterManyInserts", func(t *testing.T) {
		e := newEnvelope(t)

		logf := func(x float64) float64 { return -0.5 * x * x }
		for _, x := range []float64{-0.5, 0, 0.5, -2.3, 1.7, 3.1, -4.2} {
			require.NoError(t, e.Insert(TangentAt(x, logf(x), -x)))

			cuts := e.Cutpoints()
			require.Len(t, cuts, e.Len()+1)
			for i := 1; i < len(cuts); i++ {
				assert.Less(t, cuts[i-1], cuts[i])
			}

			total := e.TotalMass()
			assert.Positive(t, total)
			assert.False(t, math.IsInf(total, 0))
		}
	})
}

func TestSampleCandidate(t *testing.T) {
	t.Run("ConsistentWithEvaluate", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))

		e, err := New(stdNormalTangents(), unbounded())
		require.NoError(t, err)

		for i := 0; i < 2000; i++ {
			x := e.SampleCandidate(rng)
			require.False(t, math.IsNaN(x))

			v := e.Evaluate(x)
			require.Positive(t, v)
			require.False(t, math.IsInf(v, 0))
		}
	})

	t.Run("FlatSegment", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))

		// Slopes 1, 0, -1 with a flat middle segment on [-0.5, 0.5).
		e, err := New([]Line{{Slope: 1, Intercept: 0.5}, {Slope: 0, Intercept: 0}, {Slope: -1, Intercept: 0.5}}, unbounded())
		require.NoError(t, err)

		for i := 0; i < 2000; i++ {
			x := e.SampleCandidate(rng)
			require.False(t, math.IsNaN(x))
			require.Positive(t, e.Evaluate(x))
		}
	})

	t.Run("BoundedSupport", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))

		e, err := New(stdNormalTangents(), Support{Lo: -2, Hi: 2})
		require.NoError(t, err)

		for i := 0; i < 2000; i++ {
			x := e.SampleCandidate(rng)
			require.GreaterOrEqual(t, x, -2.0)
			require.LessOrEqual(t, x, 2.0)
		}
	})
}

func TestEvaluate(t *testing.T) {
	e, err := New(stdNormalTangents(), Support{Lo: -2, Hi: 2})
	require.NoError(t, err)

	t.Run("ZeroOutsideSupport", func(t *testing.T) {
		assert.Zero(t, e.Evaluate(-3))
		assert.Zero(t, e.Evaluate(3))
		assert.Zero(t, e.Evaluate(math.Inf(1)))
	})

	t.Run("ActiveLineInsideSegment", func(t *testing.T) {
		// x = 0.5 lies in the second segment, owned by the slope -1 tangent.
		assert.InDelta(t, math.Exp(-0.5+0.5), e.Evaluate(0.5), 1e-12)
		// x = -0.5 lies in the first segment, owned by the slope 1 tangent.
		assert.InDelta(t, math.Exp(-0.5+0.5), e.Evaluate(-0.5), 1e-12)
	})

	t.Run("SupportBoundsBelongToEnvelope", func(t *testing.T) {
		assert.InDelta(t, math.Exp(1*-2+0.5), e.Evaluate(-2), 1e-12)
		assert.InDelta(t, math.Exp(-1*2+0.5), e.Evaluate(2), 1e-12)
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := e.Evaluate(0.37)
		second := e.Evaluate(0.37)
		assert.Equal(t, first, second)
	})
}

func TestStats(t *testing.T) {
	e, err := New(stdNormalTangents(), unbounded())
	require.NoError(t, err)

	s := e.Stats()
	assert.Equal(t, 2, s.Segments)
	assert.Len(t, s.Cutpoints, 3)
	assert.InDelta(t, e.TotalMass(), s.TotalMass, 1e-12)
}

func TestClampDiagnostics(t *testing.T) {
	sink := &recordingSink{}

	// Intercepts of 100 log units exceed the clamp threshold on both sides.
	e, err := New([]Line{{Slope: 1, Intercept: 100}, {Slope: -1, Intercept: 100}}, unbounded(), func(o *Options) {
		o.Sink = sink
	})
	require.NoError(t, err)

	assert.NotEmpty(t, sink.events)
	assert.False(t, math.IsInf(e.TotalMass(), 0))
}
