package arsgo

import (
	"math"

	"github.com/hupe1980/arsgo/objective"
)

// SearchOptions configures the greedy grid search for initial tangent
// points.
type SearchOptions struct {
	// Delta is the grid step. Non-positive values fall back to the
	// default.
	Delta float64

	// Lo and Hi bound the scanned range. The scan is restricted to the
	// intersection of this range and the support, and must be finite.
	Lo float64
	Hi float64

	// MinSlope and MaxSlope bound the acceptable gradient magnitude at a
	// seed: the left seed needs a gradient inside (MinSlope, MaxSlope),
	// the right seed a gradient inside (-MaxSlope, -MinSlope).
	MinSlope float64
	MaxSlope float64
}

// DefaultSearchOptions scans [-10, 10] in steps of 0.1 for gradient
// magnitudes between 1e-3 and 1e3.
var DefaultSearchOptions = SearchOptions{
	Delta:    0.1,
	Lo:       -10,
	Hi:       10,
	MinSlope: 1e-3,
	MaxSlope: 1e3,
}

// NewWithSearch constructs a Sampler, locating seed points by scanning a
// uniform grid over the intersection of the search range and the support.
// The first grid point whose gradient falls inside the slope window becomes
// the left seed; the last grid point whose negated gradient falls inside the
// window becomes the right seed. On success, construction proceeds exactly
// as with explicit seeds.
func NewWithSearch(f objective.Func, support Support, search SearchOptions, optFns ...Option) (*Sampler, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if search.Delta <= 0 {
		search.Delta = DefaultSearchOptions.Delta
	}

	if search.Lo == 0 && search.Hi == 0 {
		search.Lo, search.Hi = DefaultSearchOptions.Lo, DefaultSearchOptions.Hi
	}

	if search.MinSlope == 0 && search.MaxSlope == 0 {
		search.MinSlope, search.MaxSlope = DefaultSearchOptions.MinSlope, DefaultSearchOptions.MaxSlope
	}

	if !(support.Lo < support.Hi) {
		return nil, &ErrInvalidSupport{Lo: support.Lo, Hi: support.Hi}
	}

	lo := math.Max(search.Lo, support.Lo)
	hi := math.Min(search.Hi, support.Hi)

	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, &ErrInitialPointSearchFailed{Reason: "search range must be finite"}
	}

	if !(lo < hi) {
		return nil, &ErrInitialPointSearchFailed{Reason: "search range does not intersect the support"}
	}

	obj := newObjective(f, opts)

	// Integer-indexed grid; accumulating floats would drift over long
	// scans.
	steps := int((hi - lo) / search.Delta)

	i1, i2 := -1, -1
	var x1, x2 float64

	for i := 0; i <= steps; i++ {
		x := lo + float64(i)*search.Delta
		g := obj.Grad(x)

		if i1 < 0 && g > search.MinSlope && g < search.MaxSlope {
			i1, x1 = i, x
		}

		if -g > search.MinSlope && -g < search.MaxSlope {
			i2, x2 = i, x
		}
	}

	if i1 < 0 || i2 < 0 {
		return nil, &ErrInitialPointSearchFailed{Reason: "no grid point with gradient inside the slope window"}
	}

	if i1 >= i2 {
		return nil, &ErrInitialPointSearchFailed{Reason: "left seed does not precede right seed; function may not be log-concave on the scanned range"}
	}

	return newSampler(f, support, x1, x2, opts)
}
