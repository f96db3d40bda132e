// Package envelope implements the piecewise-exponential majorizing envelope
// used by adaptive rejection sampling.
//
// The envelope is assembled from tangent lines of a concave log-density.
// Ordered by strictly decreasing slope, the tangents form an upper hull:
// each line is the active (lowest) one on exactly one segment between two
// cutpoints, and exponentiating the active line gives a density piece that
// dominates the true density there.
//
// # Invariants
//
// After construction and after every Insert:
//
//   - lines are strictly decreasing by slope
//   - cutpoints are strictly increasing, bounded by the support
//   - len(cutpoints) == len(lines) + 1
//   - weights[i] is the finite, non-negative integral of the exponentiated
//     active line over segment i
//
// # Sampling
//
// SampleCandidate first draws a segment from the categorical distribution
// given by the segment weights, then inverts the exponential CDF within the
// segment. Evaluate is consistent with SampleCandidate: any coordinate the
// sampler can produce evaluates to a positive, finite density.
//
// # Numerical safety
//
// Segment integration runs in log space and clamps exponents above a
// threshold (25 natural-log units by default) instead of propagating inf.
// Each clamp is reported through the DiagnosticSink; a weight that is still
// non-finite after clamping fails with ErrNumericalOverflow.
package envelope
