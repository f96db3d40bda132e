package envelope

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewLines is returned when an envelope is constructed from fewer
	// than two lines. Two lines with opposite slope signs are the minimum
	// for an integrable envelope on unbounded support.
	ErrTooFewLines = errors.New("envelope requires at least two lines")
)

// OrderingViolation identifies which ordering invariant an operation broke.
type OrderingViolation int

const (
	// ViolationSlopesNotDecreasing means the line sequence is not strictly
	// decreasing by slope.
	ViolationSlopesNotDecreasing OrderingViolation = iota
	// ViolationCutpointsNotIncreasing means the cutpoint sequence is not
	// strictly increasing.
	ViolationCutpointsNotIncreasing
)

func (v OrderingViolation) String() string {
	switch v {
	case ViolationSlopesNotDecreasing:
		return "slopes not strictly decreasing"
	case ViolationCutpointsNotIncreasing:
		return "cutpoints not strictly increasing"
	default:
		return fmt.Sprintf("unknown violation (%d)", int(v))
	}
}

// ErrInvalidOrdering indicates that a construction or insertion would break
// the envelope's ordering invariants.
type ErrInvalidOrdering struct {
	Violation OrderingViolation
	Index     int // offending line or cutpoint index
}

func (e *ErrInvalidOrdering) Error() string {
	return fmt.Sprintf("invalid ordering at index %d: %s", e.Index, e.Violation)
}

// ErrInvalidSupport indicates a support interval whose lower bound is not
// strictly below its upper bound.
type ErrInvalidSupport struct {
	Lo float64
	Hi float64
}

func (e *ErrInvalidSupport) Error() string {
	return fmt.Sprintf("invalid support: lower bound %v must be strictly less than upper bound %v", e.Lo, e.Hi)
}

// ErrNumericalOverflow indicates a segment weight that is non-finite or
// negative even after exponent clamping.
type ErrNumericalOverflow struct {
	Segment int
	Weight  float64
}

func (e *ErrNumericalOverflow) Error() string {
	return fmt.Sprintf("numerical overflow: segment %d has non-finite or negative weight %v", e.Segment, e.Weight)
}
