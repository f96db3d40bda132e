package arsgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/arsgo/envelope"
)

var (
	// ErrInvalidN is returned when Run is asked for a non-positive sample
	// count.
	ErrInvalidN = errors.New("n must be positive")
)

// ErrInvalidSupport indicates a support interval whose lower bound is not
// strictly below its upper bound.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidSupport struct {
	Lo    float64
	Hi    float64
	cause error
}

func (e *ErrInvalidSupport) Error() string {
	return fmt.Sprintf("invalid support: lower bound %v must be strictly less than upper bound %v", e.Lo, e.Hi)
}

func (e *ErrInvalidSupport) Unwrap() error { return e.cause }

// ErrNotLogConcaveAtSeed indicates seed points whose gradient signs do not
// bracket a mode: the log-density must be increasing at the left seed and
// decreasing at the right seed.
type ErrNotLogConcaveAtSeed struct {
	X1    float64
	X2    float64
	Grad1 float64
	Grad2 float64
}

func (e *ErrNotLogConcaveAtSeed) Error() string {
	return fmt.Sprintf("log-density not concave at seeds: grad(%v)=%v, grad(%v)=%v (want positive then negative)",
		e.X1, e.Grad1, e.X2, e.Grad2)
}

// ErrInitialPointSearchFailed indicates that the grid search found no
// qualifying seed points, or found them in the wrong order.
type ErrInitialPointSearchFailed struct {
	Reason string
}

func (e *ErrInitialPointSearchFailed) Error() string {
	return fmt.Sprintf("initial point search failed: %s", e.Reason)
}

// ErrInvalidOrdering indicates that an envelope mutation would break its
// ordering invariants.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidOrdering struct {
	cause error
}

func (e *ErrInvalidOrdering) Error() string {
	return fmt.Sprintf("invalid ordering: %v", e.cause)
}

func (e *ErrInvalidOrdering) Unwrap() error { return e.cause }

// ErrNumericalOverflow indicates a non-finite segment weight that exponent
// clamping could not avoid.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrNumericalOverflow struct {
	Segment int
	cause   error
}

func (e *ErrNumericalOverflow) Error() string {
	return fmt.Sprintf("numerical overflow in envelope segment %d", e.Segment)
}

func (e *ErrNumericalOverflow) Unwrap() error { return e.cause }

// ErrMaxFailedRateExceeded indicates that a Run exhausted its rejection
// budget before producing the requested number of samples.
type ErrMaxFailedRateExceeded struct {
	Accepted int
	Rejected int
	Budget   int
}

func (e *ErrMaxFailedRateExceeded) Error() string {
	return fmt.Sprintf("rejection budget exhausted: %d rejections (budget %d) with %d samples accepted",
		e.Rejected, e.Budget, e.Accepted)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var is *envelope.ErrInvalidSupport
	if errors.As(err, &is) {
		return &ErrInvalidSupport{Lo: is.Lo, Hi: is.Hi, cause: err}
	}

	var io *envelope.ErrInvalidOrdering
	if errors.As(err, &io) {
		return &ErrInvalidOrdering{cause: err}
	}

	var no *envelope.ErrNumericalOverflow
	if errors.As(err, &no) {
		return &ErrNumericalOverflow{Segment: no.Segment, cause: err}
	}

	return err
}
