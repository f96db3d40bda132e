package testutil

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// NewRand returns a seeded random source for deterministic sampling.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // nolint gosec
}

// StdNormalLogPDF is the standard normal log-density, including the
// normalizing constant.
func StdNormalLogPDF(x float64) float64 {
	return -0.5*x*x - 0.5*math.Log(2*math.Pi)
}

// StdNormalPDF is the standard normal density.
func StdNormalPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// GammaLogPDF returns the unnormalized log-density of a Gamma(shape, rate)
// distribution on (0, inf). It is log-concave for shape >= 1, with mean
// shape/rate.
func GammaLogPDF(shape, rate float64) func(x float64) float64 {
	return func(x float64) float64 {
		if x <= 0 {
			return math.Inf(-1)
		}
		return (shape-1)*math.Log(x) - rate*x
	}
}

// LogisticLogPDF is the standard logistic log-density, which is log-concave
// with mean 0.
func LogisticLogPDF(x float64) float64 {
	return -x - 2*math.Log(1+math.Exp(-x))
}

// Moments returns the empirical mean and variance of xs.
func Moments(xs []float64) (mean, variance float64) {
	mean = stat.Mean(xs, nil)
	variance = stat.Variance(xs, nil)
	return mean, variance
}
