// Package testutil provides testing utilities for arsgo.
//
// This package is intended for use in tests and examples only. It provides
// seeded random sources, reference log-densities with known moments, and
// empirical moment helpers for statistical assertions.
//
// # Deterministic Sampling
//
//	rng := testutil.NewRand(42)
//	s, _ := arsgo.New(testutil.StdNormalLogPDF, arsgo.Real(), -1, 1,
//	    arsgo.WithLogDensity(true), arsgo.WithRand(rng))
//
// # Statistical Assertions
//
//	mean, variance := testutil.Moments(samples)
package testutil
