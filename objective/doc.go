// Package objective wraps a log-density and its derivative behind a pure
// value/derivative oracle.
//
// The sampler treats differentiation as an injected capability: pass an
// explicit derivative through Options.Grad, or let the package fall back to
// a central finite-difference approximation (gonum's diff/fd). The core
// never depends on a specific differentiation technique.
package objective
