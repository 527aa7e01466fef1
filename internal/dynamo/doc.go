// Package dynamo provides the time-stepping core of the heat simulator.
//
// The package integrates du/dt = alpha·∇²u + F/(rho·c) with a backward-Euler
// scheme on a uniform grid:
//
//   - [Grid]: domain length, horizon, point count and the derived dx, dt
//   - [Interval], [Rect]: named source regions, built into a static source field
//   - [Solver]: a stepped temperature field; 1-D solvers use a direct banded
//     solve, 2-D solvers use bounded Gauss-Seidel relaxation ([Strategy])
//   - [Simulator]: drives a solver to completion, sampling and observing
//   - [Ensemble]: runs independent solvers concurrently
//
// # Boundaries
//
// The origin edge (x=0, and y=0 in 2-D) is insulated (zero flux). The far
// edge (x=L, and y=L in 2-D) is held at the initial temperature.
//
// # Example
//
//	s, err := dynamo.NewSolver1D(physics.Copper, dynamo.Params{
//	    Length: 1, TMax: 16, U0: 13, F: 80, N: 101,
//	})
//	for s.Step() {
//	}
//	profile := s.Temperature()
//
// # Thread Safety
//
// A Solver is NOT thread-safe. Distinct solvers share no state and may be
// stepped from different goroutines; [Ensemble] does exactly that.
package dynamo
