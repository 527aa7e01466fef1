// Package solvers contains the linear-system kernels behind the implicit
// heat solvers.
//
//   - [SolveTridiagonal] / [Thomas]: direct O(n) solve of a three-banded system
//   - [Relaxation]: bounded in-place Gauss-Seidel sweeps over the five-point
//     stencil of the 2-D backward-Euler scheme
//
// The kernels know nothing about time or materials; callers build the bands
// or coefficients and hand them over.
package solvers
