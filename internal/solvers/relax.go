package solvers

import (
	"fmt"
	"math"
)

const (
	DefaultMaxSweeps = 100
	DefaultTolerance = 1e-6
)

// Relaxation runs bounded Gauss-Seidel sweeps for one implicit step of the
// 2-D heat equation on an n×n row-major grid (index j*n+i, j = row).
//
// Boundary layout: row 0 and column 0 are zero-flux (the missing neighbour
// mirrors index 1); the last row and last column are held at a fixed value.
type Relaxation struct {
	MaxSweeps int
	Tolerance float64
}

func NewRelaxation() Relaxation {
	return Relaxation{MaxSweeps: DefaultMaxSweeps, Tolerance: DefaultTolerance}
}

func (rx Relaxation) Validate() error {
	if rx.MaxSweeps < 1 {
		return fmt.Errorf("max sweeps must be at least 1, got %d", rx.MaxSweeps)
	}
	if math.IsNaN(rx.Tolerance) || rx.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", rx.Tolerance)
	}
	return nil
}

// StencilStep describes the linear system of a single time level.
type StencilStep struct {
	N      int
	R      float64   // alpha*dt/dx²
	K      float64   // dt/(rho*c)
	Prev   []float64 // field at the previous time level
	Source []float64
	Fixed  float64 // value of the pinned cells
}

// Relax iterates on work in place until the largest change of a sweep drops
// below the tolerance or MaxSweeps is reached. work must be seeded by the
// caller (usually with a copy of Prev). It returns the number of sweeps run
// and the last sweep's largest change; hitting the cap is not an error.
func (rx Relaxation) Relax(st StencilStep, work []float64) (sweeps int, delta float64) {
	n := st.N
	if len(work) != n*n || len(st.Prev) != n*n || len(st.Source) != n*n {
		panic(fmt.Sprintf("solvers: grid size mismatch n=%d work=%d prev=%d source=%d",
			n, len(work), len(st.Prev), len(st.Source)))
	}
	diag := 1.0 + 4.0*st.R

	for sweeps < rx.MaxSweeps {
		sweeps++
		delta = 0

		for j := 0; j < n; j++ {
			row := j * n
			for i := 0; i < n; i++ {
				idx := row + i
				if i == n-1 || j == n-1 {
					work[idx] = st.Fixed
					continue
				}

				left := work[row+1]
				if i > 0 {
					left = work[idx-1]
				}
				down := work[n+i]
				if j > 0 {
					down = work[idx-n]
				}
				right := work[idx+1]
				up := work[idx+n]

				old := work[idx]
				rhs := st.Prev[idx] + st.K*st.Source[idx]
				work[idx] = (rhs + st.R*(left+right+down+up)) / diag

				if d := math.Abs(work[idx] - old); d > delta {
					delta = d
				}
			}
		}

		if delta < rx.Tolerance {
			break
		}
	}

	return sweeps, delta
}
