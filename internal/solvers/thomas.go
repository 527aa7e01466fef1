package solvers

import "fmt"

// SolveTridiagonal solves a[i]*x[i-1] + b[i]*x[i] + c[i]*x[i+1] = d[i] for x
// with the Thomas algorithm. a[0] and c[n-1] are ignored. All slices must
// have the same length. The system is assumed diagonally dominant; pivots are
// not checked.
func SolveTridiagonal(a, b, c, d, x []float64) {
	var th Thomas
	th.Solve(a, b, c, d, x)
}

// Thomas solves tridiagonal systems and keeps its forward-sweep scratch
// between calls, so repeated solves of the same size do not allocate.
type Thomas struct {
	cp, dp []float64
}

func NewThomas(n int) *Thomas {
	th := &Thomas{}
	th.ensureScratch(n)
	return th
}

func (th *Thomas) ensureScratch(n int) {
	if len(th.cp) != n {
		th.cp = make([]float64, n)
		th.dp = make([]float64, n)
	}
}

// Solve writes the solution into x. d is left untouched.
func (th *Thomas) Solve(a, b, c, d, x []float64) {
	n := len(b)
	if len(a) != n || len(c) != n || len(d) != n || len(x) != n {
		panic(fmt.Sprintf("solvers: band length mismatch a=%d b=%d c=%d d=%d x=%d",
			len(a), n, len(c), len(d), len(x)))
	}
	if n == 0 {
		return
	}
	th.ensureScratch(n)
	cp, dp := th.cp, th.dp

	cp[0] = c[0] / b[0]
	dp[0] = d[0] / b[0]
	for i := 1; i < n; i++ {
		denom := b[i] - a[i]*cp[i-1]
		cp[i] = c[i] / denom
		dp[i] = (d[i] - a[i]*dp[i-1]) / denom
	}

	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}
}
