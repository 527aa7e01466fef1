package dynamo

import "math"

const (
	// StepsPerRun is the fixed number of time steps from t=0 to the horizon.
	StepsPerRun = 1000

	// KelvinOffset converts Celsius input to the Kelvin values the solvers store.
	KelvinOffset = 273.15
)

// Grid is the immutable space/time discretisation shared by both solvers.
// The same Dx is used along every axis.
type Grid struct {
	Length float64
	TMax   float64
	N      int
	Dx     float64
	Dt     float64
}

func NewGrid(length, tmax float64, n int) (Grid, error) {
	if n < 2 {
		return Grid{}, &ParamError{Name: "n", Value: n, Reason: "need at least 2 points"}
	}
	if !positive(length) {
		return Grid{}, &ParamError{Name: "length", Value: length, Reason: "must be positive"}
	}
	if !positive(tmax) {
		return Grid{}, &ParamError{Name: "tmax", Value: tmax, Reason: "must be positive"}
	}
	return Grid{
		Length: length,
		TMax:   tmax,
		N:      n,
		Dx:     length / float64(n-1),
		Dt:     tmax / StepsPerRun,
	}, nil
}

// X returns the coordinate of grid index i.
func (g Grid) X(i int) float64 {
	return float64(i) * g.Dx
}

// DiffusionNumber returns r = alpha·dt/dx², the implicit diffusion number.
func (g Grid) DiffusionNumber(alpha float64) float64 {
	return alpha * g.Dt / (g.Dx * g.Dx)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
