package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/heatsim/internal/dynamo"
)

// HeatGain is the thermal energy stored above the initial state at the last
// observed step: rho·c·Σ(u−u0)·dx^d, in J per unit cross-section (bar) or
// per unit thickness (plate).
type HeatGain struct {
	name     string
	capacity float64
	baseline float64
	cell     float64
	excess   float64
}

func NewHeatGain(s *dynamo.Solver) *HeatGain {
	return &HeatGain{
		name:     "heat_gain",
		capacity: s.Material().HeatCapacity(),
		baseline: s.InitialKelvin(),
		cell:     math.Pow(s.Grid().Dx, float64(s.Dims())),
	}
}

func (h *HeatGain) Name() string { return h.name }

func (h *HeatGain) Observe(field []float64, t float64) {
	h.excess = floats.Sum(field) - h.baseline*float64(len(field))
}

func (h *HeatGain) Value() float64 {
	return h.capacity * h.excess * h.cell
}

func (h *HeatGain) Reset() { h.excess = 0 }

// Standard returns the metric set recorded for every CLI run.
func Standard(s *dynamo.Solver) []dynamo.Metric {
	return []dynamo.Metric{
		NewPeakTemperature(),
		NewMeanTemperature(),
		NewHeatGain(s),
		NewStability(s.InitialKelvin()),
	}
}
