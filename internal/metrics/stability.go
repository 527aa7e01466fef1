package metrics

import (
	"math"
)

// Stability is the fraction of steps whose field stayed finite and never
// dropped below floor. With non-negative sources the implicit schemes keep
// every cell at or above the initial temperature.
type Stability struct {
	name       string
	floor      float64
	violations int
	samples    int
}

// stabilitySlack absorbs rounding in the relaxation solve.
const stabilitySlack = 1e-9

func NewStability(floor float64) *Stability {
	return &Stability{
		name:  "stability",
		floor: floor,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(field []float64, t float64) {
	s.samples++
	for _, v := range field {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < s.floor-stabilitySlack {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
