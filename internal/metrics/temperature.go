package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PeakTemperature tracks the hottest cell seen during a run, in Kelvin.
type PeakTemperature struct {
	name string
	peak float64
}

func NewPeakTemperature() *PeakTemperature {
	return &PeakTemperature{name: "peak_temperature", peak: math.Inf(-1)}
}

func (p *PeakTemperature) Name() string { return p.name }

func (p *PeakTemperature) Observe(field []float64, t float64) {
	if len(field) == 0 {
		return
	}
	p.peak = math.Max(p.peak, floats.Max(field))
}

func (p *PeakTemperature) Value() float64 {
	if math.IsInf(p.peak, -1) {
		return 0
	}
	return p.peak
}

func (p *PeakTemperature) Reset() { p.peak = math.Inf(-1) }

// MeanTemperature is the time average of the spatial mean temperature.
type MeanTemperature struct {
	name    string
	sum     float64
	samples int
}

func NewMeanTemperature() *MeanTemperature {
	return &MeanTemperature{name: "mean_temperature"}
}

func (m *MeanTemperature) Name() string { return m.name }

func (m *MeanTemperature) Observe(field []float64, t float64) {
	if len(field) == 0 {
		return
	}
	m.sum += floats.Sum(field) / float64(len(field))
	m.samples++
}

func (m *MeanTemperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanTemperature) Reset() {
	m.sum = 0
	m.samples = 0
}
