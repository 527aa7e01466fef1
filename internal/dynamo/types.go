package dynamo

import (
	"fmt"
	"time"
)

// Metric accumulates a scalar over the steps of a run. The field passed to
// Observe is the solver's live buffer and must not be retained.
type Metric interface {
	Name() string
	Observe(field []float64, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every successful step.
type Observer interface {
	OnStep(field []float64, t float64)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(field []float64, t float64)

func (f ObserverFunc) OnStep(field []float64, t float64) { f(field, t) }

// Config controls how a Simulator samples a run.
type Config struct {
	// SampleEvery records a copy of the field every so many steps. The
	// initial and final fields are always recorded.
	SampleEvery int
}

func DefaultConfig() Config {
	return Config{SampleEvery: 100}
}

func (c Config) Validate() error {
	if c.SampleEvery < 1 {
		return &ParamError{Name: "sample_every", Value: c.SampleEvery, Reason: "must be at least 1"}
	}
	return nil
}

// Result is the sampled history of one run.
type Result struct {
	Dims       int
	N          int
	Times      []float64
	Fields     [][]float64
	Metrics    map[string]float64
	StepsTaken int
	Elapsed    time.Duration
}

// Final returns the last recorded field, or nil for an empty result.
func (r *Result) Final() []float64 {
	if len(r.Fields) == 0 {
		return nil
	}
	return r.Fields[len(r.Fields)-1]
}

// RunError wraps a failure with the solver it happened on.
type RunError struct {
	Material string
	Strategy Strategy
	Step     int
	Wrapped  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s/%s at step %d: %v", e.Material, e.Strategy, e.Step, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
