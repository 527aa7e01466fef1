package dynamo

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Simulator drives a Solver to its horizon, feeding metrics and observers and
// sampling the field.
type Simulator struct {
	cfg       Config
	metrics   []Metric
	observers []Observer
	logger    *zap.Logger
}

// SimOption customises a Simulator.
type SimOption func(*Simulator)

func WithLogger(l *zap.Logger) SimOption {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithConfig(cfg Config) SimOption {
	return func(s *Simulator) { s.cfg = cfg }
}

func NewSimulator(opts ...SimOption) *Simulator {
	s := &Simulator{
		cfg:       DefaultConfig(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps the solver from its current state until it reports completion.
// Cancellation is checked between steps; the partial result is returned with
// an error wrapping both ErrCanceled and the context error.
func (s *Simulator) Run(ctx context.Context, solver *Solver) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if solver.Done() {
		return nil, ErrFinished
	}

	remaining := StepsPerRun - solver.Steps()
	result := &Result{
		Dims:    solver.Dims(),
		N:       solver.N(),
		Times:   make([]float64, 0, remaining/s.cfg.SampleEvery+2),
		Fields:  make([][]float64, 0, remaining/s.cfg.SampleEvery+2),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	log := s.logger.With(
		zap.String("material", solver.Material().Name),
		zap.String("strategy", solver.Strategy().String()),
		zap.Int("n", solver.N()),
	)
	log.Debug("run started",
		zap.Float64("dt", solver.Grid().Dt),
		zap.Float64("dx", solver.Grid().Dx),
		zap.Float64("r", solver.Grid().DiffusionNumber(solver.Material().Alpha())),
	)

	start := time.Now()
	result.sample(solver)

	for {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			s.collect(result)
			log.Warn("run canceled", zap.Int("steps", result.StepsTaken), zap.Float64("time", solver.Time()))
			return result, &RunError{
				Material: solver.Material().Name,
				Strategy: solver.Strategy(),
				Step:     solver.Steps(),
				Wrapped:  fmt.Errorf("%w: %w", ErrCanceled, ctx.Err()),
			}
		default:
		}

		if !solver.Step() {
			break
		}
		result.StepsTaken++

		field, t := solver.View(), solver.Time()
		for _, m := range s.metrics {
			m.Observe(field, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(field, t)
		}

		if solver.Steps()%s.cfg.SampleEvery == 0 || solver.Done() {
			result.sample(solver)
		}
	}

	result.Elapsed = time.Since(start)
	s.collect(result)

	log.Info("run finished",
		zap.Int("steps", result.StepsTaken),
		zap.Float64("time", solver.Time()),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (r *Result) sample(solver *Solver) {
	r.Times = append(r.Times, solver.Time())
	r.Fields = append(r.Fields, solver.Temperature())
}
