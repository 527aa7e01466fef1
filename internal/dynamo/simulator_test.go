package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/heatsim/internal/physics"
)

type countMetric struct{ n int }

func (m *countMetric) Name() string                   { return "count" }
func (m *countMetric) Observe(_ []float64, _ float64) { m.n++ }
func (m *countMetric) Value() float64                 { return float64(m.n) }
func (m *countMetric) Reset()                         { m.n = 0 }

func newBar(t *testing.T, mat physics.Material) *Solver {
	t.Helper()
	s, err := NewSolver1D(mat, Params{Length: 1, TMax: 16, U0: 13, F: 80, N: 11})
	require.NoError(t, err)
	return s
}

func TestSimulatorRun(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sim := NewSimulator(WithLogger(zap.New(core)), WithConfig(Config{SampleEvery: 250}))
	sim.AddMetric(&countMetric{})

	var seen int
	sim.AddObserver(ObserverFunc(func(_ []float64, _ float64) { seen++ }))

	s := newBar(t, physics.Copper)
	res, err := sim.Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, StepsPerRun, res.StepsTaken)
	assert.Equal(t, StepsPerRun, seen)
	assert.Equal(t, float64(StepsPerRun), res.Metrics["count"])
	assert.Equal(t, 1, res.Dims)
	assert.Equal(t, 11, res.N)

	// initial state plus every 250th step
	require.Len(t, res.Times, 5)
	require.Len(t, res.Fields, 5)
	assert.Zero(t, res.Times[0])
	assert.InDelta(t, 16.0, res.Times[4], 1e-9)
	assert.Equal(t, s.Temperature(), res.Final())

	assert.Equal(t, 1, logs.FilterMessage("run started").Len())
	assert.Equal(t, 1, logs.FilterMessage("run finished").Len())
}

func TestSimulatorRun_Finished(t *testing.T) {
	s := newBar(t, physics.Copper)
	for s.Step() {
	}
	_, err := NewSimulator().Run(context.Background(), s)
	assert.ErrorIs(t, err, ErrFinished)
}

func TestSimulatorRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sim := NewSimulator()
	sim.AddObserver(ObserverFunc(func(_ []float64, t float64) {
		if t >= 1 {
			cancel()
		}
	}))

	s := newBar(t, physics.Iron)
	res, err := sim.Run(ctx, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)

	var re *RunError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Iron", re.Material)
	assert.Equal(t, s.Steps(), re.Step)

	require.NotNil(t, res)
	assert.Less(t, res.StepsTaken, StepsPerRun)
	assert.False(t, s.Done())
}

func TestSimulatorRun_BadConfig(t *testing.T) {
	sim := NewSimulator(WithConfig(Config{SampleEvery: 0}))
	_, err := sim.Run(context.Background(), newBar(t, physics.Copper))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEnsembleRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	var solvers []*Solver
	for _, m := range physics.All() {
		solvers = append(solvers, newBar(t, m))
	}

	ens := NewEnsemble(func(*Solver) *Simulator {
		sim := NewSimulator()
		sim.AddMetric(&countMetric{})
		return sim
	}, nil)

	results, err := ens.Run(context.Background(), solvers)
	require.NoError(t, err)
	require.Len(t, results, len(solvers))

	for i, res := range results {
		assert.Equal(t, StepsPerRun, res.StepsTaken)
		assert.Equal(t, float64(StepsPerRun), res.Metrics["count"])
		assert.Equal(t, solvers[i].Temperature(), res.Final())
	}
}

func TestEnsembleRun_Canceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solvers := []*Solver{newBar(t, physics.Copper), newBar(t, physics.Glass)}
	_, err := NewEnsemble(func(*Solver) *Simulator { return NewSimulator() }, nil).Run(ctx, solvers)
	assert.ErrorIs(t, err, ErrCanceled)
}
