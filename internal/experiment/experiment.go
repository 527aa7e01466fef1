package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/dynamo"
	"github.com/san-kum/heatsim/internal/physics"
)

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	logger    *zap.Logger
	solver    *dynamo.Solver
	simulator *dynamo.Simulator
}

func New(cfg *config.Config, registry *Registry, logger *zap.Logger) *Experiment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

// Setup validates the configuration and builds the solver and a simulator
// carrying the default metrics.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	solver, err := e.registry.Solver(e.cfg)
	if err != nil {
		return err
	}
	e.solver = solver
	e.simulator = e.newSimulator(solver)
	return nil
}

func (e *Experiment) newSimulator(s *dynamo.Solver) *dynamo.Simulator {
	sim := dynamo.NewSimulator(
		dynamo.WithLogger(e.logger),
		dynamo.WithConfig(e.cfg.SimConfig()),
	)
	for _, m := range e.registry.DefaultMetrics(s) {
		sim.AddMetric(m)
	}
	return sim
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.solver)
}

// Compare runs the configured geometry once per material, concurrently.
func (e *Experiment) Compare(ctx context.Context, materials []physics.Material) ([]*dynamo.Solver, []*dynamo.Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, nil, err
	}

	solvers := make([]*dynamo.Solver, len(materials))
	for i, m := range materials {
		s, err := e.registry.NewSolver(m, e.cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", m.Name, err)
		}
		solvers[i] = s
	}

	ens := dynamo.NewEnsemble(e.newSimulator, e.logger)
	results, err := ens.Run(ctx, solvers)
	if err != nil {
		return nil, nil, err
	}
	return solvers, results, nil
}

// Solver returns the solver built by Setup, for observers and viewers.
func (e *Experiment) Solver() *dynamo.Solver {
	return e.solver
}
