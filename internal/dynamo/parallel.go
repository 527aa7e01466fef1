package dynamo

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent solvers side by side, one goroutine each. Each
// solver gets a fresh Simulator from the factory so metric state is never
// shared between runs. The factory may be called concurrently.
type Ensemble struct {
	newSimulator func(*Solver) *Simulator
	logger       *zap.Logger
}

func NewEnsemble(factory func(*Solver) *Simulator, logger *zap.Logger) *Ensemble {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ensemble{newSimulator: factory, logger: logger}
}

// Run returns one result per solver, in input order. The first failure
// cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, solvers []*Solver) ([]*Result, error) {
	results := make([]*Result, len(solvers))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range solvers {
		g.Go(func() error {
			res, err := e.newSimulator(s).Run(gctx, s)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Error("ensemble failed", zap.Error(err))
		return nil, err
	}

	e.logger.Debug("ensemble finished", zap.Int("runs", len(solvers)))
	return results, nil
}
