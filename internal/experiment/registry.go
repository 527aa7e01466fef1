package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/dynamo"
	"github.com/san-kum/heatsim/internal/metrics"
	"github.com/san-kum/heatsim/internal/physics"
)

// SolverFactory builds a solver for one geometry.
type SolverFactory func(mat physics.Material, cfg *config.Config) (*dynamo.Solver, error)

type Registry struct {
	geometries map[string]SolverFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		geometries: make(map[string]SolverFactory),
	}

	r.geometries[config.GeometryBar] = func(mat physics.Material, cfg *config.Config) (*dynamo.Solver, error) {
		return dynamo.NewSolver1D(mat, cfg.Params())
	}
	r.geometries[config.GeometryPlate] = func(mat physics.Material, cfg *config.Config) (*dynamo.Solver, error) {
		return dynamo.NewSolver2D(mat, cfg.Params(), dynamo.WithRelaxation(cfg.RelaxationParams()))
	}

	return r
}

func (r *Registry) GetMaterial(name string) (physics.Material, error) {
	return physics.Lookup(name)
}

func (r *Registry) ListMaterials() []string {
	return physics.Names()
}

func (r *Registry) ListGeometries() []string {
	names := make([]string, 0, len(r.geometries))
	for name := range r.geometries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSolver builds the solver cfg describes, with mat overriding cfg.Material.
func (r *Registry) NewSolver(mat physics.Material, cfg *config.Config) (*dynamo.Solver, error) {
	fn, ok := r.geometries[cfg.Geometry]
	if !ok {
		return nil, fmt.Errorf("unknown geometry: %s", cfg.Geometry)
	}
	return fn(mat, cfg)
}

// Solver looks up cfg.Material and builds the matching solver.
func (r *Registry) Solver(cfg *config.Config) (*dynamo.Solver, error) {
	mat, err := r.GetMaterial(cfg.Material)
	if err != nil {
		return nil, err
	}
	return r.NewSolver(mat, cfg)
}

func (r *Registry) DefaultMetrics(s *dynamo.Solver) []dynamo.Metric {
	return metrics.Standard(s)
}
