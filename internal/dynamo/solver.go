package dynamo

import (
	"fmt"

	"github.com/san-kum/heatsim/internal/physics"
	"github.com/san-kum/heatsim/internal/solvers"
)

// Strategy selects how a solver advances its field by one implicit step.
type Strategy uint8

const (
	// DirectBanded builds the tridiagonal system of the 1-D scheme and solves it exactly.
	DirectBanded Strategy = iota + 1
	// BoundedRelaxation relaxes the 2-D five-point system with capped Gauss-Seidel sweeps.
	BoundedRelaxation
)

func (s Strategy) String() string {
	switch s {
	case DirectBanded:
		return "direct-banded"
	case BoundedRelaxation:
		return "bounded-relaxation"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// Params are the user-facing construction parameters. U0 is the initial and
// fixed-boundary temperature in Celsius; F is the source amplitude.
type Params struct {
	Length float64 `json:"length"`
	TMax   float64 `json:"tmax"`
	U0     float64 `json:"u0"`
	F      float64 `json:"f"`
	N      int     `json:"n"`
}

type options struct {
	relax solvers.Relaxation
	bar   []Interval
	plate []Rect
}

// Option customises a solver at construction.
type Option func(*options)

// WithRelaxation overrides the sweep cap and tolerance of the 2-D solver.
func WithRelaxation(rx solvers.Relaxation) Option {
	return func(o *options) { o.relax = rx }
}

// WithBarSources replaces the default 1-D source regions.
func WithBarSources(regions []Interval) Option {
	return func(o *options) { o.bar = regions }
}

// WithPlateSources replaces the default 2-D source regions.
func WithPlateSources(rects []Rect) Option {
	return func(o *options) { o.plate = rects }
}

// Solver owns a temperature field (Kelvin) and advances it one fixed time
// step per call to Step until the horizon is reached.
type Solver struct {
	strategy Strategy
	mat      physics.Material
	grid     Grid
	params   Params
	u0K      float64
	steps    int

	u   []float64
	src []float64

	// DirectBanded buffers, reused across steps.
	thomas     *solvers.Thomas
	a, b, c, d []float64
	next       []float64

	// BoundedRelaxation state.
	relax solvers.Relaxation
	work  []float64
}

// NewSolver1D builds a bar solver: insulated at x=0, fixed at x=L.
func NewSolver1D(mat physics.Material, p Params, opts ...Option) (*Solver, error) {
	s, o, err := newSolver(DirectBanded, mat, p, opts)
	if err != nil {
		return nil, err
	}
	n := s.grid.N
	s.u = make([]float64, n)
	s.src = BuildSource1D(s.grid, p.F, o.bar)
	s.thomas = solvers.NewThomas(n)
	s.a = make([]float64, n)
	s.b = make([]float64, n)
	s.c = make([]float64, n)
	s.d = make([]float64, n)
	s.next = make([]float64, n)
	s.Reset()
	return s, nil
}

// NewSolver2D builds a square plate solver: insulated along x=0 and y=0,
// fixed along x=L and y=L.
func NewSolver2D(mat physics.Material, p Params, opts ...Option) (*Solver, error) {
	s, o, err := newSolver(BoundedRelaxation, mat, p, opts)
	if err != nil {
		return nil, err
	}
	if err := o.relax.Validate(); err != nil {
		return nil, &ParamError{Name: "relaxation", Value: o.relax, Reason: err.Error()}
	}
	n := s.grid.N
	s.u = make([]float64, n*n)
	s.src = BuildSource2D(s.grid, p.F, o.plate)
	s.relax = o.relax
	s.work = make([]float64, n*n)
	s.Reset()
	return s, nil
}

func newSolver(strategy Strategy, mat physics.Material, p Params, opts []Option) (*Solver, options, error) {
	o := options{
		relax: solvers.NewRelaxation(),
		bar:   BarSources,
		plate: PlateSources,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := mat.Validate(); err != nil {
		return nil, o, &ParamError{Name: "material", Value: mat.Name, Reason: err.Error()}
	}
	grid, err := NewGrid(p.Length, p.TMax, p.N)
	if err != nil {
		return nil, o, err
	}
	if !finite(p.U0) {
		return nil, o, &ParamError{Name: "u0", Value: p.U0, Reason: "must be finite"}
	}
	if !finite(p.F) {
		return nil, o, &ParamError{Name: "f", Value: p.F, Reason: "must be finite"}
	}

	return &Solver{
		strategy: strategy,
		mat:      mat,
		grid:     grid,
		params:   p,
		u0K:      p.U0 + KelvinOffset,
	}, o, nil
}

// Step advances the field by one time step. It returns false, without
// touching any state, once the horizon has been reached.
func (s *Solver) Step() bool {
	if s.Done() {
		return false
	}

	r := s.grid.DiffusionNumber(s.mat.Alpha())
	k := s.grid.Dt / s.mat.HeatCapacity()

	switch s.strategy {
	case DirectBanded:
		s.stepBanded(r, k)
	case BoundedRelaxation:
		s.stepRelaxed(r, k)
	}

	s.steps++
	return true
}

func (s *Solver) stepBanded(r, k float64) {
	n := s.grid.N
	for i := 0; i < n; i++ {
		s.a[i] = -r
		s.b[i] = 1 + 2*r
		s.c[i] = -r
		s.d[i] = s.u[i] + k*s.src[i]
	}

	// zero flux at x=0
	s.b[0] = 1 + r
	s.c[0] = -r

	// fixed temperature at x=L
	s.b[n-1] = 1
	s.a[n-1] = 0
	s.c[n-1] = 0
	s.d[n-1] = s.u0K

	s.thomas.Solve(s.a, s.b, s.c, s.d, s.next)
	s.u, s.next = s.next, s.u
}

func (s *Solver) stepRelaxed(r, k float64) {
	copy(s.work, s.u)
	s.relax.Relax(solvers.StencilStep{
		N:      s.grid.N,
		R:      r,
		K:      k,
		Prev:   s.u,
		Source: s.src,
		Fixed:  s.u0K,
	}, s.work)
	s.u, s.work = s.work, s.u
}

// Reset rewinds the clock and refills the field with the initial
// temperature. The source field is kept.
func (s *Solver) Reset() {
	s.steps = 0
	for i := range s.u {
		s.u[i] = s.u0K
	}
}

// Done reports whether the horizon has been reached.
func (s *Solver) Done() bool { return s.steps >= StepsPerRun }

// Time returns the simulated time in seconds, always steps·dt.
func (s *Solver) Time() float64 { return float64(s.steps) * s.grid.Dt }

func (s *Solver) Steps() int                 { return s.steps }
func (s *Solver) N() int                     { return s.grid.N }
func (s *Solver) TMax() float64              { return s.grid.TMax }
func (s *Solver) Grid() Grid                 { return s.grid }
func (s *Solver) Params() Params             { return s.params }
func (s *Solver) Material() physics.Material { return s.mat }
func (s *Solver) Strategy() Strategy         { return s.strategy }
func (s *Solver) InitialKelvin() float64     { return s.u0K }

// Relaxation returns the sweep settings of a plate solver; a bar reports the
// zero value.
func (s *Solver) Relaxation() solvers.Relaxation { return s.relax }

// Dims returns 1 for a bar and 2 for a plate.
func (s *Solver) Dims() int {
	if s.strategy == BoundedRelaxation {
		return 2
	}
	return 1
}

// Temperature returns a copy of the field: the bar profile, or the plate
// grid in row-major order (index j·n+i).
func (s *Solver) Temperature() []float64 {
	out := make([]float64, len(s.u))
	copy(out, s.u)
	return out
}

// Temperature2D returns the field as rows (y index) of columns (x index).
// A bar comes back as a single row.
func (s *Solver) Temperature2D() [][]float64 {
	n := s.grid.N
	if s.Dims() == 1 {
		return [][]float64{s.Temperature()}
	}
	rows := make([][]float64, n)
	for j := range rows {
		rows[j] = make([]float64, n)
		copy(rows[j], s.u[j*n:(j+1)*n])
	}
	return rows
}

// At returns the temperature at column i, row j. j must be 0 for a bar.
func (s *Solver) At(i, j int) float64 {
	return s.u[j*s.grid.N+i]
}

// View exposes the live field without copying. Callers must not modify it
// or keep it across steps.
func (s *Solver) View() []float64 { return s.u }

// Source returns a copy of the static source field.
func (s *Solver) Source() []float64 {
	out := make([]float64, len(s.src))
	copy(out, s.src)
	return out
}
