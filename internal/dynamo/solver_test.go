package dynamo_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heatsim/internal/dynamo"
	"github.com/san-kum/heatsim/internal/physics"
	"github.com/san-kum/heatsim/internal/solvers"
)

var copperBar = dynamo.Params{Length: 1, TMax: 16, U0: 13, F: 80, N: 11}

func runToEnd(s *dynamo.Solver) int {
	steps := 0
	for s.Step() {
		steps++
	}
	return steps
}

func pinned(n, idx int) bool {
	return idx%n == n-1 || idx/n == n-1
}

var _ = Describe("Solver", func() {
	Describe("construction", func() {
		DescribeTable("rejects bad parameters",
			func(p dynamo.Params, name string) {
				_, err := dynamo.NewSolver1D(physics.Copper, p)
				Expect(err).To(MatchError(dynamo.ErrInvalidArgument))

				var pe *dynamo.ParamError
				Expect(errors.As(err, &pe)).To(BeTrue())
				Expect(pe.Name).To(Equal(name))
			},
			Entry("single point", dynamo.Params{Length: 1, TMax: 16, N: 1}, "n"),
			Entry("zero length", dynamo.Params{Length: 0, TMax: 16, N: 11}, "length"),
			Entry("negative horizon", dynamo.Params{Length: 1, TMax: -1, N: 11}, "tmax"),
		)

		It("rejects an invalid material", func() {
			_, err := dynamo.NewSolver2D(physics.Material{Name: "void"}, copperBar)
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		})

		It("rejects a relaxation without sweeps", func() {
			_, err := dynamo.NewSolver2D(physics.Copper, copperBar,
				dynamo.WithRelaxation(solvers.Relaxation{MaxSweeps: 0, Tolerance: 1e-6}))
			Expect(err).To(MatchError(dynamo.ErrInvalidArgument))
		})

		It("derives the grid from the parameters", func() {
			s, err := dynamo.NewSolver1D(physics.Copper, copperBar)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Grid().Dx).To(BeNumerically("~", 0.1, 1e-15))
			Expect(s.Grid().Dt).To(Equal(0.016))
			Expect(s.Time()).To(BeZero())
			Expect(s.Strategy()).To(Equal(dynamo.DirectBanded))
			Expect(s.Dims()).To(Equal(1))
		})
	})

	Describe("copper bar scenario", func() {
		var s *dynamo.Solver

		BeforeEach(func() {
			var err error
			s, err = dynamo.NewSolver1D(physics.Copper, copperBar)
			Expect(err).NotTo(HaveOccurred())
		})

		It("finishes after exactly 1000 steps", func() {
			Expect(runToEnd(s)).To(Equal(dynamo.StepsPerRun))
			Expect(s.Time()).To(BeNumerically("~", 16.0, s.Grid().Dt/2))
			Expect(s.Done()).To(BeTrue())
		})

		It("holds the fixed end at the initial temperature", func() {
			for s.Step() {
				u := s.View()
				Expect(u[len(u)-1]).To(Equal(s.InitialKelvin()))
			}
			Expect(s.At(10, 0)).To(Equal(s.InitialKelvin()))
		})

		It("heats the first source region above the boundary", func() {
			runToEnd(s)
			field := s.Temperature()
			for i := range field {
				x := s.Grid().X(i)
				if x >= 0.1 && x <= 0.2 {
					Expect(field[i]).To(BeNumerically(">", 286.15), "x=%v", x)
				}
			}
		})
	})

	Describe("termination", func() {
		DescribeTable("is idempotent",
			func(build func(physics.Material, dynamo.Params, ...dynamo.Option) (*dynamo.Solver, error)) {
				s, err := build(physics.Iron, copperBar)
				Expect(err).NotTo(HaveOccurred())
				runToEnd(s)

				field, t := s.Temperature(), s.Time()
				for range 5 {
					Expect(s.Step()).To(BeFalse())
				}
				Expect(s.Temperature()).To(Equal(field))
				Expect(s.Time()).To(Equal(t))
				Expect(s.Steps()).To(Equal(dynamo.StepsPerRun))
			},
			Entry("bar", dynamo.NewSolver1D),
			Entry("plate", dynamo.NewSolver2D),
		)
	})

	Describe("reset", func() {
		DescribeTable("restores the initial state",
			func(build func(physics.Material, dynamo.Params, ...dynamo.Option) (*dynamo.Solver, error)) {
				s, err := build(physics.Glass, copperBar)
				Expect(err).NotTo(HaveOccurred())
				src := s.Source()

				for range 37 {
					s.Step()
				}
				s.Reset()

				Expect(s.Time()).To(BeZero())
				Expect(s.Steps()).To(BeZero())
				for _, v := range s.View() {
					Expect(v).To(Equal(s.InitialKelvin()))
				}
				Expect(s.Source()).To(Equal(src))
				Expect(s.Step()).To(BeTrue())
			},
			Entry("bar", dynamo.NewSolver1D),
			Entry("plate", dynamo.NewSolver2D),
		)
	})

	Describe("zero source", func() {
		DescribeTable("leaves a flat field flat",
			func(build func(physics.Material, dynamo.Params, ...dynamo.Option) (*dynamo.Solver, error)) {
				p := copperBar
				p.F = 0
				s, err := build(physics.Copper, p)
				Expect(err).NotTo(HaveOccurred())
				runToEnd(s)
				for _, v := range s.View() {
					Expect(v).To(BeNumerically("~", 286.15, 1e-9))
				}
			},
			Entry("bar", dynamo.NewSolver1D),
			Entry("plate", dynamo.NewSolver2D),
		)
	})

	Describe("plate", func() {
		var p dynamo.Params

		BeforeEach(func() {
			p = dynamo.Params{Length: 0.1, TMax: 160, U0: 20, F: 80, N: 21}
		})

		It("keeps the last row and column pinned after every step", func() {
			s, err := dynamo.NewSolver2D(physics.Copper, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Dims()).To(Equal(2))

			want := s.InitialKelvin()
			for range 50 {
				Expect(s.Step()).To(BeTrue())
				for idx, v := range s.View() {
					if pinned(p.N, idx) {
						Expect(v).To(Equal(want))
					}
				}
			}
		})

		It("does not move when relaxation is tightened", func() {
			loose, err := dynamo.NewSolver2D(physics.Copper, p)
			Expect(err).NotTo(HaveOccurred())
			tight, err := dynamo.NewSolver2D(physics.Copper, p,
				dynamo.WithRelaxation(solvers.Relaxation{MaxSweeps: 2000, Tolerance: 1e-12}))
			Expect(err).NotTo(HaveOccurred())

			r := loose.Grid().DiffusionNumber(physics.Copper.Alpha())
			Expect(r).To(BeNumerically("<", 5))

			for range 10 {
				loose.Step()
				tight.Step()
			}
			a, b := loose.View(), tight.View()
			for i := range a {
				Expect(a[i]).To(BeNumerically("~", b[i], 1e-4))
			}
		})

		It("is symmetric about the diagonal", func() {
			s, err := dynamo.NewSolver2D(physics.Iron, p,
				dynamo.WithRelaxation(solvers.Relaxation{MaxSweeps: 2000, Tolerance: 1e-12}))
			Expect(err).NotTo(HaveOccurred())
			for range 20 {
				s.Step()
			}
			for j := 0; j < p.N; j++ {
				for i := 0; i < j; i++ {
					Expect(s.At(i, j)).To(BeNumerically("~", s.At(j, i), 1e-8))
				}
			}
		})

		It("returns rows in y order", func() {
			s, err := dynamo.NewSolver2D(physics.Copper, p)
			Expect(err).NotTo(HaveOccurred())
			s.Step()
			rows := s.Temperature2D()
			Expect(rows).To(HaveLen(p.N))
			Expect(rows[3][7]).To(Equal(s.At(7, 3)))
		})
	})
})
