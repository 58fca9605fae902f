package field_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/drawdown/internal/field"
	"github.com/san-kum/drawdown/internal/grid"
	"github.com/san-kum/drawdown/internal/laplace"
	"github.com/san-kum/drawdown/internal/models"
	"github.com/san-kum/drawdown/internal/reservoir"
	"github.com/san-kum/drawdown/internal/transient"
)

var _ = Describe("Evaluator", func() {
	var (
		ctx    context.Context
		params reservoir.Params
		times  grid.TimeGrid
		origin transient.Point
	)

	BeforeEach(func() {
		ctx = context.Background()
		params = referenceParams()
		var err error
		times, err = grid.LogSpace(1e4, 1e6, 7)
		Expect(err).NotTo(HaveOccurred())
		origin = transient.Point{}
	})

	newEvaluator := func(wells []reservoir.Well, kind transient.ModelKind, workers int) *field.Evaluator {
		e, err := field.New(params, wells, field.Config{
			Model:     kind,
			Inversion: laplace.Config{Degree: 12},
			Workers:   workers,
			Logger:    quiet,
		})
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	DescribeTable("superposes two symmetric producers",
		func(kind transient.ModelKind) {
			single := newEvaluator([]reservoir.Well{producer("a", 20, 0)}, kind, 2)
			pair := newEvaluator([]reservoir.Well{producer("a", 20, 0), producer("b", -20, 0)}, kind, 2)

			one, err := single.TimeSeries(ctx, origin, times)
			Expect(err).NotTo(HaveOccurred())
			two, err := pair.TimeSeries(ctx, origin, times)
			Expect(err).NotTo(HaveOccurred())

			Expect(two.Len()).To(Equal(times.Len()))
			for i := range one.Drawdown {
				Expect(one.Drawdown[i]).To(BeNumerically(">", 0))
				Expect(two.Drawdown[i]).To(BeNumerically("~", 2*one.Drawdown[i], 1e-9*one.Drawdown[i]))
			}
		},
		Entry("line source", transient.LineSource),
		Entry("finite radius", transient.FiniteRadius),
	)

	It("cancels a producer against a mirrored injector", func() {
		e := newEvaluator([]reservoir.Well{producer("p", 40, 0), injector("i", -40, 0)}, transient.LineSource, 1)
		s, err := e.TimeSeries(ctx, transient.Point{X: 0, Y: 25}, times)
		Expect(err).NotTo(HaveOccurred())
		for _, v := range s.Drawdown {
			Expect(v).To(BeNumerically("~", 0, 1e-6))
		}
	})

	It("matches the single-well line source at the trajectory distance", func() {
		e := newEvaluator([]reservoir.Well{producer("a", 3, 4)}, transient.LineSource, 1)
		s, err := e.TimeSeries(ctx, origin, times)
		Expect(err).NotTo(HaveOccurred())
		for i, t := range s.Times {
			want, err := models.LineSourceDrawdown(params, 5, t)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Drawdown[i]).To(BeNumerically("~", want, 1e-9*want))
		}
		pairs := s.Pairs()
		Expect(pairs).To(HaveLen(times.Len()))
		Expect(pairs[0].T).To(Equal(times.At(0)))
	})

	It("adds the vertical offset above the perforated interval", func() {
		e := newEvaluator([]reservoir.Well{producer("a", 0, 0)}, transient.LineSource, 1)
		above, err := e.TimeSeries(ctx, transient.Point{X: 10, Z: 9.144/2 + 10}, times)
		Expect(err).NotTo(HaveOccurred())
		within, err := e.TimeSeries(ctx, transient.Point{X: 10}, times)
		Expect(err).NotTo(HaveOccurred())

		for i, t := range times.Times() {
			want, _ := models.LineSourceDrawdown(params, math.Sqrt(200), t)
			Expect(above.Drawdown[i]).To(BeNumerically("~", want, 1e-9*want))
			Expect(above.Drawdown[i]).To(BeNumerically("<", within.Drawdown[i]))
		}
	})

	It("reports absolute pressure below the initial pressure", func() {
		e := newEvaluator([]reservoir.Well{producer("a", 10, 0)}, transient.LineSource, 1)
		s, err := e.TimeSeries(ctx, origin, times)
		Expect(err).NotTo(HaveOccurred())
		for i, p := range s.Pressure() {
			Expect(p).To(BeNumerically("~", params.InitialPressure()-s.Drawdown[i], 1e-6))
			Expect(p).To(BeNumerically("<", params.InitialPressure()))
		}
	})

	It("rejects an empty well list", func() {
		_, err := field.New(params, nil, field.Config{Logger: quiet})
		Expect(err).To(MatchError(transient.ErrConfiguration))
	})

	It("rejects an invalid well", func() {
		bad := producer("bad", 0, 0)
		bad.Radius = 0
		_, err := field.New(params, []reservoir.Well{bad}, field.Config{Logger: quiet})
		Expect(err).To(MatchError(transient.ErrValidation))
	})

	It("rejects an odd inversion degree before evaluating", func() {
		_, err := field.New(params, []reservoir.Well{producer("a", 0, 0)}, field.Config{
			Model:     transient.FiniteRadius,
			Inversion: laplace.Config{Degree: 11},
			Logger:    quiet,
		})
		Expect(err).To(MatchError(transient.ErrConfiguration))
	})

	It("keeps the instability warning of a high degree", func() {
		e, err := field.New(params, []reservoir.Well{producer("a", 0, 0)}, field.Config{
			Model:     transient.FiniteRadius,
			Inversion: laplace.Config{Degree: 22, Cap: true},
			Logger:    quiet,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Warning()).NotTo(BeNil())
		Expect(e.Warning().Used).To(Equal(laplace.MaxStableDegree))
	})

	It("compares both models", func() {
		late, err := grid.LogSpace(1e4, 1e6, 3)
		Expect(err).NotTo(HaveOccurred())
		c, err := field.Compare(ctx, params, []reservoir.Well{producer("a", 1, 0)}, origin, late, field.Config{Logger: quiet})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.RelDiff).To(HaveLen(3))
		Expect(c.MaxRelDiff()).To(BeNumerically("<", 0.01))
	})
})
