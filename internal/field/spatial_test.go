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

var _ = Describe("SpatialField", func() {
	var (
		ctx    context.Context
		params reservoir.Params
		plane  grid.SpatialGrid
	)

	BeforeEach(func() {
		ctx = context.Background()
		params = referenceParams()
		var err error
		// 9 points on [-100, 100] put a node exactly on the origin
		plane, err = grid.Plane(grid.XY, 100, 9, params.Thickness(), 0)
		Expect(err).NotTo(HaveOccurred())
	})

	evaluator := func(kind transient.ModelKind, workers int, wells ...reservoir.Well) *field.Evaluator {
		e, err := field.New(params, wells, field.Config{
			Model:     kind,
			Inversion: laplace.Config{Degree: 12},
			Workers:   workers,
			Logger:    quiet,
		})
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	It("has the shape of the grid", func() {
		f, err := evaluator(transient.LineSource, 1, producer("a", 0, 0)).SpatialField(ctx, plane, 1e5)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Values.Shape()).To(Equal([]int{9, 9, 1}))

		m, err := f.Plane(0)
		Expect(err).NotTo(HaveOccurred())
		r, c := m.Dims()
		Expect(r).To(Equal(9))
		Expect(c).To(Equal(9))
	})

	It("localizes the singular node on a line-source trajectory", func() {
		f, err := evaluator(transient.LineSource, 1, producer("a", 0, 0)).SpatialField(ctx, plane, 1e5)
		Expect(err).NotTo(HaveOccurred())

		Expect(f.Singular).To(HaveLen(1))
		sg := f.Singular[0]
		Expect(sg.Cause).To(Equal(transient.AtSource))
		Expect(f.Values.At(4, 4, 0)).To(Equal(math.Inf(1)))

		masked := f.Masked(-1)
		Expect(masked.At(4, 4, 0)).To(Equal(-1.0))
		Expect(masked.Finite()).To(BeTrue())
		Expect(f.Values.At(0, 0, 0)).To(BeNumerically(">", 0))
	})

	It("evaluates every node like the scalar model", func() {
		f, err := evaluator(transient.LineSource, 1, producer("a", 12, -7)).SpatialField(ctx, plane, 3600)
		Expect(err).NotTo(HaveOccurred())
		for i, x := range plane.X {
			for j, y := range plane.Y {
				want, _ := models.LineSourceDrawdown(params, math.Hypot(x-12, y+7), 3600)
				Expect(f.Values.At(i, j, 0)).To(BeNumerically("~", want, 1e-9*math.Max(want, 1)))
			}
		}
	})

	It("stays finite on the trajectory with a finite wellbore", func() {
		f, err := evaluator(transient.FiniteRadius, 4, producer("a", 0, 0)).SpatialField(ctx, plane, 1e5)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Singular).To(BeEmpty())
		Expect(f.Values.Finite()).To(BeTrue())
		Expect(f.Values.Max()).To(Equal(f.Values.At(4, 4, 0)))
	})

	It("gives identical finite-radius fields for any pool size", func() {
		wells := []reservoir.Well{producer("a", 25, 0), injector("b", -25, 0)}
		serial, err := evaluator(transient.FiniteRadius, 1, wells...).SpatialField(ctx, plane, 1e5)
		Expect(err).NotTo(HaveOccurred())
		pooled, err := evaluator(transient.FiniteRadius, 8, wells...).SpatialField(ctx, plane, 1e5)
		Expect(err).NotTo(HaveOccurred())
		Expect(pooled.Values.Data()).To(Equal(serial.Values.Data()))
	})

	It("marks every node at t = 0", func() {
		f, err := evaluator(transient.LineSource, 1, producer("a", 0, 0)).SpatialField(ctx, plane, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Singular).To(HaveLen(plane.Len()))
		Expect(f.Singular[0].Cause).To(Equal(transient.AtTimeZero))
	})

	It("rejects a negative time", func() {
		_, err := evaluator(transient.LineSource, 1, producer("a", 0, 0)).SpatialField(ctx, plane, -1)
		Expect(err).To(MatchError(transient.ErrConfiguration))
	})

	It("evaluates vertical sections", func() {
		xz, err := grid.Plane(grid.XZ, 100, 9, params.Thickness()*3, 0)
		Expect(err).NotTo(HaveOccurred())
		f, err := field.EvaluateSpatialField(ctx, params, []reservoir.Well{producer("a", 0, 0)}, xz, 1e5, transient.LineSource)
		Expect(err).NotTo(HaveOccurred())

		rows, cols, err := f.PlaneAxes()
		Expect(err).NotTo(HaveOccurred())
		Expect(field.AxisName(rows)).To(Equal("x"))
		Expect(field.AxisName(cols)).To(Equal("z"))

		// top and bottom layers lie outside the perforations
		Expect(f.Values.At(6, 0, 0)).To(BeNumerically("<", f.Values.At(6, 0, 4)))
		Expect(f.Values.At(6, 0, 8)).To(BeNumerically("<", f.Values.At(6, 0, 4)))
	})

	It("refuses a plane view of a volume", func() {
		vol, err := grid.Volume(50, 5, 3, params.Thickness())
		Expect(err).NotTo(HaveOccurred())
		f, err := field.EvaluateSpatialField(ctx, params, []reservoir.Well{producer("a", 1, 1)}, vol, 1e5, transient.LineSource)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Values.Shape()).To(Equal([]int{5, 5, 3}))
		_, err = f.Plane(0)
		Expect(err).To(HaveOccurred())
	})
})
