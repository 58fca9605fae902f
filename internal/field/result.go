package field

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/drawdown/internal/grid"
	"github.com/san-kum/drawdown/internal/ndarray"
	"github.com/san-kum/drawdown/internal/transient"
)

// Pair is one (t, Δp) sample.
type Pair struct {
	T        float64 `json:"t"`
	Drawdown float64 `json:"drawdown"`
}

// Series is the drawdown history at one observation point. The caller owns it.
type Series struct {
	Model           transient.ModelKind
	Observation     transient.Point
	Times           []float64
	Drawdown        []float64
	Singular        []transient.Singularity
	InitialPressure float64
}

func (s *Series) Len() int { return len(s.Times) }

func (s *Series) Pairs() []Pair {
	out := make([]Pair, len(s.Times))
	for i, t := range s.Times {
		out[i] = Pair{T: t, Drawdown: s.Drawdown[i]}
	}
	return out
}

// Masked returns the drawdown with singular samples replaced by fill.
func (s *Series) Masked(fill float64) []float64 {
	out := append([]float64(nil), s.Drawdown...)
	for _, sg := range s.Singular {
		out[sg.Index] = fill
	}
	return out
}

// Pressure is initialPressure - Δp per sample.
func (s *Series) Pressure() []float64 {
	out := make([]float64, len(s.Drawdown))
	for i, d := range s.Drawdown {
		out[i] = s.InitialPressure - d
	}
	return out
}

// Field is the drawdown over a spatial grid at one time. Values has the
// grid's shape {nx, ny, nz}.
type Field struct {
	Model           transient.ModelKind
	Grid            grid.SpatialGrid
	Time            float64
	Values          *ndarray.Array
	Singular        []transient.Singularity
	InitialPressure float64
}

func (f *Field) Masked(fill float64) *ndarray.Array {
	out := f.Values.Clone()
	data := out.Data()
	for _, sg := range f.Singular {
		data[sg.Index] = fill
	}
	return out
}

func (f *Field) Pressure() *ndarray.Array {
	pi := f.InitialPressure
	return f.Values.Map(func(d float64) float64 { return pi - d })
}

var axisNames = [3]string{"x", "y", "z"}

// PlaneAxes names the row and column axes used by Plane.
func (f *Field) PlaneAxes() (rows, cols int, err error) {
	varying := f.Grid.Varying()
	switch len(varying) {
	case 0:
		return 0, 1, nil
	case 1:
		if varying[0] == 2 {
			return 1, 2, nil
		}
		return varying[0], varying[0] + 1, nil
	case 2:
		return varying[0], varying[1], nil
	}
	return 0, 0, fmt.Errorf("field varies along %d axes; a plane needs at most two", len(varying))
}

// AxisName is "x", "y" or "z".
func AxisName(axis int) string { return axisNames[axis] }

// Coordinates returns the grid values along axis.
func (f *Field) Coordinates(axis int) []float64 {
	switch axis {
	case 0:
		return f.Grid.X
	case 1:
		return f.Grid.Y
	}
	return f.Grid.Z
}

// Plane copies a field with at most two varying axes into a matrix,
// rows along the first varying axis, with singular nodes set to fill.
func (f *Field) Plane(fill float64) (*mat.Dense, error) {
	rows, cols, err := f.PlaneAxes()
	if err != nil {
		return nil, err
	}
	shape := f.Grid.Shape()
	nr, nc := shape[rows], shape[cols]
	masked := f.Masked(fill)

	m := mat.NewDense(nr, nc, nil)
	idx := []int{0, 0, 0}
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			idx[rows], idx[cols] = i, j
			m.Set(i, j, masked.At(idx...))
		}
	}
	return m, nil
}
