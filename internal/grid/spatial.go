package grid

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/drawdown/internal/transient"
)

// SpatialGrid is the tensor product of three coordinate axes. An axis with
// a single value fixes that coordinate.
type SpatialGrid struct {
	X, Y, Z []float64
}

// NewSpatialGrid copies and validates the axes.
func NewSpatialGrid(x, y, z []float64) (SpatialGrid, error) {
	g := SpatialGrid{
		X: append([]float64(nil), x...),
		Y: append([]float64(nil), y...),
		Z: append([]float64(nil), z...),
	}
	return g, g.Validate()
}

func (g SpatialGrid) Validate() error {
	for _, axis := range []struct {
		name string
		v    []float64
	}{{"x", g.X}, {"y", g.Y}, {"z", g.Z}} {
		if len(axis.v) == 0 {
			return &transient.ConfigurationError{Param: "grid." + axis.name, Value: 0, Reason: "axis is empty"}
		}
		for i, v := range axis.v {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &transient.ConfigurationError{Param: fmt.Sprintf("grid.%s[%d]", axis.name, i), Value: v, Reason: "must be finite"}
			}
			if i > 0 && v <= axis.v[i-1] {
				return &transient.ConfigurationError{Param: fmt.Sprintf("grid.%s[%d]", axis.name, i), Value: v, Reason: "coordinates must be strictly increasing"}
			}
		}
	}
	return nil
}

// Shape is {len(X), len(Y), len(Z)}.
func (g SpatialGrid) Shape() []int { return []int{len(g.X), len(g.Y), len(g.Z)} }
func (g SpatialGrid) Len() int     { return len(g.X) * len(g.Y) * len(g.Z) }

func (g SpatialGrid) Node(i, j, k int) transient.Point {
	return transient.Point{X: g.X[i], Y: g.Y[j], Z: g.Z[k]}
}

// NodeAt maps a row-major flat index to its point.
func (g SpatialGrid) NodeAt(flat int) transient.Point {
	nz, ny := len(g.Z), len(g.Y)
	k := flat % nz
	j := (flat / nz) % ny
	i := flat / (nz * ny)
	return g.Node(i, j, k)
}

// Varying lists the indices (0=x, 1=y, 2=z) of axes with more than one value.
func (g SpatialGrid) Varying() []int {
	var out []int
	for i, n := range g.Shape() {
		if n > 1 {
			out = append(out, i)
		}
	}
	return out
}

// PlaneKind names a slice through the reservoir.
type PlaneKind int

const (
	XY PlaneKind = iota
	XZ
	YZ
	XYZ
)

var planeNames = []string{"xy", "xz", "yz", "xyz"}

func (k PlaneKind) String() string {
	if int(k) < len(planeNames) {
		return planeNames[k]
	}
	return fmt.Sprintf("PlaneKind(%d)", int(k))
}

func ParsePlane(s string) (PlaneKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return XY, nil
	}
	for i, name := range planeNames {
		if s == name {
			return PlaneKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown plane: %q (want xy, xz, yz or xyz)", s)
}

// Plane builds a square slice of half-width extent through the reservoir
// of the given thickness, centred on the origin. Horizontal axes span
// [-extent, extent] and the vertical axis spans [-thickness/2, thickness/2].
// fixed is the coordinate of the axis normal to the plane; it is unused
// for XYZ, which has points nodes along every axis.
func Plane(kind PlaneKind, extent float64, points int, thickness, fixed float64) (SpatialGrid, error) {
	if kind == XYZ {
		return Volume(extent, points, points, thickness)
	}
	if err := checkExtent(extent, points, thickness); err != nil {
		return SpatialGrid{}, err
	}
	horizontal := span(-extent, extent, points)
	vertical := span(-thickness/2, thickness/2, points)

	switch kind {
	case XY:
		return NewSpatialGrid(horizontal, horizontal, []float64{fixed})
	case XZ:
		return NewSpatialGrid(horizontal, []float64{fixed}, vertical)
	case YZ:
		return NewSpatialGrid([]float64{fixed}, horizontal, vertical)
	}
	return SpatialGrid{}, &transient.ConfigurationError{Param: "grid.plane", Value: float64(kind), Reason: "unknown plane"}
}

// Volume builds a full 3-D grid with layers nodes through the thickness.
func Volume(extent float64, points, layers int, thickness float64) (SpatialGrid, error) {
	if err := checkExtent(extent, points, thickness); err != nil {
		return SpatialGrid{}, err
	}
	if layers < 1 {
		return SpatialGrid{}, &transient.ConfigurationError{Param: "grid.layers", Value: float64(layers), Reason: "need at least one layer"}
	}
	horizontal := span(-extent, extent, points)
	return NewSpatialGrid(horizontal, horizontal, span(-thickness/2, thickness/2, layers))
}

func checkExtent(extent float64, points int, thickness float64) error {
	switch {
	case !(extent > 0) || math.IsInf(extent, 0):
		return &transient.ConfigurationError{Param: "grid.extent", Value: extent, Reason: "must be finite and positive"}
	case points < 2:
		return &transient.ConfigurationError{Param: "grid.points", Value: float64(points), Reason: "need at least two points per axis"}
	case !(thickness > 0) || math.IsInf(thickness, 0):
		return &transient.ConfigurationError{Param: "thickness", Value: thickness, Reason: "must be finite and positive"}
	}
	return nil
}

func span(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{(lo + hi) / 2}
	}
	v := make([]float64, n)
	floats.Span(v, lo, hi)
	return v
}
