// Package ndarray is a small row-major N-dimensional float64 array with
// NumPy-style element-wise broadcasting.
package ndarray

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Array is a dense row-major array. A zero-dimensional Array holds one
// scalar and broadcasts against any shape.
type Array struct {
	shape []int
	data  []float64
}

// New returns a zero-filled array of the given shape.
func New(shape ...int) *Array {
	n := 1
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("ndarray: negative dimension %d", d))
		}
		n *= d
	}
	return &Array{shape: append([]int(nil), shape...), data: make([]float64, n)}
}

// FromSlice wraps data without copying. len(data) must equal the product of shape.
func FromSlice(data []float64, shape ...int) (*Array, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("ndarray: negative dimension %d", d)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("ndarray: %d values do not fill shape %v", len(data), shape)
	}
	return &Array{shape: append([]int(nil), shape...), data: data}, nil
}

// Vector copies v into a one-dimensional array.
func Vector(v []float64) *Array {
	return &Array{shape: []int{len(v)}, data: append([]float64(nil), v...)}
}

// Scalar returns a zero-dimensional array.
func Scalar(v float64) *Array {
	return &Array{shape: []int{}, data: []float64{v}}
}

// Full returns an array of the given shape filled with v.
func Full(v float64, shape ...int) *Array {
	a := New(shape...)
	for i := range a.data {
		a.data[i] = v
	}
	return a
}

func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }
func (a *Array) Dims() int    { return len(a.shape) }
func (a *Array) Len() int     { return len(a.data) }

// Data exposes the backing slice in row-major order.
func (a *Array) Data() []float64 { return a.data }

// Clone deep-copies the array.
func (a *Array) Clone() *Array {
	return &Array{shape: a.Shape(), data: append([]float64(nil), a.data...)}
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: %d indices for %d dimensions", len(idx), len(a.shape)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			panic(fmt.Sprintf("ndarray: index %d out of range [0,%d) on axis %d", i, a.shape[d], d))
		}
		off = off*a.shape[d] + i
	}
	return off
}

func (a *Array) At(idx ...int) float64     { return a.data[a.offset(idx)] }
func (a *Array) Set(v float64, idx ...int) { a.data[a.offset(idx)] = v }

// Unravel converts a flat index to per-axis indices.
func (a *Array) Unravel(flat int) []int {
	idx := make([]int, len(a.shape))
	for d := len(a.shape) - 1; d >= 0; d-- {
		idx[d] = flat % a.shape[d]
		flat /= a.shape[d]
	}
	return idx
}

// Reshape returns a view with a new shape over the same data.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	return FromSlice(a.data, shape...)
}

// Map applies fn element-wise into a new array.
func (a *Array) Map(fn func(float64) float64) *Array {
	out := &Array{shape: a.Shape(), data: make([]float64, len(a.data))}
	for i, v := range a.data {
		out.data[i] = fn(v)
	}
	return out
}

// Scale multiplies every element by k in place and returns a.
func (a *Array) Scale(k float64) *Array {
	floats.Scale(k, a.data)
	return a
}

// AddScaled accumulates k·b into a in place. Shapes must match exactly.
func (a *Array) AddScaled(k float64, b *Array) error {
	if !sameShape(a.shape, b.shape) {
		return fmt.Errorf("ndarray: cannot accumulate shape %v into %v", b.shape, a.shape)
	}
	floats.AddScaled(a.data, k, b.data)
	return nil
}

// Finite reports whether every element is neither NaN nor ±Inf.
func (a *Array) Finite() bool {
	for _, v := range a.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Min and Max ignore non-finite elements; both are NaN when none is finite.
func (a *Array) Min() float64 { return a.extreme(func(x, y float64) bool { return x < y }) }
func (a *Array) Max() float64 { return a.extreme(func(x, y float64) bool { return x > y }) }

func (a *Array) extreme(better func(x, y float64) bool) float64 {
	best := math.NaN()
	for _, v := range a.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if math.IsNaN(best) || better(v, best) {
			best = v
		}
	}
	return best
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
