package ndarray

import "fmt"

// BroadcastShape aligns shapes on their trailing axes; each axis pair must
// be equal or contain a 1.
func BroadcastShape(shapes ...[]int) ([]int, error) {
	dims := 0
	for _, s := range shapes {
		if len(s) > dims {
			dims = len(s)
		}
	}
	out := make([]int, dims)
	for i := range out {
		out[i] = 1
	}
	for _, s := range shapes {
		off := dims - len(s)
		for i, d := range s {
			switch {
			case d == out[off+i] || d == 1:
			case out[off+i] == 1:
				out[off+i] = d
			default:
				return nil, fmt.Errorf("ndarray: shapes %v not broadcastable", shapes)
			}
		}
	}
	return out, nil
}

// broadcastStrides returns row-major strides of a aligned to out, with a
// zero stride on every broadcast axis.
func broadcastStrides(shape, out []int) []int {
	strides := make([]int, len(out))
	off := len(out) - len(shape)
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] != 1 {
			strides[off+i] = stride
		}
		stride *= shape[i]
	}
	return strides
}

// Broadcast evaluates fn element-wise over the broadcast of a and b.
func Broadcast(a, b *Array, fn func(x, y float64) float64) (*Array, error) {
	shape, err := BroadcastShape(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	out := New(shape...)

	if sameShape(a.shape, b.shape) {
		for i := range out.data {
			out.data[i] = fn(a.data[i], b.data[i])
		}
		return out, nil
	}

	sa := broadcastStrides(a.shape, shape)
	sb := broadcastStrides(b.shape, shape)
	idx := make([]int, len(shape))
	ia, ib := 0, 0
	for i := range out.data {
		out.data[i] = fn(a.data[ia], b.data[ib])

		// odometer increment over the output index
		for d := len(shape) - 1; d >= 0; d-- {
			idx[d]++
			ia += sa[d]
			ib += sb[d]
			if idx[d] < shape[d] {
				break
			}
			ia -= sa[d] * shape[d]
			ib -= sb[d] * shape[d]
			idx[d] = 0
		}
	}
	return out, nil
}

// Add returns a + b with broadcasting.
func Add(a, b *Array) (*Array, error) {
	return Broadcast(a, b, func(x, y float64) float64 { return x + y })
}

// Mul returns a · b with broadcasting.
func Mul(a, b *Array) (*Array, error) {
	return Broadcast(a, b, func(x, y float64) float64 { return x * y })
}

// Axis returns v shaped to lie along axis of a dims-dimensional array,
// i.e. shape [1,..,len(v),..,1], ready to broadcast against the other axes.
func Axis(v []float64, axis, dims int) *Array {
	shape := make([]int, dims)
	for i := range shape {
		shape[i] = 1
	}
	shape[axis] = len(v)
	return &Array{shape: shape, data: append([]float64(nil), v...)}
}
