package models

import (
	"math"

	"github.com/san-kum/drawdown/internal/ndarray"
	"github.com/san-kum/drawdown/internal/reservoir"
	"github.com/san-kum/drawdown/internal/special"
	"github.com/san-kum/drawdown/internal/transient"
)

// LineSource is Δp = qBμ/(4πkh) · E1(r²/(4ηt)).
type LineSource struct{}

func (LineSource) Kind() transient.ModelKind { return transient.LineSource }

func (LineSource) At(p reservoir.Params, r, t float64) (float64, error) {
	if err := checkArgs(r, t); err != nil {
		return math.NaN(), err
	}
	return lineSource(p.PressureScale()/2, p.Diffusivity(), r, t), nil
}

func lineSource(scale, eta, r, t float64) float64 {
	switch {
	case t == 0:
		return math.NaN()
	case r == 0:
		return math.Inf(1)
	}
	return scale * special.E1(r*r/(4*eta*t))
}

// Drawdown evaluates the line source over the broadcast of r and t. Any
// negative element rejects the whole call before anything is computed.
func (LineSource) Drawdown(p reservoir.Params, r, t *ndarray.Array) (*ndarray.Array, error) {
	for _, v := range r.Data() {
		if err := checkArgs(v, 0); err != nil {
			return nil, err
		}
	}
	for _, v := range t.Data() {
		if err := checkArgs(0, v); err != nil {
			return nil, err
		}
	}
	scale, eta := p.PressureScale()/2, p.Diffusivity()
	return ndarray.Broadcast(r, t, func(ri, ti float64) float64 {
		return lineSource(scale, eta, ri, ti)
	})
}

// LineSourceDrawdown is the scalar form of LineSource.At.
func LineSourceDrawdown(p reservoir.Params, r, t float64) (float64, error) {
	return LineSource{}.At(p, r, t)
}
