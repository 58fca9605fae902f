package models

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/drawdown/internal/reservoir"
	"github.com/san-kum/drawdown/internal/special"
	"github.com/san-kum/drawdown/internal/transient"
)

// FiniteRadius solves radial flow to a well of radius rw in Laplace space,
//
//	F(s) = qBμ/(2πkh) · K0(rσ) / (s · rwσ · K1(rwσ)),  σ = √(s/η),
//
// and inverts F numerically. Observation points inside the wellbore are
// evaluated at the sandface.
type FiniteRadius struct {
	Inverter transient.Inverter
}

func (FiniteRadius) Kind() transient.ModelKind { return transient.FiniteRadius }

func (m FiniteRadius) At(p reservoir.Params, r, t float64) (float64, error) {
	if err := checkArgs(r, t); err != nil {
		return math.NaN(), err
	}
	if t == 0 {
		return math.NaN(), nil
	}
	v, err := m.Inverter.Invert(Transform(p, r), t)
	if err != nil {
		return math.NaN(), fmt.Errorf("finite radius at r=%g t=%g: %w", r, t, err)
	}
	return v, nil
}

// Transform returns F(s) for distance r. The Bessel ratio is formed from
// exponentially scaled functions so that large rσ does not underflow.
func Transform(p reservoir.Params, r float64) transient.LaplaceFunc {
	rw := p.WellboreRadius()
	if r < rw {
		r = rw
	}
	scale := complex(p.PressureScale(), 0)
	eta := complex(p.Diffusivity(), 0)
	crw := complex(rw, 0)
	cr := complex(r, 0)

	return func(s complex128) complex128 {
		sigma := cmplx.Sqrt(s / eta)
		k0 := special.K0Scaled(cr * sigma)
		k1 := special.K1Scaled(crw * sigma)
		return scale * k0 / (s * crw * sigma * k1) * cmplx.Exp(-(cr-crw)*sigma)
	}
}

// LaplaceDrawdown evaluates F at a single frequency.
func LaplaceDrawdown(p reservoir.Params, r float64, s complex128) complex128 {
	return Transform(p, r)(s)
}
