package laplace

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/drawdown/internal/transient"
)

// Known pairs a transform with its exact inverse, for diagnostics.
type Known struct {
	Name      string
	Transform transient.LaplaceFunc
	Exact     func(t float64) float64
}

// KnownTransforms returns the diagnostic library: unit step, ramp and
// exponential decay with rate a.
func KnownTransforms(a float64) map[string]Known {
	return map[string]Known{
		"step": {
			Name:      "step",
			Transform: func(s complex128) complex128 { return 1 / s },
			Exact:     func(float64) float64 { return 1 },
		},
		"ramp": {
			Name:      "ramp",
			Transform: func(s complex128) complex128 { return 1 / (s * s) },
			Exact:     func(t float64) float64 { return t },
		},
		"decay": {
			Name:      "decay",
			Transform: func(s complex128) complex128 { return 1 / (s + complex(a, 0)) },
			Exact:     func(t float64) float64 { return math.Exp(-a * t) },
		},
	}
}

func KnownNames() []string {
	names := make([]string, 0, 3)
	for name := range KnownTransforms(1) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Diagnostic is one inversion compared with its exact answer.
type Diagnostic struct {
	T        float64 `json:"t"`
	Inverted float64 `json:"inverted"`
	Exact    float64 `json:"exact"`
	AbsError float64 `json:"abs_error"`
	RelError float64 `json:"rel_error"`
}

// Diagnose inverts k at every time in ts.
func Diagnose(inv transient.Inverter, k Known, ts []float64) ([]Diagnostic, error) {
	out := make([]Diagnostic, 0, len(ts))
	for _, t := range ts {
		got, err := inv.Invert(k.Transform, t)
		if err != nil {
			return nil, fmt.Errorf("%s at t=%g: %w", k.Name, t, err)
		}
		want := k.Exact(t)
		d := Diagnostic{T: t, Inverted: got, Exact: want, AbsError: math.Abs(got - want)}
		if want != 0 {
			d.RelError = d.AbsError / math.Abs(want)
		}
		out = append(out, d)
	}
	return out, nil
}
