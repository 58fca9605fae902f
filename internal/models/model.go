// Package models holds the single-well drawdown solutions: the closed-form
// line source and the finite-radius solution in Laplace space.
package models

import (
	"fmt"
	"math"

	"github.com/san-kum/drawdown/internal/reservoir"
	"github.com/san-kum/drawdown/internal/transient"
)

// Model is the pressure drop Δp(r, t) in Pa caused by one well whose rate
// and radius are carried by p.
//
// At returns +Inf at r = 0 (line source only) and NaN at t = 0; negative or
// NaN arguments are configuration errors.
type Model interface {
	Kind() transient.ModelKind
	At(p reservoir.Params, r, t float64) (float64, error)
}

// New builds the model for kind. inv is required for FiniteRadius and
// ignored otherwise.
func New(kind transient.ModelKind, inv transient.Inverter) (Model, error) {
	switch kind {
	case transient.LineSource:
		return LineSource{}, nil
	case transient.FiniteRadius:
		if inv == nil {
			return nil, fmt.Errorf("%s model needs an inverter: %w", kind, transient.ErrConfiguration)
		}
		return FiniteRadius{Inverter: inv}, nil
	}
	return nil, fmt.Errorf("unknown model kind %d: %w", int(kind), transient.ErrConfiguration)
}

func checkArgs(r, t float64) error {
	if math.IsNaN(r) || r < 0 {
		return &transient.ConfigurationError{Param: "r", Value: r, Reason: "distance must be non-negative"}
	}
	if math.IsNaN(t) || t < 0 {
		return &transient.ConfigurationError{Param: "t", Value: t, Reason: "time must be non-negative"}
	}
	return nil
}
