package transient

import (
	"fmt"
	"strings"
)

// ModelKind selects the solution used for a well's contribution.
type ModelKind int

const (
	// LineSource is the closed-form Ei solution for a zero-radius well.
	LineSource ModelKind = iota
	// FiniteRadius is the Laplace-domain solution honoring the wellbore radius.
	FiniteRadius
)

var modelNames = map[ModelKind]string{
	LineSource:   "line_source",
	FiniteRadius: "finite_radius",
}

func (k ModelKind) String() string {
	if name, ok := modelNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ModelKind(%d)", int(k))
}

// ParseModelKind accepts the canonical names plus a few short aliases.
func ParseModelKind(s string) (ModelKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line_source", "line-source", "linesource", "ei", "line":
		return LineSource, nil
	case "finite_radius", "finite-radius", "finiteradius", "laplace", "finite":
		return FiniteRadius, nil
	}
	return 0, fmt.Errorf("unknown model: %q (want line_source or finite_radius)", s)
}

// ModelNames lists the canonical model names.
func ModelNames() []string {
	return []string{LineSource.String(), FiniteRadius.String()}
}

// Point is a location in reservoir coordinates. Z is elevation; the
// reservoir mid-plane is z = 0.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// LaplaceFunc is a function of the complex Laplace frequency s.
type LaplaceFunc func(s complex128) complex128

// Inverter recovers the time-domain value of a LaplaceFunc at t.
type Inverter interface {
	Invert(f LaplaceFunc, t float64) (float64, error)
}
