package reservoir

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/drawdown/internal/transient"
)

// Kind distinguishes producers from injectors.
type Kind int

const (
	Producer Kind = iota
	Injector
)

func (k Kind) String() string {
	if k == Injector {
		return "injector"
	}
	return "producer"
}

// Sign is the contribution sign to the superposed drawdown: producers lower
// the pressure (+Δp), injectors raise it.
func (k Kind) Sign() float64 {
	if k == Injector {
		return -1
	}
	return 1
}

// ParseKind accepts names and the table codes "0" (producer) and "1" (injector).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "producer", "prod", "p":
		return Producer, nil
	case "1", "injector", "inj", "i":
		return Injector, nil
	}
	return 0, fmt.Errorf("unknown well kind: %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Well is a fully penetrating vertical well source. (X, Y, Top) is the top
// of the trajectory; it extends downward over the reservoir thickness.
type Well struct {
	Name   string
	X, Y   float64
	Top    float64
	Radius float64 // m
	Rate   float64 // m³/s, magnitude
	Kind   Kind
}

// NewWell validates a well against the reservoir it is drilled into.
func NewWell(name string, x, y, top, radius, rate float64, kind Kind) (Well, error) {
	w := Well{Name: name, X: x, Y: y, Top: top, Radius: radius, Rate: rate, Kind: kind}
	return w, w.Validate()
}

// Validate checks the physical invariants of the well.
func (w Well) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{{"x", w.X}, {"y", w.Y}, {"top", w.Top}} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return &transient.ValidationError{Field: w.field(c.name), Value: c.v, Reason: "must be finite"}
		}
	}
	if err := positive(w.field("radius"), w.Radius); err != nil {
		return err
	}
	return positive(w.field("rate"), w.Rate)
}

func (w Well) field(name string) string {
	if w.Name == "" {
		return "well." + name
	}
	return w.Name + "." + name
}

// Bottom is the elevation of the deepest perforation for a reservoir of
// thickness h.
func (w Well) Bottom(h float64) float64 {
	return w.Top - h
}

// Distance is the minimum distance from p to the trajectory: the planar
// offset, plus the vertical offset to the nearest perforation when p lies
// above or below the perforated interval.
func (w Well) Distance(p transient.Point, h float64) float64 {
	dx := p.X - w.X
	dy := p.Y - w.Y
	dz := 0.0
	switch bottom := w.Bottom(h); {
	case p.Z > w.Top:
		dz = p.Z - w.Top
	case p.Z < bottom:
		dz = bottom - p.Z
	}
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// FieldWell is a row of the well table in field units.
type FieldWell struct {
	Name         string   `yaml:"name" json:"name"`
	Kind         Kind     `yaml:"kind" json:"kind"`
	X            float64  `yaml:"x" json:"x"`
	Y            float64  `yaml:"y" json:"y"`
	Z            *float64 `yaml:"z,omitempty" json:"z,omitempty"`
	RadiusM      float64  `yaml:"radius_m" json:"radius_m"`
	RateM3PerDay float64  `yaml:"rate_m3_per_day" json:"rate_m3_per_day"`
}

// BuildWell converts a table row to SI. A missing Z places the top of the
// trajectory at the top of a reservoir of thickness h centred on z = 0.
func BuildWell(f FieldWell, h float64) (Well, error) {
	top := h / 2
	if f.Z != nil {
		top = *f.Z
	}
	return NewWell(f.Name, f.X, f.Y, top, f.RadiusM, f.RateM3PerDay*CubicMetrePerDay, f.Kind)
}
