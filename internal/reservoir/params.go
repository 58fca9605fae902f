package reservoir

import (
	"math"

	"github.com/san-kum/drawdown/internal/transient"
)

// Properties is the raw SI input record for New. Every field is in SI.
type Properties struct {
	Rate                  float64 // m³/s
	FormationVolumeFactor float64 // m³/m³
	Permeability          float64 // m²
	Thickness             float64 // m
	Porosity              float64 // fraction in (0,1]
	TotalCompressibility  float64 // 1/Pa
	Viscosity             float64 // Pa·s
	WellboreRadius        float64 // m
	InitialPressure       float64 // Pa
}

// Params is an immutable, validated set of reservoir and fluid properties.
// A parameter change constructs a new value.
type Params struct {
	rate        float64
	fvf         float64
	perm        float64
	thickness   float64
	porosity    float64
	ct          float64
	viscosity   float64
	rw          float64
	pi          float64
	diffusivity float64
}

// New validates p and derives the diffusivity k/(μ·φ·ct).
func New(p Properties) (Params, error) {
	checks := []struct {
		name  string
		value float64
	}{
		{"rate", p.Rate},
		{"formation_volume_factor", p.FormationVolumeFactor},
		{"permeability", p.Permeability},
		{"thickness", p.Thickness},
		{"total_compressibility", p.TotalCompressibility},
		{"viscosity", p.Viscosity},
		{"wellbore_radius", p.WellboreRadius},
	}
	for _, c := range checks {
		if err := positive(c.name, c.value); err != nil {
			return Params{}, err
		}
	}
	if math.IsNaN(p.Porosity) || p.Porosity <= 0 || p.Porosity > 1 {
		return Params{}, &transient.ValidationError{Field: "porosity", Value: p.Porosity, Reason: "must be in (0,1]"}
	}
	if math.IsNaN(p.InitialPressure) || math.IsInf(p.InitialPressure, 0) || p.InitialPressure < 0 {
		return Params{}, &transient.ValidationError{Field: "initial_pressure", Value: p.InitialPressure, Reason: "must be finite and non-negative"}
	}

	return Params{
		rate:        p.Rate,
		fvf:         p.FormationVolumeFactor,
		perm:        p.Permeability,
		thickness:   p.Thickness,
		porosity:    p.Porosity,
		ct:          p.TotalCompressibility,
		viscosity:   p.Viscosity,
		rw:          p.WellboreRadius,
		pi:          p.InitialPressure,
		diffusivity: p.Permeability / (p.Viscosity * p.Porosity * p.TotalCompressibility),
	}, nil
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &transient.ValidationError{Field: name, Value: v, Reason: "must be finite and strictly positive"}
	}
	return nil
}

func (p Params) Rate() float64                  { return p.rate }
func (p Params) FormationVolumeFactor() float64 { return p.fvf }
func (p Params) Permeability() float64          { return p.perm }
func (p Params) Thickness() float64             { return p.thickness }
func (p Params) Porosity() float64              { return p.porosity }
func (p Params) TotalCompressibility() float64  { return p.ct }
func (p Params) Viscosity() float64             { return p.viscosity }
func (p Params) WellboreRadius() float64        { return p.rw }
func (p Params) InitialPressure() float64       { return p.pi }

// Diffusivity is η = k/(μ·φ·ct) in m²/s.
func (p Params) Diffusivity() float64 { return p.diffusivity }

// Properties returns the SI record this value was built from.
func (p Params) Properties() Properties {
	return Properties{
		Rate:                  p.rate,
		FormationVolumeFactor: p.fvf,
		Permeability:          p.perm,
		Thickness:             p.thickness,
		Porosity:              p.porosity,
		TotalCompressibility:  p.ct,
		Viscosity:             p.viscosity,
		WellboreRadius:        p.rw,
		InitialPressure:       p.pi,
	}
}

// WithWell returns a copy carrying the rate and radius of one well.
func (p Params) WithWell(rate, radius float64) (Params, error) {
	props := p.Properties()
	props.Rate = rate
	props.WellboreRadius = radius
	return New(props)
}

// PressureScale is qBμ/(2πkh), the pressure unit of the dimensionless
// solutions (Pa).
func (p Params) PressureScale() float64 {
	return p.rate * p.fvf * p.viscosity / (2 * math.Pi * p.perm * p.thickness)
}

// DimensionlessTime is t_D = η·t/rw².
func (p Params) DimensionlessTime(t float64) float64 {
	return p.diffusivity * t / (p.rw * p.rw)
}
