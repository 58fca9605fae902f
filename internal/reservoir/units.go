package reservoir

// Fixed field-unit conversion factors to SI.
const (
	Millidarcy       = 1e-15       // m² per mD
	PerMegapascal    = 1e-6        // 1/Pa per 1/MPa
	Centipoise       = 1e-3        // Pa·s per cP
	Megapascal       = 1e6         // Pa per MPa
	CubicMetrePerDay = 1.0 / 86400 // m³/s per m³/day
)

// FieldUnits is the raw geological/fluid input in the units engineers type
// into a data table.
//
// Either TotalCompressibility or FluidCompressibility+RockCompressibility is
// required; the total wins when both are set.
type FieldUnits struct {
	RateM3PerDay          float64 `yaml:"rate_m3_per_day" json:"rate_m3_per_day"`
	FormationVolumeFactor float64 `yaml:"formation_volume_factor" json:"formation_volume_factor"`
	PermeabilityMD        float64 `yaml:"permeability_md" json:"permeability_md"`
	ThicknessM            float64 `yaml:"thickness_m" json:"thickness_m"`
	Porosity              float64 `yaml:"porosity" json:"porosity"`
	TotalCompressibility  float64 `yaml:"total_compressibility_per_mpa" json:"total_compressibility_per_mpa"`
	FluidCompressibility  float64 `yaml:"fluid_compressibility_per_mpa" json:"fluid_compressibility_per_mpa"`
	RockCompressibility   float64 `yaml:"rock_compressibility_per_mpa" json:"rock_compressibility_per_mpa"`
	ViscosityCP           float64 `yaml:"viscosity_cp" json:"viscosity_cp"`
	WellboreRadiusM       float64 `yaml:"wellbore_radius_m" json:"wellbore_radius_m"`
	InitialPressureMPa    float64 `yaml:"initial_pressure_mpa" json:"initial_pressure_mpa"`
}

// SI converts the record with the fixed conversion factors without validating it.
func (f FieldUnits) SI() Properties {
	ct := f.TotalCompressibility
	if ct == 0 {
		ct = f.FluidCompressibility + f.RockCompressibility
	}
	return Properties{
		Rate:                  f.RateM3PerDay * CubicMetrePerDay,
		FormationVolumeFactor: f.FormationVolumeFactor,
		Permeability:          f.PermeabilityMD * Millidarcy,
		Thickness:             f.ThicknessM,
		Porosity:              f.Porosity,
		TotalCompressibility:  ct * PerMegapascal,
		Viscosity:             f.ViscosityCP * Centipoise,
		WellboreRadius:        f.WellboreRadiusM,
		InitialPressure:       f.InitialPressureMPa * Megapascal,
	}
}

// Build converts field units to SI and validates the result.
func Build(f FieldUnits) (Params, error) {
	return New(f.SI())
}
