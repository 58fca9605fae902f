package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/drawdown/internal/field"
	"github.com/san-kum/drawdown/internal/grid"
	"github.com/san-kum/drawdown/internal/laplace"
	"github.com/san-kum/drawdown/internal/reservoir"
	"github.com/san-kum/drawdown/internal/transient"
)

const (
	DefaultRate            = 79.488 // m³/day
	DefaultFVF             = 1.25
	DefaultPermeability    = 50.0 // mD
	DefaultThickness       = 9.144
	DefaultPorosity        = 0.3
	DefaultCompressibility = 0.00247 // 1/MPa
	DefaultViscosity       = 3.0     // cP
	DefaultPressure        = 34.47   // MPa
	DefaultRadius          = 0.1524

	DefaultTimeStart  = 0.1
	DefaultTimeEnd    = 1e4
	DefaultTimePoints = 100

	DefaultExtent     = 300.0
	DefaultGridPoints = 100
	DefaultFieldTime  = 1e8
)

type Config struct {
	Model       string                `yaml:"model"`
	Reservoir   reservoir.FieldUnits  `yaml:"reservoir"`
	Wells       []reservoir.FieldWell `yaml:"wells"`
	Observation ObservationConfig     `yaml:"observation"`
	Time        TimeConfig            `yaml:"time"`
	Grid        GridConfig            `yaml:"grid"`
	Inversion   InversionConfig       `yaml:"inversion"`
	Workers     int                   `yaml:"workers"`
}

type ObservationConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type TimeConfig struct {
	Start   float64 `yaml:"start"`
	End     float64 `yaml:"end"`
	Points  int     `yaml:"points"`
	Spacing string  `yaml:"spacing"`
}

type GridConfig struct {
	Plane  string  `yaml:"plane"`
	Extent float64 `yaml:"extent_m"`
	Points int     `yaml:"points"`
	Layers int     `yaml:"layers"`
	Fixed  float64 `yaml:"fixed_m"`
	Time   float64 `yaml:"time_s"`
}

type InversionConfig struct {
	Degree    int    `yaml:"degree"`
	Precision string `yaml:"precision"`
	Cap       bool   `yaml:"cap"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: transient.LineSource.String(),
		Reservoir: reservoir.FieldUnits{
			RateM3PerDay:          DefaultRate,
			FormationVolumeFactor: DefaultFVF,
			PermeabilityMD:        DefaultPermeability,
			ThicknessM:            DefaultThickness,
			Porosity:              DefaultPorosity,
			TotalCompressibility:  DefaultCompressibility,
			ViscosityCP:           DefaultViscosity,
			WellboreRadiusM:       DefaultRadius,
			InitialPressureMPa:    DefaultPressure,
		},
		Wells: []reservoir.FieldWell{
			{Name: "w1", Kind: reservoir.Producer, RadiusM: DefaultRadius, RateM3PerDay: DefaultRate},
		},
		Observation: ObservationConfig{X: DefaultRadius},
		Time: TimeConfig{
			Start:   DefaultTimeStart,
			End:     DefaultTimeEnd,
			Points:  DefaultTimePoints,
			Spacing: grid.Log.String(),
		},
		Grid: GridConfig{
			Plane:  grid.XY.String(),
			Extent: DefaultExtent,
			Points: DefaultGridPoints,
			Time:   DefaultFieldTime,
		},
		Inversion: InversionConfig{
			Degree:    laplace.DefaultDegree,
			Precision: laplace.Float64.String(),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// fluid + rock given without a total replace the default total
	var set struct {
		Reservoir struct {
			Total *float64 `yaml:"total_compressibility_per_mpa"`
			Fluid *float64 `yaml:"fluid_compressibility_per_mpa"`
			Rock  *float64 `yaml:"rock_compressibility_per_mpa"`
		} `yaml:"reservoir"`
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if r := set.Reservoir; r.Total == nil && (r.Fluid != nil || r.Rock != nil) {
		cfg.Reservoir.TotalCompressibility = 0
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) ModelKind() (transient.ModelKind, error) {
	return transient.ParseModelKind(c.Model)
}

// Params converts the reservoir section to validated SI parameters.
func (c *Config) Params() (reservoir.Params, error) {
	return reservoir.Build(c.Reservoir)
}

func (c *Config) WellSources() ([]reservoir.Well, error) {
	wells := make([]reservoir.Well, 0, len(c.Wells))
	for i, fw := range c.Wells {
		if fw.Name == "" {
			fw.Name = fmt.Sprintf("w%d", i+1)
		}
		w, err := reservoir.BuildWell(fw, c.Reservoir.ThicknessM)
		if err != nil {
			return nil, err
		}
		wells = append(wells, w)
	}
	return wells, nil
}

func (c *Config) ObservationPoint() transient.Point {
	return transient.Point{X: c.Observation.X, Y: c.Observation.Y, Z: c.Observation.Z}
}

func (c *Config) TimeGrid() (grid.TimeGrid, error) {
	spacing, err := grid.ParseSpacing(c.Time.Spacing)
	if err != nil {
		return grid.TimeGrid{}, err
	}
	return grid.Span(c.Time.Start, c.Time.End, c.Time.Points, spacing)
}

// SpatialGrid builds the configured plane; layers > 0 selects its own
// vertical resolution for xyz.
func (c *Config) SpatialGrid() (grid.SpatialGrid, error) {
	kind, err := grid.ParsePlane(c.Grid.Plane)
	if err != nil {
		return grid.SpatialGrid{}, err
	}
	if kind == grid.XYZ && c.Grid.Layers > 0 {
		return grid.Volume(c.Grid.Extent, c.Grid.Points, c.Grid.Layers, c.Reservoir.ThicknessM)
	}
	return grid.Plane(kind, c.Grid.Extent, c.Grid.Points, c.Reservoir.ThicknessM, c.Grid.Fixed)
}

func (c *Config) InversionSettings() (laplace.Config, error) {
	prec, err := laplace.ParsePrecision(c.Inversion.Precision)
	if err != nil {
		return laplace.Config{}, err
	}
	return laplace.Config{Degree: c.Inversion.Degree, Precision: prec, Cap: c.Inversion.Cap}, nil
}

// Evaluator wires every section into a ready field.Evaluator.
func (c *Config) Evaluator(logger *log.Logger) (*field.Evaluator, error) {
	kind, err := c.ModelKind()
	if err != nil {
		return nil, err
	}
	params, err := c.Params()
	if err != nil {
		return nil, err
	}
	wells, err := c.WellSources()
	if err != nil {
		return nil, err
	}
	inv, err := c.InversionSettings()
	if err != nil {
		return nil, err
	}
	return field.New(params, wells, field.Config{
		Model:     kind,
		Inversion: inv,
		Workers:   c.Workers,
		Logger:    logger,
	})
}
