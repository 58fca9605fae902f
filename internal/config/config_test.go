package config

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/san-kum/drawdown/internal/laplace"
	"github.com/san-kum/drawdown/internal/reservoir"
	"github.com/san-kum/drawdown/internal/transient"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	kind, err := cfg.ModelKind()
	if err != nil || kind != transient.LineSource {
		t.Errorf("expected line source, got %v (%v)", kind, err)
	}
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("default params: %v", err)
	}
	if p.WellboreRadius() != DefaultRadius {
		t.Errorf("expected radius %g, got %g", DefaultRadius, p.WellboreRadius())
	}
	tg, err := cfg.TimeGrid()
	if err != nil {
		t.Fatalf("default time grid: %v", err)
	}
	if tg.Len() != DefaultTimePoints {
		t.Errorf("expected %d samples, got %d", DefaultTimePoints, tg.Len())
	}
	sg, err := cfg.SpatialGrid()
	if err != nil {
		t.Fatalf("default grid: %v", err)
	}
	if sg.Len() != DefaultGridPoints*DefaultGridPoints {
		t.Errorf("expected %d nodes, got %d", DefaultGridPoints*DefaultGridPoints, sg.Len())
	}
	wells, err := cfg.WellSources()
	if err != nil {
		t.Fatalf("default wells: %v", err)
	}
	if len(wells) != 1 || wells[0].Top != DefaultThickness/2 {
		t.Errorf("unexpected default wells %+v", wells)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `
model: finite_radius
reservoir:
  permeability_md: 120
  total_compressibility_per_mpa: 0
  fluid_compressibility_per_mpa: 0.002
  rock_compressibility_per_mpa: 0.0005
wells:
  - name: a
    kind: "0"
    x: 10
    y: 0
    radius_m: 0.1
    rate_m3_per_day: 50
  - kind: injector
    x: -10
    y: 0
    z: 2
    radius_m: 0.1
    rate_m3_per_day: 50
inversion:
  degree: 16
  precision: exact
workers: 2
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Reservoir.PermeabilityMD != 120 {
		t.Errorf("expected 120 mD, got %g", cfg.Reservoir.PermeabilityMD)
	}
	if cfg.Reservoir.ViscosityCP != DefaultViscosity {
		t.Errorf("unset viscosity should keep default, got %g", cfg.Reservoir.ViscosityCP)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if want := 0.0025 * reservoir.PerMegapascal; p.TotalCompressibility() < want*0.999999 || p.TotalCompressibility() > want*1.000001 {
		t.Errorf("expected summed compressibility %g, got %g", want, p.TotalCompressibility())
	}

	wells, err := cfg.WellSources()
	if err != nil {
		t.Fatalf("wells: %v", err)
	}
	if len(wells) != 2 {
		t.Fatalf("expected 2 wells, got %d", len(wells))
	}
	if wells[0].Kind != reservoir.Producer || wells[1].Kind != reservoir.Injector {
		t.Errorf("unexpected kinds %v %v", wells[0].Kind, wells[1].Kind)
	}
	if wells[1].Name != "w2" || wells[1].Top != 2 {
		t.Errorf("expected default name w2 and top 2, got %q %g", wells[1].Name, wells[1].Top)
	}

	e, err := cfg.Evaluator(log.New(io.Discard))
	if err != nil {
		t.Fatalf("evaluator: %v", err)
	}
	if e.Model() != transient.FiniteRadius {
		t.Errorf("expected finite radius, got %s", e.Model())
	}
}

func writeScenario(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCompressibility(t *testing.T) {
	tests := []struct {
		name string
		data string
		want float64 // 1/MPa
	}{
		{"default total", "model: line_source\n", DefaultCompressibility},
		{"fluid and rock only", "reservoir:\n  fluid_compressibility_per_mpa: 0.00147\n  rock_compressibility_per_mpa: 0.01\n", 0.01147},
		{"rock only", "reservoir:\n  rock_compressibility_per_mpa: 0.004\n", 0.004},
		{"total wins", "reservoir:\n  total_compressibility_per_mpa: 0.003\n  fluid_compressibility_per_mpa: 0.002\n", 0.003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeScenario(t, tt.data))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			p, err := cfg.Params()
			if err != nil {
				t.Fatalf("params: %v", err)
			}
			want := tt.want * reservoir.PerMegapascal
			if got := p.TotalCompressibility(); math.Abs(got-want) > 1e-9*want {
				t.Errorf("expected ct %g, got %g", want, got)
			}
		})
	}
}

func TestInversionSettings(t *testing.T) {
	cfg, err := Load(writeScenario(t, "inversion:\n  degree: 20\n  precision: exact\n  cap: true\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	inv, err := cfg.InversionSettings()
	if err != nil {
		t.Fatalf("inversion: %v", err)
	}
	if inv.Degree != 20 || inv.Precision != laplace.Exact || !inv.Cap {
		t.Errorf("unexpected inversion settings %+v", inv)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("doublet")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Wells) != 2 || loaded.Wells[1].Kind != reservoir.Injector {
		t.Errorf("wells did not survive round trip: %+v", loaded.Wells)
	}
}

func TestBadSections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		check  func(*Config) error
	}{
		{"model", func(c *Config) { c.Model = "numerical" }, func(c *Config) error { _, err := c.ModelKind(); return err }},
		{"precision", func(c *Config) { c.Inversion.Precision = "quad" }, func(c *Config) error { _, err := c.InversionSettings(); return err }},
		{"plane", func(c *Config) { c.Grid.Plane = "ab" }, func(c *Config) error { _, err := c.SpatialGrid(); return err }},
		{"spacing", func(c *Config) { c.Time.Spacing = "cubic" }, func(c *Config) error { _, err := c.TimeGrid(); return err }},
		{"porosity", func(c *Config) { c.Reservoir.Porosity = 1.5 }, func(c *Config) error { _, err := c.Params(); return err }},
		{"well radius", func(c *Config) { c.Wells[0].RadiusM = 0 }, func(c *Config) error { _, err := c.WellSources(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := tt.check(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPresetsBuild(t *testing.T) {
	names := ListPresets()
	if len(names) != 4 {
		t.Fatalf("expected 4 presets, got %v", names)
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("%s: nil preset", name)
		}
		if _, err := cfg.Evaluator(log.New(io.Discard)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestGetPresetIsACopy(t *testing.T) {
	a := GetPreset("five_spot")
	a.Wells[0].X = 999
	b := GetPreset("five_spot")
	if b.Wells[0].X == 999 {
		t.Error("presets must not share state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}
