package config

import (
	"sort"

	"github.com/san-kum/drawdown/internal/reservoir"
)

var Presets = map[string]func() *Config{
	"reference": func() *Config {
		cfg := DefaultConfig()
		cfg.Time = TimeConfig{Start: 1, End: 1e4, Points: 60, Spacing: "log"}
		return cfg
	},
	"doublet": func() *Config {
		cfg := DefaultConfig()
		cfg.Wells = []reservoir.FieldWell{
			well("prod", reservoir.Producer, -100, 0),
			well("inj", reservoir.Injector, 100, 0),
		}
		cfg.Observation = ObservationConfig{X: 0, Y: 50}
		cfg.Time.End = 1e7
		cfg.Grid.Time = 1e7
		return cfg
	},
	"symmetric": func() *Config {
		cfg := DefaultConfig()
		cfg.Wells = []reservoir.FieldWell{
			well("east", reservoir.Producer, 50, 0),
			well("west", reservoir.Producer, -50, 0),
		}
		cfg.Observation = ObservationConfig{}
		cfg.Time.End = 1e7
		return cfg
	},
	"five_spot": func() *Config {
		cfg := DefaultConfig()
		cfg.Wells = []reservoir.FieldWell{
			well("inj", reservoir.Injector, 0, 0),
			well("ne", reservoir.Producer, 150, 150),
			well("nw", reservoir.Producer, -150, 150),
			well("sw", reservoir.Producer, -150, -150),
			well("se", reservoir.Producer, 150, -150),
		}
		cfg.Wells[0].RateM3PerDay = 4 * DefaultRate
		cfg.Observation = ObservationConfig{X: 75, Y: 75}
		cfg.Time.End = 1e7
		cfg.Grid.Time = 1e7
		return cfg
	},
}

func well(name string, kind reservoir.Kind, x, y float64) reservoir.FieldWell {
	return reservoir.FieldWell{Name: name, Kind: kind, X: x, Y: y, RadiusM: DefaultRadius, RateM3PerDay: DefaultRate}
}

// GetPreset returns a fresh copy of the named scenario, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
