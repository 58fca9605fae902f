package field_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/drawdown/internal/reservoir"
)

func TestField(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Field Suite")
}

var quiet = log.New(io.Discard)

func referenceParams() reservoir.Params {
	p, err := reservoir.New(reservoir.Properties{
		Rate:                  0.00092,
		FormationVolumeFactor: 1.25,
		Permeability:          50e-15,
		Thickness:             9.144,
		Porosity:              0.3,
		TotalCompressibility:  2.47e-9,
		Viscosity:             3e-3,
		WellboreRadius:        0.1524,
		InitialPressure:       34.47e6,
	})
	Expect(err).NotTo(HaveOccurred())
	return p
}

func producer(name string, x, y float64) reservoir.Well {
	return reservoir.Well{Name: name, X: x, Y: y, Top: 9.144 / 2, Radius: 0.1524, Rate: 0.00092, Kind: reservoir.Producer}
}

func injector(name string, x, y float64) reservoir.Well {
	w := producer(name, x, y)
	w.Kind = reservoir.Injector
	return w
}
