package reservoir

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/drawdown/internal/transient"
)

func TestWellDistance(t *testing.T) {
	const h = 10.0
	w := Well{X: 1, Y: 2, Top: 5, Radius: 0.1, Rate: 1e-3}

	tests := []struct {
		name string
		p    transient.Point
		want float64
	}{
		{"inside interval", transient.Point{X: 4, Y: 6, Z: 0}, 5},
		{"at top", transient.Point{X: 4, Y: 6, Z: 5}, 5},
		{"above top", transient.Point{X: 1, Y: 2, Z: 8}, 3},
		{"below bottom", transient.Point{X: 4, Y: 6, Z: -17}, math.Sqrt(25 + 144)},
		{"on trajectory", transient.Point{X: 1, Y: 2, Z: -3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.Distance(tt.p, h)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %g, got %g", tt.want, got)
			}
		})
	}
}

func TestKindSign(t *testing.T) {
	if Producer.Sign() != 1 {
		t.Error("producer should add drawdown")
	}
	if Injector.Sign() != -1 {
		t.Error("injector should subtract drawdown")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"0", Producer},
		{"producer", Producer},
		{"1", Injector},
		{"Injector", Injector},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.in, tt.want, got)
		}
	}
	if _, err := ParseKind("2"); err == nil {
		t.Error("expected error for unknown kind code")
	}
}

func TestBuildWell(t *testing.T) {
	w, err := BuildWell(FieldWell{Name: "w1", X: 10, Y: -5, RadiusM: 0.1, RateM3PerDay: 86.4}, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Top != 4 {
		t.Errorf("expected default top 4, got %g", w.Top)
	}
	if math.Abs(w.Rate-1e-3) > 1e-15 {
		t.Errorf("expected rate 1e-3, got %g", w.Rate)
	}

	z := 2.0
	w, _ = BuildWell(FieldWell{Name: "w2", Z: &z, RadiusM: 0.1, RateM3PerDay: 10}, 8)
	if w.Top != 2 {
		t.Errorf("expected top 2, got %g", w.Top)
	}

	_, err = BuildWell(FieldWell{Name: "bad", RadiusM: 0, RateM3PerDay: 10}, 8)
	var vErr *transient.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "bad.radius" {
		t.Errorf("expected bad.radius validation error, got %v", err)
	}
}
