package transient

import (
	"errors"
	"testing"
)

func TestParseModelKind(t *testing.T) {
	tests := []struct {
		in   string
		want ModelKind
	}{
		{"line_source", LineSource},
		{"Line-Source", LineSource},
		{"ei", LineSource},
		{"finite_radius", FiniteRadius},
		{" laplace ", FiniteRadius},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModelKind(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if _, err := ParseModelKind("radial"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestModelKindRoundTrip(t *testing.T) {
	for _, name := range ModelNames() {
		k, err := ParseModelKind(name)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if k.String() != name {
			t.Errorf("expected %s, got %s", name, k.String())
		}
	}
}

func TestErrorKindsUnwrap(t *testing.T) {
	var err error = &ValidationError{Field: "porosity", Value: 1.5, Reason: "must be in (0,1]"}
	if !errors.Is(err, ErrValidation) {
		t.Error("validation error should unwrap to ErrValidation")
	}
	if errors.Is(err, ErrConfiguration) {
		t.Error("validation error must not match ErrConfiguration")
	}

	err = &ConfigurationError{Param: "degree", Value: 7, Reason: "must be even"}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatal("expected ConfigurationError")
	}
	if cfgErr.Param != "degree" {
		t.Errorf("expected param degree, got %s", cfgErr.Param)
	}
}

func TestInstabilityWarningString(t *testing.T) {
	w := InstabilityWarning{Requested: 24, Used: 18, Limit: 18}
	if got := w.String(); got == "" {
		t.Error("expected non-empty warning text")
	}
}
