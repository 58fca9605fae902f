package laplace

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/san-kum/drawdown/internal/transient"
)

const (
	// DefaultDegree balances accuracy against cancellation in float64.
	DefaultDegree = 12
	// MaxStableDegree is the largest degree that does not raise a warning.
	MaxStableDegree = 18
	// MaxDegree bounds the weight computation.
	MaxDegree = 64
)

// Precision selects how the weighted sum is accumulated. Exact sums the
// exact weights against the samples in decimal, which removes weight
// rounding only: the samples F(k·ln2/t) are still float64, so the
// cancellation in the alternating sum remains and degrees above
// MaxStableDegree stay unstable in both modes.
type Precision int

const (
	Float64 Precision = iota
	Exact
)

func (p Precision) String() string {
	switch p {
	case Float64:
		return "float64"
	case Exact:
		return "exact"
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float64", "float", "double":
		return Float64, nil
	case "exact", "decimal", "arbitrary":
		return Exact, nil
	}
	return 0, fmt.Errorf("unknown precision: %q (want float64 or exact)", s)
}

func (p Precision) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Precision) UnmarshalText(b []byte) error {
	parsed, err := ParsePrecision(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Config describes one inverter.
type Config struct {
	Degree    int
	Precision Precision
	// Cap clamps degrees above MaxStableDegree instead of only warning.
	Cap bool
}

func DefaultConfig() Config {
	return Config{Degree: DefaultDegree, Precision: Float64}
}

// Stehfest is an immutable inverter, safe for concurrent use.
type Stehfest struct {
	degree    int
	precision Precision
	weights   *weightSet
	warning   *transient.InstabilityWarning
}

var _ transient.Inverter = (*Stehfest)(nil)

// New validates cfg and prepares the weights.
func New(cfg Config) (*Stehfest, error) {
	n := cfg.Degree
	switch {
	case n < 2:
		return nil, &transient.ConfigurationError{Param: "degree", Value: float64(n), Reason: "must be at least 2"}
	case n%2 != 0:
		return nil, &transient.ConfigurationError{Param: "degree", Value: float64(n), Reason: "must be even"}
	case n > MaxDegree:
		return nil, &transient.ConfigurationError{Param: "degree", Value: float64(n), Reason: fmt.Sprintf("must not exceed %d", MaxDegree)}
	}
	if cfg.Precision != Float64 && cfg.Precision != Exact {
		return nil, &transient.ConfigurationError{Param: "precision", Value: float64(cfg.Precision), Reason: "unknown summation precision"}
	}

	var warning *transient.InstabilityWarning
	if n > MaxStableDegree {
		used := n
		if cfg.Cap {
			used = MaxStableDegree
		}
		warning = &transient.InstabilityWarning{Requested: n, Used: used, Limit: MaxStableDegree}
		n = used
	}

	return &Stehfest{
		degree:    n,
		precision: cfg.Precision,
		weights:   weightsFor(n),
		warning:   warning,
	}, nil
}

// Degree is the degree actually used.
func (s *Stehfest) Degree() int          { return s.degree }
func (s *Stehfest) Precision() Precision { return s.precision }

// Warning is non-nil when the requested degree exceeded MaxStableDegree.
func (s *Stehfest) Warning() *transient.InstabilityWarning { return s.warning }

// Weights returns a copy of V_1..V_N rounded to float64.
func (s *Stehfest) Weights() []float64 {
	return append([]float64(nil), s.weights.floats...)
}

// Invert approximates the inverse transform of f at t > 0. A non-finite
// sample of f yields NaN and an error wrapping transient.ErrNonFinite.
func (s *Stehfest) Invert(f transient.LaplaceFunc, t float64) (float64, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return math.NaN(), &transient.ConfigurationError{Param: "t", Value: t, Reason: "inversion time must be finite and positive"}
	}

	a := math.Ln2 / t
	samples := make([]float64, s.degree)
	for i := range samples {
		v := real(f(complex(float64(i+1)*a, 0)))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.NaN(), fmt.Errorf("F(%g) = %g: %w", float64(i+1)*a, v, transient.ErrNonFinite)
		}
		samples[i] = v
	}

	var sum float64
	if s.precision == Exact {
		sum = s.exactSum(samples)
	} else {
		for i, v := range samples {
			sum += s.weights.floats[i] * v
		}
	}

	out := a * sum
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return math.NaN(), fmt.Errorf("stehfest sum at t=%g: %w", t, transient.ErrNonFinite)
	}
	return out, nil
}

func (s *Stehfest) exactSum(samples []float64) float64 {
	acc := decimal.Zero
	for i, v := range samples {
		acc = acc.Add(s.weights.numerators[i].Mul(decimal.NewFromFloat(v)))
	}
	return acc.DivRound(s.weights.scale, 40).InexactFloat64()
}

// Invert is a one-shot float64 inversion at the given degree. Use New to
// observe instability warnings.
func Invert(f transient.LaplaceFunc, t float64, degree int) (float64, error) {
	s, err := New(Config{Degree: degree, Precision: Float64})
	if err != nil {
		return math.NaN(), err
	}
	return s.Invert(f, t)
}
