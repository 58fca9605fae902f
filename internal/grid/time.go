// Package grid builds the evaluation grids: time samples for drawdown curves
// and rectilinear spatial nodes for pressure maps.
package grid

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/drawdown/internal/transient"
)

// Spacing selects how samples are distributed between two bounds.
type Spacing int

const (
	Log Spacing = iota
	Linear
)

func (s Spacing) String() string {
	if s == Linear {
		return "linear"
	}
	return "log"
}

func ParseSpacing(s string) (Spacing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "log", "logarithmic":
		return Log, nil
	case "linear", "lin":
		return Linear, nil
	}
	return 0, fmt.Errorf("unknown spacing: %q (want log or linear)", s)
}

// TimeGrid is a strictly increasing sequence of positive times in seconds.
type TimeGrid struct {
	times []float64
}

// NewTimeGrid copies and validates ts.
func NewTimeGrid(ts []float64) (TimeGrid, error) {
	if len(ts) == 0 {
		return TimeGrid{}, &transient.ConfigurationError{Param: "time.points", Value: 0, Reason: "time grid is empty"}
	}
	for i, t := range ts {
		if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
			return TimeGrid{}, &transient.ConfigurationError{Param: fmt.Sprintf("time[%d]", i), Value: t, Reason: "must be finite and positive"}
		}
		if i > 0 && t <= ts[i-1] {
			return TimeGrid{}, &transient.ConfigurationError{Param: fmt.Sprintf("time[%d]", i), Value: t, Reason: "times must be strictly increasing"}
		}
	}
	return TimeGrid{times: append([]float64(nil), ts...)}, nil
}

// Span builds n samples from start to end inclusive.
func Span(start, end float64, n int, spacing Spacing) (TimeGrid, error) {
	if n < 1 {
		return TimeGrid{}, &transient.ConfigurationError{Param: "time.points", Value: float64(n), Reason: "need at least one sample"}
	}
	if n == 1 {
		return NewTimeGrid([]float64{start})
	}
	if !(start > 0) || !(end > start) {
		return TimeGrid{}, &transient.ConfigurationError{Param: "time.end", Value: end, Reason: fmt.Sprintf("need 0 < start (%g) < end", start)}
	}
	ts := make([]float64, n)
	if spacing == Linear {
		floats.Span(ts, start, end)
	} else {
		floats.LogSpan(ts, start, end)
	}
	return NewTimeGrid(ts)
}

// LogSpace is Span with logarithmic spacing.
func LogSpace(start, end float64, n int) (TimeGrid, error) {
	return Span(start, end, n, Log)
}

func (g TimeGrid) Times() []float64 { return append([]float64(nil), g.times...) }
func (g TimeGrid) Len() int         { return len(g.times) }
func (g TimeGrid) At(i int) float64 { return g.times[i] }
