package transient

import (
	"errors"
	"fmt"
)

// Domain errors for pressure-transient operations.
var (
	// ErrValidation indicates a physical parameter outside its valid range.
	ErrValidation = errors.New("transient: invalid physical parameter")

	// ErrConfiguration indicates an unusable numerical setting or argument.
	ErrConfiguration = errors.New("transient: invalid configuration")

	// ErrNonFinite indicates a kernel produced NaN or Inf where a finite
	// value was required.
	ErrNonFinite = errors.New("transient: non-finite value")
)

// ValidationError reports which physical quantity failed validation.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s=%g: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConfigurationError reports which numerical setting or argument is unusable.
type ConfigurationError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("bad %s=%g: %s", e.Param, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// InstabilityWarning is returned alongside a usable inverter when the
// requested degree exceeds the stable limit of the summation precision.
type InstabilityWarning struct {
	Requested int
	Used      int
	Limit     int
}

func (w InstabilityWarning) String() string {
	if w.Used != w.Requested {
		return fmt.Sprintf("stehfest degree %d exceeds stable limit %d; capped to %d", w.Requested, w.Limit, w.Used)
	}
	return fmt.Sprintf("stehfest degree %d exceeds stable limit %d; expect cancellation error", w.Requested, w.Limit)
}

// Cause classifies a Singularity.
type Cause int

const (
	// AtSource marks a node on a well trajectory (r = 0).
	AtSource Cause = iota
	// AtTimeZero marks an evaluation at t = 0.
	AtTimeZero
	// InversionFailed marks a Laplace inversion that did not yield a finite value.
	InversionFailed
)

func (c Cause) String() string {
	switch c {
	case AtSource:
		return "observation point on well trajectory"
	case AtTimeZero:
		return "evaluation at t=0"
	case InversionFailed:
		return "laplace inversion produced a non-finite value"
	}
	return "unknown"
}

// Singularity marks one sample of a batch whose value is not finite.
// Index is the flat index into the result array.
type Singularity struct {
	Index int
	Time  float64
	Cause Cause
}

func (s Singularity) String() string {
	return fmt.Sprintf("sample %d (t=%g): %s", s.Index, s.Time, s.Cause)
}
