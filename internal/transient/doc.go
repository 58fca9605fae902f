// Package transient provides the shared primitives of the pressure-transient
// engine.
//
// The package defines the vocabulary every other package speaks:
//
//   - [ModelKind]: selects the line-source or finite-radius solution
//   - [Point]: an observation location in reservoir coordinates (m)
//   - [LaplaceFunc]: a Laplace-domain function of the complex frequency s
//   - [Inverter]: numerical inversion of a [LaplaceFunc] at one time
//
// and the error kinds raised at the API boundary:
//
//   - [ValidationError]: a physical parameter is out of range
//   - [ConfigurationError]: a numerical setting or argument is unusable
//   - [InstabilityWarning]: an inversion degree risks cancellation
//   - [Singularity]: a localized non-finite result inside a batch
//
// # Units
//
// Everything past the reservoir.Build boundary is SI: metres, seconds,
// pascals, m³/s, m², Pa·s and 1/Pa.
package transient
