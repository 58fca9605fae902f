// Package laplace inverts Laplace-domain functions numerically with the
// Gaver-Stehfest algorithm.
//
// # Weights
//
// The Stehfest weights V_1..V_N depend only on the even degree N. They are
// always computed exactly with arbitrary-precision decimals and cached per
// degree:
//
//	V_i = (-1)^(i+N/2) Σ k^(N/2+1) C(2k,k) C(k,i-k) C(N/2,k) / (N/2)!
//
// # Precision
//
// The weighted sum (ln 2 / t) Σ V_i F(i ln 2 / t) alternates in sign and the
// weights grow combinatorially, so the sum loses digits to cancellation as
// N grows. Two summation modes are offered:
//
//   - Float64: fast, adequate up to MaxStableDegree
//   - Exact: decimal accumulation with a single division by (N/2)! at the end
//
// F itself is evaluated in float64 in both modes, so degrees above
// MaxStableDegree raise an InstabilityWarning either way. With Config.Cap
// the degree actually used is clamped to MaxStableDegree.
package laplace
