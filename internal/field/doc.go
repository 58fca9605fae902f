// Package field evaluates superposed well drawdown over time series and
// spatial grids.
//
// # Routing
//
// Each well contributes the single-well solution of the selected model at
// the distance from the observation point to its trajectory, scaled by its
// own rate and radius and signed by its kind:
//
//	Δp(x, t) = Σ_w sign(w) · Δp_w(dist(x, w), t)
//
// The line source is evaluated as one broadcast array expression per well.
// The finite-radius path inverts one Laplace transform per node and runs
// nodes on a bounded worker pool.
//
// # Singularities
//
// Non-finite values stay in the raw arrays (+Inf on a line-source
// trajectory, NaN at t = 0 or after a failed inversion) and are listed in
// Singular with their cause. Masked returns a copy with them replaced.
package field
