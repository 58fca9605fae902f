// Package special evaluates the special functions of radial diffusion:
// the exponential integral and the modified Bessel functions of the second
// kind, K0 and K1, for complex arguments with |arg z| < π/2 - ArgMargin.
// K0 and K1 return NaN outside that sector.
//
// All functions are double precision. The Laplace-domain models only ever
// need ratios of K0 and K1, so exponentially scaled variants (K·e^z) are
// exported to keep those ratios finite where K itself underflows.
package special
