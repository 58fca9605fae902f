package special

import (
	"math"
	"math/cmplx"
)

// Region boundaries on |z|: power series below seriesLimit, trapezoidal
// quadrature of the integral representation up to asymptoticLimit, and the
// Hankel asymptotic expansion beyond.
const (
	seriesLimit     = 2.0
	asymptoticLimit = 25.0

	besselEps     = 1e-17
	besselMaxIter = 300

	// Trapezoid step for ∫_0^∞ e^{-z(cosh u - 1)} cosh(νu) du. The error is
	// O(exp(-2π(π/2-|arg z|)/h)), so the step shrinks with π/2-|arg z|.
	quadStep    = 0.1
	quadDigits  = 45.0
	quadMaxIter = 20000

	// ArgMargin is how close to the imaginary axis |arg z| may get; closer
	// arguments are outside the domain.
	ArgMargin = 0.01
)

// K0 is the modified Bessel function of the second kind of order zero.
func K0(z complex128) complex128 {
	k0, _ := kPair(z)
	return k0
}

// K1 is the modified Bessel function of the second kind of order one.
func K1(z complex128) complex128 {
	_, k1 := kPair(z)
	return k1
}

// K0Scaled returns e^z·K0(z).
func K0Scaled(z complex128) complex128 {
	k0, _ := kPairScaled(z)
	return k0
}

// K1Scaled returns e^z·K1(z).
func K1Scaled(z complex128) complex128 {
	_, k1 := kPairScaled(z)
	return k1
}

// K0Real and K1Real are the real-axis conveniences; x must be positive.
func K0Real(x float64) float64 { return real(K0(complex(x, 0))) }
func K1Real(x float64) float64 { return real(K1(complex(x, 0))) }

func kPair(z complex128) (complex128, complex128) {
	if bad, v := outsideDomain(z); bad {
		return v, v
	}
	if cmplx.Abs(z) <= seriesLimit {
		return kSeries(z)
	}
	k0, k1 := kPairScaled(z)
	e := cmplx.Exp(-z)
	return k0 * e, k1 * e
}

func kPairScaled(z complex128) (complex128, complex128) {
	if bad, v := outsideDomain(z); bad {
		return v, v
	}
	switch a := cmplx.Abs(z); {
	case a <= seriesLimit:
		k0, k1 := kSeries(z)
		e := cmplx.Exp(z)
		return k0 * e, k1 * e
	case a < asymptoticLimit:
		return kQuadrature(z)
	}
	return kAsymptotic(z, 0), kAsymptotic(z, 1)
}

// outsideDomain flags z = 0 and arguments with |arg z| ≥ π/2 - ArgMargin:
// the branch cut, the left half plane and the band along the imaginary
// axis where the quadrature stops converging.
func outsideDomain(z complex128) (bool, complex128) {
	switch {
	case cmplx.IsNaN(z):
		return true, cmplx.NaN()
	case z == 0:
		return true, cmplx.Inf()
	case real(z) <= 0, math.Abs(cmplx.Phase(z)) >= math.Pi/2-ArgMargin:
		return true, cmplx.NaN()
	}
	return false, 0
}

// kSeries evaluates K0 and K1 from their ascending series around
// I0 = Σ q^k/(k!)² and I1 = z/2·Σ q^k/(k!(k+1)!), q = z²/4.
func kSeries(z complex128) (complex128, complex128) {
	q := z * z / 4
	lg := cmplx.Log(z / 2)

	t0, t1 := complex(1, 0), complex(1, 0)
	var i0, s0, i1, s1 complex128
	h := 0.0
	for k := 0; k < besselMaxIter; k++ {
		if k > 0 {
			fk := float64(k)
			t0 *= q / complex(fk*fk, 0)
			t1 *= q / complex(fk*(fk+1), 0)
			h += 1 / fk
		}
		i0 += t0
		s0 += t0 * complex(h, 0)
		// ψ(k+1) + ψ(k+2)
		psi := 2*(h-EulerGamma) + 1/float64(k+1)
		i1 += t1
		s1 += t1 * complex(psi, 0)
		if k > 2 && cmplx.Abs(t0) < besselEps*cmplx.Abs(i0) && cmplx.Abs(t1) < besselEps*cmplx.Abs(i1) {
			break
		}
	}

	I0 := i0
	I1 := z / 2 * i1
	k0 := -(lg+EulerGamma)*I0 + s0
	k1 := 1/z + lg*I1 - z/4*s1
	return k0, k1
}

// kQuadrature integrates e^z·Kν(z) = ∫_0^∞ e^{-z(cosh u - 1)} cosh(νu) du
// with the trapezoidal rule, which converges geometrically for this
// analytic, doubly exponentially decaying integrand.
func kQuadrature(z complex128) (complex128, complex128) {
	step := math.Min(quadStep, 2*math.Pi*(math.Pi/2-math.Abs(cmplx.Phase(z)))/quadDigits)
	s0, s1 := complex(0.5, 0), complex(0.5, 0)
	for k := 1; k < quadMaxIter; k++ {
		u := float64(k) * step
		ch := math.Cosh(u)
		w := cmplx.Exp(-z * complex(ch-1, 0))
		s0 += w
		s1 += w * complex(ch, 0)
		if cmplx.Abs(w)*ch < besselEps*cmplx.Abs(s1) {
			break
		}
	}
	h := complex(step, 0)
	return h * s0, h * s1
}

// kAsymptotic is the Hankel expansion e^z·Kν(z) ~ √(π/2z)·Σ a_k(ν)/z^k,
// truncated at its smallest term.
func kAsymptotic(z complex128, nu int) complex128 {
	mu := float64(4 * nu * nu)
	a := complex(1, 0)
	sum := a
	prev := math.Inf(1)
	for k := 1; k < 60; k++ {
		odd := float64(2*k - 1)
		next := a * complex(mu-odd*odd, 0) / (complex(float64(8*k), 0) * z)
		if cmplx.Abs(next) > prev {
			break
		}
		a = next
		sum += a
		prev = cmplx.Abs(a)
		if prev < besselEps*cmplx.Abs(sum) {
			break
		}
	}
	return cmplx.Sqrt(complex(math.Pi/2, 0)/z) * sum
}
