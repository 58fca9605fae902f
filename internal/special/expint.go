package special

import "math"

// EulerGamma is the Euler–Mascheroni constant.
const EulerGamma = 0.57721566490153286060651209008240243

const (
	expintEps     = 1e-16
	expintMaxIter = 500
	fpMin         = 1e-300
)

// E1 is the exponential integral E1(x) = ∫_x^∞ e^-u/u du for x ≥ 0.
// E1(0) = +Inf; negative or NaN arguments return NaN.
func E1(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return math.NaN()
	case x == 0:
		return math.Inf(1)
	case math.IsInf(x, 1):
		return 0
	case x <= 1:
		return e1Series(x)
	}
	return e1ContinuedFraction(x)
}

// E1(x) = -γ - ln x - Σ (-x)^k / (k·k!)
func e1Series(x float64) float64 {
	sum := 0.0
	term := 1.0
	for k := 1; k <= expintMaxIter; k++ {
		term *= -x / float64(k)
		d := -term / float64(k)
		sum += d
		if math.Abs(d) < math.Abs(sum)*expintEps {
			break
		}
	}
	return -EulerGamma - math.Log(x) + sum
}

// Modified Lentz evaluation of the continued fraction for x > 1.
func e1ContinuedFraction(x float64) float64 {
	b := x + 1
	c := 1 / fpMin
	d := 1 / b
	h := d
	for i := 1; i <= expintMaxIter; i++ {
		a := -float64(i * i)
		b += 2
		d = 1 / (a*d + b)
		c = b + a/c
		del := c * d
		h *= del
		if math.Abs(del-1) < expintEps {
			break
		}
	}
	return h * math.Exp(-x)
}

// Ei is the exponential integral Ei(x) = -PV∫_{-x}^∞ e^-u/u du.
// For x < 0, Ei(x) = -E1(-x); Ei(0) = -Inf.
func Ei(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x < 0:
		return -E1(-x)
	case x == 0:
		return math.Inf(-1)
	case x > 40:
		return eiAsymptotic(x)
	}
	sum := 0.0
	term := 1.0
	for k := 1; k <= expintMaxIter; k++ {
		term *= x / float64(k)
		d := term / float64(k)
		sum += d
		if d < sum*expintEps {
			break
		}
	}
	return EulerGamma + math.Log(x) + sum
}

// Ei(x) ~ e^x/x · Σ k!/x^k, truncated at the smallest term.
func eiAsymptotic(x float64) float64 {
	sum := 1.0
	term := 1.0
	for k := 1; k < 100; k++ {
		next := term * float64(k) / x
		if next > term {
			break
		}
		term = next
		sum += term
		if term < expintEps*sum {
			break
		}
	}
	return math.Exp(x) / x * sum
}
