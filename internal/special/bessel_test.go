package special

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestKRealKnownValues(t *testing.T) {
	tests := []struct {
		x, k0, k1 float64
	}{
		{0.1, 2.4270690247020166, 9.853844780870606},
		{1, 0.42102443824070834, 0.6019072301972346},
		{2, 0.11389387274953344, 0.13986588181652243},
		{5, 0.0036910983340425942, 0.004044613445452164},
		{10, 1.778006231616917e-05, 1.864877345382558e-05},
		{30, 2.132477496463056e-14, 2.1677320018915498e-14},
	}

	for _, tt := range tests {
		if got := K0Real(tt.x); math.Abs(got-tt.k0)/tt.k0 > 1e-12 {
			t.Errorf("K0(%g): expected %.16g, got %.16g", tt.x, tt.k0, got)
		}
		if got := K1Real(tt.x); math.Abs(got-tt.k1)/tt.k1 > 1e-12 {
			t.Errorf("K1(%g): expected %.16g, got %.16g", tt.x, tt.k1, got)
		}
	}
}

func TestKComplexKnownValues(t *testing.T) {
	tests := []struct {
		z, k0, k1 complex128
	}{
		{complex(1, 1), complex(0.08019772694651772, -0.3572774592853303), complex(0.024568305523740286, -0.4597194738011894)},
		{complex(0.5, -0.5), complex(0.5529723109255746, 0.5996419478565946), complex(0.5784533638220992, 1.082858215818214)},
		{complex(3, 2), complex(-0.02078722558742977, -0.02431266356716766), complex(-0.02480952007015153, -0.025570749056351802)},
	}

	for _, tt := range tests {
		if got := K0(tt.z); cmplx.Abs(got-tt.k0)/cmplx.Abs(tt.k0) > 1e-11 {
			t.Errorf("K0(%v): expected %v, got %v", tt.z, tt.k0, got)
		}
		if got := K1(tt.z); cmplx.Abs(got-tt.k1)/cmplx.Abs(tt.k1) > 1e-11 {
			t.Errorf("K1(%v): expected %v, got %v", tt.z, tt.k1, got)
		}
	}
}

func TestKRegionsAgree(t *testing.T) {
	// series vs quadrature just around |z| = 2
	for _, z := range []complex128{complex(2, 0), complex(1.9, 0.5), complex(1.5, -1.4), complex(2.2, 0.3)} {
		s0, s1 := kSeries(z)
		e := cmplx.Exp(z)
		q0, q1 := kQuadrature(z)
		if d := cmplx.Abs(s0*e-q0) / cmplx.Abs(q0); d > 1e-12 {
			t.Errorf("K0 series/quadrature mismatch at %v: %g", z, d)
		}
		if d := cmplx.Abs(s1*e-q1) / cmplx.Abs(q1); d > 1e-12 {
			t.Errorf("K1 series/quadrature mismatch at %v: %g", z, d)
		}
	}

	// quadrature vs asymptotic around |z| = 25
	for _, z := range []complex128{complex(25, 0), complex(20, 15), complex(18, -17)} {
		q0, q1 := kQuadrature(z)
		a0, a1 := kAsymptotic(z, 0), kAsymptotic(z, 1)
		if d := cmplx.Abs(q0-a0) / cmplx.Abs(a0); d > 1e-12 {
			t.Errorf("K0 quadrature/asymptotic mismatch at %v: %g", z, d)
		}
		if d := cmplx.Abs(q1-a1) / cmplx.Abs(a1); d > 1e-12 {
			t.Errorf("K1 quadrature/asymptotic mismatch at %v: %g", z, d)
		}
	}
}

func TestKConjugateSymmetry(t *testing.T) {
	for _, z := range []complex128{complex(0.7, 0.3), complex(4, 3), complex(40, 10)} {
		a := K0(cmplx.Conj(z))
		b := cmplx.Conj(K0(z))
		if cmplx.Abs(a-b) > 1e-14*cmplx.Abs(a) {
			t.Errorf("K0(conj z) != conj K0(z) at %v", z)
		}
	}
}

func TestKScaledAvoidsUnderflow(t *testing.T) {
	z := complex(1000, 0)
	if K0(z) != 0 {
		t.Errorf("K0(1000) should underflow, got %v", K0(z))
	}
	s := real(K0Scaled(z))
	want := math.Sqrt(math.Pi / 2000)
	if math.Abs(s-want)/want > 1e-3 {
		t.Errorf("scaled K0(1000): expected ~%g, got %g", want, s)
	}
	ratio := real(K1Scaled(z)) / s
	if ratio < 1 || ratio > 1.001 {
		t.Errorf("K1/K0 at 1000 should be just above 1, got %g", ratio)
	}
}

func TestKOutsideDomain(t *testing.T) {
	if !cmplx.IsNaN(K0(complex(-1, 0))) {
		t.Error("K0 on the negative real axis should be NaN")
	}
	if !cmplx.IsInf(K1(0)) {
		t.Error("K1(0) should be Inf")
	}
	near := cmplx.Rect(5, math.Pi/2-ArgMargin/2)
	if !cmplx.IsNaN(K0(near)) || !cmplx.IsNaN(K1Scaled(near)) {
		t.Error("arguments next to the imaginary axis should be NaN")
	}
}

func TestKQuadratureSteepArguments(t *testing.T) {
	for _, arg := range []float64{1.3, 1.45, 1.52, -1.52} {
		// the series and the Hankel expansion do not depend on arg z
		z := cmplx.Rect(2.5, arg)
		s0, s1 := kSeries(z)
		e := cmplx.Exp(z)
		q0, q1 := kQuadrature(z)
		if d := cmplx.Abs(s0*e-q0) / cmplx.Abs(q0); d > 1e-10 {
			t.Errorf("arg %g: K0 quadrature vs series rel diff %.2e", arg, d)
		}
		if d := cmplx.Abs(s1*e-q1) / cmplx.Abs(q1); d > 1e-10 {
			t.Errorf("arg %g: K1 quadrature vs series rel diff %.2e", arg, d)
		}

		z = cmplx.Rect(24, arg)
		q0, q1 = kQuadrature(z)
		if d := cmplx.Abs(kAsymptotic(z, 0)-q0) / cmplx.Abs(q0); d > 1e-10 {
			t.Errorf("arg %g: K0 quadrature vs asymptotic rel diff %.2e", arg, d)
		}
		if d := cmplx.Abs(kAsymptotic(z, 1)-q1) / cmplx.Abs(q1); d > 1e-10 {
			t.Errorf("arg %g: K1 quadrature vs asymptotic rel diff %.2e", arg, d)
		}
	}
}

func BenchmarkK0Quadrature(b *testing.B) {
	z := complex(7.5, 1.5)
	for i := 0; i < b.N; i++ {
		_ = K0Scaled(z)
	}
}
