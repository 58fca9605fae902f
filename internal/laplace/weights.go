package laplace

import (
	"sync"

	"github.com/shopspring/decimal"
)

// weightSet holds the exact integer numerators of one degree's weights and
// their common denominator (N/2)!.
type weightSet struct {
	numerators []decimal.Decimal
	scale      decimal.Decimal
	floats     []float64
}

var weightCache sync.Map // int -> *weightSet

func weightsFor(degree int) *weightSet {
	if w, ok := weightCache.Load(degree); ok {
		return w.(*weightSet)
	}
	w := computeWeights(degree)
	actual, _ := weightCache.LoadOrStore(degree, w)
	return actual.(*weightSet)
}

func computeWeights(degree int) *weightSet {
	m := degree / 2
	scale := factorial(m)

	ws := &weightSet{
		numerators: make([]decimal.Decimal, degree),
		scale:      scale,
		floats:     make([]float64, degree),
	}
	for i := 1; i <= degree; i++ {
		sum := decimal.Zero
		for k := (i + 1) / 2; k <= min(i, m); k++ {
			term := intPow(k, m+1).Mul(binomial(2*k, k)).Mul(binomial(k, i-k)).Mul(binomial(m, k))
			sum = sum.Add(term)
		}
		if (i+m)%2 != 0 {
			sum = sum.Neg()
		}
		ws.numerators[i-1] = sum
		ws.floats[i-1] = sum.DivRound(scale, 40).InexactFloat64()
	}
	return ws
}

func intPow(base, exp int) decimal.Decimal {
	b := decimal.NewFromInt(int64(base))
	p := decimal.NewFromInt(1)
	for ; exp > 0; exp-- {
		p = p.Mul(b)
	}
	return p
}

func factorial(n int) decimal.Decimal {
	f := decimal.NewFromInt(1)
	for i := 2; i <= n; i++ {
		f = f.Mul(decimal.NewFromInt(int64(i)))
	}
	return f
}

// binomial builds C(n,k) as a running product; each partial quotient is an
// integer, so rounding to zero places is exact.
func binomial(n, k int) decimal.Decimal {
	if k < 0 || k > n {
		return decimal.Zero
	}
	k = min(k, n-k)
	c := decimal.NewFromInt(1)
	for i := 0; i < k; i++ {
		c = c.Mul(decimal.NewFromInt(int64(n - i))).DivRound(decimal.NewFromInt(int64(i+1)), 0)
	}
	return c
}
