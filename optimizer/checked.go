package optimizer

import (
	"math"

	"github.com/razeghi71/chainsimp/ast"
)

// Exact int64 arithmetic. Each helper reports false instead of wrapping, so
// the optimizer never folds a constant that evaluation would not reproduce.

func addExact(a, b int64) (int64, bool) {
	s := a + b
	return s, (b > 0) == (s > a)
}

func subExact(a, b int64) (int64, bool) {
	d := a - b
	return d, (b > 0) == (d < a)
}

func mulExact(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	return p, p/b == a
}

func negExact(a int64) (int64, bool) {
	if a == math.MinInt64 {
		return 0, false
	}
	return -a, true
}

// divExact returns a/b when b divides a.
func divExact(a, b int64) (int64, bool) {
	if b == 0 || a%b != 0 {
		return 0, false
	}
	if a == math.MinInt64 && b == -1 {
		return 0, false
	}
	return a / b, true
}

func applyExact(op ast.ArithOp, a, b int64) (int64, bool) {
	switch op {
	case ast.Add:
		return addExact(a, b)
	case ast.Sub:
		return subExact(a, b)
	case ast.Mul:
		return mulExact(a, b)
	}
	return 0, false
}

// isqrt returns the integer square root of k >= 0 and whether k is a
// perfect square.
func isqrt(k int64) (int64, bool) {
	if k < 0 {
		return 0, false
	}
	r := int64(math.Sqrt(float64(k)))
	for r > 0 {
		if sq, ok := mulExact(r, r); ok && sq <= k {
			break
		}
		r--
	}
	for {
		sq, ok := mulExact(r+1, r+1)
		if !ok || sq > k {
			break
		}
		r++
	}
	return r, r*r == k
}
