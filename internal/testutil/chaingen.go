// Package testutil provides shared helpers for chain equivalence tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/razeghi71/chainsimp/ast"
	"github.com/razeghi71/chainsimp/canon"
)

// MaxMagnitude bounds every intermediate value of generated chains so that
// evaluation over the test range never overflows int64.
const MaxMagnitude = 1e15

// Gen produces random well-typed chains.
type Gen struct {
	r        *rand.Rand
	MaxCalls int
	MaxDepth int
	MaxConst int64
}

// NewGen creates a deterministic generator for the given seed.
func NewGen(seed int64) *Gen {
	return &Gen{r: rand.New(rand.NewSource(seed)), MaxCalls: 5, MaxDepth: 3, MaxConst: 10}
}

// Chain returns a random chain whose values stay below MaxMagnitude for
// inputs of absolute value at most maxInput.
func (g *Gen) Chain(maxInput int64) *ast.Chain {
	for {
		n := 1 + g.r.Intn(g.MaxCalls)
		calls := make([]ast.Call, n)
		for i := range calls {
			if g.r.Intn(2) == 0 {
				calls[i] = &ast.Filter{Cond: g.Logic(g.MaxDepth)}
			} else {
				calls[i] = &ast.Map{Expr: g.Arith(g.MaxDepth)}
			}
		}
		c := ast.NewChain(calls...)
		if Bounded(c, maxInput) {
			return c
		}
	}
}

// Arith returns a random arithmetic expression of at most the given depth.
func (g *Gen) Arith(depth int) ast.Arith {
	if depth <= 0 || g.r.Intn(3) == 0 {
		if g.r.Intn(2) == 0 {
			return ast.Elem()
		}
		return ast.Int(g.r.Int63n(2*g.MaxConst+1) - g.MaxConst)
	}
	op := ast.ArithOp(g.r.Intn(3))
	return ast.Bin(g.Arith(depth-1), op, g.Arith(depth-1))
}

// Logic returns a random logic expression of at most the given depth.
func (g *Gen) Logic(depth int) ast.Logic {
	if depth <= 1 || g.r.Intn(2) == 0 {
		op := ast.CmpOp(g.r.Intn(3))
		return ast.Cmp(g.Arith(depth-1), op, g.Arith(depth-1))
	}
	op := ast.LogicOp(g.r.Intn(2))
	return &ast.BinaryLogic{Left: g.Logic(depth - 1), Op: op, Right: g.Logic(depth - 1)}
}

// Bounded reports whether every subexpression of chain, and of its
// canonical form, stays below MaxMagnitude for inputs up to maxInput.
func Bounded(chain *ast.Chain, maxInput int64) bool {
	limit := float64(maxInput)
	for _, call := range chain.Calls {
		switch c := call.(type) {
		case *ast.Map:
			// Each map sees the output of the previous one, so feed the
			// running bound forward.
			limit = bound(c.Expr, limit)
			if limit > MaxMagnitude {
				return false
			}
		case *ast.Filter:
			if logicBound(c.Cond, limit) > MaxMagnitude {
				return false
			}
		}
	}
	canonical := canon.Canonicalize(chain)
	f := canonical.Calls[0].(*ast.Filter)
	m := canonical.Calls[1].(*ast.Map)
	return logicBound(f.Cond, float64(maxInput)) <= MaxMagnitude &&
		bound(m.Expr, float64(maxInput)) <= MaxMagnitude
}

func bound(e ast.Arith, x float64) float64 {
	switch e := e.(type) {
	case *ast.Element:
		return x
	case *ast.Constant:
		return math.Abs(float64(e.Value))
	case *ast.BinaryArith:
		l, r := bound(e.Left, x), bound(e.Right, x)
		if e.Op == ast.Mul {
			return math.Max(l*r, math.Max(l, r))
		}
		return l + r
	}
	return math.Inf(1)
}

func logicBound(e ast.Logic, x float64) float64 {
	switch e := e.(type) {
	case *ast.Compare:
		return math.Max(bound(e.Left, x), bound(e.Right, x))
	case *ast.BinaryLogic:
		return math.Max(logicBound(e.Left, x), logicBound(e.Right, x))
	}
	return math.Inf(1)
}
