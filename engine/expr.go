package engine

import (
	"fmt"

	"github.com/razeghi71/chainsimp/ast"
)

// Result is the outcome of evaluating a chain or expression for one input.
// OK is false when a filter dropped the value. Logic expressions yield 1 or 0.
type Result struct {
	Value int64
	OK    bool
}

// Evaluate evaluates a chain, call or expression against the input x.
func Evaluate(node ast.Node, x int64) Result {
	switch n := node.(type) {
	case *ast.Chain:
		v, ok := Run(n, x)
		return Result{Value: v, OK: ok}
	case *ast.Filter:
		if EvalLogic(n.Cond, x) {
			return Result{Value: x, OK: true}
		}
		return Result{}
	case *ast.Map:
		return Result{Value: EvalArith(n.Expr, x), OK: true}
	case ast.Logic:
		if EvalLogic(n, x) {
			return Result{Value: 1, OK: true}
		}
		return Result{Value: 0, OK: true}
	case ast.Arith:
		return Result{Value: EvalArith(n, x), OK: true}
	default:
		panic(fmt.Sprintf("engine: unknown node type %T", node))
	}
}

// Run evaluates chain for the input x. The second result is false when some
// filter dropped the value.
func Run(chain *ast.Chain, x int64) (int64, bool) {
	current := x
	for _, call := range chain.Calls {
		switch c := call.(type) {
		case *ast.Filter:
			if !EvalLogic(c.Cond, current) {
				return 0, false
			}
		case *ast.Map:
			current = EvalArith(c.Expr, current)
		}
	}
	return current, true
}

// EvalArith evaluates an arithmetic expression with Element bound to x.
// Arithmetic wraps on int64 overflow.
func EvalArith(expr ast.Arith, x int64) int64 {
	switch e := expr.(type) {
	case *ast.Element:
		return x
	case *ast.Constant:
		return e.Value
	case *ast.BinaryArith:
		return apply(e.Op, EvalArith(e.Left, x), EvalArith(e.Right, x))
	default:
		panic(fmt.Sprintf("engine: unknown arithmetic expression %T", expr))
	}
}

// EvalLogic evaluates a logic expression with Element bound to x.
func EvalLogic(expr ast.Logic, x int64) bool {
	switch e := expr.(type) {
	case *ast.Compare:
		return compare(e.Op, EvalArith(e.Left, x), EvalArith(e.Right, x))
	case *ast.BinaryLogic:
		left := EvalLogic(e.Left, x)
		if e.Op == ast.And {
			return left && EvalLogic(e.Right, x)
		}
		return left || EvalLogic(e.Right, x)
	default:
		panic(fmt.Sprintf("engine: unknown logic expression %T", expr))
	}
}

func apply(op ast.ArithOp, left, right int64) int64 {
	switch op {
	case ast.Add:
		return left + right
	case ast.Sub:
		return left - right
	case ast.Mul:
		return left * right
	}
	panic(fmt.Sprintf("engine: unknown arithmetic operator %d", op))
}

func compare(op ast.CmpOp, left, right int64) bool {
	switch op {
	case ast.Gt:
		return left > right
	case ast.Lt:
		return left < right
	case ast.Eq:
		return left == right
	}
	panic(fmt.Sprintf("engine: unknown comparison operator %d", op))
}

// ConstantValue evaluates an expression that contains no Element.
func ConstantValue(expr ast.Arith) int64 {
	return EvalArith(expr, 0)
}

// Holds evaluates a logic expression that contains no Element.
func Holds(expr ast.Logic) bool {
	return EvalLogic(expr, 0)
}
