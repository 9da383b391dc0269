package optimizer

import (
	"github.com/razeghi71/chainsimp/ast"
	"github.com/razeghi71/chainsimp/engine"
)

// rewriteCompare rewrites left op right whose operands are already simplified.
func rewriteCompare(left ast.Arith, op ast.CmpOp, right ast.Arith) ast.Logic {
	if ast.IsConstant(left) && ast.IsConstant(right) {
		if engine.Holds(ast.Cmp(left, op, right)) {
			return ast.True()
		}
		return ast.False()
	}

	// e > e and e < e never hold, e = e always does.
	if ast.IsElement(left) && ast.IsElement(right) {
		if op == ast.Eq {
			return ast.True()
		}
		return ast.False()
	}

	if k, ok := ast.ConstValue(right); ok {
		if bin, ok := left.(*ast.BinaryArith); ok && hasElement(bin) {
			if r := isolate(bin, op, k); r != nil {
				return r
			}
		}
	}
	if k, ok := ast.ConstValue(left); ok {
		if bin, ok := right.(*ast.BinaryArith); ok && hasElement(bin) {
			if r := isolate(bin, op.Reversed(), k); r != nil {
				return r
			}
		}
	}
	return ast.Cmp(left, op, right)
}

// isolate moves the constant parts of bin across the comparison bin op k.
// It returns nil when nothing can be moved.
func isolate(bin *ast.BinaryArith, op ast.CmpOp, k int64) ast.Logic {
	if ast.IsElement(bin.Left) && ast.IsElement(bin.Right) {
		if bin.Op == ast.Mul {
			return square(op, k)
		}
		return nil
	}

	if bin.Op == ast.Mul {
		return isolateProduct(bin, op, k)
	}

	x, c, negated, ok := affine(bin)
	if !ok {
		return nil
	}
	if negated {
		// c - x op k  <=>  x op' c - k
		v, ok := subExact(c, k)
		if !ok {
			return nil
		}
		return rewriteCompare(x, op.Reversed(), ast.Int(v))
	}
	// x + c op k  <=>  x op k - c
	v, ok := subExact(k, c)
	if !ok {
		return nil
	}
	return rewriteCompare(x, op, ast.Int(v))
}

// isolateProduct divides x*c op k by c when the division is exact.
func isolateProduct(bin *ast.BinaryArith, op ast.CmpOp, k int64) ast.Logic {
	x, c := bin.Left, bin.Right
	if ast.IsConstant(x) {
		x, c = c, x
	}
	m, ok := ast.ConstValue(c)
	if !ok || m == 0 {
		return nil
	}
	q, ok := divExact(k, m)
	if !ok {
		return nil
	}
	if m < 0 {
		op = op.Reversed()
	}
	return rewriteCompare(x, op, ast.Int(q))
}

// square solves e*e op k over the integers.
func square(op ast.CmpOp, k int64) ast.Logic {
	e := ast.Elem
	switch op {
	case ast.Gt:
		if k < 0 {
			return ast.True()
		}
		r, perfect := isqrt(k)
		if !perfect {
			return nil
		}
		return &ast.BinaryLogic{
			Left:  ast.Cmp(e(), ast.Lt, ast.Int(-r)),
			Op:    ast.Or,
			Right: ast.Cmp(e(), ast.Gt, ast.Int(r)),
		}
	case ast.Lt:
		if k <= 0 {
			return ast.False()
		}
		r, perfect := isqrt(k)
		if !perfect {
			return nil
		}
		return &ast.BinaryLogic{
			Left:  ast.Cmp(e(), ast.Gt, ast.Int(-r)),
			Op:    ast.And,
			Right: ast.Cmp(e(), ast.Lt, ast.Int(r)),
		}
	case ast.Eq:
		if k < 0 {
			return ast.False()
		}
		r, perfect := isqrt(k)
		if !perfect {
			return nil
		}
		if r == 0 {
			return ast.Cmp(e(), ast.Eq, ast.Int(0))
		}
		return &ast.BinaryLogic{
			Left:  ast.Cmp(e(), ast.Eq, ast.Int(-r)),
			Op:    ast.Or,
			Right: ast.Cmp(e(), ast.Eq, ast.Int(r)),
		}
	}
	return nil
}
