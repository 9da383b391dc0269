package optimizer

import "github.com/razeghi71/chainsimp/ast"

// rewriteLogic rewrites left op right whose operands are already simplified.
func rewriteLogic(left ast.Logic, op ast.LogicOp, right ast.Logic) ast.Logic {
	if r := absorb(left, op, right); r != nil {
		return r
	}
	if r := merge(left, op, right); r != nil {
		return r
	}
	return &ast.BinaryLogic{Left: left, Op: op, Right: right}
}

// absorb applies the identity and annihilator laws when one side is a
// constant comparison.
func absorb(left ast.Logic, op ast.LogicOp, right ast.Logic) ast.Logic {
	for _, side := range [2]struct{ fixed, other ast.Logic }{{left, right}, {right, left}} {
		switch {
		case alwaysFalse(side.fixed) && op == ast.And:
			return ast.False()
		case alwaysFalse(side.fixed):
			return side.other
		case alwaysTrue(side.fixed) && op == ast.Or:
			return ast.True()
		case alwaysTrue(side.fixed):
			return side.other
		}
	}
	return nil
}

// standard matches e op k and k op e, returning the relation with element on
// the left.
func standard(l ast.Logic) (ast.CmpOp, int64, bool) {
	c, ok := l.(*ast.Compare)
	if !ok {
		return 0, 0, false
	}
	if ast.IsElement(c.Left) {
		if k, ok := ast.ConstValue(c.Right); ok {
			return c.Op, k, true
		}
	}
	if ast.IsElement(c.Right) {
		if k, ok := ast.ConstValue(c.Left); ok {
			return c.Op.Reversed(), k, true
		}
	}
	return 0, 0, false
}

// merge combines two relations on element into one where the result is a
// single relation. Unions of disjoint or unbounded ranges are left alone.
func merge(left ast.Logic, op ast.LogicOp, right ast.Logic) ast.Logic {
	lop, lk, ok := standard(left)
	if !ok {
		return nil
	}
	rop, rk, ok := standard(right)
	if !ok {
		return nil
	}
	rel := func(op ast.CmpOp, k int64) ast.Logic {
		return ast.Cmp(ast.Elem(), op, ast.Int(k))
	}

	if lk == rk {
		switch {
		case lop == rop:
			return rel(lop, lk)
		case op == ast.And:
			return ast.False()
		}
		return nil
	}

	hiOp, hi, loOp, lo := lop, lk, rop, rk
	if hi < lo {
		hiOp, hi, loOp, lo = rop, rk, lop, lk
	}

	switch {
	case hiOp == ast.Lt && loOp == ast.Lt:
		if op == ast.And {
			return rel(ast.Lt, lo)
		}
		return rel(ast.Lt, hi)
	case hiOp == ast.Gt && loOp == ast.Gt:
		if op == ast.And {
			return rel(ast.Gt, hi)
		}
		return rel(ast.Gt, lo)
	case op == ast.Or:
		return nil
	case hiOp == ast.Lt && loOp == ast.Eq:
		return rel(ast.Eq, lo)
	case hiOp == ast.Eq && loOp == ast.Gt:
		return rel(ast.Eq, hi)
	case hiOp == ast.Lt && loOp == ast.Gt:
		return nil
	}
	// e = hi or e > hi cannot meet e < lo or e = lo.
	return ast.False()
}
