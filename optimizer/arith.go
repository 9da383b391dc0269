package optimizer

import "github.com/razeghi71/chainsimp/ast"

// Comments use e for element and c, k for literals.

// rewriteArith rewrites left op right whose operands are already simplified.
func rewriteArith(left ast.Arith, op ast.ArithOp, right ast.Arith) ast.Arith {
	if r := foldElements(left, op, right); r != nil {
		return r
	}
	if r := foldConstants(left, op, right); r != nil {
		return r
	}
	if r := identity(left, op, right); r != nil {
		return r
	}
	if r := combineConstant(left, op, right); r != nil {
		return r
	}
	if r := expandProduct(left, op, right); r != nil {
		return r
	}
	return ast.Bin(left, op, right)
}

// e op e
func foldElements(left ast.Arith, op ast.ArithOp, right ast.Arith) ast.Arith {
	if !ast.IsElement(left) || !ast.IsElement(right) {
		return nil
	}
	switch op {
	case ast.Add:
		return ast.Bin(ast.Elem(), ast.Mul, ast.Int(2))
	case ast.Sub:
		return ast.Int(0)
	}
	// e*e is the quadratic term and stays.
	return nil
}

// c1 op c2
func foldConstants(left ast.Arith, op ast.ArithOp, right ast.Arith) ast.Arith {
	a, lok := ast.ConstValue(left)
	b, rok := ast.ConstValue(right)
	if !lok || !rok {
		return nil
	}
	v, ok := applyExact(op, a, b)
	if !ok {
		return nil
	}
	return ast.Int(v)
}

// x+0, 0+x, x-0, x*1, 1*x, x*0, 0*x
func identity(left ast.Arith, op ast.ArithOp, right ast.Arith) ast.Arith {
	l, lok := ast.ConstValue(left)
	r, rok := ast.ConstValue(right)
	switch op {
	case ast.Add:
		if rok && r == 0 {
			return left
		}
		if lok && l == 0 {
			return right
		}
	case ast.Sub:
		if rok && r == 0 {
			return left
		}
	case ast.Mul:
		if (rok && r == 0) || (lok && l == 0) {
			return ast.Int(0)
		}
		if rok && r == 1 {
			return left
		}
		if lok && l == 1 {
			return right
		}
	}
	return nil
}

// combineConstant pushes a literal operand into a binary operand.
func combineConstant(left ast.Arith, op ast.ArithOp, right ast.Arith) ast.Arith {
	if c, ok := ast.ConstValue(right); ok {
		if bin, ok := left.(*ast.BinaryArith); ok {
			switch op {
			case ast.Add:
				return shift(bin, c)
			case ast.Sub:
				if k, ok := negExact(c); ok {
					return shift(bin, k)
				}
				return nil
			case ast.Mul:
				return scale(bin, c)
			}
		}
		return nil
	}
	if c, ok := ast.ConstValue(left); ok {
		if bin, ok := right.(*ast.BinaryArith); ok {
			switch op {
			case ast.Add:
				return shift(bin, c)
			case ast.Sub:
				return subtractFrom(c, bin)
			case ast.Mul:
				return scale(bin, c)
			}
		}
	}
	return nil
}

// affine matches x+c, c+x, x-c and c-x, returning x, c and whether x is
// negated.
func affine(bin *ast.BinaryArith) (x ast.Arith, c int64, negated, ok bool) {
	switch bin.Op {
	case ast.Add:
		if c, ok := ast.ConstValue(bin.Right); ok {
			return bin.Left, c, false, true
		}
		if c, ok := ast.ConstValue(bin.Left); ok {
			return bin.Right, c, false, true
		}
	case ast.Sub:
		if c, ok := ast.ConstValue(bin.Right); ok {
			if n, ok := negExact(c); ok {
				return bin.Left, n, false, true
			}
			return nil, 0, false, false
		}
		if c, ok := ast.ConstValue(bin.Left); ok {
			return bin.Right, c, true, true
		}
	}
	return nil, 0, false, false
}

// shift rewrites bin + k.
//
//	(x + c) + k -> x + (c+k)
//	(c - x) + k -> (c+k) - x
//	x + -k      -> x - k
func shift(bin *ast.BinaryArith, k int64) ast.Arith {
	x, c, negated, ok := affine(bin)
	if !ok {
		if k < 0 {
			if n, ok := negExact(k); ok {
				return ast.Bin(bin, ast.Sub, ast.Int(n))
			}
		}
		return nil
	}
	sum, ok := addExact(c, k)
	if !ok {
		return nil
	}
	if negated {
		return ast.Bin(ast.Int(sum), ast.Sub, x)
	}
	return addConst(x, sum)
}

// subtractFrom rewrites k - bin.
//
//	k - (x + c) -> (k-c) - x
//	k - (c - x) -> x + (k-c)
func subtractFrom(k int64, bin *ast.BinaryArith) ast.Arith {
	x, c, negated, ok := affine(bin)
	if !ok {
		return nil
	}
	diff, ok := subExact(k, c)
	if !ok {
		return nil
	}
	if negated {
		return addConst(x, diff)
	}
	return ast.Bin(ast.Int(diff), ast.Sub, x)
}

// addConst builds x + v with the sign moved into the operator.
func addConst(x ast.Arith, v int64) ast.Arith {
	switch {
	case v == 0:
		return x
	case v > 0:
		return ast.Bin(x, ast.Add, ast.Int(v))
	}
	if n, ok := negExact(v); ok {
		return ast.Bin(x, ast.Sub, ast.Int(n))
	}
	return ast.Bin(x, ast.Add, ast.Int(v))
}

// scale rewrites bin * k.
//
//	(a +- b) * k -> (a*k) +- (b*k)
//	(x * c) * k  -> x * (c*k)
func scale(bin *ast.BinaryArith, k int64) ast.Arith {
	switch bin.Op {
	case ast.Add, ast.Sub:
		left := rewriteArith(bin.Left, ast.Mul, ast.Int(k))
		right := rewriteArith(bin.Right, ast.Mul, ast.Int(k))
		return ast.Bin(left, bin.Op, right)
	case ast.Mul:
		if c, ok := ast.ConstValue(bin.Right); ok {
			if p, ok := mulExact(c, k); ok {
				return rewriteArith(bin.Left, ast.Mul, ast.Int(p))
			}
			return nil
		}
		if c, ok := ast.ConstValue(bin.Left); ok {
			if p, ok := mulExact(c, k); ok {
				return rewriteArith(ast.Int(p), ast.Mul, bin.Right)
			}
		}
	}
	return nil
}

// linear matches the degree-one factors e+c, c+e, e-c, c-e, e*c, c*e and
// e+e as a*e + b.
func linear(e ast.Arith) (a, b int64, ok bool) {
	bin, isBin := e.(*ast.BinaryArith)
	if !isBin {
		return 0, 0, false
	}
	if ast.IsElement(bin.Left) && ast.IsElement(bin.Right) {
		switch bin.Op {
		case ast.Add:
			return 2, 0, true
		case ast.Sub:
			return 0, 0, true
		}
		return 0, 0, false
	}

	var c int64
	var constLeft bool
	switch {
	case ast.IsElement(bin.Left):
		if c, ok = ast.ConstValue(bin.Right); !ok {
			return 0, 0, false
		}
	case ast.IsElement(bin.Right):
		if c, ok = ast.ConstValue(bin.Left); !ok {
			return 0, 0, false
		}
		constLeft = true
	default:
		return 0, 0, false
	}

	switch bin.Op {
	case ast.Add:
		return 1, c, true
	case ast.Sub:
		if constLeft {
			return -1, c, true
		}
		if n, ok := negExact(c); ok {
			return 1, n, true
		}
		return 0, 0, false
	}
	return c, 0, true
}

// expandProduct multiplies out two degree-one factors:
//
//	(a1*e + b1) * (a2*e + b2) -> (a1a2)*(e*e) + (a1b2+a2b1)*e + b1b2
func expandProduct(left ast.Arith, op ast.ArithOp, right ast.Arith) ast.Arith {
	if op != ast.Mul {
		return nil
	}
	a1, b1, ok := linear(left)
	if !ok {
		return nil
	}
	a2, b2, ok := linear(right)
	if !ok {
		return nil
	}

	quad, ok1 := mulExact(a1, a2)
	x, ok2 := mulExact(a1, b2)
	y, ok3 := mulExact(a2, b1)
	lin, ok4 := addExact(x, y)
	free, ok5 := mulExact(b1, b2)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return nil
	}
	return polynomial(quad, lin, free)
}

// polynomial builds a*(e*e) + b*e + c, dropping zero terms and unit
// coefficients.
func polynomial(a, b, c int64) ast.Arith {
	var sum ast.Arith
	if a != 0 {
		sq := ast.Bin(ast.Elem(), ast.Mul, ast.Elem())
		if a == 1 {
			sum = sq
		} else {
			sum = ast.Bin(ast.Int(a), ast.Mul, sq)
		}
	}
	if b != 0 {
		n, negOK := negExact(b)
		switch {
		case sum == nil:
			sum = monomial(b)
		case b < 0 && negOK:
			sum = ast.Bin(sum, ast.Sub, monomial(n))
		default:
			sum = ast.Bin(sum, ast.Add, monomial(b))
		}
	}
	if sum == nil {
		return ast.Int(c)
	}
	return addConst(sum, c)
}

// monomial builds b*e.
func monomial(b int64) ast.Arith {
	if b == 1 {
		return ast.Elem()
	}
	return ast.Bin(ast.Int(b), ast.Mul, ast.Elem())
}
