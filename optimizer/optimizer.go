// Package optimizer simplifies canonical call chains with algebraic rewrite
// rules. It performs a single bottom-up sweep: children are simplified first,
// then the parent is matched against an ordered list of rules and the first
// match replaces it. Every rule preserves the result of the chain for every
// input whose evaluation does not overflow int64.
package optimizer

import (
	"github.com/razeghi71/chainsimp/ast"
	"github.com/razeghi71/chainsimp/engine"
)

// Optimize returns a chain equivalent to chain that is usually smaller.
// chain is not modified and the result shares no nodes with it.
func Optimize(chain *ast.Chain) *ast.Chain {
	calls := make([]ast.Call, len(chain.Calls))
	for i, call := range chain.Calls {
		calls[i] = simplifyCall(call)
	}

	// Nothing survives a filter that never holds, so the rest of the chain
	// is unobservable.
	if len(calls) > 0 {
		if f, ok := calls[0].(*ast.Filter); ok && alwaysFalse(f.Cond) {
			return RejectAll()
		}
	}
	return ast.NewChain(calls...)
}

// RejectAll is the canonical chain that drops every input.
func RejectAll() *ast.Chain {
	return ast.Canonical(ast.False(), ast.Elem())
}

func simplifyCall(call ast.Call) ast.Call {
	switch c := call.(type) {
	case *ast.Filter:
		return &ast.Filter{Cond: SimplifyLogic(c.Cond)}
	case *ast.Map:
		return &ast.Map{Expr: SimplifyArith(c.Expr)}
	}
	return ast.Copy(call)
}

// SimplifyLogic simplifies a logic expression bottom-up.
func SimplifyLogic(e ast.Logic) ast.Logic {
	switch e := e.(type) {
	case *ast.BinaryLogic:
		return rewriteLogic(SimplifyLogic(e.Left), e.Op, SimplifyLogic(e.Right))
	case *ast.Compare:
		return rewriteCompare(SimplifyArith(e.Left), e.Op, SimplifyArith(e.Right))
	}
	return ast.Copy(e)
}

// SimplifyArith simplifies an arithmetic expression bottom-up.
func SimplifyArith(e ast.Arith) ast.Arith {
	switch e := e.(type) {
	case *ast.BinaryArith:
		return rewriteArith(SimplifyArith(e.Left), e.Op, SimplifyArith(e.Right))
	case *ast.Element:
		return ast.Elem()
	case *ast.Constant:
		return ast.Int(e.Value)
	}
	return ast.Copy(e)
}

// constCompare reports whether e compares two literals.
func constCompare(e ast.Logic) bool {
	c, ok := e.(*ast.Compare)
	return ok && ast.IsConstant(c.Left) && ast.IsConstant(c.Right)
}

// alwaysTrue reports whether e compares two literals and holds.
func alwaysTrue(e ast.Logic) bool {
	return constCompare(e) && engine.Holds(e)
}

// alwaysFalse reports whether e compares two literals and does not hold.
func alwaysFalse(e ast.Logic) bool {
	return constCompare(e) && !engine.Holds(e)
}

// hasElement reports whether e refers to the stream element.
func hasElement(e ast.Arith) bool {
	switch e := e.(type) {
	case *ast.Element:
		return true
	case *ast.BinaryArith:
		return hasElement(e.Left) || hasElement(e.Right)
	}
	return false
}
