// Package canon reduces any call chain to the equivalent two-stage chain
// filter{F}%>%map{M}.
package canon

import "github.com/razeghi71/chainsimp/ast"

// Canonicalize returns a chain [Filter(F), Map(M)] that, for every input,
// drops exactly the values chain drops and otherwise yields the same output.
// The input chain is not modified.
func Canonicalize(chain *ast.Chain) *ast.Chain {
	cond := ComposeFilters(chain)
	if cond == nil {
		cond = ast.True()
	}
	expr := ComposeMaps(chain)
	if expr == nil {
		expr = ast.Elem()
	}
	return ast.Canonical(cond, expr)
}

// ComposeMaps folds the maps of chain left to right into a single
// expression over the chain input. It returns nil if chain has no map.
func ComposeMaps(chain *ast.Chain) ast.Arith {
	var acc ast.Arith
	for _, call := range chain.Calls {
		m, ok := call.(*ast.Map)
		if !ok {
			continue
		}
		if acc == nil {
			acc = ast.Copy(m.Expr)
		} else {
			acc = ast.Substitute(acc, m.Expr)
		}
	}
	return acc
}

// ComposeFilters folds the filters of chain right to left into a single
// condition over the chain input. Each map met on the way is substituted
// into everything accumulated to its right. It returns nil if chain has no
// filter.
func ComposeFilters(chain *ast.Chain) ast.Logic {
	var acc ast.Logic
	for i := len(chain.Calls) - 1; i >= 0; i-- {
		switch c := chain.Calls[i].(type) {
		case *ast.Filter:
			if acc == nil {
				acc = ast.Copy(c.Cond)
			} else {
				acc = &ast.BinaryLogic{Left: ast.Copy(c.Cond), Op: ast.And, Right: acc}
			}
		case *ast.Map:
			if acc != nil {
				acc = ast.Substitute(c.Expr, acc)
			}
		}
	}
	return acc
}
