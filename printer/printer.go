// Package printer renders call chains back to their textual form.
package printer

import (
	"strconv"
	"strings"

	"github.com/razeghi71/chainsimp/ast"
)

// Separator joins the stages of a rendered chain.
const Separator = "%>%"

// Format renders a chain, call or expression, e.g.
// "filter{(element>0)}%>%map{(element*element)}".
func Format(n ast.Node) string {
	var sb strings.Builder
	ast.Visit(n, writer(&sb))
	return sb.String()
}

func writer(sb *strings.Builder) *ast.Visitor[struct{}] {
	var none struct{}
	v := &ast.Visitor[struct{}]{}
	binary := func(left ast.Node, op string, right ast.Node) struct{} {
		sb.WriteByte('(')
		ast.Visit(left, v)
		sb.WriteString(op)
		ast.Visit(right, v)
		sb.WriteByte(')')
		return none
	}

	v.Chain = func(c *ast.Chain) struct{} {
		for i, call := range c.Calls {
			if i > 0 {
				sb.WriteString(Separator)
			}
			ast.Visit(call, v)
		}
		return none
	}
	v.Filter = func(f *ast.Filter) struct{} {
		sb.WriteString("filter{")
		ast.Visit(f.Cond, v)
		sb.WriteByte('}')
		return none
	}
	v.Map = func(m *ast.Map) struct{} {
		sb.WriteString("map{")
		ast.Visit(m.Expr, v)
		sb.WriteByte('}')
		return none
	}
	v.BinaryLogic = func(e *ast.BinaryLogic) struct{} {
		return binary(e.Left, e.Op.String(), e.Right)
	}
	v.Compare = func(e *ast.Compare) struct{} {
		return binary(e.Left, e.Op.String(), e.Right)
	}
	v.BinaryArith = func(e *ast.BinaryArith) struct{} {
		return binary(e.Left, e.Op.String(), e.Right)
	}
	v.Element = func(*ast.Element) struct{} {
		sb.WriteString("element")
		return none
	}
	v.Constant = func(c *ast.Constant) struct{} {
		sb.WriteString(strconv.FormatInt(c.Value, 10))
		return none
	}
	return v
}
