package ast

import "fmt"

// Visitor holds one handler per node variant. Handlers are responsible for
// recursing into children, usually by calling Visit again. A nil handler
// yields the zero value of T.
type Visitor[T any] struct {
	Chain       func(*Chain) T
	Filter      func(*Filter) T
	Map         func(*Map) T
	BinaryLogic func(*BinaryLogic) T
	Compare     func(*Compare) T
	BinaryArith func(*BinaryArith) T
	Element     func(*Element) T
	Constant    func(*Constant) T
}

// Visit dispatches n to the handler of v selected by the node's variant.
func Visit[T any](n Node, v *Visitor[T]) T {
	var zero T
	switch n := n.(type) {
	case *Chain:
		if v.Chain != nil {
			return v.Chain(n)
		}
	case *Filter:
		if v.Filter != nil {
			return v.Filter(n)
		}
	case *Map:
		if v.Map != nil {
			return v.Map(n)
		}
	case *BinaryLogic:
		if v.BinaryLogic != nil {
			return v.BinaryLogic(n)
		}
	case *Compare:
		if v.Compare != nil {
			return v.Compare(n)
		}
	case *BinaryArith:
		if v.BinaryArith != nil {
			return v.BinaryArith(n)
		}
	case *Element:
		if v.Element != nil {
			return v.Element(n)
		}
	case *Constant:
		if v.Constant != nil {
			return v.Constant(n)
		}
	default:
		panic(fmt.Sprintf("ast: unknown node type %T", n))
	}
	return zero
}

// rebuilder returns a visitor that reconstructs every node it visits,
// delegating Element occurrences to elem.
func rebuilder(elem func(*Element) Node) *Visitor[Node] {
	v := &Visitor[Node]{}
	v.Chain = func(c *Chain) Node {
		calls := make([]Call, len(c.Calls))
		for i, call := range c.Calls {
			calls[i] = Visit(call, v).(Call)
		}
		return &Chain{Calls: calls}
	}
	v.Filter = func(f *Filter) Node {
		return &Filter{Cond: Visit(f.Cond, v).(Logic)}
	}
	v.Map = func(m *Map) Node {
		return &Map{Expr: Visit(m.Expr, v).(Arith)}
	}
	v.BinaryLogic = func(e *BinaryLogic) Node {
		return &BinaryLogic{Left: Visit(e.Left, v).(Logic), Op: e.Op, Right: Visit(e.Right, v).(Logic)}
	}
	v.Compare = func(e *Compare) Node {
		return &Compare{Left: Visit(e.Left, v).(Arith), Op: e.Op, Right: Visit(e.Right, v).(Arith)}
	}
	v.BinaryArith = func(e *BinaryArith) Node {
		return &BinaryArith{Left: Visit(e.Left, v).(Arith), Op: e.Op, Right: Visit(e.Right, v).(Arith)}
	}
	v.Element = elem
	v.Constant = func(c *Constant) Node {
		return &Constant{Value: c.Value}
	}
	return v
}

// Copy returns a deep copy of n that shares no nodes with it.
func Copy[N Node](n N) N {
	v := rebuilder(func(*Element) Node { return &Element{} })
	return Visit(Node(n), v).(N)
}

// Substitute returns a copy of n in which every Element is replaced by a
// fresh deep copy of target. Neither argument is modified.
func Substitute[N Node](target Arith, n N) N {
	v := rebuilder(func(*Element) Node { return Copy(target) })
	return Visit(Node(n), v).(N)
}

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Chain:
		b, ok := b.(*Chain)
		if !ok || len(a.Calls) != len(b.Calls) {
			return false
		}
		for i := range a.Calls {
			if !Equal(a.Calls[i], b.Calls[i]) {
				return false
			}
		}
		return true
	case *Filter:
		b, ok := b.(*Filter)
		return ok && Equal(a.Cond, b.Cond)
	case *Map:
		b, ok := b.(*Map)
		return ok && Equal(a.Expr, b.Expr)
	case *BinaryLogic:
		b, ok := b.(*BinaryLogic)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Compare:
		b, ok := b.(*Compare)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *BinaryArith:
		b, ok := b.(*BinaryArith)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Element:
		_, ok := b.(*Element)
		return ok
	case *Constant:
		b, ok := b.(*Constant)
		return ok && a.Value == b.Value
	}
	return false
}
