package ast

// Node is any node of a call chain tree.
type Node interface {
	node()
}

// Arith is an integer-valued expression.
type Arith interface {
	Node
	arithNode()
}

// Logic is a boolean-valued expression.
type Logic interface {
	Node
	logicNode()
}

// Call is a single stage of a chain.
type Call interface {
	Node
	callNode()
}

// --- Operators ---

// ArithOp is the operator of a BinaryArith.
type ArithOp int

const (
	Add ArithOp = iota // +
	Sub                // -
	Mul                // *
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	}
	return "?"
}

// CmpOp is the operator of a Compare.
type CmpOp int

const (
	Gt CmpOp = iota // >
	Lt              // <
	Eq              // =
)

func (op CmpOp) String() string {
	switch op {
	case Gt:
		return ">"
	case Lt:
		return "<"
	case Eq:
		return "="
	}
	return "?"
}

// Reversed returns the operator that holds after swapping the operands.
func (op CmpOp) Reversed() CmpOp {
	switch op {
	case Gt:
		return Lt
	case Lt:
		return Gt
	}
	return op
}

// LogicOp is the operator of a BinaryLogic.
type LogicOp int

const (
	And LogicOp = iota // &
	Or                 // |
)

func (op LogicOp) String() string {
	switch op {
	case And:
		return "&"
	case Or:
		return "|"
	}
	return "?"
}

// --- Arithmetic expressions ---

// BinaryArith represents left op right over integers.
type BinaryArith struct {
	Left  Arith
	Op    ArithOp
	Right Arith
}

func (e *BinaryArith) node()      {}
func (e *BinaryArith) arithNode() {}

// Element is the value flowing into the current call.
type Element struct{}

func (e *Element) node()      {}
func (e *Element) arithNode() {}

// Constant is an integer literal. A negative value is a negated literal.
type Constant struct {
	Value int64
}

func (e *Constant) node()      {}
func (e *Constant) arithNode() {}

// --- Logic expressions ---

// BinaryLogic represents left & right or left | right.
type BinaryLogic struct {
	Left  Logic
	Op    LogicOp
	Right Logic
}

func (e *BinaryLogic) node()      {}
func (e *BinaryLogic) logicNode() {}

// Compare represents left > right, left < right or left = right.
type Compare struct {
	Left  Arith
	Op    CmpOp
	Right Arith
}

func (e *Compare) node()      {}
func (e *Compare) logicNode() {}

// --- Calls ---

// Filter drops the current value unless Cond holds.
type Filter struct {
	Cond Logic
}

func (c *Filter) node()     {}
func (c *Filter) callNode() {}

// Map replaces the current value with Expr.
type Map struct {
	Expr Arith
}

func (c *Map) node()     {}
func (c *Map) callNode() {}

// Chain is an ordered, non-empty sequence of calls.
type Chain struct {
	Calls []Call
}

func (c *Chain) node() {}

// --- Constructors and predicates ---

// Elem returns a new Element node.
func Elem() Arith { return &Element{} }

// Int returns a new Constant node.
func Int(v int64) Arith { return &Constant{Value: v} }

// Bin returns a new BinaryArith node.
func Bin(left Arith, op ArithOp, right Arith) Arith {
	return &BinaryArith{Left: left, Op: op, Right: right}
}

// Cmp returns a new Compare node.
func Cmp(left Arith, op CmpOp, right Arith) Logic {
	return &Compare{Left: left, Op: op, Right: right}
}

// True returns the canonical always-true comparison 1=1.
func True() Logic { return Cmp(Int(1), Eq, Int(1)) }

// False returns the canonical always-false comparison 1=0.
func False() Logic { return Cmp(Int(1), Eq, Int(0)) }

// IsElement reports whether e is the Element placeholder.
func IsElement(e Arith) bool {
	_, ok := e.(*Element)
	return ok
}

// IsConstant reports whether e is a literal.
func IsConstant(e Arith) bool {
	_, ok := e.(*Constant)
	return ok
}

// ConstValue returns the value of a literal, or false if e is not one.
func ConstValue(e Arith) (int64, bool) {
	if c, ok := e.(*Constant); ok {
		return c.Value, true
	}
	return 0, false
}

// NewChain builds a chain from its calls.
func NewChain(calls ...Call) *Chain {
	return &Chain{Calls: calls}
}

// Canonical builds the two-stage [Filter, Map] chain.
func Canonical(cond Logic, expr Arith) *Chain {
	return NewChain(&Filter{Cond: cond}, &Map{Expr: expr})
}
