package parser

import (
	"errors"
	"testing"

	"github.com/razeghi71/chainsimp/ast"
)

func TestParseSimple(t *testing.T) {
	c, err := Parse("map{(element+10)}")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(c.Calls))
	}
	m, ok := c.Calls[0].(*ast.Map)
	if !ok {
		t.Fatalf("expected Map, got %T", c.Calls[0])
	}
	want := ast.Bin(ast.Elem(), ast.Add, ast.Int(10))
	if !ast.Equal(m.Expr, want) {
		t.Errorf("unexpected map expression")
	}
}

func TestParsePipeline(t *testing.T) {
	c, err := Parse("filter{(element<30)}%>%map{(element+-10)}%>%filter{(element>10)}%>%map{(element*element)}")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Calls) != 4 {
		t.Fatalf("expected 4 calls, got %d", len(c.Calls))
	}
	if _, ok := c.Calls[0].(*ast.Filter); !ok {
		t.Errorf("call[0]: expected Filter, got %T", c.Calls[0])
	}
	if _, ok := c.Calls[1].(*ast.Map); !ok {
		t.Errorf("call[1]: expected Map, got %T", c.Calls[1])
	}
	add := c.Calls[1].(*ast.Map).Expr.(*ast.BinaryArith)
	if v, ok := ast.ConstValue(add.Right); !ok || v != -10 {
		t.Errorf("expected negated literal -10, got %v", add.Right)
	}
}

func TestParseLogic(t *testing.T) {
	c, err := Parse("filter{((element>10)|(element=3))}")
	if err != nil {
		t.Fatal(err)
	}
	f := c.Calls[0].(*ast.Filter)
	bin, ok := f.Cond.(*ast.BinaryLogic)
	if !ok {
		t.Fatalf("expected BinaryLogic, got %T", f.Cond)
	}
	if bin.Op != ast.Or {
		t.Errorf("expected |, got %s", bin.Op)
	}
	if cmp := bin.Right.(*ast.Compare); cmp.Op != ast.Eq {
		t.Errorf("expected =, got %s", cmp.Op)
	}
}

func TestParseSubtraction(t *testing.T) {
	c, err := Parse("map{(element--3)}")
	if err != nil {
		t.Fatal(err)
	}
	want := ast.Bin(ast.Elem(), ast.Sub, ast.Int(-3))
	if !ast.Equal(c.Calls[0].(*ast.Map).Expr, want) {
		t.Error("unexpected subtraction tree")
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []string{
		"",
		"map(element+1)",
		"filter{(eleent>3)}",
		"map{element}%>filter{(1=1)}",
		"map{(element-+3)}",
		"map{element}%>%",
		"map{(element+1}",
		"map{(element+1))}",
		"map{99999999999999999999}",
		"map{element}map{element}",
	}
	for _, input := range cases {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("%q: expected syntax error", input)
			continue
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: expected syntax error, got %v", input, err)
		}
	}
}

func TestParseTypeErrors(t *testing.T) {
	cases := []string{
		"map{(element>3)}",
		"map{((element>1)|(3<2))}",
		"filter{element}",
		"filter{((element>3)<4)}",
		"filter{((element>1)|(3+2))}",
	}
	for _, input := range cases {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("%q: expected type error", input)
			continue
		}
		if !errors.Is(err, ErrType) {
			t.Errorf("%q: expected type error, got %v", input, err)
		}
		var perr *Error
		if !errors.As(err, &perr) || perr.Kind != TypeError {
			t.Errorf("%q: expected *Error with TypeError kind", input)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := Parse("map{element}%>%filter{(element>x)}")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if perr.Pos != 31 {
		t.Errorf("expected position 31, got %d", perr.Pos)
	}
}
