package parser

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/razeghi71/chainsimp/ast"
	"github.com/razeghi71/chainsimp/lexer"
)

// Parser converts a token stream into a typed call chain.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse parses and type-checks a call chain such as
// "filter{(element>10)}%>%map{(element*2)}". Failures are *Error values.
func Parse(input string) (*ast.Chain, error) {
	tokens, err := lexer.Lex(input)
	if err != nil {
		var lerr *lexer.Error
		if errors.As(err, &lerr) {
			return nil, syntaxErrorf(lerr.Pos, "%s", lerr.Msg)
		}
		return nil, syntaxErrorf(0, "%v", err)
	}
	p := &Parser{tokens: tokens, pos: 0}
	chain, perr := p.parseChain()
	if perr != nil {
		return nil, perr
	}
	return chain, nil
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, *Error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, syntaxErrorf(tok.Pos, "expected %s, got %s (%q)", tt, tok.Type, tok.Val)
	}
	return tok, nil
}

func (p *Parser) parseChain() (*ast.Chain, *Error) {
	var calls []ast.Call

	call, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	calls = append(calls, call)

	for p.peek().Type == lexer.TokenPipe {
		p.advance() // consume %>%
		call, err := p.parseCall()
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}

	if p.peek().Type != lexer.TokenEOF {
		return nil, syntaxErrorf(p.peek().Pos, "unexpected token %s (%q)", p.peek().Type, p.peek().Val)
	}

	return ast.NewChain(calls...), nil
}

func (p *Parser) parseCall() (ast.Call, *Error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokenFilter:
		return p.parseFilter()
	case lexer.TokenMap:
		return p.parseMap()
	default:
		return nil, syntaxErrorf(tok.Pos, "expected filter{ or map{, got %s (%q)", tok.Type, tok.Val)
	}
}

func (p *Parser) parseFilter() (ast.Call, *Error) {
	p.advance() // consume filter{
	pos := p.peek().Pos
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	cond, ok := expr.(ast.Logic)
	if !ok {
		return nil, typeErrorf(pos, "filter expects a logic expression")
	}
	return &ast.Filter{Cond: cond}, nil
}

func (p *Parser) parseMap() (ast.Call, *Error) {
	p.advance() // consume map{
	pos := p.peek().Pos
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	arith, ok := expr.(ast.Arith)
	if !ok {
		return nil, typeErrorf(pos, "map expects an arithmetic expression")
	}
	return &ast.Map{Expr: arith}, nil
}

// --- Expressions ---

func (p *Parser) parseExpr() (ast.Node, *Error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.TokenElement:
		p.advance()
		return ast.Elem(), nil

	case lexer.TokenInt:
		p.advance()
		return parseLiteral(tok, false)

	case lexer.TokenMinus:
		p.advance() // consume -
		num, err := p.expect(lexer.TokenInt)
		if err != nil {
			return nil, err
		}
		return parseLiteral(num, true)

	case lexer.TokenLParen:
		return p.parseBinary()

	default:
		return nil, syntaxErrorf(tok.Pos, "unexpected token %s (%q) in expression", tok.Type, tok.Val)
	}
}

func parseLiteral(tok lexer.Token, negative bool) (ast.Node, *Error) {
	text := tok.Val
	if negative {
		text = "-" + text
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, syntaxErrorf(tok.Pos, "invalid integer %q: %v", text, err)
	}
	return ast.Int(v), nil
}

// parseBinary parses "(" expr OP expr ")" and checks operand types.
func (p *Parser) parseBinary() (ast.Node, *Error) {
	p.advance() // consume (
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	opTok := p.advance()
	if !opTok.Type.IsOperator() {
		return nil, syntaxErrorf(opTok.Pos, "expected operator, got %s (%q)", opTok.Type, opTok.Val)
	}

	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}

	switch opTok.Type {
	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar:
		l, lok := left.(ast.Arith)
		r, rok := right.(ast.Arith)
		if !lok || !rok {
			return nil, typeErrorf(opTok.Pos, "operator %s expects arithmetic operands", opTok.Val)
		}
		return &ast.BinaryArith{Left: l, Op: arithOps[opTok.Type], Right: r}, nil

	case lexer.TokenGt, lexer.TokenLt, lexer.TokenEq:
		l, lok := left.(ast.Arith)
		r, rok := right.(ast.Arith)
		if !lok || !rok {
			return nil, typeErrorf(opTok.Pos, "comparison %s expects arithmetic operands", opTok.Val)
		}
		return &ast.Compare{Left: l, Op: cmpOps[opTok.Type], Right: r}, nil

	default:
		l, lok := left.(ast.Logic)
		r, rok := right.(ast.Logic)
		if !lok || !rok {
			return nil, typeErrorf(opTok.Pos, "operator %s expects logic operands", opTok.Val)
		}
		return &ast.BinaryLogic{Left: l, Op: logicOps[opTok.Type], Right: r}, nil
	}
}

var arithOps = map[lexer.TokenType]ast.ArithOp{
	lexer.TokenPlus:  ast.Add,
	lexer.TokenMinus: ast.Sub,
	lexer.TokenStar:  ast.Mul,
}

var cmpOps = map[lexer.TokenType]ast.CmpOp{
	lexer.TokenGt: ast.Gt,
	lexer.TokenLt: ast.Lt,
	lexer.TokenEq: ast.Eq,
}

var logicOps = map[lexer.TokenType]ast.LogicOp{
	lexer.TokenAnd: ast.And,
	lexer.TokenOr:  ast.Or,
}
