package lexer

import (
	"fmt"
	"unicode"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Structural
	TokenFilter TokenType = iota // filter{
	TokenMap                     // map{
	TokenRBrace                  // }
	TokenLParen                  // (
	TokenRParen                  // )
	TokenPipe                    // %>%

	// Operators
	TokenPlus  // +
	TokenMinus // - (subtraction or literal sign)
	TokenStar  // *
	TokenGt    // >
	TokenLt    // <
	TokenEq    // =
	TokenAnd   // &
	TokenOr    // |

	// Operands
	TokenElement // element
	TokenInt     // integer literal

	// End
	TokenEOF
)

var tokenNames = map[TokenType]string{
	TokenFilter: "filter{", TokenMap: "map{", TokenRBrace: "}",
	TokenLParen: "(", TokenRParen: ")", TokenPipe: "%>%",
	TokenPlus: "+", TokenMinus: "-", TokenStar: "*",
	TokenGt: ">", TokenLt: "<", TokenEq: "=", TokenAnd: "&", TokenOr: "|",
	TokenElement: "element", TokenInt: "INT", TokenEOF: "EOF",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// IsOperator reports whether t is a binary operator token.
func (t TokenType) IsOperator() bool {
	return t >= TokenPlus && t <= TokenOr
}

// Error is a lexical error at a rune offset.
type Error struct {
	Pos int
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

func errorf(pos int, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Token represents a single lexical token.
type Token struct {
	Type TokenType
	Val  string
	Pos  int // rune offset in the input
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Val, t.Pos)
}

var singles = map[rune]TokenType{
	'}': TokenRBrace,
	'(': TokenLParen,
	')': TokenRParen,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'>': TokenGt,
	'<': TokenLt,
	'=': TokenEq,
	'&': TokenAnd,
	'|': TokenOr,
}

// words maps the keywords to their token type. Call keywords include the
// opening brace, so "map {" is not a call.
var words = map[string]TokenType{
	"element": TokenElement,
	"filter{": TokenFilter,
	"map{":    TokenMap,
}

// Lex tokenizes the input string into a slice of Tokens. The call chain
// grammar has no whitespace, so any space is rejected.
func Lex(input string) ([]Token, error) {
	var tokens []Token
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		ch := runes[i]
		pos := i

		if tt, ok := singles[ch]; ok {
			tokens = append(tokens, Token{tt, string(ch), pos})
			i++
			continue
		}

		// Pipe separator
		if ch == '%' {
			if i+2 < len(runes) && runes[i+1] == '>' && runes[i+2] == '%' {
				tokens = append(tokens, Token{TokenPipe, "%>%", pos})
				i += 3
				continue
			}
			return nil, errorf(pos, "unexpected character '%%' (did you mean '%%>%%'?)")
		}

		// Number
		if isDigit(ch) {
			start := i
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{TokenInt, string(runes[start:i]), start})
			continue
		}

		// Keyword
		if unicode.IsLetter(ch) {
			tok, newI, err := lexWord(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = newI
			continue
		}

		if unicode.IsSpace(ch) {
			return nil, errorf(pos, "unexpected whitespace")
		}
		return nil, errorf(pos, "unexpected character %q", ch)
	}

	tokens = append(tokens, Token{TokenEOF, "", len(runes)})
	return tokens, nil
}

func lexWord(runes []rune, start int) (Token, int, error) {
	i := start
	for i < len(runes) && unicode.IsLetter(runes[i]) {
		i++
	}
	if i < len(runes) && runes[i] == '{' {
		i++
	}
	val := string(runes[start:i])
	if tt, ok := words[val]; ok {
		return Token{tt, val, start}, i, nil
	}
	return Token{}, 0, errorf(start, "unknown word %q", val)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
