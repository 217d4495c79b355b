package domainconv

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// TokenType represents the type of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenString
	TokenNumber
	TokenBoolTrue
	TokenBoolFalse
	TokenNone
	TokenIdentifier
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenComma
)

var tokenTypeNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenString:     "STRING",
	TokenNumber:     "NUMBER",
	TokenBoolTrue:   "BOOL_TRUE",
	TokenBoolFalse:  "BOOL_FALSE",
	TokenNone:       "NONE",
	TokenIdentifier: "IDENTIFIER",
	TokenLParen:     "LPAREN",
	TokenRParen:     "RPAREN",
	TokenLBracket:   "LBRACKET",
	TokenRBracket:   "RBRACKET",
	TokenComma:      "COMMA",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token represents a single token in a domain string.
type Token struct {
	Type  TokenType
	Text  string          // string value or identifier text
	Num   decimal.Decimal // numeric value for TokenNumber
	IsInt bool            // TokenNumber had no decimal point
	Pos   int             // byte offset in the source
}

// Tokenizer tokenizes Odoo domain strings.
type Tokenizer struct {
	input string
	pos   int
	ch    rune
}

// NewTokenizer creates a new tokenizer for the given source.
func NewTokenizer(input string) *Tokenizer {
	t := &Tokenizer{input: input}
	if len(input) > 0 {
		t.ch = rune(input[0])
	}
	return t
}

// advance moves to the next character.
func (t *Tokenizer) advance() {
	t.pos++
	if t.pos >= len(t.input) {
		t.ch = 0 // EOF
	} else {
		t.ch = rune(t.input[t.pos])
	}
}

// peek looks ahead without advancing.
func (t *Tokenizer) peek() rune {
	if t.pos+1 >= len(t.input) {
		return 0
	}
	return rune(t.input[t.pos+1])
}

// skipWhitespace skips whitespace characters between tokens.
func (t *Tokenizer) skipWhitespace() {
	for t.ch == ' ' || t.ch == '\t' || t.ch == '\n' || t.ch == '\r' {
		t.advance()
	}
}

// readString reads a quoted string. Backslash escapes are honored for the
// matching quote, the backslash itself and n/t/r; any other backslash is
// kept literally and the following character is consumed on its own.
func (t *Tokenizer) readString() (string, error) {
	start := t.pos
	quote := t.ch
	t.advance() // skip opening quote

	var result strings.Builder
	for t.ch != 0 {
		if t.ch == '\\' && t.peek() != 0 {
			switch next := t.peek(); next {
			case quote, '\\':
				result.WriteByte(byte(next))
				t.advance()
				t.advance()
			case 'n':
				result.WriteByte('\n')
				t.advance()
				t.advance()
			case 't':
				result.WriteByte('\t')
				t.advance()
				t.advance()
			case 'r':
				result.WriteByte('\r')
				t.advance()
				t.advance()
			default:
				result.WriteByte(byte(t.ch))
				t.advance()
			}
		} else if t.ch == quote {
			t.advance() // skip closing quote
			return result.String(), nil
		} else {
			// ch holds one raw byte, so multi-byte characters inside the
			// string pass through unchanged.
			result.WriteByte(byte(t.ch))
			t.advance()
		}
	}

	return "", &LexError{Pos: start, Msg: "unterminated string"}
}

// readNumber reads an integer or float. A '.' that is not followed by a
// digit is not consumed; the next NextToken call reports it as an
// unrecognized character.
func (t *Tokenizer) readNumber() (decimal.Decimal, bool, error) {
	start := t.pos
	hasDot := false

	if t.ch == '-' {
		t.advance()
	}

	for t.ch != 0 {
		if unicode.IsDigit(t.ch) {
			t.advance()
		} else if t.ch == '.' && !hasDot && unicode.IsDigit(t.peek()) {
			hasDot = true
			t.advance()
		} else {
			break
		}
	}

	num, err := decimal.NewFromString(t.input[start:t.pos])
	if err != nil {
		return decimal.Decimal{}, false, &LexError{Pos: start, Msg: fmt.Sprintf("invalid number %q", t.input[start:t.pos])}
	}
	return num, !hasDot, nil
}

// readIdentifier reads an identifier. Dots are part of identifiers so that
// dotted paths like user.partner_id.id form a single token.
func (t *Tokenizer) readIdentifier() string {
	start := t.pos
	for t.ch != 0 && (unicode.IsLetter(t.ch) || unicode.IsDigit(t.ch) || t.ch == '_' || t.ch == '.') {
		t.advance()
	}
	return t.input[start:t.pos]
}

// NextToken returns the next token from the input.
func (t *Tokenizer) NextToken() (*Token, error) {
	t.skipWhitespace()

	if t.ch == 0 {
		return &Token{Type: TokenEOF, Pos: t.pos}, nil
	}

	pos := t.pos

	switch t.ch {
	case '(':
		t.advance()
		return &Token{Type: TokenLParen, Text: "(", Pos: pos}, nil
	case ')':
		t.advance()
		return &Token{Type: TokenRParen, Text: ")", Pos: pos}, nil
	case '[':
		t.advance()
		return &Token{Type: TokenLBracket, Text: "[", Pos: pos}, nil
	case ']':
		t.advance()
		return &Token{Type: TokenRBracket, Text: "]", Pos: pos}, nil
	case ',':
		t.advance()
		return &Token{Type: TokenComma, Text: ",", Pos: pos}, nil
	case '\'', '"':
		value, err := t.readString()
		if err != nil {
			return nil, err
		}
		return &Token{Type: TokenString, Text: value, Pos: pos}, nil
	}

	if unicode.IsDigit(t.ch) || (t.ch == '-' && unicode.IsDigit(t.peek())) {
		num, isInt, err := t.readNumber()
		if err != nil {
			return nil, err
		}
		return &Token{Type: TokenNumber, Num: num, IsInt: isInt, Pos: pos}, nil
	}

	if unicode.IsLetter(t.ch) || t.ch == '_' {
		ident := t.readIdentifier()
		switch ident {
		case "True":
			return &Token{Type: TokenBoolTrue, Text: ident, Pos: pos}, nil
		case "False":
			return &Token{Type: TokenBoolFalse, Text: ident, Pos: pos}, nil
		case "None":
			return &Token{Type: TokenNone, Text: ident, Pos: pos}, nil
		}
		return &Token{Type: TokenIdentifier, Text: ident, Pos: pos}, nil
	}

	return nil, &LexError{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", t.ch)}
}

// TokenizeAll returns all tokens from the input, ending with an EOF token.
func (t *Tokenizer) TokenizeAll() ([]*Token, error) {
	var tokens []*Token

	for {
		token, err := t.NextToken()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)

		if token.Type == TokenEOF {
			break
		}
	}

	return tokens, nil
}
