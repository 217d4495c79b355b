package domainconv

import "fmt"

// Parser builds a Domain tree from a token stream using recursive descent.
//
// In strict mode the parser accepts only literal syntax, the way a safe
// Python-literal evaluator would: bare identifiers are rejected. Permissive
// mode additionally turns bare identifiers into DynamicRef values ("&", "|"
// and "!" stay plain operator strings).
type Parser struct {
	tokens  []*Token
	current int
	strict  bool
}

// NewParser creates a permissive parser over the given tokens.
func NewParser(tokens []*Token) *Parser {
	return &Parser{tokens: tokens}
}

func newStrictParser(tokens []*Token) *Parser {
	return &Parser{tokens: tokens, strict: true}
}

// currentToken returns the current token.
func (p *Parser) currentToken() *Token {
	if p.current >= len(p.tokens) {
		return &Token{Type: TokenEOF, Pos: -1}
	}
	return p.tokens[p.current]
}

// advance moves to the next token and returns the previous one.
func (p *Parser) advance() *Token {
	token := p.currentToken()
	p.current++
	return token
}

// expect checks that the current token matches the expected type and advances.
func (p *Parser) expect(tokenType TokenType) (*Token, error) {
	token := p.currentToken()
	if token.Type != tokenType {
		return nil, &ParseError{Pos: token.Pos, Expected: tokenType, Got: token.Type}
	}
	return p.advance(), nil
}

// Parse parses the token stream into a Domain.
func (p *Parser) Parse() (Domain, error) {
	return p.parseList()
}

// parseList parses a bracketed list: '[' element (',' element)* ','? ']'.
func (p *Parser) parseList() (Domain, error) {
	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}

	elements := Domain{}
	for p.currentToken().Type != TokenRBracket {
		if p.currentToken().Type == TokenEOF {
			return nil, &ParseError{Pos: p.currentToken().Pos, Expected: TokenRBracket, Got: TokenEOF,
				Msg: "unexpected end of input, expected ']'"}
		}

		element, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)

		if p.currentToken().Type == TokenComma {
			p.advance()
		}
	}

	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return elements, nil
}

// parseElement parses a single list element: a tuple, a nested list or a value.
func (p *Parser) parseElement() (Value, error) {
	switch p.currentToken().Type {
	case TokenLParen:
		return p.parseTuple()
	case TokenLBracket:
		return p.parseList()
	}
	return p.parseValue()
}

// parseTuple parses a parenthesized tuple: '(' value (',' value)* ','? ')'.
// Arity is not checked here; a condition shorter than three elements is a
// rendering-time error, not a parse error.
func (p *Parser) parseTuple() (Condition, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	elements := Condition{}
	for p.currentToken().Type != TokenRParen {
		if p.currentToken().Type == TokenEOF {
			return nil, &ParseError{Pos: p.currentToken().Pos, Expected: TokenRParen, Got: TokenEOF,
				Msg: "unexpected end of input, expected ')'"}
		}

		element, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)

		if p.currentToken().Type == TokenComma {
			p.advance()
		}
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return elements, nil
}

// parseValue parses a single value.
func (p *Parser) parseValue() (Value, error) {
	token := p.currentToken()

	switch token.Type {
	case TokenString:
		p.advance()
		return &StringLiteral{Val: token.Text}, nil
	case TokenNumber:
		p.advance()
		return &NumberLiteral{Val: token.Num, IsInt: token.IsInt}, nil
	case TokenBoolTrue:
		p.advance()
		return &BoolLiteral{Val: true}, nil
	case TokenBoolFalse:
		p.advance()
		return &BoolLiteral{Val: false}, nil
	case TokenNone:
		p.advance()
		return &NoneLiteral{}, nil
	case TokenIdentifier:
		if p.strict {
			return nil, &ParseError{Pos: token.Pos, Expected: TokenString, Got: TokenIdentifier,
				Msg: fmt.Sprintf("bare identifier %q at position %d is not a literal", token.Text, token.Pos)}
		}
		p.advance()
		// Logical-operator markers stay plain strings; everything else is
		// a reference resolved by the host ORM at evaluation time.
		switch token.Text {
		case "&", "|", "!":
			return &StringLiteral{Val: token.Text}, nil
		}
		return &DynamicRef{Path: token.Text}, nil
	case TokenLBracket:
		return p.parseList()
	}

	return nil, &ParseError{Pos: token.Pos, Expected: TokenString, Got: token.Type,
		Msg: fmt.Sprintf("unexpected token %s at position %d", token.Type, token.Pos)}
}

// ParseDomain parses an Odoo domain string into a Domain tree.
//
// A strict literal-only pass runs first; it covers every domain that a safe
// Python-literal evaluator could handle. When that pass rejects the source
// (bare identifiers such as user.id), the whole domain is reparsed
// permissively, producing DynamicRef values for the references.
func ParseDomain(source string) (Domain, error) {
	tokens, err := NewTokenizer(source).TokenizeAll()
	if err != nil {
		return nil, err
	}

	if domain, err := newStrictParser(tokens).Parse(); err == nil {
		return domain, nil
	}

	return NewParser(tokens).Parse()
}
