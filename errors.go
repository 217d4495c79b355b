package domainconv

import "fmt"

// LexError reports an unterminated string or an unrecognized character.
// Pos is the byte offset of the offending input.
type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

// ParseError reports a token stream that does not match the domain grammar.
type ParseError struct {
	Pos      int
	Expected TokenType
	Got      TokenType
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("expected %s at position %d, got %s", e.Expected, e.Pos, e.Got)
}

// MalformedDomainError reports a condition tuple with fewer than the three
// (field, operator, value) elements required for rendering.
type MalformedDomainError struct {
	Len int
}

func (e *MalformedDomainError) Error() string {
	return fmt.Sprintf("invalid condition: expected 3 elements, got %d", e.Len)
}
