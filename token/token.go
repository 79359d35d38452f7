// Package token defines the lexical units produced by the lexer and
// consumed by the parser.
//
// Kind is declared in ascending precedence order: the parser's whole
// precedence table is this enumeration's numeric order, nothing more.
package token

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical category of a Token. The declaration
// order below *is* the precedence table: a token "has precedence over"
// another iff its Kind compares strictly greater.
type Kind int

const (
	EndOfStream Kind = iota
	Equal
	Store
	RightBracket
	RightParenthesis
	RightBrace
	Comma
	Plus
	Minus
	Times
	Slash
	ImplicitTimes
	Power
	Bang
	LeftBracket
	LeftParenthesis
	LeftBrace
	Empty
	Constant
	Number
	Identifier
	Undefined
)

var names = [...]string{
	"EndOfStream", "Equal", "Store", "RightBracket", "RightParenthesis",
	"RightBrace", "Comma", "Plus", "Minus", "Times", "Slash",
	"ImplicitTimes", "Power", "Bang", "LeftBracket", "LeftParenthesis",
	"LeftBrace", "Empty", "Constant", "Number", "Identifier", "Undefined",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(names) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

// Token is an immutable lexical unit: a Kind plus the textual slice it
// was lexed from, and for Number tokens its parsed value.
type Token struct {
	Kind  Kind
	Text  string
	Value float64 // meaningful only when Kind == Number
}

// New builds a structural token with the given kind; its Text is left
// empty.
func New(k Kind) Token {
	return Token{Kind: k}
}

// Is reports whether the token's kind equals k.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// CompareTo lexicographically compares the token's text against s,
// without allocating. The parser itself identifies reserved-function
// and special-identifier names through builtin.Registry.Lookup and a
// name switch, not through this method.
func (t Token) CompareTo(s string) int {
	return strings.Compare(t.Text, s)
}

// HasPrecedenceOver reports whether t's kind is strictly greater than
// stop's kind in the declaration ordering above.
func (t Token) HasPrecedenceOver(stop Kind) bool {
	return t.Kind > stop
}
