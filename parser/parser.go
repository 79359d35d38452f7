// Package parser implements the precedence-climbing core described in
// spec.md §4: a two-token-lookahead driver over token.Kind's ordering,
// with a latched "pending implicit multiplication" signal standing in
// for a token the tokenizer never produces.
//
// This is a line-for-line port of poincare/src/parsing/parser.cpp —
// the original source this calculator grammar was distilled from —
// generalized from its class-hierarchy Expression type into the
// tagged-variant expr.Expression, and from its function-pointer
// dispatch table into a Go method-value table. The stopping-type
// choices follow the original, including the three the spec flags as
// likely source bugs (parseImplicitTimes stopping at Slash, parseCaret
// stopping at ImplicitTimes, unary parseMinus stopping at Slash) — see
// SPEC_FULL.md §9. parseSlash stops at ImplicitTimes, so that 1/2x
// reads (1/2)·x.
package parser

import (
	"Axion/builtin"
	"Axion/expr"
	"Axion/lexer"
	"Axion/token"
)

// Status mirrors spec.md §3's Status::{Progress,Success,Error}.
type Status int

const (
	Progress Status = iota
	Success
	StatusError
)

// DefaultMaxDepth bounds parseUntil's recursion depth (spec.md §9:
// "cap recursion depth with a configurable limit"). No corpus source
// names a concrete number; 500 is a documented, arbitrary choice.
const DefaultMaxDepth = 500

// Parser drives a lexer.Lexer with one-token lookahead plus the
// latched implicit-multiplication signal.
type Parser struct {
	lex      *lexer.Lexer
	registry *builtin.Registry

	current token.Token
	next    token.Token

	pendingImplicitMultiplication bool
	status                        Status
	err                           *Error

	depth    int
	maxDepth int
}

// Parse is the package's external entry point (spec.md §6):
// parse(input) -> (Expression, Status).
func Parse(src string, reg *builtin.Registry) (expr.Expression, Status, error) {
	return ParseWithDepth(src, reg, DefaultMaxDepth)
}

// ParseWithDepth is Parse with an explicit recursion-depth cap.
func ParseWithDepth(src string, reg *builtin.Registry, maxDepth int) (expr.Expression, Status, error) {
	p := newParser(src, reg, maxDepth)
	result := p.parse()
	if p.status == Success {
		return result, Success, nil
	}
	return nil, StatusError, p.err
}

func newParser(src string, reg *builtin.Registry, maxDepth int) *Parser {
	p := &Parser{lex: lexer.New(src), registry: reg, maxDepth: maxDepth}
	p.next = p.popLexToken()
	return p
}

// popLexToken pulls the next token from the lexer, failing the parse
// with LexError if the lexer rejects the input (invalid character,
// malformed number). Without this, a discarded lex error would surface
// as a fabricated EndOfStream — token.Token{}'s zero value — silently
// truncating the expression instead of propagating the failure
// (spec.md §6: success yields one tree, never a partial one).
func (p *Parser) popLexToken() token.Token {
	tok, err := p.lex.Pop()
	if err != nil {
		p.fail(LexError, err.Error())
		return token.New(token.EndOfStream)
	}
	return tok
}

// parse calls parseUntil(EndOfStream); on a clean exit it reports
// Success, otherwise it discards the partial tree (spec.md §6: "an
// empty expression sentinel plus an error kind on failure").
func (p *Parser) parse() expr.Expression {
	result := p.parseUntil(token.EndOfStream)
	if p.status == Progress {
		p.status = Success
		return result
	}
	return nil
}

// parseUntil is the precedence-climbing loop: repeatedly pop a token,
// dispatch it to the handler that grows left, and continue while the
// next effective token still has precedence over stoppingType.
func (p *Parser) parseUntil(stoppingType token.Kind) expr.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		p.fail(TooDeep, "expression nested too deeply")
		return nil
	}

	var left expr.Expression
	for {
		p.popToken()
		p.dispatch(&left)
		if p.status != Progress || !p.nextTokenHasPrecedenceOver(stoppingType) {
			break
		}
	}
	return left
}

// popToken advances the lookahead window. If an implicit
// multiplication is pending, the current token becomes a synthetic
// ImplicitTimes WITHOUT consuming anything from the lexer.
func (p *Parser) popToken() {
	if p.pendingImplicitMultiplication {
		p.current = token.New(token.ImplicitTimes)
		p.pendingImplicitMultiplication = false
		return
	}
	p.current = p.next
	p.next = p.popLexToken()
}

// popTokenIfType is only ever called for structural delimiters (never
// ImplicitTimes): if next matches kind, consume it and report true.
func (p *Parser) popTokenIfType(kind token.Kind) bool {
	if p.next.Kind == kind {
		p.popToken()
		return true
	}
	return false
}

// nextTokenHasPrecedenceOver treats a pending implicit multiplication
// as an ImplicitTimes token when computing the effective next kind.
func (p *Parser) nextTokenHasPrecedenceOver(stoppingType token.Kind) bool {
	eff := p.next.Kind
	if p.pendingImplicitMultiplication {
		eff = token.ImplicitTimes
	}
	return eff > stoppingType
}

// checkImplicitMultiplication is called at the end of any handler that
// could have produced a value whose right neighbor may be another
// value (parseNumber, parseIdentifier, parseConstant, parseBang,
// parseMatrix, parseLeftParenthesis).
func (p *Parser) checkImplicitMultiplication() {
	switch p.next.Kind {
	case token.Number, token.Constant, token.Identifier, token.LeftParenthesis, token.LeftBracket:
		p.pendingImplicitMultiplication = true
	}
}

func (p *Parser) fail(kind ErrorKind, msg string) {
	if p.status != Progress {
		return // first Error latches; every subsequent handler short-circuits
	}
	p.status = StatusError
	p.err = &Error{Kind: kind, Msg: msg}
}

// dispatch routes p.current to its handler, exactly mirroring the
// tokenParsers table in poincare/src/parsing/parser.cpp (same order as
// the token.Kind declaration, which *is* the precedence table).
func (p *Parser) dispatch(left *expr.Expression) {
	switch p.current.Kind {
	case token.EndOfStream, token.RightBracket, token.RightParenthesis,
		token.RightBrace, token.Comma, token.LeftBrace, token.Undefined:
		p.parseUnexpected(left)
	case token.Equal:
		p.parseEqual(left)
	case token.Store:
		p.parseStore(left)
	case token.Plus:
		p.parsePlus(left)
	case token.Minus:
		p.parseMinus(left)
	case token.Times:
		p.parseTimes(left)
	case token.Slash:
		p.parseSlash(left)
	case token.ImplicitTimes:
		p.parseImplicitTimes(left)
	case token.Power:
		p.parseCaret(left)
	case token.Bang:
		p.parseBang(left)
	case token.LeftBracket:
		p.parseMatrix(left)
	case token.LeftParenthesis:
		p.parseLeftParenthesis(left)
	case token.Empty:
		p.parseEmpty(left)
	case token.Constant:
		p.parseConstant(left)
	case token.Number:
		p.parseNumber(left)
	case token.Identifier:
		p.parseIdentifier(left)
	default:
		p.parseUnexpected(left)
	}
}
