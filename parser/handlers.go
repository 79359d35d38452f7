package parser

import (
	"strings"

	"Axion/expr"
	"Axion/token"
)

// parseUnexpected always fails: dispatched for tokens that cannot open
// an expression in the current context (closing delimiters, commas,
// EndOfStream, Undefined as leftmost token).
func (p *Parser) parseUnexpected(left *expr.Expression) {
	p.fail(UnexpectedToken, "unexpected "+p.current.Kind.String())
}

// parseNumber requires left uninitialized; two adjacent numeric
// literals are illegal (implicit multiplication only bridges distinct
// syntactic categories).
func (p *Parser) parseNumber(left *expr.Expression) {
	if *left != nil {
		p.fail(UnexpectedToken, "number cannot follow an expression")
		return
	}
	*left = expr.Number{Value: p.current.Value}
	if p.next.Is(token.Number) {
		p.fail(AdjacentNumbers, "two numeric literals separated only by whitespace")
		return
	}
	p.checkImplicitMultiplication()
}

func (p *Parser) parseEmpty(left *expr.Expression) {
	if *left != nil {
		p.fail(UnexpectedToken, "empty expression cannot follow an expression")
		return
	}
	*left = expr.EmptyExpression{}
}

func (p *Parser) parseConstant(left *expr.Expression) {
	var glyph rune
	for _, r := range p.current.Text {
		glyph = r
		break
	}
	*left = expr.Constant{Glyph: glyph}
	p.checkImplicitMultiplication()
}

// parseBinaryOperator is the shared core of Plus/Times/Slash/Equal:
// left must already hold a value, and the right-hand side is parsed up
// to stoppingType.
func (p *Parser) parseBinaryOperator(left *expr.Expression, stoppingType token.Kind) (expr.Expression, bool) {
	if *left == nil {
		p.fail(MissingOperand, "binary operator is missing its left operand")
		return nil, false
	}
	right := p.parseUntil(stoppingType)
	if p.status != Progress {
		return nil, false
	}
	if right == nil {
		p.fail(MissingOperand, "binary operator is missing its right operand")
		return nil, false
	}
	return right, true
}

func (p *Parser) parsePlus(left *expr.Expression) {
	if right, ok := p.parseBinaryOperator(left, token.Plus); ok {
		*left = expr.Addition{Left: *left, Right: right}
	}
}

func (p *Parser) parseTimes(left *expr.Expression) {
	if right, ok := p.parseBinaryOperator(left, token.Times); ok {
		*left = expr.Multiplication{Left: *left, Right: right}
	}
}

// parseSlash stops at Token::ImplicitTimes, so a juxtaposition after the
// divisor is left to the outer loop: 1/2x reads (1/2)·x, while a/b/c
// stays left-associative and a/b^c still reads a/(b^c).
func (p *Parser) parseSlash(left *expr.Expression) {
	if right, ok := p.parseBinaryOperator(left, token.ImplicitTimes); ok {
		*left = expr.Division{Left: *left, Right: right}
	}
}

// parseImplicitTimes deliberately stops at Token::Slash, not
// Token::ImplicitTimes: "implicit × binds looser than explicit × so
// that a b/c reads (a·b)/c" (preserved verbatim from the original; see
// SPEC_FULL.md §9).
func (p *Parser) parseImplicitTimes(left *expr.Expression) {
	if right, ok := p.parseBinaryOperator(left, token.Slash); ok {
		*left = expr.Multiplication{Left: *left, Right: right}
	}
}

// parseCaret stops at Token::ImplicitTimes, which yields
// right-associativity of ^ while also letting a^b c parse as (a^b)·c
// (preserved verbatim; see SPEC_FULL.md §9).
func (p *Parser) parseCaret(left *expr.Expression) {
	if right, ok := p.parseBinaryOperator(left, token.ImplicitTimes); ok {
		*left = expr.Power{Left: *left, Right: right}
	}
}

// parseMinus: unary when left is empty (operand parsed up to Slash, so
// -a/b = (-a)/b but -a^b = -(a^b)); binary subtraction otherwise,
// left-associative via a same-precedence stop.
func (p *Parser) parseMinus(left *expr.Expression) {
	if *left == nil {
		right := p.parseUntil(token.Slash)
		if p.status != Progress {
			return
		}
		*left = expr.Opposite{Child: right}
		return
	}
	right := p.parseUntil(token.Minus)
	if p.status != Progress {
		return
	}
	*left = expr.Subtraction{Left: *left, Right: right}
}

// parseEqual rejects a nested Equal (non-associative) before anything
// else: a left side that is already an Equal (1=2=3), or a second '='
// directly after this one (2==3).
func (p *Parser) parseEqual(left *expr.Expression) {
	if _, ok := (*left).(expr.EqualExpr); ok || p.next.Is(token.Equal) {
		p.fail(EqualNotAssociative, "equal is not associative")
		return
	}
	if right, ok := p.parseBinaryOperator(left, token.Equal); ok {
		*left = expr.EqualExpr{Left: *left, Right: right}
	}
}

// parseStore requires left initialized; the right-hand side of →
// must be a bare symbol or a single-argument function on a symbol,
// and nothing may follow it.
func (p *Parser) parseStore(left *expr.Expression) {
	if *left == nil {
		p.fail(MissingOperand, "store is missing its left-hand value")
		return
	}
	p.popToken()
	if !p.current.Is(token.Identifier) || p.isReservedFunctionCurrent() || p.isSpecialIdentifierCurrent() {
		p.fail(StoreTargetInvalid, "store target must be a non-reserved identifier")
		return
	}
	var target expr.Expression
	p.parseCustomIdentifier(&target, p.current.Text)
	if p.status != Progress {
		return
	}
	if !p.next.Is(token.EndOfStream) || !(expr.IsSymbol(target) || expr.IsFunctionOnSymbol(target)) {
		p.fail(StoreTargetInvalid, "store target must be a symbol or a function of a single symbol")
		return
	}
	*left = expr.Store{Value: *left, Target: target}
}

func (p *Parser) parseBang(left *expr.Expression) {
	if *left == nil {
		p.fail(MissingOperand, "factorial is missing its operand")
		return
	}
	*left = expr.Factorial{Child: *left}
	p.checkImplicitMultiplication()
}

func (p *Parser) parseLeftParenthesis(left *expr.Expression) {
	if *left != nil {
		p.fail(UnexpectedToken, "parenthesis cannot follow an expression")
		return
	}
	inner := p.parseUntil(token.RightParenthesis)
	if p.status != Progress {
		return
	}
	if !p.popTokenIfType(token.RightParenthesis) {
		p.fail(MissingDelimiter, "missing closing parenthesis")
		return
	}
	*left = expr.Parenthesis{Child: inner}
	p.checkImplicitMultiplication()
}

// parseMatrix reads rows until ']'; every row (parseVector) must share
// a column count > 0.
func (p *Parser) parseMatrix(left *expr.Expression) {
	if *left != nil {
		p.fail(UnexpectedToken, "matrix cannot follow an expression")
		return
	}
	var children []expr.Expression
	rows := 0
	cols := 0
	for !p.popTokenIfType(token.RightBracket) {
		row := p.parseVector()
		if p.status != Progress {
			return
		}
		if rows == 0 {
			cols = len(row)
			if cols == 0 {
				p.fail(EmptyMatrix, "matrix row has no columns")
				return
			}
		} else if len(row) != cols {
			p.fail(RaggedMatrix, "matrix rows have differing lengths")
			return
		}
		children = append(children, row...)
		rows++
	}
	if rows == 0 {
		p.fail(EmptyMatrix, "matrix has no rows")
		return
	}
	*left = expr.Matrix{Rows: rows, Cols: cols, Children: children}
	p.checkImplicitMultiplication()
}

func (p *Parser) parseVector() []expr.Expression {
	if !p.popTokenIfType(token.LeftBracket) {
		p.fail(MissingDelimiter, "missing opening bracket for matrix row")
		return nil
	}
	list := p.parseCommaSeparatedList()
	if p.status != Progress {
		return nil
	}
	if !p.popTokenIfType(token.RightBracket) {
		p.fail(MissingDelimiter, "missing closing bracket for matrix row")
		return nil
	}
	return list
}

func (p *Parser) parseCommaSeparatedList() []expr.Expression {
	var items []expr.Expression
	for {
		item := p.parseUntil(token.Comma)
		if p.status != Progress {
			return nil
		}
		items = append(items, item)
		if !p.popTokenIfType(token.Comma) {
			break
		}
	}
	return items
}

// parseIdentifier dispatches to reserved-function, special-identifier
// or custom-identifier handling.
func (p *Parser) parseIdentifier(left *expr.Expression) {
	if *left != nil {
		p.fail(UnexpectedToken, "identifier cannot follow an expression")
		return
	}
	name := p.current.Text
	if idx, ok := p.registry.Lookup(name); ok {
		p.parseReservedFunction(left, idx)
	} else if isSpecialIdentifierName(name) {
		p.parseSpecialIdentifier(left)
	} else {
		p.parseCustomIdentifier(left, name)
	}
	if p.status == Progress {
		p.checkImplicitMultiplication()
	}
}

func (p *Parser) isReservedFunctionCurrent() bool {
	_, ok := p.registry.Lookup(p.current.Text)
	return ok
}

func (p *Parser) isSpecialIdentifierCurrent() bool {
	return isSpecialIdentifierName(p.current.Text)
}

func isSpecialIdentifierName(name string) bool {
	switch name {
	case "inf", "undef", "u_", "v_", "u", "v", "log_":
		return true
	}
	return false
}

// parseReservedFunction advances through equal-named overloads while
// the supplied parameter count overflows the current entry's arity
// (spec.md §4.5 / §9's "contract of the registry").
func (p *Parser) parseReservedFunction(left *expr.Expression, idx int) {
	helper, _ := p.registry.At(idx)
	name := helper.Name
	params := p.parseFunctionParameters()
	if p.status != Progress {
		return
	}
	n := len(params)
	for n > helper.Arity {
		idx++
		next, ok := p.registry.At(idx)
		if !ok || next.Name != name {
			p.fail(ReservedArityMismatch, "too many parameters for "+name)
			return
		}
		helper = next
	}
	if n < helper.Arity {
		p.fail(ReservedArityMismatch, "too few parameters for "+name)
		return
	}
	result := helper.Build(params)
	if result == nil {
		p.fail(ReservedTypeMismatch, "incorrect parameter type for "+name)
		return
	}
	*left = result
}

// parseFunctionParameters consumes "(…, …, …)" or "()".
func (p *Parser) parseFunctionParameters() []expr.Expression {
	if !p.popTokenIfType(token.LeftParenthesis) {
		p.fail(MissingDelimiter, "missing opening parenthesis")
		return nil
	}
	if p.popTokenIfType(token.RightParenthesis) {
		return []expr.Expression{}
	}
	list := p.parseCommaSeparatedList()
	if p.status != Progress {
		return nil
	}
	if !p.popTokenIfType(token.RightParenthesis) {
		p.fail(MissingDelimiter, "missing closing parenthesis")
		return nil
	}
	return list
}

// parseSpecialIdentifier recognizes the closed set of bespoke forms:
// inf, undef, u_/v_ and u/v sequence references, and log_{base}(arg).
func (p *Parser) parseSpecialIdentifier(left *expr.Expression) {
	switch p.current.Text {
	case "inf":
		*left = expr.Infinity{Negative: false}
	case "undef":
		*left = expr.UndefinedExpr{}
	case "u_", "v_":
		p.parseSequence(left, rune(p.current.Text[0]), token.LeftBrace, token.RightBrace)
	case "u", "v":
		p.parseSequence(left, rune(p.current.Text[0]), token.LeftParenthesis, token.RightParenthesis)
	case "log_":
		p.parseBaseSubscriptLogarithm(left)
	}
}

func (p *Parser) parseBaseSubscriptLogarithm(left *expr.Expression) {
	if !p.popTokenIfType(token.LeftBrace) {
		p.fail(MissingDelimiter, "missing { after log_")
		return
	}
	base := p.parseUntil(token.RightBrace)
	if p.status != Progress {
		return
	}
	if !p.popTokenIfType(token.RightBrace) {
		p.fail(MissingDelimiter, "missing } after log base")
		return
	}
	params := p.parseFunctionParameters()
	if p.status != Progress {
		return
	}
	if len(params) != 1 {
		p.fail(ReservedArityMismatch, "log_{b}(x) takes exactly one argument")
		return
	}
	*left = expr.Logarithm{Argument: params[0], Base: base}
}

// parseSequence handles u_{n}, u_{n+1}, u(n), u(n+1) (and v): only the
// literal rank forms n and n+1 are accepted.
func (p *Parser) parseSequence(left *expr.Expression, name rune, leftDelim, rightDelim token.Kind) {
	if !p.popTokenIfType(leftDelim) {
		p.fail(MissingDelimiter, "missing opening delimiter for sequence rank")
		return
	}
	rank := p.parseUntil(rightDelim)
	if p.status != Progress {
		return
	}
	if !p.popTokenIfType(rightDelim) {
		p.fail(MissingDelimiter, "missing closing delimiter for sequence rank")
		return
	}
	switch {
	case isSymbolN(rank):
		*left = expr.Symbol{Name: string(name) + "(n)"}
	case isNPlusOne(rank):
		*left = expr.Symbol{Name: string(name) + "(n+1)"}
	default:
		p.fail(UnexpectedToken, "sequence rank must be n or n+1")
	}
}

func isSymbolN(e expr.Expression) bool {
	s, ok := e.(expr.Symbol)
	return ok && s.Name == "n"
}

func isNPlusOne(e expr.Expression) bool {
	a, ok := e.(expr.Addition)
	if !ok {
		return false
	}
	s, ok := a.Left.(expr.Symbol)
	if !ok || s.Name != "n" {
		return false
	}
	num, ok := a.Right.(expr.Number)
	return ok && num.Value == 1
}

// parseCustomIdentifier builds a Symbol, or a Function if the
// identifier is immediately followed by a parenthesized single
// argument whose name must differ from the function's own name
// (checked as a prefix, not full equality — a deliberate quirk of the
// original source, preserved here; see SPEC_FULL.md §9).
func (p *Parser) parseCustomIdentifier(left *expr.Expression, name string) {
	if len(name) >= expr.MaxNameSize {
		p.fail(IdentifierTooLong, "identifier exceeds maximum name length")
		return
	}
	if !p.popTokenIfType(token.LeftParenthesis) {
		*left = expr.Symbol{Name: name}
		return
	}
	params := p.parseCommaSeparatedList()
	if p.status != Progress {
		return
	}
	if len(params) != 1 {
		p.fail(UnexpectedToken, "custom function takes exactly one argument")
		return
	}
	param := params[0]
	if sym, ok := param.(expr.Symbol); ok && strings.HasPrefix(sym.Name, name) {
		p.fail(FunctionVariableCollision, "function and its argument must have distinct names")
		return
	}
	if !p.popTokenIfType(token.RightParenthesis) {
		p.fail(MissingDelimiter, "missing closing parenthesis")
		return
	}
	*left = expr.Function{Name: name, Arg: param}
}
