package syntax

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/smallstep"
	"github.com/npillmayer/smallstep/expr"
)

// SyntaxError is returned for input which is not a well-formed expression
// or function definition. Span is the byte range of the offending input.
type SyntaxError struct {
	Msg  string
	Span smallstep.Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Span, e.Msg)
}

// Parse parses a single expression. A trailing ';' is allowed.
func Parse(input string) (expr.Expr, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	if p.tok.TokType() == EOF {
		return nil, p.errorf("expected single expression, got none")
	}
	e, err := p.conditional()
	if err != nil {
		return nil, err
	}
	if err = p.end(); err != nil {
		return nil, err
	}
	tracer().Debugf("parsed %s", e)
	return e, nil
}

// ParseDefinition parses a function definition of the form
//
//     name(param1, param2, …) = body
//
// Parameter names have to be unique.
func ParseDefinition(input string) (string, expr.FunctionDef, error) {
	var def expr.FunctionDef
	p, err := newParser(input)
	if err != nil {
		return "", def, err
	}
	if p.tok.TokType() != Ident || isKeyword(p.tok.Lexeme()) {
		return "", def, p.errorf("expected function name, got %s", describe(p.tok))
	}
	name := p.tok.Lexeme()
	if err = p.advance(); err != nil {
		return "", def, err
	}
	if err = p.expect("("); err != nil {
		return "", def, err
	}
	var params []string
	for p.tok.TokType() != tokType(")") {
		if len(params) > 0 {
			if err = p.expect(","); err != nil {
				return "", def, err
			}
			if p.is(")") { // trailing comma
				break
			}
		}
		if p.tok.TokType() != Ident || isKeyword(p.tok.Lexeme()) {
			return "", def, p.errorf("expected parameter name, got %s", describe(p.tok))
		}
		params = append(params, p.tok.Lexeme())
		if err = p.advance(); err != nil {
			return "", def, err
		}
	}
	if err = p.expect(")"); err != nil {
		return "", def, err
	}
	if err = p.expect("="); err != nil {
		return "", def, err
	}
	body, err := p.conditional()
	if err != nil {
		return "", def, err
	}
	if err = p.end(); err != nil {
		return "", def, err
	}
	if def, err = expr.NewFunctionDef(params, body); err != nil {
		return "", def, err
	}
	tracer().Debugf("parsed definition of %s/%d", name, def.Arity())
	return name, def, nil
}

// IsDefinition checks if input looks like a function definition, i.e. has
// an '=' token outside of any comparison operator.
func IsDefinition(input string) bool {
	p, err := newParser(input)
	if err != nil {
		return false
	}
	for p.tok.TokType() != EOF {
		if p.tok.TokType() == tokType("=") {
			return true
		}
		if p.advance() != nil {
			return false
		}
	}
	return false
}

// --- Parser ----------------------------------------------------------------

type parser struct {
	scanner Tokenizer
	tok     smallstep.Token // lookahead
	err     error           // first scanner error
}

func newParser(input string) (*parser, error) {
	lm, err := theLexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	p := &parser{scanner: scanner}
	scanner.SetErrorHandler(func(e error) {
		if p.err == nil {
			p.err = e
		}
	})
	if err = p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	p.tok = p.scanner.NextToken()
	return p.err
}

func (p *parser) is(lit string) bool {
	return p.tok.TokType() == tokType(lit)
}

func (p *parser) expect(lit string) error {
	if !p.is(lit) {
		return p.errorf("expected %q, got %s", lit, describe(p.tok))
	}
	return p.advance()
}

// end checks for the end of input, optionally preceded by a ';'.
func (p *parser) end() error {
	if p.is(";") {
		if err := p.advance(); err != nil {
			return err
		}
		if p.tok.TokType() != EOF {
			return p.errorf("expected single expression, got multiple statements")
		}
	}
	if p.tok.TokType() != EOF {
		if op, ok := unsupported[p.tok.Lexeme()]; ok {
			return p.errorf("unsupported operator %q (%s)", p.tok.Lexeme(), op)
		}
		return p.errorf("unexpected %s after expression", describe(p.tok))
	}
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return p.errorAt(p.tok.Span(), format, args...)
}

func (p *parser) errorAt(span smallstep.Span, format string, args ...interface{}) error {
	err := &SyntaxError{Msg: fmt.Sprintf(format, args...), Span: span}
	tracer().Errorf("%v", err)
	return err
}

// conditional parses
//
//     Conditional = Binary [ "?" Conditional ":" Conditional ] .
func (p *parser) conditional() (expr.Expr, error) {
	cond, err := p.binary()
	if err != nil || !p.is("?") {
		return cond, err
	}
	if err = p.advance(); err != nil {
		return nil, err
	}
	then, err := p.conditional()
	if err != nil {
		return nil, err
	}
	if err = p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.conditional()
	if err != nil {
		return nil, err
	}
	return expr.If(cond, then, els), nil
}

// Binding strength of binary operators. All of them associate to the left.
var precedence = map[string]int{
	"==": 1, "!=": 1, "===": 1, "!==": 1,
	"<": 2, ">": 2, "<=": 2, ">=": 2,
	"+": 3, "-": 3,
	"*": 4, "/": 4, "%": 4,
}

// JavaScript operators outside of the language.
var unsupported = map[string]string{
	"=":  "assignment",
	"&&": "logical and",
	"||": "logical or",
	"??": "nullish coalescing",
	"**": "exponentiation",
	"&":  "bitwise and",
	"|":  "bitwise or",
	"^":  "bitwise xor",
	"~":  "bitwise not",
	"++": "increment",
	"--": "decrement",
	"=>": "arrow function",
	".":  "member access",
	"[":  "member access",
	"{":  "object literal",
}

type pendingOp struct {
	op   expr.BinaryOperator
	prec int
}

// binary parses a chain of binary operators and their operands with an
// operator stack and an operand stack.
//
//     Binary = Unary { BinaryOp Unary } .
func (p *parser) binary() (expr.Expr, error) {
	operands, operators := arraystack.New(), arraystack.New()
	e, err := p.unary()
	if err != nil {
		return nil, err
	}
	operands.Push(e)
	for {
		prec, ok := precedence[p.tok.Lexeme()]
		if !ok {
			break
		}
		for !operators.Empty() {
			top, _ := operators.Peek()
			if top.(pendingOp).prec < prec {
				break
			}
			reduceTop(operands, operators)
		}
		operators.Push(pendingOp{op: expr.BinaryOperator(p.tok.Lexeme()), prec: prec})
		if err = p.advance(); err != nil {
			return nil, err
		}
		if e, err = p.unary(); err != nil {
			return nil, err
		}
		operands.Push(e)
	}
	for !operators.Empty() {
		reduceTop(operands, operators)
	}
	result, _ := operands.Pop()
	return result.(expr.Expr), nil
}

func reduceTop(operands, operators *arraystack.Stack) {
	top, _ := operators.Pop()
	rhs, _ := operands.Pop()
	lhs, _ := operands.Pop()
	operands.Push(expr.Binary(top.(pendingOp).op, lhs.(expr.Expr), rhs.(expr.Expr)))
}

// unary parses
//
//     Unary = ( "-" | "!" ) Unary | Call .
func (p *parser) unary() (expr.Expr, error) {
	if p.is("-") || p.is("!") {
		op := expr.UnaryOperator(p.tok.Lexeme())
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return expr.Unary(op, operand), nil
	}
	if p.is("+") {
		return nil, p.errorf("unsupported unary operator \"+\"")
	}
	return p.call()
}

// call parses
//
//     Call = Primary { Arguments } .
//
// Only plain function names may be called.
func (p *parser) call() (expr.Expr, error) {
	start := p.tok.Span()
	e, bare, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.is("(") {
		callee, isVar := e.(*expr.Variable)
		if !bare || !isVar {
			return nil, p.errorAt(start.Extend(p.tok.Span()),
				"only calls of named functions are supported, cannot call %s", e)
		}
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		e, bare = expr.Call(callee.Name, args...), false
	}
	return e, nil
}

// arguments parses
//
//     Arguments = "(" [ Expression { "," Expression } [ "," ] ] ")" .
func (p *parser) arguments() ([]expr.Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var args []expr.Expr
	for !p.is(")") {
		if len(args) > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
			if p.is(")") { // trailing comma
				break
			}
		}
		arg, err := p.conditional()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, p.advance()
}

// primary parses literals, names and parenthesized expressions. It reports
// if the expression is a bare name (i.e., not parenthesized).
//
//     Primary = number | "true" | "false" | identifier | "(" Expression ")" .
func (p *parser) primary() (expr.Expr, bool, error) {
	switch t := p.tok; t.TokType() {
	case Number:
		f, err := parseNumber(t.Lexeme())
		if err != nil {
			return nil, false, p.errorf("malformed number %q", t.Lexeme())
		}
		return expr.Num(f), false, p.advance()
	case Ident:
		var e expr.Expr
		switch name := t.Lexeme(); {
		case name == "true" || name == "false":
			e = expr.Boolean(name == "true")
		case isKeyword(name):
			return nil, false, p.errorf("unsupported keyword %q", name)
		default:
			e = expr.Var(name)
		}
		return e, true, p.advance()
	case tokType("("):
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		e, err := p.conditional()
		if err != nil {
			return nil, false, err
		}
		return e, false, p.expect(")")
	case EOF:
		return nil, false, p.errorf("unexpected end of input")
	}
	if op, ok := unsupported[p.tok.Lexeme()]; ok {
		return nil, false, p.errorf("unsupported operator %q (%s)", p.tok.Lexeme(), op)
	}
	return nil, false, p.errorf("unexpected %s", describe(p.tok))
}

// JavaScript keywords which cannot be used as names.
var keywords = map[string]bool{
	"null": true, "undefined": true, "this": true, "new": true, "delete": true,
	"typeof": true, "void": true, "in": true, "instanceof": true,
	"function": true, "return": true, "var": true, "let": true, "const": true,
	"if": true, "else": true, "while": true, "for": true,
}

func isKeyword(name string) bool {
	return keywords[name] || name == "true" || name == "false"
}

// parseNumber converts a decimal or hexadecimal literal. Literals too large
// for a float64 become ±Inf.
func parseNumber(lexeme string) (float64, error) {
	s := lexeme
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s += "p0"
	}
	f, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return f, nil
	}
	return f, err
}

func describe(t smallstep.Token) string {
	switch t.TokType() {
	case EOF:
		return "end of input"
	case Ident:
		return "name " + quote(t.Lexeme())
	case Number:
		return "number " + t.Lexeme()
	}
	return quote(t.Lexeme())
}

func quote(s string) string {
	return strconv.Quote(s)
}
