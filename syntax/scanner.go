package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/smallstep"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() smallstep.Token
	SetErrorHandler(func(error))
}

// --- lexmachine adapter ----------------------------------------------------

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives an initializer
// for lexmachine, a list of literals ('(', '<=', …) and a map for translating
// token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, Error: logError, end: uint64(len(input))}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	end     uint64 // length of input
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface. Input which cannot be
// matched is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() smallstep.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			end := unconsumedEnd(ui)
			lms.Error(&SyntaxError{
				Msg:  "unrecognized input " + quote(string(ui.Text[ui.StartTC:end])),
				Span: smallstep.Span{uint64(ui.StartTC), uint64(end)},
			})
			lms.scanner.TC = end
		} else {
			lms.Error(err)
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return token{kind: EOF, span: smallstep.Span{lms.end, lms.end}}
	}
	t := tok.(*lexmachine.Token)
	tracer().Debugf("token %d = %q", t.Type, t.Lexeme)
	return token{
		kind:   smallstep.TokType(t.Type),
		lexeme: string(t.Lexeme),
		span:   smallstep.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))},
	}
}

// unconsumedEnd returns the position behind the unmatched input of ui.
// The result is always behind ui.StartTC and never splits a rune.
func unconsumedEnd(ui *machines.UnconsumedInput) int {
	end := ui.FailTC
	if end <= ui.StartTC {
		_, w := utf8.DecodeRune(ui.Text[ui.StartTC:])
		end = ui.StartTC + w
		if w == 0 {
			end++
		}
	}
	for end < len(ui.Text) && !utf8.RuneStart(ui.Text[end]) {
		end++
	}
	if end > len(ui.Text) {
		end = len(ui.Text)
	}
	return end
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// --- Tokens ----------------------------------------------------------------

// token is a very unsophisticated token type.
type token struct {
	kind   smallstep.TokType
	lexeme string
	span   smallstep.Span
}

func (t token) TokType() smallstep.TokType {
	return t.kind
}

func (t token) Lexeme() string {
	return t.lexeme
}

func (t token) Value() interface{} {
	return t.lexeme
}

func (t token) Span() smallstep.Span {
	return t.span
}
