package syntax

import (
	"strings"

	"golang.org/x/exp/ebnf"
)

// StartSymbol is the start production of the grammar.
const StartSymbol = "Input"

const grammar = `
Input       = ( Definition | Conditional ) [ ";" ] .
Definition  = identifier "(" [ Parameters ] ")" "=" Conditional .
Parameters  = identifier { "," identifier } [ "," ] .
Conditional = Equality [ "?" Conditional ":" Conditional ] .
Equality    = Relation { ( "==" | "!=" | "===" | "!==" ) Relation } .
Relation    = Sum { ( "<" | ">" | "<=" | ">=" ) Sum } .
Sum         = Product { ( "+" | "-" ) Product } .
Product     = Unary { ( "*" | "/" | "%" ) Unary } .
Unary       = ( "-" | "!" ) Unary | Call .
Call        = identifier [ Arguments ] | Primary .
Arguments   = "(" [ Conditional { "," Conditional } [ "," ] ] ")" .
Primary     = number | "true" | "false" | "(" Conditional ")" .

identifier  = letter { letter | digit } .
number      = ( digits [ "." [ digits ] ] | "." digits ) [ exponent ] | hexnumber .
hexnumber   = "0" ( "x" | "X" ) hexdigit { hexdigit } .
hexdigit    = digit | "a" … "f" | "A" … "F" .
exponent    = ( "e" | "E" ) [ "+" | "-" ] digits .
digits      = digit { digit } .
letter      = "a" … "z" | "A" … "Z" | "_" .
digit       = "0" … "9" .
`

// Grammar returns the grammar of the input language in EBNF notation.
// Operator precedence is encoded in the productions from Equality (lowest)
// to Unary (highest).
func Grammar() string {
	return strings.TrimSpace(grammar) + "\n"
}

// ParsedGrammar returns the grammar as an ebnf.Grammar, verified to be
// complete and consistent for start symbol StartSymbol.
func ParsedGrammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("smallstep.ebnf", strings.NewReader(grammar))
	if err != nil {
		tracer().Errorf("cannot parse grammar: %v", err)
		return nil, err
	}
	if err = ebnf.Verify(g, StartSymbol); err != nil {
		tracer().Errorf("grammar does not verify: %v", err)
		return nil, err
	}
	return g, nil
}
