package syntax

import (
	"sync"

	"github.com/npillmayer/smallstep"
	"github.com/timtadh/lexmachine"
)

// Token categories which are not literals. Literal tokens use their first
// character as token type, or an id >= 256 for multi-character operators.
const (
	EOF    smallstep.TokType = -1
	Ident  smallstep.TokType = -2
	Number smallstep.TokType = -3
)

// literals recognized by the scanner. Some of them are JavaScript operators
// this language does not support; the parser rejects them with a message
// naming the operator.
var literals = []string{
	"(", ")", ",", "?", ":", ";",
	"+", "-", "*", "/", "%", "!", "<", ">",
	"<=", ">=", "==", "!=", "===", "!==",
	"=", "&&", "||", "**", "&", "|", "^", "~", "??", "=>", "++", "--",
	"[", "]", "{", "}", ".",
}

var tokenIds map[string]int

func init() {
	tokenIds = make(map[string]int, len(literals)+2)
	tokenIds["IDENT"] = int(Ident)
	tokenIds["NUMBER"] = int(Number)
	next := 256
	for _, lit := range literals {
		if len(lit) == 1 {
			tokenIds[lit] = int(lit[0])
			continue
		}
		tokenIds[lit] = next
		next++
	}
}

// tokType returns the token type of a literal.
func tokType(lit string) smallstep.TokType {
	return smallstep.TokType(tokenIds[lit])
}

// Lexer creates a new lexmachine lexer for the expression language.
func Lexer() (*LMAdapter, error) {
	setup := func(lm *lexmachine.Lexer) {
		lm.Add([]byte(`0(x|X)([0-9]|[a-f]|[A-F])+`), MakeToken("NUMBER", tokenIds["NUMBER"]))
		lm.Add([]byte(`([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][\+\-]?[0-9]+)?`), MakeToken("NUMBER", tokenIds["NUMBER"]))
		lm.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), MakeToken("IDENT", tokenIds["IDENT"]))
		lm.Add([]byte(`//[^\n]*\n?`), Skip)
		lm.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	adapter, err := NewLMAdapter(setup, literals, tokenIds)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}

var startOnce sync.Once // monitors one-time creation of the lexer
var lexer *LMAdapter
var lexerErr error

func theLexer() (*LMAdapter, error) {
	startOnce.Do(func() {
		lexer, lexerErr = Lexer()
	})
	return lexer, lexerErr
}
