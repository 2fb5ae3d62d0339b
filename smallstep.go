package smallstep

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Constants for token categories are
// defined by the scanner in use.
type TokType int

// Token represents an input token, as produced by a scanner.
//
// An example would be a token for a number literal:
//
//    TokType = Number      // identifier for this kind of tokens
//    Lexeme  = "3.1416"    // lexeme how it appreared in the input
//    Value   = 3.1416      // is a float64 value
//    Span    = 67…73       // occured from position 67 in the input
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input positions. A span denotes
// a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns a span covering both s and other.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
