package expr

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the runtime type of a value.
type Kind uint8

// There are two kinds of values.
const (
	NumberKind Kind = iota
	BoolKind
)

func (k Kind) String() string {
	if k == BoolKind {
		return "boolean"
	}
	return "number"
}

// Value is either a number or a boolean. The zero value is the number 0.
type Value struct {
	kind Kind
	num  float64
	b    bool
}

// Number creates a numeric value.
func Number(f float64) Value {
	return Value{kind: NumberKind, num: f}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: BoolKind, b: b}
}

// Kind returns the runtime type of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNumber is true for numeric values.
func (v Value) IsNumber() bool {
	return v.kind == NumberKind
}

// IsBool is true for boolean values.
func (v Value) IsBool() bool {
	return v.kind == BoolKind
}

// ToNumber coerces v to a number: booleans map to 1 and 0.
func (v Value) ToNumber() float64 {
	if v.kind == BoolKind {
		if v.b {
			return 1
		}
		return 0
	}
	return v.num
}

// Truthy coerces v to a boolean. Numbers are false for ±0 and NaN only.
func (v Value) Truthy() bool {
	if v.kind == BoolKind {
		return v.b
	}
	return v.num != 0 && !math.IsNaN(v.num)
}

// Same is true if v and w are of identical kind and value. Other than for
// the strict equality operator of the language, NaN is the same as NaN.
func (v Value) Same(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	if v.kind == BoolKind {
		return v.b == w.b
	}
	return v.num == w.num || math.IsNaN(v.num) && math.IsNaN(w.num)
}

// String renders a value the way ECMAScript does.
func (v Value) String() string {
	if v.kind == BoolKind {
		return strconv.FormatBool(v.b)
	}
	return formatNumber(v.num)
}

// formatNumber follows ECMAScript's Number::toString: shortest round-trip
// digits, decimal notation for exponents in [-7, 21), exponential otherwise.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0: // includes -0
		return "0"
	case f < 0:
		return "-" + formatNumber(-f)
	}
	m := strconv.FormatFloat(f, 'e', -1, 64) // d.ddde±xx
	e := strings.IndexByte(m, 'e')
	digits := strings.Replace(m[:e], ".", "", 1)
	exp, _ := strconv.Atoi(m[e+1:])
	k, n := len(digits), exp+1 // value is 0.digits × 10^n
	switch {
	case k <= n && n <= 21:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}
	sign := "+"
	if n-1 < 0 {
		sign = "-"
	}
	x := strconv.Itoa(abs(n - 1))
	if k == 1 {
		return digits + "e" + sign + x
	}
	return digits[:1] + "." + digits[1:] + "e" + sign + x
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
