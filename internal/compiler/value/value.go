package value

import "strconv"

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeInt Type = iota
	TypeBool
)

// Value is either an integer or the boolean result of a comparison.
type Value struct {
	Type Type
	Data int64 // for TypeBool, 1 is true and 0 is false
}

func Int(n int64) Value {
	return Value{Type: TypeInt, Data: n}
}

func Bool(b bool) Value {
	if b {
		return Value{Type: TypeBool, Data: 1}
	}
	return Value{Type: TypeBool, Data: 0}
}

// Int returns the value as int64; booleans count as 1 and 0.
func (v Value) Int() int64 {
	return v.Data
}

// Truthy reports whether v selects the true branch of a conditional.
func (v Value) Truthy() bool {
	return v.Data != 0
}

// String renders the value the way print shows it.
func (v Value) String() string {
	if v.Type == TypeBool {
		if v.Data != 0 {
			return "True"
		}
		return "False"
	}
	return strconv.FormatInt(v.Data, 10)
}

// FloorDiv divides rounding toward negative infinity. A zero divisor yields 0.
func FloorDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod is the remainder matching FloorDiv; its sign follows the divisor.
// A zero divisor yields 0.
func FloorMod(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
