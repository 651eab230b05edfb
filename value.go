package lox

import (
	"math"
	"strconv"
)

// Values are represented as plain Go interface{} — exactly the teacher's
// approach — rather than a hand-rolled tagged union: nil is Nil, bool is
// Bool, float64 is Number, string is Str, and the Callable/*LoxClass/
// *LoxInstance types are the Object variants from spec.md §3. There is no
// runtime representation of the "Invalid" sentinel from spec.md: literal
// tokens always carry a Go value the scanner already produced (nil/bool/
// float64/string), so the case can't arise once parsing succeeds.

// isTruthy implements spec.md §4.1: only nil and false are falsy.
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}

	if b, ok := v.(bool); ok {
		return b
	}

	return true
}

// isEqual implements spec.md §4.1's equality rule: values of different
// variants are never equal, numbers compare by IEEE-754 ==, strings by
// content, objects by reference identity (Go's == on pointers/interfaces
// already gives us that for the Callable/*LoxClass/*LoxInstance cases).
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// stringify implements spec.md §4.1's display(v).
func stringify(v interface{}) string {
	if v == nil {
		return "nil"
	}

	switch val := v.(type) {
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(val)
	case string:
		return val
	case *LoxFunction:
		return val.String()
	case *NativeFunction:
		return val.String()
	case *LoxClass:
		return val.Name
	case *LoxInstance:
		return val.klass.Name + " instance"
	default:
		return ""
	}
}

// formatNumber prints the shortest round-trippable decimal for v, but
// without a trailing ".0" for integer-valued doubles (spec.md §9's Open
// Question decision: this matches the canonical Lox test suite).
func formatNumber(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	if math.IsNaN(v) {
		return "nan"
	}

	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// checkNumberOperand returns an InvalidOperand error (spec.md §7) unless
// operand is a Number.
func checkNumberOperand(operator Token, operand interface{}) error {
	if _, ok := operand.(float64); ok {
		return nil
	}

	return NewRuntimeError(operator, "Operand must be a number.")
}

// checkNumberOperands is the two-operand counterpart of checkNumberOperand.
func checkNumberOperands(operator Token, left, right interface{}) error {
	_, lok := left.(float64)
	_, rok := right.(float64)
	if lok && rok {
		return nil
	}

	return NewRuntimeError(operator, "Operands must be numbers.")
}

// asCallable type-guards v as anything implementing Callable, matching
// spec.md §4.4's "Function, Class, NativeFunction" callee check.
func asCallable(v interface{}) (Callable, bool) {
	c, ok := v.(Callable)
	return c, ok
}

// asInstance type-guards v as a *LoxInstance.
func asInstance(v interface{}) (*LoxInstance, bool) {
	inst, ok := v.(*LoxInstance)
	return inst, ok
}
