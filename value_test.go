package lox

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"nil is falsy", nil, false},
		{"false is falsy", false, false},
		{"true is truthy", true, true},
		{"zero is truthy", float64(0), true},
		{"empty string is truthy", "", true},
		{"nonzero number is truthy", float64(42), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isTruthy(tc.value))
		})
	}
}

func TestIsEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  interface{}
		equal bool
	}{
		{"nil equals nil", nil, nil, true},
		{"nil vs number", nil, float64(0), false},
		{"equal numbers", float64(1), float64(1), true},
		{"NaN is never equal to itself", math.NaN(), math.NaN(), false},
		{"equal strings", "foo", "foo", true},
		{"different types never equal", "1", float64(1), false},
		{"equal bools", true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, isEqual(tc.a, tc.b))
			// Equality must be symmetric for every pair (spec.md §8 invariant 4).
			assert.Equal(t, tc.equal, isEqual(tc.b, tc.a))
		})
	}
}

func TestIsEqualObjectIdentity(t *testing.T) {
	class := NewLoxClass("A", nil, nil)
	instanceA := NewLoxInstance(class)
	instanceB := NewLoxInstance(class)

	assert.True(t, isEqual(instanceA, instanceA))
	assert.False(t, isEqual(instanceA, instanceB))
}

func TestStringifyAndFormatNumber(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, "nil"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"integer-valued double", float64(3), "3"},
		{"fractional double", float64(1.5), "1.5"},
		{"negative integer double", float64(-10), "-10"},
		{"string", "hello", "hello"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stringify(tc.value))
		})
	}
}

func TestStringifyCallables(t *testing.T) {
	fn := NewLoxFunction(&FunctionStmt{Name: Token{Lexeme: "add"}}, nil, FunctionKindFunction)
	assert.Equal(t, "<fn add>", stringify(fn))

	native := clockNative()
	assert.Equal(t, "<native fn>", stringify(native))

	class := NewLoxClass("Greeter", nil, nil)
	assert.Equal(t, "Greeter", stringify(class))

	instance := NewLoxInstance(class)
	assert.Equal(t, "Greeter instance", stringify(instance))
}

func TestCheckNumberOperand(t *testing.T) {
	op := Token{Type: Minus, Lexeme: "-", Line: 1}

	assert.NoError(t, checkNumberOperand(op, float64(1)))

	err := checkNumberOperand(op, "not a number")
	if assert.Error(t, err) {
		re, ok := err.(*RuntimeError)
		if assert.True(t, ok) {
			assert.Equal(t, "Operand must be a number.", re.Message)
		}
	}
}

func TestCheckNumberOperands(t *testing.T) {
	op := Token{Type: Plus, Lexeme: "+", Line: 1}

	assert.NoError(t, checkNumberOperands(op, float64(1), float64(2)))
	assert.Error(t, checkNumberOperands(op, "a", float64(2)))
	assert.Error(t, checkNumberOperands(op, float64(2), "a"))
}
