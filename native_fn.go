package lox

import "time"

// NativeFunction is the RuntimeObject.NativeFunction variant from spec.md
// §3: an identifier, an arity, and a pure Go function pointer. clock is the
// only native the core exposes.
type NativeFunction struct {
	Name string
	arity int
	fn    func(arguments []interface{}) (interface{}, error)
}

func NewNativeFunction(name string, arity int, fn func(arguments []interface{}) (interface{}, error)) *NativeFunction {
	return &NativeFunction{Name: name, arity: arity, fn: fn}
}

func (n *NativeFunction) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	return n.fn(arguments)
}

func (n *NativeFunction) Arity() int {
	return n.arity
}

func (n *NativeFunction) String() string {
	return "<native fn>"
}

// clockNative returns seconds since the Unix epoch, spec.md §6's single
// standard-library native.
func clockNative() *NativeFunction {
	return NewNativeFunction("clock", 0, func(arguments []interface{}) (interface{}, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	})
}
