package lox

// Callable is implemented by any runtime object that can appear as the
// callee of a Call expression: user-defined functions/methods, classes
// (calling a class constructs an Instance) and native functions. This is
// the Callable surface spec.md §4.4 dispatches invocation through.
type Callable interface {
	// Call evaluates the callable against already-evaluated arguments. The
	// interpreter is threaded through so user-defined callables can push
	// their own call frame.
	Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error)

	// Arity is the number of arguments this callable expects. The evaluator
	// checks this before calling.
	Arity() int
}
