package lox

// controlReturn is the control-flow signal used to unwind out of nested
// statement execution back to the call site of the nearest enclosing
// function, per spec.md §9's design note: "The `return` signal is best
// modeled as a distinguished result ... threaded through statement
// execution." It implements error purely so it can ride the same return
// channel as statement execution's genuine runtime errors; LoxFunction.Call
// is the only place that type-switches for it and stops its propagation.
type controlReturn struct {
	value interface{}
}

func (c *controlReturn) Error() string {
	return "return outside of a function call"
}
