package lox

// FunctionKind tags what role a *LoxFunction plays, per spec.md §3's
// RuntimeObject.Function variant (kind: Function | Method | Constructor |
// Native). NativeFunction is its own RuntimeObject variant (native_fn.go); this
// enum only distinguishes the three user-defined kinds.
type FunctionKind int

const (
	FunctionKindFunction FunctionKind = iota
	FunctionKindMethod
	FunctionKindConstructor
)

// LoxFunction is a user-defined function or method: an AST FunctionStmt
// paired with the environment captured at declaration time (the closure).
// It implements Callable so the evaluator can invoke it like any other
// runtime object.
type LoxFunction struct {
	declaration *FunctionStmt
	closure     *Environment
	kind        FunctionKind
}

// NewLoxFunction constructs a function/method object. kind distinguishes a
// plain function from a method or the `init` constructor, which changes
// what Call() returns (spec.md §4.4).
func NewLoxFunction(declaration *FunctionStmt, closure *Environment, kind FunctionKind) *LoxFunction {
	return &LoxFunction{declaration: declaration, closure: closure, kind: kind}
}

// Call executes the function body against a fresh environment chained from
// the closure, one parameter binding per argument (the evaluator's call site
// has already checked the argument count against arity). A `return` inside the body
// unwinds via a controlReturn signal caught here; reaching the end of the
// body without one is equivalent to `return nil;`, except for a Constructor,
// which always yields the bound `this` regardless of how the body exits.
func (lf *LoxFunction) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	env := NewEnvironment(lf.closure)
	for i, param := range lf.declaration.Params {
		env.Define(param.Lexeme, arguments[i])
	}

	err := interpreter.executeBlock(lf.declaration.Body, env)
	if err != nil {
		if ret, ok := err.(*controlReturn); ok {
			if lf.kind == FunctionKindConstructor {
				return lf.closure.GetAt(0, "this"), nil
			}

			return ret.value, nil
		}

		return nil, err
	}

	if lf.kind == FunctionKindConstructor {
		return lf.closure.GetAt(0, "this"), nil
	}

	return nil, nil
}

// Arity is the number of declared parameters.
func (lf *LoxFunction) Arity() int {
	return len(lf.declaration.Params)
}

func (lf *LoxFunction) String() string {
	return "<fn " + lf.declaration.Name.Lexeme + ">"
}

// Bind produces a new Function closing over a scope that adds `this` bound
// to instance, one level inside lf's own closure — this is how a method
// fetched off an instance gets its receiver (spec.md §4.5).
func (lf *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := NewEnvironment(lf.closure)
	env.Define("this", instance)
	return NewLoxFunction(lf.declaration, env, lf.kind)
}
