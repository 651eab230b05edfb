package lox

import "fmt"

// Interpreter is the tree-walking evaluator described in spec.md §4.4. It
// holds the global environment (pre-populated with the native `clock`), the
// currently active environment, and the ResolveMap the Resolver populated
// before Interpret was ever called — locals maps an expression's identity
// (pointer equality on the concrete *Assign/*VarExpr/*This/*Super node) to
// the scope depth at which that reference should be looked up.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[Expr]int

	reporter *ErrorReporter
	stdout   func(string)
}

// NewInterpreter constructs an Interpreter with a fresh global environment
// holding only the native `clock`.
func NewInterpreter(reporter *ErrorReporter) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", clockNative())

	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[Expr]int),
		reporter:    reporter,
	}
}

// SetStdout overrides where Print statements write (one line per call, no
// trailing newline expected from the callback), primarily for tests.
func (i *Interpreter) SetStdout(fn func(string)) {
	i.stdout = fn
}

func (i *Interpreter) print(s string) {
	if i.stdout != nil {
		i.stdout(s)
		return
	}

	fmt.Println(s)
}

// Globals exposes the root environment, used by Runtime's `:globals` and
// `:methods` REPL commands to inspect top-level bindings between lines.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// resolve records the ResolveMap entry the Resolver computed for expr. It is
// called only by the Resolver, never by the evaluator itself.
func (i *Interpreter) resolve(expr Expr, depth int) {
	i.locals[expr] = depth
}

// Interpret executes a whole program's statements in order. A runtime error
// aborts the remaining statements and is returned to the caller (spec.md
// §7: runtime errors propagate out of the evaluator as a structured
// signal). Interpret assumes the Resolver has already run with no static
// errors; it does not re-check.
func (i *Interpreter) Interpret(statements []Stmt) error {
	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) execute(stmt Stmt) error {
	return stmt.Accept(i)
}

// evaluate sends expr back through the visitor dispatch to produce its Value.
func (i *Interpreter) evaluate(expr Expr) (interface{}, error) {
	return expr.Accept(i)
}

// lookUpVariable reads a variable/this/super reference by consulting the
// ResolveMap: a recorded depth means a local lookup at that exact depth; no
// entry means the reference is global (spec.md §4.4).
func (i *Interpreter) lookUpVariable(name Token, expr Expr) (interface{}, error) {
	if depth, ok := i.locals[expr]; ok {
		return i.environment.GetAt(depth, name.Lexeme), nil
	}

	return i.globals.Get(name)
}

// --- Statements ---

func (i *Interpreter) VisitBlockStmt(stmt *Block) error {
	return i.executeBlock(stmt.Statements, NewEnvironment(i.environment))
}

// executeBlock pushes env as the active environment, runs statements in
// order, and restores the previous environment on every exit path — normal
// completion, a propagated runtime error, or a controlReturn unwind — via
// defer, matching spec.md §5's scoped-acquisition discipline requirement.
func (i *Interpreter) executeBlock(statements []Stmt, env *Environment) error {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

// VisitClassStmt evaluates a class declaration (spec.md §4.4): the
// superclass, if any, is evaluated and must be a Class object; the class
// name is defined before the body so methods can reference the class
// itself; a `super` scope is opened around method construction iff there is
// a superclass, so every method's closure captures it.
func (i *Interpreter) VisitClassStmt(stmt *ClassStmt) error {
	var superclass *LoxClass
	if stmt.Superclass != nil {
		value, err := i.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}

		var ok bool
		superclass, ok = value.(*LoxClass)
		if !ok {
			return NewRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
	}

	i.environment.Define(stmt.Name.Lexeme, nil)

	if stmt.Superclass != nil {
		i.environment = NewEnvironment(i.environment)
		i.environment.Define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(stmt.Methods))
	for _, method := range stmt.Methods {
		kind := FunctionKindMethod
		if method.Name.Lexeme == "init" {
			kind = FunctionKindConstructor
		}

		methods[method.Name.Lexeme] = NewLoxFunction(method, i.environment, kind)
	}

	class := NewLoxClass(stmt.Name.Lexeme, superclass, methods)

	if stmt.Superclass != nil {
		i.environment = i.environment.enclosing
	}

	return i.environment.Assign(stmt.Name, class)
}

// VisitVarStmt evaluates a variable declaration: the initializer if
// present, else nil, defined in the current environment.
func (i *Interpreter) VisitVarStmt(stmt *VarStmt) error {
	var val interface{}
	var err error
	if stmt.Initializer != nil {
		val, err = i.evaluate(stmt.Initializer)
		if err != nil {
			return err
		}
	}

	i.environment.Define(stmt.Name.Lexeme, val)
	return nil
}

// VisitExpressionExpr interprets expression statements; statements produce
// no value, so the result is discarded.
func (i *Interpreter) VisitExpressionExpr(stmt *Expression) error {
	_, err := i.evaluate(stmt.Expression)
	return err
}

func (i *Interpreter) VisitIfStmt(stmt *IfStmt) error {
	condition, err := i.evaluate(stmt.Condition)
	if err != nil {
		return err
	}

	if isTruthy(condition) {
		return i.execute(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch)
	}

	return nil
}

func (i *Interpreter) VisitWhileStmt(stmt *WhileStmt) error {
	for {
		condition, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}

		if !isTruthy(condition) {
			return nil
		}

		if err := i.execute(stmt.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) VisitPrintExpr(stmt *Print) error {
	val, err := i.evaluate(stmt.Expression)
	if err != nil {
		return err
	}

	i.print(stringify(val))
	return nil
}

// VisitFunctionStmt evaluates a function declaration: build a Function
// object that closes over the current environment, then define it under
// its own name so later statements (and the function itself, recursively)
// can call it.
func (i *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) error {
	function := NewLoxFunction(stmt, i.environment, FunctionKindFunction)
	i.environment.Define(stmt.Name.Lexeme, function)
	return nil
}

// VisitReturnStmt unwinds to the nearest function call via controlReturn,
// per spec.md §9's design note — this is control flow, not an error, and is
// only ever caught by LoxFunction.Call.
func (i *Interpreter) VisitReturnStmt(stmt *ReturnStmt) error {
	var value interface{}
	if stmt.Value != nil {
		var err error
		value, err = i.evaluate(stmt.Value)
		if err != nil {
			return err
		}
	}

	return &controlReturn{value: value}
}

// --- Expressions ---

func (i *Interpreter) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	return i.lookUpVariable(expr.Name, expr)
}

// VisitAssignExpr evaluates the right-hand side, then writes it through
// AssignAt/Assign depending on whether the ResolveMap has a depth for this
// assignment (spec.md §4.4). Assignment itself evaluates to the assigned
// value, so it can nest inside other expressions.
func (i *Interpreter) VisitAssignExpr(expr *Assign) (interface{}, error) {
	val, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	if depth, ok := i.locals[expr]; ok {
		i.environment.AssignAt(depth, expr.Name, val)
	} else if err := i.globals.Assign(expr.Name, val); err != nil {
		return nil, err
	}

	return val, nil
}

func (i *Interpreter) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	if expr.Operator.Type == Or {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}

	return i.evaluate(expr.Right)
}

// VisitCallExpr dispatches invocation (spec.md §4.4): the callee must be
// Callable, arguments are evaluated left-to-right, and the argument count
// must match arity before the callable is actually invoked.
func (i *Interpreter) VisitCallExpr(expr *Call) (interface{}, error) {
	callee, err := i.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]interface{}, 0, len(expr.Arguments))
	for _, argument := range expr.Arguments {
		val, err := i.evaluate(argument)
		if err != nil {
			return nil, err
		}

		arguments = append(arguments, val)
	}

	callable, ok := asCallable(callee)
	if !ok {
		return nil, NewRuntimeError(expr.Paren, "Can only call functions and classes.")
	}

	if len(arguments) != callable.Arity() {
		return nil, NewRuntimeError(expr.Paren, fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(arguments)))
	}

	return callable.Call(i, arguments)
}

// VisitGetExpr evaluates `object.name`: the target must be an Instance.
func (i *Interpreter) VisitGetExpr(expr *Get) (interface{}, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := asInstance(object)
	if !ok {
		return nil, NewRuntimeError(expr.Name, "Only instances have properties.")
	}

	return instance.Get(expr.Name)
}

// VisitSetExpr evaluates `object.name = value`: the target must be an
// Instance; the field is written unconditionally and the assigned value is
// returned.
func (i *Interpreter) VisitSetExpr(expr *Set) (interface{}, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := asInstance(object)
	if !ok {
		return nil, NewRuntimeError(expr.Name, "Only instances have fields.")
	}

	value, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(expr.Name, value)
	return value, nil
}

// VisitSuperExpr evaluates `super.method` (spec.md §4.4): the resolver
// always opens the `super` scope immediately outside the `this` scope when
// a superclass is present, so `this` always sits exactly one scope closer
// in than the resolved depth of `super` itself.
func (i *Interpreter) VisitSuperExpr(expr *Super) (interface{}, error) {
	depth := i.locals[expr]
	superclass, _ := i.environment.GetAt(depth, "super").(*LoxClass)
	instance, _ := i.environment.GetAt(depth-1, "this").(*LoxInstance)

	method, ok := superclass.FindMethod(expr.Method.Lexeme)
	if !ok {
		return nil, NewRuntimeError(expr.Method, "Undefined property '"+expr.Method.Lexeme+"'.")
	}

	return method.Bind(instance), nil
}

// VisitThisExpr resolves exactly like a VarExpr referring to "this".
func (i *Interpreter) VisitThisExpr(expr *This) (interface{}, error) {
	return i.lookUpVariable(expr.Keyword, expr)
}

// VisitGroupingExpr evaluates the grouping expression's inner subexpression.
func (i *Interpreter) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return i.evaluate(expr.Expression)
}

// VisitLiteralExpr returns the literal token's runtime value, produced
// directly by the scanner.
func (i *Interpreter) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	return expr.Value, nil
}

func (i *Interpreter) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Bang:
		return !isTruthy(right), nil
	case Minus:
		if err := checkNumberOperand(expr.Operator, right); err != nil {
			return nil, err
		}
		return -right.(float64), nil
	}

	// unreachable: the parser never produces another unary operator.
	return nil, nil
}

func (i *Interpreter) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Greater:
		if err := checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) > right.(float64), nil
	case GreaterEqual:
		if err := checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) >= right.(float64), nil
	case Less:
		if err := checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) < right.(float64), nil
	case LessEqual:
		if err := checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) <= right.(float64), nil
	case BangEqual:
		return !isEqual(left, right), nil
	case EqualEqual:
		return isEqual(left, right), nil
	case Minus:
		if err := checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) - right.(float64), nil
	case Plus:
		leftNum, leftIsNum := left.(float64)
		rightNum, rightIsNum := right.(float64)
		if leftIsNum && rightIsNum {
			return leftNum + rightNum, nil
		}

		leftStr, leftIsStr := left.(string)
		rightStr, rightIsStr := right.(string)
		if leftIsStr && rightIsStr {
			return leftStr + rightStr, nil
		}

		return nil, NewRuntimeError(expr.Operator, "Operands must be two numbers or two strings.")
	case Slash:
		if err := checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) / right.(float64), nil
	case Star:
		if err := checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) * right.(float64), nil
	}

	// unreachable: the parser never produces another binary operator.
	return nil, nil
}
