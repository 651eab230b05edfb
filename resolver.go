package lox

import (
	"github.com/dolthub/swiss"
	"github.com/lox-lang/lox/util"
)

// FunctionType tracks what kind of function body the resolver is currently
// inside, so it can reject `return` at the top level and a value-returning
// `return` inside an initializer (spec.md §4.3).
type FunctionType int

// ClassType tracks whether the resolver is currently inside a class body,
// and whether that class has a superclass, so it can reject `this`/`super`
// outside a class and `super` in a class with no superclass.
type ClassType int

const (
	FunctionTypeNone FunctionType = iota
	FunctionTypeFunction
	FunctionTypeMethod
	FunctionTypeInitializer
)

const (
	ClassTypeNone ClassType = iota
	ClassTypeClass
	ClassTypeSubclass
)

// scope maps a declared name to whether it has finished being defined yet
// (false = Declared, true = Defined — spec.md §3's "sentinel state
// distinguishable from Nil", visible only to the resolver).
type scope = *swiss.Map[string, bool]

func newScope() scope {
	return swiss.NewMap[string, bool](8)
}

// Resolver performs the single static pass described in spec.md §4.3: it
// walks the AST produced by the parser, populates interpreter.locals (the
// ResolveMap) with a depth for every variable/this/super reference it can
// bind to a local scope, and reports static errors through the shared
// ErrorReporter instead of returning them — a resolver error does not stop
// the walk, it accumulates, exactly like a parser error.
type Resolver struct {
	interpreter *Interpreter
	scopes      util.Stack[scope]

	currentFunction FunctionType
	currentClass    ClassType

	reporter *ErrorReporter
}

func NewResolver(interpreter *Interpreter, reporter *ErrorReporter) *Resolver {
	return &Resolver{
		interpreter:     interpreter,
		scopes:          *util.NewStack[scope](),
		currentFunction: FunctionTypeNone,
		currentClass:    ClassTypeNone,
		reporter:        reporter,
	}
}

// Resolve runs the static pass over a whole program (a list of top-level
// statements).
func (r *Resolver) Resolve(statements []Stmt) {
	r.resolveStatements(statements)
}

func (r *Resolver) resolveStatements(statements []Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(statement Stmt) {
	_ = statement.Accept(r)
}

func (r *Resolver) resolveExpr(expr Expr) {
	_, _ = expr.Accept(r)
}

// --- Expressions ---

func (r *Resolver) VisitAssignExpr(expr *Assign) (interface{}, error) {
	r.resolveExpr(expr.Value)
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	// Static analysis does no control flow or short-circuiting: a Logical
	// expression resolves exactly like any other binary operator.
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(expr *Call) (interface{}, error) {
	r.resolveExpr(expr.Callee)
	for _, argument := range expr.Arguments {
		r.resolveExpr(argument)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(expr *Get) (interface{}, error) {
	// A property name is not a variable: only the target object expression
	// needs resolving.
	r.resolveExpr(expr.Object)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(expr *Set) (interface{}, error) {
	r.resolveExpr(expr.Value)
	r.resolveExpr(expr.Object)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(expr *Super) (interface{}, error) {
	if r.currentClass == ClassTypeNone {
		r.reporter.TokenError(expr.Keyword, "Can't use 'super' outside of a class.")
	} else if r.currentClass != ClassTypeSubclass {
		r.reporter.TokenError(expr.Keyword, "Can't use 'super' in a class with no superclass.")
	}

	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(expr *This) (interface{}, error) {
	if r.currentClass == ClassTypeNone {
		r.reporter.TokenError(expr.Keyword, "Can't use 'this' outside of a class.")
		return nil, nil
	}

	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	r.resolveExpr(expr.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	// A literal mentions no variables and has no subexpression: nothing to do.
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	r.resolveExpr(expr.Right)
	return nil, nil
}

// VisitVarExpr resolves a variable reference. If the variable exists in the
// current innermost scope but is still Declared (not yet Defined), the
// reference is inside its own initializer, which is a static error.
func (r *Resolver) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	if !r.scopes.IsEmpty() {
		if innermost, err := r.scopes.Peek(); err == nil {
			if defined, ok := innermost.Get(expr.Name.Lexeme); ok && !defined {
				r.reporter.TokenError(expr.Name, "Can't read local variable in its own initializer.")
			}
		}
	}

	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

// --- Statements ---

func (r *Resolver) VisitBlockStmt(stmt *Block) error {
	r.beginScope()
	r.resolveStatements(stmt.Statements)
	r.endScope()
	return nil
}

// VisitClassStmt resolves a class declaration: the class name is defined
// eagerly (so methods can refer to the class by name), the superclass
// expression is resolved, and — if a superclass is present — an extra scope
// binds `super` around the one that always binds `this`, matching the
// runtime scope-threading spec.md §4.4 relies on for super.method calls.
func (r *Resolver) VisitClassStmt(stmt *ClassStmt) error {
	enclosingClass := r.currentClass
	r.currentClass = ClassTypeClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil && stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
		r.reporter.TokenError(stmt.Superclass.Name, "A class can't inherit from itself.")
	}

	if stmt.Superclass != nil {
		r.currentClass = ClassTypeSubclass
		r.resolveExpr(stmt.Superclass)

		r.beginScope()
		superScope, _ := r.scopes.Peek()
		superScope.Put("super", true)
	}

	r.beginScope()
	thisScope, _ := r.scopes.Peek()
	thisScope.Put("this", true)

	for _, method := range stmt.Methods {
		declaration := FunctionTypeMethod
		if method.Name.Lexeme == "init" {
			declaration = FunctionTypeInitializer
		}

		r.resolveFunction(method, declaration)
	}

	r.endScope()

	if stmt.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

func (r *Resolver) VisitExpressionExpr(expr *Expression) error {
	r.resolveExpr(expr.Expression)
	return nil
}

func (r *Resolver) VisitPrintExpr(expr *Print) error {
	r.resolveExpr(expr.Expression)
	return nil
}

// VisitVarStmt resolves a variable declaration: declare first (so a
// self-reference in the initializer can be caught), resolve the
// initializer, then define.
func (r *Resolver) VisitVarStmt(stmt *VarStmt) error {
	r.declare(stmt.Name)
	if stmt.Initializer != nil {
		r.resolveExpr(stmt.Initializer)
	}

	r.define(stmt.Name)
	return nil
}

func (r *Resolver) VisitIfStmt(stmt *IfStmt) error {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.ThenBranch)
	if stmt.ElseBranch != nil {
		r.resolveStmt(stmt.ElseBranch)
	}

	return nil
}

func (r *Resolver) VisitWhileStmt(stmt *WhileStmt) error {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.Body)
	return nil
}

// VisitFunctionStmt resolves a function declaration. Unlike a variable, the
// function's own name is defined eagerly, before its body is resolved, so
// the function can recursively refer to itself.
func (r *Resolver) VisitFunctionStmt(stmt *FunctionStmt) error {
	r.declare(stmt.Name)
	r.define(stmt.Name)

	r.resolveFunction(stmt, FunctionTypeFunction)
	return nil
}

func (r *Resolver) VisitReturnStmt(stmt *ReturnStmt) error {
	if r.currentFunction == FunctionTypeNone {
		r.reporter.TokenError(stmt.Keyword, "Can't return from top-level code.")
	}

	if stmt.Value != nil {
		if r.currentFunction == FunctionTypeInitializer {
			r.reporter.TokenError(stmt.Keyword, "Can't return a value from an initializer.")
		}

		r.resolveExpr(stmt.Value)
	}

	return nil
}

// --- scope bookkeeping ---

func (r *Resolver) beginScope() {
	r.scopes.Push(newScope())
}

func (r *Resolver) endScope() {
	r.scopes.Pop()
}

// declare adds name to the innermost scope, marked Declared (not yet ready
// to be referenced). Redeclaring the same name in the same local scope is a
// static error; globals (scopes empty) allow shadowing freely.
func (r *Resolver) declare(name Token) {
	if r.scopes.IsEmpty() {
		return
	}

	innermost, _ := r.scopes.Peek()
	if _, ok := innermost.Get(name.Lexeme); ok {
		r.reporter.TokenError(name, "Already a variable with this name in this scope.")
	}

	innermost.Put(name.Lexeme, false)
}

// define marks name Defined in the innermost scope.
func (r *Resolver) define(name Token) {
	if r.scopes.IsEmpty() {
		return
	}

	innermost, _ := r.scopes.Peek()
	innermost.Put(name.Lexeme, true)
}

// resolveLocal walks the scope stack innermost-out looking for name. The
// first match records how many scopes out it was found — that becomes the
// ResolveMap depth for expr. No match means the reference is global and is
// left unrecorded.
func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for i := r.scopes.Size() - 1; i >= 0; i-- {
		s, err := r.scopes.Get(i)
		if err != nil {
			continue
		}

		if _, ok := s.Get(name.Lexeme); ok {
			r.interpreter.resolve(expr, r.scopes.Size()-1-i)
			return
		}
	}
}

// resolveFunction resolves a function/method body in a fresh scope holding
// its parameters. funcType becomes currentFunction for the duration, so
// nested `return`/`this` checks see the innermost function they're in.
func (r *Resolver) resolveFunction(function *FunctionStmt, funcType FunctionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = funcType

	r.beginScope()
	for _, param := range function.Params {
		r.declare(param)
		r.define(param)
	}

	r.resolveStatements(function.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}
