package lox

import "github.com/dolthub/swiss"

// Environment is one scope in the chain described by spec.md §4.2: a
// mapping identifier -> Value, plus a pointer to the enclosing scope. The
// outermost Environment (enclosing == nil) is the global scope; every other
// Environment is a local scope pushed on block/call entry.
//
// Scope storage uses swiss.Map instead of a built-in Go map — the same
// open-addressing hash table mna-nenuphar's lang/machine package uses for
// its own name/value tables — since most scopes are small and short-lived
// (a block, a call frame) and swiss.Map avoids the bucket-array overhead of
// Go's built-in map for that shape.
type Environment struct {
	values    *swiss.Map[string, interface{}]
	enclosing *Environment
}

// NewEnvironment creates a new scope enclosed by parent. Pass nil to create
// the root (global) scope.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{values: swiss.NewMap[string, interface{}](8), enclosing: parent}
}

// Define writes into this scope directly (the innermost local scope if the
// caller holds one, the global scope if this is the root). Re-declaration
// silently overwrites, per spec.md §4.2.
func (e *Environment) Define(name string, value interface{}) {
	e.values.Put(name, value)
}

// Get looks up name starting at this scope and walking outward to globals.
// It never returns Nil for a miss — a miss is always an UndefinedVariable
// error, per spec.md §4.2.
func (e *Environment) Get(name Token) (interface{}, error) {
	if val, ok := e.values.Get(name.Lexeme); ok {
		return val, nil
	}

	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}

	return nil, NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

// GetGlobal reads directly from the root scope, skipping the local chain.
func (e *Environment) GetGlobal(name string) (interface{}, bool) {
	return e.global().values.Get(name)
}

// Names returns every identifier bound directly in this scope, not walking
// the enclosing chain. Used by the REPL's `:globals` command against the
// root environment. Goes through swiss.Map's own Iter/Count rather than an
// Iterator type — mna-nenuphar needed a replace directive onto a forked
// swiss for that extra API; this module tracks upstream dolthub/swiss
// directly, so only the callback-based walk is available.
func (e *Environment) Names() []string {
	names := make([]string, 0, e.values.Count())
	e.values.Iter(func(name string, _ interface{}) bool {
		names = append(names, name)
		return false
	})

	return names
}

// Assign locates name walking innermost-first then globals and overwrites
// it in place. It never creates a new binding — assigning to an undeclared
// name is an UndefinedVariable error.
func (e *Environment) Assign(name Token, value interface{}) error {
	if _, ok := e.values.Get(name.Lexeme); ok {
		e.values.Put(name.Lexeme, value)
		return nil
	}

	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}

	return NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

// GetAt reads name from the scope exactly `distance` hops outward from e, as
// recorded by the resolver. The binding is guaranteed to exist by the
// resolver's invariants; a miss here is a programmer error, not a Lox
// runtime error.
func (e *Environment) GetAt(distance int, name string) interface{} {
	val, _ := e.ancestor(distance).values.Get(name)
	return val
}

// AssignAt writes directly into the scope at the resolved distance.
func (e *Environment) AssignAt(distance int, name Token, value interface{}) {
	e.ancestor(distance).values.Put(name.Lexeme, value)
}

// ancestor walks a fixed number of hops up the enclosing chain.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}

	return env
}

// global returns the root scope of the chain e belongs to.
func (e *Environment) global() *Environment {
	env := e
	for env.enclosing != nil {
		env = env.enclosing
	}

	return env
}
