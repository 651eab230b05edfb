package lox

// LoxClass is a class runtime object: its own method table plus an optional
// superclass reference, per spec.md §3's RuntimeObject.Class variant. Arity
// is derived from the `init` method's arity, or zero if there is none.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	methods    map[string]*LoxFunction
}

// NewLoxClass constructs a class object. superclass is nil for a class with
// no `< Name` clause.
func NewLoxClass(name string, superclass *LoxClass, methods map[string]*LoxFunction) *LoxClass {
	return &LoxClass{Name: name, Superclass: superclass, methods: methods}
}

func (lc *LoxClass) String() string {
	return lc.Name
}

// Call constructs a new instance and, if an `init` method exists, binds and
// invokes it with the call's arguments (its return value is ignored — the
// instance itself is always what a class call produces).
func (lc *LoxClass) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	instance := NewLoxInstance(lc)

	if initializer, ok := lc.FindMethod("init"); ok {
		_, err := initializer.Bind(instance).Call(interpreter, arguments)
		if err != nil {
			return nil, err
		}
	}

	return instance, nil
}

// Arity mirrors the `init` method's arity, or zero if the class has none.
func (lc *LoxClass) Arity() int {
	if initializer, ok := lc.FindMethod("init"); ok {
		return initializer.Arity()
	}

	return 0
}

// FindMethod walks the inheritance chain innermost class first, per
// spec.md §4.5.
func (lc *LoxClass) FindMethod(name string) (*LoxFunction, bool) {
	if method, ok := lc.methods[name]; ok {
		return method, true
	}

	if lc.Superclass != nil {
		return lc.Superclass.FindMethod(name)
	}

	return nil, false
}

// MethodNames returns the class's own declared method names (not inherited
// ones), sorted for deterministic output. It backs the REPL's `:methods`
// introspection command and tests that need stable ordering.
func (lc *LoxClass) MethodNames() []string {
	names := make([]string, 0, len(lc.methods))
	for name := range lc.methods {
		names = append(names, name)
	}

	sortStrings(names)
	return names
}
