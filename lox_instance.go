package lox

// LoxInstance is a class instance: a reference back to its class plus a
// property map, per spec.md §3's RuntimeObject.Instance variant.
type LoxInstance struct {
	klass  *LoxClass
	fields map[string]interface{}
}

func NewLoxInstance(klass *LoxClass) *LoxInstance {
	return &LoxInstance{klass: klass, fields: make(map[string]interface{})}
}

func (li *LoxInstance) String() string {
	return li.klass.Name + " instance"
}

// Get implements property/method access (spec.md §4.4's Access expression):
// a field takes priority over a method of the same name; a method found in
// the class chain is bound to this instance before being returned.
func (li *LoxInstance) Get(name Token) (interface{}, error) {
	if val, ok := li.fields[name.Lexeme]; ok {
		return val, nil
	}

	if method, ok := li.klass.FindMethod(name.Lexeme); ok {
		return method.Bind(li), nil
	}

	return nil, NewRuntimeError(name, "Undefined property '"+name.Lexeme+"'.")
}

// Set writes a field unconditionally — Lox instances are open, fields don't
// need to be declared by the class.
func (li *LoxInstance) Set(name Token, value interface{}) {
	li.fields[name.Lexeme] = value
}
