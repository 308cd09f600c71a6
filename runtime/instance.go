package runtime

import "fmt"

// ClassInstance is a live object of some Class: its class plus its own
// field table. Fields and methods live in separate tables: Call looks only
// at the class's methods, so a field never hides a method of the same name.
type ClassInstance struct {
	Class  *Class
	Fields *Closure
}

func (*ClassInstance) valueMarker() {}

func (i *ClassInstance) String() string {
	return fmt.Sprintf("<%s object at %p>", i.Class.Name, i)
}

// HasMethod reports whether the instance's class (or an ancestor) defines
// a method by that name taking exactly arity arguments.
func (i *ClassInstance) HasMethod(name string, arity int) bool {
	m := i.Class.GetMethod(name)
	return m != nil && len(m.Params) == arity
}

// Call dispatches a method by name. It builds a fresh local scope with
// self bound to the instance and each formal parameter bound to the
// matching actual argument, then executes the method body in it.
func (i *ClassInstance) Call(name string, args []Value, ctx Context) Value {
	if !i.HasMethod(name, len(args)) {
		panic(&RuntimeError{Message: fmt.Sprintf("%s has no method %q taking %d argument(s)", i.Class.Name, name, len(args))})
	}

	method := i.Class.GetMethod(name)
	scope := NewClosure()
	scope.Set("self", i)
	for idx, param := range method.Params {
		scope.Set(param, args[idx])
	}

	return method.Body.Execute(scope, ctx)
}
