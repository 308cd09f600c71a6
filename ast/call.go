package ast

import "mython/runtime"

// MethodCall evaluates Object to an instance, evaluates Args left to
// right, and dispatches Name on the instance.
type MethodCall struct {
	Object runtime.Executable
	Name   string
	Args   []runtime.Executable
}

func (m *MethodCall) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	objVal := m.Object.Execute(scope, ctx)
	inst, ok := objVal.(*runtime.ClassInstance)
	if !ok {
		runtime.Raise("MethodCall.Execute(): cannot call %q on non-instance %v", m.Name, objVal)
	}

	args := evalArgs(m.Args, scope, ctx)
	return inst.Call(m.Name, args, ctx)
}

// NewInstance evaluates ClassExpr to a Class, constructs a fresh instance
// of it, and, if the class declares an __init__ matching the argument
// count, dispatches it before returning the instance.
type NewInstance struct {
	ClassExpr runtime.Executable
	Args      []runtime.Executable
}

func (n *NewInstance) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	classVal := n.ClassExpr.Execute(scope, ctx)
	class, ok := classVal.(*runtime.Class)
	if !ok {
		runtime.Raise("NewInstance.Execute(): %v is not a class", classVal)
	}

	inst := &runtime.ClassInstance{Class: class, Fields: runtime.NewClosure()}

	args := evalArgs(n.Args, scope, ctx)
	if inst.HasMethod("__init__", len(args)) {
		inst.Call("__init__", args, ctx)
	}

	return inst
}

func evalArgs(exprs []runtime.Executable, scope *runtime.Closure, ctx runtime.Context) []runtime.Value {
	args := make([]runtime.Value, len(exprs))
	for i, e := range exprs {
		args[i] = e.Execute(scope, ctx)
	}
	return args
}

// MethodDef is the parsed shape of one method inside a class body: it
// carries everything ClassDefinition needs to build a runtime.Method at
// execution time.
type MethodDef struct {
	Name   string
	Params []string
	Body   runtime.Executable
}

// ClassDefinition builds a runtime.Class from Methods (resolving Parent
// by name in scope, if given), binds it to Name in the current scope,
// and returns it. Building the class at Execute time - rather than at
// parse time - lets Parent name a class defined earlier by an ordinary,
// already-executed ClassDefinition statement.
type ClassDefinition struct {
	Name    string
	Parent  string
	Methods []MethodDef
}

func (c *ClassDefinition) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	var parent *runtime.Class
	if c.Parent != "" {
		parentVal, ok := scope.Get(c.Parent)
		if !ok {
			runtime.Raise("ClassDefinition.Execute(): unknown parent class %q", c.Parent)
		}
		parent, ok = parentVal.(*runtime.Class)
		if !ok {
			runtime.Raise("ClassDefinition.Execute(): %q is not a class", c.Parent)
		}
	}

	methods := make([]runtime.Method, len(c.Methods))
	for i, m := range c.Methods {
		methods[i] = runtime.Method{Name: m.Name, Params: m.Params, Body: m.Body}
	}

	class := runtime.NewClass(c.Name, methods, parent)
	scope.Set(c.Name, class)
	return class
}
