package ast

import "mython/runtime"

// VariableValue looks up a dotted chain of identifiers: the first name is
// resolved in scope, each further name narrows into the previous value's
// field table (which requires that value to be a ClassInstance).
type VariableValue struct {
	DottedIDs []string
}

func (v *VariableValue) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	if len(v.DottedIDs) == 0 {
		runtime.Raise("VariableValue.Execute(): empty identifier chain")
	}

	val, ok := scope.Get(v.DottedIDs[0])
	if !ok {
		runtime.Raise("VariableValue.Execute(): unbound name %q", v.DottedIDs[0])
	}

	for _, name := range v.DottedIDs[1:] {
		inst, ok := val.(*runtime.ClassInstance)
		if !ok {
			runtime.Raise("VariableValue.Execute(): %q is not an instance, has no field %q", val, name)
		}
		val, ok = inst.Fields.Get(name)
		if !ok {
			runtime.Raise("VariableValue.Execute(): %s has no field %q", inst.Class.Name, name)
		}
	}

	return val
}

// Assignment binds the result of evaluating RHS to Name in scope.
type Assignment struct {
	Name string
	RHS  runtime.Executable
}

func (a *Assignment) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	val := a.RHS.Execute(scope, ctx)
	scope.Set(a.Name, val)
	return val
}

// FieldAssignment evaluates Object to a ClassInstance and assigns the
// evaluated RHS into its field table under Field.
type FieldAssignment struct {
	Object runtime.Executable
	Field  string
	RHS    runtime.Executable
}

func (a *FieldAssignment) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	objVal := a.Object.Execute(scope, ctx)
	inst, ok := objVal.(*runtime.ClassInstance)
	if !ok {
		runtime.Raise("FieldAssignment.Execute(): cannot assign field %q on non-instance %v", a.Field, objVal)
	}

	val := a.RHS.Execute(scope, ctx)
	inst.Fields.Set(a.Field, val)
	return val
}
