package ast

import (
	"fmt"

	"mython/runtime"
)

// Print evaluates its arguments left to right, joins their printed forms
// with single spaces, and writes them to the context's output stream
// followed by one trailing newline.
type Print struct {
	Args []runtime.Executable
}

func (p *Print) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	var last runtime.Value
	out := ctx.Output()

	for i, arg := range p.Args {
		if i > 0 {
			fmt.Fprint(out, " ")
		}
		last = arg.Execute(scope, ctx)
		fmt.Fprint(out, stringify(last, ctx))
	}
	fmt.Fprint(out, "\n")

	return last
}

// stringify renders v the way Print and Stringify do: "None" for the
// empty value, a class instance's __str__() if it has one, else its Go
// String().
func stringify(v runtime.Value, ctx runtime.Context) string {
	if v == nil {
		return "None"
	}
	if inst, ok := v.(*runtime.ClassInstance); ok && inst.HasMethod("__str__", 0) {
		return stringify(inst.Call("__str__", nil, ctx), ctx)
	}
	return v.String()
}

// Stringify evaluates Arg and wraps its printed form in a new String.
type Stringify struct {
	Arg runtime.Executable
}

func (s *Stringify) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	val := s.Arg.Execute(scope, ctx)
	return runtime.String(stringify(val, ctx))
}
