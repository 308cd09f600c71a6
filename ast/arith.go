package ast

import "mython/runtime"

// binaryArith evaluates two operands left to right; used by Add, Sub,
// Mult and Div to share their evaluation shape.
type binaryArith struct {
	LHS, RHS runtime.Executable
}

func (b binaryArith) eval(scope *runtime.Closure, ctx runtime.Context) (runtime.Value, runtime.Value) {
	return b.LHS.Execute(scope, ctx), b.RHS.Execute(scope, ctx)
}

// Add implements +: number+number sums, string+string concatenates, and
// a class instance with a one-argument __add__ dispatches to it.
type Add struct{ binaryArith }

func NewAdd(lhs, rhs runtime.Executable) *Add {
	return &Add{binaryArith{lhs, rhs}}
}

func (a *Add) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	lhs, rhs := a.eval(scope, ctx)

	switch l := lhs.(type) {
	case runtime.Number:
		r, ok := rhs.(runtime.Number)
		if !ok {
			runtime.Raise("Add(): cannot add Number and %T", rhs)
		}
		return l + r
	case runtime.String:
		r, ok := rhs.(runtime.String)
		if !ok {
			runtime.Raise("Add(): cannot add String and %T", rhs)
		}
		return l + r
	case *runtime.ClassInstance:
		if !l.HasMethod("__add__", 1) {
			runtime.Raise("Add(): %s has no __add__ method", l.Class.Name)
		}
		return l.Call("__add__", []runtime.Value{rhs}, ctx)
	default:
		runtime.Raise("Add(): unsupported operand type %T", lhs)
		panic("unreachable")
	}
}

// Sub implements binary - over numbers only.
type Sub struct{ binaryArith }

func NewSub(lhs, rhs runtime.Executable) *Sub {
	return &Sub{binaryArith{lhs, rhs}}
}

func (s *Sub) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	l, r := numericOperands(s.eval(scope, ctx))
	return l - r
}

// Mult implements binary * over numbers only.
type Mult struct{ binaryArith }

func NewMult(lhs, rhs runtime.Executable) *Mult {
	return &Mult{binaryArith{lhs, rhs}}
}

func (m *Mult) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	l, r := numericOperands(m.eval(scope, ctx))
	return l * r
}

// Div implements binary / over numbers only; division by zero is a
// RuntimeError, not a native fault.
type Div struct{ binaryArith }

func NewDiv(lhs, rhs runtime.Executable) *Div {
	return &Div{binaryArith{lhs, rhs}}
}

func (d *Div) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	l, r := numericOperands(d.eval(scope, ctx))
	if r == 0 {
		runtime.Raise("Div(): division by zero")
	}
	return l / r
}

func numericOperands(lhs, rhs runtime.Value) (runtime.Number, runtime.Number) {
	l, ok := lhs.(runtime.Number)
	if !ok {
		runtime.Raise("arithmetic: left operand is %T, want Number", lhs)
	}
	r, ok := rhs.(runtime.Number)
	if !ok {
		runtime.Raise("arithmetic: right operand is %T, want Number", rhs)
	}
	return l, r
}
