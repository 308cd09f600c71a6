package ast

import "mython/runtime"

// Or evaluates both operands unconditionally (matching the source
// language's eager semantics - see DESIGN.md) and returns their logical
// disjunction as a fresh Bool.
type Or struct {
	LHS, RHS runtime.Executable
}

func (o *Or) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	lhs := runtime.IsTrue(o.LHS.Execute(scope, ctx))
	rhs := runtime.IsTrue(o.RHS.Execute(scope, ctx))
	return runtime.Bool(lhs || rhs)
}

// And evaluates both operands unconditionally and returns their logical
// conjunction as a fresh Bool.
type And struct {
	LHS, RHS runtime.Executable
}

func (a *And) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	lhs := runtime.IsTrue(a.LHS.Execute(scope, ctx))
	rhs := runtime.IsTrue(a.RHS.Execute(scope, ctx))
	return runtime.Bool(lhs && rhs)
}

// Not returns the negation of Arg's truthiness.
type Not struct {
	Arg runtime.Executable
}

func (n *Not) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	return runtime.Bool(!runtime.IsTrue(n.Arg.Execute(scope, ctx)))
}

// Comparator names one of the six comparison operators a Comparison node
// can apply.
type Comparator uint8

const (
	CmpEq Comparator = iota
	CmpNotEq
	CmpLess
	CmpGreater
	CmpLessOrEq
	CmpGreaterOrEq
)

// Comparison applies Cmp to the evaluated LHS and RHS and wraps the
// result in a Bool.
type Comparison struct {
	Cmp      Comparator
	LHS, RHS runtime.Executable
}

func (c *Comparison) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	lhs := c.LHS.Execute(scope, ctx)
	rhs := c.RHS.Execute(scope, ctx)

	var result bool
	switch c.Cmp {
	case CmpEq:
		result = runtime.Equal(lhs, rhs, ctx)
	case CmpNotEq:
		result = runtime.NotEqual(lhs, rhs, ctx)
	case CmpLess:
		result = runtime.Less(lhs, rhs, ctx)
	case CmpGreater:
		result = runtime.Greater(lhs, rhs, ctx)
	case CmpLessOrEq:
		result = runtime.LessOrEqual(lhs, rhs, ctx)
	case CmpGreaterOrEq:
		result = runtime.GreaterOrEqual(lhs, rhs, ctx)
	default:
		runtime.Raise("Comparison.Execute(): unknown comparator %d", c.Cmp)
	}

	return runtime.Bool(result)
}
