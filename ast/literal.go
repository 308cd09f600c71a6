// Package ast defines the executable node set the parser builds: every
// node implements runtime.Executable directly, with no visitor in
// between. Statements and expressions share the same contract, since the
// language draws no hard line between them.
package ast

import "mython/runtime"

// NumericConst always evaluates to the same embedded Number.
type NumericConst struct {
	Value runtime.Number
}

func (n *NumericConst) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	return n.Value
}

// StringConst always evaluates to the same embedded String.
type StringConst struct {
	Value runtime.String
}

func (n *StringConst) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	return n.Value
}

// BoolConst always evaluates to the same embedded Bool.
type BoolConst struct {
	Value runtime.Bool
}

func (n *BoolConst) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	return n.Value
}

// None always evaluates to the nil Value, the language's None.
type None struct{}

func (None) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	return nil
}
