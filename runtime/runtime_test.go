package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mython/runtime"
)

// stubBody is a minimal Executable used to build methods without
// depending on the ast package (which itself depends on runtime).
type stubBody struct {
	fn func(scope *runtime.Closure, ctx runtime.Context) runtime.Value
}

func (s stubBody) Execute(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
	return s.fn(scope, ctx)
}

func TestIsTrue(t *testing.T) {
	assert.True(t, runtime.IsTrue(runtime.Number(1)))
	assert.False(t, runtime.IsTrue(runtime.Number(0)))
	assert.True(t, runtime.IsTrue(runtime.String("x")))
	assert.False(t, runtime.IsTrue(runtime.String("")))
	assert.True(t, runtime.IsTrue(runtime.Bool(true)))
	assert.False(t, runtime.IsTrue(runtime.Bool(false)))
	assert.False(t, runtime.IsTrue(nil))
}

func TestClosureGetSetHas(t *testing.T) {
	c := runtime.NewClosure()
	assert.False(t, c.Has("x"))
	c.Set("x", runtime.Number(5))
	assert.True(t, c.Has("x"))
	v, ok := c.Get("x")
	require.True(t, ok)
	assert.Equal(t, runtime.Number(5), v)
}

func TestInheritanceShadowing(t *testing.T) {
	greetA := stubBody{func(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
		return runtime.String("A")
	}}
	greetB := stubBody{func(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
		return runtime.String("B")
	}}

	classA := runtime.NewClass("A", []runtime.Method{{Name: "greet", Body: greetA}}, nil)
	classB := runtime.NewClass("B", []runtime.Method{{Name: "greet", Body: greetB}}, classA)

	inst := &runtime.ClassInstance{Class: classB, Fields: runtime.NewClosure()}
	result := inst.Call("greet", nil, runtime.NewDummyContext())
	assert.Equal(t, runtime.String("B"), result)
}

func TestInheritedMethodFallsThroughToParent(t *testing.T) {
	onlyOnA := stubBody{func(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
		return runtime.String("from A")
	}}
	classA := runtime.NewClass("A", []runtime.Method{{Name: "onlyA", Body: onlyOnA}}, nil)
	classB := runtime.NewClass("B", nil, classA)

	inst := &runtime.ClassInstance{Class: classB, Fields: runtime.NewClosure()}
	assert.True(t, inst.HasMethod("onlyA", 0))
	assert.Equal(t, runtime.String("from A"), inst.Call("onlyA", nil, runtime.NewDummyContext()))
}

func TestCallBindsSelfAndParams(t *testing.T) {
	var seenSelf runtime.Value
	var seenParam runtime.Value
	body := stubBody{func(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
		seenSelf, _ = scope.Get("self")
		seenParam, _ = scope.Get("n")
		return nil
	}}
	class := runtime.NewClass("C", []runtime.Method{{Name: "m", Params: []string{"n"}, Body: body}}, nil)
	inst := &runtime.ClassInstance{Class: class, Fields: runtime.NewClosure()}

	inst.Call("m", []runtime.Value{runtime.Number(7)}, runtime.NewDummyContext())
	assert.Same(t, inst, seenSelf)
	assert.Equal(t, runtime.Number(7), seenParam)
}

func TestCallWrongArityFails(t *testing.T) {
	body := stubBody{func(scope *runtime.Closure, ctx runtime.Context) runtime.Value { return nil }}
	class := runtime.NewClass("C", []runtime.Method{{Name: "m", Params: []string{"a"}, Body: body}}, nil)
	inst := &runtime.ClassInstance{Class: class, Fields: runtime.NewClosure()}

	assert.Panics(t, func() {
		inst.Call("m", nil, runtime.NewDummyContext())
	})
}

func TestEqualScalarsReflexive(t *testing.T) {
	ctx := runtime.NewDummyContext()
	assert.True(t, runtime.Equal(runtime.Number(5), runtime.Number(5), ctx))
	assert.True(t, runtime.Equal(runtime.String("hi"), runtime.String("hi"), ctx))
	assert.True(t, runtime.Equal(runtime.Bool(true), runtime.Bool(true), ctx))
	assert.True(t, runtime.Equal(nil, nil, ctx))
}

func TestEqualDispatchesToMagicMethod(t *testing.T) {
	eq := stubBody{func(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
		self, _ := scope.Get("self")
		other, _ := scope.Get("other")
		return runtime.Bool(self.(*runtime.ClassInstance).Fields.Has("tag") && other == runtime.Number(1))
	}}
	class := runtime.NewClass("C", []runtime.Method{{Name: "__eq__", Params: []string{"other"}, Body: eq}}, nil)
	inst := &runtime.ClassInstance{Class: class, Fields: runtime.NewClosure()}
	inst.Fields.Set("tag", runtime.Bool(true))

	assert.True(t, runtime.Equal(inst, runtime.Number(1), runtime.NewDummyContext()))
}

func TestLessDispatchesToMagicMethod(t *testing.T) {
	lt := stubBody{func(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
		return runtime.Bool(true)
	}}
	class := runtime.NewClass("C", []runtime.Method{{Name: "__lt__", Params: []string{"other"}, Body: lt}}, nil)
	inst := &runtime.ClassInstance{Class: class, Fields: runtime.NewClosure()}

	assert.True(t, runtime.Less(inst, runtime.Number(1), runtime.NewDummyContext()))
}

func TestGreaterDispatchesLeftOperandsMagicMethods(t *testing.T) {
	lt := stubBody{func(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
		return runtime.Bool(false)
	}}
	eq := stubBody{func(scope *runtime.Closure, ctx runtime.Context) runtime.Value {
		return runtime.Bool(false)
	}}
	class := runtime.NewClass("C", []runtime.Method{
		{Name: "__lt__", Params: []string{"other"}, Body: lt},
		{Name: "__eq__", Params: []string{"other"}, Body: eq},
	}, nil)
	inst := &runtime.ClassInstance{Class: class, Fields: runtime.NewClosure()}

	assert.True(t, runtime.Greater(inst, runtime.Number(1), runtime.NewDummyContext()),
		"Greater(inst, x) must dispatch inst.__lt__/__eq__, not x.__lt__(inst)")
}

func TestDummyContextCollectsOutput(t *testing.T) {
	ctx := runtime.NewDummyContext()
	ctx.Output().Write([]byte("hi"))
	assert.Equal(t, "hi", ctx.String())
}
