package runtime

import "fmt"

// Executable is the shared execution contract every AST node satisfies.
// It lives in package runtime (rather than ast) so that a Method can hold
// one without runtime importing the ast package that implements it.
type Executable interface {
	Execute(scope *Closure, ctx Context) Value
}

// Method is a named, callable member of a Class.
type Method struct {
	Name   string
	Params []string
	Body   Executable
}

// Class is a Mython class: a name, an optional parent, and a method table.
// Parent is borrowed - the defining ClassDefinition keeps every Class it
// creates reachable for as long as any instance might still need it.
type Class struct {
	Name   string
	Parent *Class

	declared []Method
	flat     map[string]*Method
}

func (*Class) valueMarker() {}

func (c *Class) String() string {
	return fmt.Sprintf("<class %s>", c.Name)
}

// NewClass builds a class from its own methods and an optional parent,
// eagerly flattening the method table so dispatch is O(1): child methods
// with the same name as a parent's shadow it.
func NewClass(name string, methods []Method, parent *Class) *Class {
	c := &Class{Name: name, Parent: parent, declared: methods}

	flat := make(map[string]*Method)
	if parent != nil && parent != c {
		for name, m := range parent.flat {
			flat[name] = m
		}
	}
	for i := range c.declared {
		flat[c.declared[i].Name] = &c.declared[i]
	}
	c.flat = flat

	return c
}

// GetMethod looks name up in the table NewClass flattened, so the class's
// own methods win over its ancestors'; it returns nil if neither the class
// nor any ancestor defines name.
func (c *Class) GetMethod(name string) *Method {
	if m, ok := c.flat[name]; ok {
		return m
	}
	return nil
}
