package runtime

import (
	"bytes"
	"io"
)

// Context carries the ambient services an executing program needs beyond
// its own scope chain: right now, just where Print writes to.
type Context interface {
	Output() io.Writer
}

// DummyContext discards nothing but writes to memory instead of a real
// stream; useful for tests that want to assert on Print output.
type DummyContext struct {
	buf bytes.Buffer
}

// NewDummyContext returns a Context backed by an in-memory buffer.
func NewDummyContext() *DummyContext {
	return &DummyContext{}
}

func (c *DummyContext) Output() io.Writer { return &c.buf }

// String returns everything written to the context so far.
func (c *DummyContext) String() string { return c.buf.String() }

// SimpleContext forwards Print output straight to a caller-supplied stream,
// typically os.Stdout for a REPL or file-execution run.
type SimpleContext struct {
	w io.Writer
}

// NewSimpleContext returns a Context that writes to w.
func NewSimpleContext(w io.Writer) *SimpleContext {
	return &SimpleContext{w: w}
}

func (c *SimpleContext) Output() io.Writer { return c.w }
