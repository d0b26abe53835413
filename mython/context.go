package mython

import "io"

// Context carries the ambient side-effect channels of an evaluation. Today
// that is only the output sink used by print; it holds no per-call state.
type Context struct {
	out io.Writer
}

func NewContext(out io.Writer) *Context {
	return &Context{out: out}
}

func (c *Context) Output() io.Writer {
	return c.out
}
