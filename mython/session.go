package mython

import "io"

// Session evaluates successive snippets against one persistent global
// closure, for interactive use. Class declarations survive across snippets:
// the parser's class registry is carried along with the closure.
type Session struct {
	classes map[string]*Class
	global  Closure
	exec    *Execution
}

func NewSession(out io.Writer) *Session {
	return &Session{
		classes: make(map[string]*Class),
		global:  make(Closure),
		exec:    newExecution(NewContext(out)),
	}
}

// Eval runs one snippet and returns the value of its last statement (None
// for an empty snippet). Print output goes to the session's writer.
func (s *Session) Eval(src string) (Value, error) {
	tokens, err := lex(src)
	if err != nil {
		return NewNone(), err
	}
	program, err := parseTokens(tokens, s.classes)
	if err != nil {
		return NewNone(), err
	}

	last := NewNone()
	for _, stmt := range program.Statements {
		val, returned, err := s.exec.execStatement(stmt, s.global)
		if err != nil {
			return NewNone(), err
		}
		if returned {
			return NewNone(), runtimeErrorf("return outside of a method")
		}
		last = val
	}
	return last, nil
}

// Render formats a value the way print would, running __str__ hooks with
// output directed at the session's writer.
func (s *Session) Render(v Value) (string, error) {
	return s.exec.render(v)
}

// Globals exposes the session's top-level bindings, for inspection panels.
func (s *Session) Globals() Closure {
	return s.global
}

// Reset drops every binding and declared class.
func (s *Session) Reset() {
	s.classes = make(map[string]*Class)
	s.global = make(Closure)
}
