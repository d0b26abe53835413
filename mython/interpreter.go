package mython

import (
	"fmt"
	"io"
)

// Interpreter wires a Mython source stream to an output stream. Execution is
// a plain synchronous walk: lex, parse, evaluate against a fresh global
// closure.
type Interpreter struct {
	source io.Reader
	out    io.Writer
}

func New(source io.Reader, out io.Writer) *Interpreter {
	return &Interpreter{source: source, out: out}
}

// Execute runs the program. A failing program yields a *LexerError,
// *ParseError, or *RuntimeError; a failure to read the source or to write
// print output is returned as that I/O error (wrapped, for the read).
func (i *Interpreter) Execute() error {
	src, err := io.ReadAll(i.source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	tokens, err := lex(string(src))
	if err != nil {
		return err
	}
	program, err := parseTokens(tokens, make(map[string]*Class))
	if err != nil {
		return err
	}

	exec := newExecution(NewContext(i.out))
	global := make(Closure)
	_, returned, err := exec.execStatements(program.Statements, global)
	if err != nil {
		return err
	}
	if returned {
		return runtimeErrorf("return outside of a method")
	}
	return nil
}

// Run executes source against out in one call.
func Run(source io.Reader, out io.Writer) error {
	return New(source, out).Execute()
}

// Check lexes and parses source without executing it.
func Check(source io.Reader) error {
	src, err := io.ReadAll(source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	tokens, err := lex(string(src))
	if err != nil {
		return err
	}
	_, err = parseTokens(tokens, make(map[string]*Class))
	return err
}
