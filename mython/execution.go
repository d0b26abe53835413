package mython

import "io"

const (
	addMethod  = "__add__"
	initMethod = "__init__"
	strMethod  = "__str__"
	eqMethod   = "__eq__"
	ltMethod   = "__lt__"
)

// Execution walks the tree. Statement evaluation yields a three-way result
// (value, returned, error): the returned flag is the non-local return signal
// of a method body. It travels through Compound and IfElse untouched and is
// consumed exactly at the MethodBody boundary, so it can neither cross a
// method frame nor be mistaken for an error.
type Execution struct {
	ctx *Context
}

func newExecution(ctx *Context) *Execution {
	return &Execution{ctx: ctx}
}

func (exec *Execution) execStatements(stmts []Statement, closure Closure) (Value, bool, error) {
	for _, stmt := range stmts {
		val, returned, err := exec.execStatement(stmt, closure)
		if err != nil {
			return NewNone(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return NewNone(), false, nil
}

func (exec *Execution) execStatement(stmt Statement, closure Closure) (Value, bool, error) {
	switch s := stmt.(type) {
	case *Assignment:
		val, err := exec.evalExpression(s.Value, closure)
		if err != nil {
			return NewNone(), false, err
		}
		closure.Set(s.Name, val)
		return val, false, nil

	case *FieldAssignment:
		target, err := exec.evalExpression(s.Target, closure)
		if err != nil {
			return NewNone(), false, err
		}
		inst := target.Instance()
		if inst == nil {
			return NewNone(), false, runtimeErrorf("cannot assign field %q on a %s value", s.Field, target.Kind())
		}
		val, err := exec.evalExpression(s.Value, closure)
		if err != nil {
			return NewNone(), false, err
		}
		inst.Fields.Set(s.Field, val)
		return val, false, nil

	case *Print:
		val, err := exec.execPrint(s, closure)
		return val, false, err

	case *Return:
		val, err := exec.evalExpression(s.Value, closure)
		if err != nil {
			return NewNone(), false, err
		}
		return val, true, nil

	case *ClassDefinition:
		val := NewClassValue(s.Class)
		closure.Set(s.Class.Name, val)
		return val, false, nil

	case *IfElse:
		cond, err := exec.evalExpression(s.Condition, closure)
		if err != nil {
			return NewNone(), false, err
		}
		if isTrue(cond) {
			return exec.execStatements(s.Then.Statements, closure)
		}
		if s.Else != nil {
			return exec.execStatements(s.Else.Statements, closure)
		}
		return NewNone(), false, nil

	case *Compound:
		return exec.execStatements(s.Statements, closure)

	case *MethodBody:
		val, returned, err := exec.execStatements(s.Body.Statements, closure)
		if err != nil {
			return NewNone(), false, err
		}
		if returned {
			return val, false, nil
		}
		return NewNone(), false, nil

	case *ExprStmt:
		val, err := exec.evalExpression(s.Expr, closure)
		return val, false, err

	default:
		return NewNone(), false, runtimeErrorf("unsupported statement %T", stmt)
	}
}

func (exec *Execution) execPrint(s *Print, closure Closure) (Value, error) {
	out := exec.ctx.Output()
	for i, arg := range s.Args {
		if i > 0 {
			if _, err := io.WriteString(out, " "); err != nil {
				return NewNone(), err
			}
		}
		val, err := exec.evalExpression(arg, closure)
		if err != nil {
			return NewNone(), err
		}
		rendered, err := exec.render(val)
		if err != nil {
			return NewNone(), err
		}
		if _, err := io.WriteString(out, rendered); err != nil {
			return NewNone(), err
		}
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		return NewNone(), err
	}
	return NewNone(), nil
}

func (exec *Execution) evalExpression(expr Expression, closure Closure) (Value, error) {
	switch e := expr.(type) {
	case *NumberLit:
		return NewNumber(e.Value), nil
	case *StringLit:
		return NewString(e.Value), nil
	case *BoolLit:
		return NewBool(e.Value), nil
	case *NoneLit:
		return NewNone(), nil

	case *VariableValue:
		return exec.resolveVariable(e, closure)

	case *NotExpr:
		val, err := exec.evalExpression(e.Operand, closure)
		if err != nil {
			return NewNone(), err
		}
		return NewBool(!isTrue(val)), nil

	case *BinaryExpr:
		return exec.evalBinaryExpr(e, closure)

	case *MethodCall:
		target, err := exec.evalExpression(e.Target, closure)
		if err != nil {
			return NewNone(), err
		}
		inst := target.Instance()
		if inst == nil {
			return NewNone(), runtimeErrorf("cannot call method %q on a %s value", e.Name, target.Kind())
		}
		args, err := exec.evalArguments(e.Args, closure)
		if err != nil {
			return NewNone(), err
		}
		return exec.callMethod(inst, e.Name, args)

	case *NewInstance:
		inst := newInstance(e.Class)
		// Constructor arguments are only evaluated when an __init__ with
		// matching arity exists.
		if e.Class.HasMethod(initMethod, len(e.Args)) {
			args, err := exec.evalArguments(e.Args, closure)
			if err != nil {
				return NewNone(), err
			}
			if _, err := exec.callMethod(inst, initMethod, args); err != nil {
				return NewNone(), err
			}
		}
		return NewInstanceValue(inst), nil

	case *Stringify:
		val, err := exec.evalExpression(e.Arg, closure)
		if err != nil {
			return NewNone(), err
		}
		rendered, err := exec.render(val)
		if err != nil {
			return NewNone(), err
		}
		return NewString(rendered), nil

	default:
		return NewNone(), runtimeErrorf("unsupported expression %T", expr)
	}
}

// resolveVariable walks a dotted name: the head in the closure, every
// subsequent link as a field of a class instance.
func (exec *Execution) resolveVariable(e *VariableValue, closure Closure) (Value, error) {
	val, ok := closure.Get(e.Names[0])
	if !ok {
		return NewNone(), runtimeErrorf("undefined name %q", e.Names[0])
	}
	for _, name := range e.Names[1:] {
		inst := val.Instance()
		if inst == nil {
			return NewNone(), runtimeErrorf("cannot access field %q on a %s value", name, val.Kind())
		}
		val, ok = inst.Fields.Get(name)
		if !ok {
			return NewNone(), runtimeErrorf("object of class %q has no field %q", inst.Class.Name, name)
		}
	}
	return val, nil
}

func (exec *Execution) evalArguments(args []Expression, closure Closure) ([]Value, error) {
	vals := make([]Value, len(args))
	for i, arg := range args {
		val, err := exec.evalExpression(arg, closure)
		if err != nil {
			return nil, err
		}
		vals[i] = val
	}
	return vals, nil
}

// callMethod resolves name on the instance's class chain and invokes it in a
// fresh closure holding self and the bound parameters. The arity check
// applies to the first name match only: a nearer method with the wrong arity
// hides a farther one with the right arity.
func (exec *Execution) callMethod(inst *Instance, name string, args []Value) (Value, error) {
	m := inst.Class.Method(name)
	if m == nil {
		return NewNone(), runtimeErrorf("class %q has no method %q", inst.Class.Name, name)
	}
	if len(m.FormalParams) != len(args) {
		return NewNone(), runtimeErrorf("method %q of class %q expects %d arguments, got %d",
			name, inst.Class.Name, len(m.FormalParams), len(args))
	}

	callClosure := make(Closure, len(args)+1)
	callClosure.Set("self", NewInstanceValue(inst))
	for i, param := range m.FormalParams {
		callClosure.Set(param, args[i])
	}

	val, _, err := exec.execStatement(m.Body, callClosure)
	return val, err
}
