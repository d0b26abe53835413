package mython

// isTrue implements truthiness: None is false, numbers by non-zero, strings
// by non-emptiness, bools by value, classes and instances are false.
func isTrue(v Value) bool {
	switch v.Kind() {
	case KindNumber:
		return v.Number() != 0
	case KindString:
		return v.Str() != ""
	case KindBool:
		return v.Bool()
	default:
		return false
	}
}

func (exec *Execution) evalBinaryExpr(e *BinaryExpr, closure Closure) (Value, error) {
	left, err := exec.evalExpression(e.Left, closure)
	if err != nil {
		return NewNone(), err
	}
	// Both operands always evaluate, including for and/or: side effects on
	// the right-hand side run even when the left side decides the result.
	right, err := exec.evalExpression(e.Right, closure)
	if err != nil {
		return NewNone(), err
	}

	switch e.Operator {
	case "+":
		return exec.addValues(left, right)
	case "-":
		return subValues(left, right)
	case "*":
		return multValues(left, right)
	case "/":
		return divValues(left, right)
	case tokenAnd:
		return NewBool(isTrue(left) && isTrue(right)), nil
	case tokenOr:
		return NewBool(isTrue(left) || isTrue(right)), nil
	case tokenEQ:
		eq, err := exec.equalValues(left, right)
		if err != nil {
			return NewNone(), err
		}
		return NewBool(eq), nil
	case tokenNotEQ:
		eq, err := exec.equalValues(left, right)
		if err != nil {
			return NewNone(), err
		}
		return NewBool(!eq), nil
	case "<":
		less, err := exec.lessValues(left, right)
		if err != nil {
			return NewNone(), err
		}
		return NewBool(less), nil
	case ">":
		greater, err := exec.greaterValues(left, right)
		if err != nil {
			return NewNone(), err
		}
		return NewBool(greater), nil
	case tokenLTE:
		greater, err := exec.greaterValues(left, right)
		if err != nil {
			return NewNone(), err
		}
		return NewBool(!greater), nil
	case tokenGTE:
		less, err := exec.lessValues(left, right)
		if err != nil {
			return NewNone(), err
		}
		return NewBool(!less), nil
	default:
		return NewNone(), runtimeErrorf("unsupported operator %q", string(e.Operator))
	}
}

func (exec *Execution) addValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		return NewNumber(left.Number() + right.Number()), nil
	case left.Kind() == KindString && right.Kind() == KindString:
		return NewString(left.Str() + right.Str()), nil
	case left.Kind() == KindInstance:
		inst := left.Instance()
		if inst.Class.HasMethod(addMethod, 1) {
			return exec.callMethod(inst, addMethod, []Value{right})
		}
	}
	return NewNone(), runtimeErrorf("unsupported operands for addition: %s and %s", left.Kind(), right.Kind())
}

func subValues(left, right Value) (Value, error) {
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNone(), runtimeErrorf("unsupported operands for subtraction: %s and %s", left.Kind(), right.Kind())
	}
	return NewNumber(left.Number() - right.Number()), nil
}

func multValues(left, right Value) (Value, error) {
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNone(), runtimeErrorf("unsupported operands for multiplication: %s and %s", left.Kind(), right.Kind())
	}
	return NewNumber(left.Number() * right.Number()), nil
}

func divValues(left, right Value) (Value, error) {
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return NewNone(), runtimeErrorf("unsupported operands for division: %s and %s", left.Kind(), right.Kind())
	}
	if right.Number() == 0 {
		return NewNone(), runtimeErrorf("division by zero")
	}
	return NewNumber(left.Number() / right.Number()), nil
}

// equalValues: None equals only None; comparing None against anything else
// is an error, not false. Instances on the left delegate to __eq__.
func (exec *Execution) equalValues(left, right Value) (bool, error) {
	if left.IsNone() && right.IsNone() {
		return true, nil
	}
	if left.IsNone() || right.IsNone() {
		return false, runtimeErrorf("cannot compare %s and %s for equality", left.Kind(), right.Kind())
	}

	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		return left.Number() == right.Number(), nil
	case left.Kind() == KindString && right.Kind() == KindString:
		return left.Str() == right.Str(), nil
	case left.Kind() == KindBool && right.Kind() == KindBool:
		return left.Bool() == right.Bool(), nil
	}

	if inst := left.Instance(); inst != nil && inst.Class.HasMethod(eqMethod, 1) {
		return exec.callHookToBool(inst, eqMethod, right)
	}
	return false, runtimeErrorf("cannot compare %s and %s for equality", left.Kind(), right.Kind())
}

func (exec *Execution) lessValues(left, right Value) (bool, error) {
	if left.IsNone() || right.IsNone() {
		return false, runtimeErrorf("cannot order %s and %s", left.Kind(), right.Kind())
	}

	switch {
	case left.Kind() == KindNumber && right.Kind() == KindNumber:
		return left.Number() < right.Number(), nil
	case left.Kind() == KindString && right.Kind() == KindString:
		return left.Str() < right.Str(), nil
	case left.Kind() == KindBool && right.Kind() == KindBool:
		return !left.Bool() && right.Bool(), nil
	}

	if inst := left.Instance(); inst != nil && inst.Class.HasMethod(ltMethod, 1) {
		return exec.callHookToBool(inst, ltMethod, right)
	}
	return false, runtimeErrorf("cannot order %s and %s", left.Kind(), right.Kind())
}

// greaterValues derives from the two primitives, so an error from either
// propagates.
func (exec *Execution) greaterValues(left, right Value) (bool, error) {
	less, err := exec.lessValues(left, right)
	if err != nil {
		return false, err
	}
	eq, err := exec.equalValues(left, right)
	if err != nil {
		return false, err
	}
	return !less && !eq, nil
}

func (exec *Execution) callHookToBool(inst *Instance, name string, arg Value) (bool, error) {
	result, err := exec.callMethod(inst, name, []Value{arg})
	if err != nil {
		return false, err
	}
	if result.Kind() != KindBool {
		return false, runtimeErrorf("%s must return a bool, got %s", name, result.Kind())
	}
	return result.Bool(), nil
}
