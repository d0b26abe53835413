package mython

import (
	"fmt"
	"strconv"
)

// render produces the textual form used by print and str: None/True/False
// words, decimal numbers, raw strings. Instances defer to a zero-argument
// __str__ when present and otherwise render as an address-like token.
func (exec *Execution) render(v Value) (string, error) {
	switch v.Kind() {
	case KindNone:
		return "None", nil
	case KindNumber:
		return strconv.Itoa(v.Number()), nil
	case KindString:
		return v.Str(), nil
	case KindBool:
		if v.Bool() {
			return "True", nil
		}
		return "False", nil
	case KindClass:
		return "Class " + v.Class().Name, nil
	case KindInstance:
		inst := v.Instance()
		if inst.Class.HasMethod(strMethod, 0) {
			result, err := exec.callMethod(inst, strMethod, nil)
			if err != nil {
				return "", err
			}
			return exec.render(result)
		}
		return fmt.Sprintf("<%s object at %p>", inst.Class.Name, inst), nil
	default:
		return "", runtimeErrorf("cannot render %s value", v.Kind())
	}
}
