package mython

// ValueKind discriminates the runtime variants. The zero Value is None.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindNumber
	KindString
	KindBool
	KindClass
	KindInstance
)

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindClass:
		return "class"
	case KindInstance:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the runtime value handle. Numbers, strings, and bools are held by
// value; classes and instances are held by pointer, so copies of a Value
// alias the same underlying object.
type Value struct {
	kind ValueKind
	data any
}
