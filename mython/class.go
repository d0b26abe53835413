package mython

// Method is a named, fixed-arity function attached to a class. FormalParams
// excludes the receiver; the parser strips the mandatory leading self.
type Method struct {
	Name         string
	FormalParams []string
	Body         *MethodBody
}

// Class is immutable after construction: a name, an ordered method list, and
// an optional parent. Lookup order along the slice matters, so methods are
// kept as declared rather than in a map.
type Class struct {
	Name    string
	Methods []*Method
	Parent  *Class
}

// Method returns the first method with the given name along the ancestor
// chain, or nil. Arity is not considered here: a subclass method shadows
// every ancestor method of the same name regardless of parameter count.
func (c *Class) Method(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	if c.Parent != nil {
		return c.Parent.Method(name)
	}
	return nil
}

// HasMethod reports whether the class resolves name to a method callable
// with argc arguments. The arity check applies only to the first name match.
func (c *Class) HasMethod(name string, argc int) bool {
	m := c.Method(name)
	return m != nil && len(m.FormalParams) == argc
}

// Instance is a mutable bag of named fields plus its class.
type Instance struct {
	Class  *Class
	Fields Closure
}

// newInstance constructs an instance with the self field pre-bound to the
// instance itself. The cycle is garbage-collected like any other reference.
func newInstance(c *Class) *Instance {
	inst := &Instance{Class: c, Fields: make(Closure)}
	inst.Fields["self"] = NewInstanceValue(inst)
	return inst
}
