package value

// String is the built-in string object. Its display form is its contents,
// its Add concatenates, and its Cmp compares textually.
type String string

func (s String) TypeName() string { return "string" }
func (s String) Truthy() bool     { return true }
func (s String) String() string   { return string(s) }

func (s String) Copy() Object { return s }

func (s String) Cmp(other Object) Compare {
	o, ok := other.(String)
	if !ok {
		return NotEqual
	}
	switch {
	case s > o:
		return Greater
	case s < o:
		return Lower
	default:
		return Equal
	}
}

func (s String) Add(other Object) (Value, error) {
	o, ok := other.(String)
	if !ok {
		return nil, OperationNotSupportedError{
			Op:     "+",
			Target: "between " + s.TypeName() + " and " + other.TypeName(),
		}
	}
	return s + o, nil
}
