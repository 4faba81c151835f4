package value

import "fmt"

// Object is the capability every heap value provides on top of Value.
// String is the only built-in object; user-defined objects would plug in
// here.
type Object interface {
	Value

	// Copy returns a deep clone of the object.
	Copy() Object

	// Cmp compares this object against another of any object type.
	// Incompatible object types report NotEqual.
	Cmp(other Object) Compare

	// Add combines this object with another, e.g. string concatenation.
	// Incompatible operands yield an OperationNotSupportedError.
	Add(other Object) (Value, error)
}

// OperationNotSupportedError reports an operator applied to operands whose
// types cannot support it.
type OperationNotSupportedError struct {
	Op     string
	Target string
}

func (e OperationNotSupportedError) Error() string {
	return fmt.Sprintf("OperationNotSupportedError: %s is not supported %s", e.Op, e.Target)
}
