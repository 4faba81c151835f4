// Package value defines the dynamically-typed runtime values of Calyx: the
// primitive variants held directly on the VM's stack and the Object
// capability implemented by heap values such as strings.
package value

import (
	"fmt"
	"strconv"
)

// Compare is the result of comparing two values.
type Compare int

const (
	Equal Compare = iota
	NotEqual
	Greater
	Lower
)

// Value is the tagged sum of every runtime value. All numbers are
// double-precision floats. Identifier is a compile-time-only variant that
// lives in a chunk's constant pool to name a global; it never appears on
// the runtime stack as a user value.
type Value interface {
	// TypeName reports the user-visible type, e.g. "float" or "string".
	TypeName() string

	// Truthy reports whether the value counts as true in a boolean
	// context. Only Boolean(false) and Null are falsy.
	Truthy() bool

	// String is the display form used by the print statement.
	String() string
}

type Float float64

func (f Float) TypeName() string { return "float" }
func (f Float) Truthy() bool     { return true }
func (f Float) String() string   { return strconv.FormatFloat(float64(f), 'f', -1, 64) }

type Boolean bool

func (b Boolean) TypeName() string { return "boolean" }
func (b Boolean) Truthy() bool     { return bool(b) }
func (b Boolean) String() string   { return strconv.FormatBool(bool(b)) }

type Null struct{}

func (n Null) TypeName() string { return "null" }
func (n Null) Truthy() bool     { return false }
func (n Null) String() string   { return "null" }

// Identifier names a global variable from the constant pool. It is only
// read by the DefineGlobal/ReadGlobal/SetGlobal opcodes.
type Identifier string

func (i Identifier) TypeName() string { return "identifier" }
func (i Identifier) Truthy() bool     { return true }
func (i Identifier) String() string {
	return fmt.Sprintf("<value '%s' of type identifier>", string(i))
}

// Equals compares two values by variant. Mixed variants compare unequal,
// never error. Objects delegate to their Cmp capability.
func Equals(a, b Value) bool {
	switch av := a.(type) {
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Null:
		_, ok := b.(Null)
		return ok
	case Object:
		bv, ok := b.(Object)
		return ok && av.Cmp(bv) == Equal
	}
	return false
}

// Cmp orders two values. Floats order numerically; Booleans and Nulls are
// either Equal or NotEqual; Objects delegate to their Cmp capability;
// mixed variants are NotEqual. Ordering between booleans, nulls or mixed
// variants therefore yields false from the comparison opcodes rather than
// an error, while strings order textually.
func Cmp(a, b Value) Compare {
	switch av := a.(type) {
	case Float:
		bv, ok := b.(Float)
		if !ok {
			return NotEqual
		}
		switch {
		case av > bv:
			return Greater
		case av < bv:
			return Lower
		default:
			return Equal
		}
	case Boolean:
		if bv, ok := b.(Boolean); ok && av == bv {
			return Equal
		}
		return NotEqual
	case Null:
		if _, ok := b.(Null); ok {
			return Equal
		}
		return NotEqual
	case Object:
		if bv, ok := b.(Object); ok {
			return av.Cmp(bv)
		}
		return NotEqual
	}
	return NotEqual
}
