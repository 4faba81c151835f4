package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthiness(t *testing.T) {
	tests := []struct {
		name   string
		value  Value
		truthy bool
	}{
		{"false is falsy", Boolean(false), false},
		{"null is falsy", Null{}, false},
		{"true is truthy", Boolean(true), true},
		{"zero is truthy", Float(0), true},
		{"number is truthy", Float(3.5), true},
		{"empty string is truthy", String(""), true},
		{"string is truthy", String("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.truthy, tt.value.Truthy())
		})
	}
}

func TestDisplayForms(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"integral float", Float(9), "9"},
		{"fractional float", Float(5.545), "5.545"},
		{"negative float", Float(-0.5), "-0.5"},
		{"true", Boolean(true), "true"},
		{"false", Boolean(false), "false"},
		{"null", Null{}, "null"},
		{"string is its contents", String("foobar"), "foobar"},
		{"identifier", Identifier("x"), "<value 'x' of type identifier>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "float", Float(1).TypeName())
	assert.Equal(t, "boolean", Boolean(true).TypeName())
	assert.Equal(t, "null", Null{}.TypeName())
	assert.Equal(t, "string", String("").TypeName())
	assert.Equal(t, "identifier", Identifier("x").TypeName())
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal floats", Float(1.5), Float(1.5), true},
		{"unequal floats", Float(1), Float(2), false},
		{"equal booleans", Boolean(true), Boolean(true), true},
		{"unequal booleans", Boolean(true), Boolean(false), false},
		{"nulls always equal", Null{}, Null{}, true},
		{"equal strings", String("a"), String("a"), true},
		{"unequal strings", String("a"), String("b"), false},
		{"mixed float boolean", Float(1), Boolean(true), false},
		{"mixed null float", Null{}, Float(0), false},
		{"mixed string float", String("1"), Float(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equals(tt.a, tt.b))
			// equality is symmetric
			assert.Equal(t, tt.want, Equals(tt.b, tt.a))
		})
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want Compare
	}{
		{"float greater", Float(2), Float(1), Greater},
		{"float lower", Float(1), Float(2), Lower},
		{"float equal", Float(1), Float(1), Equal},
		{"boolean equal", Boolean(true), Boolean(true), Equal},
		{"boolean unordered", Boolean(true), Boolean(false), NotEqual},
		{"null equal", Null{}, Null{}, Equal},
		{"string textual greater", String("b"), String("a"), Greater},
		{"string textual lower", String("a"), String("b"), Lower},
		{"string equal", String("a"), String("a"), Equal},
		{"mixed is not equal", Float(1), String("1"), NotEqual},
		{"null against float", Null{}, Float(0), NotEqual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cmp(tt.a, tt.b))
		})
	}
}

func TestStringAdd(t *testing.T) {
	result, err := String("foo").Add(String("bar"))
	require.NoError(t, err)
	assert.Equal(t, String("foobar"), result)
}

// fakeObject is a second object type used to exercise the incompatible
// operand paths.
type fakeObject struct{}

func (fakeObject) TypeName() string { return "fake" }
func (fakeObject) Truthy() bool     { return true }
func (fakeObject) String() string   { return "fake" }
func (fakeObject) Copy() Object     { return fakeObject{} }
func (fakeObject) Cmp(Object) Compare { return NotEqual }
func (fakeObject) Add(Object) (Value, error) {
	return nil, OperationNotSupportedError{Op: "+", Target: "fake"}
}

func TestStringAddIncompatible(t *testing.T) {
	_, err := String("foo").Add(fakeObject{})
	require.Error(t, err)

	var opErr OperationNotSupportedError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "+", opErr.Op)
	assert.Equal(t, "between string and fake", opErr.Target)
	assert.Equal(t, "OperationNotSupportedError: + is not supported between string and fake", err.Error())
}

func TestStringCmpIncompatible(t *testing.T) {
	assert.Equal(t, NotEqual, String("a").Cmp(fakeObject{}))
}

func TestStringCopy(t *testing.T) {
	s := String("abc")
	assert.Equal(t, s, s.Copy())
}
