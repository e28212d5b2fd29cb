package ujson

import (
	"errors"
	"fmt"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// ErrWrongType is returned by a typed accessor when the receiver's Kind does
// not match the accessor (e.g. calling Str() on a number). Accessors never
// coerce between variants.
var ErrWrongType = errors.New("ujson: wrong type for accessor")

// ErrIndexOutOfRange is returned by Array.At/Remove on an out-of-bounds
// read, and by Pointer resolution against an array.
var ErrIndexOutOfRange = errors.New("ujson: index out of range")

// Value is a tagged sum over the seven JSON variants described by the
// value model: invalid, null, boolean, number, string, array, object.
// The zero Value is KindInvalid, the parse-failure sentinel; it is never
// produced by a successful construction or parse.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  string
	arr  *Array
	obj  *Object
}

// Null returns a value of kind null.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a value of kind boolean.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Int returns a value of kind number constructed from an integer.
func Int(i int64) Value { return Value{kind: KindNumber, num: numberFromInt64(i)} }

// Float returns a value of kind number constructed from a float64.
func Float(f float64) Value { return Value{kind: KindNumber, num: numberFromFloat64(f)} }

// NumberValue wraps an already-constructed Number (used by the parser to
// preserve the original decimal text of a scanned number literal).
func NumberValue(n Number) Value { return Value{kind: KindNumber, num: n} }

// String returns a value of kind string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// NewArray returns an empty value of kind array.
func NewArray() Value { return Value{kind: KindArray, arr: newArray()} }

// ArrayOf returns a value of kind array containing the given elements, in order.
func ArrayOf(vs ...Value) Value {
	a := newArray()
	for _, v := range vs {
		a.Append(v)
	}
	return Value{kind: KindArray, arr: a}
}

// NewObject returns an empty value of kind object.
func NewObject() Value { return Value{kind: KindObject, obj: newObject()} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool { return v.kind == KindArray || v.kind == KindObject }

// IsInvalid reports whether v is the parse-failure sentinel (the zero Value).
func (v Value) IsInvalid() bool { return v.kind == KindInvalid }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload of v. Err is ErrWrongType if v is not KindBoolean.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBoolean {
		return false, fmt.Errorf("%w: expected boolean, got %s", ErrWrongType, v.kind)
	}
	return v.b, nil
}

// Num returns the numeric payload of v. Err is ErrWrongType if v is not KindNumber.
func (v Value) Num() (Number, error) {
	if v.kind != KindNumber {
		return Number{}, fmt.Errorf("%w: expected number, got %s", ErrWrongType, v.kind)
	}
	return v.num, nil
}

// Str returns the string payload of v. Err is ErrWrongType if v is not KindString.
func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("%w: expected string, got %s", ErrWrongType, v.kind)
	}
	return v.str, nil
}

// Array returns the array payload of v. Err is ErrWrongType if v is not KindArray.
func (v Value) Array() (*Array, error) {
	if v.kind != KindArray {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrWrongType, v.kind)
	}
	return v.arr, nil
}

// Object returns the object payload of v. Err is ErrWrongType if v is not KindObject.
func (v Value) Object() (*Object, error) {
	if v.kind != KindObject {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrWrongType, v.kind)
	}
	return v.obj, nil
}

// At returns the i-th element of an array value. Reading out of range is an error;
// mutating access that grows the array is exposed on *Array directly (Set).
func (v Value) At(i int) (Value, error) {
	a, err := v.Array()
	if err != nil {
		return Value{}, err
	}
	return a.At(i)
}

// Get returns the first value associated with key k in an object value.
// The second result reports whether the key was present.
func (v Value) Get(k string) (Value, bool) {
	o, err := v.Object()
	if err != nil {
		return Value{}, false
	}
	return o.Get(k)
}

// Has reports whether an object value contains key k.
func (v Value) Has(k string) bool {
	_, ok := v.Get(k)
	return ok
}

// Len returns the number of elements/pairs in an array or object value, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return v.arr.Len()
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}
