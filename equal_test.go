package ujson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildObject(pairs ...[2]Value) Value {
	o := newObject()
	for _, p := range pairs {
		key, _ := p[0].Str()
		o.Set(key, p[1])
	}
	return Value{kind: KindObject, obj: o}
}

func TestEqualOrderSensitiveForObjects(t *testing.T) {
	a := buildObject([2]Value{String("x"), Int(1)}, [2]Value{String("y"), Int(2)})
	b := buildObject([2]Value{String("y"), Int(2)}, [2]Value{String("x"), Int(1)})

	assert.False(t, Equal(a, b), "general equality is order-sensitive for objects")
	assert.True(t, EqualForSchema(a, b), "schema (uniqueItems/enum/const) equality treats objects as unordered multisets")
}

func TestEqualArraysAndScalars(t *testing.T) {
	assert.True(t, Equal(ArrayOf(Int(1), String("a")), ArrayOf(Int(1), String("a"))))
	assert.False(t, Equal(ArrayOf(Int(1)), ArrayOf(Int(2))))
	assert.True(t, Equal(Int(1), Float(1.0)), "integer and real representing the same real number are equal")
}
