package ujson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeCompactAndPretty(t *testing.T) {
	v := ArrayOf(Bool(true), Null(), String("x"))
	assert.Equal(t, `[true,null,"x"]`, Describe(v, Compact))
	assert.Equal(t, "[\n    true,\n    null,\n    \"x\"\n]", Describe(v, Pretty))
}

func TestDescribeRelaxedEmitsBareIdentifierKeys(t *testing.T) {
	o := buildObject([2]Value{String("foo_1"), Int(1)}, [2]Value{String("not-an-id"), Int(2)})

	relaxed := Describe(o, Relaxed)
	assert.Contains(t, relaxed, `foo_1:1`)
	assert.Contains(t, relaxed, `"not-an-id":2`)

	strict := Describe(o, Compact)
	assert.Contains(t, strict, `"foo_1":1`)
}

func TestDescribeStringEscaping(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\n"`, Describe(String("a\"b\\c\n"), Compact))
}
