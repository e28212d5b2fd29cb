package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectAndArray(t *testing.T) {
	p := New(Options{})
	v, err := p.ParseString(`{"a":1,"b":[true,null,"x"]}`)
	require.NoError(t, err)

	obj, err := v.Object()
	require.NoError(t, err)
	assert.Equal(t, 2, obj.Len())

	bv, ok := obj.Get("b")
	require.True(t, ok)
	arr, err := bv.Array()
	require.NoError(t, err)
	assert.Equal(t, 3, arr.Len())
}

func TestParseDuplicateKeyRejectedByDefault(t *testing.T) {
	p := New(Options{})
	_, err := p.ParseString(`{"a":1,"a":2}`)
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrDuplicateObjMember, pe.Kind)
	assert.Equal(t, 1, pe.Row)
	// The position must point at the second "a", not at the token
	// following its value (the closing '}').
	assert.Equal(t, 8, pe.Col)
}

func TestParseDuplicateKeyAllowed(t *testing.T) {
	p := New(Options{AllowDuplicatesInObj: true})
	v, err := p.ParseString(`{"a":1,"a":2}`)
	require.NoError(t, err)

	obj, err := v.Object()
	require.NoError(t, err)

	first, ok := obj.Get("a")
	require.True(t, ok)
	n, _ := first.Num()
	assert.Equal(t, float64(1), n.Float64())

	all := obj.GetAll("a")
	require.Len(t, all, 2)
}

func TestParseTrailingCommaRejected(t *testing.T) {
	p := New(Options{})
	_, err := p.ParseString(`[1,2,]`)
	require.Error(t, err)
}

func TestParseMaxDepthExceeded(t *testing.T) {
	p := New(Options{MaxDepth: 2})
	_, err := p.ParseString(`[[[1]]]`)
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrMaxDepthExceeded, pe.Kind)
}

func TestParseRelaxedIdentifierKeys(t *testing.T) {
	p := New(Options{AllowRelaxedFormat: true})
	v, err := p.ParseString(`{foo: 1}`)
	require.NoError(t, err)
	obj, _ := v.Object()
	val, ok := obj.Get("foo")
	require.True(t, ok)
	n, _ := val.Num()
	assert.Equal(t, float64(1), n.Float64())
}

func TestParseInvalidNumbers(t *testing.T) {
	for _, src := range []string{"01", "1.", "1e"} {
		p := New(Options{})
		_, err := p.ParseString(src)
		require.Error(t, err, src)
		pe, ok := err.(*ParseError)
		require.True(t, ok)
		assert.Equal(t, ErrInvalidNumber, pe.Kind, src)
	}
}
