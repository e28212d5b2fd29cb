package ujson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerParseAndString(t *testing.T) {
	p, err := ParsePointer("/foo/0/~1bar")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "0", "/bar"}, p.Tokens())
	assert.Equal(t, "/foo/0/~1bar", p.String())
}

func TestPointerEmpty(t *testing.T) {
	p, err := ParsePointer("")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, "", p.String())
}

func TestPointerMustStartWithSlash(t *testing.T) {
	_, err := ParsePointer("foo")
	assert.ErrorIs(t, err, ErrInvalidPointer)
}

func TestPointerResolve(t *testing.T) {
	root := buildObject([2]Value{String("foo"), ArrayOf(buildObject([2]Value{String("/bar"), Int(7)}))})

	p, err := ParsePointer("/foo/0/~1bar")
	require.NoError(t, err)

	v, err := p.Resolve(root)
	require.NoError(t, err)
	n, _ := v.Num()
	assert.Equal(t, float64(7), n.Float64())
}

func TestPointerResolveMissing(t *testing.T) {
	root := NewObject()
	p, err := ParsePointer("/missing")
	require.NoError(t, err)
	_, err = p.Resolve(root)
	assert.ErrorIs(t, err, ErrPointerNotFound)
}
