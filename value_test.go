package ujson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConstructorsAndAccessors(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		v := Null()
		assert.Equal(t, KindNull, v.Kind())
		assert.True(t, v.IsNull())
	})

	t.Run("boolean", func(t *testing.T) {
		v := Bool(true)
		b, err := v.Bool()
		require.NoError(t, err)
		assert.True(t, b)

		_, err = v.Str()
		assert.ErrorIs(t, err, ErrWrongType)
	})

	t.Run("number", func(t *testing.T) {
		v := Int(42)
		n, err := v.Num()
		require.NoError(t, err)
		assert.Equal(t, float64(42), n.Float64())
		assert.True(t, n.IsInteger())
	})

	t.Run("string", func(t *testing.T) {
		v := String("hello")
		s, err := v.Str()
		require.NoError(t, err)
		assert.Equal(t, "hello", s)
	})
}

func TestArrayMutableIndexedAccess(t *testing.T) {
	v := NewArray()
	a, err := v.Array()
	require.NoError(t, err)

	a.Set(2, String("x"))
	assert.Equal(t, 3, a.Len())

	first, err := a.At(0)
	require.NoError(t, err)
	assert.True(t, first.IsNull())

	_, err = a.At(10)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestObjectOrderedMultimap(t *testing.T) {
	o := newObject()
	o.Set("a", Int(1))
	o.Set("a", Int(2))

	v, ok := o.Get("a")
	require.True(t, ok)
	n, _ := v.Num()
	assert.Equal(t, float64(1), n.Float64(), "first-match lookup must return the first occurrence")

	keys := o.Keys()
	assert.Equal(t, []string{"a", "a"}, keys)

	all := o.GetAll("a")
	require.Len(t, all, 2)
}

func TestIsContainer(t *testing.T) {
	assert.True(t, NewArray().IsContainer())
	assert.True(t, NewObject().IsContainer())
	assert.False(t, Int(1).IsContainer())
	assert.False(t, Null().IsContainer())
}
