package cbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildersAndAccessors(t *testing.T) {
	t.Run("Uint", func(t *testing.T) {
		it := BuildUint(Width2, 1000)
		require.Equal(t, UintType, it.Type())
		require.True(t, it.IsaUint())
		require.True(t, it.IsInt())
		require.Equal(t, Width2, it.IntWidth())
		require.Equal(t, uint64(1000), it.Uint())
	})

	t.Run("Negint", func(t *testing.T) {
		it := BuildNegint(Width1, 9)
		v, ok := it.Negint()
		require.True(t, ok)
		require.Equal(t, int64(-10), v)
	})

	t.Run("NegintOverflow", func(t *testing.T) {
		it := BuildNegint(Width8, 1<<63)
		_, ok := it.Negint()
		require.False(t, ok)
	})

	t.Run("BoolNullUndef", func(t *testing.T) {
		tru := BuildBool(true)
		require.True(t, tru.IsBool())
		b, ok := tru.Bool()
		require.True(t, ok)
		require.True(t, b)

		n := BuildNull()
		require.True(t, n.IsNull())
		require.False(t, n.IsBool())

		u := BuildUndefined()
		require.True(t, u.IsUndef())
	})

	t.Run("Float", func(t *testing.T) {
		it := BuildFloat4(3.5)
		require.True(t, it.IsFloat())
		require.Equal(t, FloatWidth4, it.FloatWidth())
		require.Equal(t, 3.5, it.Float())
	})

	t.Run("Tag", func(t *testing.T) {
		content := BuildUint(Width1, 7)
		tag := BuildTag(1, content)
		require.True(t, tag.IsaTag())
		require.Equal(t, uint64(1), tag.TagValue())
		require.Same(t, content, tag.TagContent())
	})
}

func TestRefcounting(t *testing.T) {
	it := BuildUint(Width1, 1)
	require.Equal(t, int32(1), it.Refcount())

	Incref(it)
	require.Equal(t, int32(2), it.Refcount())

	slot := it
	Decref(&slot)
	require.Same(t, it, slot)
	require.Equal(t, int32(1), it.Refcount())

	Decref(&it)
	require.Nil(t, it)
}

func TestDecrefReleasesChildren(t *testing.T) {
	child := BuildUint(Width1, 5)
	tag := BuildTag(0, child)

	Decref(&tag)
	require.Nil(t, tag)
	require.Equal(t, int32(0), child.Refcount())
}

func TestTypeStringAndPredicates(t *testing.T) {
	require.Equal(t, "uint", UintType.String())
	require.Equal(t, "map", MapType.String())
	require.Contains(t, Type(200).String(), "Type(200)")

	it := BuildCtrl(13)
	require.False(t, it.IsBool())
	require.False(t, it.IsNull())
	require.False(t, it.IsUndef())
	require.Equal(t, uint8(13), it.CtrlValue())
}
