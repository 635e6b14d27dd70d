package cbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapLookupByStringKey(t *testing.T) {
	// {"a": 1, "b": 2}
	it, err := Load([]byte{0xa2, 0x61, 'a', 0x01, 0x61, 'b', 0x02})
	require.True(t, err.IsZero())

	val, ok := it.Lookup(BuildStringKey("a"))
	require.True(t, ok)
	require.Equal(t, uint64(1), val.Uint())

	val, ok = it.Lookup(BuildStringKey("b"))
	require.True(t, ok)
	require.Equal(t, uint64(2), val.Uint())

	_, ok = it.Lookup(BuildStringKey("c"))
	require.False(t, ok)
}

func TestMapLookupByUintKey(t *testing.T) {
	// {1: "one", 2: "two"}
	it, err := Load([]byte{0xa2, 0x01, 0x63, 'o', 'n', 'e', 0x02, 0x63, 't', 'w', 'o'})
	require.True(t, err.IsZero())

	val, ok := it.Lookup(BuildUint(Width1, 2))
	require.True(t, ok)
	data, _, _ := val.StringDefinite()
	require.Equal(t, "two", string(data))
}

func TestMapLookupNotAMap(t *testing.T) {
	it := BuildUint(Width1, 1)
	_, ok := it.Lookup(BuildUint(Width1, 1))
	require.False(t, ok)
}

func TestMapLookupArrayKeyFallsBackToLinearScan(t *testing.T) {
	b := newBuilder(DefaultAllocator, defaultMaxDepth, false)
	cb := b.callbacks()
	cb.IndefMapStart(b)
	cb.ArrayStart(b, 1) // array keys fall outside canonicalKey's supported set
	cb.UInt(b, Width1, 1)
	cb.String(b, []byte("matched"))
	cb.IndefBreak(b)
	require.True(t, b.done())

	queryKey := &Item{typ: ArrayType, refs: 1, definite: true, capacity: 1,
		elems: []*Item{BuildUint(Width1, 1)}}
	val, ok := b.root.Lookup(queryKey)
	require.True(t, ok)
	data, _, _ := val.StringDefinite()
	require.Equal(t, "matched", string(data))
}

func TestItemsEqual(t *testing.T) {
	a := BuildUint(Width1, 5)
	b := BuildUint(Width8, 5)
	require.True(t, itemsEqual(a, b), "same value, different width: still equal")

	c := BuildNegint(Width1, 5)
	require.False(t, itemsEqual(a, c), "UINT and NEGINT never compare equal")
}

// BuildStringKey is a small test helper constructing a definite STRING item,
// standing in for what an encoder would otherwise produce.
func BuildStringKey(s string) *Item {
	return &Item{typ: StringType, refs: 1, definite: true, buf: []byte(s), codepoints: len([]rune(s))}
}
