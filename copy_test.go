package cbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyPreservesIndefiniteShape(t *testing.T) {
	it, err := Load([]byte{0x9f, 0x01, 0x02, 0xff})
	require.True(t, err.IsZero())

	cp := Copy(it)
	require.False(t, cp.IsDefinite())
	require.Equal(t, 2, cp.ArrayLen())
	require.Equal(t, uint64(1), cp.ArrayItems()[0].Uint())

	// independent storage: mutating the copy's slice must not affect it.
	cp.elems[0] = BuildUint(Width1, 99)
	require.Equal(t, uint64(1), it.ArrayItems()[0].Uint())
}

func TestCopyDefiniteCollapsesIndefiniteArray(t *testing.T) {
	it, err := Load([]byte{0x9f, 0x01, 0x02, 0xff})
	require.True(t, err.IsZero())

	cp := CopyDefinite(it)
	require.True(t, cp.IsDefinite())
	require.Equal(t, 2, cp.ArrayCapacity())
	require.Equal(t, 2, cp.ArrayLen())
}

func TestCopyDefiniteConcatenatesStringChunks(t *testing.T) {
	it, err := Load([]byte{0x7f, 0x62, 'a', 'b', 0x62, 'c', 'd', 0xff})
	require.True(t, err.IsZero())

	cp := CopyDefinite(it)
	require.True(t, cp.IsDefinite())
	data, _, ok := cp.StringDefinite()
	require.True(t, ok)
	require.Equal(t, "abcd", string(data))
}

func TestCopyDefiniteCollapsesIndefiniteMap(t *testing.T) {
	it, err := Load([]byte{0xbf, 0x61, 0x61, 0x01, 0xff})
	require.True(t, err.IsZero())

	cp := CopyDefinite(it)
	require.True(t, cp.IsDefinite())
	require.Equal(t, 1, cp.MapCapacity())
	require.Equal(t, 1, cp.MapLen())
}

func TestCopyScalarsAndTag(t *testing.T) {
	it, err := Load([]byte{0xc1, 0x1a, 0x51, 0x4b, 0x67, 0xb0})
	require.True(t, err.IsZero())

	cp := Copy(it)
	require.True(t, cp.IsaTag())
	require.Equal(t, it.TagValue(), cp.TagValue())
	require.NotSame(t, it.TagContent(), cp.TagContent())
	require.Equal(t, it.TagContent().Uint(), cp.TagContent().Uint())
}

func TestCopyNil(t *testing.T) {
	require.Nil(t, Copy(nil))
	require.Nil(t, CopyDefinite(nil))
}

func TestCopyAllocationFailure(t *testing.T) {
	failing := Allocator{
		GrowBytes: func(cur []byte, n int) ([]byte, bool) { return nil, false },
		GrowItems: DefaultAllocator.GrowItems,
		GrowPairs: DefaultAllocator.GrowPairs,
	}
	bs := &Item{typ: ByteStringType, refs: 1, definite: true, buf: []byte{1, 2, 3}}
	require.Nil(t, copyWith(bs, false, failing))
}
