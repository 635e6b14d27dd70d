package cbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderMapHalfPairRule(t *testing.T) {
	b := newBuilder(DefaultAllocator, defaultMaxDepth, false)
	cb := b.callbacks()

	cb.IndefMapStart(b)
	cb.String(b, []byte("k1"))
	cb.UInt(b, Width1, 1)
	cb.String(b, []byte("k2"))
	cb.UInt(b, Width1, 2)
	cb.IndefBreak(b)

	require.True(t, b.done())
	require.False(t, b.syntaxError)
	require.Equal(t, MapType, b.root.typ)
	require.Len(t, b.root.pairs, 2)

	k0, _, _ := b.root.pairs[0].Key.StringDefinite()
	require.Equal(t, "k1", string(k0))
	require.Equal(t, uint64(1), b.root.pairs[0].Value.Uint())
}

func TestBuilderBreakWithNoOpenFrameIsSyntaxError(t *testing.T) {
	b := newBuilder(DefaultAllocator, defaultMaxDepth, false)
	cb := b.callbacks()
	cb.IndefBreak(b)
	require.True(t, b.syntaxError)
}

func TestBuilderBreakOnDefiniteIsSyntaxError(t *testing.T) {
	b := newBuilder(DefaultAllocator, defaultMaxDepth, false)
	cb := b.callbacks()
	cb.ArrayStart(b, 1)
	cb.IndefBreak(b)
	require.True(t, b.syntaxError)
}

func TestBuilderBreakWithPendingKeyIsSyntaxError(t *testing.T) {
	b := newBuilder(DefaultAllocator, defaultMaxDepth, false)
	cb := b.callbacks()
	cb.IndefMapStart(b)
	cb.String(b, []byte("dangling-key"))
	cb.IndefBreak(b)
	require.True(t, b.syntaxError)
}

func TestBuilderIndefiniteStringChunking(t *testing.T) {
	b := newBuilder(DefaultAllocator, defaultMaxDepth, false)
	cb := b.callbacks()
	cb.ByteStringStart(b)
	cb.ByteString(b, []byte{1, 2})
	cb.ByteString(b, []byte{3})
	cb.IndefBreak(b)

	require.True(t, b.done())
	require.Equal(t, ByteStringType, b.root.typ)
	require.False(t, b.root.definite)
	require.Len(t, b.root.chunks, 2)
	require.Equal(t, []byte{1, 2}, b.root.chunks[0].buf)
	require.Equal(t, []byte{3}, b.root.chunks[1].buf)
}

func TestBuilderDefiniteArrayClosesOnCount(t *testing.T) {
	b := newBuilder(DefaultAllocator, defaultMaxDepth, false)
	cb := b.callbacks()
	cb.ArrayStart(b, 2)
	require.False(t, b.done())
	cb.UInt(b, Width1, 10)
	require.False(t, b.done())
	cb.UInt(b, Width1, 20)
	require.True(t, b.done())
	require.Equal(t, 2, b.root.ArrayLen())
}

func TestBuilderNestedContainersCascade(t *testing.T) {
	b := newBuilder(DefaultAllocator, defaultMaxDepth, false)
	cb := b.callbacks()
	// [[1]]
	cb.ArrayStart(b, 1)
	cb.ArrayStart(b, 1)
	cb.UInt(b, Width1, 1)

	require.True(t, b.done())
	outer := b.root
	require.Equal(t, 1, outer.ArrayLen())
	inner := outer.ArrayItems()[0]
	require.Equal(t, 1, inner.ArrayLen())
	require.Equal(t, uint64(1), inner.ArrayItems()[0].Uint())
}

func TestBuilderMaxDepthRejected(t *testing.T) {
	b := newBuilder(DefaultAllocator, 1, false)
	cb := b.callbacks()
	cb.IndefArrayStart(b)
	cb.IndefArrayStart(b)
	require.True(t, b.syntaxError)
}
