package cbor

import "golang.org/x/exp/slices"

// Allocator supplies the backing storage for every string and bytestring
// payload (GrowBytes) and the pre-sized element/pair storage of definite
// arrays and maps (GrowItems, GrowPairs); Copy and CopyDefinite also use
// GrowItems/GrowPairs for every array and map they copy. The element, pair,
// and chunk lists of indefinite arrays, maps, and strings being decoded grow
// with Go's append and do not go through the Allocator, so an Allocator
// cannot make that growth fail. The zero Allocator is not usable; use
// DefaultAllocator or a value built on top of it.
//
// Rather than libcbor's process-wide malloc/realloc/free function
// pointers, gocbor lets each Load call take its own Allocator
// (WithAllocator). A package-level SetAllocs is still provided for
// callers that genuinely want process-wide injection (e.g. a test harness
// that wants every Load in the binary to observe simulated exhaustion);
// new code should prefer WithAllocator.
type Allocator struct {
	// GrowBytes returns storage of at least n bytes, or ok=false to
	// simulate allocation failure.
	GrowBytes func(cur []byte, n int) (buf []byte, ok bool)

	// GrowItems returns storage with room for at least n more *Item slots
	// appended to cur, or ok=false to simulate allocation failure.
	GrowItems func(cur []*Item, n int) (items []*Item, ok bool)

	// GrowPairs is GrowItems for MAP pair storage.
	GrowPairs func(cur []Pair, n int) (pairs []Pair, ok bool)
}

// maxAllocCount caps how many bytes, items, or pairs a single DefaultAllocator
// grow call will honor. A CBOR array/map/string head can declare any 64-bit
// count; a declared count this large can never be backed by an actual
// payload in practice, so DefaultAllocator reports failure instead of
// asking the Go runtime to attempt the allocation. Negative n -- which
// arises when a declared uint64 count overflows int on conversion -- fails
// the same way.
const maxAllocCount = 1 << 28

func withinAllocCap(n int) bool {
	return n >= 0 && n <= maxAllocCount
}

// DefaultAllocator grows storage geometrically via golang.org/x/exp/slices.Grow,
// failing (ok=false) rather than panicking or exhausting memory when asked
// to grow past maxAllocCount or by a negative count.
var DefaultAllocator = Allocator{
	GrowBytes: func(cur []byte, n int) ([]byte, bool) {
		if !withinAllocCap(n) {
			return nil, false
		}
		return slices.Grow(cur, n), true
	},
	GrowItems: func(cur []*Item, n int) ([]*Item, bool) {
		if !withinAllocCap(n) {
			return nil, false
		}
		return slices.Grow(cur, n), true
	},
	GrowPairs: func(cur []Pair, n int) ([]Pair, bool) {
		if !withinAllocCap(n) {
			return nil, false
		}
		return slices.Grow(cur, n), true
	},
}

var globalAllocator = DefaultAllocator

// SetAllocs installs process-wide allocation hooks used by Load when no
// WithAllocator option is supplied. Like libcbor's cbor_set_allocs, this
// modifies global state and must not be called while any Loader goroutine
// may be concurrently decoding.
func SetAllocs(a Allocator) {
	globalAllocator = a
}
