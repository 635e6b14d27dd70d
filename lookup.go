package cbor

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/aristanetworks/gomap"
)

// This file provides an O(1)-amortized Lookup over a MAP item's pairs,
// indexed by a canonical byte-string encoding of each key rather than by
// Go's native equality, since CBOR MAP keys are themselves Item trees. The
// index is built lazily on first Lookup and cached on the Item so repeated
// queries against the same map don't re-scan its pairs.

var lookupSeed = maphash.MakeSeed()

// Lookup finds the value paired with a key canonically equal to the query,
// building and caching an index over it.MapPairs() on first use. It reports
// ok=false if it is not a MAP item, or if no pair has a matching key.
//
// Only keys of type UINT, NEGINT, BYTESTRING (definite), STRING (definite),
// and FLOAT_CTRL simple values (FloatWidth0, any code 0..255) participate in
// the fast index; any pair whose key falls outside that set is still
// checked, via a linear fallback scan, so Lookup never silently misses an
// entry -- it just may not be O(1) for maps with non-canonical keys.
func (it *Item) Lookup(key *Item) (*Item, bool) {
	if it == nil || it.typ != MapType {
		return nil, false
	}
	kk, ok := canonicalKey(key)
	if !ok {
		return it.lookupLinear(key)
	}
	if it.lookup == nil {
		it.buildLookup()
	}
	idx, found := it.lookup.Get(kk)
	if !found {
		return it.lookupLinear(key)
	}
	return it.pairs[idx].Value, true
}

func (it *Item) buildLookup() {
	m := gomap.NewHint[string, int](len(it.pairs), stringEqual, stringHash)
	for i, p := range it.pairs {
		if kk, ok := canonicalKey(p.Key); ok {
			// first writer wins, matching CBOR's general admonition that
			// well-formed maps should not repeat keys.
			if _, exists := m.Get(kk); !exists {
				m.Set(kk, i)
			}
		}
	}
	it.lookup = m
}

// lookupLinear scans every pair directly, for keys canonicalKey can't
// index (indefinite strings, arrays, maps, tags -- anything whose identity
// isn't a flat byte string).
func (it *Item) lookupLinear(key *Item) (*Item, bool) {
	for _, p := range it.pairs {
		if itemsEqual(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

// canonicalKey returns a byte-string encoding of key suitable for use as a
// gomap key, and false if key's type isn't one this index supports.
func canonicalKey(key *Item) (string, bool) {
	if key == nil {
		return "", false
	}
	switch key.typ {
	case UintType:
		var b [9]byte
		b[0] = 'u'
		binary.BigEndian.PutUint64(b[1:], key.uval)
		return string(b[:]), true
	case NegintType:
		var b [9]byte
		b[0] = 'n'
		binary.BigEndian.PutUint64(b[1:], key.uval)
		return string(b[:]), true
	case ByteStringType:
		if !key.definite {
			return "", false
		}
		return "b" + string(key.buf), true
	case StringType:
		if !key.definite {
			return "", false
		}
		return "s" + string(key.buf), true
	case FloatCtrlType:
		if key.floatWidth != FloatWidth0 {
			return "", false
		}
		return string([]byte{'c', key.simple}), true
	default:
		return "", false
	}
}

func stringEqual(a, b string) bool { return a == b }

func stringHash(seed maphash.Seed, s string) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(s)
	return h.Sum64()
}

// itemsEqual reports structural equality between two item trees: same
// type and contents, recursing into containers. FLOAT_CTRL widths are
// compared; UINT/NEGINT encoded widths are not, so a one-byte and an
// eight-byte encoding of the same integer compare equal. It does not
// implement CBOR's "equal values may have different encodings" relaxation
// (e.g. a UINT and a NEGINT never compare equal to each other, nor does a
// definite string compare equal to an indefinite one with the same bytes) --
// Lookup's contract only promises canonical-key fast paths and a faithful
// fallback scan, not cross-encoding numeric equality.
func itemsEqual(a, b *Item) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.typ != b.typ {
		return false
	}
	switch a.typ {
	case UintType, NegintType:
		return a.uval == b.uval
	case ByteStringType, StringType:
		if a.definite != b.definite {
			return false
		}
		if a.definite {
			return string(a.buf) == string(b.buf)
		}
		if len(a.chunks) != len(b.chunks) {
			return false
		}
		for i := range a.chunks {
			if !itemsEqual(a.chunks[i], b.chunks[i]) {
				return false
			}
		}
		return true
	case ArrayType:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !itemsEqual(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case MapType:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if !itemsEqual(a.pairs[i].Key, b.pairs[i].Key) || !itemsEqual(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	case TagType:
		return a.tagValue == b.tagValue && itemsEqual(a.child, b.child)
	case FloatCtrlType:
		return a.floatWidth == b.floatWidth && a.simple == b.simple && a.fval == b.fval
	default:
		return false
	}
}
