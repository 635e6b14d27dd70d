package cbor

// This file is the Copy & Canonicalize component, a direct port of
// original_source/src/cbor.c's cbor_copy and cbor_copy_definite control
// flow: a recursive structural walk, switching on Type() exactly the way
// the C switches on cbor_typeof(item). Copy preserves indefinite-length
// structure; CopyDefinite collapses it, concatenating indefinite string
// chunks and flattening indefinite arrays/maps into exact-capacity definite
// ones, matching _cbor_copy_definite's two extra cases over _cbor_copy.
//
// Both return nil if the supplied Allocator reports an allocation failure
// anywhere during the walk, mirroring cbor_copy's MEMERROR return.

// Copy returns a new item tree structurally identical to it, including its
// definite/indefinite shape, with its own independent refcount 1 at every
// node. it is not modified or consumed.
func Copy(it *Item) *Item {
	return copyWith(it, false, globalAllocator)
}

// CopyDefinite returns a new item tree equivalent to it but with every
// indefinite-length string, bytestring, array, and map collapsed to
// definite form: indefinite string/bytestring chunks are concatenated into
// one buffer, and indefinite arrays/maps become definite containers whose
// declared capacity equals their actual element/pair count.
func CopyDefinite(it *Item) *Item {
	return copyWith(it, true, globalAllocator)
}

func copyWith(it *Item, definite bool, alloc Allocator) *Item {
	if it == nil {
		return nil
	}
	switch it.typ {
	case UintType:
		return BuildUint(it.intWidth, it.uval)
	case NegintType:
		return BuildNegint(it.intWidth, it.uval)
	case FloatCtrlType:
		switch it.floatWidth {
		case FloatWidth0:
			return BuildCtrl(it.simple)
		case FloatWidth2:
			return BuildFloat2(it.fval)
		case FloatWidth4:
			return BuildFloat4(it.fval)
		default:
			return BuildFloat8(it.fval)
		}
	case ByteStringType, StringType:
		return copyStringLike(it, definite, alloc)
	case ArrayType:
		return copyArray(it, definite, alloc)
	case MapType:
		return copyMap(it, definite, alloc)
	case TagType:
		content := copyWith(it.child, definite, alloc)
		if it.child != nil && content == nil {
			return nil
		}
		return BuildTag(it.tagValue, content)
	default:
		return nil
	}
}

func copyStringLike(it *Item, definite bool, alloc Allocator) *Item {
	if it.definite {
		buf, ok := alloc.GrowBytes(nil, len(it.buf))
		if !ok {
			return nil
		}
		buf = append(buf[:0], it.buf...)
		return &Item{typ: it.typ, refs: 1, definite: true, buf: buf, codepoints: it.codepoints}
	}
	if !definite {
		chunks := make([]*Item, 0, len(it.chunks))
		for _, c := range it.chunks {
			cc := copyStringLike(c, false, alloc)
			if cc == nil {
				return nil
			}
			chunks = append(chunks, cc)
		}
		return &Item{typ: it.typ, refs: 1, definite: false, chunks: chunks}
	}
	// collapse indefinite chunks into one definite buffer (cbor_copy_definite).
	total := 0
	codepoints := 0
	for _, c := range it.chunks {
		total += len(c.buf)
		codepoints += c.codepoints
	}
	buf, ok := alloc.GrowBytes(nil, total)
	if !ok {
		return nil
	}
	buf = buf[:0]
	for _, c := range it.chunks {
		buf = append(buf, c.buf...)
	}
	return &Item{typ: it.typ, refs: 1, definite: true, buf: buf, codepoints: codepoints}
}

func copyArray(it *Item, definite bool, alloc Allocator) *Item {
	n := len(it.elems)
	items, ok := alloc.GrowItems(nil, n)
	if !ok {
		return nil
	}
	items = items[:0]
	for _, e := range it.elems {
		ce := copyWith(e, definite, alloc)
		if ce == nil {
			return nil
		}
		items = append(items, ce)
	}
	out := &Item{typ: ArrayType, refs: 1, elems: items}
	if definite || it.definite {
		out.definite = true
		out.capacity = n
	} else {
		out.capacity = it.capacity
	}
	return out
}

func copyMap(it *Item, definite bool, alloc Allocator) *Item {
	n := len(it.pairs)
	pairs, ok := alloc.GrowPairs(nil, n)
	if !ok {
		return nil
	}
	pairs = pairs[:0]
	for _, p := range it.pairs {
		ck := copyWith(p.Key, definite, alloc)
		if ck == nil {
			return nil
		}
		cv := copyWith(p.Value, definite, alloc)
		if cv == nil {
			return nil
		}
		pairs = append(pairs, Pair{Key: ck, Value: cv})
	}
	out := &Item{typ: MapType, refs: 1, pairs: pairs}
	if definite || it.definite {
		out.definite = true
		out.capacity = n
	} else {
		out.capacity = it.capacity
	}
	return out
}
