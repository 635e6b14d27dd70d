package cbor

import "github.com/aristanetworks/gomap"

// Item is a refcounted node representing one CBOR data item. The zero value
// is not a valid Item; items are produced by Load, Copy, CopyDefinite, or the
// Build* constructors below, all of which return a pointer with
// refcount 1.
//
// Every non-nil parent holds exactly one reference to each child it owns;
// containers transitively own their descendants. Items are mutable only
// while under construction -- a definite
// container until its capacity is reached, an indefinite one until its
// matching Break arrives -- and immutable afterwards. This package offers
// no in-place Push/Add operations on finished items and does not itself
// re-encode items.
//
// A pretty-printer walking an Item tree would dispatch on Type() and, for
// FLOAT_CTRL, on whether IsBool/IsNull/IsUndef hold.
type Item struct {
	typ  Type
	refs int32

	// UINT / NEGINT
	intWidth Width
	uval     uint64 // UINT: the value. NEGINT: value such that the number is -1-value.

	// BYTESTRING / STRING / ARRAY / MAP
	definite bool
	capacity int // definite ARRAY/MAP: declared capacity

	// BYTESTRING / STRING definite payload
	buf        []byte
	codepoints int // STRING only: best-effort UTF-8 codepoint count

	// BYTESTRING / STRING indefinite: ordered definite chunks
	chunks []*Item

	// ARRAY: ordered element references
	elems []*Item

	// MAP: ordered pairs, plus the transient half-filled key while a pair
	// is being assembled by the builder.
	pairs      []Pair
	pendingKey *Item

	lookup *gomap.Map[string, int] // lazy Map.Lookup index, see lookup.go

	// TAG
	tagValue uint64
	child    *Item

	// FLOAT_CTRL
	floatWidth FloatWidth
	simple     uint8   // FloatWidth0: the simple-value code 0..255
	fval       float64 // FloatWidth2/4/8: the widened IEEE-754 value
}

// Pair is one key/value entry of a MAP item.
type Pair struct {
	Key   *Item
	Value *Item
}

// Refcount returns the item's current reference count.
//
// This does not account for transitive references: it is the count of
// direct holders of this exact pointer, matching libcbor's cbor_refcount.
func (it *Item) Refcount() int32 {
	if it == nil {
		return 0
	}
	return it.refs
}

// Incref increases the item's reference count by one and returns it, to
// allow chaining (e.g. `child := cbor.Incref(shared)`).
func Incref(it *Item) *Item {
	if it != nil {
		it.refs++
	}
	return it
}

// Decref decreases (*slot)'s reference count by one. If it reaches zero, the
// item and everything it owns is released recursively and *slot is set to
// nil. Decref is a no-op on a nil slot or a nil *slot.
func Decref(slot **Item) {
	if slot == nil || *slot == nil {
		return
	}
	it := *slot
	it.refs--
	if it.refs <= 0 {
		releaseChildren(it)
		*slot = nil
	}
}

// DecrefIntermediate is Decref without the set-to-nil behavior, for callers
// that only hold the item by value rather than through an addressable slot.
func DecrefIntermediate(it *Item) {
	if it == nil {
		return
	}
	it.refs--
	if it.refs <= 0 {
		releaseChildren(it)
	}
}

// Move decreases the item's reference count by one without releasing it
// even if the count reaches zero, mirroring C++ move construction. It is
// used to hand an intermediate value to a function that will Incref its
// argument, such as pushing a freshly built child into a parent container
// that immediately takes its own reference.
//
// If Move's result is never re-incremented, the item's storage is leaked
// from the refcounting model's perspective (Go's garbage collector will
// still eventually reclaim it once nothing else reaches it; Move exists to
// keep the reference-count bookkeeping honest, not to manage raw memory).
func Move(it *Item) *Item {
	if it != nil {
		it.refs--
	}
	return it
}

// releaseChildren recursively decrefs everything it owns. It does not touch
// it itself -- the caller (Decref/DecrefIntermediate) has already determined
// the refcount reached zero.
func releaseChildren(it *Item) {
	switch it.typ {
	case ByteStringType, StringType:
		for i := range it.chunks {
			c := it.chunks[i]
			it.chunks[i] = nil
			DecrefIntermediate(c)
		}
	case ArrayType:
		for i := range it.elems {
			e := it.elems[i]
			it.elems[i] = nil
			DecrefIntermediate(e)
		}
	case MapType:
		for i := range it.pairs {
			k, v := it.pairs[i].Key, it.pairs[i].Value
			it.pairs[i] = Pair{}
			DecrefIntermediate(k)
			DecrefIntermediate(v)
		}
		if it.pendingKey != nil {
			DecrefIntermediate(it.pendingKey)
			it.pendingKey = nil
		}
	case TagType:
		c := it.child
		it.child = nil
		DecrefIntermediate(c)
	}
}

// ---- scalar builders ----

// BuildUint constructs a UINT item of the given encoded width.
func BuildUint(width Width, v uint64) *Item {
	return &Item{typ: UintType, refs: 1, intWidth: width, uval: v}
}

// BuildNegint constructs a NEGINT item of the given encoded width. v is the
// wire value; the represented number is -1-v, so v==0 means -1 and
// v==math.MaxUint64 means -2^64. The wire value is preserved as-is rather
// than rejected, since CBOR itself places no upper bound on it.
func BuildNegint(width Width, v uint64) *Item {
	return &Item{typ: NegintType, refs: 1, intWidth: width, uval: v}
}

// BuildTag constructs a TAG item wrapping content. BuildTag takes ownership
// of the caller's reference to content (the caller should Move it in, or
// stop using its own handle).
func BuildTag(tagValue uint64, content *Item) *Item {
	return &Item{typ: TagType, refs: 1, tagValue: tagValue, child: content}
}

// BuildCtrl constructs a FLOAT_CTRL item holding the one-byte simple value
// code (0..255), including the conventional codes 20/21/22/23 for
// false/true/null/undefined.
func BuildCtrl(code uint8) *Item {
	return &Item{typ: FloatCtrlType, refs: 1, floatWidth: FloatWidth0, simple: code}
}

func BuildBool(b bool) *Item {
	if b {
		return BuildCtrl(SimpleTrue)
	}
	return BuildCtrl(SimpleFalse)
}

func BuildNull() *Item      { return BuildCtrl(SimpleNull) }
func BuildUndefined() *Item { return BuildCtrl(SimpleUndefined) }

// BuildFloat2/4/8 construct a FLOAT_CTRL item from the widened value that a
// half/single/double precision encoding produced (see loaders.go).
func BuildFloat2(v float64) *Item { return &Item{typ: FloatCtrlType, refs: 1, floatWidth: FloatWidth2, fval: v} }
func BuildFloat4(v float64) *Item { return &Item{typ: FloatCtrlType, refs: 1, floatWidth: FloatWidth4, fval: v} }
func BuildFloat8(v float64) *Item { return &Item{typ: FloatCtrlType, refs: 1, floatWidth: FloatWidth8, fval: v} }

// ---- accessors ----

// IntWidth returns the encoded width of a UINT/NEGINT item.
func (it *Item) IntWidth() Width { return it.intWidth }

// Uint returns a UINT item's value.
func (it *Item) Uint() uint64 { return it.uval }

// NegintRaw returns a NEGINT item's wire value v, where the represented
// number is -1-v.
func (it *Item) NegintRaw() uint64 { return it.uval }

// Negint returns a NEGINT item's value as a signed int64, and false if the
// represented number (-1-v) does not fit in an int64 (i.e. v >= 2^63).
func (it *Item) Negint() (int64, bool) {
	if it.uval >= 1<<63 {
		return 0, false
	}
	return -1 - int64(it.uval), true
}

// FloatWidth returns the encoded width of a FLOAT_CTRL item.
func (it *Item) FloatWidth() FloatWidth { return it.floatWidth }

// CtrlValue returns the one-byte simple-value code of a FloatWidth0 item.
func (it *Item) CtrlValue() uint8 { return it.simple }

// Float returns the widened IEEE-754 value of a FloatWidth2/4/8 item.
func (it *Item) Float() float64 { return it.fval }

// Bool returns the boolean value of a simple false/true item and whether the
// item actually was one.
func (it *Item) Bool() (bool, bool) {
	if !it.IsBool() {
		return false, false
	}
	return it.simple == SimpleTrue, true
}

// TagValue returns a TAG item's tag number.
func (it *Item) TagValue() uint64 { return it.tagValue }

// TagContent returns a TAG item's sole child, without adjusting its
// refcount (a "get" accessor; callers that store the result elsewhere should
// Incref it).
func (it *Item) TagContent() *Item { return it.child }

// BytestringDefinite reports whether a BYTESTRING item is definite, and its
// bytes if so.
func (it *Item) BytestringDefinite() ([]byte, bool) {
	if it.typ != ByteStringType || !it.definite {
		return nil, false
	}
	return it.buf, true
}

// BytestringChunks returns an indefinite BYTESTRING item's ordered chunks.
func (it *Item) BytestringChunks() []*Item { return it.chunks }

// StringDefinite reports whether a STRING item is definite, and its bytes
// and best-effort codepoint count if so.
func (it *Item) StringDefinite() ([]byte, int, bool) {
	if it.typ != StringType || !it.definite {
		return nil, 0, false
	}
	return it.buf, it.codepoints, true
}

// StringChunks returns an indefinite STRING item's ordered chunks.
func (it *Item) StringChunks() []*Item { return it.chunks }

// IsDefinite reports whether a BYTESTRING/STRING/ARRAY/MAP item has a
// definite (stated) length.
func (it *Item) IsDefinite() bool { return it.definite }

// ArrayCapacity returns a definite ARRAY item's declared capacity.
func (it *Item) ArrayCapacity() int { return it.capacity }

// ArrayItems returns an ARRAY item's ordered elements, without adjusting
// refcounts.
func (it *Item) ArrayItems() []*Item { return it.elems }

// ArrayLen returns the number of elements currently pushed.
func (it *Item) ArrayLen() int { return len(it.elems) }

// MapCapacity returns a definite MAP item's declared pair capacity.
func (it *Item) MapCapacity() int { return it.capacity }

// MapPairs returns a MAP item's ordered pairs, without adjusting refcounts.
func (it *Item) MapPairs() []Pair { return it.pairs }

// MapLen returns the number of pairs currently added.
func (it *Item) MapLen() int { return len(it.pairs) }
