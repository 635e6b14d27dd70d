// Package cbor decodes CBOR (RFC 8949) data items into a tree of refcounted
// Item values.
//
// Use Load to decode a single top-level data item from a byte slice:
//
//	item, err := cbor.Load(buf)
//	if !err.IsZero() {
//		// err.Code is one of ErrNoData, ErrNotEnoughData, ErrMalformed,
//		// ErrMemory, ErrSyntax; err.Position is the byte offset reached.
//	}
//
// The following table summarizes the mapping in between CBOR major types
// and Item:
//
//	CBOR                     Item
//	----                     ----
//
//	unsigned integer    ↔    UintType,       Item.Uint()
//	negative integer    ↔    NegintType,     Item.Negint()
//	byte string         ↔    ByteStringType, Item.BytestringDefinite()/BytestringChunks()
//	text string         ↔    StringType,     Item.StringDefinite()/StringChunks()
//	array               ↔    ArrayType,      Item.ArrayItems()
//	map                 ↔    MapType,        Item.MapPairs(), Item.Lookup()
//	tag                 ↔    TagType,        Item.TagValue()/TagContent()
//	simple value/float  ↔    FloatCtrlType,  Item.Bool()/Float()/CtrlValue()
//
// Item is a single concrete struct rather than an interface hierarchy, so
// that Type(), Incref, and Decref work uniformly across every CBOR major
// type -- mirroring libcbor's tagged-union cbor_item_t. Reference counting
// is explicit and mandatory: every Item this package hands back has
// refcount 1, and every container Item owns one reference to each of its
// children. Callers that store an Item beyond the scope it was produced in
// must Incref it; callers done with one must Decref it, which recursively
// releases everything it owns once its count reaches zero.
//
//
// Definite and indefinite length
//
// CBOR byte strings, text strings, arrays, and maps may be encoded with a
// definite length (the count is stated up front) or an indefinite length
// (the container is terminated by a break byte, 0xff). Item preserves this
// distinction rather than collapsing it: IsDefinite reports which form was
// read, BytestringChunks/StringChunks expose an indefinite string's pieces,
// and ArrayItems/MapPairs are populated incrementally as an indefinite
// container is read regardless of form.
//
// Copy and CopyDefinite produce a structural copy of an item tree; Copy
// preserves the original's definite/indefinite shape, while CopyDefinite
// collapses every indefinite string into one concatenated buffer and every
// indefinite array/map into an exact-capacity definite one -- the same
// distinction original_source's cbor_copy and cbor_copy_definite draw.
//
//
// Allocation
//
// Load obtains backing storage for string payloads and for definite arrays
// and maps through an Allocator, which can be overridden per call with
// WithAllocator or process-wide with SetAllocs. The element, pair, and chunk
// lists of indefinite-length containers and strings grow with Go's append
// and do not go through the Allocator. This is the Go analogue of libcbor's
// process-wide cbor_set_allocs: a test harness can inject an Allocator that
// fails after N bytes to exercise Load's ErrMemory path without truncating
// the input itself.
//
//
// Limits
//
// Load bounds container nesting depth at 1024 by default, rejecting
// deeper input with ErrSyntax; WithMaxDepth adjusts or disables this.
// WithStrictUTF8 additionally rejects text strings that are not
// well-formed UTF-8, which Load otherwise passes through uninterpreted.
//
//
// Out of scope
//
// This package decodes CBOR; it does not encode it. Per-item encoders and
// a human-readable pretty-printer are deliberately not implemented here --
// see original_source's CBOR_PRETTY_PRINTER-gated cbor_describe for the
// contract such a printer would need to satisfy, dispatching on Type() and,
// for FloatCtrlType, on IsBool/IsNull/IsUndef.
package cbor
