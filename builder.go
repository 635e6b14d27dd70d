package cbor

import "unicode/utf8"

// This file turns the flat sequence of Decode callbacks into a tree of
// Items, tracking open containers on a LIFO stack: each open array, map,
// tag, or indefinite string is a frame waiting for a fixed or
// indefinite number of further events before it closes and attaches to
// its own parent frame.

// frame is one open container on the builder's stack: the container Item
// itself, plus how many more direct children it is still waiting for.
// remaining == infinite marks an indefinite-length container, which closes
// only on an explicit Break event rather than a count reaching zero.
type frame struct {
	item      *Item
	remaining uint64
}

const infinite = ^uint64(0)

// Builder is the mutable context threaded through a sequence of Decode
// calls. It owns the stack of open containers, the root item once decoding
// finishes, and the knobs (depth limit, allocator, strict UTF-8) that were
// passed to the Load call that created it.
type Builder struct {
	stack []*frame
	root  *Item

	creationFailed bool
	syntaxError    bool

	alloc      Allocator
	maxDepth   int
	strictUTF8 bool
}

func newBuilder(alloc Allocator, maxDepth int, strictUTF8 bool) *Builder {
	return &Builder{alloc: alloc, maxDepth: maxDepth, strictUTF8: strictUTF8}
}

func (b *Builder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) fail() {
	b.creationFailed = true
}

func (b *Builder) openFrame(item *Item, remaining uint64) {
	if len(b.stack) >= b.maxDepth {
		b.syntaxError = true
		return
	}
	b.stack = append(b.stack, &frame{item: item, remaining: remaining})
}

// safeAllocCount converts a declared array/map count to an int, reporting
// ok=false if the uint64 value doesn't round-trip -- which happens once it
// exceeds what int can represent (e.g. a declared length at or above 2^63
// on a 64-bit platform becomes negative on conversion). This is checked
// before the value ever reaches an Allocator, since slices.Grow panics on
// a negative count rather than reporting failure.
func safeAllocCount(v uint64) (int, bool) {
	n := int(v)
	if n < 0 || uint64(n) != v {
		return 0, false
	}
	return n, true
}

// Callbacks wires every CBOR event to the builder's state machine. A single
// *Builder is built once per Load call and reused across every Decode call
// that call makes.
func (b *Builder) callbacks() *Callbacks {
	return &Callbacks{
		UInt:   func(ctx *Builder, width Width, v uint64) { ctx.finishValue(BuildUint(width, v)) },
		NegInt: func(ctx *Builder, width Width, v uint64) { ctx.finishValue(BuildNegint(width, v)) },

		ByteString:      func(ctx *Builder, data []byte) { ctx.emitStringLike(ByteStringType, data) },
		ByteStringStart: func(ctx *Builder) { ctx.openIndefiniteStringLike(ByteStringType) },
		String:          func(ctx *Builder, data []byte) { ctx.emitStringLike(StringType, data) },
		StringStart:     func(ctx *Builder) { ctx.openIndefiniteStringLike(StringType) },

		ArrayStart: func(ctx *Builder, length uint64) {
			n, ok := safeAllocCount(length)
			if !ok {
				ctx.fail()
				return
			}
			it := &Item{typ: ArrayType, refs: 1, definite: true, capacity: n}
			if n > 0 {
				items, ok := ctx.alloc.GrowItems(nil, n)
				if !ok {
					ctx.fail()
					return
				}
				it.elems = items
			}
			if n == 0 {
				ctx.finishValue(it)
				return
			}
			ctx.openFrame(it, length)
		},
		IndefArrayStart: func(ctx *Builder) {
			it := &Item{typ: ArrayType, refs: 1, definite: false}
			ctx.openFrame(it, infinite)
		},
		MapStart: func(ctx *Builder, pairCount uint64) {
			n, ok := safeAllocCount(pairCount)
			if !ok {
				ctx.fail()
				return
			}
			it := &Item{typ: MapType, refs: 1, definite: true, capacity: n}
			if n > 0 {
				pairs, ok := ctx.alloc.GrowPairs(nil, n)
				if !ok {
					ctx.fail()
					return
				}
				it.pairs = pairs
			}
			if n == 0 {
				ctx.finishValue(it)
				return
			}
			// a MAP of declared pairCount N waits for 2*N child events
			// (key, value, key, value, ...) before it closes.
			ctx.openFrame(it, pairCount*2)
		},
		IndefMapStart: func(ctx *Builder) {
			it := &Item{typ: MapType, refs: 1, definite: false}
			ctx.openFrame(it, infinite)
		},

		Tag: func(ctx *Builder, value uint64) {
			it := &Item{typ: TagType, refs: 1, tagValue: value}
			ctx.openFrame(it, 1)
		},

		Boolean:   func(ctx *Builder, v bool) { ctx.finishValue(BuildBool(v)) },
		Null:      func(ctx *Builder) { ctx.finishValue(BuildNull()) },
		Undefined: func(ctx *Builder) { ctx.finishValue(BuildUndefined()) },
		Simple:    func(ctx *Builder, v uint8) { ctx.finishValue(BuildCtrl(v)) },
		Float2:    func(ctx *Builder, bits uint16) { ctx.finishValue(BuildFloat2(loadFloat16(bits))) },
		Float4:    func(ctx *Builder, bits uint32) { ctx.finishValue(BuildFloat4(loadFloat32(bits))) },
		Float8:    func(ctx *Builder, bits uint64) { ctx.finishValue(BuildFloat8(loadFloat64(bits))) },
		IndefBreak: func(ctx *Builder) { ctx.closeIndefinite() },
	}
}

// emitStringLike handles a definite chunk of bytes/text arriving either as a
// standalone definite item, or -- if the top frame is a matching open
// indefinite string/bytestring -- as one more chunk of it. Chunks of an
// indefinite string must share the parent's major type and must themselves
// be definite, which Decode already guarantees since it only calls this
// callback for definite-length strings.
func (b *Builder) emitStringLike(typ Type, data []byte) {
	if b.strictUTF8 && typ == StringType && !utf8.Valid(data) {
		b.syntaxError = true
		return
	}
	if f := b.top(); f != nil && f.item.typ == typ && !f.item.definite && f.remaining == infinite {
		buf, ok := b.alloc.GrowBytes(nil, len(data))
		if !ok {
			b.fail()
			return
		}
		buf = append(buf[:0], data...)
		chunk := &Item{typ: typ, refs: 1, definite: true, buf: buf, codepoints: countCodepoints(typ, buf)}
		f.item.chunks = append(f.item.chunks, chunk)
		return
	}
	buf, ok := b.alloc.GrowBytes(nil, len(data))
	if !ok {
		b.fail()
		return
	}
	buf = append(buf[:0], data...)
	it := &Item{typ: typ, refs: 1, definite: true, buf: buf, codepoints: countCodepoints(typ, buf)}
	b.finishValue(it)
}

func countCodepoints(typ Type, buf []byte) int {
	if typ != StringType {
		return 0
	}
	return utf8.RuneCount(buf)
}

func (b *Builder) openIndefiniteStringLike(typ Type) {
	it := &Item{typ: typ, refs: 1, definite: false}
	b.openFrame(it, infinite)
}

// closeIndefinite handles a Break event: it must match an open indefinite
// container or string on top of the stack. Breaking with a pending
// (half-filled) MAP key, breaking a definite container, or breaking with
// nothing open are all syntax errors.
func (b *Builder) closeIndefinite() {
	f := b.top()
	if f == nil {
		b.syntaxError = true
		return
	}
	if f.item.definite || f.remaining != infinite {
		b.syntaxError = true
		return
	}
	if f.item.typ == MapType && f.item.pendingKey != nil {
		b.syntaxError = true
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.finishValue(f.item)
}

// finishValue handles one fully-built value, whether a freshly decoded
// scalar or a container frame that has just closed. It either becomes the
// Builder's root (if the stack is now empty) or is attached to the new top
// frame, applying the MAP half-pair rule: the first of every two values a
// MAP frame receives becomes the pending key, the second completes a Pair.
func (b *Builder) finishValue(item *Item) {
	if item == nil {
		return
	}
	parent := b.top()
	if parent == nil {
		b.root = item
		return
	}
	switch parent.item.typ {
	case ArrayType:
		parent.item.elems = append(parent.item.elems, item)
	case MapType:
		if parent.item.pendingKey == nil {
			parent.item.pendingKey = item
		} else {
			parent.item.pairs = append(parent.item.pairs, Pair{Key: parent.item.pendingKey, Value: item})
			parent.item.pendingKey = nil
		}
	case TagType:
		parent.item.child = item
	default:
		// BYTESTRING/STRING frames only ever receive chunks through
		// emitStringLike, which appends directly rather than routing
		// through finishValue.
		b.syntaxError = true
		return
	}
	if parent.remaining != infinite {
		parent.remaining--
		if parent.remaining == 0 {
			b.stack = b.stack[:len(b.stack)-1]
			b.finishValue(parent.item)
		}
	}
}

// done reports whether the builder has produced a complete root item with
// no open frames remaining.
func (b *Builder) done() bool {
	return b.root != nil && len(b.stack) == 0
}
