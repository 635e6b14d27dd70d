package cbor

// Decode consumes one CBOR data item head -- plus, for definite strings,
// the inline payload -- from the front of a byte slice and reports how
// many bytes it used. It never retains state across calls and never
// allocates on the builder's behalf; it only invokes the supplied
// Callbacks.

// Status is the outcome of one Decode call.
type Status uint8

const (
	// StatusFinished means Decode consumed exactly one data item head (see
	// Decode's return value for the byte count) and invoked one callback.
	StatusFinished Status = iota
	// StatusNotEnoughData means buf ended before the head, its inline
	// argument, or a definite string's payload was fully available. Decode
	// is restartable: the caller may extend buf and call again at the same
	// starting offset.
	StatusNotEnoughData
	// StatusError means the initial byte (or its AI) is malformed: a
	// reserved additional-info value, or an indefinite marker on a major
	// type that forbids one.
	StatusError
)

// Callbacks is the event table Decode drives, one field per CBOR major
// type/variant. UInt/NegInt collapse libcbor's four width-specific
// callbacks (uint8/16/32/64) into one width-tagged callback, since Go
// doesn't need a distinct static type per integer width the way the
// original C builder callbacks do.
type Callbacks struct {
	UInt   func(ctx *Builder, width Width, v uint64)
	NegInt func(ctx *Builder, width Width, v uint64)

	ByteString      func(ctx *Builder, data []byte)
	ByteStringStart func(ctx *Builder)
	String          func(ctx *Builder, data []byte)
	StringStart     func(ctx *Builder)

	ArrayStart      func(ctx *Builder, length uint64)
	IndefArrayStart func(ctx *Builder)
	MapStart        func(ctx *Builder, pairCount uint64)
	IndefMapStart   func(ctx *Builder)

	Tag func(ctx *Builder, value uint64)

	Boolean    func(ctx *Builder, v bool)
	Null       func(ctx *Builder)
	Undefined  func(ctx *Builder)
	Simple     func(ctx *Builder, v uint8)
	Float2     func(ctx *Builder, bits uint16)
	Float4     func(ctx *Builder, bits uint32)
	Float8     func(ctx *Builder, bits uint64)
	IndefBreak func(ctx *Builder)
}

// readArgument reads the AI-encoded argument that follows the initial byte.
// ai must not be 31 (indefinite-length marker); callers check for that
// themselves since only some major types accept it. Reserved values
// 28/29/30 yield StatusError.
func readArgument(buf []byte, ai byte) (value uint64, width Width, argBytes int, status Status) {
	switch {
	case ai < 24:
		return uint64(ai), Width1, 0, StatusFinished
	case ai == 24:
		if len(buf) < 2 {
			return 0, 0, 0, StatusNotEnoughData
		}
		return uint64(buf[1]), Width1, 1, StatusFinished
	case ai == 25:
		if len(buf) < 3 {
			return 0, 0, 0, StatusNotEnoughData
		}
		return uint64(loadUint16(buf, 1)), Width2, 2, StatusFinished
	case ai == 26:
		if len(buf) < 5 {
			return 0, 0, 0, StatusNotEnoughData
		}
		return uint64(loadUint32(buf, 1)), Width4, 4, StatusFinished
	case ai == 27:
		if len(buf) < 9 {
			return 0, 0, 0, StatusNotEnoughData
		}
		return loadUint64(buf, 1), Width8, 8, StatusFinished
	default: // 28, 29, 30: reserved
		return 0, 0, 0, StatusError
	}
}

// Decode consumes one CBOR data item head from the front of buf and invokes
// the matching Callbacks entry. It returns the number of bytes consumed and
// StatusFinished on success, 0 and StatusNotEnoughData if buf was
// truncated, or 0 and StatusError if the initial byte is malformed.
func Decode(buf []byte, cb *Callbacks, ctx *Builder) (int, Status) {
	if len(buf) < 1 {
		return 0, StatusNotEnoughData
	}
	mt := buf[0] >> 5
	ai := buf[0] & 0x1f

	switch mt {
	case 0:
		return decodeUint(buf, ai, cb, ctx)
	case 1:
		return decodeNegint(buf, ai, cb, ctx)
	case 2:
		return decodeStringLike(buf, ai, cb, ctx, false)
	case 3:
		return decodeStringLike(buf, ai, cb, ctx, true)
	case 4:
		return decodeCollectionStart(buf, ai, cb, ctx, true)
	case 5:
		return decodeCollectionStart(buf, ai, cb, ctx, false)
	case 6:
		return decodeTag(buf, ai, cb, ctx)
	default: // 7
		return decodeFloatCtrl(buf, ai, cb, ctx)
	}
}

func decodeUint(buf []byte, ai byte, cb *Callbacks, ctx *Builder) (int, Status) {
	if ai == 31 {
		return 0, StatusError
	}
	v, width, argBytes, status := readArgument(buf, ai)
	if status != StatusFinished {
		return 0, status
	}
	cb.UInt(ctx, width, v)
	return 1 + argBytes, StatusFinished
}

func decodeNegint(buf []byte, ai byte, cb *Callbacks, ctx *Builder) (int, Status) {
	if ai == 31 {
		return 0, StatusError
	}
	v, width, argBytes, status := readArgument(buf, ai)
	if status != StatusFinished {
		return 0, status
	}
	cb.NegInt(ctx, width, v)
	return 1 + argBytes, StatusFinished
}

func decodeStringLike(buf []byte, ai byte, cb *Callbacks, ctx *Builder, isText bool) (int, Status) {
	if ai == 31 {
		if isText {
			cb.StringStart(ctx)
		} else {
			cb.ByteStringStart(ctx)
		}
		return 1, StatusFinished
	}
	length, _, argBytes, status := readArgument(buf, ai)
	if status != StatusFinished {
		return 0, status
	}
	headLen := 1 + argBytes
	if length > uint64(len(buf)-headLen) {
		return 0, StatusNotEnoughData
	}
	total := headLen + int(length)
	payload := buf[headLen:total]
	if isText {
		cb.String(ctx, payload)
	} else {
		cb.ByteString(ctx, payload)
	}
	return total, StatusFinished
}

func decodeCollectionStart(buf []byte, ai byte, cb *Callbacks, ctx *Builder, isArray bool) (int, Status) {
	if ai == 31 {
		if isArray {
			cb.IndefArrayStart(ctx)
		} else {
			cb.IndefMapStart(ctx)
		}
		return 1, StatusFinished
	}
	n, _, argBytes, status := readArgument(buf, ai)
	if status != StatusFinished {
		return 0, status
	}
	if isArray {
		cb.ArrayStart(ctx, n)
	} else {
		cb.MapStart(ctx, n)
	}
	return 1 + argBytes, StatusFinished
}

func decodeTag(buf []byte, ai byte, cb *Callbacks, ctx *Builder) (int, Status) {
	if ai == 31 {
		return 0, StatusError
	}
	v, _, argBytes, status := readArgument(buf, ai)
	if status != StatusFinished {
		return 0, status
	}
	cb.Tag(ctx, v)
	return 1 + argBytes, StatusFinished
}

func decodeFloatCtrl(buf []byte, ai byte, cb *Callbacks, ctx *Builder) (int, Status) {
	switch {
	case ai == 31:
		cb.IndefBreak(ctx)
		return 1, StatusFinished
	case ai == 20:
		cb.Boolean(ctx, false)
		return 1, StatusFinished
	case ai == 21:
		cb.Boolean(ctx, true)
		return 1, StatusFinished
	case ai == 22:
		cb.Null(ctx)
		return 1, StatusFinished
	case ai == 23:
		cb.Undefined(ctx)
		return 1, StatusFinished
	case ai < 20:
		cb.Simple(ctx, ai)
		return 1, StatusFinished
	case ai == 24:
		if len(buf) < 2 {
			return 0, StatusNotEnoughData
		}
		cb.Simple(ctx, buf[1])
		return 2, StatusFinished
	case ai == 25:
		if len(buf) < 3 {
			return 0, StatusNotEnoughData
		}
		cb.Float2(ctx, loadUint16(buf, 1))
		return 3, StatusFinished
	case ai == 26:
		if len(buf) < 5 {
			return 0, StatusNotEnoughData
		}
		cb.Float4(ctx, loadUint32(buf, 1))
		return 5, StatusFinished
	case ai == 27:
		if len(buf) < 9 {
			return 0, StatusNotEnoughData
		}
		cb.Float8(ctx, loadUint64(buf, 1))
		return 9, StatusFinished
	default: // 28, 29, 30
		return 0, StatusError
	}
}
