package cbor

import "fmt"

// Type is the major-type discriminant of an Item.
type Type uint8

const (
	InvalidType Type = iota
	UintType
	NegintType
	ByteStringType
	StringType
	ArrayType
	MapType
	TagType
	FloatCtrlType
)

func (t Type) String() string {
	switch t {
	case InvalidType:
		return "invalid"
	case UintType:
		return "uint"
	case NegintType:
		return "negint"
	case ByteStringType:
		return "bytestring"
	case StringType:
		return "string"
	case ArrayType:
		return "array"
	case MapType:
		return "map"
	case TagType:
		return "tag"
	case FloatCtrlType:
		return "float/ctrl"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Width records the encoded width of a UINT/NEGINT item, in bytes.
type Width uint8

const (
	Width1 Width = 1
	Width2 Width = 2
	Width4 Width = 4
	Width8 Width = 8
)

// FloatWidth records the encoded width of a FLOAT_CTRL item. Width0 means
// the item is a one-byte "simple value" (including the conventionally named
// false/true/null/undefined codes); widths 2/4/8 are IEEE-754 half/single/
// double precision floats.
type FloatWidth uint8

const (
	FloatWidth0 FloatWidth = 0
	FloatWidth2 FloatWidth = 2
	FloatWidth4 FloatWidth = 4
	FloatWidth8 FloatWidth = 8
)

// Conventional simple-value codes for FLOAT_CTRL items of FloatWidth0.
const (
	SimpleFalse     uint8 = 20
	SimpleTrue      uint8 = 21
	SimpleNull      uint8 = 22
	SimpleUndefined uint8 = 23
)

// Type returns the item's major-type discriminant.
func (it *Item) Type() Type {
	if it == nil {
		return InvalidType
	}
	return it.typ
}

func (it *Item) IsaUint() bool       { return it.Type() == UintType }
func (it *Item) IsaNegint() bool     { return it.Type() == NegintType }
func (it *Item) IsaByteString() bool { return it.Type() == ByteStringType }
func (it *Item) IsaString() bool     { return it.Type() == StringType }
func (it *Item) IsaArray() bool      { return it.Type() == ArrayType }
func (it *Item) IsaMap() bool        { return it.Type() == MapType }
func (it *Item) IsaTag() bool        { return it.Type() == TagType }
func (it *Item) IsaFloatCtrl() bool  { return it.Type() == FloatCtrlType }

// IsInt reports whether the item is either major type 0 or 1.
func (it *Item) IsInt() bool {
	return it.IsaUint() || it.IsaNegint()
}

// IsFloat reports whether the item is a FLOAT_CTRL item carrying an actual
// IEEE-754 value (as opposed to a simple value).
func (it *Item) IsFloat() bool {
	return it.IsaFloatCtrl() && it.floatWidth != FloatWidth0
}

// IsBool reports whether the item is the simple value false or true.
func (it *Item) IsBool() bool {
	return it.IsaFloatCtrl() && it.floatWidth == FloatWidth0 &&
		(it.simple == SimpleFalse || it.simple == SimpleTrue)
}

// IsNull reports whether the item is the simple value null.
func (it *Item) IsNull() bool {
	return it.IsaFloatCtrl() && it.floatWidth == FloatWidth0 && it.simple == SimpleNull
}

// IsUndef reports whether the item is the simple value undefined.
func (it *Item) IsUndef() bool {
	return it.IsaFloatCtrl() && it.floatWidth == FloatWidth0 && it.simple == SimpleUndefined
}
