//go:build gofuzz

package cbor

import "fmt"

// Fuzz exercises Load against arbitrary input, then exercises Copy and
// CopyDefinite against whatever tree it produced, checking for stack
// overflow in Builder and inconsistencies between the decoder and the
// copier.
func Fuzz(data []byte) int {
	item, loadErr := Load(data, WithMaxDepth(64))
	if !loadErr.IsZero() {
		return 0
	}
	defer Decref(&item)

	plain := Copy(item)
	if plain == nil {
		panic("Copy returned nil for a successfully loaded item")
	}
	if !itemsEqual(item, plain) {
		panic(fmt.Sprintf("Copy(item) is not structurally equal to item: %#v vs %#v", item, plain))
	}
	Decref(&plain)

	canon := CopyDefinite(item)
	if canon == nil {
		panic("CopyDefinite returned nil for a successfully loaded item")
	}
	if !canon.IsDefinite() && canon.typ != FloatCtrlType && canon.typ != UintType && canon.typ != NegintType && canon.typ != TagType {
		panic("CopyDefinite produced an indefinite top-level container")
	}
	Decref(&canon)

	return 1
}
