package descriptor

import (
	"encoding/binary"

	"github.com/ardnew/usbdesc/pkg"
)

// MaxStrings is the number of usable string descriptor slots.
// Indices run 1..MaxStrings; slot 0 is reserved and never assigned.
const MaxStrings = 16

// StringTable is an indexed registry of serialized USB string descriptors,
// collected as the configuration descriptor is built.
//
// Each entry is a complete string descriptor blob: a 2-byte header word
// (0x0300 | blobLength, little-endian) followed by one 16-bit code unit
// per input character. Input is widened byte-for-byte, so the encoding is
// correct for ASCII only; strings containing characters outside ASCII
// produce garbage code units. Manufacturer, product, and interface names
// are ASCII by contract, so no surrogate handling is performed.
type StringTable struct {
	entries [MaxStrings + 1][]byte
	next    uint8
}

// Reset clears all slots and restarts index assignment at 1.
func (t *StringTable) Reset() {
	for i := range t.entries {
		t.entries[i] = nil
	}
	t.next = 1
}

// Add serializes s as a string descriptor, stores it in the next free
// slot, and returns the assigned index. Indices are assigned
// monotonically starting at 1. Returns pkg.ErrTooManyStrings once all
// MaxStrings slots are taken; the caller must abort the build rather
// than clamp.
func (t *StringTable) Add(s string) (uint8, error) {
	if t.next == 0 {
		t.next = 1 // zero value behaves like a fresh Reset
	}
	if t.next > MaxStrings {
		return 0, pkg.ErrTooManyStrings
	}

	// 2 bytes for the header, then 2 bytes per character.
	size := 2 + 2*len(s)
	blob := make([]byte, size)
	binary.LittleEndian.PutUint16(blob[0:2], uint16(TypeString)<<8|uint16(size))
	for i := 0; i < len(s); i++ {
		binary.LittleEndian.PutUint16(blob[2+2*i:], uint16(s[i]))
	}

	index := t.next
	t.entries[index] = blob
	t.next++

	pkg.LogDebug(pkg.ComponentStrings, "string registered",
		"index", index,
		"bytes", size)

	return index, nil
}

// Get returns the serialized string descriptor for index, or nil when the
// index is 0, out of range, or unassigned. A nil return maps to a stalled
// GET_STRING_DESCRIPTOR request upstream.
func (t *StringTable) Get(index uint8) []byte {
	if index == 0 || index > MaxStrings {
		return nil
	}
	return t.entries[index]
}

// Len returns the number of assigned slots.
func (t *StringTable) Len() int {
	if t.next == 0 {
		return 0
	}
	return int(t.next) - 1
}
