// Package keyboard describes the USB HID keyboard side of petkey: usage codes,
// the ASCII to usage table and the report encodings the output sinks write.
package keyboard

import (
	"io"
)

// BootReportSize is the length of a boot protocol keyboard input report.
const BootReportSize = 8

// InputState represents the set of keys currently held.
// Internally uses a 256-bit bitmap so any usage code can be held at once.
type InputState struct {
	Modifiers uint8     // bit 0-7: LCtrl, LShift, LAlt, LGui, RCtrl, RShift, RAlt, RGui
	KeyBitmap [32]uint8 // 256 bits for HID usage codes 0x00-0xFF
}

// Press marks usage as held.
func (st *InputState) Press(usage uint8) {
	st.KeyBitmap[usage/8] |= 1 << (usage % 8)
}

// IsPressed reports whether usage is held.
func (st *InputState) IsPressed(usage uint8) bool {
	return st.KeyBitmap[usage/8]&(1<<(usage%8)) != 0
}

// Keys returns the held usage codes in ascending order.
func (st *InputState) Keys() []uint8 {
	var keys []uint8
	for i := 0; i < 256; i++ {
		if st.IsPressed(uint8(i)) {
			keys = append(keys, uint8(i))
		}
	}
	return keys
}

// Empty reports whether no key and no modifier is held.
func (st *InputState) Empty() bool {
	if st.Modifiers != 0 {
		return false
	}
	for _, b := range st.KeyBitmap {
		if b != 0 {
			return false
		}
	}
	return true
}

// Reset releases everything.
func (st *InputState) Reset() {
	*st = InputState{}
}

// BootReport encodes the state as an 8-byte boot protocol report.
//
// Report layout (8 bytes):
//
//	Byte 0: Modifiers
//	Byte 1: Reserved (0x00)
//	Bytes 2-7: Up to six usage codes; all ErrorRollOver when more are held
func (st *InputState) BootReport() []byte {
	b := make([]byte, BootReportSize)
	b[0] = st.Modifiers
	keys := st.Keys()
	if len(keys) > BootReportSize-2 {
		for i := 2; i < BootReportSize; i++ {
			b[i] = ErrorRollOver
		}
		return b
	}
	copy(b[2:], keys)
	return b
}

// MarshalBinary encodes InputState to the VIIPER keyboard stream format.
//
// Wire format:
//
//	Byte 0: Modifiers
//	Byte 1: Key count
//	Bytes 2+: Key codes (HID usage codes of pressed keys)
func (st *InputState) MarshalBinary() ([]byte, error) {
	keys := st.Keys()
	b := make([]byte, 2+len(keys))
	b[0] = st.Modifiers
	b[1] = uint8(len(keys))
	copy(b[2:], keys)
	return b, nil
}

// UnmarshalBinary decodes the VIIPER keyboard stream format.
func (st *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return io.ErrUnexpectedEOF
	}
	keyCount := int(data[1])
	if len(data) < 2+keyCount {
		return io.ErrUnexpectedEOF
	}

	st.Reset()
	st.Modifiers = data[0]
	for _, k := range data[2 : 2+keyCount] {
		st.Press(k)
	}
	return nil
}
