package keymap

import (
	"fmt"

	"github.com/petkey/petkey/device/keyboard"
)

// KeyCode identifies one key to press on the host keyboard.
//
// Values 0x20-0x7E are printable ASCII characters; the output layer resolves
// them to a usage code plus Shift where the US layout needs it. A value with
// the high nibble 0xF names a non-printing key by its HID usage, a value with
// the high nibble 0xE names a modifier key by its report bit.
type KeyCode uint16

const (
	usageFlag    KeyCode = 0xF000
	modifierFlag KeyCode = 0xE000
	flagMask     KeyCode = 0xF000
)

// KeyNone is the "no key" sentinel; descriptors carrying it are never sent.
const KeyNone KeyCode = 0

const (
	KeyReturn KeyCode = usageFlag | keyboard.KeyEnter
	KeyEsc    KeyCode = usageFlag | keyboard.KeyEscape
	KeyHome   KeyCode = usageFlag | keyboard.KeyHome
	KeyUp     KeyCode = usageFlag | keyboard.KeyUp
	KeyDown   KeyCode = usageFlag | keyboard.KeyDown
	KeyLeft   KeyCode = usageFlag | keyboard.KeyLeft
	KeyRight  KeyCode = usageFlag | keyboard.KeyRight

	KeyF1  KeyCode = usageFlag | keyboard.KeyF1
	KeyF2  KeyCode = usageFlag | keyboard.KeyF2
	KeyF3  KeyCode = usageFlag | keyboard.KeyF3
	KeyF4  KeyCode = usageFlag | keyboard.KeyF4
	KeyF5  KeyCode = usageFlag | keyboard.KeyF5
	KeyF6  KeyCode = usageFlag | keyboard.KeyF6
	KeyF7  KeyCode = usageFlag | keyboard.KeyF7
	KeyF8  KeyCode = usageFlag | keyboard.KeyF8
	KeyF9  KeyCode = usageFlag | keyboard.KeyF9
	KeyF10 KeyCode = usageFlag | keyboard.KeyF10
	KeyF11 KeyCode = usageFlag | keyboard.KeyF11
	KeyF12 KeyCode = usageFlag | keyboard.KeyF12
)

// Modifier keys, pressed by the sequencer for the bits of a ModifierSet.
const (
	KeyLeftCtrl  KeyCode = modifierFlag | keyboard.ModLeftCtrl
	KeyLeftShift KeyCode = modifierFlag | keyboard.ModLeftShift
	KeyLeftAlt   KeyCode = modifierFlag | keyboard.ModLeftAlt
	KeyLeftGUI   KeyCode = modifierFlag | keyboard.ModLeftGUI
)

// UsageKey returns the KeyCode naming HID usage u directly.
func UsageKey(u uint8) KeyCode {
	return usageFlag | KeyCode(u)
}

// IsModifier reports whether k names a modifier key.
func (k KeyCode) IsModifier() bool {
	return k&flagMask == modifierFlag
}

// Resolve translates k into an HID usage code and the modifier bits that must
// be held with it. Modifier keys resolve to usage 0 and their bit. ok is false
// for KeyNone and for codes no US layout key produces.
func (k KeyCode) Resolve() (usage uint8, mods uint8, ok bool) {
	switch {
	case k == KeyNone:
		return 0, 0, false
	case k&flagMask == usageFlag:
		u := uint8(k)
		return u, 0, u != 0
	case k&flagMask == modifierFlag:
		m := uint8(k)
		return 0, m, m != 0
	case k < 0x80:
		c := byte(k)
		u := keyboard.CharToHID(c)
		if u == 0 {
			return 0, 0, false
		}
		if keyboard.NeedsShift(c) {
			mods = keyboard.ModLeftShift
		}
		return u, mods, true
	}
	return 0, 0, false
}

func (k KeyCode) String() string {
	switch {
	case k == KeyNone:
		return "None"
	case k&flagMask == usageFlag:
		if name, ok := keyboard.KeyName[uint8(k)]; ok {
			return name
		}
	case k&flagMask == modifierFlag:
		if name, ok := keyboard.ModifierName[uint8(k)]; ok {
			return name
		}
	case k >= 0x20 && k <= 0x7E:
		return fmt.Sprintf("%q", rune(k))
	}
	return fmt.Sprintf("0x%04X", uint16(k))
}
