package keymap

import "strings"

// ModifierSet is a bit set of the modifiers held together with a key.
type ModifierSet uint8

const (
	ModCtrl  ModifierSet = 0x01
	ModShift ModifierSet = 0x02
	ModAlt   ModifierSet = 0x04
	ModGui   ModifierSet = 0x08
	// ModEsc holds the Escape key alongside the primary key. Escape is not an
	// HID modifier, so it is pressed as an ordinary key.
	ModEsc ModifierSet = 0x10
)

// modifierOrder is the press order for modifier bits.
var modifierOrder = []struct {
	bit  ModifierSet
	key  KeyCode
	name string
}{
	{ModCtrl, KeyLeftCtrl, "Ctrl"},
	{ModShift, KeyLeftShift, "Shift"},
	{ModAlt, KeyLeftAlt, "Alt"},
	{ModGui, KeyLeftGUI, "Gui"},
	{ModEsc, KeyEsc, "Esc"},
}

// Has reports whether every bit of m2 is set in m.
func (m ModifierSet) Has(m2 ModifierSet) bool {
	return m&m2 == m2
}

// Keys returns the keys to press for m, in the order Ctrl, Shift, Alt, Gui, Esc.
func (m ModifierSet) Keys() []KeyCode {
	var keys []KeyCode
	for _, o := range modifierOrder {
		if m&o.bit != 0 {
			keys = append(keys, o.key)
		}
	}
	return keys
}

func (m ModifierSet) String() string {
	var parts []string
	for _, o := range modifierOrder {
		if m&o.bit != 0 {
			parts = append(parts, o.name)
		}
	}
	return strings.Join(parts, "+")
}
