// Package keymap translates Commodore ASCII codes into host keyboard events.
//
// The translation is a fixed table built once at package initialisation:
// Commodore control codes and color keys have explicit entries, printable
// ASCII (32-126) passes through unchanged and every other code maps to
// KeyNone.
package keymap

import "fmt"

// Descriptor is the keyboard event for one input code: a key and the
// modifiers held with it.
type Descriptor struct {
	Key  KeyCode
	Mods ModifierSet
}

// IsNone reports whether d carries no key and must not be sent.
func (d Descriptor) IsNone() bool {
	return d.Key == KeyNone
}

func (d Descriptor) String() string {
	if d.Mods == 0 {
		return d.Key.String()
	}
	return d.Mods.String() + "+" + d.Key.String()
}

// Entry is one explicit table entry.
type Entry struct {
	Code InputCode
	Name string
	Descriptor
}

// specials lists every code with an explicit mapping. Codes are disjoint.
//
// Black/Orange and White/Brown share a mapping. The source table was never
// disambiguated and the intended keys are unknown, so both pairs are kept.
var specials = []Entry{
	{CodeClrHome, "CLR/HOME", Descriptor{KeyHome, ModShift}},
	{CodeRestore, "RESTORE", Descriptor{KeyF12, ModEsc}},
	{CodeCrsrUp, "CRSR UP", Descriptor{KeyUp, 0}},
	{CodeCrsrDown, "CRSR DOWN", Descriptor{KeyDown, 0}},
	{CodeCrsrLeft, "CRSR LEFT", Descriptor{KeyLeft, 0}},
	{CodeCrsrRight, "CRSR RIGHT", Descriptor{KeyRight, 0}},
	{CodeRunStop, "RUN/STOP", Descriptor{KeyEsc, 0}},
	{CodeReturn, "RETURN", Descriptor{KeyReturn, 0}},

	{CodeF1, "F1", Descriptor{KeyF1, 0}},
	{CodeF2, "F2", Descriptor{KeyF2, 0}},
	{CodeF3, "F3", Descriptor{KeyF3, 0}},
	{CodeF4, "F4", Descriptor{KeyF4, 0}},
	{CodeF5, "F5", Descriptor{KeyF5, 0}},
	{CodeF6, "F6", Descriptor{KeyF6, 0}},
	{CodeF7, "F7", Descriptor{KeyF7, 0}},
	{CodeF8, "F8", Descriptor{KeyF8, 0}},

	{CodeBlack, "BLACK", Descriptor{'1', ModCtrl}},
	{CodeWhite, "WHITE", Descriptor{'2', ModCtrl}},
	{CodeRed, "RED", Descriptor{'3', ModCtrl}},
	{CodeCyan, "CYAN", Descriptor{'4', ModCtrl}},
	{CodePurple, "PURPLE", Descriptor{'5', ModCtrl}},
	{CodeGreen, "GREEN", Descriptor{'6', ModCtrl}},
	{CodeBlue, "BLUE", Descriptor{'7', ModCtrl}},
	{CodeYellow, "YELLOW", Descriptor{'8', ModCtrl}},
	{CodeOrange, "ORANGE", Descriptor{'1', ModCtrl}},
	{CodeBrown, "BROWN", Descriptor{'2', ModCtrl}},
	{CodeLightRed, "LIGHT RED", Descriptor{'3', ModGui}},
	{CodeDarkGray, "DARK GRAY", Descriptor{'4', ModGui}},
	{CodeMediumGray, "MEDIUM GRAY", Descriptor{'5', ModGui}},
	{CodeLightGreen, "LIGHT GREEN", Descriptor{'6', ModGui}},
	{CodeLightBlue, "LIGHT BLUE", Descriptor{'7', ModGui}},
	{CodeLightGray, "LIGHT GRAY", Descriptor{'8', ModGui}},
}

var (
	table = buildTable()
	names = buildNames()
)

func buildTable() [256]Descriptor {
	var t [256]Descriptor
	for c := int(PrintableMin); c <= int(PrintableMax); c++ {
		t[c] = Descriptor{Key: KeyCode(c)}
	}
	for _, e := range specials {
		t[e.Code] = e.Descriptor
	}
	return t
}

func buildNames() map[InputCode]string {
	m := make(map[InputCode]string, len(specials))
	for _, e := range specials {
		m[e.Code] = e.Name
	}
	return m
}

// Map returns the keyboard event for code. It is total: codes without a
// mapping return a Descriptor whose IsNone is true.
func Map(code InputCode) Descriptor {
	return table[code]
}

// Entries returns a copy of the explicit entries in table order.
func Entries() []Entry {
	out := make([]Entry, len(specials))
	copy(out, specials)
	return out
}

// Name returns the Commodore name of code: the key name for explicit
// entries, the quoted character for printable codes and CHR$(n) otherwise.
func Name(code InputCode) string {
	if n, ok := names[code]; ok {
		return n
	}
	if code >= PrintableMin && code <= PrintableMax {
		return fmt.Sprintf("%q", rune(code))
	}
	return fmt.Sprintf("CHR$(%d)", code)
}
