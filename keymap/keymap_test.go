package keymap_test

import (
	"testing"

	"github.com/petkey/petkey/device/keyboard"
	"github.com/petkey/petkey/keymap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedSpecials = map[keymap.InputCode]keymap.Descriptor{
	0x93: {Key: keymap.KeyHome, Mods: keymap.ModShift},
	0xFF: {Key: keymap.KeyF12, Mods: keymap.ModEsc},
	0x91: {Key: keymap.KeyUp},
	0x11: {Key: keymap.KeyDown},
	0x9D: {Key: keymap.KeyLeft},
	0x1D: {Key: keymap.KeyRight},
	0x03: {Key: keymap.KeyEsc},
	0x0D: {Key: keymap.KeyReturn},
	0x85: {Key: keymap.KeyF1},
	0x86: {Key: keymap.KeyF2},
	0x87: {Key: keymap.KeyF3},
	0x88: {Key: keymap.KeyF4},
	0x89: {Key: keymap.KeyF5},
	0x8A: {Key: keymap.KeyF6},
	0x8B: {Key: keymap.KeyF7},
	0x8C: {Key: keymap.KeyF8},
	0x90: {Key: '1', Mods: keymap.ModCtrl},
	0x05: {Key: '2', Mods: keymap.ModCtrl},
	0x1C: {Key: '3', Mods: keymap.ModCtrl},
	0x9F: {Key: '4', Mods: keymap.ModCtrl},
	0x9C: {Key: '5', Mods: keymap.ModCtrl},
	0x1E: {Key: '6', Mods: keymap.ModCtrl},
	0x1F: {Key: '7', Mods: keymap.ModCtrl},
	0x9E: {Key: '8', Mods: keymap.ModCtrl},
	0x81: {Key: '1', Mods: keymap.ModCtrl},
	0x95: {Key: '2', Mods: keymap.ModCtrl},
	0x96: {Key: '3', Mods: keymap.ModGui},
	0x97: {Key: '4', Mods: keymap.ModGui},
	0x98: {Key: '5', Mods: keymap.ModGui},
	0x99: {Key: '6', Mods: keymap.ModGui},
	0x9A: {Key: '7', Mods: keymap.ModGui},
	0x9B: {Key: '8', Mods: keymap.ModGui},
}

func TestMapAllCodes(t *testing.T) {
	for i := 0; i < 256; i++ {
		code := keymap.InputCode(i)
		got := keymap.Map(code)
		assert.Equal(t, got, keymap.Map(code), "code 0x%02X must map deterministically", i)

		if want, ok := expectedSpecials[code]; ok {
			assert.Equal(t, want, got, "special code 0x%02X", i)
			continue
		}
		if i >= 32 && i <= 126 {
			assert.Equal(t, keymap.Descriptor{Key: keymap.KeyCode(i)}, got, "printable code 0x%02X", i)
			continue
		}
		assert.True(t, got.IsNone(), "code 0x%02X must be dropped", i)
		assert.Equal(t, keymap.ModifierSet(0), got.Mods)
	}
}

func TestEntriesMatchTable(t *testing.T) {
	entries := keymap.Entries()
	require.Len(t, entries, len(expectedSpecials))

	seen := map[keymap.InputCode]bool{}
	for _, e := range entries {
		assert.False(t, seen[e.Code], "duplicate code 0x%02X", e.Code)
		seen[e.Code] = true
		assert.Equal(t, expectedSpecials[e.Code], e.Descriptor)
		assert.Equal(t, e.Descriptor, keymap.Map(e.Code))
		assert.NotEmpty(t, e.Name)
	}

	// Entries hands out a copy.
	entries[0].Descriptor = keymap.Descriptor{}
	assert.False(t, keymap.Map(entries[0].Code).IsNone())
}

func TestScenarios(t *testing.T) {
	cases := []struct {
		name string
		code keymap.InputCode
		want keymap.Descriptor
	}{
		{"return", 0x0D, keymap.Descriptor{Key: keymap.KeyReturn}},
		{"clear home", 0x93, keymap.Descriptor{Key: keymap.KeyHome, Mods: keymap.ModShift}},
		{"restore", 0xFF, keymap.Descriptor{Key: keymap.KeyF12, Mods: keymap.ModEsc}},
		{"printable A", 0x41, keymap.Descriptor{Key: 'A'}},
		{"nul", 0x00, keymap.Descriptor{Key: keymap.KeyNone}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, keymap.Map(tc.code))
		})
	}
}

func TestColorCollisionsAgree(t *testing.T) {
	assert.Equal(t, keymap.Map(keymap.CodeBlack), keymap.Map(keymap.CodeOrange))
	assert.Equal(t, keymap.Descriptor{Key: '1', Mods: keymap.ModCtrl}, keymap.Map(keymap.CodeOrange))
	assert.Equal(t, keymap.Map(keymap.CodeWhite), keymap.Map(keymap.CodeBrown))
	assert.Equal(t, keymap.Descriptor{Key: '2', Mods: keymap.ModCtrl}, keymap.Map(keymap.CodeBrown))
}

func TestModifierKeysOrder(t *testing.T) {
	all := keymap.ModCtrl | keymap.ModShift | keymap.ModAlt | keymap.ModGui | keymap.ModEsc
	assert.Equal(t, []keymap.KeyCode{
		keymap.KeyLeftCtrl, keymap.KeyLeftShift, keymap.KeyLeftAlt, keymap.KeyLeftGUI, keymap.KeyEsc,
	}, all.Keys())
	assert.Equal(t, "Ctrl+Shift+Alt+Gui+Esc", all.String())
	assert.Empty(t, keymap.ModifierSet(0).Keys())
	assert.True(t, all.Has(keymap.ModGui|keymap.ModEsc))
	assert.False(t, keymap.ModCtrl.Has(keymap.ModShift))
}

func TestKeyCodeResolve(t *testing.T) {
	cases := []struct {
		key   keymap.KeyCode
		usage uint8
		mods  uint8
		ok    bool
	}{
		{keymap.KeyNone, 0, 0, false},
		{keymap.KeyHome, keyboard.KeyHome, 0, true},
		{keymap.KeyF12, keyboard.KeyF12, 0, true},
		{keymap.KeyLeftGUI, 0, keyboard.ModLeftGUI, true},
		{'a', keyboard.KeyA, 0, true},
		{'A', keyboard.KeyA, keyboard.ModLeftShift, true},
		{'1', keyboard.Key1, 0, true},
		{'?', keyboard.KeySlash, keyboard.ModLeftShift, true},
		{0x7F, 0, 0, false},
		{0x1234, 0, 0, false},
		{keymap.UsageKey(0), 0, 0, false},
	}
	for _, tc := range cases {
		usage, mods, ok := tc.key.Resolve()
		assert.Equal(t, tc.ok, ok, "key %v", tc.key)
		assert.Equal(t, tc.usage, usage, "key %v", tc.key)
		assert.Equal(t, tc.mods, mods, "key %v", tc.key)
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Shift+Home", keymap.Map(keymap.CodeClrHome).String())
	assert.Equal(t, "Esc+F12", keymap.Map(keymap.CodeRestore).String())
	assert.Equal(t, "'A'", keymap.Map('A').String())
	assert.Equal(t, "None", keymap.Map(0).String())
	assert.Equal(t, "LeftCtrl", keymap.KeyLeftCtrl.String())
	assert.Equal(t, "0x1234", keymap.KeyCode(0x1234).String())

	assert.Equal(t, "RESTORE", keymap.Name(keymap.CodeRestore))
	assert.Equal(t, "'x'", keymap.Name('x'))
	assert.Equal(t, "CHR$(0)", keymap.Name(0))
}
