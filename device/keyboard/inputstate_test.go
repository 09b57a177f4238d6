package keyboard_test

import (
	"io"
	"testing"

	"github.com/petkey/petkey/device/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootReport(t *testing.T) {
	type testCase struct {
		name     string
		state    keyboard.InputState
		expected []byte
	}

	cases := []testCase{
		{
			name:     "released",
			state:    keyboard.Release(),
			expected: []byte{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:     "ctrl+1",
			state:    keyboard.PressKeyWithMod(keyboard.ModLeftCtrl, keyboard.Key1),
			expected: []byte{0x01, 0, keyboard.Key1, 0, 0, 0, 0, 0},
		},
		{
			name:     "escape and f12 sorted by usage",
			state:    keyboard.PressKey(keyboard.KeyF12, keyboard.KeyEscape),
			expected: []byte{0, 0, keyboard.KeyEscape, keyboard.KeyF12, 0, 0, 0, 0},
		},
		{
			name: "roll over",
			state: keyboard.PressKeyWithMod(keyboard.ModLeftShift,
				keyboard.KeyA, keyboard.KeyB, keyboard.KeyC, keyboard.KeyD,
				keyboard.KeyE, keyboard.KeyF, keyboard.KeyG),
			expected: []byte{0x02, 0, 1, 1, 1, 1, 1, 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.state.BootReport())
		})
	}
}

func TestWireFormat(t *testing.T) {
	st := keyboard.PressKeyWithMod(keyboard.ModLeftShift, keyboard.KeyHome)
	data, err := st.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{keyboard.ModLeftShift, 1, keyboard.KeyHome}, data)

	var back keyboard.InputState
	require.NoError(t, back.UnmarshalBinary(data))
	assert.Equal(t, st, back)

	assert.ErrorIs(t, back.UnmarshalBinary([]byte{0}), io.ErrUnexpectedEOF)
	assert.ErrorIs(t, back.UnmarshalBinary([]byte{0, 2, keyboard.KeyA}), io.ErrUnexpectedEOF)
}

func TestResetAndEmpty(t *testing.T) {
	st := keyboard.PressKey(keyboard.KeyUp)
	assert.False(t, st.Empty())
	assert.True(t, st.IsPressed(keyboard.KeyUp))
	st.Reset()
	assert.True(t, st.Empty())
	assert.Empty(t, st.Keys())
}

func TestCharToHID(t *testing.T) {
	assert.Equal(t, uint8(keyboard.KeyA), keyboard.CharToHID('a'))
	assert.Equal(t, uint8(keyboard.KeyA), keyboard.CharToHID('A'))
	assert.True(t, keyboard.NeedsShift('A'))
	assert.False(t, keyboard.NeedsShift('a'))
	assert.Equal(t, uint8(0), keyboard.CharToHID(0x7F))

	for c := byte(32); c <= 126; c++ {
		assert.NotZero(t, keyboard.CharToHID(c), "printable %q must have a usage", c)
	}
}
