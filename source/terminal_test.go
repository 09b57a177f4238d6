package source

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petkey/petkey/keymap"
)

func TestTerminalCode(t *testing.T) {
	cases := []struct {
		name string
		key  tcell.Key
		r    rune
		want byte
		ok   bool
	}{
		{"letter", tcell.KeyRune, 'a', 'a', true},
		{"symbol", tcell.KeyRune, '$', '$', true},
		{"space", tcell.KeyRune, ' ', ' ', true},
		{"non ascii", tcell.KeyRune, 'é', 0, false},
		{"enter", tcell.KeyEnter, 0, keymap.CodeReturn, true},
		{"escape", tcell.KeyEscape, 0, keymap.CodeRunStop, true},
		{"home", tcell.KeyHome, 0, keymap.CodeClrHome, true},
		{"up", tcell.KeyUp, 0, keymap.CodeCrsrUp, true},
		{"left", tcell.KeyLeft, 0, keymap.CodeCrsrLeft, true},
		{"f7", tcell.KeyF7, 0, keymap.CodeF7, true},
		{"f12", tcell.KeyF12, 0, keymap.CodeRestore, true},
		{"tab", tcell.KeyTab, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := terminalCode(tcell.NewEventKey(tc.key, tc.r, tcell.ModNone))
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTerminalClose(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	term := newTerminal(screen)
	require.NoError(t, term.Close())
	require.NoError(t, term.Close())

	_, ok, err := term.TryReadByte()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrClosed)
}
