package source

import (
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/petkey/petkey/keymap"
)

// Terminal reads keystrokes from an interactive terminal and translates
// them back into Commodore codes. Ctrl+C ends the source with io.EOF.
type Terminal struct {
	*queue
	screen tcell.Screen
	fini   sync.Once
}

func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newTerminal(screen), nil
}

func newTerminal(screen tcell.Screen) *Terminal {
	t := &Terminal{queue: newQueue(), screen: screen}
	t.banner("petkey: typing goes to the host keyboard, Ctrl+C quits")
	go t.poll()
	return t
}

func (t *Terminal) banner(msg string) {
	t.screen.Clear()
	for i, r := range msg {
		t.screen.SetContent(i, 0, r, nil, tcell.StyleDefault)
	}
	t.screen.Show()
}

func (t *Terminal) poll() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.finish(ErrClosed)
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if key.Key() == tcell.KeyCtrlC {
			t.finish(io.EOF)
			return
		}
		if b, ok := terminalCode(key); ok {
			if !t.push(b) {
				return
			}
		}
	}
}

var terminalKeys = map[tcell.Key]keymap.InputCode{
	tcell.KeyEnter:  keymap.CodeReturn,
	tcell.KeyEscape: keymap.CodeRunStop,
	tcell.KeyHome:   keymap.CodeClrHome,
	tcell.KeyUp:     keymap.CodeCrsrUp,
	tcell.KeyDown:   keymap.CodeCrsrDown,
	tcell.KeyLeft:   keymap.CodeCrsrLeft,
	tcell.KeyRight:  keymap.CodeCrsrRight,
	tcell.KeyF1:     keymap.CodeF1,
	tcell.KeyF2:     keymap.CodeF2,
	tcell.KeyF3:     keymap.CodeF3,
	tcell.KeyF4:     keymap.CodeF4,
	tcell.KeyF5:     keymap.CodeF5,
	tcell.KeyF6:     keymap.CodeF6,
	tcell.KeyF7:     keymap.CodeF7,
	tcell.KeyF8:     keymap.CodeF8,
	tcell.KeyF12:    keymap.CodeRestore,
}

func terminalCode(ev *tcell.EventKey) (byte, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= rune(keymap.PrintableMin) && r <= rune(keymap.PrintableMax) {
			return byte(r), true
		}
		return 0, false
	}
	code, ok := terminalKeys[ev.Key()]
	return code, ok
}

func (t *Terminal) Close() error {
	t.finish(ErrClosed)
	t.fini.Do(t.screen.Fini)
	return nil
}
