// Package output implements the keyboard sinks the sequencer drives: a Linux
// USB HID gadget, a VIIPER virtual keyboard and a dry-run logger.
//
// Every sink keeps the set of keys currently held. Press adds one key and
// emits a report, ReleaseAll clears the set and emits an empty report.
package output

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/petkey/petkey/device/keyboard"
	"github.com/petkey/petkey/keymap"
)

var (
	// ErrUnsupportedKey is returned by Press for key codes the US layout
	// cannot produce.
	ErrUnsupportedKey = errors.New("output: unsupported key")
	// ErrSinkUnavailable is returned when the host is not reading reports,
	// e.g. the gadget is not enumerated or the VIIPER stream dropped.
	ErrSinkUnavailable = errors.New("output: keyboard unavailable")
)

// DefaultGadgetDevice is the first HID function of a configfs USB gadget.
const DefaultGadgetDevice = "/dev/hidg0"

// GadgetConfig selects the HID gadget character device.
type GadgetConfig struct {
	Device string `help:"HID gadget device written with boot keyboard reports" default:"/dev/hidg0" env:"PETKEY_GADGET_DEVICE"`
}

// Sink is a keyboard the sequencer can drive. It matches sequencer.Sink.
type Sink interface {
	Press(k keymap.KeyCode) error
	ReleaseAll() error
	io.Closer
}

// held accumulates pressed keys into a report.
type held struct {
	mu    sync.Mutex
	state keyboard.InputState
}

// press adds k and returns a snapshot of the new state.
func (h *held) press(k keymap.KeyCode) (keyboard.InputState, error) {
	usage, mods, ok := k.Resolve()
	if !ok {
		return keyboard.InputState{}, fmt.Errorf("%w: %v", ErrUnsupportedKey, k)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Modifiers |= mods
	if usage != 0 {
		h.state.Press(usage)
	}
	return h.state, nil
}

func (h *held) release() keyboard.InputState {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Reset()
	return h.state
}
