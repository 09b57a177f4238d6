//go:build !linux

package output

import (
	"errors"

	"github.com/petkey/petkey/keymap"
)

var errNoGadget = errors.New("output: USB HID gadgets are only available on linux")

type Gadget struct{}

func OpenGadget(string) (*Gadget, error) { return nil, errNoGadget }

func (*Gadget) Press(keymap.KeyCode) error { return errNoGadget }
func (*Gadget) ReleaseAll() error          { return errNoGadget }
func (*Gadget) Close() error               { return nil }
