//go:build linux

package output

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/petkey/petkey/keymap"
)

// Gadget writes 8-byte boot keyboard reports to a /dev/hidgN character
// device.
type Gadget struct {
	fd   int
	path string
	keys held
}

// OpenGadget opens a HID gadget device for writing. The descriptor is
// non-blocking so an unplugged host surfaces as ErrSinkUnavailable instead of
// stalling the sequencer.
func OpenGadget(path string) (*Gadget, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Gadget{fd: fd, path: path}, nil
}

func (g *Gadget) Press(k keymap.KeyCode) error {
	st, err := g.keys.press(k)
	if err != nil {
		return err
	}
	return g.write(st.BootReport())
}

func (g *Gadget) ReleaseAll() error {
	st := g.keys.release()
	return g.write(st.BootReport())
}

func (g *Gadget) write(report []byte) error {
	for {
		_, err := unix.Write(g.fd, report)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.ESHUTDOWN), errors.Is(err, unix.EPIPE):
			return fmt.Errorf("%w: %s: %v", ErrSinkUnavailable, g.path, err)
		default:
			return fmt.Errorf("write %s: %w", g.path, err)
		}
	}
}

func (g *Gadget) Close() error {
	if g.fd < 0 {
		return nil
	}
	err := unix.Close(g.fd)
	g.fd = -1
	return err
}
